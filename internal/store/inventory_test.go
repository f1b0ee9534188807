package store

import (
	"context"
	"testing"

	"logitrack/internal/db"
	"logitrack/internal/model"
)

func TestInsertAndListInventory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id, err := InsertInventoryItem(ctx, database, &model.InventoryItem{
		Name: "Pallet Jack", Quantity: 12, Location: "Warehouse A",
	})
	if err != nil {
		t.Fatalf("InsertInventoryItem: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned id")
	}

	items, err := ListInventory(ctx, database, 1, 50)
	if err != nil {
		t.Fatalf("ListInventory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Name != "Pallet Jack" || items[0].Quantity != 12 {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestListInventoryPaging(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		InsertInventoryItem(ctx, database, &model.InventoryItem{
			Name: "Crate", Quantity: i, Location: "Dock",
		})
	}

	page2, _ := ListInventory(ctx, database, 2, 2)
	if len(page2) != 2 {
		t.Fatalf("expected 2 items on page 2, got %d", len(page2))
	}
	if page2[0].Quantity != 2 {
		t.Errorf("expected third item first on page 2, got quantity %d", page2[0].Quantity)
	}
}

func TestListInventoryBadPagingDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertInventoryItem(ctx, database, &model.InventoryItem{
		Name: "Crate", Quantity: 1, Location: "Dock",
	})

	// page=0, pageSize=-5 must behave like page=1, pageSize=50.
	items, err := ListInventory(ctx, database, 0, -5)
	if err != nil {
		t.Fatalf("ListInventory: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item with defaulted paging, got %d", len(items))
	}
}

func TestDeleteInventoryItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id, _ := InsertInventoryItem(ctx, database, &model.InventoryItem{
		Name: "Crate", Quantity: 1, Location: "Dock",
	})

	found, err := DeleteInventoryItem(ctx, database, id)
	if err != nil {
		t.Fatalf("DeleteInventoryItem: %v", err)
	}
	if !found {
		t.Error("expected delete to report found")
	}

	found, _ = DeleteInventoryItem(ctx, database, id)
	if found {
		t.Error("expected second delete to report not found")
	}
}

func TestFindInventoryItemsMatchesPairExactly(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Pallet Jack", Quantity: 5, Location: "Warehouse A"})
	InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Pallet Jack", Quantity: 7, Location: "Warehouse B"})
	InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Forklift", Quantity: 2, Location: "Warehouse A"})

	// A cross-product match on names and locations separately would return
	// all three rows here; the pair match must return exactly one.
	items, err := FindInventoryItems(ctx, database, []model.Pair{
		{Name: "Pallet Jack", Location: "Warehouse A"},
	})
	if err != nil {
		t.Fatalf("FindInventoryItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("matched wrong record: %+v", items[0])
	}
}

func TestFindInventoryItemsOrderedByID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Crate", Quantity: 1, Location: "Dock"})
	InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Crate", Quantity: 2, Location: "Dock"})

	items, _ := FindInventoryItems(ctx, database, []model.Pair{{Name: "Crate", Location: "Dock"}})
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(items))
	}
	if items[0].ID != first {
		t.Errorf("expected oldest record first, got id %d", items[0].ID)
	}
}

func TestSaveQuantityAdjustments(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id, _ := InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Crate", Quantity: 10, Location: "Dock"})

	item, _ := GetInventoryItem(ctx, database, id)
	item.Quantity = 3
	if err := SaveQuantityAdjustments(ctx, database, []model.InventoryItem{*item}); err != nil {
		t.Fatalf("SaveQuantityAdjustments: %v", err)
	}

	got, _ := GetInventoryItem(ctx, database, id)
	if got.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", got.Quantity)
	}
}

func TestItemPhotoRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id, _ := InsertInventoryItem(ctx, database, &model.InventoryItem{Name: "Crate", Quantity: 1, Location: "Dock"})

	if err := SetItemPhoto(ctx, database, id, []byte{0xff, 0xd8}, "image/jpeg"); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := GetItemPhoto(ctx, database, id)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if mime != "image/jpeg" || len(data) != 2 {
		t.Errorf("unexpected photo: mime=%q len=%d", mime, len(data))
	}
}
