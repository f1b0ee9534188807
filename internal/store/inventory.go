package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"logitrack/internal/model"
)

// Pagination defaults, also used when callers supply unusable values.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
)

// NormalizePage coerces page and pageSize to usable values. Anything below 1
// falls back to the defaults; requests never fail on bad pagination input.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// ListInventory returns one page of inventory items, ordered by id.
func ListInventory(ctx context.Context, db *sql.DB, page, pageSize int) ([]model.InventoryItem, error) {
	page, pageSize = NormalizePage(page, pageSize)

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, quantity, location, order_id, photo_mime
		 FROM inventory_items ORDER BY id LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	return scanInventoryItems(rows)
}

// InsertInventoryItem inserts a new inventory item and returns its assigned id.
func InsertInventoryItem(ctx context.Context, db *sql.DB, item *model.InventoryItem) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory_items (name, quantity, location, order_id) VALUES (?, ?, ?, ?)`,
		item.Name, item.Quantity, item.Location, item.OrderID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting inventory item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inventory item id: %w", err)
	}
	return id, nil
}

// GetInventoryItem returns an inventory item by id, or nil if absent.
func GetInventoryItem(ctx context.Context, db *sql.DB, id int64) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	var photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, quantity, location, order_id, photo_mime
		 FROM inventory_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Quantity, &item.Location, &item.OrderID, &photoMime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inventory item: %w", err)
	}
	item.PhotoMime = photoMime.String
	return item, nil
}

// DeleteInventoryItem deletes an inventory item. Returns whether a row existed.
func DeleteInventoryItem(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM inventory_items WHERE id = ?`, id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting inventory item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting inventory item: %w", err)
	}
	return n > 0, nil
}

// FindInventoryItems returns inventory items matching any of the given
// (name, location) pairs. Matching is on the exact pair, not on the name and
// location lists independently, so "Pallet Jack @ Warehouse A" never matches
// a "Pallet Jack @ Warehouse B" record. Results are ordered by id so that
// duplicate pairs resolve deterministically to the oldest record.
func FindInventoryItems(ctx context.Context, db *sql.DB, pairs []model.Pair) ([]model.InventoryItem, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	preds := make([]string, 0, len(pairs))
	args := make([]any, 0, 2*len(pairs))
	for _, p := range pairs {
		preds = append(preds, "(name = ? AND location = ?)")
		args = append(args, p.Name, p.Location)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, quantity, location, order_id, photo_mime
		 FROM inventory_items WHERE `+strings.Join(preds, " OR ")+` ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("finding inventory items: %w", err)
	}
	defer rows.Close()

	return scanInventoryItems(rows)
}

// SaveQuantityAdjustments persists reconciler quantity changes in a single
// transaction.
func SaveQuantityAdjustments(ctx context.Context, db *sql.DB, items []model.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`UPDATE inventory_items SET quantity = ?, order_id = ? WHERE id = ?`,
			item.Quantity, item.OrderID, item.ID,
		); err != nil {
			return fmt.Errorf("saving adjustment for item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing adjustments: %w", err)
	}
	return nil
}

// SetItemPhoto sets an inventory item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET photo = ?, photo_mime = ? WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	return nil
}

// GetItemPhoto returns an inventory item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM inventory_items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

func scanInventoryItems(rows *sql.Rows) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		var photoMime sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Location, &item.OrderID, &photoMime); err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		item.PhotoMime = photoMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}
