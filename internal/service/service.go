// Package service is the single entry point for inventory and order
// operations. It enforces the access policy, keeps the listing cache
// coherent around mutations, and drives stock reconciliation when orders
// are created or deleted.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"logitrack/internal/auth"
	"logitrack/internal/cache"
	"logitrack/internal/imaging"
	"logitrack/internal/model"
	"logitrack/internal/reconcile"
	"logitrack/internal/store"
)

// AccessPolicy names the minimum role each mutating operation requires.
// An empty role means the operation is open to anonymous callers.
type AccessPolicy struct {
	AddInventory    string
	DeleteInventory string
	CreateOrder     string
	DeleteOrder     string
}

// DefaultAccessPolicy mirrors the historical behavior: anonymous callers may
// add inventory and create orders, deletes need a manager. The anonymous
// writes are a known gap; tightening them is a configuration change, not a
// code change.
func DefaultAccessPolicy() AccessPolicy {
	return AccessPolicy{
		DeleteInventory: model.RoleManager,
		DeleteOrder:     model.RoleManager,
	}
}

// ListingResult is an inventory page plus the observability fields surfaced
// per listing call.
type ListingResult struct {
	Items    []model.InventoryItem
	CacheHit bool
	Elapsed  time.Duration
}

// Service composes the store, the listing cache and the reconciler.
type Service struct {
	db       *sql.DB
	listings *cache.Listings
	rec      *reconcile.Reconciler
	access   AccessPolicy
	logger   *zap.Logger
}

// New creates a Service. A nil logger defaults to a no-op logger.
func New(db *sql.DB, listings *cache.Listings, rec *reconcile.Reconciler, access AccessPolicy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, listings: listings, rec: rec, access: access, logger: logger}
}

// authorize checks the caller against a minimum role. An empty role admits
// anyone, including anonymous callers (nil claims).
func authorize(caller *auth.Claims, minimum string) error {
	if minimum == "" {
		return nil
	}
	if caller == nil || !model.RoleAtLeast(caller.Role, minimum) {
		return ErrForbidden
	}
	return nil
}

// GetInventoryPage returns one page of inventory, served from the listing
// cache when possible. Open to anonymous callers.
func (s *Service) GetInventoryPage(ctx context.Context, page, pageSize int) (*ListingResult, error) {
	start := time.Now()

	// Normalize before the cache lookup so page=0 and page=1 share a key.
	page, pageSize = store.NormalizePage(page, pageSize)

	items, version, hit := s.listings.Get(page, pageSize)
	if !hit {
		var err error
		items, err = store.ListInventory(ctx, s.db, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("loading inventory page: %w", err)
		}
		if items == nil {
			items = []model.InventoryItem{}
		}
		s.listings.Put(version, page, pageSize, items)
	}

	elapsed := time.Since(start)
	s.logger.Info("inventory listing served",
		zap.Int("page", page), zap.Int("page_size", pageSize),
		zap.Bool("cache_hit", hit), zap.Duration("elapsed", elapsed))

	return &ListingResult{Items: items, CacheHit: hit, Elapsed: elapsed}, nil
}

// AddInventoryItem validates and persists a new inventory item, then
// invalidates the listing cache.
func (s *Service) AddInventoryItem(ctx context.Context, caller *auth.Claims, item model.InventoryItem) (*model.InventoryItem, error) {
	if err := authorize(caller, s.access.AddInventory); err != nil {
		return nil, err
	}
	if item.Name == "" || item.Location == "" {
		return nil, fmt.Errorf("%w: name and location required", ErrValidation)
	}

	id, err := store.InsertInventoryItem(ctx, s.db, &item)
	if err != nil {
		return nil, fmt.Errorf("adding inventory item: %w", err)
	}
	item.ID = id
	s.listings.InvalidateAll()

	s.logger.Info("inventory item added",
		zap.Int64("item_id", id), zap.String("name", item.Name), zap.String("location", item.Location))
	return &item, nil
}

// DeleteInventoryItem removes an inventory item and invalidates the listing
// cache. Requires the delete-inventory role.
func (s *Service) DeleteInventoryItem(ctx context.Context, caller *auth.Claims, id int64) error {
	if err := authorize(caller, s.access.DeleteInventory); err != nil {
		return err
	}

	found, err := store.DeleteInventoryItem(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	s.listings.InvalidateAll()

	s.logger.Info("inventory item deleted", zap.Int64("item_id", id))
	return nil
}

// SetInventoryItemPhoto processes and stores a photo for an inventory item.
// Gated by the same role as adding inventory.
func (s *Service) SetInventoryItemPhoto(ctx context.Context, caller *auth.Claims, id int64, photo io.Reader) error {
	if err := authorize(caller, s.access.AddInventory); err != nil {
		return err
	}

	item, err := store.GetInventoryItem(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("loading inventory item: %w", err)
	}
	if item == nil {
		return ErrNotFound
	}

	processed, err := imaging.Process(photo)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := store.SetItemPhoto(ctx, s.db, id, processed.Data, processed.MIME); err != nil {
		return fmt.Errorf("storing item photo: %w", err)
	}
	return nil
}

// GetInventoryItemPhoto returns an item's stored photo and MIME type.
func (s *Service) GetInventoryItemPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	data, mime, err := store.GetItemPhoto(ctx, s.db, id)
	if err != nil {
		return nil, "", fmt.Errorf("loading item photo: %w", err)
	}
	if data == nil {
		return nil, "", ErrNotFound
	}
	return data, mime, nil
}

// ListOrders returns one page of orders with line items loaded. Open to
// anonymous callers.
func (s *Service) ListOrders(ctx context.Context, page, pageSize int) ([]model.Order, error) {
	orders, err := store.ListOrders(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// GetOrder returns an order by id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := store.GetOrder(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// CreateOrder persists a new order, applies its effect on inventory
// quantities and invalidates the listing cache. The order is persisted
// before reconciliation so it holds its assigned id even when line items
// match nothing. Under a strict stock policy a rejected order is rolled
// back and reported as a validation failure.
func (s *Service) CreateOrder(ctx context.Context, caller *auth.Claims, order model.Order) (*model.Order, error) {
	if err := authorize(caller, s.access.CreateOrder); err != nil {
		return nil, err
	}
	if order.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name required", ErrValidation)
	}
	for _, li := range order.Items {
		if li.Name == "" || li.Location == "" {
			return nil, fmt.Errorf("%w: line items need a name and location", ErrValidation)
		}
	}

	id, err := store.InsertOrder(ctx, s.db, &order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	adjusted, err := s.rec.ApplyOrder(ctx, &order)
	if err != nil {
		if errors.Is(err, reconcile.ErrInsufficientStock) {
			// Stock policy rejected the order; undo the persisted record so
			// no half-created order lingers.
			if _, delErr := store.DeleteOrder(ctx, s.db, id); delErr != nil {
				s.logger.Error("rolling back rejected order failed",
					zap.Int64("order_id", id), zap.Error(delErr))
			}
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		// A persistence failure during reconciliation. The order record
		// stands; only a policy rejection rolls it back.
		return nil, fmt.Errorf("applying order %d to inventory: %w", id, err)
	}

	if err := store.SaveQuantityAdjustments(ctx, s.db, adjusted); err != nil {
		return nil, fmt.Errorf("persisting order adjustments: %w", err)
	}
	s.listings.InvalidateAll()

	s.logger.Info("order created",
		zap.Int64("order_id", id), zap.String("customer", order.CustomerName),
		zap.Int("line_items", len(order.Items)), zap.Int("adjusted_records", len(adjusted)))
	return &order, nil
}

// DeleteOrder reverses an order's inventory effect, removes the order and
// invalidates the listing cache. Requires the delete-order role. The
// reversal runs before the record is removed so line items are still
// available for matching.
func (s *Service) DeleteOrder(ctx context.Context, caller *auth.Claims, id int64) error {
	if err := authorize(caller, s.access.DeleteOrder); err != nil {
		return err
	}

	order, err := store.GetOrder(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("loading order: %w", err)
	}
	if order == nil {
		return ErrNotFound
	}

	adjusted, err := s.rec.ReverseOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("reversing order: %w", err)
	}
	if err := store.SaveQuantityAdjustments(ctx, s.db, adjusted); err != nil {
		return fmt.Errorf("persisting order reversal: %w", err)
	}

	if _, err := store.DeleteOrder(ctx, s.db, id); err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	s.listings.InvalidateAll()

	s.logger.Info("order deleted",
		zap.Int64("order_id", id), zap.Int("restocked_records", len(adjusted)))
	return nil
}
