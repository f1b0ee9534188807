// Package reconcile keeps inventory quantities consistent with the net
// effect of active orders.
package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"logitrack/internal/model"
	"logitrack/internal/store"
)

// ErrInsufficientStock is returned by strict stock policies when an order
// would drive a quantity negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockPolicy decides whether a line item may draw the requested quantity
// from an inventory record. It runs before the decrement is applied.
type StockPolicy func(item model.InventoryItem, requested int) error

// AllowNegative permits any decrement; quantities may go negative
// (back-orders are accepted). This is the default.
func AllowNegative(model.InventoryItem, int) error { return nil }

// RejectNegative fails an order whose line item would drive a quantity
// below zero.
func RejectNegative(item model.InventoryItem, requested int) error {
	if item.Quantity-requested < 0 {
		return fmt.Errorf("%w: %q at %q has %d, need %d",
			ErrInsufficientStock, item.Name, item.Location, item.Quantity, requested)
	}
	return nil
}

// Reconciler applies and reverses order effects on inventory quantities.
// Line items match inventory records by exact (name, location) equality;
// when several records share a pair, the one with the lowest id wins.
type Reconciler struct {
	db     *sql.DB
	policy StockPolicy
	logger *zap.Logger
}

// New creates a Reconciler. A nil policy defaults to AllowNegative and a
// nil logger to a no-op logger.
func New(db *sql.DB, policy StockPolicy, logger *zap.Logger) *Reconciler {
	if policy == nil {
		policy = AllowNegative
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{db: db, policy: policy, logger: logger}
}

// ApplyOrder decrements matched inventory quantities by each line item's
// requested quantity and tags the records with the order id. Line items
// with no matching (name, location) record have no effect. Returns exactly
// the records mutated; the caller persists them.
func (r *Reconciler) ApplyOrder(ctx context.Context, order *model.Order) ([]model.InventoryItem, error) {
	return r.adjust(ctx, order, false)
}

// ReverseOrder increments matched quantities by each line item's quantity,
// undoing ApplyOrder. It must run while the order's line items are still
// loaded, i.e. before the order record is removed.
func (r *Reconciler) ReverseOrder(ctx context.Context, order *model.Order) ([]model.InventoryItem, error) {
	return r.adjust(ctx, order, true)
}

func (r *Reconciler) adjust(ctx context.Context, order *model.Order, reverse bool) ([]model.InventoryItem, error) {
	if len(order.Items) == 0 {
		return nil, nil
	}

	pairs := make([]model.Pair, 0, len(order.Items))
	seen := make(map[model.Pair]bool, len(order.Items))
	for _, li := range order.Items {
		if p := li.Pair(); !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	records, err := store.FindInventoryItems(ctx, r.db, pairs)
	if err != nil {
		return nil, fmt.Errorf("loading inventory for order %d: %w", order.ID, err)
	}

	// First record per pair wins; FindInventoryItems returns them ordered
	// by id, so the tie-break is the oldest record.
	byPair := make(map[model.Pair]*model.InventoryItem, len(records))
	for i := range records {
		if p := records[i].Pair(); byPair[p] == nil {
			byPair[p] = &records[i]
		}
	}

	var adjusted []*model.InventoryItem
	for _, li := range order.Items {
		rec := byPair[li.Pair()]
		if rec == nil {
			// No inventory effect; the order stands regardless.
			r.logger.Debug("line item matches no inventory record",
				zap.Int64("order_id", order.ID),
				zap.String("name", li.Name),
				zap.String("location", li.Location))
			continue
		}

		if reverse {
			rec.Quantity += li.Quantity
			if rec.OrderID != nil && *rec.OrderID == order.ID {
				rec.OrderID = nil
			}
		} else {
			if err := r.policy(*rec, li.Quantity); err != nil {
				return nil, err
			}
			rec.Quantity -= li.Quantity
			orderID := order.ID
			rec.OrderID = &orderID
		}

		if !containsItem(adjusted, rec) {
			adjusted = append(adjusted, rec)
		}
	}

	out := make([]model.InventoryItem, len(adjusted))
	for i, rec := range adjusted {
		out[i] = *rec
	}
	return out, nil
}

func containsItem(items []*model.InventoryItem, item *model.InventoryItem) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
