package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"logitrack/internal/model"
)

// InsertOrder inserts an order with its line items in a single transaction
// and returns the assigned order id. Orders created without a session id get
// a generated one, so cart-like transient orders stay addressable.
func InsertOrder(ctx context.Context, db *sql.DB, order *model.Order) (int64, error) {
	if order.SessionID == "" {
		order.SessionID = uuid.NewString()
	}
	if order.DatePlaced.IsZero() {
		order.DatePlaced = time.Now().UTC()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_name, session_id, date_placed) VALUES (?, ?, ?)`,
		order.CustomerName, order.SessionID, order.DatePlaced,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting order id: %w", err)
	}

	for i := range order.Items {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, name, location, quantity) VALUES (?, ?, ?, ?)`,
			orderID, order.Items[i].Name, order.Items[i].Location, order.Items[i].Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("getting order item id: %w", err)
		}
		order.Items[i].ID = itemID
		order.Items[i].OrderID = orderID
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order: %w", err)
	}

	order.ID = orderID
	return orderID, nil
}

// GetOrder returns an order with its line items, or nil if absent.
func GetOrder(ctx context.Context, db *sql.DB, id int64) (*model.Order, error) {
	order := &model.Order{}
	var sessionID sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, customer_name, session_id, date_placed FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.CustomerName, &sessionID, &order.DatePlaced)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	order.SessionID = sessionID.String

	items, err := loadLineItems(ctx, db, []int64{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []model.LineItem{}
	}
	return order, nil
}

// ListOrders returns one page of orders, ordered by id, with line items
// eagerly loaded.
func ListOrders(ctx context.Context, db *sql.DB, page, pageSize int) ([]model.Order, error) {
	page, pageSize = NormalizePage(page, pageSize)

	rows, err := db.QueryContext(ctx,
		`SELECT id, customer_name, session_id, date_placed
		 FROM orders ORDER BY id LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var ids []int64
	for rows.Next() {
		var order model.Order
		var sessionID sql.NullString
		if err := rows.Scan(&order.ID, &order.CustomerName, &sessionID, &order.DatePlaced); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		order.SessionID = sessionID.String
		order.Items = []model.LineItem{}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := loadLineItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if li := items[orders[i].ID]; li != nil {
			orders[i].Items = li
		}
	}
	return orders, nil
}

// DeleteOrder deletes an order and its line items in a single transaction.
// Returns whether the order existed.
func DeleteOrder(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Line items are owned by the order; remove them explicitly rather than
	// relying on the cascade, so the invariant holds even without foreign
	// keys enabled.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE order_id = ?`, id,
	); err != nil {
		return false, fmt.Errorf("deleting order items: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM orders WHERE id = ?`, id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting order: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing order deletion: %w", err)
	}
	return n > 0, nil
}

// loadLineItems returns line items grouped by order id.
func loadLineItems(ctx context.Context, db *sql.DB, orderIDs []int64) (map[int64][]model.LineItem, error) {
	if len(orderIDs) == 0 {
		return map[int64][]model.LineItem{}, nil
	}

	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")

	rows, err := db.QueryContext(ctx,
		`SELECT id, order_id, name, location, quantity
		 FROM order_items WHERE order_id IN (`+placeholders+`) ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("loading order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]model.LineItem)
	for rows.Next() {
		var li model.LineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.Name, &li.Location, &li.Quantity); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items[li.OrderID] = append(items[li.OrderID], li)
	}
	return items, rows.Err()
}
