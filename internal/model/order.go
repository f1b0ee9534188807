package model

import "time"

// Order is a customer order. It owns its line items: deleting the order
// deletes them too.
type Order struct {
	ID           int64      `json:"orderId"`
	CustomerName string     `json:"customerName"`
	SessionID    string     `json:"sessionId,omitempty"`
	DatePlaced   time.Time  `json:"datePlaced"`
	Items        []LineItem `json:"items"`
}

// LineItem is a snapshot of what was ordered: name, location and quantity
// as requested at order time. It carries no inventory id; reconciliation
// matches it to inventory by exact (name, location) equality.
type LineItem struct {
	ID       int64  `json:"id"`
	OrderID  int64  `json:"-"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Quantity int    `json:"quantity"`
}

// Pair returns the line item's (name, location) matching key.
func (l LineItem) Pair() Pair {
	return Pair{Name: l.Name, Location: l.Location}
}
