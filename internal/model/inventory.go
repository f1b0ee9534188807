package model

// InventoryItem is a stocked item at a warehouse location.
// Quantity may go negative when the permissive stock policy is active
// (back-orders are not rejected by default).
type InventoryItem struct {
	ID        int64  `json:"itemId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Location  string `json:"location"`
	PhotoMime string `json:"photo_mime,omitempty"`

	// OrderID is an optional back-reference to the order that last touched
	// this record. It is informational only; order line items match
	// inventory by (name, location), never by id.
	OrderID *int64 `json:"orderId,omitempty"`
}

// Pair is a (name, location) key used to match order line items to
// inventory records.
type Pair struct {
	Name     string
	Location string
}

// Pair returns the item's (name, location) matching key.
func (i InventoryItem) Pair() Pair {
	return Pair{Name: i.Name, Location: i.Location}
}
