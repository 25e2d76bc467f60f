// Package order defines the durable order record and the repository port.
package order

import "time"

// LineItem is a priced snapshot of one cart entry, taken at checkout time.
// The snapshot is serialised into the order row so later catalog changes
// never affect historical orders.
type LineItem struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"qty"`
}

// Subtotal returns the line total at the snapshotted unit price.
func (i LineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Order is one row of the orders table. Append-only: after creation the only
// field ever updated is Paid, reserved for payment reconciliation.
type Order struct {
	ID           int64
	CustomerName string
	Email        string
	Phone        string
	Address      string
	DeliveryType string
	Items        []LineItem
	Total        float64
	Paid         bool
	CreatedAt    time.Time
}
