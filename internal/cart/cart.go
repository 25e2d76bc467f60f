// Package cart implements the per-visitor shopping cart and its session
// store. A Cart is a plain value — the HTTP layer loads it from the store,
// mutates it and writes it back, so the domain logic never touches shared
// state directly.
package cart

import (
	"errors"
	"strconv"

	"github.com/himanshuchauhan33/cracker-shop/internal/catalog"
	"github.com/himanshuchauhan33/cracker-shop/internal/order"
)

// ErrProductNotFound is returned by Add when the product id does not resolve
// in the catalog.
var ErrProductNotFound = errors.New("cart: product not found")

// Cart maps a product id (string form, matching the form field names) to a
// quantity. Quantities <= 0 are never stored; entries are removed instead.
type Cart map[string]int

// New returns an empty cart.
func New() Cart {
	return make(Cart)
}

// Add increments the quantity for the given product by one. The product must
// resolve in the catalog.
func (c Cart) Add(store *catalog.Store, productID int) error {
	if _, ok := store.Get(productID); !ok {
		return ErrProductNotFound
	}
	c[strconv.Itoa(productID)]++
	return nil
}

// SetQuantities replaces the whole cart from raw form values. Non-numeric
// values and quantities <= 0 are dropped silently — this is a best-effort
// policy, not a validation gate.
func (c Cart) SetQuantities(quantities map[string]string) {
	for id := range c {
		delete(c, id)
	}
	for id, raw := range quantities {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			continue
		}
		c[id] = qty
	}
}

// LineItems joins the cart against the catalog and returns the priced items
// plus their total. Entries whose product id no longer resolves are dropped
// silently, tolerating catalog drift between page loads.
func (c Cart) LineItems(store *catalog.Store) ([]order.LineItem, float64) {
	items := make([]order.LineItem, 0, len(c))
	var total float64
	for _, p := range store.All() {
		qty, ok := c[strconv.Itoa(p.ID)]
		if !ok {
			continue
		}
		item := order.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  qty,
		}
		items = append(items, item)
		total += item.Subtotal()
	}
	return items, total
}

// Clear empties the cart in place. Called only after the order row is
// durably persisted.
func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool {
	return len(c) == 0
}
