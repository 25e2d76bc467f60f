// Package catalog holds the immutable product list.
//
// The catalog is loaded once at process start and never mutated afterwards,
// so the Store is safe for concurrent readers without locking.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Product is one entry of the product list. Display-only fields such as the
// image path travel along untouched; the shop logic only cares about ID,
// Name and Price.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// Store is an id-keyed view over the loaded product list.
type Store struct {
	products []Product
	byID     map[int]Product
}

// New builds a Store from an already-decoded product slice.
// Duplicate IDs keep the first occurrence.
func New(products []Product) *Store {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}
	return &Store{products: products, byID: byID}
}

// LoadFile reads the product list from a JSON file. A missing or malformed
// file degrades to an empty catalog; the returned error is informational so
// the caller can log it, the Store is always usable.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return New(nil), fmt.Errorf("catalog: read %q: %w", path, err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return New(nil), fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	return New(products), nil
}

// Get returns the product with the given id.
func (s *Store) Get(id int) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// All returns the products in their original file order.
func (s *Store) All() []Product {
	return s.products
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.byID)
}
