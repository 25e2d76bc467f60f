// Package admin implements the shared-secret order listing.
package admin

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"

	"github.com/himanshuchauhan33/cracker-shop/internal/order"
)

// Service gates read access to the order list behind a shared secret.
type Service struct {
	secretHash [sha256.Size]byte
	orders     order.Repository
}

// NewService hashes the configured secret once so Authorize never holds the
// plaintext and the comparison is constant-time.
func NewService(secret string, orders order.Repository) *Service {
	return &Service{
		secretHash: sha256.Sum256([]byte(secret)),
		orders:     orders,
	}
}

// Authorize compares the supplied secret against the configured one.
// Hashing both sides first makes ConstantTimeCompare applicable regardless
// of length and keeps timing independent of how much of the guess matched.
func (s *Service) Authorize(supplied string) bool {
	h := sha256.Sum256([]byte(supplied))
	return subtle.ConstantTimeCompare(s.secretHash[:], h[:]) == 1
}

// ListOrders returns every order, newest first. A storage failure degrades
// to an empty listing: the error is logged but never shown to the caller.
func (s *Service) ListOrders(ctx context.Context) []order.Order {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "admin order listing failed", "error", err)
		return nil
	}
	return orders
}
