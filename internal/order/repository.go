package order

import "context"

// Repository is the port for durable order storage. The checkout flow and
// the admin view depend on this abstraction, not on SQLite directly, so the
// implementation can be swapped for in-memory (tests) or another engine.
type Repository interface {
	// Create inserts a new order and returns its generated id.
	// Items and Total are frozen at this point; Paid starts false.
	Create(ctx context.Context, o *Order) (int64, error)

	// Get returns a single order by id.
	Get(ctx context.Context, id int64) (*Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]Order, error)

	// MarkPaid flips the paid flag. No in-request code path calls it; it is
	// the hook for operator reconciliation after a provider outage.
	MarkPaid(ctx context.Context, id int64) error
}
