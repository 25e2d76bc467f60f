package cart

import "context"

// Store is the port for session-scoped cart persistence, keyed by an opaque
// session id. Implementations: Redis (production) and in-memory (dev/tests).
type Store interface {
	// Get returns the cart for the session. A session without a cart yields
	// an empty cart, not an error.
	Get(ctx context.Context, sessionID string) (Cart, error)

	// Put replaces the stored cart for the session.
	Put(ctx context.Context, sessionID string, c Cart) error

	// Delete removes the stored cart for the session.
	Delete(ctx context.Context, sessionID string) error
}
