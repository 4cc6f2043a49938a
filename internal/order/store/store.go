// Package store provides an interface for order storage operations.
package store

import (
	"context"

	"github.com/google/uuid"
)

// OrderStore is an interface for order storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type OrderStore interface {
	// Create persists an order header and its line items atomically.
	// Returns ErrDuplicateOrderID when the order identifier is already taken.
	Create(ctx context.Context, order *Order, items []OrderItem) error

	// FindByID retrieves the order with its line items. The lookup is
	// qualified by owner: an order belonging to another user is reported as
	// ErrOrderNotFound.
	FindByID(ctx context.Context, orderID string, userID uuid.UUID) (*Order, []OrderItem, error)

	// ListByUser returns the user's orders newest-first, each with its line
	// items. Cancelled orders are excluded unless includeCancelled is set.
	ListByUser(ctx context.Context, userID uuid.UUID, includeCancelled bool) ([]Order, map[string][]OrderItem, error)

	// UpdateStatus forces the order into the given status, refreshing the
	// status timestamp. A non-nil tracking number is assigned only when the
	// order has none yet. Returns the updated row.
	UpdateStatus(ctx context.Context, orderID, status string, trackingNumber *string) (*Order, error)

	// Cancel transitions the order to Cancelled iff it is owned by userID
	// and currently Processing, as a single conditional write. Returns
	// ErrOrderNotFound when absent or not owned, or InvalidTransitionError
	// carrying the current status when the lifecycle rule forbids it.
	Cancel(ctx context.Context, orderID string, userID uuid.UUID) (*Order, error)
}
