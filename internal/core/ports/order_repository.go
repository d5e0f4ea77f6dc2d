// Package ports defines repository and unit-of-work interfaces for the
// production tracker core. These interfaces establish contracts between the
// application layer and infrastructure, enabling dependency inversion and
// substitution with in-memory fakes for tests.
package ports

import (
	"context"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the order aggregate,
// its items, and their append-only status-event history.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order row (aggregate stage,
	// sales rep). Items are updated through UpdateItem.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all of its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetItem retrieves a single item by its identifier.
	GetItem(ctx context.Context, id kernel.UUID) (*order.Item, error)

	// GetItemForUpdate retrieves an item under a row lock, serializing
	// concurrent stage transitions on the same item within the enclosing
	// transaction.
	GetItemForUpdate(ctx context.Context, id kernel.UUID) (*order.Item, error)

	// UpdateItem persists changes to an existing item.
	UpdateItem(ctx context.Context, item *order.Item) error

	// AppendStatusEvent appends an immutable status event. There is no
	// update or delete counterpart.
	AppendStatusEvent(ctx context.Context, event *order.StatusEvent) error

	// ListStatusEventsForItem returns an item's status events ordered by
	// timestamp ascending.
	ListStatusEventsForItem(ctx context.Context, itemID kernel.UUID) ([]*order.StatusEvent, error)

	// ListForAccount returns all orders owned by an account, items included,
	// regardless of item archive state.
	ListForAccount(ctx context.Context, accountID kernel.UUID) ([]*order.Order, error)
}
