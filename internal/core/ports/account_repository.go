package ports

import (
	"context"

	"prodtrack/internal/core/domain/model/account"
	"prodtrack/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for customer accounts.
type AccountRepository interface {
	// Add persists a new account.
	Add(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// Delete removes an account row. Callers must run the deletion guard
	// first; the repository itself does not check for dependent orders.
	Delete(ctx context.Context, id kernel.UUID) error
}
