package ports

import (
	"context"

	"prodtrack/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for the append-only audit
// trail. Entries are immutable once written: the interface deliberately has no
// update or delete operation, and Append failures must propagate because the
// audit trail is a correctness requirement of every mutation, not best-effort
// logging.
type AuditRepository interface {
	// Append persists a new audit entry within the enclosing transaction.
	Append(ctx context.Context, entry *audit.Entry) error

	// History returns all entries for an entity ordered by timestamp
	// ascending. The result is a fresh slice, safe to re-iterate.
	History(ctx context.Context, entityType, entityID string) ([]*audit.Entry, error)
}
