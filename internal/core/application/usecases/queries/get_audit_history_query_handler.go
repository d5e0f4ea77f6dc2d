package queries

import (
	"context"
	"encoding/json"
	"time"

	"prodtrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditHistoryQueryHandler reads the append-only audit trail.
type GetAuditHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditHistoryQueryHandler creates a handler for audit history queries.
func NewGetAuditHistoryQueryHandler(db *gorm.DB) GetAuditHistoryQueryHandler {
	return GetAuditHistoryQueryHandler{db: db}
}

// Handle executes the history query, decoding each entry's metadata JSON.
func (h GetAuditHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetAuditHistoryQuery,
) (GetAuditHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAuditHistoryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, action, metadata, actor_id, actor_name, created_at
		FROM audit_entries
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at, id
	`, query.EntityType(), query.EntityID()).Rows()
	if err != nil {
		return GetAuditHistoryQueryResponse{}, err
	}
	defer rows.Close()

	response := GetAuditHistoryQueryResponse{
		EntityType: query.EntityType(),
		EntityID:   query.EntityID(),
		Entries:    make([]AuditEntryResponse, 0),
	}

	for rows.Next() {
		var (
			id, actorID uuid.UUID
			action      string
			metadata    []byte
			actorName   string
			createdAt   time.Time
		)
		if err = rows.Scan(&id, &action, &metadata, &actorID, &actorName, &createdAt); err != nil {
			return GetAuditHistoryQueryResponse{}, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetAuditHistoryQueryResponse{}, idErr
		}
		entryActorID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return GetAuditHistoryQueryResponse{}, idErr
		}

		entry := AuditEntryResponse{
			ID:        entryID,
			Action:    action,
			ActorID:   entryActorID,
			ActorName: actorName,
			CreatedAt: createdAt,
		}
		if len(metadata) > 0 {
			if err = json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return GetAuditHistoryQueryResponse{}, err
			}
		}

		response.Entries = append(response.Entries, entry)
	}
	if err = rows.Err(); err != nil {
		return GetAuditHistoryQueryResponse{}, err
	}

	return response, nil
}
