// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit trail. Metadata is serialized to a JSON column; the
// repository exposes no update or delete operation.
package auditrepo

import (
	"encoding/json"
	"time"

	"prodtrack/internal/core/domain/model/audit"
	"prodtrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit entries.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType string    `gorm:"index:idx_audit_entity"`
	EntityID   string    `gorm:"index:idx_audit_entity"`
	Action     string
	Metadata   []byte    `gorm:"type:jsonb"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorName  string
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) (EntryDTO, error) {
	var metadata []byte
	if entry.Metadata() != nil {
		raw, err := json.Marshal(entry.Metadata())
		if err != nil {
			return EntryDTO{}, err
		}
		metadata = raw
	}

	return EntryDTO{
		ID:         entry.ID().Bytes(),
		EntityType: entry.EntityType(),
		EntityID:   entry.EntityID(),
		Action:     entry.Action(),
		Metadata:   metadata,
		ActorID:    entry.Actor().ID().Bytes(),
		ActorName:  entry.Actor().DisplayName(),
		CreatedAt:  entry.CreatedAt(),
	}, nil
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	actor, err := kernel.NewActor(actorID, dto.ActorName)
	if err != nil {
		return nil, err
	}

	var metadata map[string]any
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return audit.RestoreEntry(id, dto.EntityType, dto.EntityID, dto.Action, metadata, actor, dto.CreatedAt)
}
