package auditrepo

import (
	"context"

	"prodtrack/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists a new audit entry. The entry commits or rolls back with the
// enclosing transaction; a failed append aborts the mutation it records.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// History returns all entries for an entity ordered by timestamp ascending.
func (r *GormAuditRepository) History(ctx context.Context, entityType, entityID string) ([]*audit.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "entity_type = ? AND entity_id = ?", entityType, entityID).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
