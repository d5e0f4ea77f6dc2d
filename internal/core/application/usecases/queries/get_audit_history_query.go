package queries

import (
	"errors"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/pkg/errs"
	"prodtrack/internal/pkg/guard"
)

var ErrGetAuditHistoryQueryIsNotConstructed = errors.New(
	"GetAuditHistoryQuery must be created via NewGetAuditHistoryQuery constructor",
)

// GetAuditHistoryQuery retrieves the audit trail of one entity, oldest first.
type GetAuditHistoryQuery struct {
	entityType string
	entityID   string

	guard guard.ConstructorGuard
}

// NewGetAuditHistoryQuery creates an audit history query.
func NewGetAuditHistoryQuery(entityType, entityID string) (GetAuditHistoryQuery, error) {
	if entityType == "" {
		return GetAuditHistoryQuery{}, errs.NewValueIsRequiredError("entityType")
	}
	if entityID == "" {
		return GetAuditHistoryQuery{}, errs.NewValueIsRequiredError("entityID")
	}

	return GetAuditHistoryQuery{
		entityType: entityType,
		entityID:   entityID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditHistoryQueryIsNotConstructed)
}

// EntityType returns the audited entity's type.
func (q GetAuditHistoryQuery) EntityType() string { return q.entityType }

// EntityID returns the audited entity's identifier.
func (q GetAuditHistoryQuery) EntityID() string { return q.entityID }

// AuditEntryResponse is one audit trail entry.
type AuditEntryResponse struct {
	ID        kernel.UUID
	Action    string
	Metadata  map[string]any
	ActorID   kernel.UUID
	ActorName string
	CreatedAt time.Time
}

// GetAuditHistoryQueryResponse holds an entity's audit trail ascending by
// timestamp.
type GetAuditHistoryQueryResponse struct {
	EntityType string
	EntityID   string
	Entries    []AuditEntryResponse
}
