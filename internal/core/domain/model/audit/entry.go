// Package audit defines the append-only audit trail entry. Entries describe
// state-changing actions with actor attribution and are never updated or
// deleted once written: there is no mutation surface anywhere in the contract.
package audit

import (
	"errors"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Entity types recorded in the audit trail.
const (
	EntityOrder     = "order"
	EntityOrderItem = "order_item"
	EntityAccount   = "account"
)

// Action codes recorded in the audit trail.
const (
	ActionItemStageChanged        = "ITEM_STAGE_CHANGED"
	ActionItemMeasurementsUpdated = "ITEM_MEASUREMENTS_UPDATED"
	ActionAccountDeleted          = "ACCOUNT_DELETED"
)

// Entry is a single audit trail record: who did what to which entity, when,
// with a free-form structured payload describing the change.
type Entry struct {
	id kernel.UUID

	entityType string
	entityID   string

	action   string
	metadata map[string]any

	actor kernel.Actor

	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit Entry. Metadata may be nil; entityType, entityID,
// action, and a constructed actor are required. Persistence of the entry is a
// correctness requirement for the enclosing mutation, never best-effort.
func NewEntry(
	id kernel.UUID,
	entityType, entityID, action string,
	metadata map[string]any,
	actor kernel.Actor,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		metadata:      metadata,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setEntityType(entityType),
		e.setEntityID(entityID),
		e.setAction(action),
		e.setActor(actor),
		e.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	entityType, entityID, action string,
	metadata map[string]any,
	actor kernel.Actor,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(id, entityType, entityID, action, metadata, actor, createdAt)
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// EntityType returns the audited entity's type.
func (e *Entry) EntityType() string { return e.entityType }

// EntityID returns the audited entity's identifier.
func (e *Entry) EntityID() string { return e.entityID }

// Action returns the action code.
func (e *Entry) Action() string { return e.action }

// Metadata returns the structured payload describing the change.
func (e *Entry) Metadata() map[string]any { return e.metadata }

// Actor returns the acting user's identity.
func (e *Entry) Actor() kernel.Actor { return e.actor }

// CreatedAt returns the entry timestamp.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setEntityType(entityType string) error {
	if entityType == "" {
		return errs.NewValueIsRequiredError("entityType")
	}
	e.entityType = entityType
	return nil
}

func (e *Entry) setEntityID(entityID string) error {
	if entityID == "" {
		return errs.NewValueIsRequiredError("entityID")
	}
	e.entityID = entityID
	return nil
}

func (e *Entry) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	e.action = action
	return nil
}

func (e *Entry) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	e.actor = actor
	return nil
}

func (e *Entry) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	e.createdAt = createdAt
	return nil
}
