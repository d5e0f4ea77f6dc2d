package order

import (
	"errors"
	"sort"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"
)

// ErrStatusEventIsNotConstructed is returned when a StatusEvent was not created
// through NewStatusEvent or RestoreStatusEvent.
var ErrStatusEventIsNotConstructed = errors.New("StatusEvent must be created via NewStatusEvent or RestoreStatusEvent constructor")

// StatusEvent records that an item reached a stage at a point in time, with an
// optional note. Events are append-only and write-once: the stage history of an
// item is reconstructed by replaying its events in timestamp order.
type StatusEvent struct {
	id      kernel.UUID
	itemID  kernel.UUID
	orderID kernel.UUID

	stage     stage.Stage
	note      string
	createdAt time.Time

	isConstructed bool
}

// NewStatusEvent creates a StatusEvent for an item reaching a stage.
func NewStatusEvent(id, itemID, orderID kernel.UUID, eventStage stage.Stage, note string, createdAt time.Time) (*StatusEvent, error) {
	ev := &StatusEvent{
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		ev.setID(id),
		ev.setItemID(itemID),
		ev.setOrderID(orderID),
		ev.setStage(eventStage),
		ev.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return ev, nil
}

// RestoreStatusEvent reconstructs a StatusEvent from persistence.
func RestoreStatusEvent(id, itemID, orderID kernel.UUID, eventStage stage.Stage, note string, createdAt time.Time) (*StatusEvent, error) {
	return NewStatusEvent(id, itemID, orderID, eventStage, note, createdAt)
}

// Validate ensures the StatusEvent was created through a constructor.
func (e *StatusEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrStatusEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *StatusEvent) ID() kernel.UUID { return e.id }

// ItemID returns the identifier of the item this event belongs to.
func (e *StatusEvent) ItemID() kernel.UUID { return e.itemID }

// OrderID returns the identifier of the owning order.
func (e *StatusEvent) OrderID() kernel.UUID { return e.orderID }

// Stage returns the stage the item reached.
func (e *StatusEvent) Stage() stage.Stage { return e.stage }

// Note returns the optional free-form note.
func (e *StatusEvent) Note() string { return e.note }

// CreatedAt returns the event timestamp.
func (e *StatusEvent) CreatedAt() time.Time { return e.createdAt }

func (e *StatusEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *StatusEvent) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	e.itemID = itemID
	return nil
}

func (e *StatusEvent) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *StatusEvent) setStage(eventStage stage.Stage) error {
	if err := eventStage.Validate(); err != nil {
		return err
	}
	e.stage = eventStage
	return nil
}

func (e *StatusEvent) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	e.createdAt = createdAt
	return nil
}

// RegressionStep is a single rank-decreasing transition in an item's stage
// history, the rework indicator the First-Pass-Yield report counts.
type RegressionStep struct {
	From stage.Stage
	To   stage.Stage
	Note string
	At   time.Time
}

// Regressions replays status events in timestamp order and returns a
// RegressionStep for every rank-decreasing adjacent transition. The input is
// sorted defensively so callers can pass events as loaded.
func Regressions(events []*StatusEvent) []RegressionStep {
	if len(events) < 2 {
		return nil
	}

	sorted := make([]*StatusEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt().Before(sorted[b].CreatedAt())
	})

	var steps []RegressionStep
	for idx := 1; idx < len(sorted); idx++ {
		prev, curr := sorted[idx-1], sorted[idx]
		if curr.Stage().Rank() < prev.Stage().Rank() {
			steps = append(steps, RegressionStep{
				From: prev.Stage(),
				To:   curr.Stage(),
				Note: curr.Note(),
				At:   curr.CreatedAt(),
			})
		}
	}

	return steps
}
