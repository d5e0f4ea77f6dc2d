package commands

import (
	"errors"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/guard"
)

// ErrTransitionItemStageCommandIsNotConstructed is returned when the command
// was not created through NewTransitionItemStageCommand.
var ErrTransitionItemStageCommandIsNotConstructed = errors.New(
	"TransitionItemStageCommand must be created via NewTransitionItemStageCommand constructor",
)

// TransitionItemStageCommand requests moving an item to a target production
// stage on behalf of an actor, with an optional note. Moving to a lower rank is
// a regression (rework) and is recorded as such, not rejected.
type TransitionItemStageCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	target stage.Stage
	actor  kernel.Actor
	note   string

	guard guard.ConstructorGuard
}

// NewTransitionItemStageCommand creates a stage transition command.
// The target stage must be a member of the known stage set; InvalidStageError
// is returned otherwise, before any persistence is touched.
func NewTransitionItemStageCommand(
	itemID kernel.UUID,
	target stage.Stage,
	actor kernel.Actor,
	note string,
) (TransitionItemStageCommand, error) {
	cmd := TransitionItemStageCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionItemStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionItemStageCommand) Validate() error {
	return c.guard.Validate(ErrTransitionItemStageCommandIsNotConstructed)
}

// ItemID returns the identifier of the item to transition.
func (c TransitionItemStageCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Target returns the requested target stage.
func (c TransitionItemStageCommand) Target() stage.Stage {
	return c.target
}

// Actor returns the acting user's identity.
func (c TransitionItemStageCommand) Actor() kernel.Actor {
	return c.actor
}

// Note returns the optional free-form note.
func (c TransitionItemStageCommand) Note() string {
	return c.note
}

func (c *TransitionItemStageCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *TransitionItemStageCommand) setTarget(target stage.Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionItemStageCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
