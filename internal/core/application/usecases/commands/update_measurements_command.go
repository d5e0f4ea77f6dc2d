package commands

import (
	"errors"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/pkg/errs"
	"prodtrack/internal/pkg/guard"
)

// ErrUpdateMeasurementsCommandIsNotConstructed is returned when the command
// was not created through NewUpdateMeasurementsCommand.
var ErrUpdateMeasurementsCommandIsNotConstructed = errors.New(
	"UpdateMeasurementsCommand must be created via NewUpdateMeasurementsCommand constructor",
)

// ItemMeasurementPatch pairs an item with its measurement patch. The patch
// distinguishes omitted fields from explicit nulls: omitted fields keep their
// stored value, nulls clear it.
type ItemMeasurementPatch struct {
	ItemID kernel.UUID
	Patch  order.MeasurementPatch
}

// UpdateMeasurementsCommand requests measurement updates for one or more items
// on behalf of an actor. Single-item and bulk updates share this command; a
// bulk update is applied atomically, all items or none.
type UpdateMeasurementsCommand struct { //nolint:recvcheck //using for validation
	patches []ItemMeasurementPatch
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateMeasurementsCommand creates a measurement update command.
// At least one patch is required and every patch must carry a valid item ID.
func NewUpdateMeasurementsCommand(
	patches []ItemMeasurementPatch,
	actor kernel.Actor,
) (UpdateMeasurementsCommand, error) {
	cmd := UpdateMeasurementsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPatches(patches),
		cmd.setActor(actor),
	); err != nil {
		return UpdateMeasurementsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMeasurementsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMeasurementsCommandIsNotConstructed)
}

// Patches returns the per-item measurement patches.
func (c UpdateMeasurementsCommand) Patches() []ItemMeasurementPatch {
	return c.patches
}

// Actor returns the acting user's identity.
func (c UpdateMeasurementsCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *UpdateMeasurementsCommand) setPatches(patches []ItemMeasurementPatch) error {
	if len(patches) == 0 {
		return errs.NewValueIsRequiredError("patches")
	}
	for _, p := range patches {
		if err := p.ItemID.Validate(); err != nil {
			return err
		}
	}
	c.patches = patches
	return nil
}

func (c *UpdateMeasurementsCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
