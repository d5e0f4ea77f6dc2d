package commands

import (
	"errors"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/pkg/guard"
)

// ErrDeleteAccountCommandIsNotConstructed is returned when the command was not
// created through NewDeleteAccountCommand.
var ErrDeleteAccountCommandIsNotConstructed = errors.New(
	"DeleteAccountCommand must be created via NewDeleteAccountCommand constructor",
)

// DeleteAccountCommand requests deletion of a customer account on behalf of an
// actor. Deletion is refused while any order references the account.
type DeleteAccountCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteAccountCommand creates an account deletion command.
func NewDeleteAccountCommand(accountID kernel.UUID, actor kernel.Actor) (DeleteAccountCommand, error) {
	cmd := DeleteAccountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAccountID(accountID),
		cmd.setActor(actor),
	); err != nil {
		return DeleteAccountCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteAccountCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAccountCommandIsNotConstructed)
}

// AccountID returns the identifier of the account to delete.
func (c DeleteAccountCommand) AccountID() kernel.UUID {
	return c.accountID
}

// Actor returns the acting user's identity.
func (c DeleteAccountCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *DeleteAccountCommand) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	c.accountID = accountID
	return nil
}

func (c *DeleteAccountCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
