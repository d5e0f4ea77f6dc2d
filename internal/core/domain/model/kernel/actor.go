package kernel

import (
	"errors"

	"prodtrack/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor identifies the user performing a mutating operation. It is supplied by the
// authentication layer and attached to every state change for audit attribution.
//
// Actor is a value object: immutable, compared by value, and only constructible
// through NewActor.
type Actor struct {
	id          UUID
	displayName string

	isConstructed bool
}

// NewActor creates an Actor from the acting user's identity.
// The id must be a valid UUID and displayName must not be empty.
func NewActor(id UUID, displayName string) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if displayName == "" {
		return Actor{}, errs.NewValueIsRequiredError("displayName")
	}

	return Actor{
		id:            id,
		displayName:   displayName,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() UUID {
	return a.id
}

// DisplayName returns the actor's human-readable name.
func (a Actor) DisplayName() string {
	return a.displayName
}
