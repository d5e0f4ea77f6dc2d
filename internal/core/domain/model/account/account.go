// Package account contains the customer Account aggregate. Accounts own orders;
// the deletion guard in the application layer blocks removing an account while
// any order rows still reference it.
package account

import (
	"errors"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/pkg/errs"
)

// ErrAccountIsNotConstructed is returned when an Account was not created
// through NewAccount or RestoreAccount.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")

// Account represents a customer of the shop.
type Account struct {
	id kernel.UUID

	name  string
	email string
	phone string

	isConstructed bool
}

// NewAccount creates an Account. Name is required; contact fields are optional.
func NewAccount(id kernel.UUID, name, email, phone string) (*Account, error) {
	a := &Account{
		email:         email,
		phone:         phone,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount reconstructs an Account from persistence.
func RestoreAccount(id kernel.UUID, name, email, phone string) (*Account, error) {
	return NewAccount(id, name, email, phone)
}

// Validate ensures the Account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID { return a.id }

// Name returns the customer name.
func (a *Account) Name() string { return a.name }

// Email returns the contact email, possibly empty.
func (a *Account) Email() string { return a.email }

// Phone returns the contact phone number, possibly empty.
func (a *Account) Phone() string { return a.phone }

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}
