package order

import (
	"errors"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemBelongsToOtherOrder is returned when attaching an item whose order
	// reference points at a different order.
	ErrItemBelongsToOtherOrder = errors.New("item belongs to a different order")
)

// Order is the aggregate root for a manufacturing order. It owns an ordered
// sequence of items and a derived aggregate stage.
//
// Invariants:
//   - Must have a valid unique identifier and owning account reference
//   - Purchase-order number must not be empty
//   - When non-archived items exist, the aggregate stage equals the
//     minimum-rank stage among them (see RecomputeStage)
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id kernel.UUID

	// accountID references the owning Account.
	accountID kernel.UUID

	// purchaseOrder is the customer's PO number.
	purchaseOrder string

	// salesRep is the assigned sales representative; empty when unassigned.
	salesRep string

	// stage is the derived aggregate stage.
	stage stage.Stage

	createdAt time.Time

	items []*Item

	isConstructed bool
}

// NewOrder creates an Order in the NEW stage with no items.
// Items are attached afterwards with AttachItem.
func NewOrder(id, accountID kernel.UUID, purchaseOrder, salesRep string, createdAt time.Time) (*Order, error) {
	o := &Order{
		salesRep:      salesRep,
		stage:         stage.New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setAccountID(accountID),
		o.setPurchaseOrder(purchaseOrder),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its stored
// aggregate stage and items. Used by repository implementations only.
func RestoreOrder(
	id, accountID kernel.UUID,
	purchaseOrder, salesRep string,
	aggregateStage stage.Stage,
	createdAt time.Time,
	items []*Item,
) (*Order, error) {
	o, err := NewOrder(id, accountID, purchaseOrder, salesRep, createdAt)
	if err != nil {
		return nil, err
	}

	if err = aggregateStage.Validate(); err != nil {
		return nil, err
	}
	o.stage = aggregateStage

	for _, it := range items {
		if err = o.AttachItem(it); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// AccountID returns the owning account's identifier.
func (o *Order) AccountID() kernel.UUID {
	return o.accountID
}

// PurchaseOrder returns the customer's purchase-order number.
func (o *Order) PurchaseOrder() string {
	return o.purchaseOrder
}

// SalesRep returns the assigned sales representative, empty when unassigned.
func (o *Order) SalesRep() string {
	return o.salesRep
}

// Stage returns the derived aggregate stage.
func (o *Order) Stage() stage.Stage {
	return o.stage
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns the order's items in their stored sequence.
func (o *Order) Items() []*Item {
	return o.items
}

// AttachItem adds an item to the order and recomputes the aggregate stage.
// The item must be valid and reference this order.
func (o *Order) AttachItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if !item.OrderID().IsEqual(o.id) {
		return ErrItemBelongsToOtherOrder
	}

	o.items = append(o.items, item)
	o.RecomputeStage()
	return nil
}

// RecomputeStage derives the aggregate stage as the minimum-rank stage among
// non-archived items: an order is only as advanced as its least-progressed
// item. An order whose items are all archived keeps its current stage.
// Returns the (possibly updated) aggregate stage.
func (o *Order) RecomputeStage() stage.Stage {
	minStage := stage.Unknown
	for _, it := range o.items {
		if it.IsArchived() {
			continue
		}
		if minStage == stage.Unknown || it.Stage().Rank() < minStage.Rank() {
			minStage = it.Stage()
		}
	}

	if minStage != stage.Unknown {
		o.stage = minStage
	}
	return o.stage
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	o.accountID = accountID
	return nil
}

func (o *Order) setPurchaseOrder(purchaseOrder string) error {
	if purchaseOrder == "" {
		return errs.NewValueIsRequiredError("purchaseOrder")
	}
	o.purchaseOrder = purchaseOrder
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
