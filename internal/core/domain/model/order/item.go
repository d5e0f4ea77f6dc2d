package order

import (
	"errors"
	"fmt"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is a single line of a manufacturing order. It carries its own production
// stage, normalized measurement fields, and a soft-delete timestamp.
//
// Measurement fields are always numeric or nil past the normalization boundary;
// textual representations never reach a constructed Item.
type Item struct {
	id      kernel.UUID
	orderID kernel.UUID

	productCode string
	quantity    int
	price       float64

	stage stage.Stage

	height *float64
	width  *float64
	length *float64
	weight *float64

	measurementUnit string
	weightUnit      string

	// archivedAt is the soft-delete timestamp; nil while the item is active.
	archivedAt *time.Time

	isConstructed bool
}

// NewItem creates an Item in the NEW stage with no measurements.
func NewItem(id, orderID kernel.UUID, productCode string, quantity int, price float64) (*Item, error) {
	it := &Item{
		stage:         stage.New,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setOrderID(orderID),
		it.setProductCode(productCode),
		it.setQuantity(quantity),
		it.setPrice(price),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreItem reconstructs an Item from persistence.
// Used by repository implementations only.
func RestoreItem(
	id, orderID kernel.UUID,
	productCode string,
	quantity int,
	price float64,
	itemStage stage.Stage,
	height, width, length, weight *float64,
	measurementUnit, weightUnit string,
	archivedAt *time.Time,
) (*Item, error) {
	it, err := NewItem(id, orderID, productCode, quantity, price)
	if err != nil {
		return nil, err
	}

	if err = itemStage.Validate(); err != nil {
		return nil, err
	}

	it.stage = itemStage
	it.height = height
	it.width = width
	it.length = length
	it.weight = weight
	it.measurementUnit = measurementUnit
	it.weightUnit = weightUnit
	it.archivedAt = archivedAt
	return it, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the owning order's identifier.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// ProductCode returns the manufactured product's code.
func (i *Item) ProductCode() string {
	return i.productCode
}

// Quantity returns the number of units on this line.
func (i *Item) Quantity() int {
	return i.quantity
}

// Price returns the line price.
func (i *Item) Price() float64 {
	return i.price
}

// Stage returns the item's current production stage.
func (i *Item) Stage() stage.Stage {
	return i.stage
}

// Height returns the normalized height, nil when unset.
func (i *Item) Height() *float64 { return i.height }

// Width returns the normalized width, nil when unset.
func (i *Item) Width() *float64 { return i.width }

// Length returns the normalized length, nil when unset.
func (i *Item) Length() *float64 { return i.length }

// Weight returns the normalized weight, nil when unset.
func (i *Item) Weight() *float64 { return i.weight }

// MeasurementUnit returns the unit tag for the dimensional fields.
func (i *Item) MeasurementUnit() string { return i.measurementUnit }

// WeightUnit returns the unit tag for the weight field.
func (i *Item) WeightUnit() string { return i.weightUnit }

// ArchivedAt returns the soft-delete timestamp, nil while active.
func (i *Item) ArchivedAt() *time.Time { return i.archivedAt }

// IsArchived reports whether the item has been soft-deleted.
func (i *Item) IsArchived() bool {
	return i.archivedAt != nil
}

// Archive soft-deletes the item, preserving its event and audit history.
// Archiving an already-archived item keeps the original timestamp.
func (i *Item) Archive(at time.Time) {
	if i.archivedAt == nil {
		i.archivedAt = &at
	}
}

// Transition describes the outcome of a stage change on an item.
type Transition struct {
	From      stage.Stage
	To        stage.Stage
	Direction stage.Direction
}

// IsRegression reports whether the transition moved to a lower rank.
func (t Transition) IsRegression() bool {
	return t.Direction == stage.Regression
}

// TransitionTo moves the item to the target stage. The target must be a member
// of the known stage set; InvalidStageError is returned otherwise and the item
// is left untouched. An equal-rank target is a no-op on the item's stage but is
// still reported so the caller can record a note-only status event.
func (i *Item) TransitionTo(target stage.Stage) (Transition, error) {
	if err := target.Validate(); err != nil {
		return Transition{}, err
	}

	tr := Transition{
		From:      i.stage,
		To:        target,
		Direction: i.stage.DirectionTo(target),
	}

	if tr.Direction != stage.Unchanged {
		i.stage = target
	}
	return tr, nil
}

// ApplyMeasurements applies a three-state measurement patch to the item and
// returns the fields that were set, keyed by field name. Fields omitted from
// the patch are left untouched; explicit nulls clear the stored value.
func (i *Item) ApplyMeasurements(patch MeasurementPatch) map[string]*float64 {
	fields := PrepareMeasurementUpdate(patch)

	for name, value := range fields {
		switch name {
		case FieldHeight:
			i.height = value
		case FieldWidth:
			i.width = value
		case FieldLength:
			i.length = value
		case FieldWeight:
			i.weight = value
		}
	}

	if patch.MeasurementUnit != nil {
		i.measurementUnit = *patch.MeasurementUnit
	}
	if patch.WeightUnit != nil {
		i.weightUnit = *patch.WeightUnit
	}

	return fields
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setProductCode(productCode string) error {
	if productCode == "" {
		return errs.NewValueIsRequiredError("productCode")
	}
	i.productCode = productCode
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%f is negative", price))
	}
	i.price = price
	return nil
}
