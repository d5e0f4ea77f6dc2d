// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, its items, and their append-only status-event history, handling
// the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/core/domain/model/stage"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The stored stage is the derived aggregate stage, kept in sync on every item
// transition so report queries never have to recompute it.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID `gorm:"type:uuid;index"`
	PurchaseOrder string
	SalesRep      string
	Stage         string `gorm:"index"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order items.
// Measurement columns are nullable; NULL means the value was never set or was
// explicitly cleared.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductCode string
	Quantity    int
	Price       float64
	Stage       string `gorm:"index"`

	Height *float64
	Width  *float64
	Length *float64
	Weight *float64

	MeasurementUnit string
	WeightUnit      string

	ArchivedAt *time.Time
}

// TableName specifies the database table name for order item entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusEventDTO represents the database structure for the append-only
// per-item stage history. Rows are never updated or deleted.
type StatusEventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Stage     string
	Note      string
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for status event entities.
func (StatusEventDTO) TableName() string {
	return "status_events"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		AccountID:     aggregate.AccountID().Bytes(),
		PurchaseOrder: aggregate.PurchaseOrder(),
		SalesRep:      aggregate.SalesRep(),
		Stage:         aggregate.Stage().String(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	orderStage, err := stage.Parse(dto.Stage)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, accountID, dto.PurchaseOrder, dto.SalesRep, orderStage, dto.CreatedAt, items)
}

func itemFromDomain(item *order.Item) ItemDTO {
	return ItemDTO{
		ID:              item.ID().Bytes(),
		OrderID:         item.OrderID().Bytes(),
		ProductCode:     item.ProductCode(),
		Quantity:        item.Quantity(),
		Price:           item.Price(),
		Stage:           item.Stage().String(),
		Height:          item.Height(),
		Width:           item.Width(),
		Length:          item.Length(),
		Weight:          item.Weight(),
		MeasurementUnit: item.MeasurementUnit(),
		WeightUnit:      item.WeightUnit(),
		ArchivedAt:      item.ArchivedAt(),
	}
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	itemStage, err := stage.Parse(dto.Stage)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id, orderID,
		dto.ProductCode, dto.Quantity, dto.Price,
		itemStage,
		dto.Height, dto.Width, dto.Length, dto.Weight,
		dto.MeasurementUnit, dto.WeightUnit,
		dto.ArchivedAt,
	)
}

func eventFromDomain(event *order.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:        event.ID().Bytes(),
		ItemID:    event.ItemID().Bytes(),
		OrderID:   event.OrderID().Bytes(),
		Stage:     event.Stage().String(),
		Note:      event.Note(),
		CreatedAt: event.CreatedAt(),
	}
}

func eventToDomain(dto StatusEventDTO) (*order.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	eventStage, err := stage.Parse(dto.Stage)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusEvent(id, itemID, orderID, eventStage, dto.Note, dto.CreatedAt)
}
