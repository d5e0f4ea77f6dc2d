package commands

import (
	"context"
	"time"

	"prodtrack/internal/core/domain/model/audit"
	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
)

// UpdateMeasurementsResult reports the items whose measurements were updated.
type UpdateMeasurementsResult struct {
	Items []*order.Item
}

// UpdateMeasurementsCommandHandler applies measurement patches to items.
//
// All patches in a command run inside one transaction together with their
// audit entries, so a bulk update is all-or-nothing.
type UpdateMeasurementsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateMeasurementsCommandHandler creates a handler for measurement updates.
func NewUpdateMeasurementsCommandHandler(uowFactory OrderUoWFactory) UpdateMeasurementsCommandHandler {
	return UpdateMeasurementsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the measurement update command.
func (h UpdateMeasurementsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateMeasurementsCommand,
) (UpdateMeasurementsResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateMeasurementsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateMeasurementsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()

	items := make([]*order.Item, 0, len(cmd.Patches()))
	for _, p := range cmd.Patches() {
		item, err := orderRepo.GetItemForUpdate(ctx, p.ItemID)
		if err != nil {
			return UpdateMeasurementsResult{}, err
		}

		changed := item.ApplyMeasurements(p.Patch)

		if err = orderRepo.UpdateItem(ctx, item); err != nil {
			return UpdateMeasurementsResult{}, err
		}

		entry, err := audit.NewEntry(
			kernel.NewUUID(),
			audit.EntityOrderItem,
			item.ID().String(),
			audit.ActionItemMeasurementsUpdated,
			measurementMetadata(item, changed, p.Patch),
			cmd.Actor(),
			now,
		)
		if err != nil {
			return UpdateMeasurementsResult{}, err
		}
		if err = uow.AuditRepository().Append(ctx, entry); err != nil {
			return UpdateMeasurementsResult{}, err
		}

		items = append(items, item)
	}

	if err := uow.Commit(ctx); err != nil {
		return UpdateMeasurementsResult{}, err
	}

	return UpdateMeasurementsResult{Items: items}, nil
}

// measurementMetadata records the fields the patch touched. Cleared fields
// appear as nil so the audit trail distinguishes "cleared" from "untouched".
func measurementMetadata(item *order.Item, changed map[string]*float64, patch order.MeasurementPatch) map[string]any {
	fields := make(map[string]any, len(changed))
	for name, value := range changed {
		if value == nil {
			fields[name] = nil
		} else {
			fields[name] = *value
		}
	}

	metadata := map[string]any{
		"order_id": item.OrderID().String(),
		"fields":   fields,
	}
	if patch.MeasurementUnit != nil {
		metadata["measurement_unit"] = *patch.MeasurementUnit
	}
	if patch.WeightUnit != nil {
		metadata["weight_unit"] = *patch.WeightUnit
	}
	return metadata
}
