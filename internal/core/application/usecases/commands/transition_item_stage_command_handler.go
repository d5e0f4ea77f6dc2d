package commands

import (
	"context"
	"errors"
	"time"

	"prodtrack/internal/core/domain/model/audit"
	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"
)

// conflictRetryBackoff is the pause before the single internal retry after a
// transactional-boundary conflict.
const conflictRetryBackoff = 50 * time.Millisecond

// TransitionItemStageResult describes a completed stage transition.
// Event is nil when the command was a pure no-op (equal rank, no note).
type TransitionItemStageResult struct {
	Item       *order.Item
	Event      *order.StatusEvent
	Transition order.Transition

	// OrderStage is the owning order's aggregate stage after recompute.
	OrderStage stage.Stage
}

// TransitionItemStageCommandHandler applies stage transitions to items.
//
// The read of the current stage, the direction decision, the item write, the
// status-event append, the order aggregate recompute, and the audit entry all
// happen inside one transaction with the item row locked, so concurrent
// transitions on the same item serialize and never observe a stale rank.
type TransitionItemStageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTransitionItemStageCommandHandler creates a handler for stage transitions.
// Requires an OrderUoWFactory for transactional persistence.
func NewTransitionItemStageCommandHandler(uowFactory OrderUoWFactory) TransitionItemStageCommandHandler {
	return TransitionItemStageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stage transition command.
// A ConcurrencyConflictError from the transactional boundary is retried once
// with backoff before being surfaced to the caller.
func (h TransitionItemStageCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionItemStageCommand,
) (TransitionItemStageResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionItemStageResult{}, err
	}

	result, err := h.attempt(ctx, cmd)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		time.Sleep(conflictRetryBackoff)
		result, err = h.attempt(ctx, cmd)
	}

	return result, err
}

func (h TransitionItemStageCommandHandler) attempt(
	ctx context.Context,
	cmd TransitionItemStageCommand,
) (TransitionItemStageResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionItemStageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	item, err := orderRepo.GetItemForUpdate(ctx, cmd.ItemID())
	if err != nil {
		return TransitionItemStageResult{}, err
	}

	transition, err := item.TransitionTo(cmd.Target())
	if err != nil {
		return TransitionItemStageResult{}, err
	}

	// Equal rank without a note is a pure no-op: nothing to persist.
	if transition.Direction == stage.Unchanged && cmd.Note() == "" {
		return TransitionItemStageResult{
			Item:       item,
			Transition: transition,
			OrderStage: item.Stage(),
		}, nil
	}

	if transition.Direction != stage.Unchanged {
		if err = orderRepo.UpdateItem(ctx, item); err != nil {
			return TransitionItemStageResult{}, err
		}
	}

	now := time.Now().UTC()

	event, err := order.NewStatusEvent(kernel.NewUUID(), item.ID(), item.OrderID(), cmd.Target(), cmd.Note(), now)
	if err != nil {
		return TransitionItemStageResult{}, err
	}
	if err = orderRepo.AppendStatusEvent(ctx, event); err != nil {
		return TransitionItemStageResult{}, err
	}

	owner, err := orderRepo.Get(ctx, item.OrderID())
	if err != nil {
		return TransitionItemStageResult{}, err
	}
	orderStage := owner.RecomputeStage()
	if err = orderRepo.Update(ctx, owner); err != nil {
		return TransitionItemStageResult{}, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.EntityOrderItem,
		item.ID().String(),
		audit.ActionItemStageChanged,
		map[string]any{
			"order_id":   item.OrderID().String(),
			"from":       transition.From.String(),
			"to":         transition.To.String(),
			"regression": transition.IsRegression(),
			"note":       cmd.Note(),
		},
		cmd.Actor(),
		now,
	)
	if err != nil {
		return TransitionItemStageResult{}, err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return TransitionItemStageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionItemStageResult{}, err
	}

	return TransitionItemStageResult{
		Item:       item,
		Event:      event,
		Transition: transition,
		OrderStage: orderStage,
	}, nil
}
