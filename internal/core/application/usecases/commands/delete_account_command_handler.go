package commands

import (
	"context"
	"sort"
	"time"

	"prodtrack/internal/core/domain/model/audit"
	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
)

// maxBlockingOrderExamples caps the order examples returned when a deletion is
// refused; the remainder is reported as an overflow count.
const maxBlockingOrderExamples = 3

// BlockingOrder identifies one order that prevents an account deletion.
type BlockingOrder struct {
	ID            kernel.UUID
	PurchaseOrder string
	CreatedAt     time.Time
}

// DeleteAccountResult reports the outcome of a deletion request. When Ok is
// false the account was left untouched: BlockingOrders holds up to three
// examples of the orders that reference it and OverflowCount the number of
// further orders beyond those examples.
type DeleteAccountResult struct {
	Ok             bool
	BlockingOrders []BlockingOrder
	OverflowCount  int
}

// DeleteAccountCommandHandler deletes customer accounts behind a referential
// guard.
//
// The guard check, the account delete, and the audit entry all run in one
// transaction, so an order created concurrently either lands before the check
// and blocks the deletion, or after the commit against an already-deleted
// account.
type DeleteAccountCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewDeleteAccountCommandHandler creates a handler for account deletions.
func NewDeleteAccountCommandHandler(uowFactory AccountUoWFactory) DeleteAccountCommandHandler {
	return DeleteAccountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the account deletion command.
// Refusal due to dependent orders is a result, not an error: the caller is
// expected to present the blocking orders to the user.
func (h DeleteAccountCommandHandler) Handle(
	ctx context.Context,
	cmd DeleteAccountCommand,
) (DeleteAccountResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteAccountResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeleteAccountResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	acc, err := uow.AccountRepository().Get(ctx, cmd.AccountID())
	if err != nil {
		return DeleteAccountResult{}, err
	}

	// Any order referencing the account blocks deletion, regardless of the
	// order's stage or its items' archive state.
	orders, err := uow.OrderRepository().ListForAccount(ctx, cmd.AccountID())
	if err != nil {
		return DeleteAccountResult{}, err
	}
	if len(orders) > 0 {
		return refusalResult(orders), nil
	}

	if err = uow.AccountRepository().Delete(ctx, cmd.AccountID()); err != nil {
		return DeleteAccountResult{}, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.EntityAccount,
		cmd.AccountID().String(),
		audit.ActionAccountDeleted,
		map[string]any{
			"name":  acc.Name(),
			"email": acc.Email(),
		},
		cmd.Actor(),
		time.Now().UTC(),
	)
	if err != nil {
		return DeleteAccountResult{}, err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return DeleteAccountResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeleteAccountResult{}, err
	}

	return DeleteAccountResult{Ok: true}, nil
}

func refusalResult(orders []*order.Order) DeleteAccountResult {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})

	examples := orders
	if len(examples) > maxBlockingOrderExamples {
		examples = examples[:maxBlockingOrderExamples]
	}

	blocking := make([]BlockingOrder, 0, len(examples))
	for _, o := range examples {
		blocking = append(blocking, BlockingOrder{
			ID:            o.ID(),
			PurchaseOrder: o.PurchaseOrder(),
			CreatedAt:     o.CreatedAt(),
		})
	}

	return DeleteAccountResult{
		Ok:             false,
		BlockingOrders: blocking,
		OverflowCount:  len(orders) - len(examples),
	}
}
