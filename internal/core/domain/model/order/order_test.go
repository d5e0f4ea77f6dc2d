package order_test

import (
	"testing"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "PO-1001", "Dana Cole", time.Now())
	require.NoError(t, err)
	return o
}

func newTestItem(t *testing.T, orderID kernel.UUID, itemStage stage.Stage) *order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), orderID, "WIDGET-A", 2, 149.99)
	require.NoError(t, err)
	if itemStage != stage.New {
		_, err = it.TransitionTo(itemStage)
		require.NoError(t, err)
	}
	return it
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_order_in_new_stage", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, stage.New, o.Stage())
		assert.Equal(t, "PO-1001", o.PurchaseOrder())
		assert.Equal(t, "Dana Cole", o.SalesRep())
		assert.Empty(t, o.Items())
	})

	t.Run("rejects_missing_purchase_order", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_zero_created_at", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "PO-1001", "", time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_invalid_account_id", func(t *testing.T) {
		var accountID kernel.UUID
		_, err := order.NewOrder(kernel.NewUUID(), accountID, "PO-1001", "", time.Now())
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AttachItem(t *testing.T) {
	t.Run("attaches_items_belonging_to_the_order", func(t *testing.T) {
		o := newTestOrder(t)
		it := newTestItem(t, o.ID(), stage.New)

		require.NoError(t, o.AttachItem(it))
		assert.Len(t, o.Items(), 1)
	})

	t.Run("rejects_items_of_another_order", func(t *testing.T) {
		o := newTestOrder(t)
		it := newTestItem(t, kernel.NewUUID(), stage.New)

		require.ErrorIs(t, o.AttachItem(it), order.ErrItemBelongsToOtherOrder)
	})
}

func TestOrder_RecomputeStage(t *testing.T) {
	t.Run("aggregate_is_minimum_rank_item_stage", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachItem(newTestItem(t, o.ID(), stage.New)))
		require.NoError(t, o.AttachItem(newTestItem(t, o.ID(), stage.Manufacturing)))
		require.NoError(t, o.AttachItem(newTestItem(t, o.ID(), stage.QualityCheck)))

		assert.Equal(t, stage.New, o.RecomputeStage())
	})

	t.Run("advancing_the_least_progressed_item_advances_the_aggregate", func(t *testing.T) {
		o := newTestOrder(t)
		lagging := newTestItem(t, o.ID(), stage.New)
		require.NoError(t, o.AttachItem(lagging))
		require.NoError(t, o.AttachItem(newTestItem(t, o.ID(), stage.Manufacturing)))
		require.NoError(t, o.AttachItem(newTestItem(t, o.ID(), stage.QualityCheck)))

		_, err := lagging.TransitionTo(stage.Manufacturing)
		require.NoError(t, err)

		assert.Equal(t, stage.Manufacturing, o.RecomputeStage())
	})

	t.Run("archived_items_are_excluded", func(t *testing.T) {
		o := newTestOrder(t)
		archived := newTestItem(t, o.ID(), stage.New)
		archived.Archive(time.Now())
		require.NoError(t, o.AttachItem(archived))
		require.NoError(t, o.AttachItem(newTestItem(t, o.ID(), stage.Packaging)))

		assert.Equal(t, stage.Packaging, o.RecomputeStage())
	})

	t.Run("order_with_only_archived_items_keeps_its_stage", func(t *testing.T) {
		o := newTestOrder(t)
		it := newTestItem(t, o.ID(), stage.InTransit)
		require.NoError(t, o.AttachItem(it))
		require.Equal(t, stage.InTransit, o.RecomputeStage())

		it.Archive(time.Now())

		assert.Equal(t, stage.InTransit, o.RecomputeStage())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_stored_aggregate_stage_and_items", func(t *testing.T) {
		id, accountID := kernel.NewUUID(), kernel.NewUUID()
		it := newTestItem(t, id, stage.Manufacturing)

		o, err := order.RestoreOrder(id, accountID, "PO-7", "Dana Cole", stage.Manufacturing,
			time.Now(), []*order.Item{it})

		require.NoError(t, err)
		assert.Equal(t, stage.Manufacturing, o.Stage())
		assert.Len(t, o.Items(), 1)
	})

	t.Run("rejects_invalid_stored_stage", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "PO-7", "",
			stage.Unknown, time.Now(), nil)
		require.ErrorIs(t, err, errs.ErrInvalidStage)
	})
}
