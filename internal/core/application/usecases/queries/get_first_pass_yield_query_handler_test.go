package queries_test

import (
	"testing"
	"time"

	"prodtrack/internal/core/application/usecases/queries"
	"prodtrack/internal/core/domain/model/stage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFirstPassYieldQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)

	accountID := uuid.New()
	orderID := seedOrder(t, db, accountID, "PO-1001", "Dana Reyes", "MANUFACTURING", from)

	// Clean item: strictly forward history.
	cleanItem := seedItem(t, db, orderID, "WIDGET-100", 1, 10, "DELIVERED", nil)
	seedEvent(t, db, cleanItem, orderID, "MANUFACTURING", "", from.Add(1*time.Hour))
	seedEvent(t, db, cleanItem, orderID, "QUALITY_CHECK", "", from.Add(2*time.Hour))
	seedEvent(t, db, cleanItem, orderID, "DELIVERED", "", from.Add(3*time.Hour))

	// Rework item: bounced back from quality check once.
	reworkItem := seedItem(t, db, orderID, "FRAME-7", 1, 25, "QUALITY_CHECK", nil)
	seedEvent(t, db, reworkItem, orderID, "QUALITY_CHECK", "", from.Add(1*time.Hour))
	seedEvent(t, db, reworkItem, orderID, "MANUFACTURING", "weld failed inspection", from.Add(2*time.Hour))
	seedEvent(t, db, reworkItem, orderID, "QUALITY_CHECK", "", from.Add(3*time.Hour))

	// Item with all events outside the range must not participate.
	outsideItem := seedItem(t, db, orderID, "BOLT-3", 1, 1, "NEW", nil)
	seedEvent(t, db, outsideItem, orderID, "MANUFACTURING", "", from.AddDate(0, -2, 0))

	query, err := queries.NewGetFirstPassYieldQuery(from, to)
	require.NoError(t, err)

	handler := queries.NewGetFirstPassYieldQueryHandler(db)
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Equal(t, 2, response.TotalItems)
	assert.Equal(t, 1, response.CleanItems)
	assert.Equal(t, 1, response.ReworkItems)
	assert.InDelta(t, 0.5, response.YieldRate, 0.0001)
	assert.Equal(t, "50.0%", response.YieldRateFormatted)

	require.Len(t, response.Rework, 1)
	detail := response.Rework[0]
	assert.Equal(t, "FRAME-7", detail.ProductCode)
	require.Len(t, detail.Regressions, 1)
	assert.Equal(t, stage.QualityCheck, detail.Regressions[0].From)
	assert.Equal(t, stage.Manufacturing, detail.Regressions[0].To)
	assert.Equal(t, "weld failed inspection", detail.Regressions[0].Note)
}

func TestGetFirstPassYieldQueryHandler_Handle_EmptyRange(t *testing.T) {
	db := newTestDB(t)
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetFirstPassYieldQuery(from, from.AddDate(0, 1, 0))
	require.NoError(t, err)

	handler := queries.NewGetFirstPassYieldQueryHandler(db)
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Zero(t, response.TotalItems)
	assert.Zero(t, response.YieldRate)
	assert.Equal(t, "0.0%", response.YieldRateFormatted)
	assert.Empty(t, response.Rework)
}

func TestNewGetFirstPassYieldQuery_InvalidPeriod(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetFirstPassYieldQuery(from, from.AddDate(0, 0, -1))
	require.Error(t, err)

	_, err = queries.NewGetFirstPassYieldQuery(time.Time{}, from)
	require.Error(t, err)
}

func TestGetFirstPassYieldQueryHandler_Handle_NotConstructed(t *testing.T) {
	handler := queries.NewGetFirstPassYieldQueryHandler(newTestDB(t))
	_, err := handler.Handle(t.Context(), queries.GetFirstPassYieldQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetFirstPassYieldQueryIsNotConstructed)
}
