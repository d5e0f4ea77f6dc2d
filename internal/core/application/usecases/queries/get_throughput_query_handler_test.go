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

func TestGetThroughputQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	accountID := uuid.New()

	// 2026-02-02 is a Monday of ISO week 6; 2026-02-09 opens week 7.
	weekSix := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	weekSeven := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)

	orderID := seedOrder(t, db, accountID, "PO-1", "", "MANUFACTURING", weekSix)
	itemID := seedItem(t, db, orderID, "WIDGET-100", 1, 10, "QUALITY_CHECK", nil)

	seedEvent(t, db, itemID, orderID, "MANUFACTURING", "", weekSix)
	seedEvent(t, db, itemID, orderID, "QUALITY_CHECK", "", weekSix.Add(2*time.Hour))
	// Rework: the second pass through quality check counts again.
	seedEvent(t, db, itemID, orderID, "MANUFACTURING", "rework", weekSeven)
	seedEvent(t, db, itemID, orderID, "QUALITY_CHECK", "", weekSeven.Add(2*time.Hour))

	query, err := queries.NewGetThroughputQuery(weekSix.AddDate(0, 0, -1), weekSeven.AddDate(0, 0, 7))
	require.NoError(t, err)

	handler := queries.NewGetThroughputQueryHandler(db)
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Equal(t, 4, response.TotalEvents)
	require.Len(t, response.Stages, 2)
	assert.Equal(t, stage.Manufacturing, response.Stages[0].Stage)
	assert.Equal(t, 2, response.Stages[0].Count)
	assert.Equal(t, stage.QualityCheck, response.Stages[1].Stage)
	assert.Equal(t, 2, response.Stages[1].Count)

	require.Len(t, response.Weekly, 2)
	assert.Equal(t, "2026-W06", response.Weekly[0].Week)
	assert.Equal(t, 2, response.Weekly[0].Total)
	assert.Equal(t, "2026-W07", response.Weekly[1].Week)
	assert.Equal(t, 2, response.Weekly[1].Total)
}

func TestGetThroughputQueryHandler_Handle_RangeFilters(t *testing.T) {
	db := newTestDB(t)
	accountID := uuid.New()
	inRange := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	orderID := seedOrder(t, db, accountID, "PO-1", "", "MANUFACTURING", inRange)
	itemID := seedItem(t, db, orderID, "WIDGET-100", 1, 10, "MANUFACTURING", nil)
	seedEvent(t, db, itemID, orderID, "MANUFACTURING", "", inRange)
	seedEvent(t, db, itemID, orderID, "QUALITY_CHECK", "", inRange.AddDate(0, 2, 0))

	query, err := queries.NewGetThroughputQuery(inRange.AddDate(0, 0, -1), inRange.AddDate(0, 0, 1))
	require.NoError(t, err)

	handler := queries.NewGetThroughputQueryHandler(db)
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalEvents)
	require.Len(t, response.Stages, 1)
	assert.Equal(t, stage.Manufacturing, response.Stages[0].Stage)
}

func TestGetThroughputQueryHandler_Handle_Empty(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	query, err := queries.NewGetThroughputQuery(from, from.AddDate(0, 1, 0))
	require.NoError(t, err)

	handler := queries.NewGetThroughputQueryHandler(newTestDB(t))
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Zero(t, response.TotalEvents)
	assert.Empty(t, response.Stages)
	assert.Empty(t, response.Weekly)
}
