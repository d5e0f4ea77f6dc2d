package queries_test

import (
	"testing"
	"time"

	"prodtrack/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSalesQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	accountID := uuid.New()
	january := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	february := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)

	// January: 2 x $10 = $20 of WIDGET-100 sold by Dana.
	janOrder := seedOrder(t, db, accountID, "PO-1", "Dana Reyes", "DELIVERED", january)
	seedItem(t, db, janOrder, "WIDGET-100", 2, 10, "DELIVERED", nil)

	// February: 1 x $30 = $30 of FRAME-7 with no rep assigned.
	febOrder := seedOrder(t, db, accountID, "PO-2", "", "MANUFACTURING", february)
	seedItem(t, db, febOrder, "FRAME-7", 1, 30, "MANUFACTURING", nil)

	// Archived item must not contribute revenue.
	archivedAt := february.Add(time.Hour)
	seedItem(t, db, febOrder, "SCRAPPED-1", 10, 100, "NEW", &archivedAt)

	query, err := queries.NewGetSalesQuery(january.AddDate(0, 0, -14), february.AddDate(0, 1, 0))
	require.NoError(t, err)

	handler := queries.NewGetSalesQueryHandler(db)
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, response.TotalRevenue, 0.0001)
	assert.Equal(t, "$50.00", response.TotalRevenueFormatted)

	require.Len(t, response.ByProduct, 2)
	assert.Equal(t, "FRAME-7", response.ByProduct[0].ProductCode)
	assert.InDelta(t, 30.0, response.ByProduct[0].Revenue, 0.0001)
	assert.Equal(t, "60.0%", response.ByProduct[0].ShareFormatted)
	assert.Equal(t, "WIDGET-100", response.ByProduct[1].ProductCode)
	assert.Equal(t, 2, response.ByProduct[1].Units)
	assert.Equal(t, "40.0%", response.ByProduct[1].ShareFormatted)

	require.Len(t, response.ByMonth, 2)
	assert.Equal(t, "2026-01", response.ByMonth[0].Month)
	assert.Nil(t, response.ByMonth[0].Delta)
	assert.Equal(t, "2026-02", response.ByMonth[1].Month)
	require.NotNil(t, response.ByMonth[1].Delta)
	assert.Equal(t, queries.DeltaUp, response.ByMonth[1].Delta.Direction)
	assert.InDelta(t, 0.5, response.ByMonth[1].Delta.Percent, 0.0001)
	assert.Equal(t, "50.0%", response.ByMonth[1].Delta.PercentFormatted)

	require.Len(t, response.ByRep, 2)
	assert.Equal(t, "UNASSIGNED", response.ByRep[0].SalesRep)
	assert.InDelta(t, 30.0, response.ByRep[0].Revenue, 0.0001)
	assert.Equal(t, "Dana Reyes", response.ByRep[1].SalesRep)
	assert.InDelta(t, 20.0, response.ByRep[1].Revenue, 0.0001)
}

func TestGetSalesQueryHandler_Handle_FlatMonthDelta(t *testing.T) {
	db := newTestDB(t)
	accountID := uuid.New()
	january := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	february := january.AddDate(0, 1, 0)

	janOrder := seedOrder(t, db, accountID, "PO-1", "Dana Reyes", "NEW", january)
	seedItem(t, db, janOrder, "WIDGET-100", 1, 25, "NEW", nil)
	febOrder := seedOrder(t, db, accountID, "PO-2", "Dana Reyes", "NEW", february)
	seedItem(t, db, febOrder, "WIDGET-100", 1, 25, "NEW", nil)

	query, err := queries.NewGetSalesQuery(january.AddDate(0, 0, -1), february.AddDate(0, 0, 1))
	require.NoError(t, err)

	handler := queries.NewGetSalesQueryHandler(db)
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	require.Len(t, response.ByMonth, 2)
	require.NotNil(t, response.ByMonth[1].Delta)
	assert.Equal(t, queries.DeltaFlat, response.ByMonth[1].Delta.Direction)
	assert.Zero(t, response.ByMonth[1].Delta.Percent)
}

func TestGetSalesQueryHandler_Handle_NoSales(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	query, err := queries.NewGetSalesQuery(from, from.AddDate(0, 1, 0))
	require.NoError(t, err)

	handler := queries.NewGetSalesQueryHandler(newTestDB(t))
	response, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Zero(t, response.TotalRevenue)
	assert.Equal(t, "$0.00", response.TotalRevenueFormatted)
	assert.Empty(t, response.ByProduct)
	assert.Empty(t, response.ByMonth)
	assert.Empty(t, response.ByRep)
}
