package queries

import (
	"errors"
	"time"

	"prodtrack/internal/pkg/guard"
)

var ErrGetSalesQueryIsNotConstructed = errors.New(
	"GetSalesQuery must be created via NewGetSalesQuery constructor",
)

// Month-over-month delta directions. Flat means exact equality with the
// previous month.
const (
	DeltaUp   = "up"
	DeltaDown = "down"
	DeltaFlat = "flat"
)

// GetSalesQuery computes sales totals over orders created in a date range,
// broken down by product code, by creation month, and by sales rep. Archived
// items are excluded from all totals.
type GetSalesQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetSalesQuery creates a sales query for the [from, to] range.
func NewGetSalesQuery(from, to time.Time) (GetSalesQuery, error) {
	if err := validatePeriod(from, to); err != nil {
		return GetSalesQuery{}, err
	}

	return GetSalesQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSalesQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesQueryIsNotConstructed)
}

// From returns the range start.
func (q GetSalesQuery) From() time.Time { return q.from }

// To returns the range end.
func (q GetSalesQuery) To() time.Time { return q.to }

// ProductSales is the sales total for one product code.
type ProductSales struct {
	ProductCode      string
	Units            int
	Revenue          float64
	RevenueFormatted string
	Share            float64
	ShareFormatted   string
}

// MonthDelta is the month-over-month revenue change.
type MonthDelta struct {
	Percent          float64
	PercentFormatted string
	Direction        string
}

// MonthSales is the sales total for one creation month. Delta is nil for the
// first month in the range.
type MonthSales struct {
	// Month is the sortable month key, e.g. "2026-03".
	Month            string
	Revenue          float64
	RevenueFormatted string
	Share            float64
	ShareFormatted   string
	Delta            *MonthDelta
}

// RepSales is the sales total for one sales rep. Orders without an assigned
// rep are grouped under "UNASSIGNED".
type RepSales struct {
	SalesRep         string
	Revenue          float64
	RevenueFormatted string
	Share            float64
	ShareFormatted   string
}

// GetSalesQueryResponse is the computed sales report. All breakdowns share
// the same grand total for their share calculations.
type GetSalesQueryResponse struct {
	TotalRevenue          float64
	TotalRevenueFormatted string

	ByProduct []ProductSales
	ByMonth   []MonthSales
	ByRep     []RepSales
}
