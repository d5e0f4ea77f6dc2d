package queries

import (
	"errors"
	"time"

	"prodtrack/internal/pkg/guard"
)

var ErrGetCompletionTimeQueryIsNotConstructed = errors.New(
	"GetCompletionTimeQuery must be created via NewGetCompletionTimeQuery constructor",
)

// GetCompletionTimeQuery computes the average time from order creation to
// delivery over orders completed in a date range.
type GetCompletionTimeQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetCompletionTimeQuery creates a completion time query for the [from, to]
// range.
func NewGetCompletionTimeQuery(from, to time.Time) (GetCompletionTimeQuery, error) {
	if err := validatePeriod(from, to); err != nil {
		return GetCompletionTimeQuery{}, err
	}

	return GetCompletionTimeQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompletionTimeQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletionTimeQueryIsNotConstructed)
}

// From returns the range start.
func (q GetCompletionTimeQuery) From() time.Time { return q.from }

// To returns the range end.
func (q GetCompletionTimeQuery) To() time.Time { return q.to }

// GetCompletionTimeQueryResponse is the computed completion report.
// AverageDays is the mean of per-order whole-day durations; 0 when no orders
// completed in the range.
type GetCompletionTimeQueryResponse struct {
	OrderCount           int
	AverageDays          float64
	AverageDaysFormatted string
}
