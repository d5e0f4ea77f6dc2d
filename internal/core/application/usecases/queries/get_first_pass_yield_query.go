package queries

import (
	"errors"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"
	"prodtrack/internal/pkg/guard"
)

var ErrGetFirstPassYieldQueryIsNotConstructed = errors.New(
	"GetFirstPassYieldQuery must be created via NewGetFirstPassYieldQuery constructor",
)

// GetFirstPassYieldQuery computes first-pass yield over a date range: the
// share of items that moved through production without a single regression.
// An item participates if it has at least one status event in the range; its
// full event history decides whether it is clean or rework.
type GetFirstPassYieldQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetFirstPassYieldQuery creates a yield query for the [from, to] range.
func NewGetFirstPassYieldQuery(from, to time.Time) (GetFirstPassYieldQuery, error) {
	if err := validatePeriod(from, to); err != nil {
		return GetFirstPassYieldQuery{}, err
	}

	return GetFirstPassYieldQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFirstPassYieldQuery) Validate() error {
	return q.guard.Validate(ErrGetFirstPassYieldQueryIsNotConstructed)
}

// From returns the range start.
func (q GetFirstPassYieldQuery) From() time.Time { return q.from }

// To returns the range end.
func (q GetFirstPassYieldQuery) To() time.Time { return q.to }

// RegressionDetail describes one backward step in an item's history.
type RegressionDetail struct {
	From stage.Stage
	To   stage.Stage
	Note string
	At   time.Time
}

// ItemReworkDetail lists the regressions of one rework item.
type ItemReworkDetail struct {
	ItemID      kernel.UUID
	ProductCode string
	Regressions []RegressionDetail
}

// GetFirstPassYieldQueryResponse is the computed yield report. YieldRate is 0
// when no items had events in the range.
type GetFirstPassYieldQueryResponse struct {
	TotalItems  int
	CleanItems  int
	ReworkItems int

	YieldRate          float64
	YieldRateFormatted string

	Rework []ItemReworkDetail
}

func validatePeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return errs.NewValueIsRequiredError("period")
	}
	if to.Before(from) {
		return errs.NewValueIsInvalidError("period")
	}
	return nil
}
