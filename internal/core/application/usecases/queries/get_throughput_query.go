package queries

import (
	"errors"
	"time"

	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/guard"
)

var ErrGetThroughputQueryIsNotConstructed = errors.New(
	"GetThroughputQuery must be created via NewGetThroughputQuery constructor",
)

// GetThroughputQuery counts stage transitions over a date range. Every status
// event counts, so an item reworked through the same stage twice contributes
// twice.
type GetThroughputQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetThroughputQuery creates a throughput query for the [from, to] range.
func NewGetThroughputQuery(from, to time.Time) (GetThroughputQuery, error) {
	if err := validatePeriod(from, to); err != nil {
		return GetThroughputQuery{}, err
	}

	return GetThroughputQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetThroughputQuery) Validate() error {
	return q.guard.Validate(ErrGetThroughputQueryIsNotConstructed)
}

// From returns the range start.
func (q GetThroughputQuery) From() time.Time { return q.from }

// To returns the range end.
func (q GetThroughputQuery) To() time.Time { return q.to }

// StageThroughput is the event count for one stage.
type StageThroughput struct {
	Stage stage.Stage
	Count int
}

// WeeklyThroughput is the per-stage event counts of one ISO week.
type WeeklyThroughput struct {
	// Week is the ISO week key, e.g. "2026-W05".
	Week   string
	Total  int
	Stages []StageThroughput
}

// GetThroughputQueryResponse holds stage totals for the range plus an ISO-week
// series. Weeks with no events are omitted; weeks are sorted ascending.
type GetThroughputQueryResponse struct {
	TotalEvents int
	Stages      []StageThroughput
	Weekly      []WeeklyThroughput
}
