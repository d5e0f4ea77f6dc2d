package queries

import (
	"errors"

	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/guard"
)

var ErrGetStageDistributionQueryIsNotConstructed = errors.New(
	"GetStageDistributionQuery must be created via NewGetStageDistributionQuery constructor",
)

// GetStageDistributionQuery counts orders per current aggregate stage. This is
// a point-in-time snapshot, not a ranged report.
type GetStageDistributionQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStageDistributionQuery creates a stage distribution query.
func NewGetStageDistributionQuery() GetStageDistributionQuery {
	return GetStageDistributionQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStageDistributionQuery) Validate() error {
	return q.guard.Validate(ErrGetStageDistributionQueryIsNotConstructed)
}

// StageCount is the order count for one stage, with its share of the total.
type StageCount struct {
	Stage          stage.Stage
	Count          int
	Share          float64
	ShareFormatted string
}

// GetStageDistributionQueryResponse lists counts for every stage in rank
// order, zero-filled for stages with no orders.
type GetStageDistributionQueryResponse struct {
	TotalOrders int
	Stages      []StageCount
}
