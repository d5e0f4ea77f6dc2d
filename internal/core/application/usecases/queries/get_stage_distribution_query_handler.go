package queries

import (
	"context"

	"prodtrack/internal/core/domain/model/stage"

	"gorm.io/gorm"
)

// GetStageDistributionQueryHandler counts orders per aggregate stage.
type GetStageDistributionQueryHandler struct {
	db *gorm.DB
}

// NewGetStageDistributionQueryHandler creates a handler for stage
// distribution queries.
func NewGetStageDistributionQueryHandler(db *gorm.DB) GetStageDistributionQueryHandler {
	return GetStageDistributionQueryHandler{db: db}
}

// Handle executes the distribution query. Every known stage appears in the
// response in rank order, zero-filled when it has no orders.
func (h GetStageDistributionQueryHandler) Handle(
	ctx context.Context,
	query GetStageDistributionQuery,
) (GetStageDistributionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStageDistributionQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT stage, COUNT(*)
		FROM orders
		GROUP BY stage
	`).Rows()
	if err != nil {
		return GetStageDistributionQueryResponse{}, err
	}
	defer rows.Close()

	counts := make(map[stage.Stage]int)
	total := 0
	for rows.Next() {
		var (
			stageValue string
			count      int
		)
		if err = rows.Scan(&stageValue, &count); err != nil {
			return GetStageDistributionQueryResponse{}, err
		}

		s, parseErr := stage.Parse(stageValue)
		if parseErr != nil {
			return GetStageDistributionQueryResponse{}, parseErr
		}
		counts[s] = count
		total += count
	}
	if err = rows.Err(); err != nil {
		return GetStageDistributionQueryResponse{}, err
	}

	response := GetStageDistributionQueryResponse{
		TotalOrders: total,
		Stages:      make([]StageCount, 0, len(stage.All())),
	}
	for _, s := range stage.All() {
		share := 0.0
		if total > 0 {
			share = float64(counts[s]) / float64(total)
		}
		response.Stages = append(response.Stages, StageCount{
			Stage:          s,
			Count:          counts[s],
			Share:          share,
			ShareFormatted: formatPercent(share),
		})
	}

	return response, nil
}
