package queries

import (
	"context"
	"time"

	"prodtrack/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetItemRegressionsQueryHandler replays an item's status events to find its
// backward steps.
type GetItemRegressionsQueryHandler struct {
	db *gorm.DB
}

// NewGetItemRegressionsQueryHandler creates a handler for item regression
// queries.
func NewGetItemRegressionsQueryHandler(db *gorm.DB) GetItemRegressionsQueryHandler {
	return GetItemRegressionsQueryHandler{db: db}
}

// Handle executes the regression query. An unknown item yields an empty
// response rather than an error; the item endpoint is the place to 404.
func (h GetItemRegressionsQueryHandler) Handle(
	ctx context.Context,
	query GetItemRegressionsQuery,
) (GetItemRegressionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetItemRegressionsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, item_id, order_id, stage, note, created_at
		FROM status_events
		WHERE item_id = ?
		ORDER BY created_at, id
	`, query.ItemID().Bytes()).Rows()
	if err != nil {
		return GetItemRegressionsQueryResponse{}, err
	}
	defer rows.Close()

	events := make([]*order.StatusEvent, 0)
	for rows.Next() {
		var (
			id, itemID, orderID uuid.UUID
			stageValue, note    string
			createdAt           time.Time
		)
		if err = rows.Scan(&id, &itemID, &orderID, &stageValue, &note, &createdAt); err != nil {
			return GetItemRegressionsQueryResponse{}, err
		}

		event, convErr := restoreEvent(id, itemID, orderID, stageValue, note, createdAt)
		if convErr != nil {
			return GetItemRegressionsQueryResponse{}, convErr
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return GetItemRegressionsQueryResponse{}, err
	}

	response := GetItemRegressionsQueryResponse{
		ItemID:      query.ItemID(),
		Regressions: make([]RegressionDetail, 0),
	}
	for _, step := range order.Regressions(events) {
		response.Regressions = append(response.Regressions, RegressionDetail{
			From: step.From,
			To:   step.To,
			Note: step.Note,
			At:   step.At,
		})
	}

	return response, nil
}
