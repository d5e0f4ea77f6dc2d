package queries

import (
	"context"
	"time"

	"prodtrack/internal/core/domain/model/stage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCompletionTimeQueryHandler computes average order completion time.
type GetCompletionTimeQueryHandler struct {
	db *gorm.DB
}

// NewGetCompletionTimeQueryHandler creates a handler for completion time
// queries.
func NewGetCompletionTimeQueryHandler(db *gorm.DB) GetCompletionTimeQueryHandler {
	return GetCompletionTimeQueryHandler{db: db}
}

// Handle executes the completion time query. An order counts when its stored
// aggregate stage is DELIVERED and its first DELIVERED status event falls in
// the range; its duration is the whole days from creation to that event.
func (h GetCompletionTimeQueryHandler) Handle(
	ctx context.Context,
	query GetCompletionTimeQuery,
) (GetCompletionTimeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCompletionTimeQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.id, o.created_at, e.created_at
		FROM orders o
		JOIN status_events e ON e.order_id = o.id AND e.stage = ?
		WHERE o.stage = ?
		ORDER BY o.id, e.created_at
	`, stage.Terminal().String(), stage.Terminal().String()).Rows()
	if err != nil {
		return GetCompletionTimeQueryResponse{}, err
	}
	defer rows.Close()

	// Keep the first DELIVERED event per order; rows arrive ordered by
	// event time within each order.
	firstDelivered := make(map[uuid.UUID]time.Time)
	createdAt := make(map[uuid.UUID]time.Time)
	for rows.Next() {
		var (
			orderID          uuid.UUID
			orderCreatedAt   time.Time
			deliveredEventAt time.Time
		)
		if err = rows.Scan(&orderID, &orderCreatedAt, &deliveredEventAt); err != nil {
			return GetCompletionTimeQueryResponse{}, err
		}

		if _, seen := firstDelivered[orderID]; !seen {
			firstDelivered[orderID] = deliveredEventAt
			createdAt[orderID] = orderCreatedAt
		}
	}
	if err = rows.Err(); err != nil {
		return GetCompletionTimeQueryResponse{}, err
	}

	count := 0
	totalDays := 0
	for orderID, completedAt := range firstDelivered {
		if completedAt.Before(query.From()) || completedAt.After(query.To()) {
			continue
		}

		days := int(completedAt.Sub(createdAt[orderID]).Hours() / 24)
		if days < 0 {
			days = 0
		}
		totalDays += days
		count++
	}

	response := GetCompletionTimeQueryResponse{OrderCount: count}
	if count > 0 {
		response.AverageDays = float64(totalDays) / float64(count)
	}
	response.AverageDaysFormatted = formatDays(response.AverageDays)

	return response, nil
}
