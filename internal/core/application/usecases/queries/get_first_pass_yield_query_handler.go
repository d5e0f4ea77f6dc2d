package queries

import (
	"context"
	"sort"
	"time"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/core/domain/model/stage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFirstPassYieldQueryHandler computes the first-pass yield report from the
// status-event history.
type GetFirstPassYieldQueryHandler struct {
	db *gorm.DB
}

// NewGetFirstPassYieldQueryHandler creates a handler for yield queries.
func NewGetFirstPassYieldQueryHandler(db *gorm.DB) GetFirstPassYieldQueryHandler {
	return GetFirstPassYieldQueryHandler{db: db}
}

// Handle executes the yield query. Items with at least one event in the range
// are classified clean or rework by replaying their full event history; the
// rework detail lists each backward step with its note.
func (h GetFirstPassYieldQueryHandler) Handle(
	ctx context.Context,
	query GetFirstPassYieldQuery,
) (GetFirstPassYieldQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFirstPassYieldQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.item_id,
			e.order_id,
			e.stage,
			e.note,
			e.created_at,
			i.product_code
		FROM status_events e
		JOIN order_items i ON i.id = e.item_id
		WHERE e.item_id IN (
			SELECT DISTINCT item_id
			FROM status_events
			WHERE created_at >= ? AND created_at <= ?
		)
		ORDER BY e.item_id, e.created_at
	`, query.From(), query.To()).Rows()
	if err != nil {
		return GetFirstPassYieldQueryResponse{}, err
	}
	defer rows.Close()

	type itemHistory struct {
		productCode string
		events      []*order.StatusEvent
	}
	histories := make(map[kernel.UUID]*itemHistory)

	for rows.Next() {
		var (
			id, itemID, orderID uuid.UUID
			stageValue, note    string
			createdAt           time.Time
			productCode         string
		)
		if err = rows.Scan(&id, &itemID, &orderID, &stageValue, &note, &createdAt, &productCode); err != nil {
			return GetFirstPassYieldQueryResponse{}, err
		}

		event, convErr := restoreEvent(id, itemID, orderID, stageValue, note, createdAt)
		if convErr != nil {
			return GetFirstPassYieldQueryResponse{}, convErr
		}

		history, ok := histories[event.ItemID()]
		if !ok {
			history = &itemHistory{productCode: productCode}
			histories[event.ItemID()] = history
		}
		history.events = append(history.events, event)
	}
	if err = rows.Err(); err != nil {
		return GetFirstPassYieldQueryResponse{}, err
	}

	response := GetFirstPassYieldQueryResponse{
		TotalItems: len(histories),
		Rework:     make([]ItemReworkDetail, 0),
	}

	for itemID, history := range histories {
		steps := order.Regressions(history.events)
		if len(steps) == 0 {
			response.CleanItems++
			continue
		}

		response.ReworkItems++
		detail := ItemReworkDetail{
			ItemID:      itemID,
			ProductCode: history.productCode,
			Regressions: make([]RegressionDetail, 0, len(steps)),
		}
		for _, step := range steps {
			detail.Regressions = append(detail.Regressions, RegressionDetail{
				From: step.From,
				To:   step.To,
				Note: step.Note,
				At:   step.At,
			})
		}
		response.Rework = append(response.Rework, detail)
	}

	sort.Slice(response.Rework, func(i, j int) bool {
		return response.Rework[i].ItemID.String() < response.Rework[j].ItemID.String()
	})

	if response.TotalItems > 0 {
		response.YieldRate = float64(response.CleanItems) / float64(response.TotalItems)
	}
	response.YieldRateFormatted = formatPercent(response.YieldRate)

	return response, nil
}

// restoreEvent rebuilds a domain status event from scanned row values.
func restoreEvent(id, itemID, orderID uuid.UUID, stageValue, note string, createdAt time.Time) (*order.StatusEvent, error) {
	eventID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	eventItemID, err := kernel.UUIDFromBytes(itemID[:])
	if err != nil {
		return nil, err
	}
	eventOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return nil, err
	}
	eventStage, err := stage.Parse(stageValue)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusEvent(eventID, eventItemID, eventOrderID, eventStage, note, createdAt)
}
