package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"prodtrack/internal/core/domain/model/stage"

	"gorm.io/gorm"
)

// GetThroughputQueryHandler computes stage throughput from status events.
type GetThroughputQueryHandler struct {
	db *gorm.DB
}

// NewGetThroughputQueryHandler creates a handler for throughput queries.
func NewGetThroughputQueryHandler(db *gorm.DB) GetThroughputQueryHandler {
	return GetThroughputQueryHandler{db: db}
}

// Handle executes the throughput query. Events are bucketed per stage and per
// ISO week of their timestamp; week buckets carry their own per-stage counts.
func (h GetThroughputQueryHandler) Handle(
	ctx context.Context,
	query GetThroughputQuery,
) (GetThroughputQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetThroughputQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT stage, created_at
		FROM status_events
		WHERE created_at >= ? AND created_at <= ?
	`, query.From(), query.To()).Rows()
	if err != nil {
		return GetThroughputQueryResponse{}, err
	}
	defer rows.Close()

	totals := make(map[stage.Stage]int)
	weekly := make(map[string]map[stage.Stage]int)
	totalEvents := 0

	for rows.Next() {
		var (
			stageValue string
			createdAt  time.Time
		)
		if err = rows.Scan(&stageValue, &createdAt); err != nil {
			return GetThroughputQueryResponse{}, err
		}

		s, parseErr := stage.Parse(stageValue)
		if parseErr != nil {
			return GetThroughputQueryResponse{}, parseErr
		}

		totals[s]++
		totalEvents++

		week := isoWeekKey(createdAt)
		if weekly[week] == nil {
			weekly[week] = make(map[stage.Stage]int)
		}
		weekly[week][s]++
	}
	if err = rows.Err(); err != nil {
		return GetThroughputQueryResponse{}, err
	}

	response := GetThroughputQueryResponse{
		TotalEvents: totalEvents,
		Stages:      stageCounts(totals),
		Weekly:      make([]WeeklyThroughput, 0, len(weekly)),
	}

	for week, counts := range weekly {
		bucket := WeeklyThroughput{
			Week:   week,
			Stages: stageCounts(counts),
		}
		for _, c := range counts {
			bucket.Total += c
		}
		response.Weekly = append(response.Weekly, bucket)
	}
	sort.Slice(response.Weekly, func(i, j int) bool {
		return response.Weekly[i].Week < response.Weekly[j].Week
	})

	return response, nil
}

// stageCounts renders a count map as a rank-ordered slice, skipping stages
// with no events.
func stageCounts(counts map[stage.Stage]int) []StageThroughput {
	result := make([]StageThroughput, 0, len(counts))
	for _, s := range stage.All() {
		if counts[s] == 0 {
			continue
		}
		result = append(result, StageThroughput{Stage: s, Count: counts[s]})
	}
	return result
}

// isoWeekKey returns the sortable ISO week bucket of a timestamp, e.g.
// "2026-W05". The ISO year may differ from the calendar year at year
// boundaries.
func isoWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
