package jobs

import (
	"context"
	"log/slog"
	"time"

	"prodtrack/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// digestWindow is the trailing period each digest covers.
const digestWindow = 24 * time.Hour

// ReportDigestJob periodically computes the production KPIs over the trailing
// day and logs them. The job is read only; it never mutates state.
type ReportDigestJob struct {
	yieldHandler      queries.GetFirstPassYieldQueryHandler
	stagesHandler     queries.GetStageDistributionQueryHandler
	throughputHandler queries.GetThroughputQueryHandler
	cron              *cron.Cron
	logger            *slog.Logger
}

// NewReportDigestJob creates a job that logs an hourly KPI digest.
func NewReportDigestJob(
	yieldHandler queries.GetFirstPassYieldQueryHandler,
	stagesHandler queries.GetStageDistributionQueryHandler,
	throughputHandler queries.GetThroughputQueryHandler,
	logger *slog.Logger,
) *ReportDigestJob {
	return &ReportDigestJob{
		yieldHandler:      yieldHandler,
		stagesHandler:     stagesHandler,
		throughputHandler: throughputHandler,
		cron:              cron.New(),
		logger:            logger.With("component", "report_digest_job"),
	}
}

// Start begins the digest job on an hourly schedule.
func (j *ReportDigestJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Report digest job started (running hourly)")
	return nil
}

// Stop stops the digest job.
func (j *ReportDigestJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Report digest job stopped")
}

func (j *ReportDigestJob) run(ctx context.Context) {
	to := time.Now().UTC()
	from := to.Add(-digestWindow)

	yieldQuery, err := queries.NewGetFirstPassYieldQuery(from, to)
	if err != nil {
		j.logger.ErrorContext(ctx, "Report digest period is invalid", "error", err)
		return
	}

	yield, err := j.yieldHandler.Handle(ctx, yieldQuery)
	if err != nil {
		j.logger.ErrorContext(ctx, "First pass yield digest failed", "error", err)
	} else {
		j.logger.InfoContext(ctx, "First pass yield",
			"totalItems", yield.TotalItems,
			"cleanItems", yield.CleanItems,
			"yield", yield.YieldRateFormatted,
		)
	}

	stages, err := j.stagesHandler.Handle(ctx, queries.NewGetStageDistributionQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stage distribution digest failed", "error", err)
	} else {
		for _, bucket := range stages.Stages {
			if bucket.Count == 0 {
				continue
			}
			j.logger.InfoContext(ctx, "Stage distribution",
				"stage", bucket.Stage.String(),
				"count", bucket.Count,
				"share", bucket.ShareFormatted,
			)
		}
	}

	throughputQuery, err := queries.NewGetThroughputQuery(from, to)
	if err != nil {
		j.logger.ErrorContext(ctx, "Report digest period is invalid", "error", err)
		return
	}

	throughput, err := j.throughputHandler.Handle(ctx, throughputQuery)
	if err != nil {
		j.logger.ErrorContext(ctx, "Throughput digest failed", "error", err)
	} else {
		for _, total := range throughput.Stages {
			j.logger.InfoContext(ctx, "Stage throughput",
				"stage", total.Stage.String(),
				"transitions", total.Count,
			)
		}
	}
}
