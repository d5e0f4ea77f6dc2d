// Package jobs provides scheduled background tasks for the production tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the tracking service.
//
// # Available Jobs
//
// 1. ReportDigestJob - Runs hourly to compute and log the production KPIs
// (first pass yield, stage distribution, throughput) over the trailing day
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(yieldHandler, stagesHandler, throughputHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The digest job is read only. Query failures are logged and the next run
// retries; a failed job start is returned from StartAll.
package jobs
