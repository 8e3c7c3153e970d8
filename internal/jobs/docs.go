// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BacklogGaugeJob - refreshes the parcels_awaiting_pickup and
// parcels_with_problems gauges from the parcel store
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	backlog := jobs.NewBacklogGaugeJob(statsHandler, parcelMetrics, jobMetrics, "", log)
//	jobManager := jobs.NewJobManager(backlog)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (seconds first). The backlog job
// defaults to every 30 seconds and also runs once when started, so gauges are
// populated before the first scrape.
//
// # Error Handling
//
// - A failed refresh is logged and counted in parcels_job_failure_total; the gauges keep their last value
// - Failed job starts will stop any already running jobs
package jobs
