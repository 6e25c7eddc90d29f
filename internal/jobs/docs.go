// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the marketplace service.
//
// # Available Jobs
//
// 1. ReconciliationJob - Sweeps orders stuck in AwaitingEscrow with both
// deposits recorded and repairs them to ReadyForPickup
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileOrdersHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation sweep schedule comes from configuration as a six-field
// cron expression (seconds included), e.g. "*/30 * * * * *" for every thirty
// seconds. The sweep repairs a rare inconsistency, so low frequencies are fine.
//
// # Error Handling
//
// - A failed sweep run is logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
