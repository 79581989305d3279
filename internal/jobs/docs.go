// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for parcel tracking.
//
// # Available Jobs
//
// 1. TrackingPollJob - Runs every minute to refresh stale tracking records
// from the carrier API and normalize their statuses
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(staleHandler, applyHandler, carrierClient, 30*time.Minute, logger)
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
// The tracking poll uses the cron expression "0 * * * * *" which means it
// runs at the top of every minute. The staleness window keeps recently
// refreshed parcels out of the carrier request, so the poll only pays for
// labels that actually need an update.
//
// # Error Handling
//
// - Carrier or database failures abort the current poll cycle and are logged;
// the next cycle retries from the staleness query
// - Events with an unknown label or an unmapped code pair are skipped inside
// the command handler without failing the batch
package jobs
