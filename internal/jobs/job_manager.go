package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingPollJob *TrackingPollJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the query handler, command handler and carrier client needed to wire
// up the tracking poll.
func NewJobManager(
	staleHandler queries.GetStaleShipmentsQueryHandler,
	applyHandler commands.ApplyTrackingEventsCommandHandler,
	carrierClient ports.CarrierClient,
	trackingMaxAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingPollJob: NewTrackingPollJob(staleHandler, applyHandler, carrierClient, trackingMaxAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingPollJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking poll job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingPollJob.Stop()
}
