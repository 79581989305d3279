package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// TrackingPollJob periodically refreshes stale tracking records.
// Every minute it collects the labels whose record has not moved within the
// staleness window, fetches their latest raw events from the carrier and
// applies them through the tracking use case.
type TrackingPollJob struct {
	staleHandler  queries.GetStaleShipmentsQueryHandler
	applyHandler  commands.ApplyTrackingEventsCommandHandler
	carrierClient ports.CarrierClient
	maxAge        time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewTrackingPollJob creates a new job for refreshing tracking records.
// maxAge is the staleness window: records refreshed within it are skipped.
func NewTrackingPollJob(
	staleHandler queries.GetStaleShipmentsQueryHandler,
	applyHandler commands.ApplyTrackingEventsCommandHandler,
	carrierClient ports.CarrierClient,
	maxAge time.Duration,
	logger *slog.Logger,
) *TrackingPollJob {
	return &TrackingPollJob{
		staleHandler:  staleHandler,
		applyHandler:  applyHandler,
		carrierClient: carrierClient,
		maxAge:        maxAge,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "tracking_poll_job"),
	}
}

// Start begins the tracking poll job to run every minute.
func (j *TrackingPollJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", j.poll)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking poll job started (running every minute)",
		"max_age", j.maxAge.String())
	return nil
}

// Stop stops the tracking poll job.
func (j *TrackingPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking poll job stopped")
}

func (j *TrackingPollJob) poll() {
	ctx := context.Background()

	query, err := queries.NewGetStaleShipmentsQuery(j.maxAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking poll query construction failed", "error", err)
		return
	}

	stale, err := j.staleHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking poll staleness query failed", "error", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	labels := make([]string, 0, len(stale))
	for _, record := range stale {
		labels = append(labels, record.LabelNumber)
	}

	events, err := j.carrierClient.FetchTrackingEvents(ctx, labels)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking poll carrier request failed",
			"label_count", len(labels), "error", err)
		return
	}
	if len(events) == 0 {
		return
	}

	cmd, err := commands.NewApplyTrackingEventsCommand(events)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking poll command construction failed", "error", err)
		return
	}

	applied, err := j.applyHandler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking poll event application failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Tracking poll completed",
		"stale_count", len(stale),
		"event_count", len(events),
		"applied_count", len(applied))
}
