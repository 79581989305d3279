package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// ApplyTrackingEventsCommandHandler folds a batch of raw carrier events into
// the tracked parcels: each event is normalized and the shipment record and
// its package status are updated.
//
// One bad event never poisons the batch. Events with an unmapped code pair
// or an unknown label are logged and skipped; every other event in the batch
// is still applied.
type ApplyTrackingEventsCommandHandler struct {
	uowFactory TrackingUoWFactory
	logger     *slog.Logger
}

// NewApplyTrackingEventsCommandHandler creates a handler for tracking event
// batches.
func NewApplyTrackingEventsCommandHandler(
	uowFactory TrackingUoWFactory,
	logger *slog.Logger,
) ApplyTrackingEventsCommandHandler {
	return ApplyTrackingEventsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "apply_tracking_events"),
	}
}

// Handle applies the batch within one transaction and returns the resulting
// status per applied label number. Skipped events do not appear in the
// result.
func (h ApplyTrackingEventsCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyTrackingEventsCommand,
) (map[string]shipment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	orderRepo := uow.OrderRepository()

	applied := make(map[string]shipment.Status)
	for _, event := range cmd.Events() {
		record, err := shipmentRepo.GetByLabel(ctx, event.LabelNumber)
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "Tracking event for unknown label skipped",
				"label", event.LabelNumber)
			continue
		}
		if err != nil {
			return nil, err
		}

		if err = record.ApplyEvent(event.EventCode, event.JustificationCode); err != nil {
			if errors.Is(err, shipment.ErrUnknownTrackingCode) {
				h.logger.WarnContext(ctx, "Unmapped carrier code pair skipped",
					"label", event.LabelNumber,
					"event_code", event.EventCode,
					"justification_code", event.JustificationCode)
				continue
			}
			return nil, err
		}

		if err = shipmentRepo.Update(ctx, record); err != nil {
			return nil, err
		}

		aggregate, err := orderRepo.Get(ctx, record.OrderID())
		if err != nil {
			return nil, err
		}
		if err = aggregate.UpdatePackageStatus(record.PackageID(), record.Status()); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}

		applied[event.LabelNumber] = record.Status()
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return applied, nil
}
