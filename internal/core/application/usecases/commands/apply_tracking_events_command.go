package commands

import (
	"errors"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var (
	ErrApplyTrackingEventsCommandIsNotConstructed = errors.New(
		"ApplyTrackingEventsCommand must be created via NewApplyTrackingEventsCommand constructor",
	)
	ErrTrackingEventsAreRequired = errors.New("at least one tracking event is required")
)

// ApplyTrackingEventsCommand carries a batch of raw carrier events to apply
// to the tracked parcels. Events for unknown labels or with unmapped code
// pairs are skipped without failing the batch.
type ApplyTrackingEventsCommand struct { //nolint:recvcheck //using for validation
	events []shipment.TrackingEvent

	guard guard.ConstructorGuard
}

// NewApplyTrackingEventsCommand creates a command from a batch of raw
// carrier events.
func NewApplyTrackingEventsCommand(events []shipment.TrackingEvent) (ApplyTrackingEventsCommand, error) {
	if len(events) == 0 {
		return ApplyTrackingEventsCommand{}, ErrTrackingEventsAreRequired
	}

	return ApplyTrackingEventsCommand{
		events: events,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyTrackingEventsCommand) Validate() error {
	return c.guard.Validate(ErrApplyTrackingEventsCommandIsNotConstructed)
}

// Events returns the raw carrier events of the batch.
func (c ApplyTrackingEventsCommand) Events() []shipment.TrackingEvent {
	return c.events
}
