package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the canonical delivery-lifecycle state of a single parcel.
// It is derived deterministically from raw carrier event codes (see Normalize)
// and is never set directly by user action.
//
// Unlike the order fulfillment state machine, parcel statuses do not follow a
// strict forward-only progression: the carrier is the source of truth and a
// parcel can, for example, move from DeliveryFailed back to InTransit on a
// redelivery attempt.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and is the
	// result of normalizing an unmapped carrier code pair.
	StatusUnknown Status = iota

	// Pending is the initial status of a package before any label exists.
	Pending

	// LabelAnnounced indicates a shipping label has been issued to the
	// carrier but the parcel has not been physically handed over yet.
	LabelAnnounced

	// Dispatched indicates the parcel has been taken over by the carrier.
	Dispatched

	// InTransit indicates the parcel is moving through the carrier network.
	InTransit

	// DroppedAtRelay indicates the parcel is available at a pickup relay.
	DroppedAtRelay

	// Delivered indicates the parcel reached its recipient. Terminal.
	Delivered

	// DeliveryFailed indicates a delivery attempt failed.
	DeliveryFailed

	// Returned indicates the parcel was returned to the sender. Terminal.
	Returned

	// ReturnInProgress indicates the parcel is on its way back to the sender.
	ReturnInProgress
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		Pending:          "Pending",
		LabelAnnounced:   "LabelAnnounced",
		Dispatched:       "Dispatched",
		InTransit:        "InTransit",
		DroppedAtRelay:   "DroppedAtRelay",
		Delivered:        "Delivered",
		DeliveryFailed:   "DeliveryFailed",
		Returned:         "Returned",
		ReturnInProgress: "ReturnInProgress",
	}
}

// Validate checks if the Status value is one of the canonical statuses.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status ends the parcel lifecycle.
// Terminal parcels are excluded from carrier tracking polls.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned
}
