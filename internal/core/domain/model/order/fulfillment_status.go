package order

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrPreconditionNotMet is the sentinel for fulfillment transitions requested
// before their guard is satisfied. The state is left unchanged.
var ErrPreconditionNotMet = errors.New("fulfillment precondition not met")

// PreconditionNotMetError reports a rejected fulfillment transition with the
// state it was attempted from, so callers can render a precise message.
type PreconditionNotMetError struct {
	Transition string
	Current    FulfillmentStatus
}

func (e *PreconditionNotMetError) Error() string {
	return fmt.Sprintf("fulfillment precondition not met: cannot %s from %s",
		e.Transition, e.Current)
}

func (e *PreconditionNotMetError) Unwrap() error {
	return ErrPreconditionNotMet
}

// FulfillmentStatus represents the macro fulfillment phase of an order.
// It implements a state machine with strictly forward transitions, except for
// the single documented backward transition when a mutation un-distributes
// the order.
//
// State transitions:
//
//	ItemsToBeDistributed ──> ItemsDistributed ──> ShippingLabelsPlaced ──> WayBillsGenerated
//	          ^                     │
//	          └─────────────────────┘
//	   (item removal / package deletion)
//
// WayBillsGenerated is terminal; per-parcel tracking status evolves
// independently and does not feed back into this machine.
type FulfillmentStatus int

const (
	// FulfillmentUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized FulfillmentStatus values.
	FulfillmentUnknown FulfillmentStatus = iota

	// ItemsToBeDistributed is the initial status: at least one purchased
	// unit has not been placed into a package yet.
	ItemsToBeDistributed

	// ItemsDistributed indicates every purchased unit sits in a package.
	ItemsDistributed

	// ShippingLabelsPlaced indicates every package has a shipping label.
	ShippingLabelsPlaced

	// WayBillsGenerated indicates the transport document has been issued.
	// This is the final status of the fulfillment machine.
	WayBillsGenerated
)

func getFulfillmentStatusStrings() map[FulfillmentStatus]string {
	return map[FulfillmentStatus]string{
		FulfillmentUnknown:   "Unknown",
		ItemsToBeDistributed: "ItemsToBeDistributed",
		ItemsDistributed:     "ItemsDistributed",
		ShippingLabelsPlaced: "ShippingLabelsPlaced",
		WayBillsGenerated:    "WayBillsGenerated",
	}
}

// Validate checks if the FulfillmentStatus value is valid.
// FulfillmentUnknown (0) and out-of-range values are invalid.
func (s FulfillmentStatus) Validate() error {
	if s == FulfillmentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("fulfillmentStatus",
			fmt.Errorf("%d is not a valid fulfillment status", s))
	}
	if _, ok := getFulfillmentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fulfillmentStatus",
			fmt.Errorf("%d is not a valid fulfillment status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any FulfillmentStatus value.
func (s FulfillmentStatus) String() string {
	if str, ok := getFulfillmentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarkDistributed transitions to ItemsDistributed once every line item is
// fully placed.
//
// Valid transitions:
//   - ItemsToBeDistributed -> ItemsDistributed
//   - ItemsDistributed -> ItemsDistributed (idempotent re-evaluation)
func (s FulfillmentStatus) MarkDistributed() (FulfillmentStatus, error) {
	if s != ItemsToBeDistributed && s != ItemsDistributed {
		return 0, &PreconditionNotMetError{Transition: "mark distributed", Current: s}
	}
	return ItemsDistributed, nil
}

// MarkUndistributed performs the single documented backward transition,
// triggered when an item removal or package deletion leaves undistributed
// quantity.
//
// Valid transitions:
//   - ItemsDistributed -> ItemsToBeDistributed
//   - ItemsToBeDistributed -> ItemsToBeDistributed (idempotent re-evaluation)
func (s FulfillmentStatus) MarkUndistributed() (FulfillmentStatus, error) {
	if s != ItemsDistributed && s != ItemsToBeDistributed {
		return 0, &PreconditionNotMetError{Transition: "mark undistributed", Current: s}
	}
	return ItemsToBeDistributed, nil
}

// PlaceLabels transitions to ShippingLabelsPlaced once every package carries
// a shipping label. Requesting it while any item remains undistributed is a
// precondition failure.
func (s FulfillmentStatus) PlaceLabels() (FulfillmentStatus, error) {
	if s != ItemsDistributed {
		return 0, &PreconditionNotMetError{Transition: "place shipping labels", Current: s}
	}
	return ShippingLabelsPlaced, nil
}

// GenerateWayBills transitions to the terminal WayBillsGenerated status once
// the transport document exists.
func (s FulfillmentStatus) GenerateWayBills() (FulfillmentStatus, error) {
	if s != ShippingLabelsPlaced {
		return 0, &PreconditionNotMetError{Transition: "generate waybills", Current: s}
	}
	return WayBillsGenerated, nil
}
