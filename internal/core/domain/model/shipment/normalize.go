package shipment

// Carrier event codes observed in tracking feeds. An event code describes what
// happened to the parcel; the justification code qualifies it.
const (
	// EventTakenOver is emitted when the carrier takes the parcel over.
	EventTakenOver = "APF"
	// EventAtRelay is emitted when the parcel transits through a relay site.
	EventAtRelay = "RST"
	// EventDeposited is emitted when the parcel is deposited at a location.
	EventDeposited = "DEP"
	// EventDelivered is emitted when the parcel is handed to the recipient.
	EventDelivered = "SOL"
	// EventReturning is emitted while the parcel travels back to the sender.
	EventReturning = "REN"
	// EventDeliveryOutcome is emitted after a delivery attempt.
	EventDeliveryOutcome = "SOR"
)

// Carrier justification codes qualifying an event code.
const (
	// JustificationReturnToSender marks a return-to-sender outcome.
	JustificationReturnToSender = "RDF"
	// JustificationReceivedAtRelay marks reception at the destination relay.
	JustificationReceivedAtRelay = "REC"
	// JustificationRelayDropOff marks a drop-off at the pickup relay.
	JustificationRelayDropOff = "REL"
	// JustificationDelivered marks a completed delivery.
	JustificationDelivered = "LIV"
)

// Normalize maps a raw carrier (eventCode, justificationCode) pair to the
// canonical parcel status. It is a pure function: identical inputs always
// yield identical outputs.
//
// The decision table is fixed by the carrier's tracking protocol:
//
//	APF + RDF        -> Returned
//	APF + (other)    -> Dispatched
//	RST + REC        -> DroppedAtRelay
//	RST + (other)    -> InTransit
//	DEP + REL        -> DroppedAtRelay
//	SOL + (any)      -> Delivered
//	REN + LIV        -> Delivered
//	REN + (other)    -> ReturnInProgress
//	SOR + LIV        -> Delivered
//	SOR + RDF        -> Returned
//	SOR + (other)    -> DeliveryFailed
//	(anything else)  -> StatusUnknown
//
// StatusUnknown signals that the pair is not in the table; callers must treat
// it as "no status change", never as a default status.
func Normalize(eventCode, justificationCode string) Status {
	switch eventCode {
	case EventTakenOver:
		if justificationCode == JustificationReturnToSender {
			return Returned
		}
		return Dispatched
	case EventAtRelay:
		if justificationCode == JustificationReceivedAtRelay {
			return DroppedAtRelay
		}
		return InTransit
	case EventDeposited:
		if justificationCode == JustificationRelayDropOff {
			return DroppedAtRelay
		}
		return StatusUnknown
	case EventDelivered:
		return Delivered
	case EventReturning:
		if justificationCode == JustificationDelivered {
			return Delivered
		}
		return ReturnInProgress
	case EventDeliveryOutcome:
		switch justificationCode {
		case JustificationDelivered:
			return Delivered
		case JustificationReturnToSender:
			return Returned
		default:
			return DeliveryFailed
		}
	default:
		return StatusUnknown
	}
}

// TrackingEvent is one raw tracking record received from the carrier for a
// labeled parcel. Events arrive in batches; each parcel's events are
// independent of the others.
type TrackingEvent struct {
	// LabelNumber identifies the tracked parcel by its shipping label.
	LabelNumber string
	// EventCode is the raw carrier event code (e.g. "APF").
	EventCode string
	// JustificationCode is the raw carrier justification code (e.g. "RDF").
	JustificationCode string
}
