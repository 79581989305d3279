package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
)

// LabelRequest describes one package to label at the carrier.
type LabelRequest struct {
	OrderID     kernel.UUID
	PackageID   kernel.UUID
	WeightGrams int
	Method      order.ShippingMethod
}

// PlacedLabel is the carrier's answer to a label request.
type PlacedLabel struct {
	LabelNumber string
	DocumentURL string
}

// WaybillRequest asks the carrier for the transport document covering a set
// of labeled packages of one order.
type WaybillRequest struct {
	OrderID      kernel.UUID
	LabelNumbers []string
}

// Waybill is the carrier's transport document reference.
type Waybill struct {
	DocumentURL string
}

// CarrierClient defines the contract with the external carrier API used for
// label issuance, waybill generation and tracking.
//
// Implementations are expected to honor context cancellation and to return
// errors unwrapped enough for callers to distinguish transport failures from
// carrier rejections.
type CarrierClient interface {
	// PlaceLabel requests a shipping label for one package.
	PlaceLabel(ctx context.Context, request LabelRequest) (PlacedLabel, error)

	// GenerateWaybill requests the transport document covering the labeled
	// packages of one order.
	GenerateWaybill(ctx context.Context, request WaybillRequest) (Waybill, error)

	// FetchTrackingEvents retrieves the raw carrier events of a set of
	// shipping labels. Events carry carrier code pairs which the domain
	// normalizes via shipment.Normalize.
	FetchTrackingEvents(ctx context.Context, labelNumbers []string) ([]shipment.TrackingEvent, error)
}
