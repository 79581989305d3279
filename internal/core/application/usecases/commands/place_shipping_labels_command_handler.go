package commands

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// PlaceShippingLabelsCommandHandler requests a carrier label for every
// unlabeled package of an order and records a tracking record per label.
//
// The command is safe to retry: already-labeled packages keep their label and
// only the remaining ones are sent to the carrier. Once every package carries
// a label the order advances to ShippingLabelsPlaced.
//
// The carrier calls happen inside the database transaction. If a later label
// request fails the transaction rolls back and no label is recorded; labels
// already issued at the carrier are re-requested on retry.
type PlaceShippingLabelsCommandHandler struct {
	uowFactory    TrackingUoWFactory
	carrierClient ports.CarrierClient
}

// NewPlaceShippingLabelsCommandHandler creates a handler for label placement.
// Requires the carrier client for label issuance.
func NewPlaceShippingLabelsCommandHandler(
	uowFactory TrackingUoWFactory,
	carrierClient ports.CarrierClient,
) PlaceShippingLabelsCommandHandler {
	return PlaceShippingLabelsCommandHandler{
		uowFactory:    uowFactory,
		carrierClient: carrierClient,
	}
}

// Handle loads the order, requests one label per unlabeled package from the
// carrier, freezes each labeled package and stores its tracking record.
func (h PlaceShippingLabelsCommandHandler) Handle(ctx context.Context, cmd PlaceShippingLabelsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ValidateLabelPlacement(); err != nil {
		return err
	}

	for index, pkg := range aggregate.Packages() {
		if pkg.IsLabeled() {
			continue
		}

		weight, err := aggregate.PackageWeight(index)
		if err != nil {
			return err
		}

		placed, err := h.carrierClient.PlaceLabel(ctx, ports.LabelRequest{
			OrderID:     aggregate.ID(),
			PackageID:   pkg.ID(),
			WeightGrams: weight,
			Method:      aggregate.Method(),
		})
		if err != nil {
			return err
		}

		if err = aggregate.PlaceShippingLabel(index, placed.LabelNumber, placed.DocumentURL); err != nil {
			return err
		}

		record, err := shipment.NewShipment(placed.LabelNumber, aggregate.ID(), pkg.ID())
		if err != nil {
			return err
		}

		if err = shipmentRepo.Add(ctx, record); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
