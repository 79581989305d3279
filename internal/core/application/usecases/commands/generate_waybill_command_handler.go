package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// GenerateWaybillCommandHandler requests the transport document covering an
// order's labeled packages and moves the order to its terminal
// WayBillsGenerated state. Only valid once every package carries a label.
type GenerateWaybillCommandHandler struct {
	uowFactory    OrderUoWFactory
	carrierClient ports.CarrierClient
}

// NewGenerateWaybillCommandHandler creates a handler for waybill generation.
func NewGenerateWaybillCommandHandler(
	uowFactory OrderUoWFactory,
	carrierClient ports.CarrierClient,
) GenerateWaybillCommandHandler {
	return GenerateWaybillCommandHandler{
		uowFactory:    uowFactory,
		carrierClient: carrierClient,
	}
}

// Handle collects the order's label numbers, requests the waybill from the
// carrier and records the document reference.
func (h GenerateWaybillCommandHandler) Handle(ctx context.Context, cmd GenerateWaybillCommand) error {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ValidateWaybillGeneration(); err != nil {
		return err
	}

	labelNumbers := make([]string, 0, len(aggregate.Packages()))
	for _, pkg := range aggregate.Packages() {
		if pkg.IsLabeled() {
			labelNumbers = append(labelNumbers, pkg.ShippingLabel())
		}
	}

	waybill, err := h.carrierClient.GenerateWaybill(ctx, ports.WaybillRequest{
		OrderID:      aggregate.ID(),
		LabelNumbers: labelNumbers,
	})
	if err != nil {
		return err
	}

	if err = aggregate.MarkWaybillGenerated(waybill.DocumentURL); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
