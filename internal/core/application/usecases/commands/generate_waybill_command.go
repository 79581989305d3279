package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGenerateWaybillCommandIsNotConstructed = errors.New(
	"GenerateWaybillCommand must be created via NewGenerateWaybillCommand constructor",
)

// GenerateWaybillCommand requests the carrier transport document covering
// every labeled package of an order.
type GenerateWaybillCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateWaybillCommand creates a command to generate an order's waybill.
func NewGenerateWaybillCommand(orderID kernel.UUID) (GenerateWaybillCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateWaybillCommand{}, err
	}

	return GenerateWaybillCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateWaybillCommand) Validate() error {
	return c.guard.Validate(ErrGenerateWaybillCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c GenerateWaybillCommand) OrderID() kernel.UUID {
	return c.orderID
}
