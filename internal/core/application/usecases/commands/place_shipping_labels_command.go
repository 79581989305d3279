package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrPlaceShippingLabelsCommandIsNotConstructed = errors.New(
	"PlaceShippingLabelsCommand must be created via NewPlaceShippingLabelsCommand constructor",
)

// PlaceShippingLabelsCommand requests carrier labels for every unlabeled
// package of a fully distributed order.
type PlaceShippingLabelsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlaceShippingLabelsCommand creates a command to label an order's packages.
func NewPlaceShippingLabelsCommand(orderID kernel.UUID) (PlaceShippingLabelsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PlaceShippingLabelsCommand{}, err
	}

	return PlaceShippingLabelsCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceShippingLabelsCommand) Validate() error {
	return c.guard.Validate(ErrPlaceShippingLabelsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to label.
func (c PlaceShippingLabelsCommand) OrderID() kernel.UUID {
	return c.orderID
}
