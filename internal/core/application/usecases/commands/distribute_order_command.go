package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrDistributeOrderCommandIsNotConstructed = errors.New(
	"DistributeOrderCommand must be created via NewDistributeOrderCommand constructor",
)

// DistributeOrderCommand requests automatic distribution of an order's line
// items into packages. Only valid on an entirely undistributed order.
type DistributeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDistributeOrderCommand creates a command to auto-distribute an order.
func NewDistributeOrderCommand(orderID kernel.UUID) (DistributeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DistributeOrderCommand{}, err
	}

	return DistributeOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DistributeOrderCommand) Validate() error {
	return c.guard.Validate(ErrDistributeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to distribute.
func (c DistributeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
