package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrAddPackageCommandIsNotConstructed = errors.New(
	"AddPackageCommand must be created via NewAddPackageCommand constructor",
)

// AddPackageCommand requests an additional empty package for manual
// composition of an order.
type AddPackageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddPackageCommand creates a command to open a new empty package.
func NewAddPackageCommand(orderID kernel.UUID) (AddPackageCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AddPackageCommand{}, err
	}

	return AddPackageCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPackageCommand) Validate() error {
	return c.guard.Validate(ErrAddPackageCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to extend.
func (c AddPackageCommand) OrderID() kernel.UUID {
	return c.orderID
}
