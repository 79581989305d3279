package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrRemoveItemFromPackageCommandIsNotConstructed = errors.New(
	"RemoveItemFromPackageCommand must be created via NewRemoveItemFromPackageCommand constructor",
)

// RemoveItemFromPackageCommand requests removal of a product's whole
// placement from one package, returning its units to the undistributed pool.
type RemoveItemFromPackageCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	packageIndex int
	productID    string

	guard guard.ConstructorGuard
}

// NewRemoveItemFromPackageCommand creates a command to remove a placement.
func NewRemoveItemFromPackageCommand(
	orderID kernel.UUID,
	packageIndex int,
	productID string,
) (RemoveItemFromPackageCommand, error) {
	command := RemoveItemFromPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPackageIndex(packageIndex),
		command.setProductID(productID),
	); err != nil {
		return RemoveItemFromPackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveItemFromPackageCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemFromPackageCommandIsNotConstructed)
}

// OrderID returns the identifier of the targeted order.
func (c RemoveItemFromPackageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PackageIndex returns the position of the targeted package.
func (c RemoveItemFromPackageCommand) PackageIndex() int {
	return c.packageIndex
}

// ProductID returns the product whose placement is removed.
func (c RemoveItemFromPackageCommand) ProductID() string {
	return c.productID
}

func (c *RemoveItemFromPackageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RemoveItemFromPackageCommand) setPackageIndex(packageIndex int) error {
	if packageIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packageIndex",
			fmt.Errorf("%d is negative", packageIndex))
	}
	c.packageIndex = packageIndex
	return nil
}

func (c *RemoveItemFromPackageCommand) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	c.productID = productID
	return nil
}
