package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrAddItemToPackageCommandIsNotConstructed = errors.New(
	"AddItemToPackageCommand must be created via NewAddItemToPackageCommand constructor",
)

// AddItemToPackageCommand requests the manual placement of a quantity of one
// product into a specific package of an order.
type AddItemToPackageCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	packageIndex int
	productID    string
	quantity     int

	guard guard.ConstructorGuard
}

// NewAddItemToPackageCommand creates a command to place items manually.
// The capacity, remaining-quantity and freeze checks happen in the domain;
// the command only validates shape.
func NewAddItemToPackageCommand(
	orderID kernel.UUID,
	packageIndex int,
	productID string,
	quantity int,
) (AddItemToPackageCommand, error) {
	command := AddItemToPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPackageIndex(packageIndex),
		command.setProductID(productID),
		command.setQuantity(quantity),
	); err != nil {
		return AddItemToPackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemToPackageCommand) Validate() error {
	return c.guard.Validate(ErrAddItemToPackageCommandIsNotConstructed)
}

// OrderID returns the identifier of the targeted order.
func (c AddItemToPackageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PackageIndex returns the position of the targeted package.
func (c AddItemToPackageCommand) PackageIndex() int {
	return c.packageIndex
}

// ProductID returns the product to place.
func (c AddItemToPackageCommand) ProductID() string {
	return c.productID
}

// Quantity returns the number of units to place.
func (c AddItemToPackageCommand) Quantity() int {
	return c.quantity
}

func (c *AddItemToPackageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddItemToPackageCommand) setPackageIndex(packageIndex int) error {
	if packageIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packageIndex",
			fmt.Errorf("%d is negative", packageIndex))
	}
	c.packageIndex = packageIndex
	return nil
}

func (c *AddItemToPackageCommand) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	c.productID = productID
	return nil
}

func (c *AddItemToPackageCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
