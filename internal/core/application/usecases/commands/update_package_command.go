package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdatePackageCommandIsNotConstructed = errors.New(
	"UpdatePackageCommand must be created via NewUpdatePackageCommand constructor",
)

// UpdatePackageCommand requests an update of a package's manual weight
// override (0 clears it) and optional dimensions.
type UpdatePackageCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	packageIndex int
	weightGrams  int
	dimensions   *order.Dimensions

	guard guard.ConstructorGuard
}

// NewUpdatePackageCommand creates a command to update package attributes.
// The ceiling check against the override happens in the domain.
func NewUpdatePackageCommand(
	orderID kernel.UUID,
	packageIndex int,
	weightGrams int,
	dimensions *order.Dimensions,
) (UpdatePackageCommand, error) {
	command := UpdatePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPackageIndex(packageIndex),
		command.setWeightGrams(weightGrams),
		command.setDimensions(dimensions),
	); err != nil {
		return UpdatePackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePackageCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageCommandIsNotConstructed)
}

// OrderID returns the identifier of the targeted order.
func (c UpdatePackageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PackageIndex returns the position of the targeted package.
func (c UpdatePackageCommand) PackageIndex() int {
	return c.packageIndex
}

// WeightGrams returns the manual weight override, 0 to clear it.
func (c UpdatePackageCommand) WeightGrams() int {
	return c.weightGrams
}

// Dimensions returns the dimensions to set, nil to clear them.
func (c UpdatePackageCommand) Dimensions() *order.Dimensions {
	return c.dimensions
}

func (c *UpdatePackageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdatePackageCommand) setPackageIndex(packageIndex int) error {
	if packageIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packageIndex",
			fmt.Errorf("%d is negative", packageIndex))
	}
	c.packageIndex = packageIndex
	return nil
}

func (c *UpdatePackageCommand) setWeightGrams(weightGrams int) error {
	if weightGrams < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%d is negative", weightGrams))
	}
	c.weightGrams = weightGrams
	return nil
}

func (c *UpdatePackageCommand) setDimensions(dimensions *order.Dimensions) error {
	if dimensions != nil {
		if err := dimensions.Validate(); err != nil {
			return err
		}
	}
	c.dimensions = dimensions
	return nil
}
