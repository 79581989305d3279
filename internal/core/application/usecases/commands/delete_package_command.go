package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrDeletePackageCommandIsNotConstructed = errors.New(
	"DeletePackageCommand must be created via NewDeletePackageCommand constructor",
)

// DeletePackageCommand requests deletion of an unlabeled package, returning
// its units to the undistributed pool.
type DeletePackageCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	packageIndex int

	guard guard.ConstructorGuard
}

// NewDeletePackageCommand creates a command to delete a package.
func NewDeletePackageCommand(orderID kernel.UUID, packageIndex int) (DeletePackageCommand, error) {
	command := DeletePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPackageIndex(packageIndex),
	); err != nil {
		return DeletePackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePackageCommand) Validate() error {
	return c.guard.Validate(ErrDeletePackageCommandIsNotConstructed)
}

// OrderID returns the identifier of the targeted order.
func (c DeletePackageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PackageIndex returns the position of the package to delete.
func (c DeletePackageCommand) PackageIndex() int {
	return c.packageIndex
}

func (c *DeletePackageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *DeletePackageCommand) setPackageIndex(packageIndex int) error {
	if packageIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packageIndex",
			fmt.Errorf("%d is negative", packageIndex))
	}
	c.packageIndex = packageIndex
	return nil
}
