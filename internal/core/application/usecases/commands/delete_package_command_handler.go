package commands

import (
	"context"
)

// DeletePackageCommandHandler deletes an unlabeled package from an order.
// Every unit it held returns to the undistributed pool, which may move the
// order back to the ItemsToBeDistributed state.
type DeletePackageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeletePackageCommandHandler creates a handler for package deletion.
func NewDeletePackageCommandHandler(uowFactory OrderUoWFactory) DeletePackageCommandHandler {
	return DeletePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, deletes the package and persists the result.
func (h DeletePackageCommandHandler) Handle(ctx context.Context, cmd DeletePackageCommand) error {
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

	if err = aggregate.DeletePackage(cmd.PackageIndex()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
