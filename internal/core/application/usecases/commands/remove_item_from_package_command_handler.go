package commands

import (
	"context"
)

// RemoveItemFromPackageCommandHandler removes a product's placement from a
// package. A successful removal may move the order back to the
// ItemsToBeDistributed state.
type RemoveItemFromPackageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveItemFromPackageCommandHandler creates a handler for placement removal.
func NewRemoveItemFromPackageCommandHandler(uowFactory OrderUoWFactory) RemoveItemFromPackageCommandHandler {
	return RemoveItemFromPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, removes the placement and persists the result.
func (h RemoveItemFromPackageCommandHandler) Handle(ctx context.Context, cmd RemoveItemFromPackageCommand) error {
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

	if err = aggregate.RemoveItemFromPackage(cmd.PackageIndex(), cmd.ProductID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
