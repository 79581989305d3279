package commands

import (
	"context"
)

// UpdatePackageCommandHandler updates the manual weight override and the
// dimensions of an unlabeled package.
type UpdatePackageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdatePackageCommandHandler creates a handler for package updates.
func NewUpdatePackageCommandHandler(uowFactory OrderUoWFactory) UpdatePackageCommandHandler {
	return UpdatePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies the package update and persists the result.
func (h UpdatePackageCommandHandler) Handle(ctx context.Context, cmd UpdatePackageCommand) error {
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

	if err = aggregate.UpdatePackage(cmd.PackageIndex(), cmd.WeightGrams(), cmd.Dimensions()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
