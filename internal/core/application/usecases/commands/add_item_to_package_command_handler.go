package commands

import (
	"context"
)

// AddItemToPackageCommandHandler performs a manual item placement. The domain
// rejects placements breaking the weight ceiling, the remaining-quantity
// accounting or a labeled package's freeze, leaving the order unchanged.
type AddItemToPackageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddItemToPackageCommandHandler creates a handler for manual placements.
func NewAddItemToPackageCommandHandler(uowFactory OrderUoWFactory) AddItemToPackageCommandHandler {
	return AddItemToPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, places the requested units and persists the result
// within one transaction.
func (h AddItemToPackageCommandHandler) Handle(ctx context.Context, cmd AddItemToPackageCommand) error {
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

	if err = aggregate.AddItemToPackage(cmd.PackageIndex(), cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
