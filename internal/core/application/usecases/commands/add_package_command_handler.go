package commands

import (
	"context"
)

// AddPackageCommandHandler opens a new empty package on an order for manual
// item placement.
type AddPackageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddPackageCommandHandler creates a handler for the add-package operation.
func NewAddPackageCommandHandler(uowFactory OrderUoWFactory) AddPackageCommandHandler {
	return AddPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, opens an empty package and persists the result.
// Returns the index of the new package.
func (h AddPackageCommandHandler) Handle(ctx context.Context, cmd AddPackageCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	index, err := aggregate.AddPackage()
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return index, nil
}
