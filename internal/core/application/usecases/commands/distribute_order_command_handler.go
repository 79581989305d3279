package commands

import (
	"context"

	"shipping/internal/core/domain/services"
)

// DistributeOrderCommandHandler runs greedy first-fit distribution on an
// order. The whole distribution is atomic: a failed run (an item above the
// weight ceiling, or already-placed items) leaves the stored order unchanged.
//
// Example:
//
//	handler := NewDistributeOrderCommandHandler(uowFactory)
//	cmd, _ := NewDistributeOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrOrderAlreadyDistributed):
//	    // manual placements exist, distribution refused
//	case errors.Is(err, order.ErrItemTooHeavy):
//	    // an item can never fit, fatal
//	}
type DistributeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDistributeOrderCommandHandler creates a handler for auto-distribution.
func NewDistributeOrderCommandHandler(uowFactory OrderUoWFactory) DistributeOrderCommandHandler {
	return DistributeOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, distributes every remaining unit into packages and
// persists the result within one transaction.
func (h DistributeOrderCommandHandler) Handle(ctx context.Context, cmd DistributeOrderCommand) error {
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

	if err = services.NewPackageDistributor().Distribute(aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
