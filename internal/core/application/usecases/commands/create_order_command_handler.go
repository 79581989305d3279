package commands

import (
	"context"

	"shipping/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the order aggregate from the command's line items and persists it in
// the ItemsToBeDistributed fulfillment state.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, "Relay", 39.90, items)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now registered and ready for package distribution
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Parses the shipping method, builds validated line items and the order
// aggregate, then persists it. Uses a transaction to ensure the order is
// properly persisted or rolled back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	method, err := order.ParseShippingMethod(cmd.Method())
	if err != nil {
		return err
	}

	lineItems := make([]*order.LineItem, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		item, err := order.NewLineItem(input.ProductID, input.UnitWeight, input.Quantity)
		if err != nil {
			return err
		}
		lineItems = append(lineItems, item)
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), method, cmd.Subtotal(), lineItems)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
