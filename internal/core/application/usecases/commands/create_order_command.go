package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// LineItemInput carries one purchased product of a new order: the opaque
// product identifier, the unit weight in grams (0 = unset) and the quantity.
type LineItemInput struct {
	ProductID  string
	UnitWeight int
	Quantity   int
}

// CreateOrderCommand represents a request to register a new order for
// packaging. Encapsulates the shipping method, the subtotal and the
// purchased line items.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "Relay", 39.90, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	method   string
	subtotal float64
	items    []LineItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the method name is not empty, the
// subtotal is not negative and at least one line item is present. Item-level
// validation happens in the domain when the handler builds the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	method string,
	subtotal float64,
	items []LineItemInput,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setMethod(method),
		orderCommand.setSubtotal(subtotal),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Method returns the shipping method name ("Relay", "Home" or "Home+").
func (c CreateOrderCommand) Method() string {
	return c.method
}

// Subtotal returns the order subtotal in the shop currency.
func (c CreateOrderCommand) Subtotal() float64 {
	return c.subtotal
}

// Items returns the purchased line items.
func (c CreateOrderCommand) Items() []LineItemInput {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("method")
	}

	c.method = method
	return nil
}

func (c *CreateOrderCommand) setSubtotal(subtotal float64) error {
	if subtotal < 0 {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%f is negative", subtotal))
	}

	c.subtotal = subtotal
	return nil
}

func (c *CreateOrderCommand) setItems(items []LineItemInput) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}

	c.items = items
	return nil
}
