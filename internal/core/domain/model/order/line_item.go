package order

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
	// created through the NewLineItem factory function.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

	// ErrProductIDIsRequired is returned when a line item is created without
	// a product identifier.
	ErrProductIDIsRequired = errs.NewValueIsRequiredError("productID")
)

// LineItem identifies a purchased product within an order: an opaque product
// identifier, the unit weight in grams and the purchased quantity.
//
// A unit weight of zero means the catalog does not declare a weight for the
// product; such units fit into any package without consuming capacity.
//
// The quantity still awaiting placement is not stored here: it is derived by
// the Order aggregate from the placements across its packages, which keeps
// the remaining-quantity accounting a pure function of the placements.
type LineItem struct {
	productID  string
	unitWeight int
	quantity   int

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item with validation.
//
// Parameters:
//   - productID: opaque product identifier (must be non-empty)
//   - unitWeight: weight of a single unit in grams (must not be negative;
//     zero means unset)
//   - quantity: purchased quantity (must be positive)
func NewLineItem(productID string, unitWeight, quantity int) (*LineItem, error) {
	item := &LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setUnitWeight(unitWeight),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the LineItem was created through its constructor.
func (i *LineItem) Validate() error {
	if i == nil {
		return ErrLineItemIsNotConstructed
	}
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the opaque product identifier.
func (i *LineItem) ProductID() string {
	return i.productID
}

// UnitWeight returns the weight of a single unit in grams (0 = unset).
func (i *LineItem) UnitWeight() int {
	return i.unitWeight
}

// Quantity returns the purchased quantity.
func (i *LineItem) Quantity() int {
	return i.quantity
}

func (i *LineItem) setProductID(productID string) error {
	if productID == "" {
		return ErrProductIDIsRequired
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setUnitWeight(unitWeight int) error {
	if unitWeight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitWeight",
			fmt.Errorf("%d is negative", unitWeight))
	}
	i.unitWeight = unitWeight
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
