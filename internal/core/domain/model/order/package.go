package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not
	// created through the NewPackage factory function.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

	// ErrPackageIsLabeled is returned when a mutation targets a package whose
	// composition is frozen by a shipping label.
	ErrPackageIsLabeled = errors.New("package composition is frozen by its shipping label")

	// ErrLabelAlreadyPlaced is returned when a shipping label is assigned to a
	// package that already carries one.
	ErrLabelAlreadyPlaced = errors.New("package already carries a shipping label")
)

// Dimensions holds the optional physical dimensions of a package in
// millimeters. Dimensions are informational; they never participate in
// capacity checks.
type Dimensions struct {
	Height int
	Width  int
	Length int
}

// Validate checks that every dimension is positive.
func (d Dimensions) Validate() error {
	if d.Height <= 0 || d.Width <= 0 || d.Length <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%dx%dx%d contains a non-positive dimension", d.Height, d.Width, d.Length))
	}
	return nil
}

// Package is a physical parcel under composition within an order. It tracks
// the per-product placed quantities, a derived weight in grams (which an
// operator may override), optional dimensions, and once labeled, the shipping
// label and its document.
//
// The zero weight override means "derived": the package weight is the sum of
// unit weights of its placements. A positive override replaces the derived
// value entirely.
//
// Once a shipping label is placed the composition is frozen: no item can be
// added or removed and the package cannot be deleted.
type Package struct {
	id             kernel.UUID
	items          map[string]int
	weightOverride int
	dimensions     *Dimensions
	shippingLabel  string
	labelDocument  string
	status         shipment.Status

	guard guard.ConstructorGuard
}

// NewPackage creates an empty package with a fresh identifier and no label.
// The parcel status starts at Pending until a shipping label is placed.
func NewPackage() *Package {
	return &Package{
		id:     kernel.NewUUID(),
		items:  make(map[string]int),
		status: shipment.Pending,
		guard:  guard.NewConstructorGuard(),
	}
}

// RestorePackage reconstructs a Package from persistent storage.
// It bypasses the empty-start invariant of NewPackage but still validates
// every field.
func RestorePackage(
	id kernel.UUID,
	items map[string]int,
	weightOverride int,
	dimensions *Dimensions,
	shippingLabel string,
	labelDocument string,
	status shipment.Status,
) (*Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if weightOverride < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("weightOverride",
			fmt.Errorf("%d is negative", weightOverride))
	}
	if dimensions != nil {
		if err := dimensions.Validate(); err != nil {
			return nil, err
		}
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	restored := make(map[string]int, len(items))
	for productID, quantity := range items {
		if productID == "" {
			return nil, ErrProductIDIsRequired
		}
		if quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d placed units of %q is not greater than 0", quantity, productID))
		}
		restored[productID] = quantity
	}

	return &Package{
		id:             id,
		items:          restored,
		weightOverride: weightOverride,
		dimensions:     dimensions,
		shippingLabel:  shippingLabel,
		labelDocument:  labelDocument,
		status:         status,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Package was created through its constructor.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// ID returns the package identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// Items returns a copy of the per-product placed quantities.
func (p *Package) Items() map[string]int {
	items := make(map[string]int, len(p.items))
	for productID, quantity := range p.items {
		items[productID] = quantity
	}
	return items
}

// QuantityOf returns the placed quantity of a product (0 when absent).
func (p *Package) QuantityOf(productID string) int {
	return p.items[productID]
}

// Dimensions returns the package dimensions, nil when not set.
func (p *Package) Dimensions() *Dimensions {
	return p.dimensions
}

// ShippingLabel returns the carrier label number, empty until labeled.
func (p *Package) ShippingLabel() string {
	return p.shippingLabel
}

// LabelDocument returns the printable label document reference.
func (p *Package) LabelDocument() string {
	return p.labelDocument
}

// Status returns the normalized tracking status of the parcel. It stays at
// Pending until the shipping label is placed.
func (p *Package) Status() shipment.Status {
	return p.status
}

// IsLabeled reports whether the package carries a shipping label, which
// freezes its composition.
func (p *Package) IsLabeled() bool {
	return p.shippingLabel != ""
}

// IsEmpty reports whether no unit is placed in the package.
func (p *Package) IsEmpty() bool {
	return len(p.items) == 0
}

// WeightOverride returns the manual weight override in grams, 0 when the
// derived weight is in effect.
func (p *Package) WeightOverride() int {
	return p.weightOverride
}

// Weight computes the package weight in grams: the manual override when set,
// otherwise the sum of unit weights of every placement. unitWeights maps a
// product identifier to the unit weight declared by the order's line items.
func (p *Package) Weight(unitWeights map[string]int) int {
	if p.weightOverride > 0 {
		return p.weightOverride
	}
	weight := 0
	for productID, quantity := range p.items {
		weight += unitWeights[productID] * quantity
	}
	return weight
}

// addUnits records quantity additional units of a product. Capacity checks
// are the aggregate's responsibility; the package only guards its freeze
// invariant.
func (p *Package) addUnits(productID string, quantity int) error {
	if p.IsLabeled() {
		return ErrPackageIsLabeled
	}
	if productID == "" {
		return ErrProductIDIsRequired
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	p.items[productID] += quantity
	return nil
}

// removeProduct drops the whole placement of a product from the package.
func (p *Package) removeProduct(productID string) error {
	if p.IsLabeled() {
		return ErrPackageIsLabeled
	}
	if _, ok := p.items[productID]; !ok {
		return errs.NewObjectNotFoundError("productID", productID)
	}
	delete(p.items, productID)
	return nil
}

// setWeightOverride sets or clears (0) the manual weight override.
func (p *Package) setWeightOverride(weightGrams int) error {
	if weightGrams < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%d is negative", weightGrams))
	}
	p.weightOverride = weightGrams
	return nil
}

// setDimensions sets or clears (nil) the package dimensions.
func (p *Package) setDimensions(dimensions *Dimensions) error {
	if dimensions != nil {
		if err := dimensions.Validate(); err != nil {
			return err
		}
	}
	p.dimensions = dimensions
	return nil
}

// placeLabel assigns the carrier label once and freezes the composition.
// The parcel tracking status starts at LabelAnnounced.
func (p *Package) placeLabel(labelNumber, labelDocument string) error {
	if p.IsLabeled() {
		return ErrLabelAlreadyPlaced
	}
	if labelNumber == "" {
		return errs.NewValueIsRequiredError("labelNumber")
	}
	p.shippingLabel = labelNumber
	p.labelDocument = labelDocument
	p.status = shipment.LabelAnnounced
	return nil
}

// setStatus records the normalized tracking status reported by the carrier.
func (p *Package) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
