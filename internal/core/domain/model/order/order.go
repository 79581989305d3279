package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Package weight ceilings in grams. The ceiling applied to an order is
// selected from the heaviest single line item and the shipping method, see
// Order.WeightCeiling.
const (
	baseWeightCeiling  = 20_000
	maxWeightCeiling   = 40_000
	heavyWeightCeiling = 130_000
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemTooHeavy is the sentinel for a single unit heavier than the
	// order's weight ceiling. Such an item can never be placed; the system
	// does not split one unit across packages.
	ErrItemTooHeavy = errors.New("item weight exceeds the order weight ceiling")

	// ErrPackageCapacityExceeded is the sentinel for placements that would
	// push a package past the order's weight ceiling.
	ErrPackageCapacityExceeded = errors.New("package capacity exceeded")

	// ErrInsufficientRemainingQuantity is the sentinel for placements that
	// request more units than remain undistributed.
	ErrInsufficientRemainingQuantity = errors.New("insufficient remaining quantity")

	// ErrPackageIsEmpty is returned when a shipping label is requested for a
	// package with no placed units.
	ErrPackageIsEmpty = errors.New("cannot place a shipping label on an empty package")
)

// ItemTooHeavyError reports a unit whose own weight exceeds the order's
// weight ceiling. This is fatal to distribution of that item.
type ItemTooHeavyError struct {
	ProductID  string
	UnitWeight int
	Ceiling    int
}

func (e *ItemTooHeavyError) Error() string {
	return fmt.Sprintf("item weight exceeds the order weight ceiling: product %q weighs %dg, ceiling is %dg",
		e.ProductID, e.UnitWeight, e.Ceiling)
}

func (e *ItemTooHeavyError) Unwrap() error {
	return ErrItemTooHeavy
}

// PackageCapacityExceededError reports a rejected placement that would push
// the target package past the order's weight ceiling. The package is left
// unchanged.
type PackageCapacityExceededError struct {
	PackageID       kernel.UUID
	ResultingWeight int
	Ceiling         int
}

func (e *PackageCapacityExceededError) Error() string {
	return fmt.Sprintf("package capacity exceeded: package %s would weigh %dg, ceiling is %dg",
		e.PackageID, e.ResultingWeight, e.Ceiling)
}

func (e *PackageCapacityExceededError) Unwrap() error {
	return ErrPackageCapacityExceeded
}

// InsufficientRemainingQuantityError reports a placement requesting more
// units of a product than remain undistributed.
type InsufficientRemainingQuantityError struct {
	ProductID string
	Requested int
	Remaining int
}

func (e *InsufficientRemainingQuantityError) Error() string {
	return fmt.Sprintf("insufficient remaining quantity: requested %d units of product %q, %d remaining",
		e.Requested, e.ProductID, e.Remaining)
}

func (e *InsufficientRemainingQuantityError) Unwrap() error {
	return ErrInsufficientRemainingQuantity
}

// Order is the aggregate root of the packaging workflow. It owns the
// purchased line items, the packages under composition, the macro fulfillment
// state and the waybill document reference.
//
// Order follows these invariants:
//   - No package ever weighs more than the order's weight ceiling
//   - The undistributed quantity of a product is always its purchased
//     quantity minus the units placed across packages
//   - A labeled package is frozen: its composition cannot change and it
//     cannot be deleted
//   - The fulfillment state is re-evaluated after every placement mutation
//
// All mutations go through validated methods; a rejected mutation leaves the
// aggregate unchanged.
type Order struct {
	id              kernel.UUID
	method          ShippingMethod
	subtotal        float64
	lineItems       []*LineItem
	packages        []*Package
	fulfillment     FulfillmentStatus
	waybillDocument string

	guard guard.ConstructorGuard
}

// NewOrder creates an order with validation. The order starts with no
// packages and the ItemsToBeDistributed fulfillment state.
//
// Parameters:
//   - id: unique order identifier
//   - method: selected shipping method
//   - subtotal: order subtotal in the shop currency (must not be negative)
//   - lineItems: purchased products (at least one, no duplicate product)
func NewOrder(id kernel.UUID, method ShippingMethod, subtotal float64, lineItems []*LineItem) (*Order, error) {
	order := &Order{
		fulfillment: ItemsToBeDistributed,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setMethod(method),
		order.setSubtotal(subtotal),
		order.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its
// packages and fulfillment state. Placements are checked against the line
// items: every placed product must exist and must not be placed beyond its
// purchased quantity.
func RestoreOrder(
	id kernel.UUID,
	method ShippingMethod,
	subtotal float64,
	lineItems []*LineItem,
	packages []*Package,
	fulfillment FulfillmentStatus,
	waybillDocument string,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setMethod(method),
		order.setSubtotal(subtotal),
		order.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	if err := fulfillment.Validate(); err != nil {
		return nil, err
	}
	order.fulfillment = fulfillment
	order.waybillDocument = waybillDocument

	for _, pkg := range packages {
		if err := pkg.Validate(); err != nil {
			return nil, err
		}
	}
	order.packages = packages

	for _, item := range lineItems {
		remaining, err := order.RemainingQuantity(item.ProductID())
		if err != nil {
			return nil, err
		}
		if remaining < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("packages",
				fmt.Errorf("product %q is placed beyond its purchased quantity", item.ProductID()))
		}
	}
	for _, pkg := range packages {
		for productID := range pkg.Items() {
			if order.findLineItem(productID) == nil {
				return nil, errs.NewObjectNotFoundError("productID", productID)
			}
		}
	}

	return order, nil
}

// Validate ensures the Order was created through one of its constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Method returns the selected shipping method.
func (o *Order) Method() ShippingMethod {
	return o.method
}

// Subtotal returns the order subtotal in the shop currency.
func (o *Order) Subtotal() float64 {
	return o.subtotal
}

// Fulfillment returns the current macro fulfillment state.
func (o *Order) Fulfillment() FulfillmentStatus {
	return o.fulfillment
}

// WaybillDocument returns the transport document reference, empty until the
// waybill has been generated.
func (o *Order) WaybillDocument() string {
	return o.waybillDocument
}

// LineItems returns a copy of the purchased line items.
func (o *Order) LineItems() []*LineItem {
	items := make([]*LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Packages returns a copy of the package list. Packages are indexed by their
// position in this list for mutation operations.
func (o *Order) Packages() []*Package {
	packages := make([]*Package, len(o.packages))
	copy(packages, o.packages)
	return packages
}

// WeightCeiling returns the maximum package weight in grams permitted for
// this order.
//
// The ceiling is tiered from the heaviest single line item:
//   - base: 20,000g
//   - a unit in (20,000, 40,000]g raises the ceiling to 40,000g
//   - a unit in (40,000, 130,000]g raises it to 130,000g
//
// The Home+ method always grants the heavy-goods 130,000g ceiling. A unit
// heavier than the resulting ceiling cannot be placed at all.
func (o *Order) WeightCeiling() int {
	ceiling := baseWeightCeiling
	if o.method == MethodHomePlus {
		ceiling = heavyWeightCeiling
	}

	for _, item := range o.lineItems {
		weight := item.UnitWeight()
		switch {
		case weight > maxWeightCeiling && weight <= heavyWeightCeiling:
			ceiling = heavyWeightCeiling
		case weight > baseWeightCeiling && weight <= maxWeightCeiling && ceiling < maxWeightCeiling:
			ceiling = maxWeightCeiling
		}
	}

	return ceiling
}

// RemainingQuantity returns the undistributed quantity of a product: the
// purchased quantity minus the units placed across all packages.
func (o *Order) RemainingQuantity(productID string) (int, error) {
	item := o.findLineItem(productID)
	if item == nil {
		return 0, errs.NewObjectNotFoundError("productID", productID)
	}

	placed := 0
	for _, pkg := range o.packages {
		placed += pkg.QuantityOf(productID)
	}
	return item.Quantity() - placed, nil
}

// HasRemainingItems reports whether any purchased unit is still awaiting
// placement.
func (o *Order) HasRemainingItems() bool {
	for _, item := range o.lineItems {
		remaining, _ := o.RemainingQuantity(item.ProductID())
		if remaining > 0 {
			return true
		}
	}
	return false
}

// HasPlacements reports whether any package contains at least one unit.
// Auto-distribution is only permitted when this is false.
func (o *Order) HasPlacements() bool {
	for _, pkg := range o.packages {
		if !pkg.IsEmpty() {
			return true
		}
	}
	return false
}

// PackageWeight returns the weight in grams of the package at the given
// index, honoring a manual override when one is set.
func (o *Order) PackageWeight(packageIndex int) (int, error) {
	pkg, err := o.packageAt(packageIndex)
	if err != nil {
		return 0, err
	}
	return pkg.Weight(o.unitWeights()), nil
}

// AddPackage opens a new empty package and returns its index. Packages can
// only be opened while the order is still in composition, before shipping
// labels exist.
func (o *Order) AddPackage() (int, error) {
	if o.fulfillment != ItemsToBeDistributed && o.fulfillment != ItemsDistributed {
		return 0, &PreconditionNotMetError{Transition: "add package", Current: o.fulfillment}
	}

	o.packages = append(o.packages, NewPackage())
	return len(o.packages) - 1, nil
}

// AddItemToPackage places quantity units of a product into the package at
// packageIndex.
//
// The placement is rejected, leaving the aggregate unchanged, when:
//   - the package is frozen by its shipping label
//   - a single unit of the product is heavier than the order's weight
//     ceiling (ItemTooHeavyError)
//   - fewer than quantity units remain undistributed
//     (InsufficientRemainingQuantityError)
//   - the resulting package weight would exceed the ceiling
//     (PackageCapacityExceededError)
//
// A successful placement re-evaluates the fulfillment state.
func (o *Order) AddItemToPackage(packageIndex int, productID string, quantity int) error {
	pkg, err := o.packageAt(packageIndex)
	if err != nil {
		return err
	}
	if pkg.IsLabeled() {
		return ErrPackageIsLabeled
	}

	item := o.findLineItem(productID)
	if item == nil {
		return errs.NewObjectNotFoundError("productID", productID)
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	ceiling := o.WeightCeiling()
	if item.UnitWeight() > ceiling {
		return &ItemTooHeavyError{
			ProductID:  productID,
			UnitWeight: item.UnitWeight(),
			Ceiling:    ceiling,
		}
	}

	remaining, err := o.RemainingQuantity(productID)
	if err != nil {
		return err
	}
	if quantity > remaining {
		return &InsufficientRemainingQuantityError{
			ProductID: productID,
			Requested: quantity,
			Remaining: remaining,
		}
	}

	resultingWeight := pkg.Weight(o.unitWeights()) + item.UnitWeight()*quantity
	if resultingWeight > ceiling {
		return &PackageCapacityExceededError{
			PackageID:       pkg.ID(),
			ResultingWeight: resultingWeight,
			Ceiling:         ceiling,
		}
	}

	if err := pkg.addUnits(productID, quantity); err != nil {
		return err
	}
	return o.refreshFulfillment()
}

// RemoveItemFromPackage removes the whole placement of a product from the
// package at packageIndex, returning its units to the undistributed pool.
// Rejected when the package is frozen by its shipping label.
func (o *Order) RemoveItemFromPackage(packageIndex int, productID string) error {
	pkg, err := o.packageAt(packageIndex)
	if err != nil {
		return err
	}

	if err := pkg.removeProduct(productID); err != nil {
		return err
	}
	return o.refreshFulfillment()
}

// DeletePackage removes the package at packageIndex, returning every placed
// unit to the undistributed pool. Labeled packages cannot be deleted.
func (o *Order) DeletePackage(packageIndex int) error {
	pkg, err := o.packageAt(packageIndex)
	if err != nil {
		return err
	}
	if pkg.IsLabeled() {
		return ErrPackageIsLabeled
	}

	o.packages = append(o.packages[:packageIndex], o.packages[packageIndex+1:]...)
	return o.refreshFulfillment()
}

// UpdatePackage sets the manual weight override (0 clears it, restoring the
// derived weight) and the dimensions of an unlabeled package. A positive
// override above the order's weight ceiling is rejected.
func (o *Order) UpdatePackage(packageIndex int, weightOverride int, dimensions *Dimensions) error {
	pkg, err := o.packageAt(packageIndex)
	if err != nil {
		return err
	}
	if pkg.IsLabeled() {
		return ErrPackageIsLabeled
	}

	ceiling := o.WeightCeiling()
	if weightOverride > ceiling {
		return &PackageCapacityExceededError{
			PackageID:       pkg.ID(),
			ResultingWeight: weightOverride,
			Ceiling:         ceiling,
		}
	}

	return errors.Join(
		pkg.setWeightOverride(weightOverride),
		pkg.setDimensions(dimensions),
	)
}

// PlaceShippingLabel assigns a carrier label to the package at packageIndex.
// Labels can only be placed once every item is distributed; a labeled
// package is frozen afterwards. Once every package carries a label the
// fulfillment state advances to ShippingLabelsPlaced.
func (o *Order) PlaceShippingLabel(packageIndex int, labelNumber, labelDocument string) error {
	if o.fulfillment != ItemsDistributed {
		return &PreconditionNotMetError{Transition: "place shipping labels", Current: o.fulfillment}
	}

	pkg, err := o.packageAt(packageIndex)
	if err != nil {
		return err
	}
	if pkg.IsEmpty() {
		return ErrPackageIsEmpty
	}

	if err := pkg.placeLabel(labelNumber, labelDocument); err != nil {
		return err
	}

	for _, p := range o.packages {
		if !p.IsLabeled() {
			return nil
		}
	}

	newStatus, err := o.fulfillment.PlaceLabels()
	if err != nil {
		return err
	}
	o.fulfillment = newStatus
	return nil
}

// ValidateLabelPlacement checks that shipping labels can be placed without
// mutating the aggregate. Used before calling the carrier so a precondition
// failure never reaches the external API.
func (o *Order) ValidateLabelPlacement() error {
	if o.fulfillment != ItemsDistributed {
		return &PreconditionNotMetError{Transition: "place shipping labels", Current: o.fulfillment}
	}
	for _, pkg := range o.packages {
		if !pkg.IsLabeled() && pkg.IsEmpty() {
			return ErrPackageIsEmpty
		}
	}
	return nil
}

// ValidateWaybillGeneration checks that the waybill can be generated without
// mutating the aggregate. Used before calling the carrier so a precondition
// failure never reaches the external API.
func (o *Order) ValidateWaybillGeneration() error {
	if o.fulfillment != ShippingLabelsPlaced {
		return &PreconditionNotMetError{Transition: "generate waybills", Current: o.fulfillment}
	}
	return nil
}

// MarkWaybillGenerated records the transport document and advances the
// fulfillment state to its terminal WayBillsGenerated status.
func (o *Order) MarkWaybillGenerated(waybillDocument string) error {
	if waybillDocument == "" {
		return errs.NewValueIsRequiredError("waybillDocument")
	}

	newStatus, err := o.fulfillment.GenerateWayBills()
	if err != nil {
		return err
	}

	o.fulfillment = newStatus
	o.waybillDocument = waybillDocument
	return nil
}

// UpdatePackageStatus records the normalized tracking status of the labeled
// package identified by packageID.
func (o *Order) UpdatePackageStatus(packageID kernel.UUID, status shipment.Status) error {
	for _, pkg := range o.packages {
		if pkg.ID().IsEqual(packageID) {
			return pkg.setStatus(status)
		}
	}
	return errs.NewObjectNotFoundError("packageID", packageID.String())
}

// refreshFulfillment re-evaluates the distribution state after a placement
// mutation. Fully placed orders move to ItemsDistributed; a mutation that
// leaves undistributed quantity moves the order back to ItemsToBeDistributed.
func (o *Order) refreshFulfillment() error {
	var newStatus FulfillmentStatus
	var err error

	if o.HasRemainingItems() {
		newStatus, err = o.fulfillment.MarkUndistributed()
	} else {
		newStatus, err = o.fulfillment.MarkDistributed()
	}
	if err != nil {
		return err
	}

	o.fulfillment = newStatus
	return nil
}

func (o *Order) packageAt(packageIndex int) (*Package, error) {
	if packageIndex < 0 || packageIndex >= len(o.packages) {
		return nil, errs.NewObjectNotFoundError("packageIndex", packageIndex)
	}
	return o.packages[packageIndex], nil
}

func (o *Order) findLineItem(productID string) *LineItem {
	for _, item := range o.lineItems {
		if item.ProductID() == productID {
			return item
		}
	}
	return nil
}

func (o *Order) unitWeights() map[string]int {
	weights := make(map[string]int, len(o.lineItems))
	for _, item := range o.lineItems {
		weights[item.ProductID()] = item.UnitWeight()
	}
	return weights
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setMethod(method ShippingMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.method = method
	return nil
}

func (o *Order) setSubtotal(subtotal float64) error {
	if subtotal < 0 {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%f is negative", subtotal))
	}
	o.subtotal = subtotal
	return nil
}

func (o *Order) setLineItems(lineItems []*LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	seen := make(map[string]struct{}, len(lineItems))
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.ProductID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("lineItems",
				fmt.Errorf("product %q appears more than once", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}

	o.lineItems = lineItems
	return nil
}
