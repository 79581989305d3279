package services

import (
	"errors"

	"shipping/internal/core/domain/model/order"
)

// ErrOrderAlreadyDistributed is returned when auto-distribution is requested
// for an order that already has placed items. Auto-distribution is
// all-or-nothing; it only runs on an entirely undistributed order.
var ErrOrderAlreadyDistributed = errors.New("order already has placed items")

// PackageDistributor is a domain service that partitions an order's line
// items into packages using greedy first-fit: units are placed one at a time
// into the first open package with room under the order's weight ceiling,
// opening a new package when none fits.
//
// Business rules:
//   - Runs only on an order with no placed items (all-or-nothing)
//   - A unit heavier than the order's ceiling is fatal before any mutation,
//     so a failed distribution leaves the order unchanged
//   - First-fit minimizes package count best-effort, not optimally
type PackageDistributor struct{}

// NewPackageDistributor creates a new PackageDistributor instance.
func NewPackageDistributor() PackageDistributor {
	return PackageDistributor{}
}

// Distribute places every remaining unit of the order into packages.
//
// Returns ErrOrderAlreadyDistributed when any package already contains items,
// and ItemTooHeavyError when a single unit cannot fit under the order's
// weight ceiling. Both checks run before any mutation, so the order is left
// unchanged on failure. On success every line item is fully placed and the
// order's fulfillment state is ItemsDistributed.
func (d PackageDistributor) Distribute(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.HasPlacements() {
		return ErrOrderAlreadyDistributed
	}

	ceiling := o.WeightCeiling()
	for _, item := range o.LineItems() {
		if item.UnitWeight() > ceiling {
			return &order.ItemTooHeavyError{
				ProductID:  item.ProductID(),
				UnitWeight: item.UnitWeight(),
				Ceiling:    ceiling,
			}
		}
	}

	for _, item := range o.LineItems() {
		remaining, err := o.RemainingQuantity(item.ProductID())
		if err != nil {
			return err
		}

		for unit := 0; unit < remaining; unit++ {
			index, err := d.findOpenPackage(o, item.UnitWeight(), ceiling)
			if err != nil {
				return err
			}
			if err := o.AddItemToPackage(index, item.ProductID(), 1); err != nil {
				return err
			}
		}
	}

	return nil
}

// findOpenPackage returns the index of the first package with room for one
// more unit of the given weight, opening a new package when none fits.
func (d PackageDistributor) findOpenPackage(o *order.Order, unitWeight, ceiling int) (int, error) {
	for index := range o.Packages() {
		weight, err := o.PackageWeight(index)
		if err != nil {
			return 0, err
		}
		if weight+unitWeight <= ceiling {
			return index, nil
		}
	}
	return o.AddPackage()
}
