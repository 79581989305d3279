// Package order contains the Order aggregate of the shipment packaging
// workflow: purchased line items, the packages they are distributed into and
// the macro fulfillment state machine.
//
// The package includes:
//   - Order: the aggregate root enforcing placement and capacity invariants
//   - LineItem: a purchased product with unit weight and quantity
//   - Package: a parcel under composition, frozen once labeled
//   - FulfillmentStatus: the four-stage fulfillment state machine
//   - ShippingMethod: the delivery method selected for the order
//
// Key business rules:
//   - No package ever weighs more than the order's weight ceiling, which is
//     tiered from the heaviest single line item and the shipping method
//   - A single unit is never split across packages; a unit heavier than the
//     ceiling is fatal to distribution
//   - Remaining quantity is derived from placements, never stored
//   - Placing a shipping label freezes the package composition
//
// Domain entities use private fields with validation in constructors to
// maintain invariants. Use the New* factory functions to create instances
// and Restore* functions when loading from persistence.
package order
