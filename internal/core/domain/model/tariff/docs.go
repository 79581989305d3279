// Package tariff provides the tiered shipping-price model of the shipping
// integration. A delivery method's tariff grid is a set of priced intervals
// over either the order subtotal or the order weight, with overlap-free
// insertion validation and an optional free-shipping threshold per bracket.
//
// The package includes:
//   - Rule: one priced interval of a method's grid
//   - Criterion: the comparison criterion of a grid (price or weight)
//   - Table: the full ordered rule set with conflict checking and resolution
//
// Key business rules:
//   - A method is exclusively price-tiered or weight-tiered, never both
//   - Intervals of the same (method, criterion) must not overlap; the
//     insertion-time conflict check is deliberately conservative and is
//     preserved as-is for compatibility
//   - Resolution tries price-based lookup first, then weight-based; a miss
//     on both means the method is not offered for the order
package tariff
