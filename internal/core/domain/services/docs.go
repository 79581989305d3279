// Package services provides domain services that orchestrate business
// operations across multiple domain entities of the shipping workflow. It
// implements workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PackageDistributor: a domain service that bins an order's line items
//     into packages under the order's weight ceiling
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
