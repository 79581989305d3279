// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrResolveShippingCostQueryIsNotConstructed = errors.New(
	"ResolveShippingCostQuery must be created via NewResolveShippingCostQuery constructor",
)

// ResolveShippingCostQuery computes the shipping cost a delivery method
// charges for an order of the given subtotal and weight.
//
// Example:
//
//	query, _ := NewResolveShippingCostQuery("rc", 39.90, 3200)
//	handler := NewResolveShippingCostQueryHandler(db)
//
//	response, err := handler.Handle(ctx, query)
//	if errors.Is(err, tariff.ErrNoApplicableRate) {
//	    // method not offered for this order
//	}
type ResolveShippingCostQuery struct { //nolint:recvcheck //using for validation
	methodName  string
	subtotal    float64
	weightGrams int

	guard guard.ConstructorGuard
}

// NewResolveShippingCostQuery creates a query to price one method against an
// order's subtotal and total weight in grams.
func NewResolveShippingCostQuery(methodName string, subtotal float64, weightGrams int) (ResolveShippingCostQuery, error) {
	query := ResolveShippingCostQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setMethodName(methodName),
		query.setSubtotal(subtotal),
		query.setWeightGrams(weightGrams),
	); err != nil {
		return ResolveShippingCostQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveShippingCostQuery) Validate() error {
	return q.guard.Validate(ErrResolveShippingCostQueryIsNotConstructed)
}

// MethodName returns the delivery method to price.
func (q ResolveShippingCostQuery) MethodName() string {
	return q.methodName
}

// Subtotal returns the order subtotal in the shop currency.
func (q ResolveShippingCostQuery) Subtotal() float64 {
	return q.subtotal
}

// WeightGrams returns the order's total weight in grams.
func (q ResolveShippingCostQuery) WeightGrams() int {
	return q.weightGrams
}

func (q *ResolveShippingCostQuery) setMethodName(methodName string) error {
	if methodName == "" {
		return errs.NewValueIsRequiredError("methodName")
	}
	q.methodName = methodName
	return nil
}

func (q *ResolveShippingCostQuery) setSubtotal(subtotal float64) error {
	if subtotal < 0 {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%f is negative", subtotal))
	}
	q.subtotal = subtotal
	return nil
}

func (q *ResolveShippingCostQuery) setWeightGrams(weightGrams int) error {
	if weightGrams < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%d is negative", weightGrams))
	}
	q.weightGrams = weightGrams
	return nil
}

// ResolveShippingCostQueryResponse is the priced result of the resolution.
// A zero cost with Free set means the free-shipping threshold was crossed.
type ResolveShippingCostQueryResponse struct {
	MethodName string
	Cost       float64
	Free       bool
}
