package tariff

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrRuleIsNotConstructed is returned when a Rule instance was not created
	// through the NewRule or RestoreRule factory functions.
	ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")

	// ErrMethodNameIsRequired is returned when a rule is created without a
	// delivery method name.
	ErrMethodNameIsRequired = errs.NewValueIsRequiredError("methodName")
)

// Rule is one priced interval of a delivery method's tariff grid.
//
// A rule applies to orders whose comparison value (subtotal or weight,
// depending on the criterion) falls into [minValue, maxValue]; a nil maxValue
// means the interval is unbounded above. The optional shipping threshold
// makes shipping free once the comparison value exceeds it.
//
// Invariants:
//   - methodName is non-empty
//   - criterion is price or weight
//   - minValue >= 0, maxValue (when set) >= minValue
//   - price >= 0
//
// Non-overlap between rules of the same (methodName, criterion) is a property
// of the Table, enforced by Table.CheckConflict at insertion time, not by the
// individual rule.
type Rule struct {
	id                kernel.UUID
	methodName        string
	criterion         Criterion
	minValue          float64
	maxValue          *float64
	price             float64
	shippingThreshold *float64

	guard guard.ConstructorGuard
}

// NewRule creates a tariff rule with validation. This is the only way to
// create a valid Rule for insertion into the tariff table.
func NewRule(
	id kernel.UUID,
	methodName string,
	criterion Criterion,
	minValue float64,
	maxValue *float64,
	price float64,
	shippingThreshold *float64,
) (*Rule, error) {
	rule := &Rule{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rule.setID(id),
		rule.setMethodName(methodName),
		rule.setCriterion(criterion),
		rule.setInterval(minValue, maxValue),
		rule.setPrice(price),
	); err != nil {
		return nil, err
	}

	rule.shippingThreshold = shippingThreshold
	return rule, nil
}

// RestoreRule reconstructs a Rule from persistent storage.
// The persisted rule is assumed to have passed conflict validation on insert,
// but field-level invariants are still checked.
func RestoreRule(
	id kernel.UUID,
	methodName string,
	criterion Criterion,
	minValue float64,
	maxValue *float64,
	price float64,
	shippingThreshold *float64,
) (*Rule, error) {
	return NewRule(id, methodName, criterion, minValue, maxValue, price, shippingThreshold)
}

// Validate ensures the Rule was created through one of its constructors.
func (r *Rule) Validate() error {
	if r == nil {
		return ErrRuleIsNotConstructed
	}
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// MethodName returns the delivery method the rule prices.
func (r *Rule) MethodName() string {
	return r.methodName
}

// Criterion returns the comparison criterion of the rule's interval.
func (r *Rule) Criterion() Criterion {
	return r.criterion
}

// MinValue returns the inclusive lower bound of the interval.
func (r *Rule) MinValue() float64 {
	return r.minValue
}

// MaxValue returns the inclusive upper bound of the interval,
// or nil when the interval is unbounded above.
func (r *Rule) MaxValue() *float64 {
	return r.maxValue
}

// Price returns the shipping price of the bracket.
func (r *Rule) Price() float64 {
	return r.price
}

// ShippingThreshold returns the free-shipping threshold of the bracket,
// or nil when the bracket never grants free shipping.
func (r *Rule) ShippingThreshold() *float64 {
	return r.shippingThreshold
}

// Contains reports whether the comparison value falls into the rule's
// interval: minValue <= value and (maxValue is nil or value <= maxValue).
func (r *Rule) Contains(value float64) bool {
	if value < r.minValue {
		return false
	}
	return r.maxValue == nil || value <= *r.maxValue
}

func (r *Rule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rule) setMethodName(methodName string) error {
	if methodName == "" {
		return ErrMethodNameIsRequired
	}
	r.methodName = methodName
	return nil
}

func (r *Rule) setCriterion(criterion Criterion) error {
	if err := criterion.Validate(); err != nil {
		return err
	}
	r.criterion = criterion
	return nil
}

func (r *Rule) setInterval(minValue float64, maxValue *float64) error {
	if minValue < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minValue",
			fmt.Errorf("%v is not greater than or equal to 0", minValue))
	}
	if maxValue != nil && *maxValue < minValue {
		return errs.NewValueIsInvalidErrorWithCause("maxValue",
			fmt.Errorf("%v is lower than the interval minimum %v", *maxValue, minValue))
	}

	r.minValue = minValue
	r.maxValue = maxValue
	return nil
}

func (r *Rule) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%v is not greater than or equal to 0", price))
	}
	r.price = price
	return nil
}
