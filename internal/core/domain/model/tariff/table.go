package tariff

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrTariffConflict is the sentinel for rule insertions rejected by the
	// conflict check: either the interval collides with an existing rule or
	// the method already uses the other criterion.
	ErrTariffConflict = errors.New("tariff rule conflict")

	// ErrNoApplicableRate signals that no tariff bracket matches the order.
	// It is not a failure: it means the delivery method is not offered for
	// this order.
	ErrNoApplicableRate = errors.New("no applicable rate")
)

// ConflictError reports why a rule insertion was rejected. MethodName and
// Criterion identify the colliding grid; Reason is a human-readable
// explanation naming the existing rule's interval or criterion.
type ConflictError struct {
	MethodName string
	Criterion  Criterion
	Reason     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tariff rule conflict for method %q (%s): %s",
		e.MethodName, e.Criterion, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrTariffConflict
}

// NoApplicableRateError reports that a method has no bracket matching the
// order, carrying the method name for a precise user-facing message.
type NoApplicableRateError struct {
	MethodName string
}

func (e *NoApplicableRateError) Error() string {
	return fmt.Sprintf("no applicable rate for method %q", e.MethodName)
}

func (e *NoApplicableRateError) Unwrap() error {
	return ErrNoApplicableRate
}

// Table is the ordered set of tariff rules for all delivery methods.
// Rules are kept sorted by ascending interval minimum, which drives both
// resolution order ("first match by ascending min") and the stability of the
// conflict check.
//
// Table is a pure in-memory structure: it is built from the rules the
// repository returns and performs no I/O itself.
type Table struct {
	rules []*Rule
}

// NewTable builds a tariff table from a set of rules.
// Every rule must be valid; rules are sorted by ascending minimum value.
func NewTable(rules []*Rule) (*Table, error) {
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	sorted := make([]*Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].minValue < sorted[j].minValue
	})

	return &Table{rules: sorted}, nil
}

// Rules returns the table's rules ordered by ascending interval minimum.
// The returned slice is a copy to prevent external modification.
func (t *Table) Rules() []*Rule {
	out := make([]*Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// CheckConflict validates that a new rule with the given method, criterion
// and interval can be inserted without colliding with an existing rule.
//
// Two checks are applied:
//
//  1. Criterion exclusivity: any existing rule for the method using a
//     different criterion is a conflict. A method is exclusively price-tiered
//     or weight-tiered.
//
//  2. Interval collision: any existing rule for the same (method, criterion)
//     whose upper bound is unbounded, or whose upper bound exceeds the new
//     interval's lower bound, is a conflict.
//
// The interval check is deliberately conservative and must stay that way for
// compatibility with the established tariff grids: it can reject technically
// disjoint configurations (for example inserting [0,100] below an existing
// [200,300], since 300 > 0). Callers relying on the accepted/rejected rule
// set must not tighten it.
//
// The new interval's own upper bound does not participate in the check; only
// newMin is compared, which is exactly the reference behavior.
func (t *Table) CheckConflict(methodName string, criterion Criterion, newMin float64) error {
	for _, rule := range t.rules {
		if rule.methodName != methodName {
			continue
		}

		if rule.criterion != criterion {
			return &ConflictError{
				MethodName: methodName,
				Criterion:  criterion,
				Reason: fmt.Sprintf("method is already tiered by %s; a method uses exactly one criterion",
					rule.criterion),
			}
		}

		if rule.maxValue == nil {
			return &ConflictError{
				MethodName: methodName,
				Criterion:  criterion,
				Reason: fmt.Sprintf("existing rule [%v, +inf) is open-ended and covers the new interval start %v",
					rule.minValue, newMin),
			}
		}

		if *rule.maxValue > newMin {
			return &ConflictError{
				MethodName: methodName,
				Criterion:  criterion,
				Reason: fmt.Sprintf("existing rule [%v, %v] overlaps the new interval start %v",
					rule.minValue, *rule.maxValue, newMin),
			}
		}
	}

	return nil
}

// ResolvePrice returns the price of the first rule (by ascending minimum) for
// (methodName, criterion) whose interval contains value. The boolean result
// reports whether a bracket matched; a miss is not an error, the caller falls
// back to the other criterion.
func (t *Table) ResolvePrice(methodName string, criterion Criterion, value float64) (float64, bool) {
	rule := t.findMatch(methodName, criterion, value)
	if rule == nil {
		return 0, false
	}
	return rule.price, true
}

// ResolveThreshold mirrors ResolvePrice but returns the free-shipping
// threshold of the first matching bracket. The boolean result reports whether
// a bracket with a configured threshold matched.
func (t *Table) ResolveThreshold(methodName string, criterion Criterion, value float64) (float64, bool) {
	rule := t.findMatch(methodName, criterion, value)
	if rule == nil || rule.shippingThreshold == nil {
		return 0, false
	}
	return *rule.shippingThreshold, true
}

// ResolveShippingCost resolves the shipping cost of an order for a delivery
// method, given the order subtotal and total weight in grams.
//
// Price-based lookup is tried first with the subtotal, then weight-based
// lookup with the weight. When a bracket matches and carries a free-shipping
// threshold, the cost is zero once the bracket's own comparison value exceeds
// the threshold. When no bracket matches either criterion the method is not
// offered for this order and a NoApplicableRateError is returned.
func (t *Table) ResolveShippingCost(methodName string, subtotal, weightGrams float64) (float64, error) {
	lookups := []struct {
		criterion Criterion
		value     float64
	}{
		{CriterionPrice, subtotal},
		{CriterionWeight, weightGrams},
	}

	for _, lookup := range lookups {
		price, ok := t.ResolvePrice(methodName, lookup.criterion, lookup.value)
		if !ok {
			continue
		}

		if threshold, hasThreshold := t.ResolveThreshold(methodName, lookup.criterion, lookup.value); hasThreshold {
			if lookup.value > threshold {
				return 0, nil
			}
		}

		return price, nil
	}

	return 0, &NoApplicableRateError{MethodName: methodName}
}

func (t *Table) findMatch(methodName string, criterion Criterion, value float64) *Rule {
	for _, rule := range t.rules {
		if rule.methodName != methodName || rule.criterion != criterion {
			continue
		}
		if rule.Contains(value) {
			return rule
		}
	}
	return nil
}
