package tariff

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Criterion selects which order value a tariff bracket is matched against:
// the order subtotal (price) or the order weight. A delivery method is
// exclusively price-tiered or weight-tiered, never both.
type Criterion int

const (
	// CriterionUnknown represents an invalid or undefined criterion.
	CriterionUnknown Criterion = iota

	// CriterionPrice matches tariff brackets against the order subtotal.
	CriterionPrice

	// CriterionWeight matches tariff brackets against the order weight in grams.
	CriterionWeight
)

func getCriterionStrings() map[Criterion]string {
	return map[Criterion]string{
		CriterionUnknown: "Unknown",
		CriterionPrice:   "price",
		CriterionWeight:  "weight",
	}
}

// ParseCriterion converts the persisted/API representation of a criterion
// ("price" or "weight") into a Criterion value.
func ParseCriterion(s string) (Criterion, error) {
	switch s {
	case "price":
		return CriterionPrice, nil
	case "weight":
		return CriterionWeight, nil
	default:
		return CriterionUnknown, errs.NewValueIsInvalidErrorWithCause("criterion",
			fmt.Errorf("%q is not a valid criterion", s))
	}
}

// Validate checks if the Criterion is one of the supported values.
func (c Criterion) Validate() error {
	if c != CriterionPrice && c != CriterionWeight {
		return errs.NewValueIsInvalidErrorWithCause("criterion",
			fmt.Errorf("%d is not a valid criterion", c))
	}
	return nil
}

// String returns the persisted/API representation of the criterion.
// Implements fmt.Stringer and is safe to call on any Criterion value.
func (c Criterion) String() string {
	if str, ok := getCriterionStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
