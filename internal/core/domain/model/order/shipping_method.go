package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// ShippingMethod is the delivery method selected for an order. The method
// influences the package weight ceiling (Home+ always allows the heavy-goods
// tier) and selects the tariff grid used for pricing.
type ShippingMethod int

const (
	// MethodUnknown represents an invalid or undefined shipping method.
	MethodUnknown ShippingMethod = iota

	// MethodRelay delivers to a pickup relay point.
	MethodRelay

	// MethodHome delivers to the recipient's address.
	MethodHome

	// MethodHomePlus delivers heavy goods to the recipient's address with
	// additional handling; it always unlocks the heavy-goods weight tier.
	MethodHomePlus
)

func getShippingMethodStrings() map[ShippingMethod]string {
	return map[ShippingMethod]string{
		MethodUnknown:  "Unknown",
		MethodRelay:    "Relay",
		MethodHome:     "Home",
		MethodHomePlus: "Home+",
	}
}

// ParseShippingMethod converts the persisted/API representation of a method
// ("Relay", "Home" or "Home+") into a ShippingMethod value.
func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch s {
	case "Relay":
		return MethodRelay, nil
	case "Home":
		return MethodHome, nil
	case "Home+":
		return MethodHomePlus, nil
	default:
		return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("shippingMethod",
			fmt.Errorf("%q is not a valid shipping method", s))
	}
}

// Validate checks if the ShippingMethod is one of the supported methods.
func (m ShippingMethod) Validate() error {
	if m != MethodRelay && m != MethodHome && m != MethodHomePlus {
		return errs.NewValueIsInvalidErrorWithCause("shippingMethod",
			fmt.Errorf("%d is not a valid shipping method", m))
	}
	return nil
}

// String returns the human-readable name of the method.
// Implements fmt.Stringer and is safe to call on any ShippingMethod value.
func (m ShippingMethod) String() string {
	if str, ok := getShippingMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
