// Package guard provides the constructor-guard pattern used by domain objects
// across the application. Embedding a ConstructorGuard in a struct makes it
// possible to detect zero-value instances that bypassed the designated
// constructor, which keeps domain invariants enforceable.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when a
// nil error is passed as the validation error. This ensures validation always
// fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. The guard holds an internal flag that
// is only set when the object is created through the proper constructor; any
// zero-value struct fails validation.
//
// Example usage:
//
//	var ErrRuleNotConstructed = errors.New("Rule must be created via NewRule")
//
//	type Rule struct {
//	    methodName string
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewRule(methodName string) (Rule, error) {
//	    if methodName == "" {
//	        return Rule{}, errors.New("method name is required")
//	    }
//	    return Rule{
//	        methodName: methodName,
//	        guard:      guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (r Rule) Validate() error {
//	    return r.guard.Validate(ErrRuleNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call this in the constructor of domain objects so they can be
// distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// designated constructor.
//
// Returns:
//   - nil if the object was properly constructed
//   - validationError if the object was not constructed through its constructor
//   - ErrDefaultConstructorGuard if validationError is nil and the object was
//     not constructed
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
