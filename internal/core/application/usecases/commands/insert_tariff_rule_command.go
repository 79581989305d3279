package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrInsertTariffRuleCommandIsNotConstructed = errors.New(
	"InsertTariffRuleCommand must be created via NewInsertTariffRuleCommand constructor",
)

// InsertTariffRuleCommand requests insertion of one priced interval into a
// delivery method's tariff grid. The insert is rejected when it conflicts
// with the method's existing rules.
type InsertTariffRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID            kernel.UUID
	methodName        string
	criterion         string
	minValue          float64
	maxValue          *float64
	price             float64
	shippingThreshold *float64

	guard guard.ConstructorGuard
}

// NewInsertTariffRuleCommand creates a command to insert a tariff rule.
// Interval and price validation happens in the domain; the command validates
// shape only.
func NewInsertTariffRuleCommand(
	ruleID kernel.UUID,
	methodName string,
	criterion string,
	minValue float64,
	maxValue *float64,
	price float64,
	shippingThreshold *float64,
) (InsertTariffRuleCommand, error) {
	command := InsertTariffRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRuleID(ruleID),
		command.setMethodName(methodName),
		command.setCriterion(criterion),
	); err != nil {
		return InsertTariffRuleCommand{}, err
	}

	command.minValue = minValue
	command.maxValue = maxValue
	command.price = price
	command.shippingThreshold = shippingThreshold

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c InsertTariffRuleCommand) Validate() error {
	return c.guard.Validate(ErrInsertTariffRuleCommandIsNotConstructed)
}

// RuleID returns the identifier the new rule will carry.
func (c InsertTariffRuleCommand) RuleID() kernel.UUID {
	return c.ruleID
}

// MethodName returns the delivery method the rule belongs to.
func (c InsertTariffRuleCommand) MethodName() string {
	return c.methodName
}

// Criterion returns the comparison criterion name ("price" or "weight").
func (c InsertTariffRuleCommand) Criterion() string {
	return c.criterion
}

// MinValue returns the inclusive interval start.
func (c InsertTariffRuleCommand) MinValue() float64 {
	return c.minValue
}

// MaxValue returns the inclusive interval end, nil for open-ended.
func (c InsertTariffRuleCommand) MaxValue() *float64 {
	return c.maxValue
}

// Price returns the shipping price of the bracket.
func (c InsertTariffRuleCommand) Price() float64 {
	return c.price
}

// ShippingThreshold returns the optional free-shipping threshold.
func (c InsertTariffRuleCommand) ShippingThreshold() *float64 {
	return c.shippingThreshold
}

func (c *InsertTariffRuleCommand) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return err
	}
	c.ruleID = ruleID
	return nil
}

func (c *InsertTariffRuleCommand) setMethodName(methodName string) error {
	if methodName == "" {
		return errs.NewValueIsRequiredError("methodName")
	}
	c.methodName = methodName
	return nil
}

func (c *InsertTariffRuleCommand) setCriterion(criterion string) error {
	if _, err := tariff.ParseCriterion(criterion); err != nil {
		return err
	}
	c.criterion = criterion
	return nil
}
