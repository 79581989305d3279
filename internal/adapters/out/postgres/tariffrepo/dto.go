// Package tariffrepo provides data transfer objects and mapping functions for
// tariff rule persistence.
package tariffrepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"

	"github.com/google/uuid"
)

// TariffRuleDTO represents the database structure for persisting tariff rules.
// MaxValue and ShippingThreshold are nullable: a NULL MaxValue means the
// bracket is open-ended, a NULL ShippingThreshold means the rule never grants
// free shipping.
type TariffRuleDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	MethodName        string    `gorm:"index"`
	Criterion         int
	MinValue          float64
	MaxValue          *float64
	Price             float64
	ShippingThreshold *float64
}

// TableName specifies the database table name for tariff rules.
func (TariffRuleDTO) TableName() string {
	return "tariff_rules"
}

// fromDomain converts a tariff rule to its database representation.
func fromDomain(rule *tariff.Rule) TariffRuleDTO {
	return TariffRuleDTO{
		ID:                rule.ID().Bytes(),
		MethodName:        rule.MethodName(),
		Criterion:         int(rule.Criterion()),
		MinValue:          rule.MinValue(),
		MaxValue:          rule.MaxValue(),
		Price:             rule.Price(),
		ShippingThreshold: rule.ShippingThreshold(),
	}
}

// toDomain converts a database DTO to a tariff rule.
func toDomain(dto TariffRuleDTO) (*tariff.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return tariff.RestoreRule(
		id,
		dto.MethodName,
		tariff.Criterion(dto.Criterion),
		dto.MinValue,
		dto.MaxValue,
		dto.Price,
		dto.ShippingThreshold,
	)
}
