package tariffrepo

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"

	"gorm.io/gorm"
)

// GormTariffRepository implements TariffRepository using GORM.
type GormTariffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTariffRepository creates a new GORM tariff repository.
func NewGormTariffRepository(db *gorm.DB, tracker aggregateTracker) *GormTariffRepository {
	return &GormTariffRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tariff rule to the database.
func (r *GormTariffRepository) Add(ctx context.Context, rule *tariff.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rule)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(rule.ID(), rule)
	return nil
}

// GetByMethod retrieves every rule of one delivery method, ordered by
// ascending interval start.
func (r *GormTariffRepository) GetByMethod(ctx context.Context, methodName string) ([]*tariff.Rule, error) {
	var dtos []TariffRuleDTO
	if err := r.db.WithContext(ctx).
		Where("method_name = ?", methodName).
		Order("min_value").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAll retrieves the complete tariff grid, ordered by method name then
// ascending interval start.
func (r *GormTariffRepository) GetAll(ctx context.Context) ([]*tariff.Rule, error) {
	var dtos []TariffRuleDTO
	if err := r.db.WithContext(ctx).
		Order("method_name, min_value").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []TariffRuleDTO) ([]*tariff.Rule, error) {
	rules := make([]*tariff.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
