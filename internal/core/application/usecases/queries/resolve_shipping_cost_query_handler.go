package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveShippingCostQueryHandler prices a delivery method for one order.
// Loads the method's tariff grid with a direct SQL query and delegates the
// bracket and threshold resolution to the domain table.
type ResolveShippingCostQueryHandler struct {
	db *gorm.DB
}

// NewResolveShippingCostQueryHandler creates a handler for cost resolution.
// Requires a GORM database connection for query execution.
func NewResolveShippingCostQueryHandler(db *gorm.DB) ResolveShippingCostQueryHandler {
	return ResolveShippingCostQueryHandler{db: db}
}

// Handle resolves the shipping cost of the queried method.
// Price-based brackets are tried before weight-based ones; a miss on both
// returns tariff.ErrNoApplicableRate, meaning the method is not offered.
func (h ResolveShippingCostQueryHandler) Handle(
	ctx context.Context,
	query ResolveShippingCostQuery,
) (ResolveShippingCostQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveShippingCostQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			method_name,
			criterion,
			min_value,
			max_value,
			price,
			shipping_threshold
		FROM tariff_rules
		WHERE method_name = ?
		ORDER BY min_value
	`, query.MethodName()).Rows()
	if err != nil {
		return ResolveShippingCostQueryResponse{}, err
	}
	defer rows.Close()

	rules := make([]*tariff.Rule, 0)
	for rows.Next() {
		var (
			id                uuid.UUID
			methodName        string
			criterion         int
			minValue, price   float64
			maxValue          *float64
			shippingThreshold *float64
		)

		if err = rows.Scan(&id, &methodName, &criterion, &minValue, &maxValue, &price, &shippingThreshold); err != nil {
			return ResolveShippingCostQueryResponse{}, err
		}

		ruleID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ResolveShippingCostQueryResponse{}, idErr
		}

		rule, ruleErr := tariff.RestoreRule(
			ruleID, methodName, tariff.Criterion(criterion), minValue, maxValue, price, shippingThreshold)
		if ruleErr != nil {
			return ResolveShippingCostQueryResponse{}, ruleErr
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return ResolveShippingCostQueryResponse{}, err
	}

	table, err := tariff.NewTable(rules)
	if err != nil {
		return ResolveShippingCostQueryResponse{}, err
	}

	cost, err := table.ResolveShippingCost(query.MethodName(), query.Subtotal(), float64(query.WeightGrams()))
	if err != nil {
		return ResolveShippingCostQueryResponse{}, err
	}

	return ResolveShippingCostQueryResponse{
		MethodName: query.MethodName(),
		Cost:       cost,
		Free:       cost == 0,
	}, nil
}
