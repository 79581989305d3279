package ports

import (
	"context"

	"shipping/internal/core/domain/model/tariff"
)

// TariffRepository defines the persistence contract for tariff rules.
// Rules are immutable once inserted; the overlap check happens in the domain
// against the full rule set of the targeted method.
type TariffRepository interface {
	// Add persists a new tariff rule. The rule must be valid and must have
	// passed the table conflict check within the same transaction.
	Add(ctx context.Context, rule *tariff.Rule) error

	// GetByMethod retrieves every rule of one delivery method, ordered by
	// ascending interval start.
	GetByMethod(ctx context.Context, methodName string) ([]*tariff.Rule, error)

	// GetAll retrieves the complete tariff grid across all methods, ordered
	// by method name then ascending interval start.
	GetAll(ctx context.Context) ([]*tariff.Rule, error)
}
