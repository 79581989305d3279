package commands

import (
	"context"

	"shipping/internal/core/domain/model/tariff"
)

// InsertTariffRuleCommandHandler inserts a priced interval into a method's
// tariff grid. The conflict check runs against the method's full rule set
// inside the same transaction as the insert, so concurrent inserts cannot
// produce an overlapping grid.
//
// Example:
//
//	handler := NewInsertTariffRuleCommandHandler(uowFactory)
//	cmd, _ := NewInsertTariffRuleCommand(ruleID, "rc", "weight", 0, &max, 4.90, nil)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, tariff.ErrTariffConflict) {
//	    // overlapping interval or criterion mismatch, grid unchanged
//	}
type InsertTariffRuleCommandHandler struct {
	uowFactory TariffUoWFactory
}

// NewInsertTariffRuleCommandHandler creates a handler for tariff inserts.
func NewInsertTariffRuleCommandHandler(uowFactory TariffUoWFactory) InsertTariffRuleCommandHandler {
	return InsertTariffRuleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the rule, checks it against the method's existing grid and
// persists it when no conflict is found.
func (h InsertTariffRuleCommandHandler) Handle(ctx context.Context, cmd InsertTariffRuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	criterion, err := tariff.ParseCriterion(cmd.Criterion())
	if err != nil {
		return err
	}

	rule, err := tariff.NewRule(
		cmd.RuleID(),
		cmd.MethodName(),
		criterion,
		cmd.MinValue(),
		cmd.MaxValue(),
		cmd.Price(),
		cmd.ShippingThreshold(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tariffRepo := uow.TariffRepository()
	existing, err := tariffRepo.GetByMethod(ctx, cmd.MethodName())
	if err != nil {
		return err
	}

	table, err := tariff.NewTable(existing)
	if err != nil {
		return err
	}

	if err = table.CheckConflict(cmd.MethodName(), criterion, cmd.MinValue()); err != nil {
		return err
	}

	if err = tariffRepo.Add(ctx, rule); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
