package tariff_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func mustRule(
	t *testing.T,
	methodName string,
	criterion tariff.Criterion,
	minValue float64,
	maxValue *float64,
	price float64,
	threshold *float64,
) *tariff.Rule {
	t.Helper()
	rule, err := tariff.NewRule(kernel.NewUUID(), methodName, criterion, minValue, maxValue, price, threshold)
	require.NoError(t, err)
	return rule
}

func mustTable(t *testing.T, rules ...*tariff.Rule) *tariff.Table {
	t.Helper()
	table, err := tariff.NewTable(rules)
	require.NoError(t, err)
	return table
}

func TestNewRule(t *testing.T) {
	t.Run("should create rule with valid parameters", func(t *testing.T) {
		rule, err := tariff.NewRule(
			kernel.NewUUID(), "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil)

		require.NoError(t, err)
		assert.Equal(t, "rc", rule.MethodName())
		assert.Equal(t, tariff.CriterionWeight, rule.Criterion())
		assert.InDelta(t, 4.90, rule.Price(), 0.0001)
		require.NoError(t, rule.Validate())
	})

	t.Run("should create open-ended rule", func(t *testing.T) {
		rule, err := tariff.NewRule(
			kernel.NewUUID(), "dom", tariff.CriterionPrice, 50, nil, 0, floatPtr(50))

		require.NoError(t, err)
		assert.Nil(t, rule.MaxValue())
	})

	t.Run("should return error for empty method name", func(t *testing.T) {
		rule, err := tariff.NewRule(
			kernel.NewUUID(), "", tariff.CriterionWeight, 0, nil, 4.90, nil)

		require.Error(t, err)
		assert.Nil(t, rule)
		assert.Contains(t, err.Error(), "methodName")
	})

	t.Run("should return error for invalid criterion", func(t *testing.T) {
		rule, err := tariff.NewRule(
			kernel.NewUUID(), "rc", tariff.CriterionUnknown, 0, nil, 4.90, nil)

		require.Error(t, err)
		assert.Nil(t, rule)
	})

	t.Run("should return error for inverted interval", func(t *testing.T) {
		rule, err := tariff.NewRule(
			kernel.NewUUID(), "rc", tariff.CriterionWeight, 5000, floatPtr(1000), 4.90, nil)

		require.Error(t, err)
		assert.Nil(t, rule)
		assert.Contains(t, err.Error(), "maxValue")
	})

	t.Run("should return error for negative price", func(t *testing.T) {
		rule, err := tariff.NewRule(
			kernel.NewUUID(), "rc", tariff.CriterionWeight, 0, nil, -1, nil)

		require.Error(t, err)
		assert.Nil(t, rule)
	})
}

func TestRule_Contains(t *testing.T) {
	bounded := mustRule(t, "rc", tariff.CriterionWeight, 1000, floatPtr(5000), 4.90, nil)
	open := mustRule(t, "rc", tariff.CriterionWeight, 5000, nil, 7.90, nil)

	assert.False(t, bounded.Contains(999))
	assert.True(t, bounded.Contains(1000))
	assert.True(t, bounded.Contains(3000))
	assert.True(t, bounded.Contains(5000))
	assert.False(t, bounded.Contains(5001))

	assert.True(t, open.Contains(5000))
	assert.True(t, open.Contains(1_000_000))
	assert.False(t, open.Contains(4999))
}

func TestTable_CheckConflict(t *testing.T) {
	t.Run("empty table accepts any interval", func(t *testing.T) {
		table := mustTable(t)

		require.NoError(t, table.CheckConflict("rc", tariff.CriterionWeight, 0))
	})

	t.Run("rejects overlapping interval", func(t *testing.T) {
		// Reference scenario: [0, 5000] exists, inserting [4000, 9000]
		// must be rejected (overlap in [4000, 5000]).
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil))

		err := table.CheckConflict("rc", tariff.CriterionWeight, 4000)

		require.Error(t, err)
		require.ErrorIs(t, err, tariff.ErrTariffConflict)

		var conflictErr *tariff.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, "rc", conflictErr.MethodName)
		assert.Equal(t, tariff.CriterionWeight, conflictErr.Criterion)
	})

	t.Run("accepts adjacent interval above", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil))

		require.NoError(t, table.CheckConflict("rc", tariff.CriterionWeight, 5000))
		require.NoError(t, table.CheckConflict("rc", tariff.CriterionWeight, 9000))
	})

	t.Run("rejects any interval when an open-ended rule exists", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 10000, nil, 9.90, nil))

		err := table.CheckConflict("rc", tariff.CriterionWeight, 50000)
		require.ErrorIs(t, err, tariff.ErrTariffConflict)
	})

	t.Run("conservative check rejects disjoint interval below an existing rule", func(t *testing.T) {
		// [200, 300] exists; inserting an interval starting at 0 is rejected
		// because 300 > 0, even though [0, 100] would not actually overlap.
		// This coarse behavior is preserved deliberately.
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 200, floatPtr(300), 4.90, nil))

		err := table.CheckConflict("rc", tariff.CriterionWeight, 0)
		require.ErrorIs(t, err, tariff.ErrTariffConflict)
	})

	t.Run("rejects criterion mismatch for the same method", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil))

		err := table.CheckConflict("rc", tariff.CriterionPrice, 10000)

		require.ErrorIs(t, err, tariff.ErrTariffConflict)
		var conflictErr *tariff.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Contains(t, conflictErr.Reason, "weight")
	})

	t.Run("other methods do not participate in the check", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "dom", tariff.CriterionPrice, 0, nil, 6.90, nil))

		require.NoError(t, table.CheckConflict("rc", tariff.CriterionWeight, 0))
	})
}

func TestTable_ResolvePrice(t *testing.T) {
	table := mustTable(t,
		mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil),
		mustRule(t, "rc", tariff.CriterionWeight, 5001, floatPtr(9000), 5.90, nil),
	)

	t.Run("resolves the bracket containing the value", func(t *testing.T) {
		price, ok := table.ResolvePrice("rc", tariff.CriterionWeight, 3000)

		require.True(t, ok)
		assert.InDelta(t, 4.90, price, 0.0001)
	})

	t.Run("resolves the second bracket", func(t *testing.T) {
		price, ok := table.ResolvePrice("rc", tariff.CriterionWeight, 7000)

		require.True(t, ok)
		assert.InDelta(t, 5.90, price, 0.0001)
	})

	t.Run("reports not found outside every bracket", func(t *testing.T) {
		_, ok := table.ResolvePrice("rc", tariff.CriterionWeight, 10000)
		assert.False(t, ok)
	})

	t.Run("reports not found for the other criterion", func(t *testing.T) {
		_, ok := table.ResolvePrice("rc", tariff.CriterionPrice, 3000)
		assert.False(t, ok)
	})
}

func TestTable_ResolveShippingCost(t *testing.T) {
	t.Run("weight fallback applies when no price grid exists", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil))

		cost, err := table.ResolveShippingCost("rc", 39.0, 3000)

		require.NoError(t, err)
		assert.InDelta(t, 4.90, cost, 0.0001)
	})

	t.Run("price grid wins when both could match", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "dom", tariff.CriterionPrice, 0, floatPtr(100), 6.90, nil),
			mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil),
		)

		cost, err := table.ResolveShippingCost("dom", 50, 3000)

		require.NoError(t, err)
		assert.InDelta(t, 6.90, cost, 0.0001)
	})

	t.Run("threshold zeroes the cost once exceeded", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "dom", tariff.CriterionPrice, 0, nil, 6.90, floatPtr(50)))

		cost, err := table.ResolveShippingCost("dom", 80, 3000)
		require.NoError(t, err)
		assert.Zero(t, cost)

		cost, err = table.ResolveShippingCost("dom", 30, 3000)
		require.NoError(t, err)
		assert.InDelta(t, 6.90, cost, 0.0001)
	})

	t.Run("value equal to the threshold still pays the bracket price", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "dom", tariff.CriterionPrice, 0, nil, 6.90, floatPtr(50)))

		cost, err := table.ResolveShippingCost("dom", 50, 0)

		require.NoError(t, err)
		assert.InDelta(t, 6.90, cost, 0.0001)
	})

	t.Run("no matching bracket means the method is not offered", func(t *testing.T) {
		table := mustTable(t,
			mustRule(t, "rc", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil))

		_, err := table.ResolveShippingCost("rc", 39.0, 10000)

		require.ErrorIs(t, err, tariff.ErrNoApplicableRate)

		var noRateErr *tariff.NoApplicableRateError
		require.ErrorAs(t, err, &noRateErr)
		assert.Equal(t, "rc", noRateErr.MethodName)
	})

	t.Run("unknown method is not offered", func(t *testing.T) {
		table := mustTable(t)

		_, err := table.ResolveShippingCost("unknown", 10, 10)
		require.ErrorIs(t, err, tariff.ErrNoApplicableRate)
	})
}

func TestParseCriterion(t *testing.T) {
	criterion, err := tariff.ParseCriterion("price")
	require.NoError(t, err)
	assert.Equal(t, tariff.CriterionPrice, criterion)

	criterion, err = tariff.ParseCriterion("weight")
	require.NoError(t, err)
	assert.Equal(t, tariff.CriterionWeight, criterion)

	_, err = tariff.ParseCriterion("volume")
	require.Error(t, err)
}
