package tariffrepo_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/tariffrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// TariffRepositoryIntegrationTestSuite provides integration tests for TariffRepository
// using PostgreSQL containers to verify database persistence behavior.
type TariffRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *tariffrepo.GormTariffRepository
	tracker    *MockAggregateTracker
}

func (suite *TariffRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&tariffrepo.TariffRuleDTO{}))
}

func (suite *TariffRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tariff_rules").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = tariffrepo.NewGormTariffRepository(suite.db, suite.tracker)
}

func (suite *TariffRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TariffRepositoryIntegrationTestSuite) TestAdd_ValidRule_Success() {
	ctx := context.Background()

	rule := suite.createRule("Relay", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil)
	suite.tracker.On("TrackAggregate", rule.ID(), rule).Once()

	err := suite.repository.Add(ctx, rule)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&tariffrepo.TariffRuleDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGetByMethod_ReturnsRulesOrderedByIntervalStart() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	// Insert out of order to verify the sort
	high := suite.createRule("Relay", tariff.CriterionWeight, 5000, nil, 8.90, nil)
	low := suite.createRule("Relay", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil)
	other := suite.createRule("Home", tariff.CriterionPrice, 0, nil, 6.90, floatPtr(100))

	suite.Require().NoError(suite.repository.Add(ctx, high))
	suite.Require().NoError(suite.repository.Add(ctx, low))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	rules, err := suite.repository.GetByMethod(ctx, "Relay")
	suite.Require().NoError(err)

	suite.Require().Len(rules, 2)
	suite.InDelta(0, rules[0].MinValue(), 0.001)
	suite.InDelta(5000, rules[1].MinValue(), 0.001)
	suite.Nil(rules[1].MaxValue())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGetByMethod_UnknownMethod_ReturnsEmptySlice() {
	ctx := context.Background()

	rules, err := suite.repository.GetByMethod(ctx, "Express")
	suite.Require().NoError(err)
	suite.Empty(rules)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGetAll_ReturnsGridOrderedByMethodThenInterval() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.Require().NoError(suite.repository.Add(ctx,
		suite.createRule("Relay", tariff.CriterionWeight, 5000, nil, 8.90, nil)))
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.createRule("Home", tariff.CriterionPrice, 0, nil, 6.90, floatPtr(100))))
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.createRule("Relay", tariff.CriterionWeight, 0, floatPtr(5000), 4.90, nil)))

	rules, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(rules, 3)
	suite.Equal("Home", rules[0].MethodName())
	suite.Equal("Relay", rules[1].MethodName())
	suite.InDelta(0, rules[1].MinValue(), 0.001)
	suite.Equal("Relay", rules[2].MethodName())
	suite.InDelta(5000, rules[2].MinValue(), 0.001)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestAdd_NullableColumns_RoundTrip() {
	ctx := context.Background()

	rule := suite.createRule("Home", tariff.CriterionPrice, 0, nil, 6.90, floatPtr(100))
	suite.tracker.On("TrackAggregate", rule.ID(), rule).Once()
	suite.Require().NoError(suite.repository.Add(ctx, rule))

	rules, err := suite.repository.GetByMethod(ctx, "Home")
	suite.Require().NoError(err)
	suite.Require().Len(rules, 1)

	restored := rules[0]
	suite.Equal(tariff.CriterionPrice, restored.Criterion())
	suite.Nil(restored.MaxValue())
	suite.Require().NotNil(restored.ShippingThreshold())
	suite.InDelta(100, *restored.ShippingThreshold(), 0.001)

	suite.tracker.AssertExpectations(suite.T())
}

// createRule builds a valid rule for the given bracket.
func (suite *TariffRepositoryIntegrationTestSuite) createRule(
	methodName string,
	criterion tariff.Criterion,
	minValue float64,
	maxValue *float64,
	price float64,
	threshold *float64,
) *tariff.Rule {
	rule, err := tariff.NewRule(kernel.NewUUID(), methodName, criterion, minValue, maxValue, price, threshold)
	suite.Require().NoError(err)
	return rule
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestTariffRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TariffRepositoryIntegrationTestSuite))
}
