package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/postgres/tariffrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.PackageDTO{},
		&orderrepo.PackageItemDTO{},
		&tariffrepo.TariffRuleDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, line_items, packages, package_items, tariff_rules, shipments CASCADE").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.TariffRepository(), "First instance should provide tariff repository")
	suite.NotNil(uow1.ShipmentRepository(), "First instance should provide shipment repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Visible within the transaction
	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_LabelPlacementWorkflow verifies the label placement flow:
// the order update and the new tracking record commit atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LabelPlacementWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()
	index, err := testOrder.AddPackage()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItemToPackage(index, "SKU-A", 2))

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Place the label and announce the tracking record in the same transaction
	err = testOrder.PlaceShippingLabel(index, "LBL-100", "https://carrier.example/labels/LBL-100.pdf")
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	record, err := shipment.NewShipment("LBL-100", testOrder.ID(), testOrder.Packages()[index].ID())
	suite.Require().NoError(err)
	err = uow.ShipmentRepository().Add(ctx, record)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify both sides persisted
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ShippingLabelsPlaced, retrievedOrder.Fulfillment())
	suite.True(retrievedOrder.Packages()[0].IsLabeled())

	retrievedRecord, err := newUow.ShipmentRepository().GetByLabel(ctx, "LBL-100")
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedRecord.OrderID())
	suite.Equal(shipment.LabelAnnounced, retrievedRecord.Status())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()
	testRule := createTestRule()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.TariffRepository().Add(ctx, testRule)
	suite.Require().NoError(err)

	// Both visible within the transaction
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	rules, err := uow.TariffRepository().GetByMethod(ctx, "Relay")
	suite.Require().NoError(err)
	suite.Len(rules, 1)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Nothing persisted after rollback
	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	rules, err = newUow.TariffRepository().GetByMethod(ctx, "Relay")
	suite.Require().NoError(err)
	suite.Empty(rules, "No tariff rules should exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder()
	order2 := createTestOrder()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only order1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	// Add order without beginning transaction (should auto-commit)
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	// Verify with new unit of work instance
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_TrackingRefreshWorkflow tests a tracking status refresh
// touching the shipment record and the owning order in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TrackingRefreshWorkflow() {
	ctx := context.Background()

	// Seed a labeled order with its tracking record
	testOrder := createTestOrder()
	index, err := testOrder.AddPackage()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItemToPackage(index, "SKU-A", 2))
	suite.Require().NoError(testOrder.PlaceShippingLabel(index, "LBL-200", "https://carrier.example/labels/LBL-200.pdf"))
	packageID := testOrder.Packages()[index].ID()

	record, err := shipment.NewShipment("LBL-200", testOrder.ID(), packageID)
	suite.Require().NoError(err)

	seedUow := suite.factory.Create()
	suite.Require().NoError(seedUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(seedUow.ShipmentRepository().Add(ctx, record))

	// Apply a carrier pickup event within one transaction
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loadedRecord, err := uow.ShipmentRepository().GetByLabel(ctx, "LBL-200")
	suite.Require().NoError(err)
	suite.Require().NoError(loadedRecord.ApplyEvent("APF", ""))
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, loadedRecord))

	loadedOrder, err := uow.OrderRepository().Get(ctx, loadedRecord.OrderID())
	suite.Require().NoError(err)
	suite.Require().NoError(loadedOrder.UpdatePackageStatus(loadedRecord.PackageID(), loadedRecord.Status()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loadedOrder))

	suite.Require().NoError(uow.Commit(ctx))

	// Verify both the record and the package carry the new status
	newUow := suite.factory.Create()

	finalRecord, err := newUow.ShipmentRepository().GetByLabel(ctx, "LBL-200")
	suite.Require().NoError(err)
	suite.Equal(shipment.Dispatched, finalRecord.Status())

	finalOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Dispatched, finalOrder.Packages()[0].Status())
}

// createTestOrder creates a valid order for testing purposes.
func createTestOrder() *order.Order {
	item, _ := order.NewLineItem("SKU-A", 150, 2)
	testOrder, _ := order.NewOrder(kernel.NewUUID(), order.MethodRelay, 59.90,
		[]*order.LineItem{item})
	return testOrder
}

// createTestRule creates a valid tariff rule for testing purposes.
func createTestRule() *tariff.Rule {
	maxValue := 5000.0
	rule, _ := tariff.NewRule(kernel.NewUUID(), "Relay", tariff.CriterionWeight, 0, &maxValue, 4.90, nil)
	return rule
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
