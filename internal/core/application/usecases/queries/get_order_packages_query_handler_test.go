package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderPackagesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderPackagesQueryHandler
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.PackageDTO{},
		&orderrepo.PackageItemDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderPackagesQueryHandler(db)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, line_items, packages, package_items CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TestHandle_OrderWithoutPackages_ReturnsEmptyPackages() {
	testOrder := suite.seedOrder()

	query, err := queries.NewGetOrderPackagesQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), response.OrderID)
	suite.Equal("ItemsToBeDistributed", response.FulfillmentStatus)
	suite.Empty(response.WaybillDocument)
	suite.Empty(response.Packages)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TestHandle_DistributedOrder_ReturnsPackagesInPosition() {
	testOrder := suite.seedOrder()

	first, err := testOrder.AddPackage()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItemToPackage(first, "SKU-A", 2))

	second, err := testOrder.AddPackage()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItemToPackage(second, "SKU-B", 1))

	suite.updateOrder(testOrder)

	query, err := queries.NewGetOrderPackagesQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("ItemsDistributed", response.FulfillmentStatus)
	suite.Require().Len(response.Packages, 2)

	suite.Equal(testOrder.Packages()[0].ID(), response.Packages[0].ID)
	suite.Equal(2*150, response.Packages[0].WeightGrams)
	suite.Equal("Pending", response.Packages[0].Status)
	suite.Require().Len(response.Packages[0].Items, 1)
	suite.Equal("SKU-A", response.Packages[0].Items[0].ProductID)
	suite.Equal(2, response.Packages[0].Items[0].Quantity)

	suite.Equal(testOrder.Packages()[1].ID(), response.Packages[1].ID)
	suite.Equal(400, response.Packages[1].WeightGrams)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TestHandle_WeightOverride_ReplacesDerivedWeight() {
	testOrder := suite.seedOrder()

	index, err := testOrder.AddPackage()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItemToPackage(index, "SKU-A", 2))
	suite.Require().NoError(testOrder.UpdatePackage(index, 900, nil))

	suite.updateOrder(testOrder)

	query, err := queries.NewGetOrderPackagesQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(response.Packages, 1)
	suite.Equal(900, response.Packages[0].WeightGrams)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TestHandle_LabeledOrder_ReturnsLabelAndStatus() {
	testOrder := suite.seedOrder()

	index, err := testOrder.AddPackage()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItemToPackage(index, "SKU-A", 2))
	suite.Require().NoError(testOrder.AddItemToPackage(index, "SKU-B", 1))
	suite.Require().NoError(testOrder.PlaceShippingLabel(index, "LBL-001", "https://carrier.example/labels/LBL-001.pdf"))

	suite.updateOrder(testOrder)

	query, err := queries.NewGetOrderPackagesQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("ShippingLabelsPlaced", response.FulfillmentStatus)
	suite.Require().Len(response.Packages, 1)
	suite.Equal("LBL-001", response.Packages[0].ShippingLabel)
	suite.Equal("https://carrier.example/labels/LBL-001.pdf", response.Packages[0].LabelDocument)
	suite.Equal("LabelAnnounced", response.Packages[0].Status)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderPackagesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderPackagesQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderPackagesQuery constructor")
}

// seedOrder persists a two-line order and returns the aggregate.
func (suite *GetOrderPackagesQueryHandlerTestSuite) seedOrder() *order.Order {
	itemA, err := order.NewLineItem("SKU-A", 150, 2)
	suite.Require().NoError(err)
	itemB, err := order.NewLineItem("SKU-B", 400, 1)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), order.MethodRelay, 59.90,
		[]*order.LineItem{itemA, itemB})
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *GetOrderPackagesQueryHandlerTestSuite) updateOrder(testOrder *order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Update(context.Background(), testOrder))
}

func TestGetOrderPackagesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderPackagesQueryHandlerTestSuite))
}
