package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"shipping/internal/adapters/out/carrier"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	carrierClient  ports.CarrierClient
	trackingMaxAge time.Duration
	logger         *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	carrierClient, err := carrier.NewClient(config.CarrierAPIBaseURL, config.CarrierAPIKey, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create carrier client: %w", err)
	}

	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrierClient:  carrierClient,
		trackingMaxAge: time.Duration(config.TrackingMaxAgeMinute) * time.Minute,
		logger:         logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDistributeOrderCommandHandler() commands.DistributeOrderCommandHandler {
	return commands.NewDistributeOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddPackageCommandHandler() commands.AddPackageCommandHandler {
	return commands.NewAddPackageCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddItemToPackageCommandHandler() commands.AddItemToPackageCommandHandler {
	return commands.NewAddItemToPackageCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveItemFromPackageCommandHandler() commands.RemoveItemFromPackageCommandHandler {
	return commands.NewRemoveItemFromPackageCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeletePackageCommandHandler() commands.DeletePackageCommandHandler {
	return commands.NewDeletePackageCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePackageCommandHandler() commands.UpdatePackageCommandHandler {
	return commands.NewUpdatePackageCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateInsertTariffRuleCommandHandler() commands.InsertTariffRuleCommandHandler {
	return commands.NewInsertTariffRuleCommandHandler(c.tariffUoWFactory())
}

func (c *CompositionRoot) CreatePlaceShippingLabelsCommandHandler() commands.PlaceShippingLabelsCommandHandler {
	return commands.NewPlaceShippingLabelsCommandHandler(c.trackingUoWFactory(), c.carrierClient)
}

func (c *CompositionRoot) CreateGenerateWaybillCommandHandler() commands.GenerateWaybillCommandHandler {
	return commands.NewGenerateWaybillCommandHandler(c.orderUoWFactory(), c.carrierClient)
}

func (c *CompositionRoot) CreateApplyTrackingEventsCommandHandler() commands.ApplyTrackingEventsCommandHandler {
	return commands.NewApplyTrackingEventsCommandHandler(c.trackingUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderPackagesQueryHandler() queries.GetOrderPackagesQueryHandler {
	return queries.NewGetOrderPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveShippingCostQueryHandler() queries.ResolveShippingCostQueryHandler {
	return queries.NewResolveShippingCostQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleShipmentsQueryHandler() queries.GetStaleShipmentsQueryHandler {
	return queries.NewGetStaleShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStaleShipmentsQueryHandler(),
		c.CreateApplyTrackingEventsCommandHandler(),
		c.carrierClient,
		c.trackingMaxAge,
		c.logger,
	)
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tariffUoWFactory() commands.TariffUoWFactory {
	return FuncTariffUoWFactory(func() commands.TariffUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTariffUoWFactory func() commands.TariffUoW

func (f FuncTariffUoWFactory) Create() commands.TariffUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
