package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"shipping/cmd"
	httpadapter "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/postgres/tariffrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to create composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	maxAge, err := strconv.Atoi(goDotEnvVariable("TRACKING_MAX_AGE_MINUTES"))
	if err != nil {
		log.Fatalf("Invalid TRACKING_MAX_AGE_MINUTES: %v", err)
	}

	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		CarrierAPIBaseURL:    goDotEnvVariable("CARRIER_API_BASE_URL"),
		CarrierAPIKey:        goDotEnvVariable("CARRIER_API_KEY"),
		TrackingMaxAgeMinute: maxAge,
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.PackageDTO{},
		&orderrepo.PackageItemDTO{},
		&tariffrepo.TariffRuleDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateDistributeOrderCommandHandler(),
		app.CreateAddPackageCommandHandler(),
		app.CreateAddItemToPackageCommandHandler(),
		app.CreateRemoveItemFromPackageCommandHandler(),
		app.CreateDeletePackageCommandHandler(),
		app.CreateUpdatePackageCommandHandler(),
		app.CreateInsertTariffRuleCommandHandler(),
		app.CreatePlaceShippingLabelsCommandHandler(),
		app.CreateGenerateWaybillCommandHandler(),
		app.CreateApplyTrackingEventsCommandHandler(),
		app.CreateGetOrderPackagesQueryHandler(),
		app.CreateResolveShippingCostQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
