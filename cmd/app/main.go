package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"marketplace/cmd"
	httpserver "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres/bidrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/reviewrepo"
	"marketplace/internal/adapters/out/postgres/walletrepo"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cast"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("No .env file found, relying on environment variables")
	}

	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	publisher := createPublisher(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateReconcileOrdersCommandHandler(),
		configs.ReconciliationSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   cast.ToString(getOrReturnDefault("HTTP_PORT", "8080")),
		DBHost:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
		DBPort:     cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
		DBUser:     cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
		DBPassword: cast.ToString(getOrReturnDefault("DB_PASSWORD", "")),
		DBName:     cast.ToString(getOrReturnDefault("DB_NAME", "marketplace")),
		DBSslMode:  cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),

		KafkaHost:              cast.ToString(getOrReturnDefault("KAFKA_HOST", "")),
		KafkaOrderChangedTopic: cast.ToString(getOrReturnDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed")),

		SettlementCollateralPolicy: cast.ToString(getOrReturnDefault("SETTLEMENT_COLLATERAL_POLICY", "returned")),
		ReconciliationSchedule:     cast.ToString(getOrReturnDefault("RECONCILIATION_SCHEDULE", "*/30 * * * * *")),
	}
}

func getOrReturnDefault(key string, defaultValue any) any {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBPort,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&bidrepo.BidDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&reviewrepo.ReviewDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

// createPublisher connects the Kafka producer when brokers are configured.
// Returns nil otherwise so handlers skip event publishing.
func createPublisher(configs cmd.Config) ports.OrderEventPublisher {
	if configs.KafkaHost == "" {
		return nil
	}

	brokers := strings.Split(configs.KafkaHost, ",")
	publisher, err := kafka.NewSaramaOrderEventPublisher(brokers, configs.KafkaOrderChangedTopic)
	if err != nil {
		log.Fatalf("Failed to connect to Kafka: %v", err)
	}

	return publisher
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpserver.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateSubmitBidCommandHandler(),
		app.CreateSelectBidCommandHandler(),
		app.CreateDepositEscrowCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateSubmitReviewCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetOrderBidsQueryHandler(),
		app.CreateGetWalletStatementQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
