package main

import (
	"fmt"
	"net/http"
	"os"

	"financetracker/internal/config"
	"financetracker/internal/currency"
	"financetracker/internal/database"
	"financetracker/internal/logger"
	"financetracker/internal/server"
	"financetracker/internal/services"
	"financetracker/internal/validator"
	"financetracker/internal/xero"
)

// @title           Finance Tracker API
// @version         1.0
// @description     Personal finance tracker: multi-currency transactions, category balances and Xero invoice reconciliation.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := services.NewCategoryService(db).SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	validator.Register()

	converter := currency.NewConverter(appConfig.BaseCurrency,
		currency.WithBaseURL(appConfig.RatesAPIURL),
		currency.WithHTTPClient(&http.Client{Timeout: appConfig.RatesAPITimeout}),
		currency.WithRateLimit(appConfig.RatesAPIRPS),
		currency.WithLogger(logger.Named("currency")),
	)

	log.Infow("Transactions are normalized to the reporting currency", "currency", converter.TargetCurrency())

	var source xero.InvoiceSource
	if appConfig.UseXeroAPI() {
		log.Infow("Invoice sync uses the Xero API", "base_url", appConfig.XeroBaseURL)
		source = xero.NewHTTPSource(appConfig.XeroAccessToken,
			xero.WithBaseURL(appConfig.XeroBaseURL),
			xero.WithTenantID(appConfig.XeroTenantID),
			xero.WithLogger(logger.Named("xero")),
		)
	} else {
		log.Infow("Invoice sync uses the built-in mock dataset", "latency", appConfig.XeroMockLatency)
		source = xero.NewMockSource(appConfig.XeroMockLatency)
	}

	router := server.NewRouter(server.Deps{
		DB:            db,
		Converter:     converter,
		InvoiceSource: source,
		BaseCurrency:  converter.TargetCurrency(),
		JWTSecret:     appConfig.JWTSecret,
	})

	log.Infof("Starting finance tracker server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
