package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api"
	"github.com/YuriRomanenkou/portfolio-manager/internal/coingecko"
	"github.com/YuriRomanenkou/portfolio-manager/internal/config"
	"github.com/YuriRomanenkou/portfolio-manager/internal/database"
	"github.com/YuriRomanenkou/portfolio-manager/internal/exchangerate"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
	"github.com/YuriRomanenkou/portfolio-manager/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceHistoryRepository(db)
	fxRepo := repository.NewExchangeRateRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create market data providers
	yahooClient := yahoo.NewFinanceClient()
	coingeckoClient := coingecko.NewClient("")
	fxClient := exchangerate.NewClient()

	// Create services
	systemService := service.NewSystemService(db)
	settingsService, err := service.NewSettingsService(settingsRepo, cfg.Secrets.FernetKey, coingeckoClient)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}
	if apiKey, err := settingsService.CoinGeckoAPIKey(); err != nil {
		log.Printf("Stored CoinGecko API key unavailable: %v", err)
	} else if apiKey != "" {
		coingeckoClient.SetAPIKey(apiKey)
	}

	currencyService := service.NewCurrencyService(fxClient, fxRepo)
	priceService := service.NewPriceService(
		service.NewQuoteCache(),
		currencyService,
		yahooClient,
		coingeckoClient,
		fxClient,
		assetRepo,
		priceRepo,
		fxRepo,
	)
	costBasisService := service.NewCostBasisService(yahooClient)
	valuationService := service.NewValuationService(priceService, currencyService, costBasisService, assetRepo)
	snapshotService := service.NewSnapshotService(valuationService, snapshotRepo)
	assetService := service.NewAssetService(assetRepo)
	transactionService := service.NewTransactionService(db, transactionRepo, assetRepo)

	// Start the refresh scheduler on the configured interval
	settings, err := settingsService.Get()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	scheduler := service.NewRefreshScheduler(
		priceService,
		snapshotService,
		time.Duration(settings.UpdateIntervalMinutes)*time.Minute,
	)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start refresh scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(
		systemService,
		assetService,
		valuationService,
		transactionService,
		priceService,
		snapshotService,
		settingsService,
		scheduler,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
