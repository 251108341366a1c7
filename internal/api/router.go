package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/handlers"
	custommiddleware "github.com/YuriRomanenkou/portfolio-manager/internal/api/middleware"
	"github.com/YuriRomanenkou/portfolio-manager/internal/config"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	assetService *service.AssetService,
	valuationService *service.ValuationService,
	transactionService *service.TransactionService,
	priceService *service.PriceService,
	snapshotService *service.SnapshotService,
	settingsService *service.SettingsService,
	scheduler *service.RefreshScheduler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		assetHandler := handlers.NewAssetHandler(assetService, valuationService)
		transactionHandler := handlers.NewTransactionHandler(transactionService)
		priceHandler := handlers.NewPriceHandler(priceService)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Asset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Get("/transactions", transactionHandler.AssetTransactions)
				r.Get("/prices", priceHandler.AssetPrices)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/prices", func(r chi.Router) {
			r.Post("/refresh", priceHandler.Refresh)
			r.Get("/search", priceHandler.Search)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(valuationService, snapshotService)
			r.Get("/valuation", portfolioHandler.Valuation)
			r.Get("/stats", portfolioHandler.Stats)
			r.Get("/snapshots", portfolioHandler.Snapshots)
			r.Post("/snapshots", portfolioHandler.CreateSnapshot)
		})

		r.Route("/recommendations", func(r chi.Router) {
			recommendationHandler := handlers.NewRecommendationHandler(valuationService, settingsService)
			r.Get("/", recommendationHandler.Recommendations)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(settingsService, scheduler)
			r.Get("/", settingsHandler.Settings)
			r.Put("/", settingsHandler.UpdateSettings)
		})
	})

	return r
}
