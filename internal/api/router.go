// Package api wires the HTTP surface: router, middleware and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/handlers"
	custommiddleware "github.com/rcoelho/B3-Portfolio-Backend/internal/api/middleware"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/config"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

// Services groups the service dependencies of the router.
type Services struct {
	System      *service.SystemService
	Asset       *service.AssetService
	Operation   *service.OperationService
	Import      *service.ImportService
	Quote       *service.QuoteService
	Dashboard   *service.DashboardService
	FixedIncome *service.FixedIncomeService
	Setting     *service.SettingService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
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
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Asset)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/operation", func(r chi.Router) {
			operationHandler := handlers.NewOperationHandler(svc.Operation)
			r.Get("/", operationHandler.Operations)
			r.Post("/", operationHandler.CreateOperation)

			r.Route("/asset/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", operationHandler.OperationsPerAsset)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", operationHandler.GetOperation)
				r.Put("/", operationHandler.UpdateOperation)
				r.Delete("/", operationHandler.DeleteOperation)
			})
		})

		r.Route("/import", func(r chi.Router) {
			importHandler := handlers.NewImportHandler(svc.Import)
			r.Post("/b3", importHandler.ImportB3)
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
			r.Get("/summary", dashboardHandler.Summary)
		})

		r.Route("/quotes", func(r chi.Router) {
			quoteHandler := handlers.NewQuoteHandler(svc.Quote)
			r.Get("/", quoteHandler.Quotes)
			r.Post("/batch", quoteHandler.BatchQuotes)
			r.Post("/refresh", quoteHandler.RefreshQuotes)
			r.Get("/{ticker}", quoteHandler.GetQuote)
		})

		r.Route("/fixed-income", func(r chi.Router) {
			fixedIncomeHandler := handlers.NewFixedIncomeHandler(svc.FixedIncome)
			r.Get("/", fixedIncomeHandler.FixedIncomeAssets)
			r.Post("/", fixedIncomeHandler.CreateFixedIncomeAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", fixedIncomeHandler.GetFixedIncomeAsset)
				r.Delete("/", fixedIncomeHandler.DeleteFixedIncomeAsset)
				r.Get("/operations", fixedIncomeHandler.FixedIncomeOperations)
				r.Post("/operations", fixedIncomeHandler.CreateFixedIncomeOperation)
				r.Get("/projection", fixedIncomeHandler.FixedIncomeProjection)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			settingHandler := handlers.NewSettingHandler(svc.Setting)
			r.Put("/marketdata-token", settingHandler.SetProviderToken)
		})
	})

	return r
}
