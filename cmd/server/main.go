package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/config"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/database"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/marketdata"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/scheduler"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/secrets"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Secrets box for encrypted settings
	var box *secrets.Box
	if cfg.SecretKey != "" {
		box, err = secrets.NewBox(cfg.SecretKey)
	} else {
		log.Println("SECRET_KEY not set, stored secrets will not survive restarts")
		box, err = secrets.NewRandomBox()
	}
	if err != nil {
		log.Fatalf("Failed to initialize secrets: %v", err)
	}

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	fixedIncomeRepo := repository.NewFixedIncomeRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	assetService := service.NewAssetService(db, assetRepo, operationRepo)
	operationService := service.NewOperationService(db, assetRepo, operationRepo)
	importService := service.NewImportService(db, assetRepo, operationRepo)
	settingService := service.NewSettingService(settingRepo, box)
	quoteClient := marketdata.NewYahooClient(settingService.GetProviderToken)
	quoteService := service.NewQuoteService(quoteRepo, quoteClient, cfg.Quotes.TTL)
	dashboardService := service.NewDashboardService(dashboardRepo, operationRepo, quoteService)
	fixedIncomeService := service.NewFixedIncomeService(db, assetRepo, fixedIncomeRepo, cfg.Rates)

	// Background quote refresh
	sched := scheduler.New()
	refresher := &scheduler.QuoteRefresher{Refresh: quoteService.RefreshAll}
	if err := sched.AddJob(cfg.Quotes.RefreshSpec, refresher); err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Asset:       assetService,
		Operation:   operationService,
		Import:      importService,
		Quote:       quoteService,
		Dashboard:   dashboardService,
		FixedIncome: fixedIncomeService,
		Setting:     settingService,
	}, cfg)

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
