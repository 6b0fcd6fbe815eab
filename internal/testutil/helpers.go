package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/config"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/marketdata"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/secrets"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// TestRates are the market reference rates used by fixed-income projection tests.
var TestRates = config.RateConfig{
	CDIAnnualPercent:  13.75,
	IPCAAnnualPercent: 4.5,
}

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	operationRepo := repository.NewOperationRepository(db)

	return service.NewAssetService(db, assetRepo, operationRepo)
}

func NewTestOperationService(t *testing.T, db *sql.DB) *service.OperationService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	operationRepo := repository.NewOperationRepository(db)

	return service.NewOperationService(db, assetRepo, operationRepo)
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	operationRepo := repository.NewOperationRepository(db)

	return service.NewImportService(db, assetRepo, operationRepo)
}

// NewTestQuoteService creates a QuoteService backed by the given market-data
// client, typically a MockQuoteClient, with a 15 minute cache TTL.
func NewTestQuoteService(t *testing.T, db *sql.DB, client marketdata.Client) *service.QuoteService {
	t.Helper()

	quoteRepo := repository.NewQuoteRepository(db)

	return service.NewQuoteService(quoteRepo, client, 15*time.Minute)
}

func NewTestDashboardService(t *testing.T, db *sql.DB, client marketdata.Client) *service.DashboardService {
	t.Helper()

	dashboardRepo := repository.NewDashboardRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	quoteService := NewTestQuoteService(t, db, client)

	return service.NewDashboardService(dashboardRepo, operationRepo, quoteService)
}

func NewTestFixedIncomeService(t *testing.T, db *sql.DB) *service.FixedIncomeService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	fixedIncomeRepo := repository.NewFixedIncomeRepository(db)

	return service.NewFixedIncomeService(db, assetRepo, fixedIncomeRepo, TestRates)
}

// NewTestSettingService creates a SettingService with a throwaway secret key.
func NewTestSettingService(t *testing.T, db *sql.DB) *service.SettingService {
	t.Helper()

	box, err := secrets.NewRandomBox()
	if err != nil {
		t.Fatalf("failed to create secret box: %v", err)
	}

	return service.NewSettingService(repository.NewSettingRepository(db), box)
}
