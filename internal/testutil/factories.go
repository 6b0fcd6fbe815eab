package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithTicker("HGLG11").
//	    WithClass(model.AssetClassRealEstateFund, "FII").
//	    Build(t, db)
type AssetBuilder struct {
	ID          string
	Ticker      string
	AssetClass  string
	AssetType   string
	ProductName string
	Status      string
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:          MakeID(),
		Ticker:      "PETR4",
		AssetClass:  model.AssetClassEquity,
		AssetType:   "PN",
		ProductName: "PETROBRAS PN",
		Status:      model.StatusActive,
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.Ticker = ticker
	return b
}

// WithClass sets the asset class and type.
func (b *AssetBuilder) WithClass(class, assetType string) *AssetBuilder {
	b.AssetClass = class
	b.AssetType = assetType
	return b
}

// WithProductName sets a custom product name.
func (b *AssetBuilder) WithProductName(name string) *AssetBuilder {
	b.ProductName = name
	return b
}

// Deleted marks the asset as soft-deleted.
func (b *AssetBuilder) Deleted() *AssetBuilder {
	b.Status = model.StatusDeleted
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO asset (id, ticker, asset_class, asset_type, product_name, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Ticker, b.AssetClass, b.AssetType, b.ProductName,
		now.Format("2006-01-02 15:04:05"), b.Status)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:          b.ID,
		Ticker:      b.Ticker,
		AssetClass:  b.AssetClass,
		AssetType:   b.AssetType,
		ProductName: b.ProductName,
		CreatedAt:   now,
		Status:      b.Status,
	}
}

// OperationBuilder provides a fluent interface for creating test operations.
//
// Example usage:
//
//	op := testutil.NewOperation(asset.ID).
//	    WithMovement(model.MovementBuy).
//	    WithQuantity(100).
//	    WithPrice(30.05).
//	    Build(t, db)
type OperationBuilder struct {
	ID           string
	AssetID      string
	MovementType string
	Quantity     int64
	Price        float64
	Value        float64
	TradeDate    string
	Source       string
	Status       string
	Market       string
	Institution  string
}

// NewOperation creates an OperationBuilder with sensible defaults for the given asset.
func NewOperation(assetID string) *OperationBuilder {
	return &OperationBuilder{
		ID:           MakeID(),
		AssetID:      assetID,
		MovementType: model.MovementBuy,
		Quantity:     100,
		Price:        10.0,
		Value:        1000.0,
		TradeDate:    "2024-03-15",
		Source:       model.SourceImported,
		Status:       model.StatusActive,
		Market:       "Mercado à Vista",
		Institution:  "CORRETORA XP",
	}
}

// WithMovement sets the movement type.
func (b *OperationBuilder) WithMovement(movementType string) *OperationBuilder {
	b.MovementType = movementType
	return b
}

// WithQuantity sets the quantity and recomputes the value.
func (b *OperationBuilder) WithQuantity(quantity int64) *OperationBuilder {
	b.Quantity = quantity
	b.Value = float64(quantity) * b.Price
	return b
}

// WithPrice sets the price and recomputes the value.
func (b *OperationBuilder) WithPrice(price float64) *OperationBuilder {
	b.Price = price
	b.Value = float64(b.Quantity) * price
	return b
}

// WithTradeDate sets the trade date (YYYY-MM-DD).
func (b *OperationBuilder) WithTradeDate(date string) *OperationBuilder {
	b.TradeDate = date
	return b
}

// WithSource sets the provenance.
func (b *OperationBuilder) WithSource(source string) *OperationBuilder {
	b.Source = source
	return b
}

// WithStatus sets the row status.
func (b *OperationBuilder) WithStatus(status string) *OperationBuilder {
	b.Status = status
	return b
}

// WithMarket sets the market label.
func (b *OperationBuilder) WithMarket(market string) *OperationBuilder {
	b.Market = market
	return b
}

// WithInstitution sets the brokerage institution.
func (b *OperationBuilder) WithInstitution(institution string) *OperationBuilder {
	b.Institution = institution
	return b
}

// Build creates the operation in the database and returns it.
func (b *OperationBuilder) Build(t *testing.T, db *sql.DB) model.Operation {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO operation (
			id, asset_id, movement_type, quantity, price, value,
			trade_date, created_at, source, status, market, institution
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AssetID, b.MovementType, b.Quantity, b.Price, b.Value,
		b.TradeDate, now.Format("2006-01-02 15:04:05"), b.Source, b.Status, b.Market, b.Institution)
	if err != nil {
		t.Fatalf("Failed to create test operation: %v", err)
	}

	tradeDate, err := time.Parse("2006-01-02", b.TradeDate)
	if err != nil {
		t.Fatalf("Invalid trade date in test operation: %v", err)
	}

	return model.Operation{
		ID:           b.ID,
		AssetID:      b.AssetID,
		MovementType: b.MovementType,
		Quantity:     b.Quantity,
		Price:        b.Price,
		Value:        b.Value,
		TradeDate:    tradeDate,
		CreatedAt:    now,
		Source:       b.Source,
		Status:       b.Status,
		Market:       b.Market,
		Institution:  b.Institution,
	}
}

// QuoteBuilder provides a fluent interface for seeding cached quotes.
type QuoteBuilder struct {
	Ticker    string
	Price     float64
	UpdatedAt time.Time
}

// NewQuote creates a QuoteBuilder with sensible defaults.
func NewQuote(ticker string) *QuoteBuilder {
	return &QuoteBuilder{
		Ticker:    ticker,
		Price:     25.0,
		UpdatedAt: time.Now().UTC(),
	}
}

// WithPrice sets the quote price.
func (b *QuoteBuilder) WithPrice(price float64) *QuoteBuilder {
	b.Price = price
	return b
}

// UpdatedAgo makes the cached quote d old.
func (b *QuoteBuilder) UpdatedAgo(d time.Duration) *QuoteBuilder {
	b.UpdatedAt = time.Now().UTC().Add(-d)
	return b
}

// Build stores the quote in the database and returns it.
func (b *QuoteBuilder) Build(t *testing.T, db *sql.DB) model.Quote {
	t.Helper()

	query := `
		INSERT INTO quote (ticker, price, source, updated_at)
		VALUES (?, ?, 'test', ?)
	`

	_, err := db.Exec(query, b.Ticker, b.Price, b.UpdatedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}

	return model.Quote{
		Ticker:    b.Ticker,
		Price:     b.Price,
		Source:    "test",
		UpdatedAt: b.UpdatedAt,
	}
}

// FixedIncomeBuilder provides a fluent interface for creating fixed-income
// attributes on an existing asset.
type FixedIncomeBuilder struct {
	ID           string
	AssetID      string
	Issuer       string
	ProductType  string
	Indexer      string
	Rate         float64
	MaturityDate string
	IssueDate    string
	CustodyFee   float64
	Status       string
}

// NewFixedIncome creates a FixedIncomeBuilder with sensible defaults for the given asset.
func NewFixedIncome(assetID string) *FixedIncomeBuilder {
	return &FixedIncomeBuilder{
		ID:           MakeID(),
		AssetID:      assetID,
		Issuer:       "BANCO XYZ",
		ProductType:  "CDB",
		Indexer:      model.IndexerCDI,
		Rate:         110,
		MaturityDate: "2030-01-01",
		IssueDate:    "2024-01-01",
		CustodyFee:   0,
		Status:       model.StatusActive,
	}
}

// WithIndexer sets the indexer and contracted rate.
func (b *FixedIncomeBuilder) WithIndexer(indexer string, rate float64) *FixedIncomeBuilder {
	b.Indexer = indexer
	b.Rate = rate
	return b
}

// WithProductType sets the product type.
func (b *FixedIncomeBuilder) WithProductType(productType string) *FixedIncomeBuilder {
	b.ProductType = productType
	return b
}

// WithMaturity sets the maturity date (YYYY-MM-DD).
func (b *FixedIncomeBuilder) WithMaturity(date string) *FixedIncomeBuilder {
	b.MaturityDate = date
	return b
}

// WithIssueDate sets the issue date (YYYY-MM-DD).
func (b *FixedIncomeBuilder) WithIssueDate(date string) *FixedIncomeBuilder {
	b.IssueDate = date
	return b
}

// WithCustodyFee sets the annual custody fee percentage.
func (b *FixedIncomeBuilder) WithCustodyFee(fee float64) *FixedIncomeBuilder {
	b.CustodyFee = fee
	return b
}

// Build creates the fixed-income row in the database and returns it.
func (b *FixedIncomeBuilder) Build(t *testing.T, db *sql.DB) model.FixedIncomeAsset {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO fixed_income_asset (
			id, asset_id, issuer, product_type, indexer, rate,
			maturity_date, issue_date, custody_fee, created_at, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AssetID, b.Issuer, b.ProductType, b.Indexer, b.Rate,
		b.MaturityDate, b.IssueDate, b.CustodyFee, now.Format("2006-01-02 15:04:05"), b.Status)
	if err != nil {
		t.Fatalf("Failed to create test fixed income asset: %v", err)
	}

	maturity, _ := time.Parse("2006-01-02", b.MaturityDate)
	issue, _ := time.Parse("2006-01-02", b.IssueDate)

	return model.FixedIncomeAsset{
		ID:           b.ID,
		AssetID:      b.AssetID,
		Issuer:       b.Issuer,
		ProductType:  b.ProductType,
		Indexer:      b.Indexer,
		Rate:         b.Rate,
		MaturityDate: maturity,
		IssueDate:    issue,
		CustodyFee:   b.CustodyFee,
		CreatedAt:    now,
		Status:       b.Status,
	}
}

// CreateFixedIncomeDeposit records a deposit on a fixed-income asset.
func CreateFixedIncomeDeposit(t *testing.T, db *sql.DB, assetID string, amount float64, tradeDate string) {
	t.Helper()

	query := `
		INSERT INTO fixed_income_operation (id, asset_id, operation_type, amount, trade_date, status)
		VALUES (?, ?, 'DEPOSIT', ?, ?, 'ACTIVE')
	`
	if _, err := db.Exec(query, MakeID(), assetID, amount, tradeDate); err != nil {
		t.Fatalf("Failed to create test deposit: %v", err)
	}
}
