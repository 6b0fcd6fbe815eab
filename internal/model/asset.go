package model

import "time"

// Asset classes recognized by the classifier.
const (
	AssetClassEquity         = "EQUITY"
	AssetClassETF            = "ETF"
	AssetClassRealEstateFund = "REAL_ESTATE_FUND"
	AssetClassFixedIncome    = "FIXED_INCOME"
)

// Lifecycle status values shared by assets and operations.
const (
	StatusActive    = "ACTIVE"
	StatusCancelled = "CANCELLED"
	StatusDeleted   = "DELETED"
)

// Asset represents a canonical tradeable instrument. The ticker is the
// post-normalization symbol: fractional-market variants (ABEV3F) collapse
// into their round-lot equivalent (ABEV3) before an asset is created.
type Asset struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	AssetClass  string    `json:"assetClass"`
	AssetType   string    `json:"assetType"`
	ProductName string    `json:"productName"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
}

// AssetWithStats is an asset joined with aggregates over its ACTIVE
// operations across all markets.
type AssetWithStats struct {
	Asset
	TotalOperations  int     `json:"totalOperations"`
	TotalBought      int64   `json:"totalBought"`
	TotalSold        int64   `json:"totalSold"`
	CurrentPosition  int64   `json:"currentPosition"`
	TotalBoughtValue float64 `json:"totalBoughtValue"`
	TotalSoldValue   float64 `json:"totalSoldValue"`
}
