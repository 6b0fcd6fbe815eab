package model

import "time"

// Position is one ranked holding in the dashboard summary.
type Position struct {
	AssetID       string  `json:"assetId"`
	Ticker        string  `json:"ticker"`
	AssetClass    string  `json:"assetClass"`
	ProductName   string  `json:"productName"`
	Quantity      int64   `json:"quantity"`
	InvestedValue float64 `json:"investedValue"`
	AveragePrice  float64 `json:"averagePrice"`
	CurrentValue  float64 `json:"currentValue"`
	Priced        bool    `json:"priced"`
}

// Allocation groups invested value by asset class.
type Allocation struct {
	AssetClass string  `json:"assetClass"`
	Count      int     `json:"count"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// DashboardSummary is the portfolio-wide valuation returned by the
// dashboard endpoint. CurrentValue uses live quotes where available and
// falls back to cost basis for assets without a price source.
type DashboardSummary struct {
	TotalAssets      int                 `json:"totalAssets"`
	TotalInvested    float64             `json:"totalInvested"`
	CurrentValue     float64             `json:"currentValue"`
	TotalBoughtValue float64             `json:"totalBoughtValue"`
	TotalSoldValue   float64             `json:"totalSoldValue"`
	TotalGain        float64             `json:"totalGain"`
	TotalGainPercent float64             `json:"totalGainPercent"`
	TopPositions     []Position          `json:"topPositions"`
	RecentOperations []OperationResponse `json:"recentOperations"`
	AssetAllocation  []Allocation        `json:"assetAllocation"`
	GeneratedAt      time.Time           `json:"generatedAt"`
}
