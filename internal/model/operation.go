package model

import "time"

// Movement types stored on operations. Statement rows arrive as
// COMPRA/VENDA and are mapped before they reach the ledger.
const (
	MovementBuy  = "BUY"
	MovementSell = "SELL"
)

// Operation provenance values.
const (
	SourceImported = "IMPORTED"
	SourceManual   = "MANUAL"
)

// Operation represents one recorded trade movement owned by an asset.
// Value is always quantity times price as computed at creation time.
// Rows are never mutated in place: an edit cancels the original and
// inserts a new ACTIVE row, a delete flips the status to DELETED.
type Operation struct {
	ID           string    `json:"id"`
	AssetID      string    `json:"assetId"`
	MovementType string    `json:"movementType"`
	Quantity     int64     `json:"quantity"`
	Price        float64   `json:"price"`
	Value        float64   `json:"value"`
	TradeDate    time.Time `json:"tradeDate"`
	CreatedAt    time.Time `json:"createdAt"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Market       string    `json:"market,omitempty"`
	Institution  string    `json:"institution,omitempty"`
}

// OperationResponse is an operation enriched with its asset identity for
// API responses and listings.
type OperationResponse struct {
	Operation
	Ticker      string `json:"ticker"`
	AssetClass  string `json:"assetClass"`
	AssetType   string `json:"assetType"`
	ProductName string `json:"productName"`
}
