package model

import "time"

// Quote is the last known market price for a ticker, persisted as a
// read-through cache in front of the market-data provider. A quote is
// considered stale once UpdatedAt is older than the configured TTL.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PreviousClose float64   `json:"previousClose"`
	Source        string    `json:"source"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
