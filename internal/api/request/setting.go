package request

// UpdateProviderTokenRequest carries a market-data provider token to be
// encrypted and stored.
type UpdateProviderTokenRequest struct {
	Token string `json:"token"`
}

// BatchQuotesRequest lists the tickers to quote in one call.
type BatchQuotesRequest struct {
	Tickers []string `json:"tickers"`
}
