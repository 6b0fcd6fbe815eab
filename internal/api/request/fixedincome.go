package request

// CreateFixedIncomeRequest represents the request body for registering a
// fixed-income holding. Ticker is a free-form identifier such as
// "CDB-BANCOXYZ-2027".
type CreateFixedIncomeRequest struct {
	Ticker       string  `json:"ticker"`
	ProductName  string  `json:"productName"`
	Issuer       string  `json:"issuer"`
	ProductType  string  `json:"productType"`
	Indexer      string  `json:"indexer"`
	Rate         float64 `json:"rate"`
	IssueDate    string  `json:"issueDate"`
	MaturityDate string  `json:"maturityDate"`
	CustodyFee   float64 `json:"custodyFee"`
}

// CreateFixedIncomeOperationRequest represents a deposit, withdrawal or
// maturity event on a fixed-income holding.
type CreateFixedIncomeOperationRequest struct {
	OperationType string   `json:"operationType"`
	Amount        float64  `json:"amount"`
	NetAmount     *float64 `json:"netAmount,omitempty"`
	TaxAmount     float64  `json:"taxAmount"`
	TradeDate     string   `json:"tradeDate"`
}
