package model

import "time"

// Fixed-income indexers.
const (
	IndexerCDI   = "CDI"
	IndexerIPCA  = "IPCA"
	IndexerPre   = "PRE"
	IndexerSelic = "SELIC"
)

// Fixed-income operation types.
const (
	FixedIncomeDeposit    = "DEPOSIT"
	FixedIncomeWithdrawal = "WITHDRAWAL"
	FixedIncomeMaturity   = "MATURITY"
)

// FixedIncomeAsset holds the supplementary attributes of a FIXED_INCOME
// asset. One-to-one with an Asset by AssetID; independently soft-deletable.
type FixedIncomeAsset struct {
	ID           string    `json:"id"`
	AssetID      string    `json:"assetId"`
	Issuer       string    `json:"issuer"`
	ProductType  string    `json:"productType"`
	Indexer      string    `json:"indexer"`
	Rate         float64   `json:"rate"`
	MaturityDate time.Time `json:"maturityDate"`
	IssueDate    time.Time `json:"issueDate"`
	CustodyFee   float64   `json:"custodyFee"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status"`
}

// FixedIncomeAssetWithBalance joins the fixed-income attributes with the
// asset identity and the aggregates of its ACTIVE sub-ledger.
type FixedIncomeAssetWithBalance struct {
	FixedIncomeAsset
	Ticker          string  `json:"ticker"`
	ProductName     string  `json:"productName"`
	TotalInvested   float64 `json:"totalInvested"`
	TotalRedeemed   float64 `json:"totalRedeemed"`
	CurrentBalance  float64 `json:"currentBalance"`
	OperationsCount int     `json:"operationsCount"`
}

// FixedIncomeOperation is a deposit, withdrawal or maturity event against a
// fixed-income asset's balance.
type FixedIncomeOperation struct {
	ID            string    `json:"id"`
	AssetID       string    `json:"assetId"`
	OperationType string    `json:"operationType"`
	Amount        float64   `json:"amount"`
	NetAmount     *float64  `json:"netAmount,omitempty"`
	TaxAmount     float64   `json:"taxAmount"`
	TradeDate     time.Time `json:"tradeDate"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"`
}

// FixedIncomeProjection is the yield projection of a fixed-income asset to
// its maturity date. When the balance is zero or the asset is already past
// maturity the projection is degenerate and Message explains why.
type FixedIncomeProjection struct {
	AssetID          string  `json:"assetId"`
	Ticker           string  `json:"ticker"`
	ProductType      string  `json:"productType,omitempty"`
	Indexer          string  `json:"indexer,omitempty"`
	RateContracted   float64 `json:"rateContracted,omitempty"`
	MaturityDate     string  `json:"maturityDate,omitempty"`
	DaysToMaturity   int     `json:"daysToMaturity"`
	CurrentBalance   float64 `json:"currentBalance"`
	GrossProjection  float64 `json:"grossProjection"`
	GrossGain        float64 `json:"grossGain"`
	TaxRate          float64 `json:"taxRate"`
	TaxAmount        float64 `json:"taxAmount"`
	CustodyFeeAmount float64 `json:"custodyFeeAmount"`
	NetProjection    float64 `json:"netProjection"`
	NetGain          float64 `json:"netGain"`
	AnnualRateUsed   float64 `json:"annualRateUsed"`
	Message          string  `json:"message,omitempty"`
}
