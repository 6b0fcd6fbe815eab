package validation

import (
	"strings"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

var validIndexers = map[string]bool{
	model.IndexerCDI:   true,
	model.IndexerIPCA:  true,
	model.IndexerPre:   true,
	model.IndexerSelic: true,
}

var validFixedIncomeOperationTypes = map[string]bool{
	model.FixedIncomeDeposit:    true,
	model.FixedIncomeWithdrawal: true,
	model.FixedIncomeMaturity:   true,
}

// ValidateCreateFixedIncome validates a fixed-income registration request.
//
// Required fields:
//   - ticker: non-empty
//   - indexer: CDI, IPCA, PRE or SELIC
//   - rate: positive
//   - issueDate, maturityDate: YYYY-MM-DD format, maturity after issue
func ValidateCreateFixedIncome(req request.CreateFixedIncomeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if !validIndexers[req.Indexer] {
		errors["indexer"] = "indexer must be CDI, IPCA, PRE or SELIC"
	}

	if req.Rate <= 0 {
		errors["rate"] = "rate must be positive"
	}

	if req.CustodyFee < 0 {
		errors["custodyFee"] = "custodyFee cannot be negative"
	}

	var issue, maturity time.Time
	var err error

	if strings.TrimSpace(req.IssueDate) == "" {
		errors["issueDate"] = "issueDate is required"
	} else if issue, err = time.Parse("2006-01-02", req.IssueDate); err != nil {
		errors["issueDate"] = "issueDate must be in YYYY-MM-DD format"
	}

	if strings.TrimSpace(req.MaturityDate) == "" {
		errors["maturityDate"] = "maturityDate is required"
	} else if maturity, err = time.Parse("2006-01-02", req.MaturityDate); err != nil {
		errors["maturityDate"] = "maturityDate must be in YYYY-MM-DD format"
	}

	if !issue.IsZero() && !maturity.IsZero() && !maturity.After(issue) {
		errors["maturityDate"] = "maturityDate must be after issueDate"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateFixedIncomeOperation validates a deposit, withdrawal or
// maturity event request.
func ValidateCreateFixedIncomeOperation(req request.CreateFixedIncomeOperationRequest) error {
	errors := make(map[string]string)

	if !validFixedIncomeOperationTypes[req.OperationType] {
		errors["operationType"] = "operationType must be DEPOSIT, WITHDRAWAL or MATURITY"
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if req.TaxAmount < 0 {
		errors["taxAmount"] = "taxAmount cannot be negative"
	}

	if strings.TrimSpace(req.TradeDate) == "" {
		errors["tradeDate"] = "tradeDate is required"
	} else if _, err := time.Parse("2006-01-02", req.TradeDate); err != nil {
		errors["tradeDate"] = "tradeDate must be in YYYY-MM-DD format"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
