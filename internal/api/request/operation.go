package request

// CreateOperationRequest represents the request body for recording a manual
// operation. The stored value is always quantity times price; it is not a
// request field.
type CreateOperationRequest struct {
	Ticker       string  `json:"ticker"`
	MovementType string  `json:"movementType"`
	Quantity     int64   `json:"quantity"`
	Price        float64 `json:"price"`
	TradeDate    string  `json:"tradeDate"`
	Market       string  `json:"market"`
	Institution  string  `json:"institution"`
	ProductName  string  `json:"productName"`
}

// UpdateOperationRequest represents a partial edit of an existing operation.
// Fields left nil keep the value of the operation being replaced.
type UpdateOperationRequest struct {
	MovementType *string  `json:"movementType,omitempty"`
	Quantity     *int64   `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	TradeDate    *string  `json:"tradeDate,omitempty"`
	Market       *string  `json:"market,omitempty"`
	Institution  *string  `json:"institution,omitempty"`
}
