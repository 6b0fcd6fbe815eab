package validation

import (
	"strings"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

var validMovementTypes = map[string]bool{
	model.MovementBuy:  true,
	model.MovementSell: true,
}

// ValidateCreateOperation validates a manual operation creation request.
//
// Required fields:
//   - ticker: non-empty
//   - movementType: BUY or SELL
//   - quantity: positive integer
//   - price: positive
//   - tradeDate: YYYY-MM-DD format
func ValidateCreateOperation(req request.CreateOperationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if !validMovementTypes[req.MovementType] {
		errors["movementType"] = "movementType must be BUY or SELL"
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price <= 0 {
		errors["price"] = "price must be positive"
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

// ValidateUpdateOperation validates a partial operation edit. Only the fields
// present are checked.
func ValidateUpdateOperation(req request.UpdateOperationRequest) error {
	errors := make(map[string]string)

	if req.MovementType != nil && !validMovementTypes[*req.MovementType] {
		errors["movementType"] = "movementType must be BUY or SELL"
	}

	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price != nil && *req.Price <= 0 {
		errors["price"] = "price must be positive"
	}

	if req.TradeDate != nil {
		if _, err := time.Parse("2006-01-02", *req.TradeDate); err != nil {
			errors["tradeDate"] = "tradeDate must be in YYYY-MM-DD format"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
