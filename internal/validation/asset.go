package validation

import (
	"strings"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
)

// ValidateCreateAsset validates an explicit asset registration request.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAsset validates an asset metadata update. At least one field
// must be present.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.ProductName == nil && req.AssetType == nil {
		errors["body"] = "no fields to update"
	}

	if req.ProductName != nil && *req.ProductName == "" {
		errors["productName"] = "productName cannot be empty"
	}

	if req.AssetType != nil && *req.AssetType == "" {
		errors["assetType"] = "assetType cannot be empty"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
