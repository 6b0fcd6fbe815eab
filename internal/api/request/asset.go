package request

// CreateAssetRequest represents the request body for registering an asset
// ahead of its first operation. Classification runs on the normalized ticker.
type CreateAssetRequest struct {
	Ticker      string `json:"ticker"`
	ProductName string `json:"productName"`
}

// UpdateAssetRequest represents the request body for updating asset metadata.
// Ticker and classification are immutable once created.
type UpdateAssetRequest struct {
	ProductName *string `json:"productName,omitempty"`
	AssetType   *string `json:"assetType,omitempty"`
}
