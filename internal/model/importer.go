package model

import "time"

// ImportSummary is the reconciliation report returned after a statement
// import. Re-importing the same file yields Inserted 0 and Duplicated
// equal to TotalRows.
type ImportSummary struct {
	TotalRows     int       `json:"totalRows"`
	Inserted      int       `json:"inserted"`
	Duplicated    int       `json:"duplicated"`
	Skipped       int       `json:"skipped"`
	AssetsCreated int       `json:"assetsCreated"`
	UniqueTickers int       `json:"uniqueTickers"`
	ImportedAt    time.Time `json:"importedAt"`
}
