package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist
	// or is no longer active.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrOperationNotFound indicates that an operation with the given ID does not exist.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrQuoteNotFound indicates that no cached quote exists for the ticker.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrFixedIncomeNotFound indicates that a fixed-income record does not exist
	// for the given asset.
	ErrFixedIncomeNotFound = errors.New("fixed income asset not found")

	// ErrSettingNotFound indicates that a settings key has never been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateOperation indicates that an operation with the same natural key
	// (asset, trade date, movement type, market, institution, quantity, price, source)
	// already exists. This is the deduplication gate for statement re-imports.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrDuplicateAsset indicates that an ACTIVE asset with the same canonical
	// ticker already exists. Get-or-create callers treat this as "someone else
	// just created it" and re-fetch.
	ErrDuplicateAsset = errors.New("duplicate active asset ticker")

	// ErrOperationNotActive indicates an attempt to update or delete an operation
	// whose status is not ACTIVE (already cancelled or deleted).
	ErrOperationNotActive = errors.New("operation is not active")

	// ErrAssetHasOperations indicates that an asset cannot be deleted because it
	// still owns active operations.
	ErrAssetHasOperations = errors.New("asset has active operations")

	// ErrFixedIncomeExists indicates that the asset already carries fixed-income
	// attributes.
	ErrFixedIncomeExists = errors.New("fixed income asset already exists")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNonPositiveAmount indicates that a quantity, price or amount field must
	// be greater than zero.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrBatchTooLarge indicates that a batch quote request exceeds the provider
	// limit of 50 symbols.
	ErrBatchTooLarge = errors.New("quote batch exceeds 50 symbols")
)

// Import errors cover the B3 statement ingestion path.
var (
	// ErrMissingColumns indicates that the uploaded statement is missing one or
	// more required columns. Reported before any row is processed.
	ErrMissingColumns = errors.New("statement is missing required columns")

	// ErrEmptyStatement indicates that the uploaded statement contains no data rows.
	ErrEmptyStatement = errors.New("statement contains no rows")

	// ErrMalformedRow indicates that a statement row could not be parsed.
	// The wrapped message names the failing row.
	ErrMalformedRow = errors.New("malformed statement row")

	// ErrFailedToImport wraps fatal row-level failures that aborted the import.
	ErrFailedToImport = errors.New("failed to import statement")
)

// Provider errors cover the external market-data source. These are recovered
// locally (cache or cost-basis fallback) and never surface to API callers.
var (
	// ErrQuoteUnavailable indicates that the market-data provider returned no
	// usable quote for a symbol.
	ErrQuoteUnavailable = errors.New("quote unavailable from provider")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveAssets      = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset       = errors.New("failed to retrieve asset")
	ErrFailedToRetrieveOperations  = errors.New("failed to retrieve operations")
	ErrFailedToRetrieveOperation   = errors.New("failed to retrieve operation")
	ErrFailedToRetrieveQuotes      = errors.New("failed to retrieve quotes")
	ErrFailedToRetrieveFixedIncome = errors.New("failed to retrieve fixed income assets")
	ErrFailedToGetSummary          = errors.New("failed to get dashboard summary")
	ErrFailedToGetProjection       = errors.New("failed to get projection")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
	ErrFailedToStoreSetting        = errors.New("failed to store setting")
)
