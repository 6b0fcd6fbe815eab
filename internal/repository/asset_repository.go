package repository

import (
	"database/sql"
	"fmt"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// AssetRepository provides data access methods for the asset table. Asset
// rows are the identity registry: one ACTIVE row per canonical ticker,
// soft-deleted rows preserved forever.
type AssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{db: r.db, tx: tx}
}

func (r *AssetRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertAsset inserts a new ACTIVE asset. A UNIQUE violation on the ticker
// surfaces as ErrDuplicateAsset: the caller should re-fetch by ticker, as a
// concurrent writer has just created the row.
func (r *AssetRepository) InsertAsset(a *model.Asset) error {
	query := `
		INSERT INTO asset (id, ticker, asset_class, asset_type, product_name, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		a.ID, a.Ticker, a.AssetClass, a.AssetType, a.ProductName,
		a.CreatedAt.UTC().Format("2006-01-02 15:04:05"), a.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ticker %s: %w", a.Ticker, apperrors.ErrDuplicateAsset)
		}
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// GetAssetByTicker retrieves the ACTIVE asset for a canonical ticker.
// Returns ErrAssetNotFound if no active row exists.
func (r *AssetRepository) GetAssetByTicker(ticker string) (model.Asset, error) {
	query := `
		SELECT id, ticker, asset_class, asset_type, product_name, created_at, status
		FROM asset
		WHERE ticker = ? AND status = 'ACTIVE'
	`
	return r.scanAsset(r.getQuerier().QueryRow(query, ticker))
}

// GetAssetByID retrieves the ACTIVE asset with the given ID.
func (r *AssetRepository) GetAssetByID(assetID string) (model.Asset, error) {
	query := `
		SELECT id, ticker, asset_class, asset_type, product_name, created_at, status
		FROM asset
		WHERE id = ? AND status = 'ACTIVE'
	`
	return r.scanAsset(r.getQuerier().QueryRow(query, assetID))
}

func (r *AssetRepository) scanAsset(row *sql.Row) (model.Asset, error) {
	var a model.Asset
	var createdAtStr string

	err := row.Scan(&a.ID, &a.Ticker, &a.AssetClass, &a.AssetType, &a.ProductName, &createdAtStr, &a.Status)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

// ListAssets returns all ACTIVE assets with their operation aggregates.
// Operations are consolidated across ALL markets: round-lot and fractional
// trades of the same instrument count into a single position.
func (r *AssetRepository) ListAssets() ([]model.AssetWithStats, error) {
	query := `
		SELECT
			a.id,
			a.ticker,
			a.asset_class,
			a.asset_type,
			a.product_name,
			a.created_at,
			a.status,
			COUNT(DISTINCT o.id) AS total_operations,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.quantity ELSE 0 END), 0) AS total_bought,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.quantity ELSE 0 END), 0) AS total_sold,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.value ELSE 0 END), 0) AS total_bought_value,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.value ELSE 0 END), 0) AS total_sold_value
		FROM asset a
		LEFT JOIN operation o ON a.id = o.asset_id AND o.status = 'ACTIVE'
		WHERE a.status = 'ACTIVE'
		GROUP BY a.id
		ORDER BY a.ticker
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.AssetWithStats{}
	for rows.Next() {
		var a model.AssetWithStats
		var createdAtStr string

		err := rows.Scan(
			&a.ID,
			&a.Ticker,
			&a.AssetClass,
			&a.AssetType,
			&a.ProductName,
			&createdAtStr,
			&a.Status,
			&a.TotalOperations,
			&a.TotalBought,
			&a.TotalSold,
			&a.TotalBoughtValue,
			&a.TotalSoldValue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}

		a.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		a.CurrentPosition = a.TotalBought - a.TotalSold

		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAssetStats returns the aggregates of a single ACTIVE asset.
func (r *AssetRepository) GetAssetStats(assetID string) (model.AssetWithStats, error) {
	query := `
		SELECT
			a.id,
			a.ticker,
			a.asset_class,
			a.asset_type,
			a.product_name,
			a.created_at,
			a.status,
			COUNT(DISTINCT o.id) AS total_operations,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.quantity ELSE 0 END), 0) AS total_bought,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.quantity ELSE 0 END), 0) AS total_sold,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.value ELSE 0 END), 0) AS total_bought_value,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.value ELSE 0 END), 0) AS total_sold_value
		FROM asset a
		LEFT JOIN operation o ON a.id = o.asset_id AND o.status = 'ACTIVE'
		WHERE a.id = ? AND a.status = 'ACTIVE'
		GROUP BY a.id
	`

	var a model.AssetWithStats
	var createdAtStr string

	err := r.getQuerier().QueryRow(query, assetID).Scan(
		&a.ID,
		&a.Ticker,
		&a.AssetClass,
		&a.AssetType,
		&a.ProductName,
		&createdAtStr,
		&a.Status,
		&a.TotalOperations,
		&a.TotalBought,
		&a.TotalSold,
		&a.TotalBoughtValue,
		&a.TotalSoldValue,
	)
	if err == sql.ErrNoRows {
		return model.AssetWithStats{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.AssetWithStats{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.AssetWithStats{}, err
	}
	a.CurrentPosition = a.TotalBought - a.TotalSold

	return a, nil
}

// UpdateAsset updates an ACTIVE asset's identity fields.
func (r *AssetRepository) UpdateAsset(a *model.Asset) error {
	query := `
		UPDATE asset
		SET ticker = ?, asset_class = ?, asset_type = ?, product_name = ?
		WHERE id = ? AND status = 'ACTIVE'
	`

	result, err := r.getQuerier().Exec(query, a.Ticker, a.AssetClass, a.AssetType, a.ProductName, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ticker %s: %w", a.Ticker, apperrors.ErrDuplicateAsset)
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// CountActiveOperations returns the number of ACTIVE operations owned by an asset.
func (r *AssetRepository) CountActiveOperations(assetID string) (int, error) {
	var count int
	err := r.getQuerier().QueryRow(
		`SELECT COUNT(*) FROM operation WHERE asset_id = ? AND status = 'ACTIVE'`, assetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return count, nil
}

// SoftDeleteAsset marks an ACTIVE asset as DELETED. The service layer is
// responsible for the blocking-operations check; both steps run inside one
// transaction there.
func (r *AssetRepository) SoftDeleteAsset(assetID string) error {
	result, err := r.getQuerier().Exec(
		`UPDATE asset SET status = 'DELETED' WHERE id = ? AND status = 'ACTIVE'`, assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
