package repository

import (
	"database/sql"
	"fmt"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// FixedIncomeRepository provides data access methods for the
// fixed_income_asset and fixed_income_operation tables.
type FixedIncomeRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFixedIncomeRepository creates a new FixedIncomeRepository with the provided database connection.
func NewFixedIncomeRepository(db *sql.DB) *FixedIncomeRepository {
	return &FixedIncomeRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
func (r *FixedIncomeRepository) WithTx(tx *sql.Tx) *FixedIncomeRepository {
	return &FixedIncomeRepository{db: r.db, tx: tx}
}

func (r *FixedIncomeRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertFixedIncomeAsset creates the fixed-income attributes for an asset.
// Returns ErrFixedIncomeExists when the asset already carries an ACTIVE row.
func (r *FixedIncomeRepository) InsertFixedIncomeAsset(fi *model.FixedIncomeAsset) error {
	query := `
		INSERT INTO fixed_income_asset (
			id, asset_id, issuer, product_type, indexer, rate,
			maturity_date, issue_date, custody_fee, created_at, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		fi.ID, fi.AssetID, fi.Issuer, fi.ProductType, fi.Indexer, fi.Rate,
		fi.MaturityDate.UTC().Format("2006-01-02"),
		fi.IssueDate.UTC().Format("2006-01-02"),
		fi.CustodyFee,
		fi.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		fi.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrFixedIncomeExists
		}
		return fmt.Errorf("failed to insert fixed income asset: %w", err)
	}
	return nil
}

// GetFixedIncomeByAssetID retrieves the ACTIVE fixed-income attributes of an asset.
func (r *FixedIncomeRepository) GetFixedIncomeByAssetID(assetID string) (model.FixedIncomeAsset, error) {
	query := `
		SELECT id, asset_id, issuer, product_type, indexer, rate,
			maturity_date, issue_date, custody_fee, created_at, status
		FROM fixed_income_asset
		WHERE asset_id = ? AND status = 'ACTIVE'
	`

	var fi model.FixedIncomeAsset
	var maturityStr, issueStr, createdAtStr string

	err := r.getQuerier().QueryRow(query, assetID).Scan(
		&fi.ID, &fi.AssetID, &fi.Issuer, &fi.ProductType, &fi.Indexer, &fi.Rate,
		&maturityStr, &issueStr, &fi.CustodyFee, &createdAtStr, &fi.Status,
	)
	if err == sql.ErrNoRows {
		return model.FixedIncomeAsset{}, apperrors.ErrFixedIncomeNotFound
	}
	if err != nil {
		return model.FixedIncomeAsset{}, fmt.Errorf("failed to scan fixed income asset: %w", err)
	}

	if fi.MaturityDate, err = ParseTime(maturityStr); err != nil {
		return model.FixedIncomeAsset{}, err
	}
	if fi.IssueDate, err = ParseTime(issueStr); err != nil {
		return model.FixedIncomeAsset{}, err
	}
	if fi.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.FixedIncomeAsset{}, err
	}
	return fi, nil
}

// ListFixedIncomeAssets returns all ACTIVE fixed-income assets joined with
// their asset identity and sub-ledger aggregates, ordered by maturity date.
func (r *FixedIncomeRepository) ListFixedIncomeAssets() ([]model.FixedIncomeAssetWithBalance, error) {
	query := `
		SELECT
			fi.id,
			fi.asset_id,
			a.ticker,
			a.product_name,
			fi.issuer,
			fi.product_type,
			fi.indexer,
			fi.rate,
			fi.maturity_date,
			fi.issue_date,
			fi.custody_fee,
			fi.created_at,
			fi.status,
			COALESCE(SUM(CASE WHEN fio.operation_type = 'DEPOSIT' THEN fio.amount ELSE 0 END), 0) AS total_invested,
			COALESCE(SUM(CASE WHEN fio.operation_type IN ('WITHDRAWAL', 'MATURITY') THEN fio.amount ELSE 0 END), 0) AS total_redeemed,
			COUNT(fio.id) AS operations_count
		FROM fixed_income_asset fi
		INNER JOIN asset a ON fi.asset_id = a.id
		LEFT JOIN fixed_income_operation fio ON fi.asset_id = fio.asset_id AND fio.status = 'ACTIVE'
		WHERE fi.status = 'ACTIVE'
		GROUP BY fi.id
		ORDER BY fi.maturity_date ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixed income assets: %w", err)
	}
	defer rows.Close()

	assets := []model.FixedIncomeAssetWithBalance{}
	for rows.Next() {
		var fi model.FixedIncomeAssetWithBalance
		var maturityStr, issueStr, createdAtStr string

		err := rows.Scan(
			&fi.ID,
			&fi.AssetID,
			&fi.Ticker,
			&fi.ProductName,
			&fi.Issuer,
			&fi.ProductType,
			&fi.Indexer,
			&fi.Rate,
			&maturityStr,
			&issueStr,
			&fi.CustodyFee,
			&createdAtStr,
			&fi.Status,
			&fi.TotalInvested,
			&fi.TotalRedeemed,
			&fi.OperationsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed income asset: %w", err)
		}

		if fi.MaturityDate, err = ParseTime(maturityStr); err != nil {
			return nil, err
		}
		if fi.IssueDate, err = ParseTime(issueStr); err != nil {
			return nil, err
		}
		if fi.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}
		fi.CurrentBalance = fi.TotalInvested - fi.TotalRedeemed

		assets = append(assets, fi)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed income assets: %w", err)
	}
	return assets, nil
}

// InsertFixedIncomeOperation records a deposit, withdrawal or maturity event.
func (r *FixedIncomeRepository) InsertFixedIncomeOperation(op *model.FixedIncomeOperation) error {
	query := `
		INSERT INTO fixed_income_operation (
			id, asset_id, operation_type, amount, net_amount, tax_amount,
			trade_date, created_at, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var netAmount any
	if op.NetAmount != nil {
		netAmount = *op.NetAmount
	}

	_, err := r.getQuerier().Exec(query,
		op.ID, op.AssetID, op.OperationType, op.Amount, netAmount, op.TaxAmount,
		op.TradeDate.UTC().Format("2006-01-02"),
		op.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		op.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fixed income operation: %w", err)
	}
	return nil
}

// ListFixedIncomeOperations returns the ACTIVE sub-ledger of one asset,
// most recent first.
func (r *FixedIncomeRepository) ListFixedIncomeOperations(assetID string) ([]model.FixedIncomeOperation, error) {
	query := `
		SELECT id, asset_id, operation_type, amount, net_amount, tax_amount,
			trade_date, created_at, status
		FROM fixed_income_operation
		WHERE asset_id = ? AND status = 'ACTIVE'
		ORDER BY trade_date DESC
	`

	rows, err := r.getQuerier().Query(query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixed income operations: %w", err)
	}
	defer rows.Close()

	operations := []model.FixedIncomeOperation{}
	for rows.Next() {
		var op model.FixedIncomeOperation
		var tradeDateStr, createdAtStr string
		var netAmount sql.NullFloat64

		err := rows.Scan(
			&op.ID, &op.AssetID, &op.OperationType, &op.Amount, &netAmount,
			&op.TaxAmount, &tradeDateStr, &createdAtStr, &op.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed income operation: %w", err)
		}

		if netAmount.Valid {
			v := netAmount.Float64
			op.NetAmount = &v
		}
		if op.TradeDate, err = ParseTime(tradeDateStr); err != nil {
			return nil, err
		}
		if op.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		operations = append(operations, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed income operations: %w", err)
	}
	return operations, nil
}

// BalanceSummary aggregates a fixed-income asset's ACTIVE sub-ledger.
type BalanceSummary struct {
	TotalInvested    float64
	TotalRedeemed    float64
	FirstDepositDate sql.NullString
}

// GetBalance returns the invested/redeemed totals and the date of the first
// deposit, used to measure the regressive tax holding period.
func (r *FixedIncomeRepository) GetBalance(assetID string) (BalanceSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN operation_type = 'DEPOSIT' THEN amount ELSE 0 END), 0) AS total_invested,
			COALESCE(SUM(CASE WHEN operation_type IN ('WITHDRAWAL', 'MATURITY') THEN amount ELSE 0 END), 0) AS total_redeemed,
			MIN(CASE WHEN operation_type = 'DEPOSIT' THEN trade_date END) AS first_deposit
		FROM fixed_income_operation
		WHERE asset_id = ? AND status = 'ACTIVE'
	`

	var b BalanceSummary
	err := r.getQuerier().QueryRow(query, assetID).Scan(&b.TotalInvested, &b.TotalRedeemed, &b.FirstDepositDate)
	if err != nil {
		return BalanceSummary{}, fmt.Errorf("failed to query fixed income balance: %w", err)
	}
	return b, nil
}

// SoftDeleteFixedIncomeAsset marks the ACTIVE fixed-income row of an asset
// as DELETED. The owning asset is left untouched.
func (r *FixedIncomeRepository) SoftDeleteFixedIncomeAsset(assetID string) error {
	result, err := r.getQuerier().Exec(
		`UPDATE fixed_income_asset SET status = 'DELETED' WHERE asset_id = ? AND status = 'ACTIVE'`,
		assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete fixed income asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFixedIncomeNotFound
	}
	return nil
}
