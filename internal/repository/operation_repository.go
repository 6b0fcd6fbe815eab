package repository

import (
	"database/sql"
	"fmt"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

const operationColumns = `
	o.id,
	o.asset_id,
	a.ticker,
	a.asset_class,
	a.asset_type,
	a.product_name,
	o.movement_type,
	o.quantity,
	o.price,
	o.value,
	o.trade_date,
	o.created_at,
	o.source,
	o.status,
	o.market,
	o.institution
`

// OperationRepository provides data access methods for the operation table.
// The table is an append-only ledger: rows change status but are never
// physically removed, and the natural-key UNIQUE constraint is the sole
// duplicate-import gate.
type OperationRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewOperationRepository creates a new OperationRepository with the provided database connection.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
func (r *OperationRepository) WithTx(tx *sql.Tx) *OperationRepository {
	return &OperationRepository{db: r.db, tx: tx}
}

func (r *OperationRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertOperation inserts a new ledger row. Returns ErrDuplicateOperation
// when the natural key (asset, trade date, movement type, market,
// institution, quantity, price, source) already exists in any status.
func (r *OperationRepository) InsertOperation(op *model.Operation) error {
	query := `
		INSERT INTO operation (
			id, asset_id, movement_type, quantity, price, value,
			trade_date, created_at, source, status, market, institution
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		op.ID,
		op.AssetID,
		op.MovementType,
		op.Quantity,
		op.Price,
		op.Value,
		op.TradeDate.UTC().Format("2006-01-02"),
		op.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		op.Source,
		op.Status,
		op.Market,
		op.Institution,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateOperation
		}
		return fmt.Errorf("failed to insert operation: %w", err)
	}
	return nil
}

// GetOperation retrieves a single operation by ID regardless of status, for
// audit and update paths.
func (r *OperationRepository) GetOperation(operationID string) (model.OperationResponse, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation o
		INNER JOIN asset a ON o.asset_id = a.id
		WHERE o.id = ?
	`

	op, err := r.scanOperation(r.getQuerier().QueryRow(query, operationID))
	if err == sql.ErrNoRows {
		return model.OperationResponse{}, apperrors.ErrOperationNotFound
	}
	if err != nil {
		return model.OperationResponse{}, err
	}
	return op, nil
}

// ListOperations returns all ACTIVE operations, most recent trade first with
// a stable id tiebreak.
func (r *OperationRepository) ListOperations() ([]model.OperationResponse, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation o
		INNER JOIN asset a ON o.asset_id = a.id
		WHERE o.status = 'ACTIVE'
		ORDER BY o.trade_date DESC, o.id DESC
	`
	return r.queryOperations(query)
}

// ListOperationsByAsset returns the ACTIVE operations of one asset, most
// recent trade first.
func (r *OperationRepository) ListOperationsByAsset(assetID string) ([]model.OperationResponse, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation o
		INNER JOIN asset a ON o.asset_id = a.id
		WHERE o.asset_id = ? AND o.status = 'ACTIVE'
		ORDER BY o.trade_date DESC, o.id DESC
	`
	return r.queryOperations(query, assetID)
}

// ListRecentOperations returns the latest ACTIVE operations across all assets.
func (r *OperationRepository) ListRecentOperations(limit int) ([]model.OperationResponse, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation o
		INNER JOIN asset a ON o.asset_id = a.id
		WHERE o.status = 'ACTIVE'
		ORDER BY o.trade_date DESC, o.id DESC
		LIMIT ?
	`
	return r.queryOperations(query, limit)
}

// SetStatus flips an operation's lifecycle status. Callers enforce the legal
// transitions; the supersede pattern runs both steps inside one transaction.
func (r *OperationRepository) SetStatus(operationID, status string) error {
	result, err := r.getQuerier().Exec(
		`UPDATE operation SET status = ? WHERE id = ?`, status, operationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrOperationNotFound
	}
	return nil
}

func (r *OperationRepository) queryOperations(query string, args ...any) ([]model.OperationResponse, error) {
	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation table: %w", err)
	}
	defer rows.Close()

	operations := []model.OperationResponse{}
	for rows.Next() {
		op, err := r.scanOperation(rows)
		if err != nil {
			return nil, err
		}
		operations = append(operations, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation table: %w", err)
	}
	return operations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OperationRepository) scanOperation(row rowScanner) (model.OperationResponse, error) {
	var op model.OperationResponse
	var tradeDateStr, createdAtStr string
	var market, institution sql.NullString

	err := row.Scan(
		&op.ID,
		&op.AssetID,
		&op.Ticker,
		&op.AssetClass,
		&op.AssetType,
		&op.ProductName,
		&op.MovementType,
		&op.Quantity,
		&op.Price,
		&op.Value,
		&tradeDateStr,
		&createdAtStr,
		&op.Source,
		&op.Status,
		&market,
		&institution,
	)
	if err == sql.ErrNoRows {
		return model.OperationResponse{}, err
	}
	if err != nil {
		return model.OperationResponse{}, fmt.Errorf("failed to scan operation table results: %w", err)
	}

	op.TradeDate, err = ParseTime(tradeDateStr)
	if err != nil {
		return model.OperationResponse{}, err
	}
	op.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.OperationResponse{}, err
	}
	op.Market = market.String
	op.Institution = institution.String

	return op, nil
}
