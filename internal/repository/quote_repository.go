package repository

import (
	"database/sql"
	"fmt"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// QuoteRepository provides data access methods for the quote table, the
// persisted read-through cache in front of the market-data provider.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// UpsertQuote inserts or replaces the cached quote for a ticker.
func (r *QuoteRepository) UpsertQuote(q *model.Quote) error {
	query := `
		INSERT INTO quote (
			ticker, price, change_value, change_percent, volume,
			open_price, high_price, low_price, previous_close, source, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			price = excluded.price,
			change_value = excluded.change_value,
			change_percent = excluded.change_percent,
			volume = excluded.volume,
			open_price = excluded.open_price,
			high_price = excluded.high_price,
			low_price = excluded.low_price,
			previous_close = excluded.previous_close,
			source = excluded.source,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		q.Ticker, q.Price, q.Change, q.ChangePercent, q.Volume,
		q.Open, q.High, q.Low, q.PreviousClose, q.Source,
		q.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}

// GetQuote retrieves the cached quote for a ticker. Returns ErrQuoteNotFound
// when the ticker was never quoted.
func (r *QuoteRepository) GetQuote(ticker string) (model.Quote, error) {
	query := `
		SELECT ticker, price, change_value, change_percent, volume,
			open_price, high_price, low_price, previous_close, source, updated_at
		FROM quote
		WHERE ticker = ?
	`

	var q model.Quote
	var updatedAtStr string

	err := r.db.QueryRow(query, ticker).Scan(
		&q.Ticker, &q.Price, &q.Change, &q.ChangePercent, &q.Volume,
		&q.Open, &q.High, &q.Low, &q.PreviousClose, &q.Source, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Quote{}, apperrors.ErrQuoteNotFound
	}
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to scan quote table results: %w", err)
	}

	q.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Quote{}, err
	}
	return q, nil
}

// ListQuotes returns all cached quotes ordered by ticker.
func (r *QuoteRepository) ListQuotes() ([]model.Quote, error) {
	query := `
		SELECT ticker, price, change_value, change_percent, volume,
			open_price, high_price, low_price, previous_close, source, updated_at
		FROM quote
		ORDER BY ticker
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote table: %w", err)
	}
	defer rows.Close()

	quotes := []model.Quote{}
	for rows.Next() {
		var q model.Quote
		var updatedAtStr string

		err := rows.Scan(
			&q.Ticker, &q.Price, &q.Change, &q.ChangePercent, &q.Volume,
			&q.Open, &q.High, &q.Low, &q.PreviousClose, &q.Source, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote table results: %w", err)
		}

		q.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote table: %w", err)
	}
	return quotes, nil
}

// GetTickersToUpdate returns the tickers of ACTIVE listed assets holding a
// positive net position. Equities, ETFs and real estate funds are the classes
// with a live price source; everything else values at cost basis.
func (r *QuoteRepository) GetTickersToUpdate() ([]string, error) {
	query := `
		SELECT a.ticker
		FROM asset a
		LEFT JOIN operation o ON a.id = o.asset_id AND o.status = 'ACTIVE'
		WHERE a.status = 'ACTIVE'
		  AND a.asset_class IN ('EQUITY', 'ETF', 'REAL_ESTATE_FUND')
		GROUP BY a.ticker
		HAVING (
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.quantity ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.quantity ELSE 0 END), 0)
		) > 0
		ORDER BY a.ticker
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers to update: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}
	return tickers, nil
}
