package repository

import (
	"database/sql"
	"fmt"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// DashboardRepository runs the aggregate queries behind the portfolio
// summary. All aggregates consider only ACTIVE assets and operations.
type DashboardRepository struct {
	db *sql.DB
}

// NewDashboardRepository creates a new DashboardRepository with the provided database connection.
func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Totals holds the portfolio-wide buy/sell aggregates.
type Totals struct {
	TotalAssets      int
	TotalBoughtValue float64
	TotalSoldValue   float64
}

// GetTotals returns the count of active assets and the gross bought/sold values.
func (r *DashboardRepository) GetTotals() (Totals, error) {
	query := `
		SELECT
			COUNT(DISTINCT a.id) AS total_assets,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.value ELSE 0 END), 0) AS total_bought,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.value ELSE 0 END), 0) AS total_sold
		FROM asset a
		LEFT JOIN operation o ON a.id = o.asset_id AND o.status = 'ACTIVE'
		WHERE a.status = 'ACTIVE'
	`

	var t Totals
	err := r.db.QueryRow(query).Scan(&t.TotalAssets, &t.TotalBoughtValue, &t.TotalSoldValue)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to query portfolio totals: %w", err)
	}
	return t, nil
}

// GetPositions returns every holding with a positive net position, ranked by
// net invested value descending with asset id as the tiebreak.
func (r *DashboardRepository) GetPositions() ([]model.Position, error) {
	query := `
		SELECT
			a.id,
			a.ticker,
			a.asset_class,
			a.product_name,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.quantity ELSE 0 END), 0) AS total_bought,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.quantity ELSE 0 END), 0) AS total_sold,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.value ELSE 0 END), 0) AS bought_value,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.value ELSE 0 END), 0) AS sold_value
		FROM asset a
		LEFT JOIN operation o ON a.id = o.asset_id AND o.status = 'ACTIVE'
		WHERE a.status = 'ACTIVE'
		GROUP BY a.id, a.ticker, a.asset_class, a.product_name
		HAVING (total_bought - total_sold) > 0
		ORDER BY (bought_value - sold_value) DESC, a.id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		var p model.Position
		var totalBought, totalSold int64
		var boughtValue, soldValue float64

		err := rows.Scan(
			&p.AssetID, &p.Ticker, &p.AssetClass, &p.ProductName,
			&totalBought, &totalSold, &boughtValue, &soldValue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}

		p.Quantity = totalBought - totalSold
		p.InvestedValue = boughtValue - soldValue
		if p.Quantity > 0 {
			p.AveragePrice = p.InvestedValue / float64(p.Quantity)
		}

		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, nil
}

// GetAllocation groups net invested value by asset class, skipping classes
// with nothing invested.
func (r *DashboardRepository) GetAllocation() ([]model.Allocation, error) {
	query := `
		SELECT
			a.asset_class,
			COUNT(DISTINCT a.id) AS asset_count,
			COALESCE(SUM(CASE WHEN o.movement_type = 'BUY' THEN o.value ELSE 0 END), 0) AS bought_value,
			COALESCE(SUM(CASE WHEN o.movement_type = 'SELL' THEN o.value ELSE 0 END), 0) AS sold_value
		FROM asset a
		LEFT JOIN operation o ON a.id = o.asset_id AND o.status = 'ACTIVE'
		WHERE a.status = 'ACTIVE'
		GROUP BY a.asset_class
		HAVING (bought_value - sold_value) > 0
		ORDER BY (bought_value - sold_value) DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation: %w", err)
	}
	defer rows.Close()

	allocations := []model.Allocation{}
	for rows.Next() {
		var a model.Allocation
		var boughtValue, soldValue float64

		if err := rows.Scan(&a.AssetClass, &a.Count, &boughtValue, &soldValue); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a.Value = boughtValue - soldValue

		allocations = append(allocations, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation: %w", err)
	}
	return allocations, nil
}
