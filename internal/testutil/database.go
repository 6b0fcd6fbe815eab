package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(20) NOT NULL,
			asset_class VARCHAR(20) NOT NULL,
			asset_type VARCHAR(10) NOT NULL,
			product_name VARCHAR(200) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE'
		);

		CREATE UNIQUE INDEX idx_asset_ticker_active ON asset (ticker) WHERE status = 'ACTIVE';

		CREATE TABLE operation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			movement_type VARCHAR(4) NOT NULL,
			quantity INTEGER NOT NULL,
			price FLOAT NOT NULL,
			value FLOAT NOT NULL,
			trade_date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			source VARCHAR(10) NOT NULL DEFAULT 'MANUAL',
			status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
			market VARCHAR(50),
			institution VARCHAR(100),
			FOREIGN KEY (asset_id) REFERENCES asset(id),
			CONSTRAINT unique_operation UNIQUE (
				asset_id, trade_date, movement_type, market, institution, quantity, price, source
			)
		);

		CREATE INDEX idx_operation_asset ON operation (asset_id, status);
		CREATE INDEX idx_operation_trade_date ON operation (trade_date DESC, id DESC);

		CREATE TABLE quote (
			ticker VARCHAR(20) NOT NULL PRIMARY KEY,
			price FLOAT NOT NULL,
			change_value FLOAT NOT NULL DEFAULT 0,
			change_percent FLOAT NOT NULL DEFAULT 0,
			volume INTEGER NOT NULL DEFAULT 0,
			open_price FLOAT NOT NULL DEFAULT 0,
			high_price FLOAT NOT NULL DEFAULT 0,
			low_price FLOAT NOT NULL DEFAULT 0,
			previous_close FLOAT NOT NULL DEFAULT 0,
			source VARCHAR(20) NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE fixed_income_asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			issuer VARCHAR(100) NOT NULL,
			product_type VARCHAR(20) NOT NULL,
			indexer VARCHAR(10) NOT NULL,
			rate FLOAT NOT NULL,
			maturity_date DATE NOT NULL,
			issue_date DATE NOT NULL,
			custody_fee FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
			FOREIGN KEY (asset_id) REFERENCES asset(id)
		);

		CREATE UNIQUE INDEX idx_fixed_income_asset_active ON fixed_income_asset (asset_id) WHERE status = 'ACTIVE';

		CREATE TABLE fixed_income_operation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			operation_type VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			net_amount FLOAT,
			tax_amount FLOAT NOT NULL DEFAULT 0,
			trade_date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
			FOREIGN KEY (asset_id) REFERENCES asset(id)
		);

		CREATE INDEX idx_fixed_income_operation_asset ON fixed_income_operation (asset_id, status);

		CREATE TABLE setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
