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

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS assets (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			asset_type TEXT NOT NULL,
			ticker TEXT,
			api_id TEXT,
			quantity REAL,
			estimated_value REAL,
			value_currency TEXT,
			purchase_price REAL,
			purchase_date TEXT,
			notes TEXT,
			currency_code TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			type TEXT NOT NULL,
			quantity REAL,
			price_per_unit REAL,
			total_value REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			date TEXT NOT NULL,
			notes TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (asset_id) REFERENCES assets(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS price_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			price_usd REAL NOT NULL,
			price_amd REAL,
			date TEXT NOT NULL,
			source TEXT NOT NULL,
			FOREIGN KEY (asset_id) REFERENCES assets(id) ON DELETE CASCADE,
			UNIQUE(asset_id, date, source)
		);

		CREATE TABLE IF NOT EXISTS exchange_rates (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			base_currency TEXT NOT NULL,
			target_currency TEXT NOT NULL,
			rate REAL NOT NULL,
			date TEXT NOT NULL,
			source TEXT NOT NULL,
			UNIQUE(base_currency, target_currency, date)
		);

		CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			total_value_usd REAL NOT NULL,
			total_value_amd REAL NOT NULL,
			breakdown_json TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`

	_, err := db.Exec(schema)
	return err
}
