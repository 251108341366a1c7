package repository

import (
	"database/sql"
	"fmt"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
)

// SettingsRepository provides data access methods for the settings key/value table.
type SettingsRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *SettingsRepository) WithTx(tx *sql.Tx) *SettingsRepository {
	return &SettingsRepository{db: r.db, tx: tx}
}

func (r *SettingsRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Get retrieves a single setting value.
// Returns apperrors.ErrSettingNotFound if the key does not exist.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.getQuerier().QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query settings table: %w", err)
	}

	return value, nil
}

// Set writes a setting value, creating the key if needed.
func (r *SettingsRepository) Set(key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = datetime('now')
	`

	if _, err := r.getQuerier().Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", key, err)
	}

	return nil
}
