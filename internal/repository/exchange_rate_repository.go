package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// ExchangeRateRepository provides data access methods for the exchange_rates table.
type ExchangeRateRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewExchangeRateRepository creates a new ExchangeRateRepository with the provided database connection.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *ExchangeRateRepository) WithTx(tx *sql.Tx) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: r.db, tx: tx}
}

func (r *ExchangeRateRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Latest retrieves the most recent persisted rate for a currency pair.
// Returns nil (not an error) when the pair has never been recorded.
func (r *ExchangeRateRepository) Latest(base, target string) (*model.ExchangeRate, error) {
	query := `
		SELECT id, base_currency, target_currency, rate, date, source
		FROM exchange_rates
		WHERE base_currency = ? AND target_currency = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var e model.ExchangeRate
	err := r.getQuerier().QueryRow(query, base, target).
		Scan(&e.ID, &e.BaseCurrency, &e.TargetCurrency, &e.Rate, &e.Date, &e.Source)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest exchange rate: %w", err)
	}

	return &e, nil
}

// Upsert writes an FX observation keyed by (base, target, date).
// Re-upserting the same key overwrites the rate and source.
func (r *ExchangeRateRepository) Upsert(base, target string, rate float64, date, source string) error {
	query := `
		INSERT INTO exchange_rates (id, base_currency, target_currency, rate, date, source)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(base_currency, target_currency, date) DO UPDATE SET
			rate = excluded.rate,
			source = excluded.source
	`

	_, err := r.getQuerier().Exec(query, uuid.NewString(), base, target, rate, date, source)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}

	return nil
}
