package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// PriceHistoryRepository provides data access methods for the price_history table.
type PriceHistoryRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPriceHistoryRepository creates a new PriceHistoryRepository with the provided database connection.
func NewPriceHistoryRepository(db *sql.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *PriceHistoryRepository) WithTx(tx *sql.Tx) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: r.db, tx: tx}
}

func (r *PriceHistoryRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ListByAsset retrieves up to limit price records for an asset, newest first.
func (r *PriceHistoryRepository) ListByAsset(assetID string, limit int) ([]model.PriceHistory, error) {
	query := `
		SELECT id, asset_id, price_usd, price_amd, date, source
		FROM price_history
		WHERE asset_id = ?
		ORDER BY date DESC
		LIMIT ?
	`

	rows, err := r.getQuerier().Query(query, assetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_history table: %w", err)
	}
	defer rows.Close()

	prices := []model.PriceHistory{}
	for rows.Next() {
		var p model.PriceHistory
		if err := rows.Scan(&p.ID, &p.AssetID, &p.PriceUSD, &p.PriceAMD, &p.Date, &p.Source); err != nil {
			return nil, fmt.Errorf("failed to scan price_history table results: %w", err)
		}
		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_history table: %w", err)
	}

	return prices, nil
}

// LatestByAsset retrieves the most recent persisted price for an asset.
// Returns nil (not an error) when no history exists: a missing price is a
// valuation gap, not a failure.
func (r *PriceHistoryRepository) LatestByAsset(assetID string) (*model.PriceHistory, error) {
	query := `
		SELECT id, asset_id, price_usd, price_amd, date, source
		FROM price_history
		WHERE asset_id = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var p model.PriceHistory
	err := r.getQuerier().QueryRow(query, assetID).
		Scan(&p.ID, &p.AssetID, &p.PriceUSD, &p.PriceAMD, &p.Date, &p.Source)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest price: %w", err)
	}

	return &p, nil
}

// Upsert writes a price observation keyed by (asset, date, source).
// Re-upserting the same key overwrites the prices.
func (r *PriceHistoryRepository) Upsert(assetID string, priceUSD float64, priceAMD *float64, date, source string) error {
	query := `
		INSERT INTO price_history (id, asset_id, price_usd, price_amd, date, source)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(asset_id, date, source) DO UPDATE SET
			price_usd = excluded.price_usd,
			price_amd = excluded.price_amd
	`

	_, err := r.getQuerier().Exec(query, uuid.NewString(), assetID, priceUSD, priceAMD, date, source)
	if err != nil {
		return fmt.Errorf("failed to upsert price history: %w", err)
	}

	return nil
}
