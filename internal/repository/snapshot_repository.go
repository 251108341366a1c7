package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_snapshots table.
type SnapshotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{db: r.db, tx: tx}
}

func (r *SnapshotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// List retrieves up to limit snapshots, newest first.
func (r *SnapshotRepository) List(limit int) ([]model.PortfolioSnapshot, error) {
	query := `
		SELECT id, date, total_value_usd, total_value_amd, breakdown_json
		FROM portfolio_snapshots
		ORDER BY date DESC
		LIMIT ?
	`

	rows, err := r.getQuerier().Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshots table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioSnapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_snapshots table: %w", err)
	}

	return snapshots, nil
}

// GetByDate retrieves the snapshot for a calendar date.
// Returns apperrors.ErrSnapshotNotFound if none exists.
func (r *SnapshotRepository) GetByDate(date string) (model.PortfolioSnapshot, error) {
	query := `
		SELECT id, date, total_value_usd, total_value_amd, breakdown_json
		FROM portfolio_snapshots
		WHERE date = ?
	`

	rows, err := r.getQuerier().Query(query, date)
	if err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("failed to query portfolio_snapshots table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.PortfolioSnapshot{}, fmt.Errorf("error iterating portfolio_snapshots table: %w", err)
		}
		return model.PortfolioSnapshot{}, apperrors.ErrSnapshotNotFound
	}

	return scanSnapshot(rows)
}

// Upsert writes a snapshot keyed by date. Snapshotting the same date twice
// overwrites the totals and breakdown rather than appending a second row.
func (r *SnapshotRepository) Upsert(date string, totalUSD, totalAMD float64, breakdown model.PortfolioBreakdown) error {
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot breakdown: %w", err)
	}

	query := `
		INSERT INTO portfolio_snapshots (id, date, total_value_usd, total_value_amd, breakdown_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_value_usd = excluded.total_value_usd,
			total_value_amd = excluded.total_value_amd,
			breakdown_json = excluded.breakdown_json
	`

	_, err = r.getQuerier().Exec(query, uuid.NewString(), date, totalUSD, totalAMD, string(breakdownJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

func scanSnapshot(rows *sql.Rows) (model.PortfolioSnapshot, error) {
	var s model.PortfolioSnapshot
	var breakdownJSON string

	if err := rows.Scan(&s.ID, &s.Date, &s.TotalValueUSD, &s.TotalValueAMD, &breakdownJSON); err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("failed to scan portfolio_snapshots table results: %w", err)
	}

	if err := json.Unmarshal([]byte(breakdownJSON), &s.Breakdown); err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("failed to unmarshal snapshot breakdown: %w", err)
	}

	return s, nil
}
