package repository

import (
	"database/sql"
	"fmt"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// TransactionRepository provides data access methods for the transactions table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{db: r.db, tx: tx}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ListByAsset retrieves all transactions for an asset, newest first.
func (r *TransactionRepository) ListByAsset(assetID string) ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, type, quantity, price_per_unit, total_value, currency, date, notes, created_at
		FROM transactions
		WHERE asset_id = ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.getQuerier().Query(query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var txType, createdAt string

		err := rows.Scan(
			&t.ID,
			&t.AssetID,
			&txType,
			&t.Quantity,
			&t.PricePerUnit,
			&t.TotalValue,
			&t.Currency,
			&t.Date,
			&t.Notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transactions table results: %w", err)
		}

		t.Type = model.TransactionType(txType)
		if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions table: %w", err)
	}

	return transactions, nil
}

// Create inserts a new transaction. The caller is responsible for assigning the ID.
func (r *TransactionRepository) Create(t model.Transaction) error {
	query := `
		INSERT INTO transactions (id, asset_id, type, quantity, price_per_unit, total_value, currency, date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		t.ID, t.AssetID, string(t.Type), t.Quantity, t.PricePerUnit,
		t.TotalValue, t.Currency, t.Date, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction.
// Returns apperrors.ErrTransactionNotFound if it does not exist.
func (r *TransactionRepository) Delete(id string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}
