package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// AssetRepository provides data access methods for the assets table.
type AssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{db: r.db, tx: tx}
}

func (r *AssetRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const assetColumns = `id, name, asset_type, ticker, api_id, quantity, estimated_value,
	value_currency, purchase_price, purchase_date, notes, currency_code,
	is_active, created_at, updated_at`

// ListActive retrieves all non-deleted assets ordered by type and name.
// Returns an empty slice if no assets exist.
func (r *AssetRepository) ListActive() ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE is_active = 1 ORDER BY asset_type, name`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets table: %w", err)
	}

	return assets, nil
}

// GetByID retrieves a single active asset.
// Returns apperrors.ErrAssetNotFound if it does not exist or was soft-deleted.
func (r *AssetRepository) GetByID(id string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = ? AND is_active = 1`

	rows, err := r.getQuerier().Query(query, id)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query assets table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Asset{}, fmt.Errorf("error iterating assets table: %w", err)
		}
		return model.Asset{}, apperrors.ErrAssetNotFound
	}

	return scanAsset(rows)
}

// Create inserts a new asset. The caller is responsible for assigning the ID.
func (r *AssetRepository) Create(a model.Asset) error {
	query := `
		INSERT INTO assets (id, name, asset_type, ticker, api_id, quantity, estimated_value,
			value_currency, purchase_price, purchase_date, notes, currency_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		a.ID, a.Name, string(a.AssetType), a.Ticker, a.APIID, a.Quantity,
		a.EstimatedValue, a.ValueCurrency, a.PurchasePrice, a.PurchaseDate,
		a.Notes, a.CurrencyCode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// Update rewrites the mutable columns of an asset.
// Returns apperrors.ErrAssetNotFound if the asset does not exist or was soft-deleted.
func (r *AssetRepository) Update(a model.Asset) error {
	query := `
		UPDATE assets
		SET name = ?, asset_type = ?, ticker = ?, api_id = ?, quantity = ?,
			estimated_value = ?, value_currency = ?, purchase_price = ?,
			purchase_date = ?, notes = ?, currency_code = ?, updated_at = datetime('now')
		WHERE id = ? AND is_active = 1
	`

	result, err := r.getQuerier().Exec(query,
		a.Name, string(a.AssetType), a.Ticker, a.APIID, a.Quantity,
		a.EstimatedValue, a.ValueCurrency, a.PurchasePrice, a.PurchaseDate,
		a.Notes, a.CurrencyCode, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// SoftDelete marks an asset inactive. Its history is kept.
// Returns apperrors.ErrAssetNotFound if the asset does not exist.
func (r *AssetRepository) SoftDelete(id string) error {
	query := `UPDATE assets SET is_active = 0, updated_at = datetime('now') WHERE id = ? AND is_active = 1`

	result, err := r.getQuerier().Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

func scanAsset(rows *sql.Rows) (model.Asset, error) {
	var a model.Asset
	var assetType string
	var createdAt, updatedAt string

	err := rows.Scan(
		&a.ID,
		&a.Name,
		&assetType,
		&a.Ticker,
		&a.APIID,
		&a.Quantity,
		&a.EstimatedValue,
		&a.ValueCurrency,
		&a.PurchasePrice,
		&a.PurchaseDate,
		&a.Notes,
		&a.CurrencyCode,
		&a.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, apperrors.ErrAssetNotFound
		}
		return model.Asset{}, fmt.Errorf("failed to scan assets table results: %w", err)
	}

	a.AssetType = model.AssetType(assetType)
	if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return model.Asset{}, err
	}
	if a.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return model.Asset{}, err
	}

	return a, nil
}
