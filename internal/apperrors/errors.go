// Package apperrors defines the sentinel errors shared across the service
// and API layers.
//
// Provider failures (Yahoo, CoinGecko, the FX API) are deliberately NOT part
// of this taxonomy: an unreachable provider degrades a valuation to an
// absent figure and is never surfaced to callers as an error. Only storage
// integrity problems and validation failures propagate.
package apperrors

import "errors"

// Domain entity errors represent missing entities in storage. They are
// distinct from a price being unavailable: a missing asset is a caller
// mistake, a missing price is a degraded valuation.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not
	// exist or has been soft-deleted.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID
	// does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates no snapshot exists for the given date.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSettingNotFound indicates a settings key is missing.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint
// violations.
var (
	// ErrInvalidAssetType indicates an unknown asset class.
	ErrInvalidAssetType = errors.New("invalid asset type")

	// ErrInvalidTransactionType indicates an unknown transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidRiskProfile indicates an unknown risk profile.
	ErrInvalidRiskProfile = errors.New("invalid risk profile")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrMissingRequiredField indicates that a required field is missing or
	// empty.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrNegativeAmount indicates that an amount field has an invalid
	// negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidDate indicates a date that does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidInterval indicates a non-positive refresh interval.
	ErrInvalidInterval = errors.New("update interval must be positive")
)
