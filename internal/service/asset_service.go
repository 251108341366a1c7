package service

import (
	"github.com/google/uuid"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// AssetService handles asset CRUD. Assets are read-only to the valuation
// engine; this service is the only writer.
type AssetService struct {
	assetRepo *repository.AssetRepository
}

// NewAssetService creates an AssetService.
func NewAssetService(assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// ListAssets returns all active assets.
func (s *AssetService) ListAssets() ([]model.Asset, error) {
	return s.assetRepo.ListActive()
}

// GetAsset returns a single active asset.
func (s *AssetService) GetAsset(id string) (model.Asset, error) {
	return s.assetRepo.GetByID(id)
}

// CreateAsset stores a new asset and returns it with its assigned ID.
func (s *AssetService) CreateAsset(a model.Asset) (model.Asset, error) {
	a.ID = uuid.NewString()
	if err := s.assetRepo.Create(a); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetByID(a.ID)
}

// UpdateAsset rewrites an asset's mutable fields and returns the updated record.
func (s *AssetService) UpdateAsset(a model.Asset) (model.Asset, error) {
	if err := s.assetRepo.Update(a); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetByID(a.ID)
}

// DeleteAsset soft-deletes an asset, keeping its price and transaction
// history for snapshots already taken.
func (s *AssetService) DeleteAsset(id string) error {
	return s.assetRepo.SoftDelete(id)
}
