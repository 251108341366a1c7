package validation

import (
	"strings"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/request"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	assetType := model.AssetType(req.AssetType)
	if !assetType.IsValid() {
		errors["assetType"] = "unknown asset type"
	}

	switch assetType {
	case model.AssetTypeCrypto:
		if req.APIID == nil || strings.TrimSpace(*req.APIID) == "" {
			errors["apiId"] = "apiId is required for crypto assets"
		}
	case model.AssetTypeStock, model.AssetTypeETF, model.AssetTypeBond:
		if req.Ticker == nil || strings.TrimSpace(*req.Ticker) == "" {
			errors["ticker"] = "ticker is required for " + req.AssetType + " assets"
		}
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if req.EstimatedValue != nil && *req.EstimatedValue < 0 {
		errors["estimatedValue"] = "estimated value cannot be negative"
	}

	if req.PurchasePrice != nil && *req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchase price cannot be negative"
	}

	if req.PurchaseDate != nil {
		if _, err := time.Parse("2006-01-02", *req.PurchaseDate); err != nil {
			errors["purchaseDate"] = "purchase date must be YYYY-MM-DD"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if req.EstimatedValue != nil && *req.EstimatedValue < 0 {
		errors["estimatedValue"] = "estimated value cannot be negative"
	}

	if req.PurchasePrice != nil && *req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchase price cannot be negative"
	}

	if req.PurchaseDate != nil && *req.PurchaseDate != "" {
		if _, err := time.Parse("2006-01-02", *req.PurchaseDate); err != nil {
			errors["purchaseDate"] = "purchase date must be YYYY-MM-DD"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
