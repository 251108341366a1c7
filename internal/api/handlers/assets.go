package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/request"
	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
	"github.com/YuriRomanenkou/portfolio-manager/internal/validation"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService     *service.AssetService
	valuationService *service.ValuationService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService, valuationService *service.ValuationService) *AssetHandler {
	return &AssetHandler{
		assetService:     assetService,
		valuationService: valuationService,
	}
}

// Assets returns all active assets with their current valuations.
//
// Endpoint: GET /api/assets
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	valued, err := h.valuationService.ValueAssets()
	if err != nil {
		respondServiceError(w, "failed to retrieve assets", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, valued)
}

// Asset returns a single asset with its current valuation.
//
// Endpoint: GET /api/assets/{uuid}
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve asset", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, h.valuationService.ValueAsset(asset))
}

// CreateAsset creates a new asset.
//
// Endpoint: POST /api/assets
// Response: 201 Created with the stored asset
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset := model.Asset{
		Name:           req.Name,
		AssetType:      model.AssetType(req.AssetType),
		Ticker:         req.Ticker,
		APIID:          req.APIID,
		Quantity:       req.Quantity,
		EstimatedValue: req.EstimatedValue,
		ValueCurrency:  req.ValueCurrency,
		PurchasePrice:  req.PurchasePrice,
		PurchaseDate:   req.PurchaseDate,
		Notes:          req.Notes,
		CurrencyCode:   req.CurrencyCode,
		IsActive:       true,
	}

	created, err := h.assetService.CreateAsset(asset)
	if err != nil {
		respondServiceError(w, "failed to create asset", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, created)
}

// UpdateAsset applies a partial update to an asset. Fields absent from the
// request body are left unchanged.
//
// Endpoint: PUT /api/assets/{uuid}
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve asset", err)
		return
	}

	applyAssetUpdate(&asset, req)

	updated, err := h.assetService.UpdateAsset(asset)
	if err != nil {
		respondServiceError(w, "failed to update asset", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}

// DeleteAsset soft-deletes an asset.
//
// Endpoint: DELETE /api/assets/{uuid}
// Response: 204 No Content
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.assetService.DeleteAsset(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, "failed to delete asset", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func applyAssetUpdate(asset *model.Asset, req request.UpdateAssetRequest) {
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Ticker != nil {
		asset.Ticker = req.Ticker
	}
	if req.APIID != nil {
		asset.APIID = req.APIID
	}
	if req.Quantity != nil {
		asset.Quantity = req.Quantity
	}
	if req.EstimatedValue != nil {
		asset.EstimatedValue = req.EstimatedValue
	}
	if req.ValueCurrency != nil {
		asset.ValueCurrency = req.ValueCurrency
	}
	if req.PurchasePrice != nil {
		asset.PurchasePrice = req.PurchasePrice
	}
	if req.PurchaseDate != nil {
		asset.PurchaseDate = req.PurchaseDate
	}
	if req.Notes != nil {
		asset.Notes = req.Notes
	}
	if req.CurrencyCode != nil {
		asset.CurrencyCode = req.CurrencyCode
	}
}
