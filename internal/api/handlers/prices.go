package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
)

// PriceHandler handles price-related HTTP requests
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// RefreshResponse reports the outcome of a manual price refresh.
type RefreshResponse struct {
	Status      string `json:"status"`
	RefreshedAt string `json:"refreshedAt"`
}

// Refresh re-prices every tradeable asset and refreshes exchange rates.
// Provider outages are tolerated; the refresh stores whatever it could fetch.
//
// Endpoint: POST /api/prices/refresh
func (h *PriceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.priceService.RefreshAll(); err != nil {
		respondServiceError(w, "failed to refresh prices", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{
		Status:      "ok",
		RefreshedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// AssetPrices returns an asset's persisted price history, newest first.
// The optional limit query parameter caps the number of rows (default 365).
//
// Endpoint: GET /api/assets/{uuid}/prices
func (h *PriceHandler) AssetPrices(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a positive integer", "")
			return
		}
		limit = parsed
	}

	history, err := h.priceService.History(chi.URLParam(r, "uuid"), limit)
	if err != nil {
		respondServiceError(w, "failed to retrieve price history", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// Search looks up tradeable instruments by name or symbol. The optional type
// query parameter restricts the search to one provider: "crypto" searches
// coins, any security type searches equities; when absent both are merged.
//
// Endpoint: GET /api/prices/search?q=tesla&type=stock
func (h *PriceHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.RespondError(w, http.StatusBadRequest, "q query parameter is required", "")
		return
	}

	assetType := model.AssetType(r.URL.Query().Get("type"))
	if assetType != "" && !assetType.IsTradeable() {
		response.RespondError(w, http.StatusBadRequest, "type must be a tradeable asset type", "")
		return
	}

	results, err := h.priceService.Search(query, assetType)
	if err != nil {
		respondServiceError(w, "search failed", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, results)
}
