package handlers

import (
	"net/http"
	"strconv"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
)

// PortfolioHandler handles portfolio-level HTTP requests
type PortfolioHandler struct {
	valuationService *service.ValuationService
	snapshotService  *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(valuationService *service.ValuationService, snapshotService *service.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{
		valuationService: valuationService,
		snapshotService:  snapshotService,
	}
}

// ValuationResponse is the full portfolio valuation: totals in both display
// currencies, the per-class breakdown, and every valued asset.
type ValuationResponse struct {
	TotalValueUSD float64                  `json:"totalValueUsd"`
	TotalValueAMD float64                  `json:"totalValueAmd"`
	Breakdown     model.PortfolioBreakdown `json:"breakdown"`
	Assets        []model.ValuedAsset      `json:"assets"`
}

// Valuation values every active asset and aggregates the results.
//
// Endpoint: GET /api/portfolio/valuation
func (h *PortfolioHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	valued, err := h.valuationService.ValueAssets()
	if err != nil {
		respondServiceError(w, "failed to value portfolio", err)
		return
	}

	totalUSD, totalAMD, breakdown := service.Aggregate(valued)

	response.RespondJSON(w, http.StatusOK, ValuationResponse{
		TotalValueUSD: totalUSD,
		TotalValueAMD: totalAMD,
		Breakdown:     breakdown,
		Assets:        valued,
	})
}

// Stats returns summary statistics for the dashboard.
//
// Endpoint: GET /api/portfolio/stats
func (h *PortfolioHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.snapshotService.Stats()
	if err != nil {
		respondServiceError(w, "failed to compute portfolio stats", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// Snapshots returns stored portfolio snapshots, newest first. The optional
// limit query parameter caps the number of rows.
//
// Endpoint: GET /api/portfolio/snapshots
func (h *PortfolioHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a positive integer", "")
			return
		}
		limit = parsed
	}

	snapshots, err := h.snapshotService.List(limit)
	if err != nil {
		respondServiceError(w, "failed to retrieve snapshots", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// CreateSnapshot takes a snapshot of the current portfolio value. Taking a
// second snapshot on the same date overwrites the first.
//
// Endpoint: POST /api/portfolio/snapshots
// Response: 201 Created with the stored snapshot
func (h *PortfolioHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.CreateSnapshot()
	if err != nil {
		respondServiceError(w, "failed to create snapshot", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}
