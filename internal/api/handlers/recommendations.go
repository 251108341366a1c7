package handlers

import (
	"net/http"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
)

// RecommendationHandler handles advisory HTTP requests
type RecommendationHandler struct {
	valuationService *service.ValuationService
	settingsService  *service.SettingsService
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(valuationService *service.ValuationService, settingsService *service.SettingsService) *RecommendationHandler {
	return &RecommendationHandler{
		valuationService: valuationService,
		settingsService:  settingsService,
	}
}

// RecommendationsResponse bundles the advisory output: the findings, the
// profile they were evaluated against, the portfolio risk score, and the
// profile's target allocation.
type RecommendationsResponse struct {
	RiskProfile     model.RiskProfile           `json:"riskProfile"`
	RiskScore       float64                     `json:"riskScore"`
	Recommendations []model.Recommendation      `json:"recommendations"`
	IdealAllocation map[model.AssetType]float64 `json:"idealAllocation"`
}

// Recommendations evaluates the advisory rules against the current
// valuations and the configured risk profile. Nothing is persisted; two
// requests against unchanged data return identical results.
//
// Endpoint: GET /api/recommendations
func (h *RecommendationHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get()
	if err != nil {
		respondServiceError(w, "failed to load settings", err)
		return
	}

	valued, err := h.valuationService.ValueAssets()
	if err != nil {
		respondServiceError(w, "failed to value portfolio", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, RecommendationsResponse{
		RiskProfile:     settings.RiskProfile,
		RiskScore:       service.RiskScore(valued),
		Recommendations: service.GenerateRecommendations(valued, settings.RiskProfile),
		IdealAllocation: service.IdealAllocation(settings.RiskProfile),
	})
}
