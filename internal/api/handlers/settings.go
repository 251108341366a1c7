package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/request"
	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	scheduler       *service.RefreshScheduler
}

// NewSettingsHandler creates a new SettingsHandler. scheduler may be nil in
// tests; when present it is rescheduled after interval changes.
func NewSettingsHandler(settingsService *service.SettingsService, scheduler *service.RefreshScheduler) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		scheduler:       scheduler,
	}
}

// Settings returns the current settings. The stored provider API key is
// reported as a boolean, never echoed back.
//
// Endpoint: GET /api/settings
func (h *SettingsHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get()
	if err != nil {
		respondServiceError(w, "failed to load settings", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a partial settings change. A changed refresh
// interval takes effect immediately.
//
// Endpoint: PUT /api/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	upd := service.SettingsUpdate{
		UpdateIntervalMinutes: req.UpdateIntervalMinutes,
		CoinGeckoAPIKey:       req.CoinGeckoAPIKey,
	}
	if req.DisplayCurrency != nil {
		currency := model.DisplayCurrency(*req.DisplayCurrency)
		upd.DisplayCurrency = &currency
	}
	if req.RiskProfile != nil {
		profile := model.RiskProfile(*req.RiskProfile)
		upd.RiskProfile = &profile
	}

	settings, err := h.settingsService.Update(upd)
	if err != nil {
		if errors.Is(err, service.ErrEncryptionUnavailable) {
			response.RespondError(w, http.StatusConflict, "cannot store API key", err.Error())
			return
		}
		respondServiceError(w, "failed to update settings", err)
		return
	}

	if req.UpdateIntervalMinutes != nil && h.scheduler != nil {
		interval := time.Duration(settings.UpdateIntervalMinutes) * time.Minute
		if err := h.scheduler.Reschedule(interval); err != nil {
			respondServiceError(w, "failed to reschedule refresh", err)
			return
		}
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
