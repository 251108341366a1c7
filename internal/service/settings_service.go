package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fernet/fernet-go"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// Settings keys in the settings table.
const (
	settingDisplayCurrency = "display_currency"
	settingUpdateInterval  = "update_interval_minutes"
	settingRiskProfile     = "risk_profile"
	settingCoinGeckoAPIKey = "coingecko_api_key"
)

// Defaults applied when a key is missing.
const (
	defaultDisplayCurrency = model.DisplayUSD
	defaultUpdateInterval  = 30
	defaultRiskProfile     = model.RiskProfileModerate
)

// ErrEncryptionUnavailable indicates an API key cannot be stored because no
// FERNET_KEY is configured.
var ErrEncryptionUnavailable = errors.New("encryption key not configured")

// APIKeyReceiver is notified when the stored provider API key changes.
type APIKeyReceiver interface {
	SetAPIKey(key string)
}

// SettingsUpdate carries a partial settings change; nil fields are left
// untouched.
type SettingsUpdate struct {
	DisplayCurrency       *model.DisplayCurrency `json:"displayCurrency"`
	UpdateIntervalMinutes *int                   `json:"updateIntervalMinutes"`
	RiskProfile           *model.RiskProfile     `json:"riskProfile"`
	CoinGeckoAPIKey       *string                `json:"coinGeckoApiKey"`
}

// SettingsService reads and writes user settings. The CoinGecko API key is
// stored fernet-encrypted and never returned over the API.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	fernetKey    *fernet.Key
	receiver     APIKeyReceiver
}

// NewSettingsService creates a SettingsService. fernetKey may be empty, in
// which case API keys cannot be stored. receiver, when non-nil, is notified
// of API key changes so the quote provider picks them up without a restart.
func NewSettingsService(settingsRepo *repository.SettingsRepository, fernetKey string, receiver APIKeyReceiver) (*SettingsService, error) {
	s := &SettingsService{
		settingsRepo: settingsRepo,
		receiver:     receiver,
	}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid FERNET_KEY: %w", err)
		}
		s.fernetKey = key
	}

	return s, nil
}

// Get returns the current settings, falling back to defaults for missing keys.
func (s *SettingsService) Get() (model.Settings, error) {
	settings := model.Settings{
		DisplayCurrency:       defaultDisplayCurrency,
		UpdateIntervalMinutes: defaultUpdateInterval,
		RiskProfile:           defaultRiskProfile,
	}

	if value, err := s.get(settingDisplayCurrency); err != nil {
		return model.Settings{}, err
	} else if value != "" {
		settings.DisplayCurrency = model.DisplayCurrency(value)
	}

	if value, err := s.get(settingUpdateInterval); err != nil {
		return model.Settings{}, err
	} else if value != "" {
		interval, err := strconv.Atoi(value)
		if err != nil {
			return model.Settings{}, fmt.Errorf("corrupt update interval setting %q: %w", value, err)
		}
		settings.UpdateIntervalMinutes = interval
	}

	if value, err := s.get(settingRiskProfile); err != nil {
		return model.Settings{}, err
	} else if value != "" {
		settings.RiskProfile = model.RiskProfile(value)
	}

	if value, err := s.get(settingCoinGeckoAPIKey); err != nil {
		return model.Settings{}, err
	} else if value != "" {
		settings.HasCoinGeckoAPIKey = true
	}

	return settings, nil
}

// Update applies a partial settings change after validation and returns the
// resulting settings.
func (s *SettingsService) Update(upd SettingsUpdate) (model.Settings, error) {
	if upd.DisplayCurrency != nil {
		if *upd.DisplayCurrency != model.DisplayUSD && *upd.DisplayCurrency != model.DisplayAMD {
			return model.Settings{}, apperrors.ErrMissingRequiredField
		}
		if err := s.settingsRepo.Set(settingDisplayCurrency, string(*upd.DisplayCurrency)); err != nil {
			return model.Settings{}, err
		}
	}

	if upd.UpdateIntervalMinutes != nil {
		if *upd.UpdateIntervalMinutes <= 0 {
			return model.Settings{}, apperrors.ErrInvalidInterval
		}
		if err := s.settingsRepo.Set(settingUpdateInterval, strconv.Itoa(*upd.UpdateIntervalMinutes)); err != nil {
			return model.Settings{}, err
		}
	}

	if upd.RiskProfile != nil {
		if !upd.RiskProfile.IsValid() {
			return model.Settings{}, apperrors.ErrInvalidRiskProfile
		}
		if err := s.settingsRepo.Set(settingRiskProfile, string(*upd.RiskProfile)); err != nil {
			return model.Settings{}, err
		}
	}

	if upd.CoinGeckoAPIKey != nil {
		if err := s.setCoinGeckoAPIKey(*upd.CoinGeckoAPIKey); err != nil {
			return model.Settings{}, err
		}
	}

	return s.Get()
}

// CoinGeckoAPIKey decrypts and returns the stored provider API key, or an
// empty string when none is stored.
func (s *SettingsService) CoinGeckoAPIKey() (string, error) {
	stored, err := s.get(settingCoinGeckoAPIKey)
	if err != nil {
		return "", err
	}
	if stored == "" {
		return "", nil
	}
	if s.fernetKey == nil {
		return "", ErrEncryptionUnavailable
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.fernetKey})
	if plaintext == nil {
		return "", errors.New("stored API key failed verification")
	}

	return string(plaintext), nil
}

func (s *SettingsService) setCoinGeckoAPIKey(key string) error {
	if key == "" {
		if err := s.settingsRepo.Set(settingCoinGeckoAPIKey, ""); err != nil {
			return err
		}
		if s.receiver != nil {
			s.receiver.SetAPIKey("")
		}
		return nil
	}

	if s.fernetKey == nil {
		return ErrEncryptionUnavailable
	}

	token, err := fernet.EncryptAndSign([]byte(key), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	if err := s.settingsRepo.Set(settingCoinGeckoAPIKey, string(token)); err != nil {
		return err
	}

	if s.receiver != nil {
		s.receiver.SetAPIKey(key)
	}

	return nil
}

// get reads a key, mapping "not found" to an empty value.
func (s *SettingsService) get(key string) (string, error) {
	value, err := s.settingsRepo.Get(key)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
