package service

import (
	"log"
	"sync"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// FallbackUsdAmdRate is the documented last-resort USD→AMD rate, used only
// when no rate has ever been obtained from the FX provider or the persisted
// rate history and a figure is needed for immediate display. It is never
// written into historical records.
const FallbackUsdAmdRate = 390.0

// fxCacheTTL is how long the cached base USD→AMD rate stays fresh before a
// refetch is attempted.
const fxCacheTTL = 24 * time.Hour

// CurrencyService resolves amounts between currencies using the freshest
// available rate. A conversion that cannot be resolved is reported as absent;
// callers must treat that leg of value as unknown, not zero.
type CurrencyService struct {
	fx     FXProvider
	fxRepo *repository.ExchangeRateRepository

	mu         sync.Mutex
	usdAmdRate float64
	usdAmdAt   time.Time

	now func() time.Time
}

// NewCurrencyService creates a CurrencyService backed by the given FX
// provider and persisted rate history.
func NewCurrencyService(fx FXProvider, fxRepo *repository.ExchangeRateRepository) *CurrencyService {
	return &CurrencyService{
		fx:     fx,
		fxRepo: fxRepo,
		now:    time.Now,
	}
}

// UsdAmdRate returns the USD→AMD rate used for the secondary display
// currency. Resolution order: the in-memory rate when fresher than 24 hours;
// a live provider fetch; the last in-memory rate even if stale; the most
// recent persisted rate; and finally FallbackUsdAmdRate.
func (s *CurrencyService) UsdAmdRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usdAmdRate > 0 && s.now().Sub(s.usdAmdAt) < fxCacheTTL {
		return s.usdAmdRate
	}

	rates, err := s.fx.Rates("USD")
	if err != nil {
		log.Printf("FX provider unavailable for USD rates: %v", err)
	}
	if rate, ok := rates["AMD"]; ok && rate > 0 {
		s.usdAmdRate = rate
		s.usdAmdAt = s.now()
		return rate
	}

	// Stale in-memory rate beats the hardcoded constant.
	if s.usdAmdRate > 0 {
		return s.usdAmdRate
	}

	if persisted, err := s.fxRepo.Latest("USD", "AMD"); err == nil && persisted != nil && persisted.Rate > 0 {
		s.usdAmdRate = persisted.Rate
		s.usdAmdAt = s.now()
		return persisted.Rate
	}

	return FallbackUsdAmdRate
}

// RateToUsd returns how many USD one unit of currency is worth.
// Reports false when no rate is obtainable.
func (s *CurrencyService) RateToUsd(currency string) (float64, bool) {
	if currency == "USD" {
		return 1, true
	}

	rates, err := s.fx.Rates(currency)
	if err != nil {
		log.Printf("FX provider unavailable for %s rates: %v", currency, err)
		return 0, false
	}

	rate, ok := rates["USD"]
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// Convert resolves amount from one currency into another.
// Reports false when no rate is obtainable; a failed conversion means that
// leg of value is unknown.
func (s *CurrencyService) Convert(amount float64, from, to string) (float64, bool) {
	if from == to {
		return amount, true
	}

	rates, err := s.fx.Rates(from)
	if err != nil {
		log.Printf("FX provider unavailable for %s rates: %v", from, err)
		return 0, false
	}

	rate, ok := rates[to]
	if !ok || rate <= 0 {
		return 0, false
	}
	return amount * rate, true
}
