package testutil

import (
	"database/sql"
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
)

func NewTestCurrencyService(t *testing.T, db *sql.DB, fx service.FXProvider) *service.CurrencyService {
	t.Helper()

	fxRepo := repository.NewExchangeRateRepository(db)

	return service.NewCurrencyService(fx, fxRepo)
}

func NewTestPriceService(
	t *testing.T,
	db *sql.DB,
	equity service.EquityQuoteProvider,
	crypto service.CryptoQuoteProvider,
	fx service.FXProvider,
) *service.PriceService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	priceRepo := repository.NewPriceHistoryRepository(db)
	fxRepo := repository.NewExchangeRateRepository(db)

	return service.NewPriceService(
		service.NewQuoteCache(),
		service.NewCurrencyService(fx, fxRepo),
		equity,
		crypto,
		fx,
		assetRepo,
		priceRepo,
		fxRepo,
	)
}

func NewTestValuationService(
	t *testing.T,
	db *sql.DB,
	equity *StubEquityProvider,
	crypto *StubCryptoProvider,
	fx *StubFXProvider,
) *service.ValuationService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	fxRepo := repository.NewExchangeRateRepository(db)
	currencyService := service.NewCurrencyService(fx, fxRepo)
	priceService := NewTestPriceService(t, db, equity, crypto, fx)
	costBasisService := service.NewCostBasisService(equity)

	return service.NewValuationService(priceService, currencyService, costBasisService, assetRepo)
}

func NewTestSnapshotService(
	t *testing.T,
	db *sql.DB,
	equity *StubEquityProvider,
	crypto *StubCryptoProvider,
	fx *StubFXProvider,
) *service.SnapshotService {
	t.Helper()

	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewSnapshotService(NewTestValuationService(t, db, equity, crypto, fx), snapshotRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	return service.NewTransactionService(db, transactionRepo, assetRepo)
}

func NewTestSettingsService(t *testing.T, db *sql.DB, fernetKey string) *service.SettingsService {
	t.Helper()

	settingsRepo := repository.NewSettingsRepository(db)

	settingsService, err := service.NewSettingsService(settingsRepo, fernetKey, nil)
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return settingsService
}
