package repositories

import (
	"context"

	"github.com/bookkeepr/ledger_app/internal/models"
)

// CurrencyReader defines read operations for currency data.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its 3-letter code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)

	// ListCurrencies retrieves all persisted currencies.
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

// CurrencyWriter defines write operations for currency data.
type CurrencyWriter interface {
	// SaveCurrency inserts or updates a currency.
	SaveCurrency(ctx context.Context, currency models.Currency) error
}

// CurrencyRepositoryFacade combines all currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
