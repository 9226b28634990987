package services

import (
	"context"

	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// CurrencySvcFacade defines operations for currency registration and lookup.
type CurrencySvcFacade interface {
	// CreateCurrency registers a currency in the process registry and persists it.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*models.Currency, error)

	// GetCurrencyByCode retrieves a currency by its 3-letter code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)

	// ListCurrencies retrieves all persisted currencies.
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}
