package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/ledger_app/internal/core/ports/services"
	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
	"github.com/bookkeepr/ledger_app/internal/utils/mapping"
)

// currencyService keeps the in-process currency registry and the persisted
// currency records in step: registrations go to both, lookups prefer the
// persisted record and fall back to the registry's built-ins.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	registry     *domain.CurrencyRegistry
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, registry *domain.CurrencyRegistry) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo, registry: registry}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*models.Currency, error) {
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
	}
	if err := s.registry.Register(currency); err != nil {
		return nil, err
	}

	now := time.Now()
	model := mapping.ToModelCurrency(currency, models.AuditFields{CreatedAt: now, LastUpdatedAt: now})
	if err := s.currencyRepo.SaveCurrency(ctx, model); err != nil {
		return nil, fmt.Errorf("failed to save currency %s: %w", req.CurrencyCode, err)
	}
	return &model, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err == nil {
		return currency, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	if !s.registry.Known(currencyCode) {
		return nil, fmt.Errorf("currency %s: %w", currencyCode, apperrors.ErrNotFound)
	}
	builtin := s.registry.Lookup(currencyCode)
	model := mapping.ToModelCurrency(builtin, models.AuditFields{})
	return &model, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	persisted, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}

	seen := make(map[string]struct{}, len(persisted))
	out := make([]models.Currency, 0, len(persisted))
	for _, c := range persisted {
		seen[c.CurrencyCode] = struct{}{}
		out = append(out, c)
	}
	for _, c := range s.registry.List() {
		if _, ok := seen[c.CurrencyCode]; ok {
			continue
		}
		out = append(out, mapping.ToModelCurrency(c, models.AuditFields{}))
	}
	return out, nil
}
