package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/ledger_app/internal/core/ports/services"
	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
	"github.com/bookkeepr/ledger_app/internal/utils/mapping"
)

// accountService provides account creation and lookup over a repository.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	registry        *domain.CurrencyRegistry
	defaultCurrency string
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, registry *domain.CurrencyRegistry, defaultCurrency string) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		registry:        registry,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*models.Account, error) {
	accountType := models.AccountType(req.AccountType)

	// An explicit currency selects Money mode; omitting it creates a
	// number-mode account tagged with the configured default currency.
	moneyMode := req.CurrencyCode != ""
	currency := req.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	initial, err := domain.NewMoneyFromDecimal(req.InitialBalance, currency, domain.WithRegistry(s.registry))
	if err != nil {
		return nil, err
	}
	if initial.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance %s", apperrors.ErrNegativeAmount, initial)
	}

	account, err := domain.AccountFromSnapshot(domain.AccountSnapshot{
		Name:          req.Name,
		Balance:       initial.Decimal(),
		CurrencyCode:  currency,
		DebitPositive: domain.AccountType(accountType).DebitPositive(),
		MoneyMode:     moneyMode,
	}, domain.WithRegistry(s.registry))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	model := mapping.ToModelAccount(uuid.NewString(), account, accountType, models.AuditFields{
		CreatedAt:     now,
		LastUpdatedAt: now,
	})

	if err := s.accountRepo.SaveAccount(ctx, model); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &model, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListParams) ([]models.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	return nil
}
