package services

import (
	"context"

	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// AccountReaderSvc defines read operations for accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account snapshot.
	GetAccountByID(ctx context.Context, accountID string) (*models.Account, error)

	// ListAccounts retrieves account snapshots.
	ListAccounts(ctx context.Context, params dto.ListParams) ([]models.Account, error)
}

// AccountWriterSvc defines write operations for accounts.
type AccountWriterSvc interface {
	// CreateAccount creates a new account from the request.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*models.Account, error)

	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
