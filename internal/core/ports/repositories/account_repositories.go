package repositories

import (
	"context"

	"github.com/bookkeepr/ledger_app/internal/models"
)

// AccountReader defines read operations for account snapshots.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*models.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// fail with ErrNotFound.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]models.Account, error)

	// ListAccounts retrieves accounts ordered by name.
	ListAccounts(ctx context.Context, limit, offset int) ([]models.Account, error)
}

// AccountWriter defines write operations for account snapshots.
type AccountWriter interface {
	// SaveAccount inserts or updates an account snapshot.
	SaveAccount(ctx context.Context, account models.Account) error

	// DeleteAccount removes an account snapshot.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
