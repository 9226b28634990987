package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
	"github.com/bookkeepr/ledger_app/internal/models"
)

const accountColumns = `account_id, name, account_type, currency_code, debit_positive, money_mode, balance, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&account.AccountType,
		&account.CurrencyCode,
		&account.DebitPositive,
		&account.MoneyMode,
		&account.Balance,
		&account.CreatedAt,
		&account.LastUpdatedAt,
	)
	return account, err
}

// SaveAccount inserts or updates an account snapshot.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account models.Account) error {
	query := `
		INSERT INTO accounts (account_id, name, account_type, currency_code, debit_positive, money_mode, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id) DO UPDATE SET
			name = EXCLUDED.name,
			balance = EXCLUDED.balance,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.AccountType,
		account.CurrencyCode,
		account.DebitPositive,
		account.MoneyMode,
		account.Balance,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs fail
// with ErrNotFound.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	out := make(map[string]models.Account, len(accounts))
	for _, account := range accounts {
		out[account.AccountID] = account
	}
	for _, id := range accountIDs {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return out, nil
}

// ListAccounts retrieves accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account snapshot.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}

// findAccountsForUpdate locks the given account rows inside tx.
func (r *PgxAccountRepository) findAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked accounts: %w", err)
	}

	out := make(map[string]models.Account, len(accounts))
	for _, account := range accounts {
		out[account.AccountID] = account
	}
	for _, id := range accountIDs {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return out, nil
}
