package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
	"github.com/bookkeepr/ledger_app/internal/models"
)

const transactionColumns = `transaction_id, journal_id, account_id, amount, transaction_type, currency_code, created_at, last_updated_at`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal persists a committed journal, its lines and the refreshed
// account balances inside one database transaction. The touched account rows
// are locked in sorted ID order before any balance is written.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal models.Journal, lines []models.Transaction, accounts []models.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	journalQuery := `
		INSERT INTO journals (journal_id, journal_date, description, committed, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, journalQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Description,
		journal.Committed,
		journal.CreatedAt,
		journal.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	accountIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.AccountID)
	}
	sort.Strings(accountIDs)

	if _, err := r.accountRepo.findAccountsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (transaction_id, journal_id, account_id, amount, transaction_type, currency_code, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range lines {
		batch.Queue(txnQuery,
			line.TransactionID,
			line.JournalID,
			line.AccountID,
			line.Amount,
			line.TransactionType,
			line.CurrencyCode,
			line.CreatedAt,
			line.LastUpdatedAt,
		)
	}
	balanceQuery := `UPDATE accounts SET balance = $2, last_updated_at = $3 WHERE account_id = $1;`
	for _, account := range accounts {
		batch.Queue(balanceQuery, account.AccountID, account.Balance, account.LastUpdatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute batch for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a specific journal by its unique identifier.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*models.Journal, error) {
	query := `SELECT journal_id, journal_date, description, committed, created_at, last_updated_at FROM journals WHERE journal_id = $1;`
	var journal models.Journal
	err := r.Pool.QueryRow(ctx, query, journalID).Scan(
		&journal.JournalID,
		&journal.JournalDate,
		&journal.Description,
		&journal.Committed,
		&journal.CreatedAt,
		&journal.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	return &journal, nil
}

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var txn models.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.JournalID,
		&txn.AccountID,
		&txn.Amount,
		&txn.TransactionType,
		&txn.CurrencyCode,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	return txn, err
}

// FindTransactionsByJournalID retrieves the lines of a journal in insertion order.
func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE journal_id = $1 ORDER BY created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, nil
}

// ListJournals retrieves journals ordered by date, newest first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit, offset int) ([]models.Journal, error) {
	query := `
		SELECT journal_id, journal_date, description, committed, created_at, last_updated_at
		FROM journals
		ORDER BY journal_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Journal, error) {
		var journal models.Journal
		err := row.Scan(
			&journal.JournalID,
			&journal.JournalDate,
			&journal.Description,
			&journal.Committed,
			&journal.CreatedAt,
			&journal.LastUpdatedAt,
		)
		return journal, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journals: %w", err)
	}
	return journals, nil
}

// ListTransactionsByAccountID retrieves all lines affecting one account.
func (r *PgxJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY created_at, transaction_id LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, nil
}
