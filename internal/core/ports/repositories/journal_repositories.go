package repositories

import (
	"context"

	"github.com/bookkeepr/ledger_app/internal/models"
)

// JournalReader defines read operations for journal snapshots.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*models.Journal, error)

	// FindTransactionsByJournalID retrieves the lines of a journal in insertion order.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]models.Transaction, error)

	// ListJournals retrieves journals ordered by date, newest first.
	ListJournals(ctx context.Context, limit, offset int) ([]models.Journal, error)

	// ListTransactionsByAccountID retrieves all lines affecting one account.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error)
}

// JournalWriter defines write operations for journal snapshots.
type JournalWriter interface {
	// SaveJournal persists a committed journal, its lines and the refreshed
	// account balances as one atomic unit.
	SaveJournal(ctx context.Context, journal models.Journal, lines []models.Transaction, accounts []models.Account) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
