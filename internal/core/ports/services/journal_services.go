package services

import (
	"context"

	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// JournalReaderSvc defines read operations for journals.
type JournalReaderSvc interface {
	// GetJournalWithTransactions retrieves a journal and its lines.
	GetJournalWithTransactions(ctx context.Context, journalID string) (*models.Journal, []models.Transaction, error)

	// ListJournals retrieves journal snapshots, newest first.
	ListJournals(ctx context.Context, params dto.ListParams) ([]models.Journal, error)

	// ListTransactionsByAccount retrieves the lines affecting one account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListParams) ([]models.Transaction, error)
}

// JournalWriterSvc defines write operations for journals.
type JournalWriterSvc interface {
	// PostJournal builds a journal entry from the request, commits it against
	// the referenced accounts and persists the result atomically.
	PostJournal(ctx context.Context, req dto.CreateJournalRequest) (*models.Journal, []models.Transaction, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
