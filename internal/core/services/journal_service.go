package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
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

// accountLocker hands out one mutex per account ID so concurrent postings
// touching the same accounts are serialized. Locks are always acquired in
// sorted ID order to avoid deadlocks between overlapping postings.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocker) lockFor(accountID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountID] = lock
	}
	return lock
}

// lockAll acquires the locks for all given IDs and returns the release func.
func (l *accountLocker) lockAll(accountIDs []string) func() {
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		lock := l.lockFor(id)
		lock.Lock()
		held = append(held, lock)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// journalService posts balanced journal entries against ledger accounts.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	registry    *domain.CurrencyRegistry
	locker      *accountLocker
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, registry *domain.CurrencyRegistry) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		registry:    registry,
		locker:      newAccountLocker(),
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostJournal loads the referenced accounts, replays the requested lines
// against them and commits the whole entry. Either every balance moves or
// none does; the committed state is then persisted in a single write.
func (s *journalService) PostJournal(ctx context.Context, req dto.CreateJournalRequest) (*models.Journal, []models.Transaction, error) {
	accountIDs := uniqueAccountIDs(req.Lines)
	if len(accountIDs) == 0 {
		return nil, nil, fmt.Errorf("%w: journal has no lines", apperrors.ErrEmptyJournalEntry)
	}

	unlock := s.locker.lockAll(accountIDs)
	defer unlock()

	snapshots, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidAccountReference, err)
		}
		return nil, nil, fmt.Errorf("failed to load accounts for journal: %w", err)
	}

	live := make(map[string]*domain.Account, len(snapshots))
	for id, snap := range snapshots {
		account, err := mapping.ToDomainAccount(snap, domain.WithRegistry(s.registry))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to restore account %s: %w", id, err)
		}
		live[id] = account
	}

	var entryOpts []domain.JournalEntryOption
	if req.Date != nil {
		entryOpts = append(entryOpts, domain.WithDate(*req.Date))
	}
	entry, err := domain.NewJournalEntry(req.Description, entryOpts...)
	if err != nil {
		return nil, nil, err
	}

	for i, line := range req.Lines {
		account := live[line.AccountID]
		snap := snapshots[line.AccountID]
		currency := line.CurrencyCode
		if currency == "" {
			currency = snap.CurrencyCode
		}
		amount, err := domain.NewMoneyFromDecimal(line.Amount, currency, domain.WithRegistry(s.registry))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount on line %d: %w", i, err)
		}
		if err := entry.AddEntry(account, amount, domain.TransactionType(line.Type)); err != nil {
			return nil, nil, fmt.Errorf("invalid journal line %d: %w", i, err)
		}
	}

	if err := entry.Commit(); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	audit := models.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	journal := models.Journal{
		JournalID:   uuid.NewString(),
		JournalDate: entry.Date(),
		Description: req.Description,
		Committed:   true,
		AuditFields: audit,
	}

	lines := make([]models.Transaction, 0, len(req.Lines))
	for _, line := range req.Lines {
		snap := snapshots[line.AccountID]
		currency := line.CurrencyCode
		if currency == "" {
			currency = snap.CurrencyCode
		}
		amount, _ := domain.NewMoneyFromDecimal(line.Amount, currency, domain.WithRegistry(s.registry))
		lines = append(lines, models.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journal.JournalID,
			AccountID:       line.AccountID,
			Amount:          amount.Rounded(),
			TransactionType: models.TransactionType(line.Type),
			CurrencyCode:    currency,
			AuditFields:     audit,
		})
	}

	updated := make([]models.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		snap := snapshots[id]
		snap.Balance = live[id].Snapshot().Balance
		snap.LastUpdatedAt = now
		updated = append(updated, snap)
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines, updated); err != nil {
		return nil, nil, fmt.Errorf("failed to save journal: %w", err)
	}
	return &journal, lines, nil
}

func (s *journalService) GetJournalWithTransactions(ctx context.Context, journalID string) (*models.Journal, []models.Transaction, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get journal %s: %w", journalID, err)
	}
	txns, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get transactions for journal %s: %w", journalID, err)
	}
	return journal, txns, nil
}

func (s *journalService) ListJournals(ctx context.Context, params dto.ListParams) ([]models.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		journals = []models.Journal{}
	}
	return journals, nil
}

func (s *journalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListParams) ([]models.Transaction, error) {
	txns, err := s.journalRepo.ListTransactionsByAccountID(ctx, accountID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

func uniqueAccountIDs(lines []dto.CreateJournalLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	return ids
}
