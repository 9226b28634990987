// Package memory provides an in-process repository adapter backed by maps.
// It implements the same ports as the pgsql adapter and is used when no
// database is configured, and by tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// Provider is an in-memory implementation of repositories.RepositoryProvider.
type Provider struct {
	mu           sync.RWMutex
	accounts     map[string]models.Account
	journals     map[string]models.Journal
	journalOrder []string
	transactions map[string][]models.Transaction // keyed by journal ID, insertion order
	currencies   map[string]models.Currency
}

// NewProvider creates an empty in-memory repository provider.
func NewProvider() *Provider {
	return &Provider{
		accounts:     make(map[string]models.Account),
		journals:     make(map[string]models.Journal),
		transactions: make(map[string][]models.Transaction),
		currencies:   make(map[string]models.Currency),
	}
}

var _ portsrepo.RepositoryProvider = (*Provider)(nil)

func (p *Provider) Accounts() portsrepo.AccountRepositoryFacade {
	return (*accountRepository)(p)
}

func (p *Provider) Journals() portsrepo.JournalRepositoryFacade {
	return (*journalRepository)(p)
}

func (p *Provider) Currencies() portsrepo.CurrencyRepositoryFacade {
	return (*currencyRepository)(p)
}

type accountRepository Provider

func (r *accountRepository) FindAccountByID(_ context.Context, accountID string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &account, nil
}

func (r *accountRepository) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.Account, len(accountIDs))
	for _, id := range accountIDs {
		account, ok := r.accounts[id]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
		out[id] = account
	}
	return out, nil
}

func (r *accountRepository) ListAccounts(_ context.Context, limit, offset int) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		all = append(all, account)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *accountRepository) SaveAccount(_ context.Context, account models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.AccountID] = account
	return nil
}

func (r *accountRepository) DeleteAccount(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[accountID]; !ok {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	delete(r.accounts, accountID)
	return nil
}

type journalRepository Provider

func (r *journalRepository) FindJournalByID(_ context.Context, journalID string) (*models.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	journal, ok := r.journals[journalID]
	if !ok {
		return nil, fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}
	return &journal, nil
}

func (r *journalRepository) FindTransactionsByJournalID(_ context.Context, journalID string) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.journals[journalID]; !ok {
		return nil, fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}
	txns := r.transactions[journalID]
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	return out, nil
}

func (r *journalRepository) ListJournals(_ context.Context, limit, offset int) ([]models.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]models.Journal, 0, len(r.journalOrder))
	for _, id := range r.journalOrder {
		all = append(all, r.journals[id])
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].JournalDate.After(all[j].JournalDate) })
	return paginate(all, limit, offset), nil
}

func (r *journalRepository) ListTransactionsByAccountID(_ context.Context, accountID string, limit, offset int) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []models.Transaction
	for _, journalID := range r.journalOrder {
		for _, txn := range r.transactions[journalID] {
			if txn.AccountID == accountID {
				all = append(all, txn)
			}
		}
	}
	return paginate(all, limit, offset), nil
}

func (r *journalRepository) SaveJournal(_ context.Context, journal models.Journal, lines []models.Transaction, accounts []models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.journals[journal.JournalID]; ok {
		return fmt.Errorf("journal %s: %w", journal.JournalID, apperrors.ErrDuplicate)
	}
	r.journals[journal.JournalID] = journal
	r.journalOrder = append(r.journalOrder, journal.JournalID)
	stored := make([]models.Transaction, len(lines))
	copy(stored, lines)
	r.transactions[journal.JournalID] = stored
	for _, account := range accounts {
		r.accounts[account.AccountID] = account
	}
	return nil
}

type currencyRepository Provider

func (r *currencyRepository) FindCurrencyByCode(_ context.Context, currencyCode string) (*models.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	currency, ok := r.currencies[strings.ToUpper(currencyCode)]
	if !ok {
		return nil, fmt.Errorf("currency %s: %w", currencyCode, apperrors.ErrNotFound)
	}
	return &currency, nil
}

func (r *currencyRepository) ListCurrencies(_ context.Context) ([]models.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]models.Currency, 0, len(r.currencies))
	for _, currency := range r.currencies {
		all = append(all, currency)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CurrencyCode < all[j].CurrencyCode })
	return all, nil
}

func (r *currencyRepository) SaveCurrency(_ context.Context, currency models.Currency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[strings.ToUpper(currency.CurrencyCode)] = currency
	return nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]T, end-offset)
	copy(out, all[offset:end])
	return out
}
