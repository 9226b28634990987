package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
)

// AccountSnapshot is the plain serializable form of an Account: everything a
// persistence adapter needs to store and later reconstruct an equivalent live
// account. Unlike construction, a snapshot balance may be negative — an
// account balance can legitimately go below zero through normal debits and
// credits after creation.
type AccountSnapshot struct {
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currency"`
	DebitPositive bool            `json:"debitPositive"`
	MoneyMode     bool            `json:"moneyMode"`
}

// Snapshot produces the serializable form of the account.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		Name:          a.name,
		Balance:       a.balance.Decimal(),
		CurrencyCode:  a.CurrencyCode(),
		DebitPositive: a.debitPositive,
		MoneyMode:     a.mode == moneyMode,
	}
}

// AccountFromSnapshot reconstructs a live account from its serializable form.
func AccountFromSnapshot(s AccountSnapshot, opts ...MoneyOption) (*Account, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	balance, err := NewMoneyFromDecimal(s.Balance, s.CurrencyCode, opts...)
	if err != nil {
		return nil, err
	}
	mode := numberMode
	if s.MoneyMode {
		mode = moneyMode
	}
	return &Account{name: s.Name, mode: mode, balance: balance, debitPositive: s.DebitPositive}, nil
}

// JournalSnapshot is the plain serializable form of a JournalEntry.
type JournalSnapshot struct {
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Committed   bool            `json:"committed"`
	Entries     []EntrySnapshot `json:"entries"`
}

// EntrySnapshot is the serializable form of one entry line. The account is
// referenced by name; persistence adapters typically substitute their own
// account identifier.
type EntrySnapshot struct {
	AccountName string          `json:"account"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Type        TransactionType `json:"type"`
}

// Snapshot produces the serializable form of the journal entry, with amounts
// at display precision.
func (e *JournalEntry) Snapshot() JournalSnapshot {
	entries := make([]EntrySnapshot, len(e.lines))
	for i, line := range e.lines {
		entries[i] = EntrySnapshot{
			AccountName: e.accountName(line.Account),
			Amount:      line.Amount.Rounded(),
			Currency:    line.Amount.CurrencyCode(),
			Type:        line.Type,
		}
	}
	return JournalSnapshot{
		Description: e.description,
		Date:        e.date.Format(time.RFC3339),
		Committed:   e.committed,
		Entries:     entries,
	}
}
