package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
)

// JournalEntry is an atomic, two-phase transaction builder: lines accumulate
// against one or more accounts while the entry is open, then a single Commit
// validates the balance invariant and applies every line as one unit.
//
// The entry has exactly two states, open and committed, and the transition is
// one-way. A committed entry is an immutable historical record.
type JournalEntry struct {
	description string
	date        time.Time
	lines       []EntryLine
	committed   bool
}

type journalEntryConfig struct {
	date time.Time
}

// JournalEntryOption customizes journal entry construction.
type JournalEntryOption func(*journalEntryConfig)

// WithDate overrides the entry date, which defaults to creation time.
func WithDate(date time.Time) JournalEntryOption {
	return func(c *journalEntryConfig) { c.date = date }
}

// NewJournalEntry creates an open journal entry.
func NewJournalEntry(description string, opts ...JournalEntryOption) (*JournalEntry, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: journal entry description is required", apperrors.ErrValidation)
	}
	cfg := journalEntryConfig{date: time.Now()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &JournalEntry{description: description, date: cfg.date}, nil
}

// Description returns the entry's description.
func (e *JournalEntry) Description() string {
	return e.description
}

// Date returns the entry's date.
func (e *JournalEntry) Date() time.Time {
	return e.date
}

// Committed reports whether the entry has been committed.
func (e *JournalEntry) Committed() bool {
	return e.committed
}

// Lines returns a copy of the accumulated entry lines in insertion order.
func (e *JournalEntry) Lines() []EntryLine {
	out := make([]EntryLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// AddEntry appends a debit or credit line. Valid only while the entry is
// open; every check runs before the line is appended, so a failed call leaves
// the entry unchanged.
func (e *JournalEntry) AddEntry(account BalanceHolder, amount Money, entryType TransactionType) error {
	if e.committed {
		return apperrors.ErrAlreadyCommitted
	}
	if account == nil {
		return apperrors.ErrInvalidAccountReference
	}
	if !entryType.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidEntryType, entryType)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", apperrors.ErrNegativeAmount, amount)
	}
	e.lines = append(e.lines, EntryLine{Account: account, Amount: amount, Type: entryType})
	return nil
}

// AddEntryValue appends a line from a plain number, promoted to Money at the
// account's currency.
func (e *JournalEntry) AddEntryValue(account BalanceHolder, value float64, entryType TransactionType) error {
	if e.committed {
		return apperrors.ErrAlreadyCommitted
	}
	if account == nil {
		return apperrors.ErrInvalidAccountReference
	}
	if value < 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrNegativeAmount, value)
	}
	amount, err := account.Balance().promote(value)
	if err != nil {
		return err
	}
	return e.AddEntry(account, amount, entryType)
}

// DebitTotal sums the debit lines at display precision. The total is a bare
// number, not a Money: balance checking is deliberately currency-agnostic
// (currency compatibility is enforced against each account at commit time).
func (e *JournalEntry) DebitTotal() decimal.Decimal {
	return e.total(Debit)
}

// CreditTotal sums the credit lines at display precision.
func (e *JournalEntry) CreditTotal() decimal.Decimal {
	return e.total(Credit)
}

func (e *JournalEntry) total(entryType TransactionType) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range e.lines {
		if line.Type == entryType {
			sum = sum.Add(line.Amount.Rounded())
		}
	}
	return sum
}

// IsBalanced reports whether debit and credit totals are equal at display
// precision. Comparing after display rounding is a deliberate tolerance:
// sub-cent drift from chained multiplications must not block an otherwise
// correct entry.
func (e *JournalEntry) IsBalanced() bool {
	return e.DebitTotal().Equal(e.CreditTotal())
}

// Commit validates the entry and applies every line to its account as a
// single unit, then seals the entry.
//
// Application is two-pass: every line's currency is checked against its
// account before any balance mutates. If applying a line still fails (an
// amount that overflows the account's scaled representation), the lines
// already applied are reversed, so a failed Commit leaves every balance
// unchanged.
func (e *JournalEntry) Commit() error {
	if e.committed {
		return apperrors.ErrAlreadyCommitted
	}
	if len(e.lines) == 0 {
		return fmt.Errorf("%w: no lines", apperrors.ErrEmptyJournalEntry)
	}
	hasDebit, hasCredit := false, false
	for _, line := range e.lines {
		switch line.Type {
		case Debit:
			hasDebit = true
		case Credit:
			hasCredit = true
		}
	}
	if !hasDebit {
		return fmt.Errorf("%w: missing debit side", apperrors.ErrEmptyJournalEntry)
	}
	if !hasCredit {
		return fmt.Errorf("%w: missing credit side", apperrors.ErrEmptyJournalEntry)
	}

	debits, credits := e.DebitTotal(), e.CreditTotal()
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debit total %s, credit total %s", apperrors.ErrUnbalancedEntry, debits, credits)
	}

	for _, line := range e.lines {
		accountCurrency := line.Account.Balance().CurrencyCode()
		if line.Amount.CurrencyCode() != accountCurrency {
			return fmt.Errorf("%w: line amount is %s, account %q holds %s",
				apperrors.ErrCurrencyMismatch, line.Amount.CurrencyCode(), e.accountName(line.Account), accountCurrency)
		}
	}

	for i, line := range e.lines {
		var err error
		if line.Type == Debit {
			err = line.Account.Debit(line.Amount)
		} else {
			err = line.Account.Credit(line.Amount)
		}
		if err != nil {
			e.reverseApplied(i)
			return fmt.Errorf("applying %s of %s to account %q: %w", line.Type, line.Amount, e.accountName(line.Account), err)
		}
	}

	e.committed = true
	return nil
}

// reverseApplied undoes the first n lines in reverse order. Each inverse
// operation restores a balance the account previously held, so it cannot fail.
func (e *JournalEntry) reverseApplied(n int) {
	for i := n - 1; i >= 0; i-- {
		line := e.lines[i]
		if line.Type == Debit {
			_ = line.Account.Credit(line.Amount)
		} else {
			_ = line.Account.Debit(line.Amount)
		}
	}
}

// Details produces a fresh read-only snapshot of every line added so far, in
// insertion order, regardless of commit state.
func (e *JournalEntry) Details() []EntryDetail {
	details := make([]EntryDetail, len(e.lines))
	for i, line := range e.lines {
		details[i] = EntryDetail{
			AccountName: e.accountName(line.Account),
			Amount:      line.Amount,
			Type:        line.Type,
			Date:        e.date,
			Description: e.description,
		}
	}
	return details
}

func (e *JournalEntry) accountName(account BalanceHolder) string {
	if named, ok := account.(interface{ Name() string }); ok {
		return named.Name()
	}
	return ""
}
