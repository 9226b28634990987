package domain

import "time"

// TransactionType indicates whether an entry line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Valid reports whether t is one of the two recognized entry kinds.
func (t TransactionType) Valid() bool {
	return t == Debit || t == Credit
}

// BalanceHolder is the capability contract a journal entry requires of an
// account: it must accept debits and credits and expose its balance. Account
// satisfies it; so does any caller-defined account-like type.
type BalanceHolder interface {
	Debit(amount Money) error
	Credit(amount Money) error
	Balance() Money
}

// EntryLine is a single debit or credit against one account within a journal
// entry. The line holds an ownership-free reference: the account must outlive
// the entry for commit to be meaningful.
type EntryLine struct {
	Account BalanceHolder
	Amount  Money
	Type    TransactionType
}

// EntryDetail is a read-only projection of an entry line together with its
// journal entry's date and description.
type EntryDetail struct {
	AccountName string          `json:"accountName"`
	Amount      Money           `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}
