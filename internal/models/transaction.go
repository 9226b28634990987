package models

import "github.com/shopspring/decimal"

// TransactionType indicates whether a journal line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is the serializable snapshot of one journal entry line.
type Transaction struct {
	TransactionID   string          `json:"transactionID" db:"transaction_id"`
	JournalID       string          `json:"journalID" db:"journal_id"`
	AccountID       string          `json:"accountID" db:"account_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	TransactionType TransactionType `json:"transactionType" db:"transaction_type"`
	CurrencyCode    string          `json:"currencyCode" db:"currency_code"`
	AuditFields
}
