package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is the serializable snapshot of a ledger account. Balance is stored
// at display precision together with the currency code, which is enough to
// reconstruct an equivalent live account.
type Account struct {
	AccountID     string          `json:"accountID" db:"account_id"`
	Name          string          `json:"name" db:"name"`
	AccountType   AccountType     `json:"accountType" db:"account_type"`
	CurrencyCode  string          `json:"currencyCode" db:"currency_code"`
	DebitPositive bool            `json:"debitPositive" db:"debit_positive"`
	MoneyMode     bool            `json:"moneyMode" db:"money_mode"` // representation mode, fixed at construction
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	AuditFields
}
