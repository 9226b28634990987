package domain

import (
	"fmt"
	"strings"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
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

// DebitPositive reports whether a debit increases balances of this type.
// Assets and expenses grow on the debit side; the other types grow on credit.
func (t AccountType) DebitPositive() bool {
	return t == Asset || t == Expense
}

// Valid reports whether t is one of the five recognized account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// DefaultCurrencyCode tags number-mode accounts that do not specify a
// currency. Wiring code may override it at process start.
var DefaultCurrencyCode = "USD"

type balanceMode int

const (
	numberMode balanceMode = iota
	moneyMode
)

// Account is a named balance register with a fixed debit/credit polarity.
//
// The representation mode (plain number vs Money) is fixed at construction
// and only affects how the balance reads back; in both modes every debit and
// credit runs through Money's exact scaled-integer arithmetic, so number-mode
// accounts are equally immune to float drift.
//
// Balance is the one piece of mutable state in the model. Account itself is
// not safe for concurrent mutation; callers embedding it in a concurrent host
// must serialize debits and credits (the ledger service does this with
// per-account locks).
type Account struct {
	name          string
	mode          balanceMode
	balance       Money
	debitPositive bool
}

type accountConfig struct {
	currency string
	reg      *CurrencyRegistry
}

// AccountOption customizes number-mode account construction.
type AccountOption func(*accountConfig)

// WithAccountCurrency overrides the currency a number-mode account uses for
// its internal arithmetic. Defaults to DefaultCurrencyCode.
func WithAccountCurrency(code string) AccountOption {
	return func(c *accountConfig) { c.currency = code }
}

// WithAccountRegistry injects the currency registry for the account's
// internal Money arithmetic.
func WithAccountRegistry(reg *CurrencyRegistry) AccountOption {
	return func(c *accountConfig) { c.reg = reg }
}

// NewAccount creates an account in number mode: the balance reads back as a
// plain number via BalanceValue.
func NewAccount(name string, initialBalance float64, debitPositive bool, opts ...AccountOption) (*Account, error) {
	cfg := accountConfig{currency: DefaultCurrencyCode}
	for _, opt := range opts {
		opt(&cfg)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if initialBalance < 0 {
		return nil, fmt.Errorf("%w: initial balance %v", apperrors.ErrNegativeAmount, initialBalance)
	}
	balance, err := NewMoney(initialBalance, cfg.currency, WithRegistry(cfg.reg))
	if err != nil {
		return nil, err
	}
	return &Account{name: name, mode: numberMode, balance: balance, debitPositive: debitPositive}, nil
}

// NewAccountWithMoney creates an account in Money mode: the balance reads
// back as a Money and operands must match its currency.
func NewAccountWithMoney(name string, initialBalance Money, debitPositive bool) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance %s", apperrors.ErrNegativeAmount, initialBalance)
	}
	if initialBalance.CurrencyCode() == "" {
		return nil, fmt.Errorf("%w: initial balance must carry a currency", apperrors.ErrValidation)
	}
	return &Account{name: name, mode: moneyMode, balance: initialBalance, debitPositive: debitPositive}, nil
}

// NewTypedAccount creates a number-mode account whose polarity is fixed by
// the account type. The type carries no other behavior.
func NewTypedAccount(t AccountType, name string, initialBalance float64, opts ...AccountOption) (*Account, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, t)
	}
	return NewAccount(name, initialBalance, t.DebitPositive(), opts...)
}

// NewTypedAccountWithMoney is NewTypedAccount for Money-mode accounts.
func NewTypedAccountWithMoney(t AccountType, name string, initialBalance Money) (*Account, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, t)
	}
	return NewAccountWithMoney(name, initialBalance, t.DebitPositive())
}

// NewAssetAccount creates a debit-positive number-mode account.
func NewAssetAccount(name string, initialBalance float64, opts ...AccountOption) (*Account, error) {
	return NewAccount(name, initialBalance, true, opts...)
}

// NewLiabilityAccount creates a credit-positive number-mode account.
func NewLiabilityAccount(name string, initialBalance float64, opts ...AccountOption) (*Account, error) {
	return NewAccount(name, initialBalance, false, opts...)
}

// NewEquityAccount creates a credit-positive number-mode account.
func NewEquityAccount(name string, initialBalance float64, opts ...AccountOption) (*Account, error) {
	return NewAccount(name, initialBalance, false, opts...)
}

// NewIncomeAccount creates a credit-positive number-mode account.
func NewIncomeAccount(name string, initialBalance float64, opts ...AccountOption) (*Account, error) {
	return NewAccount(name, initialBalance, false, opts...)
}

// NewExpenseAccount creates a debit-positive number-mode account.
func NewExpenseAccount(name string, initialBalance float64, opts ...AccountOption) (*Account, error) {
	return NewAccount(name, initialBalance, true, opts...)
}

// Name returns the account's name.
func (a *Account) Name() string {
	return a.name
}

// CurrencyCode returns the account's effective currency.
func (a *Account) CurrencyCode() string {
	return a.balance.CurrencyCode()
}

// DebitPositive returns the account's polarity flag.
func (a *Account) DebitPositive() bool {
	return a.debitPositive
}

// MoneyMode reports whether the account was constructed with a Money balance.
func (a *Account) MoneyMode() bool {
	return a.mode == moneyMode
}

// Debit applies a debit: the balance grows when the account is
// debit-positive and shrinks otherwise.
func (a *Account) Debit(amount Money) error {
	return a.apply(amount, a.debitPositive)
}

// Credit applies a credit: the inverse of Debit.
func (a *Account) Credit(amount Money) error {
	return a.apply(amount, !a.debitPositive)
}

// DebitValue debits a plain number, promoted to Money at the account's
// currency before any arithmetic.
func (a *Account) DebitValue(value float64) error {
	amount, err := a.promoteValue(value)
	if err != nil {
		return err
	}
	return a.Debit(amount)
}

// CreditValue credits a plain number, promoted like DebitValue.
func (a *Account) CreditValue(value float64) error {
	amount, err := a.promoteValue(value)
	if err != nil {
		return err
	}
	return a.Credit(amount)
}

// Balance returns the balance as a Money.
func (a *Account) Balance() Money {
	return a.balance
}

// BalanceValue returns the balance as a plain number at display precision —
// the native read for number-mode accounts.
func (a *Account) BalanceValue() float64 {
	return a.balance.Float64()
}

func (a *Account) promoteValue(value float64) (Money, error) {
	if value < 0 {
		return Money{}, fmt.Errorf("%w: %v", apperrors.ErrNegativeAmount, value)
	}
	return a.balance.promote(value)
}

func (a *Account) apply(amount Money, adds bool) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", apperrors.ErrNegativeAmount, amount)
	}
	if amount.CurrencyCode() != a.CurrencyCode() {
		return fmt.Errorf("%w: account %q holds %s, amount is %s",
			apperrors.ErrCurrencyMismatch, a.name, a.CurrencyCode(), amount.CurrencyCode())
	}
	var (
		next Money
		err  error
	)
	if adds {
		next, err = a.balance.Add(amount)
	} else {
		next, err = a.balance.Subtract(amount)
	}
	if err != nil {
		return err
	}
	a.balance = next
	return nil
}
