package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
)

func TestAccount_DebitPositiveScenario(t *testing.T) {
	// Asset account: debits increase, credits decrease.
	cash, err := domain.NewAccount("Cash", 1000, true)
	require.NoError(t, err)

	require.NoError(t, cash.DebitValue(200))
	assert.Equal(t, 1200.0, cash.BalanceValue())

	require.NoError(t, cash.CreditValue(50))
	assert.Equal(t, 1150.0, cash.BalanceValue())
}

func TestAccount_CreditPositiveScenario(t *testing.T) {
	// Income account: credits increase.
	sales, err := domain.NewIncomeAccount("Sales Revenue", 0)
	require.NoError(t, err)

	require.NoError(t, sales.CreditValue(500))
	assert.Equal(t, 500.0, sales.BalanceValue())

	require.NoError(t, sales.DebitValue(100))
	assert.Equal(t, 400.0, sales.BalanceValue())
}

func TestAccount_ConstructionValidation(t *testing.T) {
	tests := []struct {
		name    string
		make    func() (*domain.Account, error)
		wantErr error
	}{
		{
			name:    "empty name",
			make:    func() (*domain.Account, error) { return domain.NewAccount("  ", 0, true) },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "negative initial balance",
			make:    func() (*domain.Account, error) { return domain.NewAccount("Cash", -1, true) },
			wantErr: apperrors.ErrNegativeAmount,
		},
		{
			name: "negative initial money balance",
			make: func() (*domain.Account, error) {
				return domain.NewAccountWithMoney("Cash", domain.MustMoney(-1, "USD"), true)
			},
			wantErr: apperrors.ErrNegativeAmount,
		},
		{
			name: "unknown typed account",
			make: func() (*domain.Account, error) {
				return domain.NewTypedAccount(domain.AccountType("PHANTOM"), "Cash", 0)
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccount_NegativeAmountsRejected(t *testing.T) {
	cash, err := domain.NewAccount("Cash", 100, true)
	require.NoError(t, err)

	assert.ErrorIs(t, cash.DebitValue(-10), apperrors.ErrNegativeAmount)
	assert.ErrorIs(t, cash.CreditValue(-10), apperrors.ErrNegativeAmount)
	assert.ErrorIs(t, cash.Debit(domain.MustMoney(-10, "USD")), apperrors.ErrNegativeAmount)
	assert.Equal(t, 100.0, cash.BalanceValue(), "balance must be untouched after rejected operations")
}

func TestAccount_MoneyMode(t *testing.T) {
	opening := domain.MustMoney(250.50, "EUR")
	acct, err := domain.NewAccountWithMoney("Bank EUR", opening, true)
	require.NoError(t, err)
	assert.True(t, acct.MoneyMode())
	assert.Equal(t, "EUR", acct.CurrencyCode())

	// Money operand must match the account currency.
	err = acct.Debit(domain.MustMoney(10, "USD"))
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
	assert.True(t, acct.Balance().Equals(opening), "failed debit must not mutate the balance")

	// Plain numbers are promoted at the account currency.
	require.NoError(t, acct.DebitValue(49.50))
	assert.Equal(t, "EUR 300.00", acct.Balance().String())
}

func TestAccount_NumberModeUsesExactArithmetic(t *testing.T) {
	acct, err := domain.NewAccount("Cash", 0.1, true)
	require.NoError(t, err)
	assert.False(t, acct.MoneyMode())

	require.NoError(t, acct.DebitValue(0.2))
	assert.Equal(t, 0.3, acct.BalanceValue(), "number mode still goes through scaled-integer arithmetic")
}

func TestAccountType_Polarity(t *testing.T) {
	tests := []struct {
		accountType   domain.AccountType
		debitPositive bool
	}{
		{domain.Asset, true},
		{domain.Expense, true},
		{domain.Liability, false},
		{domain.Equity, false},
		{domain.Income, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.debitPositive, tt.accountType.DebitPositive())

			acct, err := domain.NewTypedAccount(tt.accountType, "acct", 0)
			require.NoError(t, err)
			assert.Equal(t, tt.debitPositive, acct.DebitPositive())
		})
	}
}

func TestAccount_CustomCurrencyOption(t *testing.T) {
	acct, err := domain.NewAccount("Petty Cash", 1000, true, domain.WithAccountCurrency("JPY"))
	require.NoError(t, err)
	assert.Equal(t, "JPY", acct.CurrencyCode())

	require.NoError(t, acct.CreditValue(300))
	assert.Equal(t, 700.0, acct.BalanceValue())
}
