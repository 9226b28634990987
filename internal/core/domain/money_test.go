package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
)

func TestMoney_ExactAddition(t *testing.T) {
	a := domain.MustMoney(0.1, "USD")
	b := domain.MustMoney(0.2, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 0.3, sum.Float64(), "0.1 + 0.2 must be exactly 0.3, not 0.30000000000000004")
	assert.Equal(t, "USD 0.30", sum.String())
}

func TestMoney_Construction(t *testing.T) {
	tests := []struct {
		name     string
		make     func() (domain.Money, error)
		wantErr  error
		wantStr  string
	}{
		{
			name:    "from float",
			make:    func() (domain.Money, error) { return domain.NewMoney(12.345, "usd") },
			wantStr: "USD 12.35",
		},
		{
			name:    "from string",
			make:    func() (domain.Money, error) { return domain.NewMoneyFromString("12.34", "USD") },
			wantStr: "USD 12.34",
		},
		{
			name:    "from cents",
			make:    func() (domain.Money, error) { return domain.MoneyFromCents(1050, "USD") },
			wantStr: "USD 10.50",
		},
		{
			name:    "from cents zero-decimal currency",
			make:    func() (domain.Money, error) { return domain.MoneyFromCents(500, "JPY") },
			wantStr: "JPY 500",
		},
		{
			name:    "unparseable string",
			make:    func() (domain.Money, error) { return domain.NewMoneyFromString("12.3.4", "USD") },
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "missing currency",
			make:    func() (domain.Money, error) { return domain.NewMoney(1, "") },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "scaled integer overflow",
			make:    func() (domain.Money, error) { return domain.NewMoney(1e15, "USD") },
			wantErr: apperrors.ErrRangeExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.make()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStr, m.String())
		})
	}
}

func TestMoney_RoundsHalfAwayFromZero(t *testing.T) {
	m := domain.MustMoney(0.005, "USD")
	assert.Equal(t, 0.01, m.Float64())

	neg := domain.MustMoney(-0.005, "USD")
	assert.Equal(t, -0.01, neg.Float64())

	// Construction rounds at the internal scale too.
	fine, err := domain.NewMoneyFromString("1.0000005", "USD")
	require.NoError(t, err)
	assert.True(t, fine.Decimal().Equal(decimal.RequireFromString("1.000001")))
}

func TestMoney_CurrencyGuard(t *testing.T) {
	usd := domain.MustMoney(10, "USD")
	eur := domain.MustMoney(10, "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	_, err = usd.Subtract(eur)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	_, err = usd.GreaterThan(eur)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	_, err = usd.LessOrEqual(eur)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestMoney_EqualsIsScaleInsensitive(t *testing.T) {
	a := domain.MustMoney(1.5, "USD")
	b := domain.MustMoney(1.5, "USD", domain.WithScale(10))

	assert.True(t, a.Equals(b))
	assert.True(t, b.Equals(a))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int32(10), sum.Scale(), "addition keeps the larger operand scale")
	assert.Equal(t, 3.0, sum.Float64())
}

func TestMoney_MultiplyDivide(t *testing.T) {
	m := domain.MustMoney(100, "USD")

	tax, err := m.Multiply(0.0825)
	require.NoError(t, err)
	assert.Equal(t, 8.25, tax.Float64())

	third, err := m.Divide(3)
	require.NoError(t, err)
	assert.Equal(t, 33.33, third.Float64())
	assert.True(t, third.Decimal().Equal(decimal.RequireFromString("33.333333")), "internal precision exceeds display precision")

	_, err = m.Divide(0)
	assert.ErrorIs(t, err, apperrors.ErrDivisionByZero)
}

func TestMoney_SignInspection(t *testing.T) {
	m := domain.MustMoney(5, "USD")
	assert.True(t, m.IsPositive())
	assert.False(t, m.IsNegative())
	assert.False(t, m.IsZero())

	n := m.Negate()
	assert.True(t, n.IsNegative())
	assert.Equal(t, -5.0, n.Float64())
	assert.Equal(t, 5.0, n.Abs().Float64())

	assert.True(t, domain.ZeroMoney("USD").IsZero())
}

func TestMoney_SumMoney(t *testing.T) {
	empty, err := domain.SumMoney(nil, "EUR")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
	assert.Equal(t, "EUR", empty.CurrencyCode())

	values := []domain.Money{
		domain.MustMoney(1.11, "USD"),
		domain.MustMoney(2.22, "USD"),
		domain.MustMoney(3.33, "USD"),
	}
	total, err := domain.SumMoney(values, "USD")
	require.NoError(t, err)
	assert.Equal(t, 6.66, total.Float64())

	mixed := append(values, domain.MustMoney(1, "EUR"))
	_, err = domain.SumMoney(mixed, "USD")
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		name   string
		money  domain.Money
		locale string
		want   string
	}{
		{"en-US default", domain.MustMoney(1234.56, "USD"), "en-US", "$1,234.56"},
		{"unknown locale falls back", domain.MustMoney(1234.56, "USD"), "xx-XX", "$1,234.56"},
		{"de-DE", domain.MustMoney(1234.56, "EUR"), "de-DE", "€1.234,56"},
		{"fr-FR", domain.MustMoney(1234.56, "EUR"), "fr-FR", "€1\u00a0234,56"},
		{"zero-decimal currency", domain.MustMoney(1234.56, "JPY"), "en-US", "¥1,235"},
		{"negative", domain.MustMoney(-1234.56, "USD"), "en-US", "-$1,234.56"},
		{"unknown currency uses code", domain.MustMoney(9.5, "XXX"), "en-US", "XXX 9.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.money.Format(tt.locale))
		})
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := domain.MustMoney(1234.56, "USD")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.56","currency":"USD"}`, string(data))

	var back domain.Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equals(back))
}

func TestMoney_RegistryInjection(t *testing.T) {
	reg := domain.NewCurrencyRegistry()
	require.NoError(t, reg.Register(domain.Currency{CurrencyCode: "XTS", Symbol: "#", Name: "Test Code", Precision: 3}))

	m, err := domain.NewMoney(1.23456, "XTS", domain.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, "XTS 1.235", m.String())
	assert.Equal(t, 1.235, m.Float64())

	// The same value against the default registry displays with 2 decimals.
	fallback := domain.MustMoney(1.23456, "XTS")
	assert.Equal(t, "XTS 1.23", fallback.String())
}

func TestMoney_HighPrecisionCurrency(t *testing.T) {
	// ETH displays 18 decimals, so the internal scale rises above the minimum.
	one := domain.MustMoney(1, "ETH")
	assert.Equal(t, int32(18), one.Scale())
	assert.Equal(t, int64(1_000_000_000_000_000_000), one.Cents())

	back, err := domain.MoneyFromCents(one.Cents(), "ETH")
	require.NoError(t, err)
	assert.True(t, back.Equals(one))

	sum, err := one.Add(domain.MustMoney(2.5, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, "ETH 3.500000000000000000", sum.String())

	// Ten ETH at 18 decimals no longer fits the scaled representation.
	_, err = domain.NewMoney(10, "ETH")
	assert.ErrorIs(t, err, apperrors.ErrRangeExceeded)
}

func TestCurrencyRegistry_Fallback(t *testing.T) {
	reg := domain.DefaultRegistry()

	unknown := reg.Lookup("ZZZ")
	assert.Equal(t, "ZZZ", unknown.CurrencyCode)
	assert.Equal(t, 2, unknown.Precision)
	assert.False(t, reg.Known("ZZZ"))

	assert.Equal(t, int32(0), reg.Precision("JPY"))
	assert.Equal(t, int32(2), reg.Precision("USD"))

	err := reg.Register(domain.Currency{CurrencyCode: "TOOLONG", Precision: 2})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = reg.Register(domain.Currency{CurrencyCode: "XPR", Precision: 19})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "precision beyond the internal scale ceiling is rejected")
}
