package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
)

// MinInternalScale is the minimum number of decimal digits Money keeps
// internally. The extra digits absorb rounding drift across chained
// multiply/divide operations. Currencies whose display precision exceeds it
// raise the internal scale to match at construction.
const MinInternalScale = 6

// maxInternalScale bounds the scale so 10^scale still fits in an int64.
const maxInternalScale = 18

var pow10 = [maxInternalScale + 1]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000,
	10_000_000, 100_000_000, 1_000_000_000, 10_000_000_000,
	100_000_000_000, 1_000_000_000_000, 10_000_000_000_000,
	100_000_000_000_000, 1_000_000_000_000_000, 10_000_000_000_000_000,
	100_000_000_000_000_000, 1_000_000_000_000_000_000,
}

// Money is an immutable, currency-tagged monetary value stored as an exact
// scaled integer: amount counts units of 10^-scale. No float ever represents
// a stored amount; floats appear only at construction and at display reads.
//
// All conversions that drop digits round half away from zero (the semantics
// of decimal.Round).
type Money struct {
	amount   int64
	scale    int32
	currency string
	reg      *CurrencyRegistry // nil means DefaultRegistry
}

type moneyConfig struct {
	scale int32
	reg   *CurrencyRegistry
}

// MoneyOption customizes Money construction.
type MoneyOption func(*moneyConfig)

// WithScale forces a higher internal scale than MinInternalScale.
func WithScale(scale int32) MoneyOption {
	return func(c *moneyConfig) { c.scale = scale }
}

// WithRegistry injects the currency registry consulted for display precision.
// Defaults to the shared DefaultRegistry.
func WithRegistry(reg *CurrencyRegistry) MoneyOption {
	return func(c *moneyConfig) { c.reg = reg }
}

// NewMoneyFromDecimal constructs a Money from an exact decimal value.
// This is the core constructor; the float64 and string forms delegate here.
func NewMoneyFromDecimal(value decimal.Decimal, currencyCode string, opts ...MoneyOption) (Money, error) {
	cfg := moneyConfig{scale: MinInternalScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if currencyCode == "" {
		return Money{}, fmt.Errorf("%w: currency code is required", apperrors.ErrValidation)
	}
	if cfg.scale < MinInternalScale {
		cfg.scale = MinInternalScale
	}
	reg := cfg.reg
	if reg == nil {
		reg = DefaultRegistry()
	}
	// The internal scale must cover the display precision, or Rounded and
	// Cents would read digits the stored amount never held.
	if prec := reg.Precision(currencyCode); prec > cfg.scale {
		cfg.scale = prec
	}
	if cfg.scale > maxInternalScale {
		return Money{}, fmt.Errorf("%w: scale %d exceeds maximum %d", apperrors.ErrValidation, cfg.scale, maxInternalScale)
	}

	scaled := value.Shift(cfg.scale).Round(0)
	amount, err := decimalToInt64(scaled)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, scale: cfg.scale, currency: currencyCode, reg: cfg.reg}, nil
}

// NewMoney constructs a Money from a float64 value.
func NewMoney(value float64, currencyCode string, opts ...MoneyOption) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, value)
	}
	return NewMoneyFromDecimal(decimal.NewFromFloat(value), currencyCode, opts...)
}

// NewMoneyFromString constructs a Money from a decimal string such as "12.34".
func NewMoneyFromString(text string, currencyCode string, opts ...MoneyOption) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, text)
	}
	return NewMoneyFromDecimal(d, currencyCode, opts...)
}

// ZeroMoney returns a zero value in the given currency.
func ZeroMoney(currencyCode string, opts ...MoneyOption) Money {
	m, _ := NewMoneyFromDecimal(decimal.Zero, currencyCode, opts...)
	return m
}

// MoneyFromCents constructs a Money from an integer count of the currency's
// smallest display unit (cents for USD, yen for JPY).
func MoneyFromCents(cents int64, currencyCode string, opts ...MoneyOption) (Money, error) {
	cfg := moneyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reg := cfg.reg
	if reg == nil {
		reg = DefaultRegistry()
	}
	prec := reg.Precision(currencyCode)
	return NewMoneyFromDecimal(decimal.New(cents, -prec), currencyCode, opts...)
}

// MustMoney is NewMoney that panics on error. Intended for static amounts in
// tests and examples.
func MustMoney(value float64, currencyCode string, opts ...MoneyOption) Money {
	m, err := NewMoney(value, currencyCode, opts...)
	if err != nil {
		panic(fmt.Sprintf("domain.MustMoney(%v, %q): %v", value, currencyCode, err))
	}
	return m
}

// SumMoney adds all values. An empty slice yields zero of defaultCurrency;
// mixed currencies fail with ErrCurrencyMismatch.
func SumMoney(values []Money, defaultCurrency string, opts ...MoneyOption) (Money, error) {
	if len(values) == 0 {
		return ZeroMoney(defaultCurrency, opts...), nil
	}
	total := values[0]
	for _, v := range values[1:] {
		var err error
		total, err = total.Add(v)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// CurrencyCode returns the ISO-4217-like currency code.
func (m Money) CurrencyCode() string {
	return m.currency
}

// Scale returns the internal scale (decimal digits of internal precision).
func (m Money) Scale() int32 {
	return m.scale
}

// Decimal returns the exact internal value as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -m.scale)
}

func (m Money) registry() *CurrencyRegistry {
	if m.reg != nil {
		return m.reg
	}
	return DefaultRegistry()
}

// Registry returns the currency registry this value consults for display
// precision.
func (m Money) Registry() *CurrencyRegistry {
	return m.registry()
}

// DisplayPrecision returns the currency's display decimal count.
func (m Money) DisplayPrecision() int32 {
	return m.registry().Precision(m.currency)
}

// Rounded returns the value rounded to the currency's display precision.
func (m Money) Rounded() decimal.Decimal {
	return m.Decimal().Round(m.DisplayPrecision())
}

// Float64 converts the value to a plain number at display precision. This is
// the only read path that produces a float; internal state stays integral.
func (m Money) Float64() float64 {
	f, _ := m.Rounded().Float64()
	return f
}

// Cents returns the value as an integer count of the currency's smallest
// display unit, rounded half away from zero.
func (m Money) Cents() int64 {
	return m.Rounded().Shift(m.DisplayPrecision()).IntPart()
}

// Add returns m + other. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.guardCurrency(other); err != nil {
		return Money{}, err
	}
	a, b, scale, err := alignScales(m, other)
	if err != nil {
		return Money{}, err
	}
	sum, err := addInt64(a, b)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: sum, scale: scale, currency: m.currency, reg: m.reg}, nil
}

// Subtract returns m - other. Currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	return m.Add(other.Negate())
}

// Multiply returns m scaled by a plain factor (e.g., a tax rate), rounded
// half away from zero at the internal scale. The single rounding step bounds
// the precision loss a float factor can introduce.
func (m Money) Multiply(factor float64) (Money, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Money{}, fmt.Errorf("%w: factor %v", apperrors.ErrInvalidAmount, factor)
	}
	product := m.Decimal().Mul(decimal.NewFromFloat(factor))
	return NewMoneyFromDecimal(product, m.currency, WithScale(m.scale), WithRegistry(m.reg))
}

// Divide returns m divided by a plain divisor, rounded half away from zero at
// the internal scale.
func (m Money) Divide(divisor float64) (Money, error) {
	if divisor == 0 {
		return Money{}, apperrors.ErrDivisionByZero
	}
	if math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return Money{}, fmt.Errorf("%w: divisor %v", apperrors.ErrInvalidAmount, divisor)
	}
	quotient := m.Decimal().DivRound(decimal.NewFromFloat(divisor), m.scale)
	return NewMoneyFromDecimal(quotient, m.currency, WithScale(m.scale), WithRegistry(m.reg))
}

// Negate returns the value with its sign flipped.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, scale: m.scale, currency: m.currency, reg: m.reg}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m.amount < 0 {
		return m.Negate()
	}
	return m
}

// Equals reports exact value equality. Values at different internal scales
// compare equal when they denote the same real value.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.Decimal().Equal(other.Decimal())
}

// GreaterThan reports m > other. Currencies must match.
func (m Money) GreaterThan(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp > 0, err
}

// LessThan reports m < other. Currencies must match.
func (m Money) LessThan(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp < 0, err
}

// GreaterOrEqual reports m >= other. Currencies must match.
func (m Money) GreaterOrEqual(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp >= 0, err
}

// LessOrEqual reports m <= other. Currencies must match.
func (m Money) LessOrEqual(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp <= 0, err
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// String renders "<CODE> <amount>" at display precision, e.g. "USD 12.35".
func (m Money) String() string {
	return m.currency + " " + m.Rounded().StringFixed(m.DisplayPrecision())
}

// Format renders a locale-aware currency string with the registry symbol,
// e.g. "$1,234.56". Unsupported locales fall back to the en-US convention.
func (m Money) Format(locale string) string {
	cur := m.registry().Lookup(m.currency)
	symbol := cur.Symbol
	if symbol == "" {
		symbol = m.currency + " "
	}

	group, point := ",", "."
	switch strings.ToLower(locale) {
	case "de-de", "es-es", "it-it", "nl-nl", "pt-br":
		group, point = ".", ","
	case "fr-fr":
		// French grouping uses a no-break space.
		group, point = "\u00a0", ","
	}

	fixed := m.Rounded().Abs().StringFixed(m.DisplayPrecision())
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	if m.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(digit)
	}
	if hasFrac {
		b.WriteString(point)
		b.WriteString(fracPart)
	}
	return b.String()
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON serializes as {"amount": ..., "currency": ...} at full internal
// precision, so snapshots round-trip losslessly.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Decimal(), Currency: m.currency})
}

// UnmarshalJSON reconstructs a Money from its snapshot form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux moneyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parsed, err := NewMoneyFromDecimal(aux.Amount, aux.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) guardCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func (m Money) compare(other Money) (int, error) {
	if err := m.guardCurrency(other); err != nil {
		return 0, err
	}
	return m.Decimal().Cmp(other.Decimal()), nil
}

// promote lifts a plain number into this value's currency, scale and registry.
func (m Money) promote(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, value)
	}
	return NewMoneyFromDecimal(decimal.NewFromFloat(value), m.currency, WithScale(m.scale), WithRegistry(m.reg))
}

// alignScales rescales both amounts to the larger of the two scales using
// exact integer multiplication.
func alignScales(a, b Money) (int64, int64, int32, error) {
	scale := a.scale
	if b.scale > scale {
		scale = b.scale
	}
	av, err := rescaleInt64(a.amount, a.scale, scale)
	if err != nil {
		return 0, 0, 0, err
	}
	bv, err := rescaleInt64(b.amount, b.scale, scale)
	if err != nil {
		return 0, 0, 0, err
	}
	return av, bv, scale, nil
}

func rescaleInt64(amount int64, from, to int32) (int64, error) {
	if from == to {
		return amount, nil
	}
	factor := pow10[to-from]
	if amount > math.MaxInt64/factor || amount < math.MinInt64/factor {
		return 0, fmt.Errorf("%w: rescaling %d from scale %d to %d", apperrors.ErrRangeExceeded, amount, from, to)
	}
	return amount * factor, nil
}

func addInt64(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %d + %d", apperrors.ErrRangeExceeded, a, b)
	}
	return sum, nil
}

func decimalToInt64(integral decimal.Decimal) (int64, error) {
	if !integral.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrRangeExceeded, integral.String())
	}
	return integral.IntPart(), nil
}
