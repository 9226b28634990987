// Package moneyutils provides stateless algorithms over collections of Money
// values: aggregation, remainder-safe distribution, percentage calculations
// and display-string parsing.
package moneyutils

import (
	"fmt"
	"strings"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
)

// Sum folds the values with Add. An empty slice yields zero of
// defaultCurrency; mixed currencies fail with ErrCurrencyMismatch.
func Sum(values []domain.Money, defaultCurrency string) (domain.Money, error) {
	return domain.SumMoney(values, defaultCurrency)
}

// SumValues lifts plain numbers into Money of the given currency and sums
// them with exact arithmetic.
func SumValues(values []float64, currencyCode string) (domain.Money, error) {
	total := domain.ZeroMoney(currencyCode)
	for _, v := range values {
		m, err := domain.NewMoney(v, currencyCode)
		if err != nil {
			return domain.Money{}, err
		}
		total, err = total.Add(m)
		if err != nil {
			return domain.Money{}, err
		}
	}
	return total, nil
}

// Average returns the arithmetic mean of the values.
func Average(values []domain.Money) (domain.Money, error) {
	if len(values) == 0 {
		return domain.Money{}, fmt.Errorf("%w: average of no values", apperrors.ErrEmptyCollection)
	}
	total, err := domain.SumMoney(values, values[0].CurrencyCode())
	if err != nil {
		return domain.Money{}, err
	}
	return total.Divide(float64(len(values)))
}

// Min returns the smallest value.
func Min(values []domain.Money) (domain.Money, error) {
	if len(values) == 0 {
		return domain.Money{}, fmt.Errorf("%w: min of no values", apperrors.ErrEmptyCollection)
	}
	min := values[0]
	for _, v := range values[1:] {
		less, err := v.LessThan(min)
		if err != nil {
			return domain.Money{}, err
		}
		if less {
			min = v
		}
	}
	return min, nil
}

// Max returns the largest value.
func Max(values []domain.Money) (domain.Money, error) {
	if len(values) == 0 {
		return domain.Money{}, fmt.Errorf("%w: max of no values", apperrors.ErrEmptyCollection)
	}
	max := values[0]
	for _, v := range values[1:] {
		greater, err := v.GreaterThan(max)
		if err != nil {
			return domain.Money{}, err
		}
		if greater {
			max = v
		}
	}
	return max, nil
}

// Distribute splits total into n parts that sum back to total exactly, with
// no display unit lost to rounding. Each part differs from total/n by at most
// one display unit; the earliest parts absorb the remainder.
func Distribute(total domain.Money, n int) ([]domain.Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cannot distribute into %d parts", apperrors.ErrValidation, n)
	}

	cents := total.Cents()
	quotient := cents / int64(n)
	remainder := cents % int64(n)
	if remainder < 0 {
		remainder += int64(n)
		quotient--
	}

	currency := total.CurrencyCode()
	reg := total.Registry()
	parts := make([]domain.Money, n)
	for i := range parts {
		c := quotient
		if int64(i) < remainder {
			c++
		}
		part, err := domain.MoneyFromCents(c, currency, domain.WithRegistry(reg))
		if err != nil {
			return nil, err
		}
		parts[i] = part
	}
	return parts, nil
}

// Percentage returns pct percent of the value, e.g. Percentage(m, 15) for 15%.
func Percentage(m domain.Money, pct float64) (domain.Money, error) {
	return m.Multiply(pct / 100)
}

// Tax computes the tax amount at the given percent rate.
func Tax(m domain.Money, ratePct float64) (domain.Money, error) {
	return Percentage(m, ratePct)
}

// WithTax returns the value plus tax at the given percent rate.
func WithTax(m domain.Money, ratePct float64) (domain.Money, error) {
	tax, err := Tax(m, ratePct)
	if err != nil {
		return domain.Money{}, err
	}
	return m.Add(tax)
}

// ApplyDiscount returns both the discount amount and the discounted final
// value, so callers never re-derive one from the other.
func ApplyDiscount(m domain.Money, pct float64) (discount, final domain.Money, err error) {
	discount, err = Percentage(m, pct)
	if err != nil {
		return domain.Money{}, domain.Money{}, err
	}
	final, err = m.Subtract(discount)
	if err != nil {
		return domain.Money{}, domain.Money{}, err
	}
	return discount, final, nil
}

// Round re-scales a value to an explicit decimal count, independent of the
// currency's display precision. Rounds half away from zero.
func Round(m domain.Money, decimals int32) (domain.Money, error) {
	opts := []domain.MoneyOption{domain.WithRegistry(m.Registry())}
	if decimals > domain.MinInternalScale {
		opts = append(opts, domain.WithScale(decimals))
	}
	return domain.NewMoneyFromDecimal(m.Decimal().Round(decimals), m.CurrencyCode(), opts...)
}

// symbolCurrencies maps well-known currency symbols to their codes for Parse.
var symbolCurrencies = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
}

// Parse extracts a monetary value from display text such as "$1,234.56",
// "EUR 99.95" or "42.00 USD". A recognized symbol or 3-letter code (prefix or
// suffix) selects the currency; otherwise defaultCurrency applies.
func Parse(text string, defaultCurrency string) (domain.Money, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return domain.Money{}, fmt.Errorf("%w: empty input", apperrors.ErrParse)
	}

	currency := defaultCurrency
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	}

	if code, rest, ok := cutCurrencyCode(s); ok {
		currency = code
		s = rest
	} else {
		for symbol, code := range symbolCurrencies {
			if strings.HasPrefix(s, symbol) {
				currency = code
				s = strings.TrimPrefix(s, symbol)
				break
			}
			if strings.HasSuffix(s, symbol) {
				currency = code
				s = strings.TrimSuffix(s, symbol)
				break
			}
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if negative {
		s = "-" + s
	}

	m, err := domain.NewMoneyFromString(s, currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: %q", apperrors.ErrParse, text)
	}
	return m, nil
}

// cutCurrencyCode strips a leading or trailing 3-letter currency code.
func cutCurrencyCode(s string) (code, rest string, ok bool) {
	if len(s) > 3 && isAlpha3(s[:3]) && !isLetter(s[3]) {
		return strings.ToUpper(s[:3]), strings.TrimSpace(s[3:]), true
	}
	if len(s) > 3 && isAlpha3(s[len(s)-3:]) && !isLetter(s[len(s)-4]) {
		return strings.ToUpper(s[len(s)-3:]), strings.TrimSpace(s[:len(s)-3]), true
	}
	return "", s, false
}

func isAlpha3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
