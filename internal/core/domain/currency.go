package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
)

// DefaultPrecision is the display precision used for currency codes that are
// not present in a registry.
const DefaultPrecision = 2

// Currency describes a supported currency and its display configuration.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // display decimal places, e.g., 2 for USD, 0 for JPY
}

// CurrencyRegistry maps currency codes to their display configuration.
// Lookups for unknown codes fall back to a generic 2-decimal entry instead of
// failing, so the registry can never block a monetary operation.
type CurrencyRegistry struct {
	mu         sync.RWMutex
	currencies map[string]Currency
}

// NewCurrencyRegistry creates an empty registry. Most callers want
// DefaultRegistry instead; an empty registry is useful for test isolation.
func NewCurrencyRegistry() *CurrencyRegistry {
	return &CurrencyRegistry{currencies: make(map[string]Currency)}
}

// Register adds or replaces a currency definition.
func (r *CurrencyRegistry) Register(c Currency) error {
	code := strings.ToUpper(strings.TrimSpace(c.CurrencyCode))
	if len(code) != 3 {
		return fmt.Errorf("%w: currency code must be 3 letters, got %q", apperrors.ErrValidation, c.CurrencyCode)
	}
	if c.Precision < 0 || c.Precision > maxInternalScale {
		return fmt.Errorf("%w: currency precision must be between 0 and %d", apperrors.ErrValidation, maxInternalScale)
	}
	c.CurrencyCode = code
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[code] = c
	return nil
}

// Lookup returns the configuration for a currency code. Unknown codes get a
// generic entry with DefaultPrecision decimals.
func (r *CurrencyRegistry) Lookup(code string) Currency {
	code = strings.ToUpper(code)
	r.mu.RLock()
	c, ok := r.currencies[code]
	r.mu.RUnlock()
	if !ok {
		return Currency{CurrencyCode: code, Name: code, Precision: DefaultPrecision}
	}
	return c
}

// Known reports whether a currency code has been registered.
func (r *CurrencyRegistry) Known(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[strings.ToUpper(code)]
	return ok
}

// Precision returns the display precision for a currency code.
func (r *CurrencyRegistry) Precision(code string) int32 {
	return int32(r.Lookup(code).Precision)
}

// List returns all registered currencies ordered by code.
func (r *CurrencyRegistry) List() []Currency {
	r.mu.RLock()
	out := make([]Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out
}

var builtinCurrencies = []Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	{CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling", Precision: 2},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2},
	{CurrencyCode: "CAD", Symbol: "$", Name: "Canadian Dollar", Precision: 2},
	{CurrencyCode: "AUD", Symbol: "$", Name: "Australian Dollar", Precision: 2},
	{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", Precision: 2},
	{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan", Precision: 2},
	{CurrencyCode: "KWD", Symbol: "د.ك", Name: "Kuwaiti Dinar", Precision: 3},
	{CurrencyCode: "BHD", Symbol: ".د.ب", Name: "Bahraini Dinar", Precision: 3},
	{CurrencyCode: "ETH", Symbol: "Ξ", Name: "Ether", Precision: 18},
}

var (
	defaultRegistry     *CurrencyRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared process-wide registry, seeded with the
// built-in currencies. Callers may Register additional codes at startup.
func DefaultRegistry() *CurrencyRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewCurrencyRegistry()
		for _, c := range builtinCurrencies {
			// Built-ins are statically valid, Register cannot fail here.
			_ = defaultRegistry.Register(c)
		}
	})
	return defaultRegistry
}
