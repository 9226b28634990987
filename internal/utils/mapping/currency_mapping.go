package mapping

import (
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// ToDomainCurrency converts a persisted currency to its registry form.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    m.Precision,
	}
}

// ToModelCurrency converts a registry currency to its persisted form.
func ToModelCurrency(c domain.Currency, audit models.AuditFields) models.Currency {
	return models.Currency{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
		AuditFields:  audit,
	}
}
