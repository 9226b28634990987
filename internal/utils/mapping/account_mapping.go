package mapping

import (
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// ToModelAccount converts a live domain account to its persisted snapshot.
func ToModelAccount(accountID string, a *domain.Account, accountType models.AccountType, audit models.AuditFields) models.Account {
	s := a.Snapshot()
	return models.Account{
		AccountID:     accountID,
		Name:          s.Name,
		AccountType:   accountType,
		CurrencyCode:  s.CurrencyCode,
		DebitPositive: s.DebitPositive,
		MoneyMode:     s.MoneyMode,
		Balance:       s.Balance,
		AuditFields:   audit,
	}
}

// ToDomainAccount reconstructs a live account from its persisted snapshot.
func ToDomainAccount(m models.Account, opts ...domain.MoneyOption) (*domain.Account, error) {
	return domain.AccountFromSnapshot(domain.AccountSnapshot{
		Name:          m.Name,
		Balance:       m.Balance,
		CurrencyCode:  m.CurrencyCode,
		DebitPositive: m.DebitPositive,
		MoneyMode:     m.MoneyMode,
	}, opts...)
}
