package services

import (
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service over the given repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, registry *domain.CurrencyRegistry, defaultCurrency string) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos.Accounts(), registry, defaultCurrency),
		Journal:  NewJournalService(repos.Journals(), repos.Accounts(), registry),
		Currency: NewCurrencyService(repos.Currencies(), registry),
	}
}
