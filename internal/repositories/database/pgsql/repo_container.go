package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bookkeepr/ledger_app/internal/core/ports/repositories"
)

type repositoryProvider struct {
	accountRepo  *PgxAccountRepository
	journalRepo  *PgxJournalRepository
	currencyRepo *PgxCurrencyRepository
}

// NewRepositoryProvider wires the pgsql repositories over one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	return &repositoryProvider{
		accountRepo:  accountRepo,
		journalRepo:  newPgxJournalRepository(dbPool, accountRepo),
		currencyRepo: newPgxCurrencyRepository(dbPool),
	}
}

func (p *repositoryProvider) Accounts() portsrepo.AccountRepositoryFacade {
	return p.accountRepo
}

func (p *repositoryProvider) Journals() portsrepo.JournalRepositoryFacade {
	return p.journalRepo
}

func (p *repositoryProvider) Currencies() portsrepo.CurrencyRepositoryFacade {
	return p.currencyRepo
}
