package repositories

// RepositoryProvider bundles the repository facades an adapter implements, so
// wiring code can swap whole persistence backends in one place.
type RepositoryProvider interface {
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Currencies() CurrencyRepositoryFacade
}
