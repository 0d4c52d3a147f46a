package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo       CurrencyRepositoryFacade
	BranchRepo         BranchRepositoryFacade
	TransactionRepo    TransactionRepositoryFacade
	TransferRepo       TransferRepositoryFacade
	OpeningBalanceRepo OpeningBalanceRepositoryFacade
	PeriodRepo         PeriodRepositoryFacade
	ReportingRepo      ReportingRepository
}
