package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency       CurrencySvcFacade
	Branch         BranchSvcFacade
	Transaction    TransactionSvcFacade
	Transfer       TransferSvcFacade
	OpeningBalance OpeningBalanceSvcFacade
	Period         PeriodSvcFacade
	Approval       ApprovalSvcFacade
	Reporting      ReportingService
}
