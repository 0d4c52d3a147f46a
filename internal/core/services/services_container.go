package services

import (
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	audit := NewSlogAuditRecorder()

	// Period service first: the ledger-facing services gate on it.
	container.Period = NewPeriodService(repos.PeriodRepo)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Branch = NewBranchService(repos.BranchRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.TransferRepo, repos.BranchRepo, repos.CurrencyRepo, container.Period, audit)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.TransactionRepo, repos.BranchRepo, repos.CurrencyRepo, container.Period, audit)
	container.OpeningBalance = NewOpeningBalanceService(repos.OpeningBalanceRepo, repos.TransactionRepo, repos.BranchRepo, repos.CurrencyRepo, audit)
	container.Approval = NewApprovalService(repos.TransactionRepo, container.Period, audit)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.BranchRepo)

	return container
}
