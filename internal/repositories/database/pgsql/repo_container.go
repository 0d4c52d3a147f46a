package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:       newPgxCurrencyRepository(pool),
		BranchRepo:         newPgxBranchRepository(pool),
		TransactionRepo:    newPgxTransactionRepository(pool),
		TransferRepo:       newPgxTransferRepository(pool),
		OpeningBalanceRepo: newPgxOpeningBalanceRepository(pool),
		PeriodRepo:         newPgxPeriodRepository(pool),
		ReportingRepo:      newPgxReportingRepository(pool),
	}
}
