package repositories

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// OpeningBalanceReader defines read operations for opening balances
type OpeningBalanceReader interface {
	// FindOpeningBalanceByID retrieves an opening balance by ID.
	FindOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error)

	// FindOpeningBalance retrieves the zero-point of a branch/currency pair.
	FindOpeningBalance(ctx context.Context, branchID, currencyCode string) (*domain.OpeningBalance, error)

	// ListOpeningBalances retrieves all opening balances, optionally for one branch.
	ListOpeningBalances(ctx context.Context, branchID *string) ([]domain.OpeningBalance, error)
}

// OpeningBalanceWriter defines write operations for opening balances
type OpeningBalanceWriter interface {
	// SaveOpeningBalanceWithSeed atomically inserts the opening balance row
	// and its mirrored opening-seed transaction. A second row for the same
	// pair fails with ErrDuplicate.
	SaveOpeningBalanceWithSeed(ctx context.Context, ob domain.OpeningBalance, seed domain.Transaction) error

	// UpdateOpeningBalanceWithSeed atomically rewrites the amount and date of
	// both the opening balance and its seed transaction. Callers must check
	// that no non-opening transactions exist for the pair first.
	UpdateOpeningBalanceWithSeed(ctx context.Context, ob domain.OpeningBalance) error
}

// OpeningBalanceRepositoryFacade combines all opening balance repository interfaces
type OpeningBalanceRepositoryFacade interface {
	OpeningBalanceReader
	OpeningBalanceWriter
}

// OpeningBalanceRepositoryWithTx extends the facade with transaction capabilities
type OpeningBalanceRepositoryWithTx interface {
	OpeningBalanceRepositoryFacade
	TransactionManager
}
