package services

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/dto"
)

// OpeningBalanceReaderSvc defines read operations for opening balances
type OpeningBalanceReaderSvc interface {
	// GetOpeningBalance retrieves the seeded balance for a branch and
	// currency, if one exists.
	GetOpeningBalance(ctx context.Context, branchID, currencyCode string) (*domain.OpeningBalance, error)

	// ListOpeningBalances retrieves all seeded balances, optionally for a
	// single branch.
	ListOpeningBalances(ctx context.Context, branchID *string) ([]domain.OpeningBalance, error)
}

// OpeningBalanceWriterSvc defines write operations for opening balances
type OpeningBalanceWriterSvc interface {
	// SetOpeningBalance seeds the starting cash position of a branch in a
	// currency, creating the mirrored approved opening transaction.
	SetOpeningBalance(ctx context.Context, req dto.SetOpeningBalanceRequest, creatorUserID string) (*domain.OpeningBalance, error)

	// UpdateOpeningBalance corrects a seeded balance. Fails once any
	// non-opening transaction exists for the branch and currency.
	UpdateOpeningBalance(ctx context.Context, openingBalanceID string, req dto.UpdateOpeningBalanceRequest, updaterUserID string) (*domain.OpeningBalance, error)
}

// OpeningBalanceSvcFacade combines all opening-balance service interfaces
type OpeningBalanceSvcFacade interface {
	OpeningBalanceReaderSvc
	OpeningBalanceWriterSvc
}
