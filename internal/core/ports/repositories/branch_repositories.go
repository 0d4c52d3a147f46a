package repositories

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// BranchReader defines read operations for branch reference data
type BranchReader interface {
	// FindBranchByID retrieves a branch by its ID.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// FindBranchByCode retrieves a branch by its unique short code.
	FindBranchByCode(ctx context.Context, code string) (*domain.Branch, error)

	// ListBranches retrieves all branches, optionally only active ones.
	ListBranches(ctx context.Context, onlyActive bool) ([]domain.Branch, error)
}

// BranchWriter defines write operations for branch reference data
type BranchWriter interface {
	// SaveBranch persists a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// UpdateBranch updates a branch. Code changes are rejected by the
	// service layer once the branch is referenced by transactions.
	UpdateBranch(ctx context.Context, branch domain.Branch) error
}

// BranchRepositoryFacade combines all branch repository interfaces
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}

// BranchRepositoryWithTx extends the facade with transaction capabilities
type BranchRepositoryWithTx interface {
	BranchRepositoryFacade
	TransactionManager
}
