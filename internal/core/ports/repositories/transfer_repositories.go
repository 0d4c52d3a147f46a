package repositories

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// TransferListFilter narrows branch transfer listings.
type TransferListFilter struct {
	Status       *domain.TransactionStatus
	CurrencyCode *string
	// Search matches the description substring.
	Search *string
}

// TransferReader defines read operations for branch transfers
type TransferReader interface {
	// FindTransferByID retrieves a transfer by ID.
	FindTransferByID(ctx context.Context, branchTransferID string) (*domain.BranchTransfer, error)

	// ListTransfers retrieves a filtered page using token pagination.
	ListTransfers(ctx context.Context, filter TransferListFilter, limit int, nextToken *string) ([]domain.BranchTransfer, *string, error)
}

// TransferWriter defines write operations for branch transfers
type TransferWriter interface {
	// CreateTransferWithLegs atomically inserts the parent transfer and its
	// two legs. References for both legs are generated inside the same
	// database transaction; the returned transfer carries the stored state.
	CreateTransferWithLegs(ctx context.Context, transfer domain.BranchTransfer, outLeg, inLeg domain.Transaction) (*domain.BranchTransfer, error)

	// UpdateTransferWithLegs atomically rewrites a pending transfer and
	// propagates branch/currency/date/amount changes to both legs.
	UpdateTransferWithLegs(ctx context.Context, transfer domain.BranchTransfer) error

	// DeleteTransferGroup atomically soft-deletes both legs and removes the
	// parent record.
	DeleteTransferGroup(ctx context.Context, branchTransferID, deletedBy string) error
}

// TransferRepositoryFacade combines all transfer repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

// TransferRepositoryWithTx extends the facade with transaction capabilities
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
