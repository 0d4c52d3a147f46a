package repositories

import (
	"context"
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// TransactionListFilter narrows transaction listings.
type TransactionListFilter struct {
	Type         *domain.TransactionType
	BranchID     *string
	CurrencyCode *string
	Status       *domain.TransactionStatus
	// Search matches reference, actor name or description substrings.
	Search *string
}

// TransactionReader defines read operations for ledger rows
type TransactionReader interface {
	// FindTransactionByID retrieves a non-deleted transaction by ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByFullReference resolves a scanned code of the form
	// currencyCode + branchCode + reference by exact match.
	FindTransactionByFullReference(ctx context.Context, scanned string) (*domain.Transaction, error)

	// FindTransactionsByTransferID retrieves the legs of a branch transfer.
	FindTransactionsByTransferID(ctx context.Context, branchTransferID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a filtered page using token pagination.
	ListTransactions(ctx context.Context, filter TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindSlipRows retrieves the print projection for the given IDs,
	// ordered by transaction date.
	FindSlipRows(ctx context.Context, transactionIDs []string) ([]domain.SlipRow, error)

	// HasNonOpeningTransactions reports whether any non-opening, non-deleted
	// transaction exists for a branch/currency pair. Gates opening balance edits.
	HasNonOpeningTransactions(ctx context.Context, branchID, currencyCode string) (bool, error)

	// HasTransactionsForBranch reports whether the branch is referenced by
	// any non-deleted transaction. Gates branch code edits.
	HasTransactionsForBranch(ctx context.Context, branchID string) (bool, error)

	// HasTransactionsForCurrency reports whether the currency is referenced
	// by any non-deleted transaction. Gates currency code edits.
	HasTransactionsForCurrency(ctx context.Context, currencyCode string) (bool, error)
}

// TransactionWriter defines write operations for ledger rows
type TransactionWriter interface {
	// CreateTransaction inserts a pending row. The reference is generated
	// inside the same database transaction as the insert (see the
	// reference-generation protocol in the pgsql implementation) and the
	// returned row carries it.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction rewrites the mutable fields of a pending row. When
	// regenerateReference is set a fresh reference is allocated inside the
	// same database transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, regenerateReference bool) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes a single pending row.
	DeleteTransaction(ctx context.Context, transactionID, deletedBy string) error
}

// TransactionApprover defines the status-transition operations. All of
// them run inside one database transaction with row locks on the
// contended rows.
type TransactionApprover interface {
	// ApproveTransaction transitions a standalone pending row to approved.
	ApproveTransaction(ctx context.Context, transactionID, approverID string, approvedAt time.Time) error

	// ApproveTransferGroup locks every leg of a transfer, verifies all are
	// pending (ErrPartialApprovalConflict otherwise) and approves the legs
	// and the parent with identical stamps.
	ApproveTransferGroup(ctx context.Context, branchTransferID, approverID string, approvedAt time.Time) error

	// RejectTransaction transitions a standalone pending row to rejected,
	// clearing any approval stamps.
	RejectTransaction(ctx context.Context, transactionID, approverID string) error

	// RejectTransferGroup mirrors ApproveTransferGroup for rejections.
	RejectTransferGroup(ctx context.Context, branchTransferID, approverID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionApprover
}

// TransactionRepositoryWithTx extends the facade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
