package services

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, cursor-paged slice of
	// transactions, newest first.
	ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) (*dto.ListTransactionsResponse, error)

	// GetSlip builds the printable slip for a transaction, including the
	// amount spelled out in words.
	GetSlip(ctx context.Context, transactionID string) (*domain.SlipRow, error)

	// GetSlips builds printable slips for a batch of transactions, ordered
	// by transaction date.
	GetSlips(ctx context.Context, transactionIDs []string) ([]domain.SlipRow, error)
}

// TransactionWriterSvc defines write operations for ledger transactions
type TransactionWriterSvc interface {
	// CreateTransaction records a new pending cash movement and assigns it
	// a reference within the transaction date's month-and-flow series.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction edits a pending transaction. Changing the branch or
	// the flow-relevant fields regenerates the reference.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes a pending transaction.
	DeleteTransaction(ctx context.Context, transactionID string, deleterUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
