package services

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/dto"
)

// TransferReaderSvc defines read operations for branch transfers
type TransferReaderSvc interface {
	// GetTransferByID retrieves a single branch transfer.
	GetTransferByID(ctx context.Context, transferID string) (*domain.BranchTransfer, error)

	// GetTransferLegs retrieves the out and in ledger legs of a transfer.
	GetTransferLegs(ctx context.Context, transferID string) ([]domain.Transaction, error)

	// ListTransfers retrieves a filtered, cursor-paged slice of transfers.
	ListTransfers(ctx context.Context, req dto.ListTransfersRequest) (*dto.ListTransfersResponse, error)
}

// TransferWriterSvc defines write operations for branch transfers
type TransferWriterSvc interface {
	// CreateTransfer records a pending transfer between two branches along
	// with its out and in ledger legs, atomically.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.BranchTransfer, error)

	// UpdateTransfer edits a pending transfer and propagates the changes to
	// both legs.
	UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, updaterUserID string) (*domain.BranchTransfer, error)

	// DeleteTransfer soft-deletes a pending transfer and both of its legs.
	DeleteTransfer(ctx context.Context, transferID string, deleterUserID string) error
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}
