package services

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// Approver identifies who is deciding on a pending record and whether they
// hold the approval capability.
type Approver struct {
	UserID     string
	CanApprove bool
}

// ApprovalReaderSvc defines read operations over the approval queue
type ApprovalReaderSvc interface {
	// ListPendingTransactions retrieves transactions awaiting a decision.
	// Opening-balance seeds never appear here.
	ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ResolveByFullReference finds a transaction from its scanned full
	// reference (currency code + branch code + reference).
	ResolveByFullReference(ctx context.Context, fullReference string) (*domain.Transaction, error)
}

// ApprovalWriterSvc defines the approve/reject decisions
type ApprovalWriterSvc interface {
	// ApproveTransaction settles a pending transaction. A transfer leg is
	// settled together with its sibling leg or not at all.
	ApproveTransaction(ctx context.Context, transactionID string, approver Approver) (*domain.Transaction, error)

	// RejectTransaction declines a pending transaction. A transfer leg is
	// declined together with its sibling leg.
	RejectTransaction(ctx context.Context, transactionID string, approver Approver) (*domain.Transaction, error)

	// ApproveByFullReference resolves a scanned full reference and approves
	// the matched transaction.
	ApproveByFullReference(ctx context.Context, fullReference string, approver Approver) (*domain.Transaction, error)
}

// ApprovalSvcFacade combines all approval-workflow service interfaces
type ApprovalSvcFacade interface {
	ApprovalReaderSvc
	ApprovalWriterSvc
}
