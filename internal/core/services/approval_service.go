package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/middleware"
)

// approvalService settles or declines pending ledger rows. Transfer legs are
// decided as a group through the parent transfer.
type approvalService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	periodSvc       portssvc.PeriodReaderSvc
	audit           portssvc.AuditRecorder
}

// NewApprovalService creates a new approval workflow service.
func NewApprovalService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	periodSvc portssvc.PeriodReaderSvc,
	audit portssvc.AuditRecorder,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		transactionRepo: transactionRepo,
		periodSvc:       periodSvc,
		audit:           audit,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// guard runs the shared pre-decision checks in a fixed order: capability
// first, then the period gate, then the lifecycle state.
func (s *approvalService) guard(ctx context.Context, transactionID string, approver portssvc.Approver) (*domain.Transaction, error) {
	if !approver.CanApprove {
		return nil, fmt.Errorf("%w: user %q may not decide on pending records", apperrors.ErrUnauthorized, approver.UserID)
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction for decision: %w", err)
	}
	if txn.IsOpening {
		return nil, fmt.Errorf("%w: opening seeds are settled at creation", apperrors.ErrValidation)
	}

	if err := requireOpenPeriod(ctx, s.periodSvc, txn.TransactionDate); err != nil {
		return nil, err
	}

	if !txn.IsPending() {
		return nil, fmt.Errorf("%w: transaction %q is already %s", apperrors.ErrAlreadyProcessed, transactionID, txn.Status)
	}
	return txn, nil
}

func (s *approvalService) ApproveTransaction(ctx context.Context, transactionID string, approver portssvc.Approver) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.guard(ctx, transactionID, approver)
	if err != nil {
		return nil, err
	}

	approvedAt := time.Now()
	if txn.IsTransferLeg() {
		// Legs of one transfer settle together with identical stamps, or
		// not at all.
		if err := s.transactionRepo.ApproveTransferGroup(ctx, *txn.BranchTransferID, approver.UserID, approvedAt); err != nil {
			logger.Error("Failed to approve transfer group", slog.String("branch_transfer_id", *txn.BranchTransferID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to approve transfer group: %w", err)
		}
		s.recordGroupDecision(ctx, *txn.BranchTransferID, approver.UserID, true, approvedAt)
	} else {
		if err := s.transactionRepo.ApproveTransaction(ctx, transactionID, approver.UserID, approvedAt); err != nil {
			logger.Error("Failed to approve transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to approve transaction: %w", err)
		}
		s.audit.Record(ctx, domain.TransactionApproved{
			EventBase:     domain.NewEventBase(approvedAt),
			TransactionID: transactionID,
			Actor:         approver.UserID,
		})
	}

	approved, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload approved transaction: %w", err)
	}
	logger.Info("Transaction approved", slog.String("transaction_id", transactionID), slog.String("approved_by", approver.UserID))
	return approved, nil
}

func (s *approvalService) RejectTransaction(ctx context.Context, transactionID string, approver portssvc.Approver) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.guard(ctx, transactionID, approver)
	if err != nil {
		return nil, err
	}

	if txn.IsTransferLeg() {
		if err := s.transactionRepo.RejectTransferGroup(ctx, *txn.BranchTransferID, approver.UserID); err != nil {
			logger.Error("Failed to reject transfer group", slog.String("branch_transfer_id", *txn.BranchTransferID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to reject transfer group: %w", err)
		}
		s.recordGroupDecision(ctx, *txn.BranchTransferID, approver.UserID, false, time.Now())
	} else {
		if err := s.transactionRepo.RejectTransaction(ctx, transactionID, approver.UserID); err != nil {
			logger.Error("Failed to reject transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to reject transaction: %w", err)
		}
		s.audit.Record(ctx, domain.TransactionRejected{
			EventBase:     domain.NewEventBase(time.Now()),
			TransactionID: transactionID,
			Actor:         approver.UserID,
		})
	}

	rejected, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload rejected transaction: %w", err)
	}
	logger.Info("Transaction rejected", slog.String("transaction_id", transactionID), slog.String("rejected_by", approver.UserID))
	return rejected, nil
}

func (s *approvalService) ApproveByFullReference(ctx context.Context, fullReference string, approver portssvc.Approver) (*domain.Transaction, error) {
	txn, err := s.ResolveByFullReference(ctx, fullReference)
	if err != nil {
		return nil, err
	}
	return s.ApproveTransaction(ctx, txn.TransactionID, approver)
}

func (s *approvalService) ResolveByFullReference(ctx context.Context, fullReference string) (*domain.Transaction, error) {
	scanned := strings.ToUpper(strings.TrimSpace(fullReference))
	if scanned == "" {
		return nil, fmt.Errorf("%w: empty reference", apperrors.ErrValidation)
	}
	txn, err := s.transactionRepo.FindTransactionByFullReference(ctx, scanned)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reference %q: %w", scanned, err)
	}
	return txn, nil
}

func (s *approvalService) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	status := domain.StatusPending
	filter := portsrepo.TransactionListFilter{Status: &status}

	var pending []domain.Transaction
	var token *string
	for {
		page, next, err := s.transactionRepo.ListTransactions(ctx, filter, maxListLimit, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list pending transactions: %w", err)
		}
		for _, txn := range page {
			// Opening seeds never enter the queue.
			if txn.IsOpening {
				continue
			}
			pending = append(pending, txn)
		}
		if next == nil {
			break
		}
		token = next
	}
	if pending == nil {
		return []domain.Transaction{}, nil
	}
	return pending, nil
}

// recordGroupDecision emits one event per leg of a decided transfer.
func (s *approvalService) recordGroupDecision(ctx context.Context, branchTransferID, actorID string, approved bool, at time.Time) {
	legs, err := s.transactionRepo.FindTransactionsByTransferID(ctx, branchTransferID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to load legs for audit", slog.String("branch_transfer_id", branchTransferID), slog.String("error", err.Error()))
		return
	}
	for _, leg := range legs {
		if approved {
			s.audit.Record(ctx, domain.TransactionApproved{
				EventBase:     domain.NewEventBase(at),
				TransactionID: leg.TransactionID,
				Actor:         actorID,
			})
		} else {
			s.audit.Record(ctx, domain.TransactionRejected{
				EventBase:     domain.NewEventBase(at),
				TransactionID: leg.TransactionID,
				Actor:         actorID,
			})
		}
	}
}
