package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/dto"
	"github.com/kasapp/cashledger/internal/middleware"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// transactionService provides business logic for the cash ledger.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	transferRepo    portsrepo.TransferWriter
	branchRepo      portsrepo.BranchReader
	currencyRepo    portsrepo.CurrencyReader
	periodSvc       portssvc.PeriodReaderSvc
	audit           portssvc.AuditRecorder
}

// NewTransactionService creates a new ledger transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	transferRepo portsrepo.TransferWriter,
	branchRepo portsrepo.BranchReader,
	currencyRepo portsrepo.CurrencyReader,
	periodSvc portssvc.PeriodReaderSvc,
	audit portssvc.AuditRecorder,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		transferRepo:    transferRepo,
		branchRepo:      branchRepo,
		currencyRepo:    currencyRepo,
		periodSvc:       periodSvc,
		audit:           audit,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireActiveBranch(ctx, s.branchRepo, req.BranchID); err != nil {
		return nil, err
	}
	if _, err := requireActiveCurrency(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
		return nil, err
	}
	if err := requireOpenPeriod(ctx, s.periodSvc, req.TransactionDate); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		BranchID:        req.BranchID,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		TransactionDate: req.TransactionDate,
		Type:            domain.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		ActorName:       req.ActorName,
		Status:          domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// The reference is assigned by the repository inside the inserting
	// database transaction so concurrent writers cannot race the series.
	created, err := s.transactionRepo.CreateTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to create transaction", slog.String("branch_id", txn.BranchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.audit.Record(ctx, domain.TransactionCreated{
		EventBase:     domain.NewEventBase(time.Now()),
		TransactionID: created.TransactionID,
		Reference:     created.Reference,
		BranchID:      created.BranchID,
		CurrencyCode:  created.CurrencyCode,
		Type:          created.Type,
		Amount:        created.Amount,
		Actor:         creatorUserID,
	})
	logger.Info("Transaction created", slog.String("transaction_id", created.TransactionID), slog.String("reference", created.Reference))
	return created, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction for update: %w", err)
	}
	if err := s.requireEditable(*txn); err != nil {
		return nil, err
	}
	// The row's current period must be open too, otherwise re-dating a row
	// out of a closed period would mutate closed history.
	if err := requireOpenPeriod(ctx, s.periodSvc, txn.TransactionDate); err != nil {
		return nil, err
	}

	prevBranch := txn.BranchID
	prevType := txn.Type
	prevDate := txn.TransactionDate

	if req.BranchID != nil {
		if _, err := requireActiveBranch(ctx, s.branchRepo, *req.BranchID); err != nil {
			return nil, err
		}
		txn.BranchID = *req.BranchID
	}
	if req.CurrencyCode != nil {
		if _, err := requireActiveCurrency(ctx, s.currencyRepo, *req.CurrencyCode); err != nil {
			return nil, err
		}
		txn.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.Type != nil {
		txn.Type = domain.TransactionType(*req.Type)
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.ActorName != nil {
		txn.ActorName = *req.ActorName
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.TransactionDate != nil {
		if err := requireOpenPeriod(ctx, s.periodSvc, txn.TransactionDate); err != nil {
			return nil, err
		}
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = updaterUserID

	// Moving the row to another branch, or to a different year-month or
	// flow series, allocates a fresh reference. A currency-only change
	// keeps it: currency lives only in the displayed full reference.
	regenerate := txn.BranchID != prevBranch ||
		txn.Type != prevType ||
		referenceMonthChanged(prevDate, txn.TransactionDate)

	updated, err := s.transactionRepo.UpdateTransaction(ctx, *txn, regenerate)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.audit.Record(ctx, domain.TransactionUpdated{
		EventBase:     domain.NewEventBase(time.Now()),
		TransactionID: updated.TransactionID,
		Reference:     updated.Reference,
		Actor:         updaterUserID,
	})
	logger.Info("Transaction updated", slog.String("transaction_id", transactionID), slog.Bool("reference_regenerated", regenerate))
	return updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction for delete: %w", err)
	}
	if !txn.IsPending() {
		return fmt.Errorf("%w: transaction %q is %s", apperrors.ErrImmutableTransaction, txn.TransactionID, txn.Status)
	}
	if txn.Kind() == domain.KindOpeningSeed {
		return fmt.Errorf("%w: opening seeds change through the opening balance", apperrors.ErrValidation)
	}
	if err := requireOpenPeriod(ctx, s.periodSvc, txn.TransactionDate); err != nil {
		return err
	}

	// Deleting one leg removes the whole transfer: a lone surviving leg
	// would break the two-legs invariant.
	if txn.Kind() == domain.KindTransferLeg {
		transferID := *txn.BranchTransferID
		if err := s.transferRepo.DeleteTransferGroup(ctx, transferID, deleterUserID); err != nil {
			logger.Error("Failed to delete transfer through leg", slog.String("branch_transfer_id", transferID), slog.String("error", err.Error()))
			return fmt.Errorf("failed to delete transfer: %w", err)
		}
		s.audit.Record(ctx, domain.TransferDeleted{
			EventBase:        domain.NewEventBase(time.Now()),
			BranchTransferID: transferID,
			Actor:            deleterUserID,
		})
		logger.Info("Transfer deleted through leg", slog.String("transaction_id", transactionID), slog.String("branch_transfer_id", transferID))
		return nil
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, deleterUserID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.audit.Record(ctx, domain.TransactionDeleted{
		EventBase:     domain.NewEventBase(time.Now()),
		TransactionID: transactionID,
		Actor:         deleterUserID,
	})
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.TransactionListFilter{
		BranchID:     req.BranchID,
		CurrencyCode: req.CurrencyCode,
		Search:       req.Search,
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		filter.Type = &t
	}
	if req.Status != nil {
		st := domain.TransactionStatus(*req.Status)
		filter.Status = &st
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, filter, limit, req.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) GetSlip(ctx context.Context, transactionID string) (*domain.SlipRow, error) {
	rows, err := s.transactionRepo.FindSlipRows(ctx, []string{transactionID})
	if err != nil {
		return nil, fmt.Errorf("failed to load slip: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: transaction %q", apperrors.ErrNotFound, transactionID)
	}
	return &rows[0], nil
}

func (s *transactionService) GetSlips(ctx context.Context, transactionIDs []string) ([]domain.SlipRow, error) {
	if len(transactionIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one transaction id is required", apperrors.ErrValidation)
	}
	rows, err := s.transactionRepo.FindSlipRows(ctx, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load slips: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no transactions match the requested slips", apperrors.ErrNotFound)
	}
	return rows, nil
}

// requireEditable rejects edits on settled rows, opening seeds and transfer
// legs. Seeds change through the opening balance module and legs through the
// transfer module; deleting a leg cascades to the whole transfer instead.
func (s *transactionService) requireEditable(txn domain.Transaction) error {
	if !txn.IsPending() {
		return fmt.Errorf("%w: transaction %q is %s", apperrors.ErrImmutableTransaction, txn.TransactionID, txn.Status)
	}
	switch txn.Kind() {
	case domain.KindOpeningSeed:
		return fmt.Errorf("%w: opening seeds change through the opening balance", apperrors.ErrValidation)
	case domain.KindTransferLeg:
		return fmt.Errorf("%w: transfer legs change through the branch transfer", apperrors.ErrValidation)
	}
	return nil
}

// referenceMonthChanged reports whether two dates fall in different
// year-month buckets of the reference series.
func referenceMonthChanged(a, b time.Time) bool {
	return a.Year() != b.Year() || a.Month() != b.Month()
}
