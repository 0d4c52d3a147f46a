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

// transferService provides business logic for moving cash between branches.
// A transfer is a parent record plus one outbound and one inbound ledger
// leg; the legs settle together or not at all.
type transferService struct {
	transferRepo    portsrepo.TransferRepositoryFacade
	transactionRepo portsrepo.TransactionReader
	branchRepo      portsrepo.BranchReader
	currencyRepo    portsrepo.CurrencyReader
	periodSvc       portssvc.PeriodReaderSvc
	audit           portssvc.AuditRecorder
}

// NewTransferService creates a new branch transfer service.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryFacade,
	transactionRepo portsrepo.TransactionReader,
	branchRepo portsrepo.BranchReader,
	currencyRepo portsrepo.CurrencyReader,
	periodSvc portssvc.PeriodReaderSvc,
	audit portssvc.AuditRecorder,
) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo:    transferRepo,
		transactionRepo: transactionRepo,
		branchRepo:      branchRepo,
		currencyRepo:    currencyRepo,
		periodSvc:       periodSvc,
		audit:           audit,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.BranchTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromBranchID == req.ToBranchID {
		return nil, fmt.Errorf("%w: source and destination branch must differ", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	fromBranch, err := requireActiveBranch(ctx, s.branchRepo, req.FromBranchID)
	if err != nil {
		return nil, err
	}
	toBranch, err := requireActiveBranch(ctx, s.branchRepo, req.ToBranchID)
	if err != nil {
		return nil, err
	}
	if _, err := requireActiveCurrency(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
		return nil, err
	}
	if err := requireOpenPeriod(ctx, s.periodSvc, req.TransferDate); err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	transfer := domain.BranchTransfer{
		BranchTransferID: uuid.NewString(),
		FromBranchID:     req.FromBranchID,
		ToBranchID:       req.ToBranchID,
		CurrencyCode:     strings.ToUpper(req.CurrencyCode),
		TransferDate:     req.TransferDate,
		Amount:           req.Amount,
		Description:      req.Description,
		Status:           domain.StatusPending,
		AuditFields:      audit,
	}

	outLeg := s.buildLeg(transfer, domain.CashOut, req.OutActorName, toBranch.Name, audit)
	inLeg := s.buildLeg(transfer, domain.CashIn, req.InActorName, fromBranch.Name, audit)

	created, err := s.transferRepo.CreateTransferWithLegs(ctx, transfer, outLeg, inLeg)
	if err != nil {
		logger.Error("Failed to create transfer", slog.String("from_branch", req.FromBranchID), slog.String("to_branch", req.ToBranchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	s.audit.Record(ctx, domain.TransferCreated{
		EventBase:        domain.NewEventBase(time.Now()),
		BranchTransferID: created.BranchTransferID,
		FromBranchID:     created.FromBranchID,
		ToBranchID:       created.ToBranchID,
		Amount:           created.Amount,
		Actor:            creatorUserID,
	})
	logger.Info("Transfer created", slog.String("branch_transfer_id", created.BranchTransferID))
	return created, nil
}

// buildLeg derives one ledger leg from the parent transfer. The counterparty
// branch name stands in for the actor when none was given, so slips still
// name who the cash moved against.
func (s *transferService) buildLeg(transfer domain.BranchTransfer, legType domain.TransactionType, actorName, counterpartyName string, audit domain.AuditFields) domain.Transaction {
	branchID := transfer.FromBranchID
	if legType == domain.CashIn {
		branchID = transfer.ToBranchID
	}
	if actorName == "" {
		actorName = counterpartyName
	}
	transferID := transfer.BranchTransferID
	return domain.Transaction{
		TransactionID:    uuid.NewString(),
		BranchID:         branchID,
		CurrencyCode:     transfer.CurrencyCode,
		TransactionDate:  transfer.TransferDate,
		Type:             legType,
		Amount:           transfer.Amount,
		Description:      transfer.Description,
		ActorName:        actorName,
		Status:           domain.StatusPending,
		BranchTransferID: &transferID,
		AuditFields:      audit,
	}
}

func (s *transferService) UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, updaterUserID string) (*domain.BranchTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer for update: %w", err)
	}
	if !transfer.IsPending() {
		return nil, fmt.Errorf("%w: transfer %q is %s", apperrors.ErrImmutableTransaction, transferID, transfer.Status)
	}
	// The transfer's current period must be open too, otherwise re-dating
	// would mutate closed history.
	if err := requireOpenPeriod(ctx, s.periodSvc, transfer.TransferDate); err != nil {
		return nil, err
	}

	if req.FromBranchID != nil {
		if _, err := requireActiveBranch(ctx, s.branchRepo, *req.FromBranchID); err != nil {
			return nil, err
		}
		transfer.FromBranchID = *req.FromBranchID
	}
	if req.ToBranchID != nil {
		if _, err := requireActiveBranch(ctx, s.branchRepo, *req.ToBranchID); err != nil {
			return nil, err
		}
		transfer.ToBranchID = *req.ToBranchID
	}
	if transfer.FromBranchID == transfer.ToBranchID {
		return nil, fmt.Errorf("%w: source and destination branch must differ", apperrors.ErrValidation)
	}
	if req.CurrencyCode != nil {
		if _, err := requireActiveCurrency(ctx, s.currencyRepo, *req.CurrencyCode); err != nil {
			return nil, err
		}
		transfer.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
	}
	if req.TransferDate != nil {
		transfer.TransferDate = *req.TransferDate
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
		}
		transfer.Amount = *req.Amount
	}
	if req.Description != nil {
		transfer.Description = *req.Description
	}
	if req.TransferDate != nil {
		if err := requireOpenPeriod(ctx, s.periodSvc, transfer.TransferDate); err != nil {
			return nil, err
		}
	}

	transfer.LastUpdatedAt = time.Now()
	transfer.LastUpdatedBy = updaterUserID

	if err := s.transferRepo.UpdateTransferWithLegs(ctx, *transfer); err != nil {
		logger.Error("Failed to update transfer", slog.String("branch_transfer_id", transferID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update transfer: %w", err)
	}

	s.audit.Record(ctx, domain.TransferUpdated{
		EventBase:        domain.NewEventBase(time.Now()),
		BranchTransferID: transferID,
		Actor:            updaterUserID,
	})
	logger.Info("Transfer updated", slog.String("branch_transfer_id", transferID))
	return transfer, nil
}

func (s *transferService) DeleteTransfer(ctx context.Context, transferID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return fmt.Errorf("failed to find transfer for delete: %w", err)
	}
	if !transfer.IsPending() {
		return fmt.Errorf("%w: transfer %q is %s", apperrors.ErrImmutableTransaction, transferID, transfer.Status)
	}
	if err := requireOpenPeriod(ctx, s.periodSvc, transfer.TransferDate); err != nil {
		return err
	}

	if err := s.transferRepo.DeleteTransferGroup(ctx, transferID, deleterUserID); err != nil {
		logger.Error("Failed to delete transfer", slog.String("branch_transfer_id", transferID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete transfer: %w", err)
	}

	s.audit.Record(ctx, domain.TransferDeleted{
		EventBase:        domain.NewEventBase(time.Now()),
		BranchTransferID: transferID,
		Actor:            deleterUserID,
	})
	logger.Info("Transfer deleted", slog.String("branch_transfer_id", transferID))
	return nil
}

func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.BranchTransfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return transfer, nil
}

func (s *transferService) GetTransferLegs(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	legs, err := s.transactionRepo.FindTransactionsByTransferID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer legs: %w", err)
	}
	return legs, nil
}

func (s *transferService) ListTransfers(ctx context.Context, req dto.ListTransfersRequest) (*dto.ListTransfersResponse, error) {
	filter := portsrepo.TransferListFilter{
		CurrencyCode: req.CurrencyCode,
		Search:       req.Search,
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

	transfers, nextToken, err := s.transferRepo.ListTransfers(ctx, filter, limit, req.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	return &dto.ListTransfersResponse{
		Transfers: dto.ToListTransferResponse(transfers),
		NextToken: nextToken,
	}, nil
}
