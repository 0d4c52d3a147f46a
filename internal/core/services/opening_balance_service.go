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

// openingBalanceService manages the zero-point of each branch/currency pair.
// Setting a balance mirrors it as an approved opening-seed transaction so
// every balance computation reads from the ledger alone.
type openingBalanceService struct {
	openingRepo     portsrepo.OpeningBalanceRepositoryFacade
	transactionRepo portsrepo.TransactionReader
	branchRepo      portsrepo.BranchReader
	currencyRepo    portsrepo.CurrencyReader
	audit           portssvc.AuditRecorder
}

// NewOpeningBalanceService creates a new opening balance service.
func NewOpeningBalanceService(
	openingRepo portsrepo.OpeningBalanceRepositoryFacade,
	transactionRepo portsrepo.TransactionReader,
	branchRepo portsrepo.BranchReader,
	currencyRepo portsrepo.CurrencyReader,
	audit portssvc.AuditRecorder,
) portssvc.OpeningBalanceSvcFacade {
	return &openingBalanceService{
		openingRepo:     openingRepo,
		transactionRepo: transactionRepo,
		branchRepo:      branchRepo,
		currencyRepo:    currencyRepo,
		audit:           audit,
	}
}

var _ portssvc.OpeningBalanceSvcFacade = (*openingBalanceService)(nil)

func (s *openingBalanceService) SetOpeningBalance(ctx context.Context, req dto.SetOpeningBalanceRequest, creatorUserID string) (*domain.OpeningBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}
	branch, err := requireActiveBranch(ctx, s.branchRepo, req.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := requireActiveCurrency(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	ob := domain.OpeningBalance{
		OpeningBalanceID: uuid.NewString(),
		BranchID:         req.BranchID,
		CurrencyCode:     strings.ToUpper(req.CurrencyCode),
		Amount:           req.Amount,
		OpeningDate:      req.OpeningDate,
		AuditFields:      audit,
	}

	// The seed is born approved: an opening position is a statement of
	// fact, not a movement anyone reviews.
	seed := domain.Transaction{
		TransactionID:   uuid.NewString(),
		BranchID:        ob.BranchID,
		CurrencyCode:    ob.CurrencyCode,
		TransactionDate: ob.OpeningDate,
		Type:            domain.CashIn,
		Amount:          ob.Amount,
		Description:     fmt.Sprintf("Opening balance %s", branch.Name),
		ActorName:       branch.Name,
		Status:          domain.StatusApproved,
		ApprovedAt:      &now,
		ApprovedBy:      &creatorUserID,
		IsOpening:       true,
		AuditFields:     audit,
	}

	if err := s.openingRepo.SaveOpeningBalanceWithSeed(ctx, ob, seed); err != nil {
		logger.Error("Failed to set opening balance", slog.String("branch_id", ob.BranchID), slog.String("currency_code", ob.CurrencyCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to set opening balance: %w", err)
	}

	s.audit.Record(ctx, domain.OpeningBalanceSet{
		EventBase:        domain.NewEventBase(time.Now()),
		OpeningBalanceID: ob.OpeningBalanceID,
		BranchID:         ob.BranchID,
		CurrencyCode:     ob.CurrencyCode,
		Amount:           ob.Amount,
		Actor:            creatorUserID,
	})
	logger.Info("Opening balance set", slog.String("opening_balance_id", ob.OpeningBalanceID), slog.String("branch_id", ob.BranchID), slog.String("currency_code", ob.CurrencyCode))
	return &ob, nil
}

func (s *openingBalanceService) UpdateOpeningBalance(ctx context.Context, openingBalanceID string, req dto.UpdateOpeningBalanceRequest, updaterUserID string) (*domain.OpeningBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ob, err := s.openingRepo.FindOpeningBalanceByID(ctx, openingBalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find opening balance for update: %w", err)
	}

	// Once real movements exist the zero-point is part of reported
	// history and freezes.
	locked, err := s.transactionRepo.HasNonOpeningTransactions(ctx, ob.BranchID, ob.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check opening balance lock: %w", err)
	}
	if locked {
		return nil, fmt.Errorf("%w: branch %q already has %s transactions", apperrors.ErrOpeningBalanceLocked, ob.BranchID, ob.CurrencyCode)
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
		}
		ob.Amount = *req.Amount
	}
	if req.OpeningDate != nil {
		ob.OpeningDate = *req.OpeningDate
	}
	ob.LastUpdatedAt = time.Now()
	ob.LastUpdatedBy = updaterUserID

	if err := s.openingRepo.UpdateOpeningBalanceWithSeed(ctx, *ob); err != nil {
		logger.Error("Failed to update opening balance", slog.String("opening_balance_id", openingBalanceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update opening balance: %w", err)
	}

	s.audit.Record(ctx, domain.OpeningBalanceUpdated{
		EventBase:        domain.NewEventBase(time.Now()),
		OpeningBalanceID: openingBalanceID,
		Amount:           ob.Amount,
		Actor:            updaterUserID,
	})
	logger.Info("Opening balance updated", slog.String("opening_balance_id", openingBalanceID))
	return ob, nil
}

func (s *openingBalanceService) GetOpeningBalance(ctx context.Context, branchID, currencyCode string) (*domain.OpeningBalance, error) {
	ob, err := s.openingRepo.FindOpeningBalance(ctx, branchID, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get opening balance: %w", err)
	}
	return ob, nil
}

func (s *openingBalanceService) ListOpeningBalances(ctx context.Context, branchID *string) ([]domain.OpeningBalance, error) {
	balances, err := s.openingRepo.ListOpeningBalances(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}
	if balances == nil {
		return []domain.OpeningBalance{}, nil
	}
	return balances, nil
}
