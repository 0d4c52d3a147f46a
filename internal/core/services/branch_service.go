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

// branchService provides business logic for the branch registry.
type branchService struct {
	branchRepo      portsrepo.BranchRepositoryFacade
	transactionRepo portsrepo.TransactionReader
}

// NewBranchService creates a new branch service.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade, transactionRepo portsrepo.TransactionReader) portssvc.BranchSvcFacade {
	return &branchService{
		branchRepo:      branchRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	branch := domain.Branch{
		BranchID: uuid.NewString(),
		Code:     strings.ToUpper(req.Code),
		Name:     req.Name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		logger.Error("Failed to save branch", slog.String("branch_code", branch.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID), slog.String("branch_code", branch.Code))
	return &branch, nil
}

func (s *branchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, updaterUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find branch for update: %w", err)
	}

	if req.Code != nil && strings.ToUpper(*req.Code) != branch.Code {
		// The branch code is embedded in every printed full reference, so
		// it freezes once the branch has recorded transactions.
		referenced, err := s.transactionRepo.HasTransactionsForBranch(ctx, branchID)
		if err != nil {
			return nil, fmt.Errorf("failed to check branch usage: %w", err)
		}
		if referenced {
			return nil, fmt.Errorf("%w: branch code cannot change once transactions reference it", apperrors.ErrValidation)
		}
		branch.Code = strings.ToUpper(*req.Code)
	}
	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	branch.LastUpdatedAt = time.Now()
	branch.LastUpdatedBy = updaterUserID

	if err := s.branchRepo.UpdateBranch(ctx, *branch); err != nil {
		logger.Error("Failed to update branch", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}

	logger.Info("Branch updated", slog.String("branch_id", branchID))
	return branch, nil
}

func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	return branch, nil
}

func (s *branchService) ListBranches(ctx context.Context, onlyActive bool) ([]domain.Branch, error) {
	branches, err := s.branchRepo.ListBranches(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if branches == nil {
		return []domain.Branch{}, nil
	}
	return branches, nil
}

// requireActiveBranch is shared by the ledger-facing services: movements may
// only be recorded against known, active branches.
func requireActiveBranch(ctx context.Context, repo portsrepo.BranchReader, branchID string) (*domain.Branch, error) {
	branch, err := repo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("branch %q: %w", branchID, err)
	}
	if !branch.IsActive {
		return nil, fmt.Errorf("%w: branch %q is inactive", apperrors.ErrValidation, branch.Code)
	}
	return branch, nil
}
