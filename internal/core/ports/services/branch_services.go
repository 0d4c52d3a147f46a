package services

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/dto"
)

// BranchReaderSvc defines read operations for branch data
type BranchReaderSvc interface {
	// GetBranchByID retrieves a specific branch by its ID.
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves branches, optionally only active ones.
	ListBranches(ctx context.Context, onlyActive bool) ([]domain.Branch, error)
}

// BranchWriterSvc defines write operations for branch data
type BranchWriterSvc interface {
	// CreateBranch persists a new branch. The branch code must be unique.
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)

	// UpdateBranch applies changes to an existing branch. The code is
	// immutable once any transaction references the branch.
	UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, updaterUserID string) (*domain.Branch, error)
}

// BranchSvcFacade combines all branch-related service interfaces
type BranchSvcFacade interface {
	BranchReaderSvc
	BranchWriterSvc
}
