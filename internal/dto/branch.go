package dto

import (
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// CreateBranchRequest defines the data needed to create a new branch.
type CreateBranchRequest struct {
	Code string `json:"code" binding:"required,max=10"`
	Name string `json:"name" binding:"required"`
}

// UpdateBranchRequest carries the mutable branch fields. The code becomes
// immutable once the branch is referenced by any transaction.
type UpdateBranchRequest struct {
	Code     *string `json:"code,omitempty" binding:"omitempty,max=10"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID      string    `json:"branchID"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBranchResponse converts a domain.Branch to BranchResponse DTO
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:      b.BranchID,
		Code:          b.Code,
		Name:          b.Name,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBranchResponse converts domain Branches to response DTOs
func ToListBranchResponse(branches []domain.Branch) []BranchResponse {
	res := make([]BranchResponse, len(branches))
	for i := range branches {
		res[i] = ToBranchResponse(&branches[i])
	}
	return res
}
