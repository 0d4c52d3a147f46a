package dto

import (
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to move funds between branches.
type CreateTransferRequest struct {
	FromBranchID string          `json:"fromBranchID" binding:"required,uuid"`
	ToBranchID   string          `json:"toBranchID" binding:"required,uuid,nefield=FromBranchID"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,max=3"`
	TransferDate time.Time       `json:"transferDate" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
	OutActorName string          `json:"outActorName" binding:"max=255"`
	InActorName  string          `json:"inActorName" binding:"max=255"`
}

// UpdateTransferRequest carries edits to a pending transfer; changes are
// propagated to both legs. Nil fields keep their stored value.
type UpdateTransferRequest struct {
	FromBranchID *string          `json:"fromBranchID,omitempty" binding:"omitempty,uuid"`
	ToBranchID   *string          `json:"toBranchID,omitempty" binding:"omitempty,uuid"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,uppercase,max=3"`
	TransferDate *time.Time       `json:"transferDate,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

// ListTransfersRequest narrows and pages transfer listings.
type ListTransfersRequest struct {
	Status       *string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	CurrencyCode *string `form:"currencyCode"`
	Search       *string `form:"search"`
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
}

// TransferResponse defines the data returned for a branch transfer.
type TransferResponse struct {
	BranchTransferID string          `json:"branchTransferID"`
	FromBranchID     string          `json:"fromBranchID"`
	ToBranchID       string          `json:"toBranchID"`
	CurrencyCode     string          `json:"currencyCode"`
	TransferDate     time.Time       `json:"transferDate"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ListTransfersResponse is a page of transfers plus the next cursor.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToTransferResponse converts a domain.BranchTransfer to its response DTO
func ToTransferResponse(bt *domain.BranchTransfer) TransferResponse {
	return TransferResponse{
		BranchTransferID: bt.BranchTransferID,
		FromBranchID:     bt.FromBranchID,
		ToBranchID:       bt.ToBranchID,
		CurrencyCode:     bt.CurrencyCode,
		TransferDate:     bt.TransferDate,
		Amount:           bt.Amount,
		Description:      bt.Description,
		Status:           string(bt.Status),
		ApprovedAt:       bt.ApprovedAt,
		ApprovedBy:       bt.ApprovedBy,
		CreatedAt:        bt.CreatedAt,
		CreatedBy:        bt.CreatedBy,
	}
}

// ToListTransferResponse converts domain BranchTransfers to response DTOs
func ToListTransferResponse(transfers []domain.BranchTransfer) []TransferResponse {
	res := make([]TransferResponse, len(transfers))
	for i := range transfers {
		res[i] = ToTransferResponse(&transfers[i])
	}
	return res
}
