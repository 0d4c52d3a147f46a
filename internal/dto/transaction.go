package dto

import (
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a cash movement.
type CreateTransactionRequest struct {
	BranchID        string          `json:"branchID" binding:"required,uuid"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,uppercase,max=3"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Type            string          `json:"type" binding:"required,oneof=in out"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
	ActorName       string          `json:"actorName" binding:"max=255"`
}

// UpdateTransactionRequest carries edits to a pending transaction. Nil
// fields keep their stored value.
type UpdateTransactionRequest struct {
	BranchID        *string          `json:"branchID,omitempty" binding:"omitempty,uuid"`
	CurrencyCode    *string          `json:"currencyCode,omitempty" binding:"omitempty,uppercase,max=3"`
	TransactionDate *time.Time       `json:"transactionDate,omitempty"`
	Type            *string          `json:"type,omitempty" binding:"omitempty,oneof=in out"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Description     *string          `json:"description,omitempty"`
	ActorName       *string          `json:"actorName,omitempty" binding:"omitempty,max=255"`
}

// ListTransactionsRequest narrows and pages transaction listings.
type ListTransactionsRequest struct {
	Type         *string `form:"type" binding:"omitempty,oneof=in out"`
	BranchID     *string `form:"branchID" binding:"omitempty,uuid"`
	CurrencyCode *string `form:"currencyCode"`
	Status       *string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Search       *string `form:"search"`
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger row.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	Reference        string          `json:"reference"`
	BranchID         string          `json:"branchID"`
	CurrencyCode     string          `json:"currencyCode"`
	TransactionDate  time.Time       `json:"transactionDate"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	ActorName        string          `json:"actorName"`
	Status           string          `json:"status"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	IsOpening        bool            `json:"isOpening"`
	BranchTransferID *string         `json:"branchTransferID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ListTransactionsResponse is a page of transactions plus the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// SlipBatchRequest selects the transactions to print in one run.
type SlipBatchRequest struct {
	IDs []string `form:"ids" binding:"required,min=1,dive,uuid"`
}

// SlipResponse is the print projection of one transaction.
type SlipResponse struct {
	TransactionID   string          `json:"transactionID"`
	FullReference   string          `json:"fullReference"`
	BranchName      string          `json:"branchName"`
	CurrencyCode    string          `json:"currencyCode"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	AmountInWords   string          `json:"amountInWords"`
	ActorName       string          `json:"actorName"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		Reference:        t.Reference,
		BranchID:         t.BranchID,
		CurrencyCode:     t.CurrencyCode,
		TransactionDate:  t.TransactionDate,
		Type:             string(t.Type),
		Amount:           t.Amount,
		Description:      t.Description,
		ActorName:        t.ActorName,
		Status:           string(t.Status),
		ApprovedAt:       t.ApprovedAt,
		ApprovedBy:       t.ApprovedBy,
		IsOpening:        t.IsOpening,
		BranchTransferID: t.BranchTransferID,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
	}
}

// ToListTransactionResponse converts domain Transactions to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ToSlipListResponse converts slip rows to response DTOs
func ToSlipListResponse(rows []domain.SlipRow) []SlipResponse {
	res := make([]SlipResponse, len(rows))
	for i, r := range rows {
		res[i] = ToSlipResponse(r)
	}
	return res
}

// ToSlipResponse converts a domain.SlipRow to its response DTO
func ToSlipResponse(s domain.SlipRow) SlipResponse {
	return SlipResponse{
		TransactionID:   s.TransactionID,
		FullReference:   s.FullReference,
		BranchName:      s.BranchName,
		CurrencyCode:    s.CurrencyCode,
		Type:            string(s.Type),
		Amount:          s.Amount,
		AmountInWords:   s.AmountInWords,
		ActorName:       s.ActorName,
		Description:     s.Description,
		TransactionDate: s.TransactionDate,
	}
}
