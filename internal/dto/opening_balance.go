package dto

import (
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetOpeningBalanceRequest seeds the starting cash position of a branch in
// one currency. Zero amounts are allowed.
type SetOpeningBalanceRequest struct {
	BranchID     string          `json:"branchID" binding:"required,uuid"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,max=3"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	OpeningDate  time.Time       `json:"openingDate" binding:"required"`
}

// UpdateOpeningBalanceRequest corrects a seeded balance. Rejected once any
// non-opening transaction exists for the branch and currency.
type UpdateOpeningBalanceRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	OpeningDate *time.Time       `json:"openingDate,omitempty"`
}

// OpeningBalanceResponse defines the data returned for an opening balance.
type OpeningBalanceResponse struct {
	OpeningBalanceID string          `json:"openingBalanceID"`
	BranchID         string          `json:"branchID"`
	CurrencyCode     string          `json:"currencyCode"`
	Amount           decimal.Decimal `json:"amount"`
	OpeningDate      time.Time       `json:"openingDate"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ToOpeningBalanceResponse converts a domain.OpeningBalance to its response DTO
func ToOpeningBalanceResponse(ob *domain.OpeningBalance) OpeningBalanceResponse {
	return OpeningBalanceResponse{
		OpeningBalanceID: ob.OpeningBalanceID,
		BranchID:         ob.BranchID,
		CurrencyCode:     ob.CurrencyCode,
		Amount:           ob.Amount,
		OpeningDate:      ob.OpeningDate,
		CreatedAt:        ob.CreatedAt,
		CreatedBy:        ob.CreatedBy,
		LastUpdatedAt:    ob.LastUpdatedAt,
		LastUpdatedBy:    ob.LastUpdatedBy,
	}
}

// ToListOpeningBalanceResponse converts domain OpeningBalances to response DTOs
func ToListOpeningBalanceResponse(balances []domain.OpeningBalance) []OpeningBalanceResponse {
	res := make([]OpeningBalanceResponse, len(balances))
	for i := range balances {
		res[i] = ToOpeningBalanceResponse(&balances[i])
	}
	return res
}
