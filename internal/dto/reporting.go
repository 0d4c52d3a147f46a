package dto

import (
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceRequest asks for the cash position of one branch (or all branches)
// in a currency as of an optional cutoff date.
type BalanceRequest struct {
	BranchID     *string    `form:"branchID" binding:"omitempty,uuid"`
	CurrencyCode string     `form:"currencyCode" binding:"required,uppercase,max=3"`
	AsOf         *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// BalanceResponse is a single computed cash position.
type BalanceResponse struct {
	BranchID     *string         `json:"branchID,omitempty"`
	CurrencyCode string          `json:"currencyCode"`
	AsOf         *time.Time      `json:"asOf,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
}

// BalanceSummaryRequest asks for the per-branch, per-currency summary table
// over a date window.
type BalanceSummaryRequest struct {
	FromDate time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02"`
	ToDate   time.Time `form:"toDate" binding:"required" time_format:"2006-01-02"`
}

// BalanceSummaryRowResponse is one row of the summary table.
type BalanceSummaryRowResponse struct {
	BranchName         string          `json:"branchName"`
	BranchCode         string          `json:"branchCode"`
	CurrencyCode       string          `json:"currencyCode"`
	BeginBalance       decimal.Decimal `json:"beginBalance"`
	TransactionBalance decimal.Decimal `json:"transactionBalance"`
	EndingBalance      decimal.Decimal `json:"endingBalance"`
}

// DailyReportRequest asks for the approved-transaction report of a branch
// and currency over a date window.
type DailyReportRequest struct {
	BranchID     string    `form:"branchID" binding:"required,uuid"`
	CurrencyCode string    `form:"currencyCode" binding:"required,uppercase,max=3"`
	FromDate     time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02"`
	ToDate       time.Time `form:"toDate" binding:"required" time_format:"2006-01-02"`
}

// ReportLineResponse is one approved transaction in the daily report, with
// the running balance after applying it.
type ReportLineResponse struct {
	TransactionID  string          `json:"transactionID"`
	ApprovedAt     time.Time       `json:"approvedAt"`
	BranchName     string          `json:"branchName"`
	ActorName      string          `json:"actorName"`
	Description    string          `json:"description"`
	FullReference  string          `json:"fullReference"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// DailyReportResponse is the report envelope: opening position, lines in
// approval order, and the closing position.
type DailyReportResponse struct {
	BeginBalance  decimal.Decimal      `json:"beginBalance"`
	EndingBalance decimal.Decimal      `json:"endingBalance"`
	Lines         []ReportLineResponse `json:"lines"`
}

// ToBalanceSummaryResponse converts domain summary rows to response DTOs
func ToBalanceSummaryResponse(rows []domain.BalanceSummaryRow) []BalanceSummaryRowResponse {
	res := make([]BalanceSummaryRowResponse, len(rows))
	for i, r := range rows {
		res[i] = BalanceSummaryRowResponse{
			BranchName:         r.BranchName,
			BranchCode:         r.BranchCode,
			CurrencyCode:       r.CurrencyCode,
			BeginBalance:       r.BeginBalance,
			TransactionBalance: r.TransactionBalance,
			EndingBalance:      r.EndingBalance,
		}
	}
	return res
}

// ToDailyReportResponse converts a domain.DailyReport to its response DTO
func ToDailyReportResponse(report *domain.DailyReport) DailyReportResponse {
	lines := make([]ReportLineResponse, len(report.Lines))
	for i, l := range report.Lines {
		lines[i] = ReportLineResponse{
			TransactionID:  l.TransactionID,
			ApprovedAt:     l.ApprovedAt,
			BranchName:     l.BranchName,
			ActorName:      l.ActorName,
			Description:    l.Description,
			FullReference:  l.FullReference,
			Type:           string(l.Type),
			Amount:         l.Amount,
			RunningBalance: l.RunningBalance,
		}
	}
	return DailyReportResponse{
		BeginBalance:  report.BeginBalance,
		EndingBalance: report.EndingBalance,
		Lines:         lines,
	}
}
