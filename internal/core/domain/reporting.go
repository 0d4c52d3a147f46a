package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSummaryRow is one branch×currency line of the balance summary
// report. EndingBalance always equals BeginBalance + TransactionBalance.
type BalanceSummaryRow struct {
	BranchName         string          `json:"branchName"`
	BranchCode         string          `json:"branchCode"`
	CurrencyCode       string          `json:"currencyCode"`
	BeginBalance       decimal.Decimal `json:"beginBalance"`
	TransactionBalance decimal.Decimal `json:"transactionBalance"`
	EndingBalance      decimal.Decimal `json:"endingBalance"`
}

// ReportLine is one approved transaction in a daily/ranged report, in
// approval order, annotated with the running balance after the line.
type ReportLine struct {
	TransactionID  string          `json:"transactionID"`
	ApprovedAt     time.Time       `json:"approvedAt"`
	BranchName     string          `json:"branchName"`
	ActorName      string          `json:"actorName"`
	Description    string          `json:"description"`
	FullReference  string          `json:"fullReference"`
	Type           TransactionType `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// DailyReport is the begin balance plus the ordered approved movements of
// a window for one currency (optionally one branch).
type DailyReport struct {
	BeginBalance  decimal.Decimal `json:"beginBalance"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
	Lines         []ReportLine    `json:"lines"`
}

// SlipRow is the minimal projection printed on a physical cash slip.
type SlipRow struct {
	TransactionID   string          `json:"transactionID"`
	FullReference   string          `json:"fullReference"`
	BranchName      string          `json:"branchName"`
	CurrencyCode    string          `json:"currencyCode"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	AmountInWords   string          `json:"amountInWords"`
	ActorName       string          `json:"actorName"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
}
