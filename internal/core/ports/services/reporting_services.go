package services

import (
	"context"
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService defines the balance and report computations. All figures
// count approved transactions only.
type ReportingService interface {
	// BalanceAsOf computes the cash position of a branch (or all branches
	// when branchID is nil) in a currency up to and including asOf. A nil
	// asOf means the position over all time.
	BalanceAsOf(ctx context.Context, branchID *string, currencyCode string, asOf *time.Time) (decimal.Decimal, error)

	// BalanceSummary computes the begin / movement / ending table per
	// branch and currency for the given date window.
	BalanceSummary(ctx context.Context, fromDate, toDate time.Time) ([]domain.BalanceSummaryRow, error)

	// DailyReport lists approved transactions of a branch and currency in
	// approval order with a running balance.
	DailyReport(ctx context.Context, branchID, currencyCode string, fromDate, toDate time.Time) (*domain.DailyReport, error)
}
