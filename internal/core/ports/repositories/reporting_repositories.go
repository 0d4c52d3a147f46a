package repositories

import (
	"context"
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository provides the read-only aggregates behind balance
// reports. All sums cover approved, non-deleted, non-opening transactions;
// the opening zero-point comes from branch_opening_balances.
type ReportingRepository interface {
	// SumOpeningBalances totals the opening balances for a currency,
	// optionally restricted to one branch.
	SumOpeningBalances(ctx context.Context, branchID *string, currencyCode string) (decimal.Decimal, error)

	// SumNetMovement totals +amount for inbound and -amount for outbound
	// approved rows, optionally bounded by [from, to] inclusive.
	SumNetMovement(ctx context.Context, branchID *string, currencyCode string, from, to *time.Time) (decimal.Decimal, error)

	// BalanceSummaryRows computes the begin/period/ending figures for every
	// branch×currency pair over [from, to].
	BalanceSummaryRows(ctx context.Context, from, to time.Time) ([]domain.BalanceSummaryRow, error)

	// ApprovedLines retrieves the approved rows of a window ordered by
	// approval time, without running balances (the service folds those).
	ApprovedLines(ctx context.Context, branchID *string, currencyCode string, from, to time.Time) ([]domain.ReportLine, error)
}
