package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/middleware"
)

// reportingService computes balances and reports. Every figure is the
// opening zero-point plus the net of approved movements; pending and
// rejected rows never count.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	branchRepo    portsrepo.BranchReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, branchRepo portsrepo.BranchReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		branchRepo:    branchRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) BalanceAsOf(ctx context.Context, branchID *string, currencyCode string, asOf *time.Time) (decimal.Decimal, error) {
	currencyCode = strings.ToUpper(currencyCode)

	opening, err := s.reportingRepo.SumOpeningBalances(ctx, branchID, currencyCode)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum opening balances: %w", err)
	}
	movement, err := s.reportingRepo.SumNetMovement(ctx, branchID, currencyCode, nil, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum net movement: %w", err)
	}
	return opening.Add(movement), nil
}

func (s *reportingService) BalanceSummary(ctx context.Context, fromDate, toDate time.Time) ([]domain.BalanceSummaryRow, error) {
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: to date must not precede from date", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.BalanceSummaryRows(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance summary: %w", err)
	}
	if rows == nil {
		return []domain.BalanceSummaryRow{}, nil
	}
	return rows, nil
}

func (s *reportingService) DailyReport(ctx context.Context, branchID, currencyCode string, fromDate, toDate time.Time) (*domain.DailyReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currencyCode = strings.ToUpper(currencyCode)

	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: to date must not precede from date", apperrors.ErrValidation)
	}
	if _, err := s.branchRepo.FindBranchByID(ctx, branchID); err != nil {
		return nil, fmt.Errorf("branch %q: %w", branchID, err)
	}

	// The report opens with the position carried into the window.
	dayBefore := fromDate.AddDate(0, 0, -1)
	begin, err := s.BalanceAsOf(ctx, &branchID, currencyCode, &dayBefore)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.ApprovedLines(ctx, &branchID, currencyCode, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved lines: %w", err)
	}

	// Lines arrive in approval order; the running balance folds over them.
	running := begin
	for i := range lines {
		if lines[i].Type == domain.CashOut {
			running = running.Sub(lines[i].Amount)
		} else {
			running = running.Add(lines[i].Amount)
		}
		lines[i].RunningBalance = running
	}

	logger.Debug("Daily report built",
		slog.String("branch_id", branchID),
		slog.String("currency_code", currencyCode),
		slog.Int("line_count", len(lines)),
	)
	return &domain.DailyReport{
		BeginBalance:  begin,
		EndingBalance: running,
		Lines:         lines,
	}, nil
}
