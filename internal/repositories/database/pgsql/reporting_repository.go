package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new read-only repository for reports.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SumOpeningBalances totals the opening balances for a currency, optionally
// restricted to one branch.
func (r *PgxReportingRepository) SumOpeningBalances(ctx context.Context, branchID *string, currencyCode string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(opening_balance), 0)
		FROM branch_opening_balances
		WHERE currency_code = $1 AND ($2::text IS NULL OR branch_id = $2);
	`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, currencyCode, branchID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum opening balances for %s: %w", currencyCode, err)
	}
	return sum, nil
}

// SumNetMovement totals signed amounts over approved non-opening rows,
// optionally bounded by an inclusive date range.
func (r *PgxReportingRepository) SumNetMovement(ctx context.Context, branchID *string, currencyCode string, from, to *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE status = 'approved' AND NOT is_opening AND deleted_at IS NULL
			AND currency_code = $1
			AND ($2::text IS NULL OR branch_id = $2)
			AND ($3::date IS NULL OR transaction_date >= $3)
			AND ($4::date IS NULL OR transaction_date <= $4);
	`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, currencyCode, branchID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum net movement for %s: %w", currencyCode, err)
	}
	return sum, nil
}

// BalanceSummaryRows computes the begin/period/ending figures for every
// branch and currency pair that holds an opening balance or any approved
// movement in the window.
func (r *PgxReportingRepository) BalanceSummaryRows(ctx context.Context, from, to time.Time) ([]domain.BalanceSummaryRow, error) {
	// Approved movement before the window folds into the begin balance
	// together with the opening zero-point; the period column only counts
	// movement inside the window.
	query := `
		WITH movement AS (
			SELECT branch_id, currency_code,
				COALESCE(SUM(CASE WHEN transaction_date < $1
					THEN (CASE WHEN type = 'in' THEN amount ELSE -amount END) ELSE 0 END), 0) AS before_window,
				COALESCE(SUM(CASE WHEN transaction_date >= $1 AND transaction_date <= $2
					THEN (CASE WHEN type = 'in' THEN amount ELSE -amount END) ELSE 0 END), 0) AS in_window
			FROM transactions
			WHERE status = 'approved' AND NOT is_opening AND deleted_at IS NULL AND transaction_date <= $2
			GROUP BY branch_id, currency_code
		)
		SELECT b.name, b.code, pair.currency_code,
			COALESCE(ob.opening_balance, 0) + COALESCE(m.before_window, 0) AS begin_balance,
			COALESCE(m.in_window, 0) AS period_balance
		FROM (
			SELECT branch_id, currency_code FROM branch_opening_balances
			UNION
			SELECT branch_id, currency_code FROM movement
		) pair
		JOIN branches b ON b.branch_id = pair.branch_id
		LEFT JOIN branch_opening_balances ob
			ON ob.branch_id = pair.branch_id AND ob.currency_code = pair.currency_code
		LEFT JOIN movement m
			ON m.branch_id = pair.branch_id AND m.currency_code = pair.currency_code
		ORDER BY b.code, pair.currency_code;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance summary: %w", err)
	}
	defer rows.Close()

	summary, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BalanceSummaryRow, error) {
		var s domain.BalanceSummaryRow
		err := row.Scan(&s.BranchName, &s.BranchCode, &s.CurrencyCode, &s.BeginBalance, &s.TransactionBalance)
		if err != nil {
			return s, err
		}
		s.EndingBalance = s.BeginBalance.Add(s.TransactionBalance)
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect balance summary rows: %w", err)
	}

	return summary, nil
}

// ApprovedLines retrieves the approved rows of a window in approval order.
// Running balances are left zero for the caller to fold.
func (r *PgxReportingRepository) ApprovedLines(ctx context.Context, branchID *string, currencyCode string, from, to time.Time) ([]domain.ReportLine, error) {
	query := `
		SELECT t.transaction_id, t.approved_at, b.name, t.actor_name, t.description,
			t.currency_code || b.code || t.reference AS full_reference, t.type, t.amount
		FROM transactions t
		JOIN branches b ON b.branch_id = t.branch_id
		WHERE t.status = 'approved' AND NOT t.is_opening AND t.deleted_at IS NULL
			AND t.currency_code = $1
			AND ($2::text IS NULL OR t.branch_id = $2)
			AND t.transaction_date >= $3 AND t.transaction_date <= $4
		ORDER BY t.approved_at, t.created_at;
	`

	rows, err := r.Pool.Query(ctx, query, currencyCode, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query report lines: %w", err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReportLine, error) {
		var l domain.ReportLine
		var legType string
		err := row.Scan(&l.TransactionID, &l.ApprovedAt, &l.BranchName, &l.ActorName,
			&l.Description, &l.FullReference, &legType, &l.Amount)
		l.Type = domain.TransactionType(legType)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect report lines: %w", err)
	}

	return lines, nil
}
