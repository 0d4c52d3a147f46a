package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	"github.com/kasapp/cashledger/internal/models"
	"github.com/kasapp/cashledger/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, name, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod persists a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelAccountingPeriod(period)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO account_periods (period_id, name, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period named %q", apperrors.ErrDuplicate, period.Name)
		}
		return fmt.Errorf("failed to insert period %s: %w", m.PeriodID, err)
	}
	return nil
}

// UpdatePeriod rewrites a period.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelAccountingPeriod(period)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE account_periods
		SET name = $2, start_date = $3, end_date = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE period_id = $1;
	`,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period named %q", apperrors.ErrDuplicate, period.Name)
		}
		return fmt.Errorf("failed to update period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, m.PeriodID)
	}
	return nil
}

// DeletePeriod removes a period.
func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_periods WHERE period_id = $1;`, periodID)
	if err != nil {
		return fmt.Errorf("failed to delete period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
	}
	return nil
}

// FindPeriodByID retrieves a period by ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM account_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	d := mapping.ToDomainAccountingPeriod(m)
	return &d, nil
}

// FindPeriodCovering retrieves the period whose range contains the date.
func (r *PgxPeriodRepository) FindPeriodCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM account_periods WHERE $1 BETWEEN start_date AND end_date;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no period covers %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find period covering %s: %w", date.Format("2006-01-02"), err)
	}

	d := mapping.ToDomainAccountingPeriod(m)
	return &d, nil
}

// ListPeriods retrieves all periods ordered by start date descending.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM account_periods ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AccountingPeriod, error) {
		return scanPeriod(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect period rows: %w", err)
	}

	return mapping.ToDomainAccountingPeriodSlice(ms), nil
}

// HasOverlap reports whether any period (except excludeID) intersects the range.
func (r *PgxPeriodRepository) HasOverlap(ctx context.Context, start, end time.Time, excludeID *string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM account_periods
		WHERE start_date <= $2 AND end_date >= $1 AND ($3::text IS NULL OR period_id <> $3)
	);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, start, end, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check period overlap: %w", err)
	}
	return exists, nil
}

// HasOpenPeriod reports whether any period (except excludeID) is open.
func (r *PgxPeriodRepository) HasOpenPeriod(ctx context.Context, excludeID *string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM account_periods
		WHERE status = 'open' AND ($1::text IS NULL OR period_id <> $1)
	);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for open period: %w", err)
	}
	return exists, nil
}

// HasPeriodAfter reports whether any period starts after the date.
func (r *PgxPeriodRepository) HasPeriodAfter(ctx context.Context, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM account_periods WHERE start_date > $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for later period: %w", err)
	}
	return exists, nil
}
