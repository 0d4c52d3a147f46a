package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	"github.com/kasapp/cashledger/internal/models"
	"github.com/kasapp/cashledger/internal/utils/mapping"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryWithTx {
	return &PgxBranchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BranchRepositoryWithTx = (*PgxBranchRepository)(nil)

const branchColumns = `branch_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBranch(row pgx.Row) (models.Branch, error) {
	var m models.Branch
	err := row.Scan(
		&m.BranchID,
		&m.Code,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBranch inserts a new branch.
func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)

	query := `
		INSERT INTO branches (branch_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BranchID,
		m.Code,
		m.Name,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on code
			return fmt.Errorf("%w: branch code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save branch %s: %w", m.BranchID, err)
	}
	return nil
}

// UpdateBranch rewrites a branch.
func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)

	query := `
		UPDATE branches
		SET code = $2, name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE branch_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BranchID,
		m.Code,
		m.Name,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: branch code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to update branch %s: %w", m.BranchID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, m.BranchID)
	}
	return nil
}

// FindBranchByID retrieves a branch by its ID.
func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE branch_id = $1;`

	m, err := scanBranch(r.Pool.QueryRow(ctx, query, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return nil, fmt.Errorf("failed to find branch by id %s: %w", branchID, err)
	}

	d := mapping.ToDomainBranch(m)
	return &d, nil
}

// FindBranchByCode retrieves a branch by its unique short code.
func (r *PgxBranchRepository) FindBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE code = $1;`

	m, err := scanBranch(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find branch by code %s: %w", code, err)
	}

	d := mapping.ToDomainBranch(m)
	return &d, nil
}

// ListBranches retrieves all branches, optionally only active ones.
func (r *PgxBranchRepository) ListBranches(ctx context.Context, onlyActive bool) ([]domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Branch, error) {
		return scanBranch(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect branch rows: %w", err)
	}

	return mapping.ToDomainBranchSlice(ms), nil
}
