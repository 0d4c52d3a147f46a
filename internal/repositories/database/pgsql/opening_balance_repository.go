package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	"github.com/kasapp/cashledger/internal/models"
	"github.com/kasapp/cashledger/internal/utils/mapping"
)

type PgxOpeningBalanceRepository struct {
	BaseRepository
}

// newPgxOpeningBalanceRepository creates a new repository for opening balances.
func newPgxOpeningBalanceRepository(pool *pgxpool.Pool) portsrepo.OpeningBalanceRepositoryWithTx {
	return &PgxOpeningBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OpeningBalanceRepositoryWithTx = (*PgxOpeningBalanceRepository)(nil)

const openingBalanceColumns = `opening_balance_id, branch_id, currency_code, opening_balance, opening_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOpeningBalance(row pgx.Row) (models.OpeningBalance, error) {
	var m models.OpeningBalance
	err := row.Scan(
		&m.OpeningBalanceID,
		&m.BranchID,
		&m.CurrencyCode,
		&m.Amount,
		&m.OpeningDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOpeningBalanceWithSeed atomically inserts the opening balance and its
// mirrored opening-seed transaction.
func (r *PgxOpeningBalanceRepository) SaveOpeningBalanceWithSeed(ctx context.Context, ob domain.OpeningBalance, seed domain.Transaction) error {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		m := mapping.ToModelOpeningBalance(ob)
		_, err = tx.Exec(ctx, `
			INSERT INTO branch_opening_balances (opening_balance_id, branch_id, currency_code, opening_balance,
				opening_date, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			m.OpeningBalanceID,
			m.BranchID,
			m.CurrencyCode,
			m.Amount,
			m.OpeningDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: opening balance for branch %s in %s", apperrors.ErrDuplicate, ob.BranchID, ob.CurrencyCode)
			}
			return fmt.Errorf("failed to insert opening balance %s: %w", m.OpeningBalanceID, err)
		}

		retry, err := insertLeg(ctx, tx, &seed)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if retry {
				continue
			}
			return err
		}

		return r.Commit(ctx, tx)
	}
	return fmt.Errorf("%w: exhausted %d attempts seeding opening balance for branch %s", apperrors.ErrReferenceGeneration, maxReferenceAttempts, ob.BranchID)
}

// UpdateOpeningBalanceWithSeed atomically rewrites the amount and date of
// the opening balance and its seed transaction. A seed whose reference
// prefix no longer matches the new date gets a fresh reference.
func (r *PgxOpeningBalanceRepository) UpdateOpeningBalanceWithSeed(ctx context.Context, ob domain.OpeningBalance) error {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		m := mapping.ToModelOpeningBalance(ob)
		tag, err := tx.Exec(ctx, `
			UPDATE branch_opening_balances
			SET opening_balance = $2, opening_date = $3, last_updated_at = $4, last_updated_by = $5
			WHERE opening_balance_id = $1;
		`,
			m.OpeningBalanceID,
			m.Amount,
			m.OpeningDate,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return fmt.Errorf("failed to update opening balance %s: %w", m.OpeningBalanceID, err)
		}
		if tag.RowsAffected() == 0 {
			_ = r.Rollback(ctx, tx)
			return fmt.Errorf("%w: opening balance %s", apperrors.ErrNotFound, m.OpeningBalanceID)
		}

		retry, err := r.rewriteSeed(ctx, tx, ob)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if retry {
				continue
			}
			return err
		}

		return r.Commit(ctx, tx)
	}
	return fmt.Errorf("%w: exhausted %d attempts updating opening balance %s", apperrors.ErrReferenceGeneration, maxReferenceAttempts, ob.OpeningBalanceID)
}

func (r *PgxOpeningBalanceRepository) rewriteSeed(ctx context.Context, tx pgx.Tx, ob domain.OpeningBalance) (bool, error) {
	var seedID, reference string
	err := tx.QueryRow(ctx, `
		SELECT transaction_id, reference FROM transactions
		WHERE branch_id = $1 AND currency_code = $2 AND is_opening AND deleted_at IS NULL
		FOR UPDATE;
	`, ob.BranchID, ob.CurrencyCode).Scan(&seedID, &reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: opening seed for branch %s in %s", apperrors.ErrNotFound, ob.BranchID, ob.CurrencyCode)
		}
		return false, fmt.Errorf("failed to lock opening seed for branch %s: %w", ob.BranchID, err)
	}

	if !strings.HasPrefix(reference, domain.ReferencePrefix(ob.OpeningDate, domain.CashIn)) {
		reference, err = allocateReference(ctx, tx, ob.OpeningDate, domain.CashIn)
		if err != nil {
			return false, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET reference = $2, amount = $3, transaction_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1;
	`, seedID, reference, ob.Amount, ob.OpeningDate, ob.LastUpdatedAt, ob.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return true, err
		}
		return false, fmt.Errorf("failed to update opening seed %s: %w", seedID, err)
	}
	return false, nil
}

// FindOpeningBalanceByID retrieves an opening balance by ID.
func (r *PgxOpeningBalanceRepository) FindOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM branch_opening_balances WHERE opening_balance_id = $1;`

	m, err := scanOpeningBalance(r.Pool.QueryRow(ctx, query, openingBalanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: opening balance %s", apperrors.ErrNotFound, openingBalanceID)
		}
		return nil, fmt.Errorf("failed to find opening balance %s: %w", openingBalanceID, err)
	}

	d := mapping.ToDomainOpeningBalance(m)
	return &d, nil
}

// FindOpeningBalance retrieves the zero-point of a branch/currency pair.
func (r *PgxOpeningBalanceRepository) FindOpeningBalance(ctx context.Context, branchID, currencyCode string) (*domain.OpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM branch_opening_balances WHERE branch_id = $1 AND currency_code = $2;`

	m, err := scanOpeningBalance(r.Pool.QueryRow(ctx, query, branchID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: opening balance for branch %s in %s", apperrors.ErrNotFound, branchID, currencyCode)
		}
		return nil, fmt.Errorf("failed to find opening balance for branch %s: %w", branchID, err)
	}

	d := mapping.ToDomainOpeningBalance(m)
	return &d, nil
}

// ListOpeningBalances retrieves all opening balances, optionally for one branch.
func (r *PgxOpeningBalanceRepository) ListOpeningBalances(ctx context.Context, branchID *string) ([]domain.OpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM branch_opening_balances`
	args := []interface{}{}

	if branchID != nil {
		args = append(args, *branchID)
		query += ` WHERE branch_id = $1`
	}
	query += ` ORDER BY branch_id, currency_code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening balances: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OpeningBalance, error) {
		return scanOpeningBalance(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect opening balance rows: %w", err)
	}

	return mapping.ToDomainOpeningBalanceSlice(ms), nil
}
