package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	"github.com/kasapp/cashledger/internal/models"
	"github.com/kasapp/cashledger/internal/utils/mapping"
	"github.com/kasapp/cashledger/internal/utils/pagination"
)

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for branch transfers.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransferRepositoryWithTx = (*PgxTransferRepository)(nil)

const transferColumns = `branch_transfer_id, from_branch_id, to_branch_id, currency_code, transfer_date, amount,
	description, status, approved_at, approved_by, created_at, created_by, last_updated_at, last_updated_by`

func scanTransfer(row pgx.Row) (models.BranchTransfer, error) {
	var m models.BranchTransfer
	err := row.Scan(
		&m.BranchTransferID,
		&m.FromBranchID,
		&m.ToBranchID,
		&m.CurrencyCode,
		&m.TransferDate,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.ApprovedAt,
		&m.ApprovedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateTransferWithLegs atomically inserts the parent transfer and its two
// ledger legs. Each leg's reference is allocated inside the same database
// transaction, outbound before inbound.
func (r *PgxTransferRepository) CreateTransferWithLegs(ctx context.Context, transfer domain.BranchTransfer, outLeg, inLeg domain.Transaction) (*domain.BranchTransfer, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return nil, err
		}

		m := mapping.ToModelBranchTransfer(transfer)
		_, err = tx.Exec(ctx, `
			INSERT INTO branch_transfers (branch_transfer_id, from_branch_id, to_branch_id, currency_code, transfer_date,
				amount, description, status, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`,
			m.BranchTransferID,
			m.FromBranchID,
			m.ToBranchID,
			m.CurrencyCode,
			m.TransferDate,
			m.Amount,
			m.Description,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return nil, fmt.Errorf("failed to insert transfer %s: %w", m.BranchTransferID, err)
		}

		retry, err := insertLeg(ctx, tx, &outLeg)
		if err == nil {
			retry, err = insertLeg(ctx, tx, &inLeg)
		}
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if retry {
				continue
			}
			return nil, err
		}

		if err := r.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &transfer, nil
	}
	return nil, fmt.Errorf("%w: exhausted %d attempts for transfer on %s", apperrors.ErrReferenceGeneration, maxReferenceAttempts, transfer.TransferDate.Format("2006-01-02"))
}

// insertLeg allocates a reference for one leg and inserts it. The bool
// result asks the caller to retry the whole cycle on a residual
// uniqueness violation.
func insertLeg(ctx context.Context, tx pgx.Tx, leg *domain.Transaction) (bool, error) {
	reference, err := allocateReference(ctx, tx, leg.TransactionDate, leg.Type)
	if err != nil {
		return false, err
	}
	leg.Reference = reference

	if err := insertLedgerRow(ctx, tx, mapping.ToModelTransaction(*leg)); err != nil {
		if isUniqueViolation(err) {
			return true, err
		}
		return false, fmt.Errorf("failed to insert transfer leg %s: %w", leg.TransactionID, err)
	}
	return false, nil
}

// UpdateTransferWithLegs rewrites a pending transfer and propagates the
// changes to both legs. A leg whose reference prefix no longer matches the
// new date gets a fresh reference.
func (r *PgxTransferRepository) UpdateTransferWithLegs(ctx context.Context, transfer domain.BranchTransfer) error {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		m := mapping.ToModelBranchTransfer(transfer)
		tag, err := tx.Exec(ctx, `
			UPDATE branch_transfers
			SET from_branch_id = $2, to_branch_id = $3, currency_code = $4, transfer_date = $5,
				amount = $6, description = $7, last_updated_at = $8, last_updated_by = $9
			WHERE branch_transfer_id = $1 AND status = 'pending';
		`,
			m.BranchTransferID,
			m.FromBranchID,
			m.ToBranchID,
			m.CurrencyCode,
			m.TransferDate,
			m.Amount,
			m.Description,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return fmt.Errorf("failed to update transfer %s: %w", m.BranchTransferID, err)
		}
		if tag.RowsAffected() == 0 {
			_ = r.Rollback(ctx, tx)
			return fmt.Errorf("%w: pending transfer %s", apperrors.ErrNotFound, m.BranchTransferID)
		}

		retry, err := r.rewriteLegs(ctx, tx, transfer)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if retry {
				continue
			}
			return err
		}

		return r.Commit(ctx, tx)
	}
	return fmt.Errorf("%w: exhausted %d attempts updating transfer %s", apperrors.ErrReferenceGeneration, maxReferenceAttempts, transfer.BranchTransferID)
}

func (r *PgxTransferRepository) rewriteLegs(ctx context.Context, tx pgx.Tx, transfer domain.BranchTransfer) (bool, error) {
	rows, err := tx.Query(ctx, `
		SELECT transaction_id, reference, type FROM transactions
		WHERE branch_transfer_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`, transfer.BranchTransferID)
	if err != nil {
		return false, fmt.Errorf("failed to lock legs for transfer %s: %w", transfer.BranchTransferID, err)
	}
	type legRow struct {
		id, reference, legType string
	}
	legs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (legRow, error) {
		var l legRow
		err := row.Scan(&l.id, &l.reference, &l.legType)
		return l, err
	})
	if err != nil {
		return false, fmt.Errorf("failed to collect legs for transfer %s: %w", transfer.BranchTransferID, err)
	}

	for _, leg := range legs {
		legType := domain.TransactionType(leg.legType)
		branchID := transfer.FromBranchID
		if legType == domain.CashIn {
			branchID = transfer.ToBranchID
		}

		reference := leg.reference
		if !strings.HasPrefix(reference, domain.ReferencePrefix(transfer.TransferDate, legType)) {
			reference, err = allocateReference(ctx, tx, transfer.TransferDate, legType)
			if err != nil {
				return false, err
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE transactions
			SET reference = $2, branch_id = $3, currency_code = $4, transaction_date = $5,
				amount = $6, description = $7, last_updated_at = $8, last_updated_by = $9
			WHERE transaction_id = $1;
		`,
			leg.id,
			reference,
			branchID,
			transfer.CurrencyCode,
			transfer.TransferDate,
			transfer.Amount,
			transfer.Description,
			transfer.LastUpdatedAt,
			transfer.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return true, err
			}
			return false, fmt.Errorf("failed to update transfer leg %s: %w", leg.id, err)
		}
	}
	return false, nil
}

// DeleteTransferGroup soft-deletes both legs and removes the parent record.
func (r *PgxTransferRepository) DeleteTransferGroup(ctx context.Context, branchTransferID, deletedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET deleted_at = now(), deleted_by = $2
		WHERE branch_transfer_id = $1 AND deleted_at IS NULL;
	`, branchTransferID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete legs for transfer %s: %w", branchTransferID, err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM branch_transfers WHERE branch_transfer_id = $1 AND status = 'pending';
	`, branchTransferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", branchTransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pending transfer %s", apperrors.ErrNotFound, branchTransferID)
	}

	return r.Commit(ctx, tx)
}

// FindTransferByID retrieves a transfer by ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, branchTransferID string) (*domain.BranchTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM branch_transfers WHERE branch_transfer_id = $1;`

	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, branchTransferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, branchTransferID)
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", branchTransferID, err)
	}

	d := mapping.ToDomainBranchTransfer(m)
	return &d, nil
}

// ListTransfers retrieves a filtered page, newest first, using
// (transfer_date, created_at) cursor pagination.
func (r *PgxTransferRepository) ListTransfers(ctx context.Context, filter portsrepo.TransferListFilter, limit int, nextToken *string) ([]domain.BranchTransfer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + transferColumns + ` FROM branch_transfers WHERE true`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.CurrencyCode != nil {
		args = append(args, *filter.CurrencyCode)
		query += ` AND currency_code = $` + strconv.Itoa(len(args))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		query += ` AND description ILIKE $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (transfer_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(` ORDER BY transfer_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BranchTransfer, error) {
		return scanTransfer(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect transfer rows: %w", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.TransferDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainBranchTransferSlice(ms), nextTokenVal, nil
}
