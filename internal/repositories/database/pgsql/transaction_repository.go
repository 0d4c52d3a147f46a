package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	"github.com/kasapp/cashledger/internal/models"
	"github.com/kasapp/cashledger/internal/utils/amountwords"
	"github.com/kasapp/cashledger/internal/utils/mapping"
	"github.com/kasapp/cashledger/internal/utils/pagination"
)

// maxReferenceAttempts bounds the lock-scan-insert retry cycle. Exhausting
// it surfaces as ErrReferenceGeneration.
const maxReferenceAttempts = 5

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger rows.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, reference, branch_id, currency_code, transaction_date, type, amount,
	description, actor_name, status, approved_at, approved_by, is_opening, branch_transfer_id,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.BranchID,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.ActorName,
		&m.Status,
		&m.ApprovedAt,
		&m.ApprovedBy,
		&m.IsOpening,
		&m.BranchTransferID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.DeletedBy,
	)
	return m, err
}

// allocateReference runs the serialized part of reference generation: lock
// every live row sharing the prefix, find the highest suffix, and return its
// successor. Must run inside the transaction that will insert the row, so
// concurrent writers queue on the locked prefix group.
func allocateReference(ctx context.Context, tx pgx.Tx, date time.Time, txnType domain.TransactionType) (string, error) {
	prefix := domain.ReferencePrefix(date, txnType)

	rows, err := tx.Query(ctx, `
		SELECT reference FROM transactions
		WHERE reference LIKE $1 || '%' AND deleted_at IS NULL
		FOR UPDATE;
	`, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to lock reference prefix %s: %w", prefix, err)
	}
	references, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var ref string
		err := row.Scan(&ref)
		return ref, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to collect references for prefix %s: %w", prefix, err)
	}

	return domain.NextReference(prefix, domain.MaxSequence(prefix, references)), nil
}

// insertLedgerRow inserts one transaction row inside tx. The caller owns
// uniqueness-violation handling.
func insertLedgerRow(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO transactions (transaction_id, reference, branch_id, currency_code, transaction_date, type, amount,
			description, actor_name, status, approved_at, approved_by, is_opening, branch_transfer_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`,
		m.TransactionID,
		m.Reference,
		m.BranchID,
		m.CurrencyCode,
		m.TransactionDate,
		m.Type,
		m.Amount,
		m.Description,
		m.ActorName,
		m.Status,
		m.ApprovedAt,
		m.ApprovedBy,
		m.IsOpening,
		m.BranchTransferID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

// isUniqueViolation reports whether err is a Postgres unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateTransaction inserts a pending row, generating its reference inside
// the same database transaction. The lock-scan-insert cycle retries on a
// residual uniqueness violation.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return nil, err
		}

		reference, err := allocateReference(ctx, tx, txn.TransactionDate, txn.Type)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return nil, err
		}
		txn.Reference = reference

		if err := insertLedgerRow(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
			_ = r.Rollback(ctx, tx)
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
		}

		if err := r.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &txn, nil
	}
	return nil, fmt.Errorf("%w: exhausted %d attempts for date %s", apperrors.ErrReferenceGeneration, maxReferenceAttempts, txn.TransactionDate.Format("2006-01-02"))
}

// UpdateTransaction rewrites the mutable fields of a pending row,
// reallocating the reference when requested.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, regenerateReference bool) (*domain.Transaction, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return nil, err
		}

		if regenerateReference {
			reference, err := allocateReference(ctx, tx, txn.TransactionDate, txn.Type)
			if err != nil {
				_ = r.Rollback(ctx, tx)
				return nil, err
			}
			txn.Reference = reference
		}

		m := mapping.ToModelTransaction(txn)
		tag, err := tx.Exec(ctx, `
			UPDATE transactions
			SET reference = $2, branch_id = $3, currency_code = $4, transaction_date = $5, type = $6,
				amount = $7, description = $8, actor_name = $9, last_updated_at = $10, last_updated_by = $11
			WHERE transaction_id = $1 AND status = 'pending' AND deleted_at IS NULL;
		`,
			m.TransactionID,
			m.Reference,
			m.BranchID,
			m.CurrencyCode,
			m.TransactionDate,
			m.Type,
			m.Amount,
			m.Description,
			m.ActorName,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if regenerateReference && isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
		}
		if tag.RowsAffected() == 0 {
			_ = r.Rollback(ctx, tx)
			return nil, fmt.Errorf("%w: pending transaction %s", apperrors.ErrNotFound, m.TransactionID)
		}

		if err := r.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &txn, nil
	}
	return nil, fmt.Errorf("%w: exhausted %d attempts updating %s", apperrors.ErrReferenceGeneration, maxReferenceAttempts, txn.TransactionID)
}

// DeleteTransaction soft-deletes a single pending row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, deletedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET deleted_at = now(), deleted_by = $2
		WHERE transaction_id = $1 AND status = 'pending' AND deleted_at IS NULL;
	`, transactionID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pending transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// FindTransactionByID retrieves a non-deleted transaction by ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND deleted_at IS NULL;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionByFullReference resolves a scanned code by rebuilding the
// display projection (currency code + branch code + reference) in SQL.
func (r *PgxTransactionRepository) FindTransactionByFullReference(ctx context.Context, scanned string) (*domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.reference, t.branch_id, t.currency_code, t.transaction_date, t.type, t.amount,
			t.description, t.actor_name, t.status, t.approved_at, t.approved_by, t.is_opening, t.branch_transfer_id,
			t.created_at, t.created_by, t.last_updated_at, t.last_updated_by, t.deleted_at, t.deleted_by
		FROM transactions t
		JOIN branches b ON b.branch_id = t.branch_id
		WHERE t.currency_code || b.code || t.reference = $1 AND t.deleted_at IS NULL;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, scanned))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, scanned)
		}
		return nil, fmt.Errorf("failed to resolve reference %s: %w", scanned, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionsByTransferID retrieves the legs of a branch transfer,
// outbound leg first.
func (r *PgxTransactionRepository) FindTransactionsByTransferID(ctx context.Context, branchTransferID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE branch_transfer_id = $1 AND deleted_at IS NULL
		ORDER BY type DESC;`

	rows, err := r.Pool.Query(ctx, query, branchTransferID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer legs for %s: %w", branchTransferID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect transfer legs for %s: %w", branchTransferID, err)
	}

	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListTransactions retrieves a filtered page, newest first, using
// (transaction_date, created_at) cursor pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE deleted_at IS NULL`
	args := []interface{}{}

	appendArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.Type != nil {
		appendArg(` AND type = $%d`, string(*filter.Type))
	}
	if filter.BranchID != nil {
		appendArg(` AND branch_id = $%d`, *filter.BranchID)
	}
	if filter.CurrencyCode != nil {
		appendArg(` AND currency_code = $%d`, *filter.CurrencyCode)
	}
	if filter.Status != nil {
		appendArg(` AND status = $%d`, string(*filter.Status))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (reference ILIKE $` + n + ` OR actor_name ILIKE $` + n + ` OR description ILIKE $` + n + `)`
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (transaction_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(ms), nextTokenVal, nil
}

// FindSlipRows retrieves the print projection for the given IDs, ordered by
// transaction date. The amount-in-words rendering happens here so callers
// get a slip ready to print.
func (r *PgxTransactionRepository) FindSlipRows(ctx context.Context, transactionIDs []string) ([]domain.SlipRow, error) {
	query := `
		SELECT t.transaction_id, t.currency_code || b.code || t.reference AS full_reference, b.name,
			t.currency_code, t.type, t.amount, t.actor_name, t.description, t.transaction_date
		FROM transactions t
		JOIN branches b ON b.branch_id = t.branch_id
		WHERE t.transaction_id = ANY($1) AND t.deleted_at IS NULL
		ORDER BY t.transaction_date;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query slip rows: %w", err)
	}
	defer rows.Close()

	slips, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SlipRow, error) {
		var s domain.SlipRow
		var txnType string
		err := row.Scan(
			&s.TransactionID,
			&s.FullReference,
			&s.BranchName,
			&s.CurrencyCode,
			&txnType,
			&s.Amount,
			&s.ActorName,
			&s.Description,
			&s.TransactionDate,
		)
		s.Type = domain.TransactionType(txnType)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect slip rows: %w", err)
	}

	for i := range slips {
		slips[i].AmountInWords = amountwords.FromDecimal(slips[i].Amount, slips[i].CurrencyCode)
	}
	return slips, nil
}

// HasNonOpeningTransactions reports whether real movements exist for a
// branch/currency pair.
func (r *PgxTransactionRepository) HasNonOpeningTransactions(ctx context.Context, branchID, currencyCode string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE branch_id = $1 AND currency_code = $2 AND NOT is_opening AND deleted_at IS NULL
		);
	`, branchID, currencyCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check movements for branch %s: %w", branchID, err)
	}
	return exists, nil
}

// HasTransactionsForBranch reports whether the branch is referenced by any
// live transaction.
func (r *PgxTransactionRepository) HasTransactionsForBranch(ctx context.Context, branchID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE branch_id = $1 AND deleted_at IS NULL);
	`, branchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transactions for branch %s: %w", branchID, err)
	}
	return exists, nil
}

// HasTransactionsForCurrency reports whether the currency is referenced by
// any live transaction.
func (r *PgxTransactionRepository) HasTransactionsForCurrency(ctx context.Context, currencyCode string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE currency_code = $1 AND deleted_at IS NULL);
	`, currencyCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transactions for currency %s: %w", currencyCode, err)
	}
	return exists, nil
}

// lockTransactionStatus locks one row and returns its current status.
func lockTransactionStatus(ctx context.Context, tx pgx.Tx, transactionID string) (domain.TransactionStatus, error) {
	var status string
	err := tx.QueryRow(ctx, `
		SELECT status FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`, transactionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return "", fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	return domain.TransactionStatus(status), nil
}

// ApproveTransaction transitions a standalone pending row to approved.
func (r *PgxTransactionRepository) ApproveTransaction(ctx context.Context, transactionID, approverID string, approvedAt time.Time) error {
	return r.decideTransaction(ctx, transactionID, approverID, domain.StatusApproved, &approvedAt)
}

// RejectTransaction transitions a standalone pending row to rejected. No
// approval stamps are written; the decider is kept in last_updated_by.
func (r *PgxTransactionRepository) RejectTransaction(ctx context.Context, transactionID, approverID string) error {
	return r.decideTransaction(ctx, transactionID, approverID, domain.StatusRejected, nil)
}

func (r *PgxTransactionRepository) decideTransaction(ctx context.Context, transactionID, deciderID string, target domain.TransactionStatus, approvedAt *time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	status, err := lockTransactionStatus(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if status != domain.StatusPending {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, transactionID, status)
	}

	var approvedBy *string
	if target == domain.StatusApproved {
		approvedBy = &deciderID
	}
	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET status = $2, approved_at = $3, approved_by = $4, last_updated_at = now(), last_updated_by = $5
		WHERE transaction_id = $1;
	`, transactionID, string(target), approvedAt, approvedBy, deciderID)
	if err != nil {
		return fmt.Errorf("failed to %s transaction %s: %w", target, transactionID, err)
	}

	return r.Commit(ctx, tx)
}

// ApproveTransferGroup settles every leg of a transfer and its parent with
// identical stamps, or nothing at all.
func (r *PgxTransactionRepository) ApproveTransferGroup(ctx context.Context, branchTransferID, approverID string, approvedAt time.Time) error {
	return r.decideTransferGroup(ctx, branchTransferID, approverID, domain.StatusApproved, &approvedAt)
}

// RejectTransferGroup mirrors ApproveTransferGroup for rejections.
func (r *PgxTransactionRepository) RejectTransferGroup(ctx context.Context, branchTransferID, approverID string) error {
	return r.decideTransferGroup(ctx, branchTransferID, approverID, domain.StatusRejected, nil)
}

func (r *PgxTransactionRepository) decideTransferGroup(ctx context.Context, branchTransferID, deciderID string, target domain.TransactionStatus, approvedAt *time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	// Lock both legs before inspecting them so a concurrent decision on
	// the sibling leg cannot split the pair.
	rows, err := tx.Query(ctx, `
		SELECT status FROM transactions
		WHERE branch_transfer_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`, branchTransferID)
	if err != nil {
		return fmt.Errorf("failed to lock transfer legs for %s: %w", branchTransferID, err)
	}
	statuses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var s string
		err := row.Scan(&s)
		return s, err
	})
	if err != nil {
		return fmt.Errorf("failed to collect transfer leg statuses for %s: %w", branchTransferID, err)
	}
	if len(statuses) == 0 {
		return fmt.Errorf("%w: transfer %s has no legs", apperrors.ErrNotFound, branchTransferID)
	}
	for _, status := range statuses {
		if domain.TransactionStatus(status) != domain.StatusPending {
			return fmt.Errorf("%w: transfer %s has a %s leg", apperrors.ErrPartialApprovalConflict, branchTransferID, status)
		}
	}

	var approvedBy *string
	if target == domain.StatusApproved {
		approvedBy = &deciderID
	}
	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET status = $2, approved_at = $3, approved_by = $4, last_updated_at = now(), last_updated_by = $5
		WHERE branch_transfer_id = $1 AND deleted_at IS NULL;
	`, branchTransferID, string(target), approvedAt, approvedBy, deciderID)
	if err != nil {
		return fmt.Errorf("failed to %s transfer legs for %s: %w", target, branchTransferID, err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE branch_transfers
		SET status = $2, approved_at = $3, approved_by = $4, last_updated_at = now(), last_updated_by = $5
		WHERE branch_transfer_id = $1;
	`, branchTransferID, string(target), approvedAt, approvedBy, deciderID)
	if err != nil {
		return fmt.Errorf("failed to %s transfer %s: %w", target, branchTransferID, err)
	}

	return r.Commit(ctx, tx)
}
