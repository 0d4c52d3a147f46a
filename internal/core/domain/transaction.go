package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the flow direction of a cash movement.
type TransactionType string

const (
	CashIn  TransactionType = "in"
	CashOut TransactionType = "out"
)

// TransactionStatus is the approval lifecycle state. pending is initial;
// approved and rejected are terminal.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
)

// TransactionKind is the tagged-variant view over the type/is_opening flags.
// Business rules switch on this instead of checking raw flags.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdrawal  TransactionKind = "WITHDRAWAL"
	KindOpeningSeed TransactionKind = "OPENING_SEED"
	KindTransferLeg TransactionKind = "TRANSFER_LEG"
)

// Transaction is a single immutable monetary movement in the ledger.
type Transaction struct {
	TransactionID    string            `json:"transactionID"` // Primary Key (UUID)
	Reference        string            `json:"reference"`     // Unique, generated (see reference.go)
	BranchID         string            `json:"branchID"`
	CurrencyCode     string            `json:"currencyCode"`
	TransactionDate  time.Time         `json:"transactionDate"`
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"` // > 0, except opening seeds which may be >= 0
	Description      string            `json:"description"`
	ActorName        string            `json:"actorName"` // payer/depositor free text
	Status           TransactionStatus `json:"status"`
	ApprovedAt       *time.Time        `json:"approvedAt,omitempty"`
	ApprovedBy       *string           `json:"approvedBy,omitempty"`
	IsOpening        bool              `json:"isOpening"`
	BranchTransferID *string           `json:"branchTransferID,omitempty"` // set for transfer legs
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string    `json:"deletedBy,omitempty"`
}

// Kind classifies the transaction into its business variant.
func (t Transaction) Kind() TransactionKind {
	switch {
	case t.IsOpening:
		return KindOpeningSeed
	case t.BranchTransferID != nil:
		return KindTransferLeg
	case t.Type == CashIn:
		return KindDeposit
	default:
		return KindWithdrawal
	}
}

// IsPending reports whether the transaction can still be edited, deleted,
// approved or rejected.
func (t Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// IsTransferLeg reports whether the transaction belongs to a branch transfer.
func (t Transaction) IsTransferLeg() bool {
	return t.BranchTransferID != nil
}

// SignedAmount returns +amount for inbound and -amount for outbound flow;
// it is the value folded into balances.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == CashOut {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the structural invariants of the row.
func (t Transaction) Validate() error {
	if t.Type != CashIn && t.Type != CashOut {
		return errInvalidTransactionType
	}
	if t.IsOpening {
		if t.Amount.IsNegative() {
			return errOpeningAmountNegative
		}
		return nil
	}
	if !t.Amount.IsPositive() {
		return errAmountNotPositive
	}
	return nil
}
