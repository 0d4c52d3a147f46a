package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the flat persistence shape of a ledger row. The tagged
// variant view lives on the domain type; storage keeps the plain
// type/is_opening columns for schema compatibility.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	Reference        string          `db:"reference"`
	BranchID         string          `db:"branch_id"`
	CurrencyCode     string          `db:"currency_code"`
	TransactionDate  time.Time       `db:"transaction_date"`
	Type             string          `db:"type"`
	Amount           decimal.Decimal `db:"amount"`
	Description      string          `db:"description"`
	ActorName        string          `db:"actor_name"`
	Status           string          `db:"status"`
	ApprovedAt       *time.Time      `db:"approved_at"`
	ApprovedBy       *string         `db:"approved_by"`
	IsOpening        bool            `db:"is_opening"`
	BranchTransferID *string         `db:"branch_transfer_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}
