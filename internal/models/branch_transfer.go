package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BranchTransfer is the flat persistence shape of a transfer parent record.
type BranchTransfer struct {
	BranchTransferID string          `db:"branch_transfer_id"`
	FromBranchID     string          `db:"from_branch_id"`
	ToBranchID       string          `db:"to_branch_id"`
	CurrencyCode     string          `db:"currency_code"`
	TransferDate     time.Time       `db:"transfer_date"`
	Amount           decimal.Decimal `db:"amount"`
	Description      string          `db:"description"`
	Status           string          `db:"status"`
	ApprovedAt       *time.Time      `db:"approved_at"`
	ApprovedBy       *string         `db:"approved_by"`
	AuditFields
}
