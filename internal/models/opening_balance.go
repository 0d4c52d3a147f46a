package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance is the flat persistence shape of a branch/currency zero-point.
type OpeningBalance struct {
	OpeningBalanceID string          `db:"opening_balance_id"`
	BranchID         string          `db:"branch_id"`
	CurrencyCode     string          `db:"currency_code"`
	Amount           decimal.Decimal `db:"opening_balance"`
	OpeningDate      time.Time       `db:"opening_date"`
	AuditFields
}
