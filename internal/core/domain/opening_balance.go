package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance is the zero-point of a (branch, currency) ledger. At most
// one exists per pair. It is mirrored by an opening-seed Transaction and
// stays editable only until a non-opening transaction exists for the pair.
type OpeningBalance struct {
	OpeningBalanceID string          `json:"openingBalanceID"` // Primary Key (UUID)
	BranchID         string          `json:"branchID"`
	CurrencyCode     string          `json:"currencyCode"`
	Amount           decimal.Decimal `json:"amount"` // >= 0
	OpeningDate      time.Time       `json:"openingDate"`
	AuditFields
}
