package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BranchTransfer is the parent record of a paired OUT/IN transaction set
// moving funds between two branches. Its two legs share its amount, date,
// currency and lifecycle at all times.
type BranchTransfer struct {
	BranchTransferID string            `json:"branchTransferID"` // Primary Key (UUID)
	FromBranchID     string            `json:"fromBranchID"`
	ToBranchID       string            `json:"toBranchID"` // != FromBranchID
	CurrencyCode     string            `json:"currencyCode"`
	TransferDate     time.Time         `json:"transferDate"`
	Amount           decimal.Decimal   `json:"amount"` // > 0
	Description      string            `json:"description"`
	Status           TransactionStatus `json:"status"` // mirrored with both legs
	ApprovedAt       *time.Time        `json:"approvedAt,omitempty"`
	ApprovedBy       *string           `json:"approvedBy,omitempty"`
	AuditFields
}

// IsPending reports whether the transfer can still be edited or deleted.
func (bt BranchTransfer) IsPending() bool {
	return bt.Status == StatusPending
}
