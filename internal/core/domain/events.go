package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a domain event emitted by a core mutating operation. Events are
// returned to an audit collaborator instead of firing hidden side effects.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

type EventBase struct {
	At time.Time `json:"at"`
}

func (e EventBase) OccurredAt() time.Time { return e.At }

// NewEventBase stamps an event with its occurrence time.
func NewEventBase(at time.Time) EventBase { return EventBase{At: at} }

// TransactionCreated is emitted when a ledger row is inserted as pending.
type TransactionCreated struct {
	EventBase
	TransactionID string          `json:"transactionID"`
	Reference     string          `json:"reference"`
	BranchID      string          `json:"branchID"`
	CurrencyCode  string          `json:"currencyCode"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Actor         string          `json:"actor"`
}

func (TransactionCreated) EventName() string { return "transaction.created" }

// TransactionUpdated is emitted when a pending row is edited.
type TransactionUpdated struct {
	EventBase
	TransactionID string `json:"transactionID"`
	Reference     string `json:"reference"`
	Actor         string `json:"actor"`
}

func (TransactionUpdated) EventName() string { return "transaction.updated" }

// TransactionDeleted is emitted when a pending row (or transfer group) is removed.
type TransactionDeleted struct {
	EventBase
	TransactionID    string  `json:"transactionID"`
	BranchTransferID *string `json:"branchTransferID,omitempty"`
	Actor            string  `json:"actor"`
}

func (TransactionDeleted) EventName() string { return "transaction.deleted" }

// TransactionApproved is emitted once per approved transaction, including
// each leg of an approved transfer.
type TransactionApproved struct {
	EventBase
	TransactionID string `json:"transactionID"`
	Actor         string `json:"actor"`
}

func (TransactionApproved) EventName() string { return "transaction.approved" }

// TransactionRejected mirrors TransactionApproved for rejections.
type TransactionRejected struct {
	EventBase
	TransactionID string `json:"transactionID"`
	Actor         string `json:"actor"`
}

func (TransactionRejected) EventName() string { return "transaction.rejected" }

// TransferCreated is emitted when a branch transfer and its legs are created.
type TransferCreated struct {
	EventBase
	BranchTransferID string          `json:"branchTransferID"`
	FromBranchID     string          `json:"fromBranchID"`
	ToBranchID       string          `json:"toBranchID"`
	Amount           decimal.Decimal `json:"amount"`
	Actor            string          `json:"actor"`
}

func (TransferCreated) EventName() string { return "transfer.created" }

// TransferUpdated is emitted when a pending transfer is edited.
type TransferUpdated struct {
	EventBase
	BranchTransferID string `json:"branchTransferID"`
	Actor            string `json:"actor"`
}

func (TransferUpdated) EventName() string { return "transfer.updated" }

// TransferDeleted is emitted when a pending transfer and its legs are removed.
type TransferDeleted struct {
	EventBase
	BranchTransferID string `json:"branchTransferID"`
	Actor            string `json:"actor"`
}

func (TransferDeleted) EventName() string { return "transfer.deleted" }

// OpeningBalanceSet is emitted when a branch/currency zero-point is created.
type OpeningBalanceSet struct {
	EventBase
	OpeningBalanceID string          `json:"openingBalanceID"`
	BranchID         string          `json:"branchID"`
	CurrencyCode     string          `json:"currencyCode"`
	Amount           decimal.Decimal `json:"amount"`
	Actor            string          `json:"actor"`
}

func (OpeningBalanceSet) EventName() string { return "opening_balance.set" }

// OpeningBalanceUpdated is emitted when an unlocked zero-point is edited.
type OpeningBalanceUpdated struct {
	EventBase
	OpeningBalanceID string          `json:"openingBalanceID"`
	Amount           decimal.Decimal `json:"amount"`
	Actor            string          `json:"actor"`
}

func (OpeningBalanceUpdated) EventName() string { return "opening_balance.updated" }
