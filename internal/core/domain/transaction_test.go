package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kasapp/cashledger/internal/core/domain"
)

func stringPtr(s string) *string { return &s }

func TestTransaction_Kind(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        domain.TransactionKind
	}{
		{
			name:        "plain deposit",
			transaction: domain.Transaction{Type: domain.CashIn},
			want:        domain.KindDeposit,
		},
		{
			name:        "plain withdrawal",
			transaction: domain.Transaction{Type: domain.CashOut},
			want:        domain.KindWithdrawal,
		},
		{
			name:        "opening seed",
			transaction: domain.Transaction{Type: domain.CashIn, IsOpening: true},
			want:        domain.KindOpeningSeed,
		},
		{
			name:        "transfer leg",
			transaction: domain.Transaction{Type: domain.CashOut, BranchTransferID: stringPtr("bt-1")},
			want:        domain.KindTransferLeg,
		},
		{
			name:        "opening wins over transfer tag",
			transaction: domain.Transaction{Type: domain.CashIn, IsOpening: true, BranchTransferID: stringPtr("bt-1")},
			want:        domain.KindOpeningSeed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.Kind())
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(150)

	in := domain.Transaction{Type: domain.CashIn, Amount: amount}
	out := domain.Transaction{Type: domain.CashOut, Amount: amount}

	assert.True(t, in.SignedAmount().Equal(amount))
	assert.True(t, out.SignedAmount().Equal(amount.Neg()))
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		wantErr     bool
	}{
		{
			name:        "valid deposit",
			transaction: domain.Transaction{Type: domain.CashIn, Amount: decimal.NewFromInt(10)},
			wantErr:     false,
		},
		{
			name:        "zero amount rejected",
			transaction: domain.Transaction{Type: domain.CashIn, Amount: decimal.Zero},
			wantErr:     true,
		},
		{
			name:        "negative amount rejected",
			transaction: domain.Transaction{Type: domain.CashOut, Amount: decimal.NewFromInt(-5)},
			wantErr:     true,
		},
		{
			name:        "unknown type rejected",
			transaction: domain.Transaction{Type: "sideways", Amount: decimal.NewFromInt(10)},
			wantErr:     true,
		},
		{
			name:        "opening seed allows zero",
			transaction: domain.Transaction{Type: domain.CashIn, Amount: decimal.Zero, IsOpening: true},
			wantErr:     false,
		},
		{
			name:        "opening seed rejects negative",
			transaction: domain.Transaction{Type: domain.CashIn, Amount: decimal.NewFromInt(-1), IsOpening: true},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_IsPending(t *testing.T) {
	assert.True(t, domain.Transaction{Status: domain.StatusPending}.IsPending())
	assert.False(t, domain.Transaction{Status: domain.StatusApproved}.IsPending())
	assert.False(t, domain.Transaction{Status: domain.StatusRejected}.IsPending())
}
