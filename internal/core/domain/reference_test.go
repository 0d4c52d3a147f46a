package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kasapp/cashledger/internal/core/domain"
)

func TestReferencePrefix(t *testing.T) {
	jan2025 := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	dec2031 := time.Date(2031, time.December, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		typ  domain.TransactionType
		want string
	}{
		{"january inbound", jan2025, domain.CashIn, "25011"},
		{"january outbound", jan2025, domain.CashOut, "25010"},
		{"december inbound", dec2031, domain.CashIn, "31121"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ReferencePrefix(tt.date, tt.typ))
			assert.Len(t, domain.ReferencePrefix(tt.date, tt.typ), domain.ReferencePrefixLen)
		})
	}
}

func TestNextReference_SequenceDensity(t *testing.T) {
	prefix := "25011"

	// First allocation of a fresh series
	assert.Equal(t, "25011001", domain.NextReference(prefix, 0))

	// Dense successor
	assert.Equal(t, "25011002", domain.NextReference(prefix, 1))

	// Padding stops at three digits, the series keeps going
	assert.Equal(t, "25011100", domain.NextReference(prefix, 99))
	assert.Equal(t, "250111000", domain.NextReference(prefix, 999))
}

func TestMaxSequence(t *testing.T) {
	prefix := "25011"

	tests := []struct {
		name       string
		references []string
		want       uint64
	}{
		{"empty series", nil, 0},
		{"single entry", []string{"25011001"}, 1},
		{"out of order", []string{"25011003", "25011001", "25011002"}, 3},
		{"foreign prefixes skipped", []string{"25011005", "25010009", "24121120"}, 5},
		{"malformed suffix skipped", []string{"25011abc", "25011002"}, 2},
		{"bare prefix skipped", []string{"25011"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MaxSequence(prefix, tt.references))
		})
	}
}

func TestSequenceFromReference(t *testing.T) {
	seq, err := domain.SequenceFromReference("25011042")
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), seq)

	_, err = domain.SequenceFromReference("25011")
	assert.Error(t, err)

	_, err = domain.SequenceFromReference("25011xyz")
	assert.Error(t, err)
}

func TestFullReference(t *testing.T) {
	assert.Equal(t, "USD0125011001", domain.FullReference("USD", "01", "25011001"))
}

func TestFlowSeriesIndependence(t *testing.T) {
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	in := domain.ReferencePrefix(date, domain.CashIn)
	out := domain.ReferencePrefix(date, domain.CashOut)

	// Inbound and outbound run separate sequences under distinct prefixes.
	assert.NotEqual(t, in, out)
	assert.Equal(t, "25031001", domain.NextReference(in, 0))
	assert.Equal(t, "25030001", domain.NextReference(out, 0))
}
