package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reference numbers are date+flow scoped: a five character prefix built
// from the two digit year, two digit month and a flow flag, followed by a
// dense numeric sequence. Branch and currency codes are deliberately not
// part of the prefix; they only appear in the human-facing full reference,
// so a currency correction never renumbers the sequence.

// ReferencePrefixLen is the fixed length of the generated prefix.
const ReferencePrefixLen = 5

var (
	errInvalidTransactionType = errors.New("transaction type must be 'in' or 'out'")
	errAmountNotPositive      = errors.New("transaction amount must be positive")
	errOpeningAmountNegative  = errors.New("opening seed amount must not be negative")
)

// FlowFlag returns "1" for inbound and "0" for outbound movements.
func FlowFlag(t TransactionType) string {
	if t == CashIn {
		return "1"
	}
	return "0"
}

// ReferencePrefix builds the deterministic prefix for a transaction date
// and flow direction, e.g. 2025-01 inbound -> "25011".
func ReferencePrefix(date time.Time, t TransactionType) string {
	return fmt.Sprintf("%02d%02d%s", date.Year()%100, int(date.Month()), FlowFlag(t))
}

// SequenceFromReference parses the numeric suffix after the fixed-length
// prefix. An empty or malformed suffix is an error; callers treat missing
// rows as sequence zero.
func SequenceFromReference(reference string) (uint64, error) {
	if len(reference) <= ReferencePrefixLen {
		return 0, fmt.Errorf("reference %q is shorter than its prefix", reference)
	}
	seq, err := strconv.ParseUint(reference[ReferencePrefixLen:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reference %q has a non-numeric suffix: %w", reference, err)
	}
	return seq, nil
}

// FormatSequence renders a sequence number: zero-padded to three digits
// while below 100, natural decimal afterwards. There is no upper bound;
// overflowing three digits is intentional so references never exhaust.
func FormatSequence(seq uint64) string {
	return fmt.Sprintf("%03d", seq)
}

// NextReference computes the successor reference for a prefix given the
// highest sequence already allocated (0 when none exist).
func NextReference(prefix string, lastSequence uint64) string {
	return prefix + FormatSequence(lastSequence+1)
}

// MaxSequence scans existing references sharing a prefix and returns the
// highest numeric suffix. References with foreign prefixes or malformed
// suffixes are skipped.
func MaxSequence(prefix string, references []string) uint64 {
	var max uint64
	for _, ref := range references {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}
		seq, err := SequenceFromReference(ref)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}

// FullReference is the display projection handed to slips and scanners:
// currency code + branch code + stored reference.
func FullReference(currencyCode, branchCode, reference string) string {
	return currencyCode + branchCode + reference
}
