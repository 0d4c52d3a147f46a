// Package amountwords renders monetary amounts as Indonesian words for
// printed cash slips. It is a pure formatting utility; ledger invariants
// never depend on it.
package amountwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var units = []string{"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan"}

type scale struct {
	value int64
	label string
}

var scales = []scale{
	{1_000_000_000_000, "triliun"},
	{1_000_000_000, "miliar"},
	{1_000_000, "juta"},
	{1_000, "ribu"},
	{100, "ratus"},
}

// currencyWords maps currency codes to their spoken Indonesian names.
// Unknown codes render without a currency word.
var currencyWords = map[string]string{
	"IDR": "rupiah",
	"USD": "dolar",
	"SGD": "dolar singapura",
	"EUR": "euro",
}

// FromDecimal renders the integer part of an amount followed by the spoken
// currency name, e.g. 1500000 IDR -> "satu juta lima ratus ribu rupiah".
func FromDecimal(amount decimal.Decimal, currencyCode string) string {
	words := FromInt(amount.IntPart())
	if cw, ok := currencyWords[currencyCode]; ok {
		return strings.TrimSpace(words + " " + cw)
	}
	return words
}

// FromInt converts a non-negative integer to Indonesian words.
func FromInt(number int64) string {
	if number == 0 {
		return "nol"
	}
	return strings.TrimSpace(convert(number))
}

func convert(number int64) string {
	var sb strings.Builder

	for _, sc := range scales {
		if number < sc.value {
			continue
		}
		count := number / sc.value
		number %= sc.value

		switch {
		case sc.value == 100 && count == 1:
			sb.WriteString("seratus ")
		case sc.value == 1_000 && count == 1:
			sb.WriteString("seribu ")
		default:
			sb.WriteString(convert(count))
			sb.WriteString(" ")
			sb.WriteString(sc.label)
			sb.WriteString(" ")
		}
	}

	if number > 0 {
		switch {
		case number < 10:
			sb.WriteString(units[number])
		case number == 10:
			sb.WriteString("sepuluh")
		case number == 11:
			sb.WriteString("sebelas")
		case number < 20:
			sb.WriteString(units[number-10])
			sb.WriteString(" belas")
		default:
			sb.WriteString(units[number/10])
			sb.WriteString(" puluh")
			if ones := number % 10; ones > 0 {
				sb.WriteString(" ")
				sb.WriteString(units[ones])
			}
		}
	}

	return strings.TrimSpace(sb.String())
}
