package models

// Currency is the flat persistence shape of a supported currency.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Name         string `db:"name"`
	Symbol       string `db:"symbol"`
	Precision    int    `db:"precision"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
