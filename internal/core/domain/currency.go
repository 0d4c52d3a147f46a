package domain

// Currency represents a supported currency. Code is the primary key and is
// immutable once any transaction references it; name, symbol and the active
// flag stay editable.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "IDR")
	Name         string `json:"name"`         // e.g., "Indonesian Rupiah"
	Symbol       string `json:"symbol"`       // e.g., "Rp"
	Precision    int    `json:"precision"`    // decimal places, default 2
	IsActive     bool   `json:"isActive"`
	AuditFields
}
