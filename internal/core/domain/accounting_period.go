package domain

import "time"

// PeriodStatus is the open/closed flag of an accounting period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "open"
	PeriodClosed PeriodStatus = "closed"
	// PeriodNone is the status reported for dates not covered by any period.
	PeriodNone PeriodStatus = "none"
)

// AccountingPeriod is a named date range gating whether transactions dated
// within it may be created, edited or approved. Ranges never overlap and at
// most one period is open at a time.
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary Key (UUID)
	Name      string       `json:"name"`     // unique
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"` // >= StartDate
	Status    PeriodStatus `json:"status"`  // open or closed
	AuditFields
}

// Covers reports whether the date falls inside the period range, inclusive
// on both ends. Comparison is by calendar day.
func (p AccountingPeriod) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}
