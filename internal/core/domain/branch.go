package domain

// Branch represents a physical cash-holding branch. The short code is part
// of the printed full reference and becomes immutable once any transaction
// references the branch.
type Branch struct {
	BranchID string `json:"branchID"` // Primary Key (UUID)
	Code     string `json:"code"`     // Unique short code (e.g., "B01")
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
