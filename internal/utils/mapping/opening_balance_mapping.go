package mapping

import (
	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/models"
)

// ToModelOpeningBalance converts a domain OpeningBalance to a model OpeningBalance
func ToModelOpeningBalance(d domain.OpeningBalance) models.OpeningBalance {
	return models.OpeningBalance{
		OpeningBalanceID: d.OpeningBalanceID,
		BranchID:         d.BranchID,
		CurrencyCode:     d.CurrencyCode,
		Amount:           d.Amount,
		OpeningDate:      d.OpeningDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningBalance converts a model OpeningBalance to a domain OpeningBalance
func ToDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance{
		OpeningBalanceID: m.OpeningBalanceID,
		BranchID:         m.BranchID,
		CurrencyCode:     m.CurrencyCode,
		Amount:           m.Amount,
		OpeningDate:      m.OpeningDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpeningBalanceSlice converts model OpeningBalances to domain OpeningBalances
func ToDomainOpeningBalanceSlice(ms []models.OpeningBalance) []domain.OpeningBalance {
	ds := make([]domain.OpeningBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpeningBalance(m)
	}
	return ds
}
