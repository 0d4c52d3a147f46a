package mapping

import (
	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/models"
)

// ToModelBranchTransfer converts a domain BranchTransfer to a model BranchTransfer
func ToModelBranchTransfer(d domain.BranchTransfer) models.BranchTransfer {
	return models.BranchTransfer{
		BranchTransferID: d.BranchTransferID,
		FromBranchID:     d.FromBranchID,
		ToBranchID:       d.ToBranchID,
		CurrencyCode:     d.CurrencyCode,
		TransferDate:     d.TransferDate,
		Amount:           d.Amount,
		Description:      d.Description,
		Status:           string(d.Status),
		ApprovedAt:       d.ApprovedAt,
		ApprovedBy:       d.ApprovedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranchTransfer converts a model BranchTransfer to a domain BranchTransfer
func ToDomainBranchTransfer(m models.BranchTransfer) domain.BranchTransfer {
	return domain.BranchTransfer{
		BranchTransferID: m.BranchTransferID,
		FromBranchID:     m.FromBranchID,
		ToBranchID:       m.ToBranchID,
		CurrencyCode:     m.CurrencyCode,
		TransferDate:     m.TransferDate,
		Amount:           m.Amount,
		Description:      m.Description,
		Status:           domain.TransactionStatus(m.Status),
		ApprovedAt:       m.ApprovedAt,
		ApprovedBy:       m.ApprovedBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchTransferSlice converts model BranchTransfers to domain BranchTransfers
func ToDomainBranchTransferSlice(ms []models.BranchTransfer) []domain.BranchTransfer {
	ds := make([]domain.BranchTransfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBranchTransfer(m)
	}
	return ds
}
