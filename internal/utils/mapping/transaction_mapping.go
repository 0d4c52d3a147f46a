package mapping

import (
	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		Reference:        d.Reference,
		BranchID:         d.BranchID,
		CurrencyCode:     d.CurrencyCode,
		TransactionDate:  d.TransactionDate,
		Type:             string(d.Type),
		Amount:           d.Amount,
		Description:      d.Description,
		ActorName:        d.ActorName,
		Status:           string(d.Status),
		ApprovedAt:       d.ApprovedAt,
		ApprovedBy:       d.ApprovedBy,
		IsOpening:        d.IsOpening,
		BranchTransferID: d.BranchTransferID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
		DeletedBy:        d.DeletedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		Reference:        m.Reference,
		BranchID:         m.BranchID,
		CurrencyCode:     m.CurrencyCode,
		TransactionDate:  m.TransactionDate,
		Type:             domain.TransactionType(m.Type),
		Amount:           m.Amount,
		Description:      m.Description,
		ActorName:        m.ActorName,
		Status:           domain.TransactionStatus(m.Status),
		ApprovedAt:       m.ApprovedAt,
		ApprovedBy:       m.ApprovedBy,
		IsOpening:        m.IsOpening,
		BranchTransferID: m.BranchTransferID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
		DeletedBy:        m.DeletedBy,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
