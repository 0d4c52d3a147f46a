package services

import (
	"context"
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
	"github.com/kasapp/cashledger/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting periods
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a single accounting period.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all accounting periods, newest first.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)

	// PeriodStatusFor reports whether the given date falls in an open
	// period, a closed period, or no period at all.
	PeriodStatusFor(ctx context.Context, date time.Time) (domain.PeriodStatus, error)
}

// PeriodWriterSvc defines write operations for accounting periods
type PeriodWriterSvc interface {
	// CreatePeriod opens a new period. Date ranges may not overlap an
	// existing period and only one period may be open at a time.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)

	// UpdatePeriod edits or closes a period. A closed period cannot be
	// reopened once a later period exists.
	UpdatePeriod(ctx context.Context, periodID string, req dto.UpdatePeriodRequest, updaterUserID string) (*domain.AccountingPeriod, error)

	// DeletePeriod removes the most recent period; earlier periods are kept
	// so closed history stays contiguous.
	DeletePeriod(ctx context.Context, periodID string, deleterUserID string) error
}

// PeriodSvcFacade combines all accounting-period service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
