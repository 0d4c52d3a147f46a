package repositories

import (
	"context"
	"time"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods
type PeriodReader interface {
	// FindPeriodByID retrieves a period by ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodCovering retrieves the period whose range contains the
	// date, or ErrNotFound when none does.
	FindPeriodCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date descending.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)

	// HasOverlap reports whether any period (except excludeID) intersects
	// the [start, end] range.
	HasOverlap(ctx context.Context, start, end time.Time, excludeID *string) (bool, error)

	// HasOpenPeriod reports whether any period (except excludeID) is open.
	HasOpenPeriod(ctx context.Context, excludeID *string) (bool, error)

	// HasPeriodAfter reports whether any period starts after the date.
	HasPeriodAfter(ctx context.Context, date time.Time) (bool, error)
}

// PeriodWriter defines write operations for accounting periods
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriod rewrites a period.
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// DeletePeriod removes a period.
	DeletePeriod(ctx context.Context, periodID string) error
}

// PeriodRepositoryFacade combines all period repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends the facade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
