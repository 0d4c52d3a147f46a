package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/dto"
	"github.com/kasapp/cashledger/internal/middleware"
)

// periodService provides business logic for accounting periods.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new accounting period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidation)
	}

	overlap, err := s.periodRepo.HasOverlap(ctx, req.StartDate, req.EndDate, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlap {
		return nil, fmt.Errorf("%w: period range overlaps an existing period", apperrors.ErrValidation)
	}

	open, err := s.periodRepo.HasOpenPeriod(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check open periods: %w", err)
	}
	if open {
		return nil, fmt.Errorf("%w: another period is still open", apperrors.ErrValidation)
	}

	now := time.Now()
	period := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("name", period.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	logger.Info("Accounting period opened", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

func (s *periodService) UpdatePeriod(ctx context.Context, periodID string, req dto.UpdatePeriodRequest, updaterUserID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period for update: %w", err)
	}

	if req.Name != nil {
		period.Name = *req.Name
	}
	if req.StartDate != nil {
		period.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		period.EndDate = *req.EndDate
	}
	if period.EndDate.Before(period.StartDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidation)
	}

	if req.StartDate != nil || req.EndDate != nil {
		overlap, err := s.periodRepo.HasOverlap(ctx, period.StartDate, period.EndDate, &periodID)
		if err != nil {
			return nil, fmt.Errorf("failed to check period overlap: %w", err)
		}
		if overlap {
			return nil, fmt.Errorf("%w: period range overlaps an existing period", apperrors.ErrValidation)
		}
	}

	if req.Status != nil && domain.PeriodStatus(*req.Status) != period.Status {
		switch domain.PeriodStatus(*req.Status) {
		case domain.PeriodClosed:
			period.Status = domain.PeriodClosed
		case domain.PeriodOpen:
			// Reopening is blocked once a newer period exists; the books
			// only move forward.
			newer, err := s.periodRepo.HasPeriodAfter(ctx, period.EndDate)
			if err != nil {
				return nil, fmt.Errorf("failed to check later periods: %w", err)
			}
			if newer {
				return nil, fmt.Errorf("%w: cannot reopen a period once a later period exists", apperrors.ErrValidation)
			}
			open, err := s.periodRepo.HasOpenPeriod(ctx, &periodID)
			if err != nil {
				return nil, fmt.Errorf("failed to check open periods: %w", err)
			}
			if open {
				return nil, fmt.Errorf("%w: another period is still open", apperrors.ErrValidation)
			}
			period.Status = domain.PeriodOpen
		default:
			return nil, fmt.Errorf("%w: unknown period status %q", apperrors.ErrValidation, *req.Status)
		}
	}

	period.LastUpdatedAt = time.Now()
	period.LastUpdatedBy = updaterUserID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		logger.Error("Failed to update period", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update period: %w", err)
	}

	logger.Info("Accounting period updated", slog.String("period_id", periodID), slog.String("status", string(period.Status)))
	return period, nil
}

func (s *periodService) DeletePeriod(ctx context.Context, periodID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to find period for delete: %w", err)
	}

	newer, err := s.periodRepo.HasPeriodAfter(ctx, period.EndDate)
	if err != nil {
		return fmt.Errorf("failed to check later periods: %w", err)
	}
	if newer {
		return fmt.Errorf("%w: only the most recent period can be deleted", apperrors.ErrValidation)
	}

	if err := s.periodRepo.DeletePeriod(ctx, periodID); err != nil {
		logger.Error("Failed to delete period", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete period: %w", err)
	}

	logger.Info("Accounting period deleted", slog.String("period_id", periodID), slog.String("deleted_by", deleterUserID))
	return nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if periods == nil {
		return []domain.AccountingPeriod{}, nil
	}
	return periods, nil
}

func (s *periodService) PeriodStatusFor(ctx context.Context, date time.Time) (domain.PeriodStatus, error) {
	period, err := s.periodRepo.FindPeriodCovering(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.PeriodNone, nil
		}
		return domain.PeriodNone, fmt.Errorf("failed to resolve period for date: %w", err)
	}
	return period.Status, nil
}

// requireOpenPeriod gates ledger mutations: a date inside a closed
// accounting period is rejected. Dates no period covers pass, the books
// only close through an explicit period record.
func requireOpenPeriod(ctx context.Context, periods portssvc.PeriodReaderSvc, date time.Time) error {
	status, err := periods.PeriodStatusFor(ctx, date)
	if err != nil {
		return err
	}
	if status == domain.PeriodClosed {
		return fmt.Errorf("%w: accounting period for %s is closed", apperrors.ErrPeriodClosed, date.Format("2006-01-02"))
	}
	return nil
}
