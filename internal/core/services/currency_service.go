package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/dto"
	"github.com/kasapp/cashledger/internal/middleware"
)

// currencyService provides business logic for the currency registry.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Name:         req.Name,
		Symbol:       req.Symbol,
		Precision:    req.Precision,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("currency_code", currency.CurrencyCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	logger.Info("Currency created", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to find currency for update: %w", err)
	}

	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.IsActive != nil {
		// Deactivation only hides the currency from pickers; recorded
		// transactions keep their code.
		currency.IsActive = *req.IsActive
	}
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		logger.Error("Failed to update currency", slog.String("currency_code", currency.CurrencyCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	logger.Info("Currency updated", slog.String("currency_code", currency.CurrencyCode))
	return currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, onlyActive bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// requireActiveCurrency is shared by the ledger-facing services: a movement
// may only be recorded in a known, active currency.
func requireActiveCurrency(ctx context.Context, repo portsrepo.CurrencyReader, currencyCode string) (*domain.Currency, error) {
	currency, err := repo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", currencyCode, err)
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("%w: currency %q is inactive", apperrors.ErrValidation, currencyCode)
	}
	return currency, nil
}
