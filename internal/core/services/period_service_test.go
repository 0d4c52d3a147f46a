package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/core/services"
	"github.com/kasapp/cashledger/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPeriodRepository
	service  portssvc.PeriodSvcFacade

	userID string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "January 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("HasOverlap", ctx, req.StartDate, req.EndDate, (*string)(nil)).Return(false, nil).Once()
	suite.mockRepo.On("HasOpenPeriod", ctx, (*string)(nil)).Return(false, nil).Once()
	suite.mockRepo.On("SavePeriod", ctx, mock.MatchedBy(func(p domain.AccountingPeriod) bool {
		return p.Name == req.Name && p.Status == domain.PeriodOpen && p.CreatedBy == suite.userID
	})).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "Backwards",
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_OverlapRejected() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "January again",
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("HasOverlap", ctx, req.StartDate, req.EndDate, (*string)(nil)).Return(true, nil).Once()

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_SecondOpenPeriodRejected() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "February 2025",
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("HasOverlap", ctx, req.StartDate, req.EndDate, (*string)(nil)).Return(false, nil).Once()
	suite.mockRepo.On("HasOpenPeriod", ctx, (*string)(nil)).Return(true, nil).Once()

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) openPeriod() *domain.AccountingPeriod {
	return &domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "January 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (suite *PeriodServiceTestSuite) TestUpdatePeriod_Close() {
	ctx := context.Background()
	period := suite.openPeriod()

	suite.mockRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockRepo.On("UpdatePeriod", ctx, mock.MatchedBy(func(p domain.AccountingPeriod) bool {
		return p.Status == domain.PeriodClosed && p.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	closed := "closed"
	updated, err := suite.service.UpdatePeriod(ctx, period.PeriodID, dto.UpdatePeriodRequest{Status: &closed}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestUpdatePeriod_ReopenBlockedByLaterPeriod() {
	ctx := context.Background()
	period := suite.openPeriod()
	period.Status = domain.PeriodClosed

	suite.mockRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockRepo.On("HasPeriodAfter", ctx, period.EndDate).Return(true, nil).Once()

	open := "open"
	_, err := suite.service.UpdatePeriod(ctx, period.PeriodID, dto.UpdatePeriodRequest{Status: &open}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestUpdatePeriod_ReopenLatestPeriod() {
	ctx := context.Background()
	period := suite.openPeriod()
	period.Status = domain.PeriodClosed

	suite.mockRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockRepo.On("HasPeriodAfter", ctx, period.EndDate).Return(false, nil).Once()
	suite.mockRepo.On("HasOpenPeriod", ctx, &period.PeriodID).Return(false, nil).Once()
	suite.mockRepo.On("UpdatePeriod", ctx, mock.MatchedBy(func(p domain.AccountingPeriod) bool {
		return p.Status == domain.PeriodOpen
	})).Return(nil).Once()

	open := "open"
	updated, err := suite.service.UpdatePeriod(ctx, period.PeriodID, dto.UpdatePeriodRequest{Status: &open}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_OnlyMostRecent() {
	ctx := context.Background()
	period := suite.openPeriod()

	suite.mockRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockRepo.On("HasPeriodAfter", ctx, period.EndDate).Return(true, nil).Once()

	err := suite.service.DeletePeriod(ctx, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_Success() {
	ctx := context.Background()
	period := suite.openPeriod()

	suite.mockRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockRepo.On("HasPeriodAfter", ctx, period.EndDate).Return(false, nil).Once()
	suite.mockRepo.On("DeletePeriod", ctx, period.PeriodID).Return(nil).Once()

	err := suite.service.DeletePeriod(ctx, period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestPeriodStatusFor() {
	ctx := context.Background()
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	suite.Run("open period", func() {
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(repo)
		repo.On("FindPeriodCovering", ctx, date).Return(&domain.AccountingPeriod{Status: domain.PeriodOpen}, nil).Once()

		status, err := svc.PeriodStatusFor(ctx, date)
		suite.Require().NoError(err)
		suite.Equal(domain.PeriodOpen, status)
	})

	suite.Run("closed period", func() {
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(repo)
		repo.On("FindPeriodCovering", ctx, date).Return(&domain.AccountingPeriod{Status: domain.PeriodClosed}, nil).Once()

		status, err := svc.PeriodStatusFor(ctx, date)
		suite.Require().NoError(err)
		suite.Equal(domain.PeriodClosed, status)
	})

	suite.Run("no covering period", func() {
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(repo)
		repo.On("FindPeriodCovering", ctx, date).Return(nil, apperrors.ErrNotFound).Once()

		status, err := svc.PeriodStatusFor(ctx, date)
		suite.Require().NoError(err)
		suite.Equal(domain.PeriodNone, status)
	})
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
