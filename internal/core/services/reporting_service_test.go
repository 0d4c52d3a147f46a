package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasapp/cashledger/internal/apperrors"
	"github.com/kasapp/cashledger/internal/core/domain"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockBranchRepo *MockBranchRepository
	service        portssvc.ReportingService

	branchID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockBranchRepo)
	suite.branchID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestBalanceAsOf_OpeningPlusMovement() {
	ctx := context.Background()

	suite.mockRepo.On("SumOpeningBalances", ctx, (*string)(nil), "USD").
		Return(decimal.NewFromInt(10000), nil).Once()
	suite.mockRepo.On("SumNetMovement", ctx, (*string)(nil), "USD", (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(-2500), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, nil, "usd", nil)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(7500)), "got %s", balance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceAsOf_BranchScoped() {
	ctx := context.Background()
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("SumOpeningBalances", ctx, &suite.branchID, "USD").
		Return(decimal.NewFromInt(500), nil).Once()
	suite.mockRepo.On("SumNetMovement", ctx, &suite.branchID, "USD", (*time.Time)(nil), &asOf).
		Return(decimal.NewFromInt(125), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, &suite.branchID, "USD", &asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(625)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSummary_InvertedWindowRejected() {
	ctx := context.Background()

	rows, err := suite.service.BalanceSummary(ctx,
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)

	suite.Require().Error(err)
	suite.Nil(rows)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "BalanceSummaryRows", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestDailyReport_RunningBalanceFold() {
	ctx := context.Background()
	from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	dayBefore := from.AddDate(0, 0, -1)

	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).
		Return(&domain.Branch{BranchID: suite.branchID, Code: "B01", Name: "Main"}, nil).Once()

	// Carried-in position: 1000 opening + 200 net before the window.
	suite.mockRepo.On("SumOpeningBalances", ctx, &suite.branchID, "USD").
		Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRepo.On("SumNetMovement", ctx, &suite.branchID, "USD", (*time.Time)(nil), &dayBefore).
		Return(decimal.NewFromInt(200), nil).Once()

	lines := []domain.ReportLine{
		{TransactionID: uuid.NewString(), Type: domain.CashIn, Amount: decimal.NewFromInt(300)},
		{TransactionID: uuid.NewString(), Type: domain.CashOut, Amount: decimal.NewFromInt(150)},
		{TransactionID: uuid.NewString(), Type: domain.CashIn, Amount: decimal.NewFromInt(50)},
	}
	suite.mockRepo.On("ApprovedLines", ctx, &suite.branchID, "USD", from, to).Return(lines, nil).Once()

	report, err := suite.service.DailyReport(ctx, suite.branchID, "usd", from, to)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.BeginBalance.Equal(decimal.NewFromInt(1200)))
	suite.Require().Len(report.Lines, 3)
	suite.True(report.Lines[0].RunningBalance.Equal(decimal.NewFromInt(1500)))
	suite.True(report.Lines[1].RunningBalance.Equal(decimal.NewFromInt(1350)))
	suite.True(report.Lines[2].RunningBalance.Equal(decimal.NewFromInt(1400)))
	suite.True(report.EndingBalance.Equal(decimal.NewFromInt(1400)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDailyReport_EmptyWindow() {
	ctx := context.Background()
	from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	dayBefore := from.AddDate(0, 0, -1)

	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).
		Return(&domain.Branch{BranchID: suite.branchID}, nil).Once()
	suite.mockRepo.On("SumOpeningBalances", ctx, &suite.branchID, "USD").
		Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRepo.On("SumNetMovement", ctx, &suite.branchID, "USD", (*time.Time)(nil), &dayBefore).
		Return(decimal.Zero, nil).Once()
	suite.mockRepo.On("ApprovedLines", ctx, &suite.branchID, "USD", from, from).
		Return([]domain.ReportLine{}, nil).Once()

	report, err := suite.service.DailyReport(ctx, suite.branchID, "USD", from, from)

	suite.Require().NoError(err)
	suite.True(report.EndingBalance.Equal(report.BeginBalance))
	suite.Empty(report.Lines)
}

func (suite *ReportingServiceTestSuite) TestDailyReport_UnknownBranch() {
	ctx := context.Background()
	from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).
		Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.DailyReport(ctx, suite.branchID, "USD", from, from)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
