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
	"github.com/kasapp/cashledger/internal/dto"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockTransferRepo *MockTransferRepository
	mockTxnRepo      *MockTransactionRepository
	mockBranchRepo   *MockBranchRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockPeriodSvc    *MockPeriodSvc
	service          portssvc.TransferSvcFacade

	fromBranchID string
	toBranchID   string
	userID       string
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockPeriodSvc = new(MockPeriodSvc)
	suite.service = services.NewTransferService(
		suite.mockTransferRepo,
		suite.mockTxnRepo,
		suite.mockBranchRepo,
		suite.mockCurrencyRepo,
		suite.mockPeriodSvc,
		noopAudit{},
	)
	suite.fromBranchID = uuid.NewString()
	suite.toBranchID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransferServiceTestSuite) expectBranches() {
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, suite.fromBranchID).
		Return(&domain.Branch{BranchID: suite.fromBranchID, Code: "B01", Name: "Downtown", IsActive: true}, nil)
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, suite.toBranchID).
		Return(&domain.Branch{BranchID: suite.toBranchID, Code: "B02", Name: "Harbor", IsActive: true}, nil)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_BuildsPairedLegs() {
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransferRequest{
		FromBranchID: suite.fromBranchID,
		ToBranchID:   suite.toBranchID,
		CurrencyCode: "USD",
		TransferDate: date,
		Amount:       decimal.NewFromInt(500),
		Description:  "weekly rebalance",
	}

	suite.expectBranches()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", IsActive: true}, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, date).Return(domain.PeriodOpen, nil).Once()

	suite.mockTransferRepo.On("CreateTransferWithLegs", mock.Anything,
		mock.MatchedBy(func(tr domain.BranchTransfer) bool {
			return tr.FromBranchID == suite.fromBranchID &&
				tr.ToBranchID == suite.toBranchID &&
				tr.Status == domain.StatusPending
		}),
		mock.MatchedBy(func(out domain.Transaction) bool {
			return out.Type == domain.CashOut &&
				out.BranchID == suite.fromBranchID &&
				out.BranchTransferID != nil &&
				out.Amount.Equal(req.Amount)
		}),
		mock.MatchedBy(func(in domain.Transaction) bool {
			return in.Type == domain.CashIn &&
				in.BranchID == suite.toBranchID &&
				in.BranchTransferID != nil &&
				in.Amount.Equal(req.Amount)
		}),
	).Return(&domain.BranchTransfer{
		BranchTransferID: uuid.NewString(),
		FromBranchID:     suite.fromBranchID,
		ToBranchID:       suite.toBranchID,
		CurrencyCode:     "USD",
		Amount:           req.Amount,
		Status:           domain.StatusPending,
	}, nil).Once()

	created, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.StatusPending, created.Status)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_ActorDefaultsToCounterpartyBranch() {
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransferRequest{
		FromBranchID: suite.fromBranchID,
		ToBranchID:   suite.toBranchID,
		CurrencyCode: "USD",
		TransferDate: date,
		Amount:       decimal.NewFromInt(100),
	}

	suite.expectBranches()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", IsActive: true}, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, date).Return(domain.PeriodOpen, nil).Once()

	suite.mockTransferRepo.On("CreateTransferWithLegs", mock.Anything,
		mock.AnythingOfType("domain.BranchTransfer"),
		mock.MatchedBy(func(out domain.Transaction) bool {
			// The outbound leg names the receiving branch.
			return out.ActorName == "Harbor"
		}),
		mock.MatchedBy(func(in domain.Transaction) bool {
			// The inbound leg names the sending branch.
			return in.ActorName == "Downtown"
		}),
	).Return(&domain.BranchTransfer{BranchTransferID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_SameBranchRejected() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		FromBranchID: suite.fromBranchID,
		ToBranchID:   suite.fromBranchID,
		CurrencyCode: "USD",
		TransferDate: time.Now(),
		Amount:       decimal.NewFromInt(100),
	}

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "CreateTransferWithLegs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		FromBranchID: suite.fromBranchID,
		ToBranchID:   suite.toBranchID,
		CurrencyCode: "USD",
		TransferDate: time.Now(),
		Amount:       decimal.Zero,
	}

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_ClosedPeriod() {
	ctx := context.Background()
	date := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransferRequest{
		FromBranchID: suite.fromBranchID,
		ToBranchID:   suite.toBranchID,
		CurrencyCode: "USD",
		TransferDate: date,
		Amount:       decimal.NewFromInt(100),
	}

	suite.expectBranches()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", IsActive: true}, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, date).Return(domain.PeriodClosed, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (suite *TransferServiceTestSuite) pendingTransfer() *domain.BranchTransfer {
	return &domain.BranchTransfer{
		BranchTransferID: uuid.NewString(),
		FromBranchID:     suite.fromBranchID,
		ToBranchID:       suite.toBranchID,
		CurrencyCode:     "USD",
		TransferDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:           decimal.NewFromInt(500),
		Status:           domain.StatusPending,
	}
}

func (suite *TransferServiceTestSuite) TestUpdateTransfer_ApprovedIsImmutable() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()
	transfer.Status = domain.StatusApproved

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.BranchTransferID).Return(transfer, nil).Once()

	desc := "edited"
	_, err := suite.service.UpdateTransfer(ctx, transfer.BranchTransferID, dto.UpdateTransferRequest{Description: &desc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableTransaction)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "UpdateTransferWithLegs", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestUpdateTransfer_SwapToSameBranchRejected() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.BranchTransferID).Return(transfer, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, transfer.TransferDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, suite.toBranchID).
		Return(&domain.Branch{BranchID: suite.toBranchID, Code: "B02", IsActive: true}, nil).Once()

	_, err := suite.service.UpdateTransfer(ctx, transfer.BranchTransferID, dto.UpdateTransferRequest{FromBranchID: &suite.toBranchID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestUpdateTransfer_ClosedPeriodTransferCannotBeRedated() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()
	newDate := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.BranchTransferID).Return(transfer, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, transfer.TransferDate).Return(domain.PeriodClosed, nil).Once()

	_, err := suite.service.UpdateTransfer(ctx, transfer.BranchTransferID, dto.UpdateTransferRequest{TransferDate: &newDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockPeriodSvc.AssertNotCalled(suite.T(), "PeriodStatusFor", mock.Anything, newDate)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "UpdateTransferWithLegs", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestUpdateTransfer_Success() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()
	newAmount := decimal.NewFromInt(750)

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.BranchTransferID).Return(transfer, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, transfer.TransferDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTransferRepo.On("UpdateTransferWithLegs", mock.Anything, mock.MatchedBy(func(tr domain.BranchTransfer) bool {
		return tr.Amount.Equal(newAmount) && tr.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransfer(ctx, transfer.BranchTransferID, dto.UpdateTransferRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestDeleteTransfer_Success() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.BranchTransferID).Return(transfer, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, transfer.TransferDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTransferRepo.On("DeleteTransferGroup", ctx, transfer.BranchTransferID, suite.userID).Return(nil).Once()

	err := suite.service.DeleteTransfer(ctx, transfer.BranchTransferID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestDeleteTransfer_RejectedIsImmutable() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()
	transfer.Status = domain.StatusRejected

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.BranchTransferID).Return(transfer, nil).Once()

	err := suite.service.DeleteTransfer(ctx, transfer.BranchTransferID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableTransaction)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "DeleteTransferGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestGetTransferLegs() {
	ctx := context.Background()
	transferID := uuid.NewString()
	legs := []domain.Transaction{
		{TransactionID: uuid.NewString(), Type: domain.CashOut, BranchTransferID: &transferID},
		{TransactionID: uuid.NewString(), Type: domain.CashIn, BranchTransferID: &transferID},
	}

	suite.mockTxnRepo.On("FindTransactionsByTransferID", ctx, transferID).Return(legs, nil).Once()

	result, err := suite.service.GetTransferLegs(ctx, transferID)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
