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

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockPeriodSvc *MockPeriodSvc
	service       portssvc.ApprovalSvcFacade

	approver portssvc.Approver
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockPeriodSvc = new(MockPeriodSvc)
	suite.service = services.NewApprovalService(suite.mockTxnRepo, suite.mockPeriodSvc, noopAudit{})
	suite.approver = portssvc.Approver{UserID: uuid.NewString(), CanApprove: true}
}

func (suite *ApprovalServiceTestSuite) pendingTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		Reference:       "25010001",
		BranchID:        uuid.NewString(),
		CurrencyCode:    "USD",
		TransactionDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:            domain.CashOut,
		Amount:          decimal.NewFromInt(75),
		Status:          domain.StatusPending,
	}
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_Success() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	approved := *txn
	approved.Status = domain.StatusApproved

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTxnRepo.On("ApproveTransaction", ctx, txn.TransactionID, suite.approver.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&approved, nil).Once()

	result, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_WithoutCapability() {
	ctx := context.Background()
	viewer := portssvc.Approver{UserID: uuid.NewString(), CanApprove: false}

	result, err := suite.service.ApproveTransaction(ctx, uuid.NewString(), viewer)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_OpeningSeedRejected() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	txn.IsOpening = true

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApproveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_ClosedPeriod() {
	ctx := context.Background()
	txn := suite.pendingTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodClosed, nil).Once()

	_, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_NoPeriodRecordSucceeds() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	approved := *txn
	approved.Status = domain.StatusApproved

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodNone, nil).Once()
	suite.mockTxnRepo.On("ApproveTransaction", ctx, txn.TransactionID, suite.approver.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&approved, nil).Once()

	result, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_AlreadyProcessed() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	txn.Status = domain.StatusApproved

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()

	_, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_TransferLegSettlesGroup() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	transferID := uuid.NewString()
	txn.BranchTransferID = &transferID
	approved := *txn
	approved.Status = domain.StatusApproved

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTxnRepo.On("ApproveTransferGroup", ctx, transferID, suite.approver.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByTransferID", ctx, transferID).
		Return([]domain.Transaction{*txn}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&approved, nil).Once()

	result, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApproveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveTransaction_PartialGroupConflict() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	transferID := uuid.NewString()
	txn.BranchTransferID = &transferID

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTxnRepo.On("ApproveTransferGroup", ctx, transferID, suite.approver.UserID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrPartialApprovalConflict).Once()

	_, err := suite.service.ApproveTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPartialApprovalConflict)
}

func (suite *ApprovalServiceTestSuite) TestRejectTransaction_Success() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	rejected := *txn
	rejected.Status = domain.StatusRejected

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTxnRepo.On("RejectTransaction", ctx, txn.TransactionID, suite.approver.UserID).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&rejected, nil).Once()

	result, err := suite.service.RejectTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, result.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestRejectTransaction_TransferLegDeclinesGroup() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	transferID := uuid.NewString()
	txn.BranchTransferID = &transferID
	rejected := *txn
	rejected.Status = domain.StatusRejected

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTxnRepo.On("RejectTransferGroup", ctx, transferID, suite.approver.UserID).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByTransferID", ctx, transferID).
		Return([]domain.Transaction{*txn}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&rejected, nil).Once()

	result, err := suite.service.RejectTransaction(ctx, txn.TransactionID, suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, result.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestResolveByFullReference_NormalizesInput() {
	ctx := context.Background()
	txn := suite.pendingTransaction()

	suite.mockTxnRepo.On("FindTransactionByFullReference", ctx, "USDB0125010001").Return(txn, nil).Once()

	result, err := suite.service.ResolveByFullReference(ctx, "  usdb0125010001 ")

	suite.Require().NoError(err)
	suite.Equal(txn.TransactionID, result.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestResolveByFullReference_Empty() {
	ctx := context.Background()

	result, err := suite.service.ResolveByFullReference(ctx, "   ")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApprovalServiceTestSuite) TestApproveByFullReference_ResolvesThenApproves() {
	ctx := context.Background()
	txn := suite.pendingTransaction()
	approved := *txn
	approved.Status = domain.StatusApproved

	suite.mockTxnRepo.On("FindTransactionByFullReference", ctx, "USDB0125010001").Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPeriodSvc.On("PeriodStatusFor", mock.Anything, txn.TransactionDate).Return(domain.PeriodOpen, nil).Once()
	suite.mockTxnRepo.On("ApproveTransaction", ctx, txn.TransactionID, suite.approver.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&approved, nil).Once()

	result, err := suite.service.ApproveByFullReference(ctx, "USDB0125010001", suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestListPendingTransactions_FiltersOpeningSeeds() {
	ctx := context.Background()
	regular := *suite.pendingTransaction()
	seed := *suite.pendingTransaction()
	seed.IsOpening = true

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.Anything, mock.AnythingOfType("int"), (*string)(nil)).
		Return([]domain.Transaction{regular, seed}, nil, nil).Once()

	pending, err := suite.service.ListPendingTransactions(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(regular.TransactionID, pending[0].TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
