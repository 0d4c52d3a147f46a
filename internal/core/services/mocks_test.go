package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kasapp/cashledger/internal/core/domain"
	portsrepo "github.com/kasapp/cashledger/internal/core/ports/repositories"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByFullReference(ctx context.Context, scanned string) (*domain.Transaction, error) {
	args := m.Called(ctx, scanned)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByTransferID(ctx context.Context, branchTransferID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, branchTransferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) FindSlipRows(ctx context.Context, transactionIDs []string) ([]domain.SlipRow, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SlipRow), args.Error(1)
}

func (m *MockTransactionRepository) HasNonOpeningTransactions(ctx context.Context, branchID, currencyCode string) (bool, error) {
	args := m.Called(ctx, branchID, currencyCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) HasTransactionsForBranch(ctx context.Context, branchID string) (bool, error) {
	args := m.Called(ctx, branchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) HasTransactionsForCurrency(ctx context.Context, currencyCode string) (bool, error) {
	args := m.Called(ctx, currencyCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, regenerateReference bool) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, regenerateReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, deletedBy string) error {
	args := m.Called(ctx, transactionID, deletedBy)
	return args.Error(0)
}

func (m *MockTransactionRepository) ApproveTransaction(ctx context.Context, transactionID, approverID string, approvedAt time.Time) error {
	args := m.Called(ctx, transactionID, approverID, approvedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) ApproveTransferGroup(ctx context.Context, branchTransferID, approverID string, approvedAt time.Time) error {
	args := m.Called(ctx, branchTransferID, approverID, approvedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) RejectTransaction(ctx context.Context, transactionID, approverID string) error {
	args := m.Called(ctx, transactionID, approverID)
	return args.Error(0)
}

func (m *MockTransactionRepository) RejectTransferGroup(ctx context.Context, branchTransferID, approverID string) error {
	args := m.Called(ctx, branchTransferID, approverID)
	return args.Error(0)
}

// --- Mock BranchRepository ---

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context, onlyActive bool) ([]domain.Branch, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, onlyActive bool) ([]domain.Currency, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) HasOverlap(ctx context.Context, start, end time.Time, excludeID *string) (bool, error) {
	args := m.Called(ctx, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) HasOpenPeriod(ctx context.Context, excludeID *string) (bool, error) {
	args := m.Called(ctx, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) HasPeriodAfter(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

// --- Mock PeriodReaderSvc ---

type MockPeriodSvc struct {
	mock.Mock
}

func (m *MockPeriodSvc) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodSvc) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodSvc) PeriodStatusFor(ctx context.Context, date time.Time) (domain.PeriodStatus, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.PeriodStatus), args.Error(1)
}

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, branchTransferID string) (*domain.BranchTransfer, error) {
	args := m.Called(ctx, branchTransferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchTransfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, filter portsrepo.TransferListFilter, limit int, nextToken *string) ([]domain.BranchTransfer, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var transfers []domain.BranchTransfer
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.BranchTransfer)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return transfers, token, args.Error(2)
}

func (m *MockTransferRepository) CreateTransferWithLegs(ctx context.Context, transfer domain.BranchTransfer, outLeg, inLeg domain.Transaction) (*domain.BranchTransfer, error) {
	args := m.Called(ctx, transfer, outLeg, inLeg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchTransfer), args.Error(1)
}

func (m *MockTransferRepository) UpdateTransferWithLegs(ctx context.Context, transfer domain.BranchTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) DeleteTransferGroup(ctx context.Context, branchTransferID, deletedBy string) error {
	args := m.Called(ctx, branchTransferID, deletedBy)
	return args.Error(0)
}

// --- Mock OpeningBalanceRepository ---

type MockOpeningBalanceRepository struct {
	mock.Mock
}

func (m *MockOpeningBalanceRepository) FindOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, openingBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) FindOpeningBalance(ctx context.Context, branchID, currencyCode string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, branchID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ListOpeningBalances(ctx context.Context, branchID *string) ([]domain.OpeningBalance, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) SaveOpeningBalanceWithSeed(ctx context.Context, ob domain.OpeningBalance, seed domain.Transaction) error {
	args := m.Called(ctx, ob, seed)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) UpdateOpeningBalanceWithSeed(ctx context.Context, ob domain.OpeningBalance) error {
	args := m.Called(ctx, ob)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumOpeningBalances(ctx context.Context, branchID *string, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, branchID, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) SumNetMovement(ctx context.Context, branchID *string, currencyCode string, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, branchID, currencyCode, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) BalanceSummaryRows(ctx context.Context, from, to time.Time) ([]domain.BalanceSummaryRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSummaryRow), args.Error(1)
}

func (m *MockReportingRepository) ApprovedLines(ctx context.Context, branchID *string, currencyCode string, from, to time.Time) ([]domain.ReportLine, error) {
	args := m.Called(ctx, branchID, currencyCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportLine), args.Error(1)
}

// --- No-op audit recorder ---

type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, event domain.Event) {}
