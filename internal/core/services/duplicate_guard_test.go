package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, kind domain.CategoryKind, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, kind, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, kind domain.CategoryKind, name string) (*domain.Category, error) {
	args := m.Called(ctx, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) EnsureCategory(ctx context.Context, kind domain.CategoryKind, name string) (*domain.Category, error) {
	args := m.Called(ctx, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) CategoryUsage(ctx context.Context, kind domain.CategoryKind, categoryID int64) (domain.CategoryUsage, error) {
	args := m.Called(ctx, kind, categoryID)
	return args.Get(0).(domain.CategoryUsage), args.Error(1)
}

func (m *MockCategoryRepository) RenameCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64, name string) error {
	args := m.Called(ctx, kind, categoryID, name)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64) (int64, error) {
	args := m.Called(ctx, kind, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock IncomeRepository ---
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) CreateIncome(ctx context.Context, entry domain.IncomeEntry) (*domain.IncomeEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeEntry), args.Error(1)
}

func (m *MockIncomeRepository) FindIncomeByID(ctx context.Context, incomeID int64) (*domain.IncomeEntry, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeEntry), args.Error(1)
}

func (m *MockIncomeRepository) ListIncome(ctx context.Context, from, to *time.Time) ([]domain.IncomeEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeEntry), args.Error(1)
}

func (m *MockIncomeRepository) IncomeExists(ctx context.Context, date time.Time, categoryID int64, excludeID int64) (bool, error) {
	args := m.Called(ctx, date, categoryID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIncomeRepository) UpdateIncome(ctx context.Context, entry domain.IncomeEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockIncomeRepository) DeleteIncome(ctx context.Context, incomeID int64) error {
	return m.Called(ctx, incomeID).Error(0)
}

// --- Mock ChequeRepository ---
type MockChequeRepository struct {
	mock.Mock
}

func (m *MockChequeRepository) cheque(args mock.Arguments) (*domain.Cheque, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cheque), args.Error(1)
}

func (m *MockChequeRepository) CreateCheque(ctx context.Context, cheque domain.Cheque) (*domain.Cheque, error) {
	return m.cheque(m.Called(ctx, cheque))
}

func (m *MockChequeRepository) FindChequeByID(ctx context.Context, chequeID int64) (*domain.Cheque, error) {
	return m.cheque(m.Called(ctx, chequeID))
}

func (m *MockChequeRepository) FindChequeByVendorTransactionID(ctx context.Context, txnID int64) (*domain.Cheque, error) {
	return m.cheque(m.Called(ctx, txnID))
}

func (m *MockChequeRepository) FindChequeByPaymentTransactionID(ctx context.Context, txnID int64) (*domain.Cheque, error) {
	return m.cheque(m.Called(ctx, txnID))
}

func (m *MockChequeRepository) ListCheques(ctx context.Context, filter portsrepo.ChequeFilter) ([]domain.Cheque, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cheque), args.Error(1)
}

func (m *MockChequeRepository) UpdateCheque(ctx context.Context, cheque domain.Cheque) error {
	return m.Called(ctx, cheque).Error(0)
}

func (m *MockChequeRepository) MarkChequePaid(ctx context.Context, chequeID int64, paidDate time.Time) (bool, error) {
	args := m.Called(ctx, chequeID, paidDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockChequeRepository) SetChequePaymentTransaction(ctx context.Context, chequeID int64, paymentTxnID *int64) error {
	return m.Called(ctx, chequeID, paymentTxnID).Error(0)
}

func (m *MockChequeRepository) DeleteCheque(ctx context.Context, chequeID int64) error {
	return m.Called(ctx, chequeID).Error(0)
}

// --- Test Suite ---
type DuplicateGuardTestSuite struct {
	suite.Suite
	categories *MockCategoryRepository
	income     *MockIncomeRepository
	cheques    *MockChequeRepository
	guard      *services.DuplicateGuard
}

func (suite *DuplicateGuardTestSuite) SetupTest() {
	suite.categories = new(MockCategoryRepository)
	suite.income = new(MockIncomeRepository)
	suite.cheques = new(MockChequeRepository)
	suite.guard = services.NewDuplicateGuard(suite.categories, suite.income, suite.cheques)
}

func (suite *DuplicateGuardTestSuite) TearDownTest() {
	suite.categories.AssertExpectations(suite.T())
	suite.income.AssertExpectations(suite.T())
	suite.cheques.AssertExpectations(suite.T())
}

func (suite *DuplicateGuardTestSuite) TestCheckIncomeDuplicate_ReservedCategoryTaken() {
	ctx := context.Background()
	date := d("2024-05-01")
	suite.categories.On("FindCategoryByID", ctx, domain.IncomeCategory, int64(1)).
		Return(&domain.Category{ID: 1, Name: "sales ", Kind: domain.IncomeCategory}, nil).Once()
	suite.income.On("IncomeExists", ctx, date, int64(1), int64(0)).Return(true, nil).Once()

	err := suite.guard.CheckIncomeDuplicate(ctx, date, 1, 0)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DuplicateGuardTestSuite) TestCheckIncomeDuplicate_ReservedCategoryFree() {
	ctx := context.Background()
	date := d("2024-05-01")
	suite.categories.On("FindCategoryByID", ctx, domain.IncomeCategory, int64(2)).
		Return(&domain.Category{ID: 2, Name: "Services", Kind: domain.IncomeCategory}, nil).Once()
	suite.income.On("IncomeExists", ctx, date, int64(2), int64(7)).Return(false, nil).Once()

	suite.NoError(suite.guard.CheckIncomeDuplicate(ctx, date, 2, 7))
}

func (suite *DuplicateGuardTestSuite) TestCheckIncomeDuplicate_OtherCategoryNeverChecked() {
	ctx := context.Background()
	suite.categories.On("FindCategoryByID", ctx, domain.IncomeCategory, int64(3)).
		Return(&domain.Category{ID: 3, Name: "Interest", Kind: domain.IncomeCategory}, nil).Once()

	suite.NoError(suite.guard.CheckIncomeDuplicate(ctx, d("2024-05-01"), 3, 0))
	suite.income.AssertNotCalled(suite.T(), "IncomeExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DuplicateGuardTestSuite) TestCheckIncomeDuplicate_UnknownCategory() {
	ctx := context.Background()
	suite.categories.On("FindCategoryByID", ctx, domain.IncomeCategory, int64(99)).
		Return(nil, apperrors.NotFoundf("income category 99")).Once()

	err := suite.guard.CheckIncomeDuplicate(ctx, d("2024-05-01"), 99, 0)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DuplicateGuardTestSuite) TestCheckChequeAlreadyPaid() {
	ctx := context.Background()
	suite.cheques.On("FindChequeByID", ctx, int64(1)).Return(&domain.Cheque{ID: 1, Status: domain.ChequePaid}, nil).Once()
	suite.cheques.On("FindChequeByID", ctx, int64(2)).Return(&domain.Cheque{ID: 2, Status: domain.ChequeIssued}, nil).Once()
	suite.cheques.On("FindChequeByID", ctx, int64(3)).Return(nil, apperrors.NotFoundf("cheque 3")).Once()

	paid, err := suite.guard.CheckChequeAlreadyPaid(ctx, 1)
	suite.NoError(err)
	suite.True(paid)

	paid, err = suite.guard.CheckChequeAlreadyPaid(ctx, 2)
	suite.NoError(err)
	suite.False(paid)

	_, err = suite.guard.CheckChequeAlreadyPaid(ctx, 3)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDuplicateGuardTestSuite(t *testing.T) {
	suite.Run(t, new(DuplicateGuardTestSuite))
}
