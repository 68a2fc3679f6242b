package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/handlers"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "ledger-test"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	engine *MockLedgerEngine
	token  string
}

func (suite *LedgerHandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.engine = new(MockLedgerEngine)
	suite.token = suite.generateTestToken("operator")

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	handlers.RegisterLedgerRoutes(v1, portssvc.NewServiceContainer(suite.engine))
}

func (suite *LedgerHandlerTestSuite) TearDownTest() {
	suite.engine.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) decode(w *httptest.ResponseRecorder, into any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), into), w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestCreateVendor_Success() {
	suite.engine.On("CreateVendor", mock.Anything, mock.MatchedBy(func(req dto.CreateVendorRequest) bool {
		return req.Name == "Acme" && req.OpeningBalance.Equal(decimal.NewFromInt(1000))
	})).Return(&domain.VendorResult{
		Vendor:  &domain.Vendor{ID: 7, Name: "Acme", OpeningBalance: decimal.NewFromInt(1000), Version: 1},
		Balance: decimal.NewFromInt(1000),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vendors", `{"name":"Acme","openingBalance":"1000"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var body domain.VendorResult
	suite.decode(w, &body)
	suite.Equal(int64(7), body.Vendor.ID)
	suite.True(body.Balance.Equal(decimal.NewFromInt(1000)))
}

func (suite *LedgerHandlerTestSuite) TestCreateVendor_Duplicate() {
	suite.engine.On("CreateVendor", mock.Anything, mock.Anything).
		Return(nil, apperrors.Duplicatef("vendor %q already exists", "Acme")).Once()

	w := suite.do(http.MethodPost, "/api/v1/vendors", `{"name":"Acme"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *LedgerHandlerTestSuite) TestCreateVendor_BadJSON() {
	w := suite.do(http.MethodPost, "/api/v1/vendors", `{"name":`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.engine.AssertNotCalled(suite.T(), "CreateVendor", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetVendor_InvalidID() {
	w := suite.do(http.MethodGet, "/api/v1/vendors/abc", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetVendor_NotFound() {
	suite.engine.On("GetVendor", mock.Anything, int64(42)).Return(nil, apperrors.NotFoundf("vendor 42")).Once()

	w := suite.do(http.MethodGet, "/api/v1/vendors/42", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestDeleteVendor_PassesExpectedVersion() {
	suite.engine.On("DeleteVendor", mock.Anything, int64(3), int64(5)).
		Return(&domain.Outcome{Events: []domain.LedgerEvent{{Kind: domain.EventDeleted, Entity: domain.EntityVendor, ID: 3}}}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/vendors/3?expectedVersion=5", "")

	suite.Equal(http.StatusOK, w.Code)
	var body domain.Outcome
	suite.decode(w, &body)
	suite.Len(body.Events, 1)
}

func (suite *LedgerHandlerTestSuite) TestDeleteVendor_StaleVersion() {
	suite.engine.On("DeleteVendor", mock.Anything, int64(3), int64(1)).
		Return(nil, fmt.Errorf("%w: vendor 3", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/vendors/3?expectedVersion=1", "")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestDeleteVendor_BadVersion() {
	w := suite.do(http.MethodDelete, "/api/v1/vendors/3?expectedVersion=-2", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListVendorTransactions_DateRange() {
	suite.engine.On("ListVendorTransactions", mock.Anything, int64(1),
		mock.MatchedBy(func(from *time.Time) bool { return from != nil && domain.FormatDate(*from) == "2024-01-01" }),
		mock.MatchedBy(func(to *time.Time) bool { return to != nil && domain.FormatDate(*to) == "2024-01-31" }),
	).Return([]domain.VendorLedgerRow{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vendors/1/transactions?from=2024-01-01&to=2024-01-31", "")

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListVendorTransactions_InvertedRange() {
	w := suite.do(http.MethodGet, "/api/v1/vendors/1/transactions?from=2024-02-01&to=2024-01-31", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTotalAccountsPayable() {
	suite.engine.On("TotalAccountsPayable", mock.Anything).Return(decimal.RequireFromString("2500.50"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vendors/payable", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "2500.5")
}

func (suite *LedgerHandlerTestSuite) TestRecordVendorTransaction_WarningsInBody() {
	result := &domain.VendorTransactionResult{
		Transaction: &domain.VendorTransaction{ID: 11, VendorID: 1, Type: domain.VendorPayment, Amount: decimal.NewFromInt(300)},
		Balance:     decimal.NewFromInt(1200),
	}
	result.Warn(&apperrors.ReconciliationMismatchError{Source: domain.EntityVendorTransaction, SourceID: 11, Mirror: domain.EntityExpense, Detail: "missing"})
	suite.engine.On("RecordVendorTransaction", mock.Anything, mock.MatchedBy(func(req dto.RecordVendorTransactionRequest) bool {
		return req.VendorID == 1 && req.Type == "payment"
	})).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vendor-transactions",
		`{"vendorID":1,"type":"payment","amount":"300","date":"2024-01-05","paymentMode":"Cash"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var body domain.VendorTransactionResult
	suite.decode(w, &body)
	suite.Require().Len(body.Warnings, 1)
	suite.Equal(int64(11), body.Warnings[0].SourceID)
}

func (suite *LedgerHandlerTestSuite) TestRecordVendorTransaction_Validation() {
	suite.engine.On("RecordVendorTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.Validationf("amount must be greater than zero")).Once()

	w := suite.do(http.MethodPost, "/api/v1/vendor-transactions", `{"vendorID":1,"type":"purchase","amount":"0","date":"2024-01-05"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "greater than zero")
}

func (suite *LedgerHandlerTestSuite) TestMarkChequePaid() {
	suite.engine.On("MarkChequePaid", mock.Anything, int64(4)).Return(&domain.ChequePaymentResult{
		Cheque:      &domain.Cheque{ID: 4, Status: domain.ChequePaid},
		AlreadyPaid: true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/cheques/4/pay", "")

	suite.Equal(http.StatusOK, w.Code)
	var body domain.ChequePaymentResult
	suite.decode(w, &body)
	suite.True(body.AlreadyPaid)
}

func (suite *LedgerHandlerTestSuite) TestListCheques_PassesStatus() {
	suite.engine.On("ListCheques", mock.Anything, dto.ListChequesParams{Status: "issued"}).
		Return(&domain.ChequeListing{TotalDue: decimal.NewFromInt(500)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/cheques?status=issued", "")

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestInternalErrorHidesDetail() {
	suite.engine.On("ListEmployees", mock.Anything).
		Return(nil, apperrors.NewAppError(500, "failed to list employees", fmt.Errorf("disk I/O error"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/employees", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "disk")
}

func (suite *LedgerHandlerTestSuite) TestGetPayrollBalance() {
	suite.engine.On("GetPayrollBalance", mock.Anything, int64(2)).Return(decimal.NewFromInt(300), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/employees/2/balance", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"loanBalance":"300"`)
}

func (suite *LedgerHandlerTestSuite) TestRecordIncome_DuplicateDate() {
	suite.engine.On("RecordIncome", mock.Anything, mock.Anything).
		Return(nil, apperrors.Duplicatef("a Sales entry already exists for 2024-05-01")).Once()

	w := suite.do(http.MethodPost, "/api/v1/income", `{"date":"2024-05-01","amount":"100","categoryName":"Sales"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListExpenses_BindsPaging() {
	suite.engine.On("ListExpenses", mock.Anything, dto.ListExpensesParams{Limit: 2, NextToken: "abc"}).
		Return(&domain.ExpensePage{NextPageToken: "def"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses?limit=2&nextToken=abc", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "def")
}

func (suite *LedgerHandlerTestSuite) TestCategories_UnknownKind() {
	w := suite.do(http.MethodGet, "/api/v1/categories/assets", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestEnsureCategory() {
	suite.engine.On("EnsureCategory", mock.Anything, domain.ExpenseCategory, dto.CreateCategoryRequest{Name: "Rent"}).
		Return(&domain.CategoryResult{Category: &domain.Category{ID: 9, Name: "Rent", Kind: domain.ExpenseCategory}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/categories/expense", `{"name":"Rent"}`)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestEditExpense_MirrorRefused() {
	suite.engine.On("EditExpense", mock.Anything, int64(4), mock.Anything).
		Return(nil, apperrors.Validationf("expense 4 belongs to vendor transaction 2; change that instead")).Once()

	w := suite.do(http.MethodPut, "/api/v1/expenses/4", `{"date":"2024-05-01","amount":"80","categoryName":"Rent"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "vendor transaction 2")
}

func (suite *LedgerHandlerTestSuite) TestRenameCategory() {
	suite.engine.On("RenameCategory", mock.Anything, domain.IncomeCategory, int64(7), dto.RenameCategoryRequest{Name: "Rentals"}).
		Return(&domain.CategoryResult{Category: &domain.Category{ID: 7, Name: "Rentals", Kind: domain.IncomeCategory}}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/categories/income/7", `{"name":"Rentals"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Rentals")
}

func (suite *LedgerHandlerTestSuite) TestDeleteCategory_Reserved() {
	suite.engine.On("DeleteCategory", mock.Anything, domain.ExpenseCategory, int64(1)).
		Return(nil, apperrors.Validationf(`expense category "Vendors" is reserved`)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/categories/expense/1", "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
