package handlers

import (
	"net/http"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type cashflowHandler struct {
	cashflowService portssvc.CashflowSvc
}

func newCashflowHandler(cs portssvc.CashflowSvc) *cashflowHandler {
	return &cashflowHandler{cashflowService: cs}
}

// registerCashflowRoutes registers the income, expense, capital and
// category routes of the general ledger.
func registerCashflowRoutes(rg *gin.RouterGroup, cashflowService portssvc.CashflowSvc) {
	h := newCashflowHandler(cashflowService)

	income := rg.Group("/income")
	{
		income.POST("", h.recordIncome)
		income.GET("", h.listIncome)
		income.PUT("/:incomeID", h.editIncome)
		income.DELETE("/:incomeID", h.deleteIncome)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.recordExpense)
		expenses.GET("", h.listExpenses)
		expenses.PUT("/:expenseID", h.editExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}

	capital := rg.Group("/capital")
	{
		capital.POST("", h.recordCapital)
		capital.GET("", h.listCapital)
	}

	categories := rg.Group("/categories/:kind")
	{
		categories.POST("", h.ensureCategory)
		categories.GET("", h.listCategories)
		categories.PATCH("/:categoryID", h.renameCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}
}

// recordIncome godoc
// @Summary Record income
// @Description Sales and Services income may be recorded once per date
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   income body dto.IncomeRequest true "Income"
// @Success 201 {object} domain.CashflowResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Already recorded for this date"
// @Security BearerAuth
// @Router /income [post]
func (h *cashflowHandler) recordIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IncomeRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.RecordIncome(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "record income", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// editIncome godoc
// @Summary Edit income
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   incomeID path int true "Income ID"
// @Param   income body dto.IncomeRequest true "Income"
// @Success 200 {object} domain.CashflowResult
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 409 {object} map[string]string "Already recorded for this date"
// @Security BearerAuth
// @Router /income/{incomeID} [put]
func (h *cashflowHandler) editIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID, ok := pathID(c, "incomeID")
	if !ok {
		return
	}
	var req dto.IncomeRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.EditIncome(c.Request.Context(), incomeID, req)
	if err != nil {
		respondError(c, logger, "edit income", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deleteIncome godoc
// @Summary Delete income
// @Tags cashflow
// @Produce  json
// @Param   incomeID path int true "Income ID"
// @Success 200 {object} domain.CashflowResult
// @Failure 404 {object} map[string]string "Income not found"
// @Security BearerAuth
// @Router /income/{incomeID} [delete]
func (h *cashflowHandler) deleteIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID, ok := pathID(c, "incomeID")
	if !ok {
		return
	}
	result, err := h.cashflowService.DeleteIncome(c.Request.Context(), incomeID)
	if err != nil {
		respondError(c, logger, "delete income", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// listIncome godoc
// @Summary List income
// @Tags cashflow
// @Produce  json
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} domain.IncomeEntry
// @Security BearerAuth
// @Router /income [get]
func (h *cashflowHandler) listIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if !bindQuery(c, logger, &params) {
		return
	}
	from, to, err := services.ParseDateRange(params.From, params.To)
	if err != nil {
		respondError(c, logger, "list income", err)
		return
	}
	rows, err := h.cashflowService.ListIncome(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, "list income", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// recordExpense godoc
// @Summary Record a manual expense
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   expense body dto.ExpenseRequest true "Expense"
// @Success 201 {object} domain.CashflowResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /expenses [post]
func (h *cashflowHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.RecordExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "record expense", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// listExpenses godoc
// @Summary List expenses
// @Description Pages through the expense ledger in date order
// @Tags cashflow
// @Produce  json
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} domain.ExpensePage
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Security BearerAuth
// @Router /expenses [get]
func (h *cashflowHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if !bindQuery(c, logger, &params) {
		return
	}
	page, err := h.cashflowService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list expenses", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// editExpense godoc
// @Summary Edit a manual expense
// @Description Expenses generated from vendor payments or payroll are changed through their source
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   expenseID path int true "Expense ID"
// @Param   expense body dto.ExpenseRequest true "Expense"
// @Success 200 {object} domain.CashflowResult
// @Failure 400 {object} map[string]string "Expense belongs to another record"
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *cashflowHandler) editExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID, ok := pathID(c, "expenseID")
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.EditExpense(c.Request.Context(), expenseID, req)
	if err != nil {
		respondError(c, logger, "edit expense", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deleteExpense godoc
// @Summary Delete a manual expense
// @Description Expenses generated from vendor payments or payroll are removed through their source
// @Tags cashflow
// @Produce  json
// @Param   expenseID path int true "Expense ID"
// @Success 200 {object} domain.CashflowResult
// @Failure 400 {object} map[string]string "Expense belongs to another record"
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *cashflowHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID, ok := pathID(c, "expenseID")
	if !ok {
		return
	}
	result, err := h.cashflowService.DeleteExpense(c.Request.Context(), expenseID)
	if err != nil {
		respondError(c, logger, "delete expense", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// recordCapital godoc
// @Summary Record additional capital
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   capital body dto.CapitalRequest true "Capital"
// @Success 201 {object} domain.CashflowResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /capital [post]
func (h *cashflowHandler) recordCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CapitalRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.RecordCapital(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "record capital", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// listCapital godoc
// @Summary List capital entries
// @Tags cashflow
// @Produce  json
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} domain.CapitalEntry
// @Security BearerAuth
// @Router /capital [get]
func (h *cashflowHandler) listCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if !bindQuery(c, logger, &params) {
		return
	}
	from, to, err := services.ParseDateRange(params.From, params.To)
	if err != nil {
		respondError(c, logger, "list capital", err)
		return
	}
	rows, err := h.cashflowService.ListCapital(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, "list capital", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func categoryKind(c *gin.Context) (domain.CategoryKind, bool) {
	switch kind := domain.CategoryKind(c.Param("kind")); kind {
	case domain.ExpenseCategory, domain.IncomeCategory:
		return kind, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Category kind must be expense or income"})
	return "", false
}

// ensureCategory godoc
// @Summary Create a category
// @Description Returns the existing category when the name is already taken
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   kind path string true "expense or income"
// @Param   category body dto.CreateCategoryRequest true "Category"
// @Success 200 {object} domain.CategoryResult
// @Security BearerAuth
// @Router /categories/{kind} [post]
func (h *cashflowHandler) ensureCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, ok := categoryKind(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.EnsureCategory(c.Request.Context(), kind, req)
	if err != nil {
		respondError(c, logger, "create category", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// listCategories godoc
// @Summary List categories
// @Tags cashflow
// @Produce  json
// @Param   kind path string true "expense or income"
// @Success 200 {array} domain.Category
// @Security BearerAuth
// @Router /categories/{kind} [get]
func (h *cashflowHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, ok := categoryKind(c)
	if !ok {
		return
	}
	categories, err := h.cashflowService.ListCategories(c.Request.Context(), kind)
	if err != nil {
		respondError(c, logger, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// renameCategory godoc
// @Summary Rename a category
// @Description Reserved categories and categories holding vendor or payroll rows cannot be renamed
// @Tags cashflow
// @Accept  json
// @Produce  json
// @Param   kind path string true "expense or income"
// @Param   categoryID path int true "Category ID"
// @Param   category body dto.RenameCategoryRequest true "New name"
// @Success 200 {object} domain.CategoryResult
// @Failure 409 {object} map[string]string "Name already taken"
// @Security BearerAuth
// @Router /categories/{kind}/{categoryID} [patch]
func (h *cashflowHandler) renameCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, ok := categoryKind(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryID")
	if !ok {
		return
	}
	var req dto.RenameCategoryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	result, err := h.cashflowService.RenameCategory(c.Request.Context(), kind, categoryID, req)
	if err != nil {
		respondError(c, logger, "rename category", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deleteCategory godoc
// @Summary Delete a category and its entries
// @Description Reserved categories and categories holding vendor or payroll rows cannot be deleted
// @Tags cashflow
// @Produce  json
// @Param   kind path string true "expense or income"
// @Param   categoryID path int true "Category ID"
// @Success 200 {object} domain.CategoryResult
// @Failure 400 {object} map[string]string "Category is reserved or in use"
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /categories/{kind}/{categoryID} [delete]
func (h *cashflowHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, ok := categoryKind(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryID")
	if !ok {
		return
	}
	result, err := h.cashflowService.DeleteCategory(c.Request.Context(), kind, categoryID)
	if err != nil {
		respondError(c, logger, "delete category", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
