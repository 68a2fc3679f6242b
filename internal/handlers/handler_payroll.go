package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type payrollHandler struct {
	payrollService portssvc.PayrollSvc
}

func newPayrollHandler(ps portssvc.PayrollSvc) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers employee and payroll ledger routes.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvc) {
	h := newPayrollHandler(payrollService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:employeeID", h.getEmployee)
		employees.DELETE("/:employeeID", h.deleteEmployee)
		employees.GET("/:employeeID/balance", h.getPayrollBalance)
		employees.GET("/:employeeID/transactions", h.listPayrollTransactions)
	}

	txns := rg.Group("/payroll-transactions")
	{
		txns.POST("", h.recordPayrollTransaction)
		txns.PUT("/:txnID", h.editPayrollTransaction)
		txns.DELETE("/:txnID", h.deletePayrollTransaction)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} domain.EmployeeResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /employees [post]
func (h *payrollHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.payrollService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "create employee", err)
		return
	}

	logger.Info("Employee created", slog.Int64("employee_id", result.Employee.ID))
	c.JSON(http.StatusCreated, result)
}

// listEmployees godoc
// @Summary List employees
// @Tags payroll
// @Produce  json
// @Success 200 {array} domain.Employee
// @Security BearerAuth
// @Router /employees [get]
func (h *payrollHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employees, err := h.payrollService.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, logger, "list employees", err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// getEmployee godoc
// @Summary Get an employee
// @Tags payroll
// @Produce  json
// @Param   employeeID path int true "Employee ID"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employeeID} [get]
func (h *payrollHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID, ok := pathID(c, "employeeID")
	if !ok {
		return
	}
	employee, err := h.payrollService.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, logger, "get employee", err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Description Deletes the employee with every payroll transaction and salary or advance expense
// @Tags payroll
// @Produce  json
// @Param   employeeID path int true "Employee ID"
// @Param   expectedVersion query int false "Optimistic concurrency check"
// @Success 200 {object} domain.Outcome
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employeeID} [delete]
func (h *payrollHandler) deleteEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID, ok := pathID(c, "employeeID")
	if !ok {
		return
	}
	version, ok := expectedVersion(c)
	if !ok {
		return
	}

	outcome, err := h.payrollService.DeleteEmployee(c.Request.Context(), employeeID, version)
	if err != nil {
		respondError(c, logger, "delete employee", err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// getPayrollBalance godoc
// @Summary Get outstanding loan balance
// @Tags payroll
// @Produce  json
// @Param   employeeID path int true "Employee ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employeeID}/balance [get]
func (h *payrollHandler) getPayrollBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID, ok := pathID(c, "employeeID")
	if !ok {
		return
	}
	balance, err := h.payrollService.GetPayrollBalance(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, logger, "get payroll balance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employeeID": employeeID, "loanBalance": balance})
}

// listPayrollTransactions godoc
// @Summary List an employee's payroll ledger
// @Tags payroll
// @Produce  json
// @Param   employeeID path int true "Employee ID"
// @Success 200 {array} domain.PayrollTransaction
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employeeID}/transactions [get]
func (h *payrollHandler) listPayrollTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID, ok := pathID(c, "employeeID")
	if !ok {
		return
	}
	rows, err := h.payrollService.ListPayrollTransactions(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, logger, "list payroll transactions", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// recordPayrollTransaction godoc
// @Summary Record a payroll transaction
// @Description Records a salary, advance or deduction. A salary may carry a same-day loan deduction.
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   transaction body dto.RecordPayrollTransactionRequest true "Transaction"
// @Success 201 {object} domain.PayrollTransactionResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /payroll-transactions [post]
func (h *payrollHandler) recordPayrollTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPayrollTransactionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.payrollService.RecordPayrollTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "record payroll transaction", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// editPayrollTransaction godoc
// @Summary Edit a payroll transaction
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   txnID path int true "Transaction ID"
// @Param   transaction body dto.EditPayrollTransactionRequest true "Transaction"
// @Success 200 {object} domain.PayrollTransactionResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Stale version"
// @Security BearerAuth
// @Router /payroll-transactions/{txnID} [put]
func (h *payrollHandler) editPayrollTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID, ok := pathID(c, "txnID")
	if !ok {
		return
	}
	var req dto.EditPayrollTransactionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.payrollService.EditPayrollTransaction(c.Request.Context(), txnID, req)
	if err != nil {
		respondError(c, logger, "edit payroll transaction", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deletePayrollTransaction godoc
// @Summary Delete a payroll transaction
// @Tags payroll
// @Produce  json
// @Param   txnID path int true "Transaction ID"
// @Param   expectedVersion query int false "Optimistic concurrency check"
// @Success 200 {object} domain.PayrollTransactionResult
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /payroll-transactions/{txnID} [delete]
func (h *payrollHandler) deletePayrollTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID, ok := pathID(c, "txnID")
	if !ok {
		return
	}
	version, ok := expectedVersion(c)
	if !ok {
		return
	}

	result, err := h.payrollService.DeletePayrollTransaction(c.Request.Context(), txnID, version)
	if err != nil {
		respondError(c, logger, "delete payroll transaction", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
