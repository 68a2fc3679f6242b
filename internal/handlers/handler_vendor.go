package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vendorHandler handles HTTP requests for vendor accounts and their ledgers.
type vendorHandler struct {
	commands portssvc.VendorCommandSvc
	queries  portssvc.VendorQuerySvc
}

func newVendorHandler(commands portssvc.VendorCommandSvc, queries portssvc.VendorQuerySvc) *vendorHandler {
	return &vendorHandler{commands: commands, queries: queries}
}

// registerVendorRoutes registers routes related to vendors.
func registerVendorRoutes(rg *gin.RouterGroup, commands portssvc.VendorCommandSvc, queries portssvc.VendorQuerySvc) {
	h := newVendorHandler(commands, queries)

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/payable", h.totalAccountsPayable)
		vendors.GET("/:vendorID", h.getVendor)
		vendors.PATCH("/:vendorID", h.updateVendor)
		vendors.DELETE("/:vendorID", h.deleteVendor)
		vendors.GET("/:vendorID/balance", h.getVendorBalance)
		vendors.GET("/:vendorID/transactions", h.listVendorTransactions)
	}

	txns := rg.Group("/vendor-transactions")
	{
		txns.POST("", h.recordVendorTransaction)
		txns.PUT("/:txnID", h.editVendorTransaction)
		txns.DELETE("/:txnID", h.deleteVendorTransaction)
	}
}

// createVendor godoc
// @Summary Create a vendor
// @Description Opens a vendor account with an optional opening balance
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} domain.VendorResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Vendor name already exists"
// @Failure 500 {object} map[string]string "Failed to create vendor"
// @Security BearerAuth
// @Router /vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVendorRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.commands.CreateVendor(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "create vendor", err)
		return
	}

	logger.Info("Vendor created", slog.Int64("vendor_id", result.Vendor.ID))
	c.JSON(http.StatusCreated, result)
}

// listVendors godoc
// @Summary List vendors
// @Description Lists every vendor with its current balance
// @Tags vendors
// @Produce  json
// @Success 200 {array} domain.VendorSummary
// @Failure 500 {object} map[string]string "Failed to list vendors"
// @Security BearerAuth
// @Router /vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendors, err := h.queries.ListVendors(c.Request.Context())
	if err != nil {
		respondError(c, logger, "list vendors", err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// getVendor godoc
// @Summary Get a vendor
// @Tags vendors
// @Produce  json
// @Param   vendorID path int true "Vendor ID"
// @Success 200 {object} domain.VendorSummary
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{vendorID} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID, ok := pathID(c, "vendorID")
	if !ok {
		return
	}
	vendor, err := h.queries.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, logger, "get vendor", err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// updateVendor godoc
// @Summary Update a vendor
// @Description Changes name, contact or opening balance. Renaming also renames the vendor's payment expenses and unpaid cheques.
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   vendorID path int true "Vendor ID"
// @Param   vendor body dto.UpdateVendorRequest true "Fields to change"
// @Success 200 {object} domain.VendorResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 409 {object} map[string]string "Name taken or stale version"
// @Security BearerAuth
// @Router /vendors/{vendorID} [patch]
func (h *vendorHandler) updateVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID, ok := pathID(c, "vendorID")
	if !ok {
		return
	}
	var req dto.UpdateVendorRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.commands.UpdateVendor(c.Request.Context(), vendorID, req)
	if err != nil {
		respondError(c, logger, "update vendor", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deleteVendor godoc
// @Summary Delete a vendor
// @Description Deletes the vendor, every transaction and every linked expense and cheque
// @Tags vendors
// @Produce  json
// @Param   vendorID path int true "Vendor ID"
// @Param   expectedVersion query int false "Optimistic concurrency check"
// @Success 200 {object} domain.Outcome
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 409 {object} map[string]string "Stale version"
// @Security BearerAuth
// @Router /vendors/{vendorID} [delete]
func (h *vendorHandler) deleteVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID, ok := pathID(c, "vendorID")
	if !ok {
		return
	}
	version, ok := expectedVersion(c)
	if !ok {
		return
	}

	outcome, err := h.commands.DeleteVendor(c.Request.Context(), vendorID, version)
	if err != nil {
		respondError(c, logger, "delete vendor", err)
		return
	}

	logger.Info("Vendor deleted", slog.Int64("vendor_id", vendorID), slog.Int("events", len(outcome.Events)))
	c.JSON(http.StatusOK, outcome)
}

// getVendorBalance godoc
// @Summary Get a vendor balance
// @Tags vendors
// @Produce  json
// @Param   vendorID path int true "Vendor ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{vendorID}/balance [get]
func (h *vendorHandler) getVendorBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID, ok := pathID(c, "vendorID")
	if !ok {
		return
	}
	balance, err := h.queries.GetVendorBalance(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, logger, "get vendor balance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendorID": vendorID, "balance": balance})
}

// listVendorTransactions godoc
// @Summary List a vendor ledger
// @Description Rows ascending by date then id, each with the running balance after it
// @Tags vendors
// @Produce  json
// @Param   vendorID path int true "Vendor ID"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} domain.VendorLedgerRow
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{vendorID}/transactions [get]
func (h *vendorHandler) listVendorTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID, ok := pathID(c, "vendorID")
	if !ok {
		return
	}
	var params dto.DateRangeParams
	if !bindQuery(c, logger, &params) {
		return
	}
	from, to, err := services.ParseDateRange(params.From, params.To)
	if err != nil {
		respondError(c, logger, "list vendor transactions", err)
		return
	}

	rows, err := h.queries.ListVendorTransactions(c.Request.Context(), vendorID, from, to)
	if err != nil {
		respondError(c, logger, "list vendor transactions", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// totalAccountsPayable godoc
// @Summary Total accounts payable
// @Description Sum of the positive vendor balances
// @Tags vendors
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /vendors/payable [get]
func (h *vendorHandler) totalAccountsPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	total, err := h.queries.TotalAccountsPayable(c.Request.Context())
	if err != nil {
		respondError(c, logger, "total accounts payable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalPayable": total})
}

// recordVendorTransaction godoc
// @Summary Record a vendor transaction
// @Description Records a purchase, payment or return. Payments are mirrored into the expense ledger; purchases with cheque details issue a cheque.
// @Tags vendor-transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.RecordVendorTransactionRequest true "Transaction"
// @Success 201 {object} domain.VendorTransactionResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /vendor-transactions [post]
func (h *vendorHandler) recordVendorTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordVendorTransactionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.commands.RecordVendorTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "record vendor transaction", err)
		return
	}

	logger.Info("Vendor transaction recorded",
		slog.Int64("vendor_id", req.VendorID),
		slog.Int64("transaction_id", result.Transaction.ID),
		slog.String("type", req.Type),
	)
	c.JSON(http.StatusCreated, result)
}

// editVendorTransaction godoc
// @Summary Edit a vendor transaction
// @Description Replaces the transaction and brings its linked expense and cheque in line
// @Tags vendor-transactions
// @Accept  json
// @Produce  json
// @Param   txnID path int true "Transaction ID"
// @Param   transaction body dto.EditVendorTransactionRequest true "Transaction"
// @Success 200 {object} domain.VendorTransactionResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Stale version"
// @Security BearerAuth
// @Router /vendor-transactions/{txnID} [put]
func (h *vendorHandler) editVendorTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID, ok := pathID(c, "txnID")
	if !ok {
		return
	}
	var req dto.EditVendorTransactionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.commands.EditVendorTransaction(c.Request.Context(), txnID, req)
	if err != nil {
		respondError(c, logger, "edit vendor transaction", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deleteVendorTransaction godoc
// @Summary Delete a vendor transaction
// @Description Deletes the transaction together with its linked expense and cheque
// @Tags vendor-transactions
// @Produce  json
// @Param   txnID path int true "Transaction ID"
// @Param   expectedVersion query int false "Optimistic concurrency check"
// @Success 200 {object} domain.VendorTransactionResult
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /vendor-transactions/{txnID} [delete]
func (h *vendorHandler) deleteVendorTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID, ok := pathID(c, "txnID")
	if !ok {
		return
	}
	version, ok := expectedVersion(c)
	if !ok {
		return
	}

	result, err := h.commands.DeleteVendorTransaction(c.Request.Context(), txnID, version)
	if err != nil {
		respondError(c, logger, "delete vendor transaction", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
