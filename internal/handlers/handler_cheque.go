package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type chequeHandler struct {
	chequeService portssvc.ChequeSvc
}

func newChequeHandler(cs portssvc.ChequeSvc) *chequeHandler {
	return &chequeHandler{chequeService: cs}
}

// registerChequeRoutes registers routes related to the cheque register.
func registerChequeRoutes(rg *gin.RouterGroup, chequeService portssvc.ChequeSvc) {
	h := newChequeHandler(chequeService)

	cheques := rg.Group("/cheques")
	{
		cheques.POST("", h.issueCheque)
		cheques.GET("", h.listCheques)
		cheques.GET("/:chequeID", h.getCheque)
		cheques.POST("/:chequeID/pay", h.markChequePaid)
		cheques.DELETE("/:chequeID", h.deleteCheque)
	}
}

// issueCheque godoc
// @Summary Issue a cheque
// @Tags cheques
// @Accept  json
// @Produce  json
// @Param   cheque body dto.IssueChequeRequest true "Cheque details"
// @Success 201 {object} domain.ChequeResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /cheques [post]
func (h *chequeHandler) issueCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueChequeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	result, err := h.chequeService.IssueCheque(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "issue cheque", err)
		return
	}

	logger.Info("Cheque issued", slog.Int64("cheque_id", result.Cheque.ID))
	c.JSON(http.StatusCreated, result)
}

// listCheques godoc
// @Summary List cheques
// @Description Lists the register with days remaining and the total still due
// @Tags cheques
// @Produce  json
// @Param   status query string false "issued or paid"
// @Success 200 {object} domain.ChequeListing
// @Failure 400 {object} map[string]string "Invalid status"
// @Security BearerAuth
// @Router /cheques [get]
func (h *chequeHandler) listCheques(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListChequesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	listing, err := h.chequeService.ListCheques(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "list cheques", err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// getCheque godoc
// @Summary Get a cheque
// @Tags cheques
// @Produce  json
// @Param   chequeID path int true "Cheque ID"
// @Success 200 {object} domain.Cheque
// @Failure 404 {object} map[string]string "Cheque not found"
// @Security BearerAuth
// @Router /cheques/{chequeID} [get]
func (h *chequeHandler) getCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID, ok := pathID(c, "chequeID")
	if !ok {
		return
	}
	cheque, err := h.chequeService.GetCheque(c.Request.Context(), chequeID)
	if err != nil {
		respondError(c, logger, "get cheque", err)
		return
	}
	c.JSON(http.StatusOK, cheque)
}

// markChequePaid godoc
// @Summary Mark a cheque paid
// @Description Settles the cheque, recording a vendor payment and expense when the payee is a vendor. Repeating the call returns the original settlement.
// @Tags cheques
// @Produce  json
// @Param   chequeID path int true "Cheque ID"
// @Success 200 {object} domain.ChequePaymentResult
// @Failure 404 {object} map[string]string "Cheque not found"
// @Security BearerAuth
// @Router /cheques/{chequeID}/pay [post]
func (h *chequeHandler) markChequePaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID, ok := pathID(c, "chequeID")
	if !ok {
		return
	}

	result, err := h.chequeService.MarkChequePaid(c.Request.Context(), chequeID)
	if err != nil {
		respondError(c, logger, "mark cheque paid", err)
		return
	}

	logger.Info("Cheque paid",
		slog.Int64("cheque_id", chequeID),
		slog.Bool("already_paid", result.AlreadyPaid),
		slog.Bool("unmirrored", result.Unmirrored),
	)
	c.JSON(http.StatusOK, result)
}

// deleteCheque godoc
// @Summary Delete a cheque
// @Description Deleting a paid cheque keeps the payment and expense its settlement wrote
// @Tags cheques
// @Produce  json
// @Param   chequeID path int true "Cheque ID"
// @Success 200 {object} domain.ChequeResult
// @Failure 404 {object} map[string]string "Cheque not found"
// @Security BearerAuth
// @Router /cheques/{chequeID} [delete]
func (h *chequeHandler) deleteCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID, ok := pathID(c, "chequeID")
	if !ok {
		return
	}

	result, err := h.chequeService.DeleteCheque(c.Request.Context(), chequeID)
	if err != nil {
		respondError(c, logger, "delete cheque", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
