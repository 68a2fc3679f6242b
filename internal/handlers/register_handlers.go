package handlers

import (
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes on r.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	RegisterLedgerRoutes(v1, services)
}

// RegisterLedgerRoutes registers every ledger route on rg.
func RegisterLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerVendorRoutes(rg, services.Vendors, services.VendorQueries)
	registerChequeRoutes(rg, services.Cheques)
	registerPayrollRoutes(rg, services.Payroll)
	registerCashflowRoutes(rg, services.Cashflow)
}
