package services

// ServiceContainer holds the application services consumed by the API and
// the CLI. Every field is usually backed by the same engine.
type ServiceContainer struct {
	Ledger        LedgerEngine
	Vendors       VendorCommandSvc
	VendorQueries VendorQuerySvc
	Cheques       ChequeSvc
	Payroll       PayrollSvc
	Cashflow      CashflowSvc
}

// NewServiceContainer exposes engine through every service facade.
func NewServiceContainer(engine LedgerEngine) *ServiceContainer {
	return &ServiceContainer{
		Ledger:        engine,
		Vendors:       engine,
		VendorQueries: engine,
		Cheques:       engine,
		Payroll:       engine,
		Cashflow:      engine,
	}
}
