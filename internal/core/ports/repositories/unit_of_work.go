package repositories

import "context"

// Repositories bundles every ledger store bound to the same connection or
// transaction.
type Repositories struct {
	Vendors            VendorRepository
	VendorTransactions VendorTransactionRepository
	Cheques            ChequeRepository
	Expenses           ExpenseRepository
	Income             IncomeRepository
	Capital            CapitalRepository
	Categories         CategoryRepository
	Employees          EmployeeRepository
	Payroll            PayrollRepository
}

// UnitOfWork runs a function against repositories sharing one database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// Reader returns repositories bound to the plain connection, for queries.
	Reader() Repositories
}
