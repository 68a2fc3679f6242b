package domain

// EventKind says what happened to an entity.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Entity names used in ledger events.
const (
	EntityVendor             = "vendor"
	EntityVendorTransaction  = "vendor_transaction"
	EntityCheque             = "cheque"
	EntityExpense            = "expense"
	EntityIncome             = "income"
	EntityCapital            = "capital"
	EntityCategory           = "category"
	EntityEmployee           = "employee"
	EntityPayrollTransaction = "payroll_transaction"
)

// LedgerEvent records one committed write so presentation layers can refresh.
type LedgerEvent struct {
	Kind   EventKind `json:"kind"`
	Entity string    `json:"entity"`
	ID     int64     `json:"id"`
}
