package audit

// Action constants for audit entries.
const (
	// Sale actions
	ActionSaleRecorded = "sale.recorded"
	ActionSaleFlagged  = "sale.flagged"
	ActionSaleDeleted  = "sale.deleted"
	ActionBillRecorded = "bill.recorded"

	// Buyer actions
	ActionBuyerRegistered = "buyer.registered"
	ActionBuyerUpdated    = "buyer.updated"
	ActionBuyerDeleted    = "buyer.deleted"
	ActionPaymentRecorded = "payment.recorded"
	ActionPaymentDeleted  = "payment.deleted"

	// Supplier actions
	ActionSupplierRegistered   = "supplier.registered"
	ActionSupplierUpdated      = "supplier.updated"
	ActionSupplierDeleted      = "supplier.deleted"
	ActionPurchaseBillRecorded = "supplier.purchase_bill"
	ActionSupplierPaid         = "supplier.payment"
	ActionLedgerEntryDeleted   = "supplier.entry_deleted"

	// Inventory actions
	ActionItemAdded        = "item.added"
	ActionItemUpdated      = "item.updated"
	ActionItemDeleted      = "item.deleted"
	ActionStockTransferred = "stock.transferred"

	// Cheque actions
	ActionChequeAdded   = "cheque.added"
	ActionChequeCleared = "cheque.cleared"
	ActionChequeBounced = "cheque.bounced"
	ActionChequeDeleted = "cheque.deleted"

	// Expense actions
	ActionExpenseRecorded = "expense.recorded"
	ActionExpenseDeleted  = "expense.deleted"

	// Messaging and snapshot actions
	ActionMessageLogged    = "message.logged"
	ActionSnapshotImported = "snapshot.imported"
)

// AllActions returns every known audit action.
func AllActions() []string {
	return []string{
		ActionSaleRecorded,
		ActionSaleFlagged,
		ActionSaleDeleted,
		ActionBillRecorded,
		ActionBuyerRegistered,
		ActionBuyerUpdated,
		ActionBuyerDeleted,
		ActionPaymentRecorded,
		ActionPaymentDeleted,
		ActionSupplierRegistered,
		ActionSupplierUpdated,
		ActionSupplierDeleted,
		ActionPurchaseBillRecorded,
		ActionSupplierPaid,
		ActionLedgerEntryDeleted,
		ActionItemAdded,
		ActionItemUpdated,
		ActionItemDeleted,
		ActionStockTransferred,
		ActionChequeAdded,
		ActionChequeCleared,
		ActionChequeBounced,
		ActionChequeDeleted,
		ActionExpenseRecorded,
		ActionExpenseDeleted,
		ActionMessageLogged,
		ActionSnapshotImported,
	}
}
