package khata

import (
	"time"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/cheque"
	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/item"
	"github.com/xraph/khata/message"
	"github.com/xraph/khata/report"
	"github.com/xraph/khata/seller"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// ──────────────────────────────────────────────────
// Read access
// ──────────────────────────────────────────────────
//
// All read methods return copies. Nothing handed out aliases engine
// state, so callers can hold results across mutations.

// Buyer returns the buyer with the given id.
func (e *Engine) Buyer(buyerID id.BuyerID) (buyer.Buyer, error) {
	b, ok := e.store.BuyerView(buyerID)
	if !ok {
		return buyer.Buyer{}, ErrBuyerNotFound
	}
	return b, nil
}

// Buyers returns all buyers, newest-first.
func (e *Engine) Buyers() []buyer.Buyer { return e.store.Buyers() }

// Supplier returns the supplier with the given id.
func (e *Engine) Supplier(sellerID id.SellerID) (seller.Seller, error) {
	s, ok := e.store.SellerView(sellerID)
	if !ok {
		return seller.Seller{}, ErrSellerNotFound
	}
	return s, nil
}

// Suppliers returns all suppliers, newest-first.
func (e *Engine) Suppliers() []seller.Seller { return e.store.Sellers() }

// Item returns the item with the given id.
func (e *Engine) Item(itemID id.ItemID) (item.Item, error) {
	it, ok := e.store.ItemView(itemID)
	if !ok {
		return item.Item{}, ErrItemNotFound
	}
	return it, nil
}

// Items returns all items sorted by name.
func (e *Engine) Items() []item.Item { return e.store.Items() }

// Transaction returns the transaction with the given id.
func (e *Engine) Transaction(txID id.TransactionID) (transaction.Transaction, error) {
	tx, ok := e.store.TransactionView(txID)
	if !ok {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

// Transactions returns all transactions, newest-first.
func (e *Engine) Transactions() []transaction.Transaction { return e.store.Transactions() }

// TransactionsByBuyer returns a buyer's transactions, newest-first.
func (e *Engine) TransactionsByBuyer(buyerID id.BuyerID) []transaction.Transaction {
	return e.store.TransactionsByBuyer(buyerID)
}

// Cheque returns the cheque with the given id.
func (e *Engine) Cheque(chequeID id.ChequeID) (cheque.Cheque, error) {
	c, ok := e.store.ChequeView(chequeID)
	if !ok {
		return cheque.Cheque{}, ErrChequeNotFound
	}
	return c, nil
}

// Cheques returns all cheques sorted by due date.
func (e *Engine) Cheques() []cheque.Cheque { return e.store.Cheques() }

// Expense returns the expense with the given id.
func (e *Engine) Expense(expenseID id.ExpenseID) (expense.Expense, error) {
	ex, ok := e.store.ExpenseView(expenseID)
	if !ok {
		return expense.Expense{}, ErrExpenseNotFound
	}
	return ex, nil
}

// Expenses returns all expenses, newest-first.
func (e *Engine) Expenses() []expense.Expense { return e.store.Expenses() }

// AuditLogs returns the audit trail, newest-first.
func (e *Engine) AuditLogs() []audit.Log { return e.store.AuditLogs() }

// Messages returns the outbound message log, newest-first.
func (e *Engine) Messages() []message.Log { return e.store.Messages() }

// ──────────────────────────────────────────────────
// Reports
// ──────────────────────────────────────────────────

// AgingBuckets buckets a buyer's unpaid credit-bearing transactions by
// age as of now.
func (e *Engine) AgingBuckets(buyerID id.BuyerID) report.AgingReport {
	return report.ComputeAgingBuckets(e.store.Transactions(), buyerID, time.Now().UTC())
}

// AgingBucketsAsOf buckets a buyer's unpaid credit-bearing transactions
// by age at a fixed reference time.
func (e *Engine) AgingBucketsAsOf(buyerID id.BuyerID, asOf time.Time) report.AgingReport {
	return report.ComputeAgingBuckets(e.store.Transactions(), buyerID, asOf)
}

// BranchExposure breaks a buyer's outstanding debt down by originating
// branch, largest first.
func (e *Engine) BranchExposure(buyerID id.BuyerID) []report.BranchExposure {
	return report.ComputeBranchExposure(e.store.Transactions(), buyerID)
}

// TotalExposure returns a buyer's total outstanding debt across branches.
func (e *Engine) TotalExposure(buyerID id.BuyerID) types.Money {
	return report.TotalExposure(e.store.Transactions(), buyerID)
}

// BranchScorecard scores every branch against the default revenue target.
func (e *Engine) BranchScorecard() []report.BranchScore {
	return report.ComputeBranchScorecard(e.store.Transactions(), e.store.Expenses(), report.DefaultRevenueTarget)
}

// Dashboard aggregates headline metrics for a branch, or all branches
// with types.BranchAll.
func (e *Engine) Dashboard(branch types.Branch) report.DashboardMetrics {
	return report.ComputeDashboard(e.store.Transactions(), e.store.Expenses(), branch)
}
