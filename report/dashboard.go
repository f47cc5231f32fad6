package report

import (
	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// DashboardMetrics is the headline rollup for one branch, or for the
// whole business when computed with BranchAll.
type DashboardMetrics struct {
	Branch       types.Branch `json:"branch"`
	TotalSales   types.Money  `json:"total_sales"`   // Sum of transaction totals
	CashIn       types.Money  `json:"cash_in"`       // Sum of paid amounts
	CreditIssued types.Money  `json:"credit_issued"` // Outstanding wholesale balances
	Expenses     types.Money  `json:"expenses"`
	NetPosition  types.Money  `json:"net_position"` // CashIn minus Expenses
	SaleCount    int          `json:"sale_count"`
	FlaggedCount int          `json:"flagged_count"`
}

// ComputeDashboard rolls up sales, collections, outstanding credit, and
// expenses for a branch. Pass BranchAll to aggregate every branch.
func ComputeDashboard(txs []transaction.Transaction, expenses []expense.Expense, branch types.Branch) DashboardMetrics {
	currency := datasetCurrency(txs)
	m := DashboardMetrics{
		Branch:       branch,
		TotalSales:   types.Zero(currency),
		CashIn:       types.Zero(currency),
		CreditIssued: types.Zero(currency),
		Expenses:     types.Zero(currency),
	}

	all := branch == types.BranchAll

	for i := range txs {
		tx := &txs[i]
		if !all && tx.Branch != branch {
			continue
		}

		m.TotalSales = m.TotalSales.Add(tx.TotalAmount)
		m.CashIn = m.CashIn.Add(tx.PaidAmount)
		if tx.IsCreditBearing() && tx.Status != transaction.StatusPaid {
			m.CreditIssued = m.CreditIssued.Add(tx.Unpaid())
		}
		m.SaleCount++
		if tx.IsFlagged {
			m.FlaggedCount++
		}
	}

	for i := range expenses {
		e := &expenses[i]
		if !all && e.Branch != branch {
			continue
		}
		m.Expenses = m.Expenses.Add(e.Amount)
	}

	m.NetPosition = m.CashIn.Subtract(m.Expenses)

	return m
}
