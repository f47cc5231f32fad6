package report

import (
	"math"
	"sort"

	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// DefaultRevenueTarget is the per-branch sales volume that earns the
// full revenue score: one hundred thousand rupees.
var DefaultRevenueTarget = types.LKR(100_000 * 100)

// BranchScore is one branch's composite health score out of 100:
// up to 50 points for revenue volume, 25 for expense discipline, and
// 25 for how little of its sales went out as credit.
type BranchScore struct {
	Branch            types.Branch `json:"branch"`
	Sales             types.Money  `json:"sales"`
	Expenses          types.Money  `json:"expenses"`
	CreditIssued      types.Money  `json:"credit_issued"`
	RevenueScore      float64      `json:"revenue_score"`       // [0, 50]
	ExpenseEfficiency float64      `json:"expense_efficiency"`  // [0, 25]
	CreditSafety      float64      `json:"credit_safety"`       // [0, 25]
	Score             float64      `json:"score"`               // Sum of the three, rounded to the nearest point
}

// ComputeBranchScorecard scores every physical branch and returns them
// sorted by descending score; index 0 is the leading branch. The revenue
// target is the sales volume worth the full 50 revenue points.
func ComputeBranchScorecard(txs []transaction.Transaction, expenses []expense.Expense, target types.Money) []BranchScore {
	if target.Amount <= 0 {
		target = DefaultRevenueTarget
	}

	currency := datasetCurrency(txs)
	scores := make(map[types.Branch]*BranchScore)
	for _, branch := range types.Branches() {
		scores[branch] = &BranchScore{
			Branch:       branch,
			Sales:        types.Zero(currency),
			Expenses:     types.Zero(currency),
			CreditIssued: types.Zero(currency),
		}
	}

	for i := range txs {
		tx := &txs[i]
		sc, ok := scores[tx.Branch]
		if !ok {
			continue
		}
		sc.Sales = sc.Sales.Add(tx.TotalAmount)
		// Credit exposure follows the payment method, not the sale type.
		if tx.PaymentMethod == types.PaymentCredit && tx.Status != transaction.StatusPaid {
			sc.CreditIssued = sc.CreditIssued.Add(tx.Unpaid())
		}
	}

	for i := range expenses {
		e := &expenses[i]
		if sc, ok := scores[e.Branch]; ok {
			sc.Expenses = sc.Expenses.Add(e.Amount)
		}
	}

	result := make([]BranchScore, 0, len(scores))
	for _, sc := range scores {
		sales := float64(sc.Sales.Amount)
		divisor := sales
		if divisor == 0 {
			divisor = 1
		}

		sc.RevenueScore = sales / float64(target.Amount) * 50
		if sc.RevenueScore > 50 {
			sc.RevenueScore = 50
		}

		sc.ExpenseEfficiency = 25 - float64(sc.Expenses.Amount)/divisor*100
		if sc.ExpenseEfficiency < 0 {
			sc.ExpenseEfficiency = 0
		}

		sc.CreditSafety = 25 - float64(sc.CreditIssued.Amount)/divisor*100
		if sc.CreditSafety < 0 {
			sc.CreditSafety = 0
		}

		sc.Score = math.Round(sc.RevenueScore + sc.ExpenseEfficiency + sc.CreditSafety)
		result = append(result, *sc)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Branch < result[j].Branch
	})

	return result
}
