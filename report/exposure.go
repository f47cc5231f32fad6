package report

import (
	"sort"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// BranchExposure is the unpaid amount a buyer carries at one branch.
type BranchExposure struct {
	Branch types.Branch `json:"branch"`
	Amount types.Money  `json:"amount"`
	Count  int          `json:"count"`
}

// ComputeBranchExposure groups a buyer's unpaid transaction balances by
// branch, sorted by descending exposure. Branches with no unpaid amount
// are omitted.
func ComputeBranchExposure(txs []transaction.Transaction, buyerID id.BuyerID) []BranchExposure {
	currency := datasetCurrency(txs)
	byBranch := make(map[types.Branch]*BranchExposure)

	for i := range txs {
		tx := &txs[i]
		if tx.BuyerID != buyerID || tx.Status == transaction.StatusPaid {
			continue
		}

		exp, ok := byBranch[tx.Branch]
		if !ok {
			exp = &BranchExposure{Branch: tx.Branch, Amount: types.Zero(currency)}
			byBranch[tx.Branch] = exp
		}
		exp.Amount = exp.Amount.Add(tx.Unpaid())
		exp.Count++
	}

	result := make([]BranchExposure, 0, len(byBranch))
	for _, exp := range byBranch {
		if exp.Amount.IsPositive() {
			result = append(result, *exp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount.Amount != result[j].Amount.Amount {
			return result[i].Amount.Amount > result[j].Amount.Amount
		}
		return result[i].Branch < result[j].Branch
	})

	return result
}

// TotalExposure sums a buyer's unpaid balances across all branches.
func TotalExposure(txs []transaction.Transaction, buyerID id.BuyerID) types.Money {
	total := types.Zero(datasetCurrency(txs))
	for _, exp := range ComputeBranchExposure(txs, buyerID) {
		total = total.Add(exp.Amount)
	}
	return total
}
