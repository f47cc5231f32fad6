// Package report contains the pure read-only projections: receivables
// aging, branch exposure, branch scorecards, and dashboard rollups.
// Nothing here mutates state; every function is deterministic over its
// inputs.
package report

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// AgingBucket is one receivables risk tier.
type AgingBucket struct {
	Label   string      `json:"label"`    // "0-30", "31-60", "61+"
	MinDays int         `json:"min_days"` // Inclusive
	MaxDays int         `json:"max_days"` // Inclusive; 0 means unbounded
	Total   types.Money `json:"total"`
	Count   int         `json:"count"`
}

// AgingReport is the three-tier breakdown of a buyer's unpaid balances.
type AgingReport struct {
	BuyerID id.BuyerID    `json:"buyer_id"`
	AsOf    time.Time     `json:"as_of"`
	Buckets []AgingBucket `json:"buckets"`
	Total   types.Money   `json:"total"`
}

// ComputeAgingBuckets classifies a buyer's unpaid transactions into three
// age tiers. Age is whole days rounded up; day 30 lands in the first
// tier, day 60 in the second. Only non-PAID transactions contribute.
func ComputeAgingBuckets(txs []transaction.Transaction, buyerID id.BuyerID, asOf time.Time) AgingReport {
	currency := datasetCurrency(txs)

	buckets := []AgingBucket{
		{Label: "0-30", MinDays: 0, MaxDays: 30, Total: types.Zero(currency)},
		{Label: "31-60", MinDays: 31, MaxDays: 60, Total: types.Zero(currency)},
		{Label: "61+", MinDays: 61, MaxDays: 0, Total: types.Zero(currency)},
	}
	total := types.Zero(currency)

	for i := range txs {
		tx := &txs[i]
		if tx.BuyerID != buyerID || tx.Status == transaction.StatusPaid {
			continue
		}

		unpaid := tx.Unpaid()
		ageDays := tx.AgeDays(asOf)

		var idx int
		switch {
		case ageDays <= 30:
			idx = 0
		case ageDays <= 60:
			idx = 1
		default:
			idx = 2
		}

		buckets[idx].Total = buckets[idx].Total.Add(unpaid)
		buckets[idx].Count++
		total = total.Add(unpaid)
	}

	return AgingReport{
		BuyerID: buyerID,
		AsOf:    asOf,
		Buckets: buckets,
		Total:   total,
	}
}

// datasetCurrency returns the currency used by the transaction set,
// defaulting to rupees for an empty set.
func datasetCurrency(txs []transaction.Transaction) string {
	if len(txs) > 0 {
		return txs[0].TotalAmount.Currency
	}
	return "lkr"
}
