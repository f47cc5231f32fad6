package report

import (
	"testing"
	"time"

	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

func saleAt(branch types.Branch, total, paid int64, buyerID id.BuyerID, method types.PaymentMethod) transaction.Transaction {
	return transaction.Transaction{
		ID:            id.NewTransactionID(),
		Branch:        branch,
		BuyerID:       buyerID,
		Type:          transaction.TypeWholesale,
		Timestamp:     time.Now().UTC(),
		TotalAmount:   types.LKR(total),
		PaidAmount:    types.LKR(paid),
		PaymentMethod: method,
		Status:        transaction.DeriveStatus(types.LKR(total), types.LKR(paid)),
	}
}

func expenseAt(branch types.Branch, amount int64) expense.Expense {
	return expense.Expense{
		ID:          id.NewExpenseID(),
		Branch:      branch,
		Description: "rent",
		Amount:      types.LKR(amount),
		Timestamp:   time.Now().UTC(),
	}
}

func TestScorecardCoversEveryBranch(t *testing.T) {
	scores := ComputeBranchScorecard(nil, nil, DefaultRevenueTarget)

	if len(scores) != len(types.Branches()) {
		t.Fatalf("expected %d branches, got %d", len(types.Branches()), len(scores))
	}

	// No sales anywhere: every branch gets the two full discipline
	// components and zero revenue points.
	for _, sc := range scores {
		if sc.Score != 50 {
			t.Errorf("%s: score %v, want 50", sc.Branch, sc.Score)
		}
	}
}

func TestScorecardRevenueCap(t *testing.T) {
	buyerID := id.Nil
	txs := []transaction.Transaction{
		saleAt(types.BranchMain, DefaultRevenueTarget.Amount*3, DefaultRevenueTarget.Amount*3, buyerID, types.PaymentCash),
	}

	scores := ComputeBranchScorecard(txs, nil, DefaultRevenueTarget)

	if scores[0].Branch != types.BranchMain {
		t.Fatalf("expected %s on top, got %s", types.BranchMain, scores[0].Branch)
	}
	if scores[0].RevenueScore != 50 {
		t.Errorf("revenue score: got %v, want capped 50", scores[0].RevenueScore)
	}
	if scores[0].Score != 100 {
		t.Errorf("score: got %v, want 100", scores[0].Score)
	}
}

func TestScorecardPenalizesExpensesAndCredit(t *testing.T) {
	buyerID := id.NewBuyerID()
	txs := []transaction.Transaction{
		// 100000 cents of sales, fully unpaid wholesale credit.
		saleAt(types.Branch1, 100000, 0, buyerID, types.PaymentCredit),
	}
	expenses := []expense.Expense{
		expenseAt(types.Branch1, 10000), // 10% of sales
	}

	scores := ComputeBranchScorecard(txs, expenses, DefaultRevenueTarget)

	var b1 BranchScore
	for _, sc := range scores {
		if sc.Branch == types.Branch1 {
			b1 = sc
		}
	}

	// Expense ratio 10% costs 10 of 25 points.
	if b1.ExpenseEfficiency != 15 {
		t.Errorf("expense efficiency: got %v, want 15", b1.ExpenseEfficiency)
	}
	// Everything went out on credit: the 25 safety points floor at 0.
	if b1.CreditSafety != 0 {
		t.Errorf("credit safety: got %v, want 0", b1.CreditSafety)
	}
}

func TestDashboardSingleBranch(t *testing.T) {
	buyerID := id.NewBuyerID()
	txs := []transaction.Transaction{
		saleAt(types.BranchMain, 20000, 5000, buyerID, types.PaymentCredit),
		saleAt(types.Branch1, 9999, 9999, id.Nil, types.PaymentCash),
	}
	expenses := []expense.Expense{
		expenseAt(types.BranchMain, 3000),
		expenseAt(types.Branch1, 1000),
	}

	m := ComputeDashboard(txs, expenses, types.BranchMain)

	if !m.TotalSales.Equal(types.LKR(20000)) {
		t.Errorf("total sales: got %v, want %v", m.TotalSales, types.LKR(20000))
	}
	if !m.CashIn.Equal(types.LKR(5000)) {
		t.Errorf("cash in: got %v, want %v", m.CashIn, types.LKR(5000))
	}
	if !m.CreditIssued.Equal(types.LKR(15000)) {
		t.Errorf("credit issued: got %v, want %v", m.CreditIssued, types.LKR(15000))
	}
	if !m.NetPosition.Equal(types.LKR(2000)) {
		t.Errorf("net position: got %v, want %v", m.NetPosition, types.LKR(2000))
	}
	if m.SaleCount != 1 {
		t.Errorf("sale count: got %d, want 1", m.SaleCount)
	}
}

func TestDashboardAllBranches(t *testing.T) {
	buyerID := id.NewBuyerID()
	txs := []transaction.Transaction{
		saleAt(types.BranchMain, 20000, 5000, buyerID, types.PaymentCredit),
		saleAt(types.Branch1, 9999, 9999, id.Nil, types.PaymentCash),
	}
	txs[1].IsFlagged = true

	m := ComputeDashboard(txs, nil, types.BranchAll)

	if !m.TotalSales.Equal(types.LKR(29999)) {
		t.Errorf("total sales: got %v, want %v", m.TotalSales, types.LKR(29999))
	}
	if m.SaleCount != 2 {
		t.Errorf("sale count: got %d, want 2", m.SaleCount)
	}
	if m.FlaggedCount != 1 {
		t.Errorf("flagged count: got %d, want 1", m.FlaggedCount)
	}
}

func TestScorecardCreditFollowsPaymentMethod(t *testing.T) {
	buyerID := id.NewBuyerID()

	// Unpaid wholesale sale settled by cash on delivery: not open book
	// credit, so the safety component stays untouched.
	txs := []transaction.Transaction{
		saleAt(types.Branch2, 100000, 0, buyerID, types.PaymentCash),
	}

	scores := ComputeBranchScorecard(txs, nil, DefaultRevenueTarget)

	for _, sc := range scores {
		if sc.Branch != types.Branch2 {
			continue
		}
		if !sc.CreditIssued.IsZero() {
			t.Errorf("credit issued: got %v, want zero", sc.CreditIssued)
		}
		if sc.CreditSafety != 25 {
			t.Errorf("credit safety: got %v, want 25", sc.CreditSafety)
		}
	}
}

func TestScorecardRoundsCompositeScore(t *testing.T) {
	// 100000 cents against the default target earns exactly half a
	// revenue point; 50.5 rounds up to 51.
	txs := []transaction.Transaction{
		saleAt(types.BranchMain, 100000, 100000, id.Nil, types.PaymentCash),
	}

	scores := ComputeBranchScorecard(txs, nil, DefaultRevenueTarget)

	for _, sc := range scores {
		if sc.Branch != types.BranchMain {
			continue
		}
		if sc.Score != 51 {
			t.Errorf("score: got %v, want rounded 51", sc.Score)
		}
	}
}
