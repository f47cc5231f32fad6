// Package state holds the authoritative in-memory entity collections.
// It is a passive container: all business rules live in the engine, which
// is the only writer. Reads return defensive copies sorted newest-first
// so callers can never alias internal state, and writes land through
// Put/Mutate methods that hold the write lock, so a concurrent reader
// never observes a half-written record.
package state

import (
	"sort"
	"sync"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/cheque"
	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/item"
	"github.com/xraph/khata/message"
	"github.com/xraph/khata/seller"
	"github.com/xraph/khata/transaction"
)

type Store struct {
	mu sync.RWMutex

	buyers       map[string]*buyer.Buyer
	sellers      map[string]*seller.Seller
	items        map[string]*item.Item
	transactions map[string]*transaction.Transaction
	cheques      map[string]*cheque.Cheque
	expenses     map[string]*expense.Expense

	// Append-only collections
	auditLogs []audit.Log
	messages  []message.Log

	// Monotonic registration counter feeding buyer display codes.
	buyerSeq int64
}

func New() *Store {
	return &Store{
		buyers:       make(map[string]*buyer.Buyer),
		sellers:      make(map[string]*seller.Seller),
		items:        make(map[string]*item.Item),
		transactions: make(map[string]*transaction.Transaction),
		cheques:      make(map[string]*cheque.Cheque),
		expenses:     make(map[string]*expense.Expense),
		auditLogs:    make([]audit.Log, 0),
		messages:     make([]message.Log, 0),
	}
}

// ──────────────────────────────────────────────────
// Buyers
// ──────────────────────────────────────────────────

// PutBuyer inserts a deep copy of the buyer. The caller keeps its own
// struct; the store never shares memory with code outside its lock.
func (s *Store) PutBuyer(b *buyer.Buyer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneBuyer(b)
	s.buyers[cp.ID.String()] = &cp
}

// MutateBuyer applies fn to the stored buyer under the write lock.
// Returns false when the buyer does not exist; fn is then never called.
func (s *Store) MutateBuyer(buyerID id.BuyerID, fn func(*buyer.Buyer)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buyers[buyerID.String()]
	if !ok {
		return false
	}
	fn(b)
	return true
}

func (s *Store) DeleteBuyer(buyerID id.BuyerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buyers[buyerID.String()]; !ok {
		return false
	}
	delete(s.buyers, buyerID.String())
	return true
}

// Buyers returns copies of all buyers, newest registration first.
func (s *Store) Buyers() []buyer.Buyer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]buyer.Buyer, 0, len(s.buyers))
	for _, b := range s.buyers {
		result = append(result, cloneBuyer(b))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// NextBuyerSeq advances and returns the buyer registration counter.
func (s *Store) NextBuyerSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buyerSeq++
	return s.buyerSeq
}

// ──────────────────────────────────────────────────
// Sellers
// ──────────────────────────────────────────────────

// PutSeller inserts a deep copy of the supplier.
func (s *Store) PutSeller(sl *seller.Seller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneSeller(sl)
	s.sellers[cp.ID.String()] = &cp
}

// MutateSeller applies fn to the stored supplier under the write lock.
func (s *Store) MutateSeller(sellerID id.SellerID, fn func(*seller.Seller)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.sellers[sellerID.String()]
	if !ok {
		return false
	}
	fn(sl)
	return true
}

func (s *Store) DeleteSeller(sellerID id.SellerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sellers[sellerID.String()]; !ok {
		return false
	}
	delete(s.sellers, sellerID.String())
	return true
}

// Sellers returns copies of all suppliers, newest registration first.
func (s *Store) Sellers() []seller.Seller {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]seller.Seller, 0, len(s.sellers))
	for _, sl := range s.sellers {
		result = append(result, cloneSeller(sl))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// ──────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────

// PutItem inserts a deep copy of the item.
func (s *Store) PutItem(it *item.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneItem(it)
	s.items[cp.ID.String()] = &cp
}

// MutateItem applies fn to the stored item under the write lock.
func (s *Store) MutateItem(itemID id.ItemID, fn func(*item.Item)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID.String()]
	if !ok {
		return false
	}
	fn(it)
	return true
}

func (s *Store) DeleteItem(itemID id.ItemID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID.String()]; !ok {
		return false
	}
	delete(s.items, itemID.String())
	return true
}

// Items returns copies of all items sorted by name.
func (s *Store) Items() []item.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]item.Item, 0, len(s.items))
	for _, it := range s.items {
		result = append(result, cloneItem(it))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// ──────────────────────────────────────────────────
// Transactions
// ──────────────────────────────────────────────────

// PutTransaction inserts a deep copy of the transaction. Transactions
// are immutable once stored; there is no mutate counterpart.
func (s *Store) PutTransaction(tx *transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneTransaction(tx)
	s.transactions[cp.ID.String()] = &cp
}

func (s *Store) DeleteTransaction(txID id.TransactionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[txID.String()]; !ok {
		return false
	}
	delete(s.transactions, txID.String())
	return true
}

// Transactions returns copies of all transactions sorted by timestamp
// descending. Insertion order is never relied on: backfilled historical
// entries sort by their stated timestamp.
func (s *Store) Transactions() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]transaction.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		result = append(result, cloneTransaction(tx))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

// TransactionsByBuyer returns copies of the buyer's transactions,
// timestamp descending.
func (s *Store) TransactionsByBuyer(buyerID id.BuyerID) []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]transaction.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.BuyerID == buyerID {
			result = append(result, cloneTransaction(tx))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

// HasBuyerReferences reports whether any transaction still points at the
// buyer. Used by the Restrict deletion policy.
func (s *Store) HasBuyerReferences(buyerID id.BuyerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.transactions {
		if tx.BuyerID == buyerID {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────
// Cheques
// ──────────────────────────────────────────────────

// PutCheque inserts a copy of the cheque.
func (s *Store) PutCheque(c *cheque.Cheque) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.cheques[cp.ID.String()] = &cp
}

// MutateCheque applies fn to the stored cheque under the write lock.
func (s *Store) MutateCheque(chequeID id.ChequeID, fn func(*cheque.Cheque)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cheques[chequeID.String()]
	if !ok {
		return false
	}
	fn(c)
	return true
}

func (s *Store) DeleteCheque(chequeID id.ChequeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cheques[chequeID.String()]; !ok {
		return false
	}
	delete(s.cheques, chequeID.String())
	return true
}

// Cheques returns copies of all cheques sorted by due date ascending,
// soonest due first.
func (s *Store) Cheques() []cheque.Cheque {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]cheque.Cheque, 0, len(s.cheques))
	for _, c := range s.cheques {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result
}

// ──────────────────────────────────────────────────
// Expenses
// ──────────────────────────────────────────────────

// PutExpense inserts a copy of the expense. Expenses are never mutated
// after recording.
func (s *Store) PutExpense(e *expense.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *e
	s.expenses[cp.ID.String()] = &cp
}

func (s *Store) DeleteExpense(expenseID id.ExpenseID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[expenseID.String()]; !ok {
		return false
	}
	delete(s.expenses, expenseID.String())
	return true
}

// Expenses returns copies of all expenses, timestamp descending.
func (s *Store) Expenses() []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]expense.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

// ──────────────────────────────────────────────────
// Append-only collections
// ──────────────────────────────────────────────────

// AppendAuditLog adds an entry to the immutable audit trail.
// There is no corresponding remove operation.
func (s *Store) AppendAuditLog(entry audit.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auditLogs = append(s.auditLogs, entry)
}

// AuditLogs returns copies of all audit entries, newest first. Entries
// are appended in mutation order, so the reverse of the append order is
// exact even when timestamps collide.
func (s *Store) AuditLogs() []audit.Log {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]audit.Log, len(s.auditLogs))
	for i, entry := range s.auditLogs {
		result[len(s.auditLogs)-1-i] = entry
	}
	return result
}

// ──────────────────────────────────────────────────
// Copy-returning lookups
// ──────────────────────────────────────────────────

// BuyerView returns a deep copy of the buyer, safe to hand to callers.
func (s *Store) BuyerView(buyerID id.BuyerID) (buyer.Buyer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buyers[buyerID.String()]
	if !ok {
		return buyer.Buyer{}, false
	}
	return cloneBuyer(b), true
}

// SellerView returns a deep copy of the supplier.
func (s *Store) SellerView(sellerID id.SellerID) (seller.Seller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.sellers[sellerID.String()]
	if !ok {
		return seller.Seller{}, false
	}
	return cloneSeller(sl), true
}

// ItemView returns a deep copy of the item.
func (s *Store) ItemView(itemID id.ItemID) (item.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[itemID.String()]
	if !ok {
		return item.Item{}, false
	}
	return cloneItem(it), true
}

// TransactionView returns a deep copy of the transaction.
func (s *Store) TransactionView(txID id.TransactionID) (transaction.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[txID.String()]
	if !ok {
		return transaction.Transaction{}, false
	}
	return cloneTransaction(tx), true
}

// ChequeView returns a copy of the cheque.
func (s *Store) ChequeView(chequeID id.ChequeID) (cheque.Cheque, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cheques[chequeID.String()]
	if !ok {
		return cheque.Cheque{}, false
	}
	return *c, true
}

// ExpenseView returns a copy of the expense.
func (s *Store) ExpenseView(expenseID id.ExpenseID) (expense.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[expenseID.String()]
	if !ok {
		return expense.Expense{}, false
	}
	return *e, true
}

// AppendMessage adds an entry to the outbound message log.
func (s *Store) AppendMessage(entry message.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, entry)
}

// Messages returns copies of all message log entries, newest first.
func (s *Store) Messages() []message.Log {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Log, len(s.messages))
	for i, entry := range s.messages {
		result[len(s.messages)-1-i] = entry
	}
	return result
}
