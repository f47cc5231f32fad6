package state

import (
	"strconv"
	"strings"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/cheque"
	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/item"
	"github.com/xraph/khata/message"
	"github.com/xraph/khata/seller"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// Snapshot is the full serializable state of the store: the eight entity
// collections keyed by name. A nil collection means the source had no
// data for that key, which Merge treats as "keep what you have" rather
// than "empty it out".
type Snapshot struct {
	Transactions []transaction.Transaction `json:"transactions"`
	Items        []item.Item               `json:"items"`
	Expenses     []expense.Expense         `json:"expenses"`
	Buyers       []buyer.Buyer             `json:"buyers"`
	Suppliers    []seller.Seller           `json:"suppliers"`
	Cheques      []cheque.Cheque           `json:"cheques"`
	AuditLogs    []audit.Log               `json:"auditLogs"`
	WhatsAppLogs []message.Log             `json:"whatsappLogs"`
}

// Export returns a deep copy of the full store state. Mutating the
// returned snapshot never affects the store.
func (s *Store) Export() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Transactions: make([]transaction.Transaction, 0, len(s.transactions)),
		Items:        make([]item.Item, 0, len(s.items)),
		Expenses:     make([]expense.Expense, 0, len(s.expenses)),
		Buyers:       make([]buyer.Buyer, 0, len(s.buyers)),
		Suppliers:    make([]seller.Seller, 0, len(s.sellers)),
		Cheques:      make([]cheque.Cheque, 0, len(s.cheques)),
		AuditLogs:    make([]audit.Log, len(s.auditLogs)),
		WhatsAppLogs: make([]message.Log, len(s.messages)),
	}

	for _, tx := range s.transactions {
		snap.Transactions = append(snap.Transactions, cloneTransaction(tx))
	}
	for _, it := range s.items {
		snap.Items = append(snap.Items, cloneItem(it))
	}
	for _, e := range s.expenses {
		snap.Expenses = append(snap.Expenses, *e)
	}
	for _, b := range s.buyers {
		snap.Buyers = append(snap.Buyers, cloneBuyer(b))
	}
	for _, sl := range s.sellers {
		snap.Suppliers = append(snap.Suppliers, cloneSeller(sl))
	}
	for _, c := range s.cheques {
		snap.Cheques = append(snap.Cheques, *c)
	}
	copy(snap.AuditLogs, s.auditLogs)
	copy(snap.WhatsAppLogs, s.messages)

	return snap
}

// Merge loads a snapshot collection-by-collection: a nil collection in
// the snapshot keeps the store's current data for that key. Used at
// startup where the bridge may return a partial snapshot.
func (s *Store) Merge(snap *Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Transactions != nil {
		s.transactions = make(map[string]*transaction.Transaction, len(snap.Transactions))
		for i := range snap.Transactions {
			tx := cloneTransaction(&snap.Transactions[i])
			s.transactions[tx.ID.String()] = &tx
		}
	}
	if snap.Items != nil {
		s.items = make(map[string]*item.Item, len(snap.Items))
		for i := range snap.Items {
			it := cloneItem(&snap.Items[i])
			s.items[it.ID.String()] = &it
		}
	}
	if snap.Expenses != nil {
		s.expenses = make(map[string]*expense.Expense, len(snap.Expenses))
		for i := range snap.Expenses {
			e := snap.Expenses[i]
			s.expenses[e.ID.String()] = &e
		}
	}
	if snap.Buyers != nil {
		s.buyers = make(map[string]*buyer.Buyer, len(snap.Buyers))
		for i := range snap.Buyers {
			b := cloneBuyer(&snap.Buyers[i])
			s.buyers[b.ID.String()] = &b
		}
		// Resume the registration counter past the highest display code
		// in the snapshot, not the buyer count: deletions leave gaps, and
		// a count-based resume would re-issue a code a live buyer holds.
		for i := range snap.Buyers {
			if n, ok := displayCodeSeq(snap.Buyers[i].DisplayCode); ok && n > s.buyerSeq {
				s.buyerSeq = n
			}
		}
		if n := int64(len(snap.Buyers)); n > s.buyerSeq {
			s.buyerSeq = n
		}
	}
	if snap.Suppliers != nil {
		s.sellers = make(map[string]*seller.Seller, len(snap.Suppliers))
		for i := range snap.Suppliers {
			sl := cloneSeller(&snap.Suppliers[i])
			s.sellers[sl.ID.String()] = &sl
		}
	}
	if snap.Cheques != nil {
		s.cheques = make(map[string]*cheque.Cheque, len(snap.Cheques))
		for i := range snap.Cheques {
			c := snap.Cheques[i]
			s.cheques[c.ID.String()] = &c
		}
	}
	if snap.AuditLogs != nil {
		s.auditLogs = make([]audit.Log, len(snap.AuditLogs))
		copy(s.auditLogs, snap.AuditLogs)
	}
	if snap.WhatsAppLogs != nil {
		s.messages = make([]message.Log, len(snap.WhatsAppLogs))
		copy(s.messages, snap.WhatsAppLogs)
	}
}

// Replace swaps the entire store contents for the snapshot, including
// emptying collections the snapshot omits. Used by backup import, which
// is a restore, not a merge.
func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = &Snapshot{}
	}

	full := *snap
	if full.Transactions == nil {
		full.Transactions = []transaction.Transaction{}
	}
	if full.Items == nil {
		full.Items = []item.Item{}
	}
	if full.Expenses == nil {
		full.Expenses = []expense.Expense{}
	}
	if full.Buyers == nil {
		full.Buyers = []buyer.Buyer{}
	}
	if full.Suppliers == nil {
		full.Suppliers = []seller.Seller{}
	}
	if full.Cheques == nil {
		full.Cheques = []cheque.Cheque{}
	}
	if full.AuditLogs == nil {
		full.AuditLogs = []audit.Log{}
	}
	if full.WhatsAppLogs == nil {
		full.WhatsAppLogs = []message.Log{}
	}

	s.Merge(&full)
}

// displayCodeSeq extracts the registration counter from a display code
// like "OSA-1004". Issued codes start at 1001, so anything at or below
// the 1000 base is not one of ours.
func displayCodeSeq(code string) (int64, bool) {
	i := strings.LastIndexByte(code, '-')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(code[i+1:], 10, 64)
	if err != nil || n <= 1000 {
		return 0, false
	}
	return n - 1000, true
}

// ──────────────────────────────────────────────────
// Deep clone helpers
// ──────────────────────────────────────────────────

func cloneBuyer(b *buyer.Buyer) buyer.Buyer {
	out := *b
	out.Payments = make([]buyer.Payment, len(b.Payments))
	copy(out.Payments, b.Payments)
	if b.DueDate != nil {
		due := *b.DueDate
		out.DueDate = &due
	}
	return out
}

func cloneSeller(sl *seller.Seller) seller.Seller {
	out := *sl
	out.Ledger = make([]seller.LedgerEntry, len(sl.Ledger))
	copy(out.Ledger, sl.Ledger)
	return out
}

func cloneItem(it *item.Item) item.Item {
	out := *it
	out.Stock = make(map[types.Branch]int64, len(it.Stock))
	for branch, qty := range it.Stock {
		out.Stock[branch] = qty
	}
	out.Images = make([]string, len(it.Images))
	copy(out.Images, it.Images)
	return out
}

func cloneTransaction(tx *transaction.Transaction) transaction.Transaction {
	out := *tx
	out.Items = make([]transaction.SaleItem, len(tx.Items))
	copy(out.Items, tx.Items)
	return out
}
