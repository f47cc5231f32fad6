// Package khata provides a credit and ledger consistency engine for
// multi-branch retail and wholesale businesses.
//
// Khata is designed as a library, not a service. It keeps the full
// business state in memory, applies every mutation atomically under a
// single engine lock, and mirrors the state to a pluggable persistence
// bridge on a debounced, best-effort schedule. It provides:
//
//   - Buyer credit tracking with limits, payments, and overpayment flooring
//   - Signed supplier payable ledgers where overpayment is a valid state
//   - Sales with per-branch stock draw-down and derived payment status
//   - Cheque tracking with a terminal PENDING -> CLEARED/BOUNCED machine
//   - Receivable aging, branch exposure, scorecard, and dashboard reports
//   - An append-only audit trail written in the same critical section as
//     the mutation it records
//   - Snapshot export/import and versioned backup documents
//
// # Quick Start
//
// Create an engine with your preferred bridge:
//
//	import (
//	    "github.com/xraph/khata"
//	    "github.com/xraph/khata/bridge/file"
//	)
//
//	eng := khata.New(file.New("khata.json"))
//
//	// Start loads the last snapshot and begins the sync worker.
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// Record a wholesale sale on credit:
//
//	tx := &transaction.Transaction{
//	    Branch:      types.BranchMain,
//	    BuyerID:     buyerID,
//	    Type:        transaction.TypeWholesale,
//	    TotalAmount: khata.LKR(20000 * 100),
//	    PaidAmount:  khata.LKR(5000 * 100),
//	}
//	err := eng.RecordSale(ctx, tx)
//
// The unpaid remainder lands on the buyer's running credit. Payments
// settle it back down, floored at zero.
//
// # Consistency
//
// The in-memory state is authoritative. A bridge failure never rolls
// back a mutation; the engine flips to OFFLINE_PENDING and retries on
// the next write. All monetary values use integer minor units via the
// Money type, so no floating point touches a balance.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	byr_01h2xcejqtf2nbrexx3vqjhp41  // Buyer ID
//	txn_01h455vb4pex5vsknk084sn02q  // Transaction ID
//	chq_01h455vb4pex5vsknk084sn02q  // Cheque ID
//
// TypeIDs are K-sortable, giving natural time-ordering in lists and
// database indexes.
package khata
