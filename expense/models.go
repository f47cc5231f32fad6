// Package expense defines branch expense records. Expenses have no
// downstream balance effects; they only feed reporting.
package expense

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Expense is a single operating cost logged against a branch.
type Expense struct {
	types.Entity
	ID            id.ExpenseID `json:"id"`
	Branch        types.Branch `json:"branch"`
	Description   string       `json:"description"`
	Amount        types.Money  `json:"amount"`
	Category      string       `json:"category"`
	ProofImageURL string       `json:"proof_image_url,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`
}
