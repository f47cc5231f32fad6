package types

// Branch identifies one of the physical retail/wholesale locations
// sharing the global ledger. BranchAll is a query token for cross-branch
// views, never a location a mutation can target.
type Branch string

const (
	BranchAll  Branch = "All Branches"
	BranchMain Branch = "Osaka Main Shop"
	Branch1    Branch = "Osaka 1"
	Branch2    Branch = "Osaka 2"
	Branch3    Branch = "Osaka 3"
	Branch4    Branch = "Osaka 4"
	Branch5    Branch = "Osaka 5"
)

// Branches returns every physical branch, excluding the BranchAll token.
func Branches() []Branch {
	return []Branch{BranchMain, Branch1, Branch2, Branch3, Branch4, Branch5}
}

// IsValid returns true if the branch is a known physical location.
func (b Branch) IsValid() bool {
	switch b {
	case BranchMain, Branch1, Branch2, Branch3, Branch4, Branch5:
		return true
	}
	return false
}

// String returns the branch display name.
func (b Branch) String() string { return string(b) }

// PaymentMethod is how a transaction or payment was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentCredit PaymentMethod = "CREDIT"
	PaymentCheque PaymentMethod = "CHEQUE"
)

// IsValid returns true if the payment method is recognized.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentCredit, PaymentCheque:
		return true
	}
	return false
}

// UserRole is the access tier of the acting user, recorded on audit entries.
type UserRole string

const (
	RoleSuperAdmin  UserRole = "SUPER_ADMIN"
	RoleBranchAdmin UserRole = "BRANCH_ADMIN"
	RoleStaff       UserRole = "STAFF"
)

// SyncStatus reports the state of the best-effort persistence mirror.
// Local state stays authoritative regardless of the value.
type SyncStatus string

const (
	SyncSynced         SyncStatus = "SYNCED"
	SyncSyncing        SyncStatus = "SYNCING"
	SyncOfflinePending SyncStatus = "OFFLINE_PENDING"
)
