package khata

import "github.com/xraph/khata/types"

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Entity is re-exported from types package.
type Entity = types.Entity

// Branch is re-exported from types package.
type Branch = types.Branch

// Re-export Money constructors
var (
	LKR  = types.LKR
	INR  = types.INR
	PKR  = types.PKR
	USD  = types.USD
	AED  = types.AED
	Zero = types.Zero
	Sum  = types.Sum
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
