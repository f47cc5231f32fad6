package types

import (
	"encoding/json"
	"testing"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"LKR", LKR(450000), 450000, "lkr", "Rs 4500.00"},
		{"INR", INR(19900), 19900, "inr", "₹199.00"},
		{"PKR", PKR(2500), 2500, "pkr", "Rs 25.00"},
		{"USD", USD(4900), 4900, "usd", "$49.00"},
		{"AED", AED(7550), 7550, "aed", "AED 75.50"},
		{"Zero LKR", Zero("LKR"), 0, "lkr", "Rs 0.00"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return LKR(100).Add(LKR(200)) }, LKR(300)},
		{"Subtract", func() Money { return LKR(500).Subtract(LKR(200)) }, LKR(300)},
		{"Subtract past zero", func() Money { return LKR(100).Subtract(LKR(300)) }, LKR(-200)},
		{"Multiply", func() Money { return LKR(100).Multiply(3) }, LKR(300)},
		{"Negate", func() Money { return LKR(100).Negate() }, LKR(-100)},
		{"Abs positive", func() Money { return LKR(100).Abs() }, LKR(100)},
		{"Abs negative", func() Money { return LKR(-100).Abs() }, LKR(100)},
		{"Complex", func() Money {
			return LKR(1000).Add(LKR(500)).Multiply(2).Subtract(LKR(1000))
		}, LKR(2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyFloorZero(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		expected Money
	}{
		{"Negative clamps", LKR(-5000), LKR(0)},
		{"Zero stays", LKR(0), LKR(0)},
		{"Positive stays", LKR(5000), LKR(5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.FloorZero(); !got.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	// This should panic
	_ = LKR(100).Add(USD(100))
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", LKR(100), LKR(100), false, false, true},
		{"Less", LKR(50), LKR(100), true, false, false},
		{"Greater", LKR(200), LKR(100), false, true, false},
		{"Zero equal", LKR(0), Zero("lkr"), false, false, true},
		{"Negative less", LKR(-100), LKR(100), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	original := LKR(450000)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	// The display field is emitted but derived.
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["display"] != "Rs 4500.00" {
		t.Errorf("display: got %v, want Rs 4500.00", raw["display"])
	}

	var decoded Money
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip: got %v, want %v", decoded, original)
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []Money
		expected Money
	}{
		{"Empty defaults to lkr zero", nil, Zero("lkr")},
		{"Single", []Money{LKR(100)}, LKR(100)},
		{"Several", []Money{LKR(100), LKR(200), LKR(300)}, LKR(600)},
		{"Mixed signs", []Money{LKR(500), LKR(-200)}, LKR(300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.values...); !got.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", got, tt.expected)
			}
		})
	}
}
