package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/khata/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"BuyerID", id.NewBuyerID, "byr_"},
		{"PaymentID", id.NewPaymentID, "pay_"},
		{"TransactionID", id.NewTransactionID, "txn_"},
		{"ItemID", id.NewItemID, "itm_"},
		{"SellerID", id.NewSellerID, "sel_"},
		{"LedgerEntryID", id.NewLedgerEntryID, "lgr_"},
		{"ChequeID", id.NewChequeID, "chq_"},
		{"ExpenseID", id.NewExpenseID, "exp_"},
		{"AuditLogID", id.NewAuditLogID, "aud_"},
		{"MessageID", id.NewMessageID, "msg_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixBuyer)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixBuyer {
		t.Errorf("expected prefix %q, got %q", id.PrefixBuyer, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"BuyerID", id.NewBuyerID, id.ParseBuyerID},
		{"PaymentID", id.NewPaymentID, id.ParsePaymentID},
		{"TransactionID", id.NewTransactionID, id.ParseTransactionID},
		{"ItemID", id.NewItemID, id.ParseItemID},
		{"SellerID", id.NewSellerID, id.ParseSellerID},
		{"LedgerEntryID", id.NewLedgerEntryID, id.ParseLedgerEntryID},
		{"ChequeID", id.NewChequeID, id.ParseChequeID},
		{"ExpenseID", id.NewExpenseID, id.ParseExpenseID},
		{"AuditLogID", id.NewAuditLogID, id.ParseAuditLogID},
		{"MessageID", id.NewMessageID, id.ParseMessageID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round trip: got %q, want %q", parsed.String(), original.String())
			}
		})
	}
}

func TestParseWrongPrefix(t *testing.T) {
	buyerID := id.NewBuyerID()

	if _, err := id.ParseSellerID(buyerID.String()); err == nil {
		t.Error("expected error parsing buyer ID as seller ID")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"not-an-id",
		"byr_",
		"byr_!!!!",
	}

	for _, input := range tests {
		if _, err := id.Parse(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero value should be nil")
	}
	if i.String() != "" {
		t.Errorf("nil ID string: got %q, want empty", i.String())
	}
}

func TestMarshalText(t *testing.T) {
	original := id.NewTransactionID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatal(err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round trip: got %q, want %q", decoded.String(), original.String())
	}
}
