package message

import "testing"

func TestLink(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		body  string
		want  string
	}{
		{"Plain digits", "94771234567", "", "https://wa.me/94771234567"},
		{"Plus prefix dropped", "+94 77 123 4567", "", "https://wa.me/94771234567"},
		{"Double zero prefix dropped", "0094771234567", "", "https://wa.me/94771234567"},
		{"Dashes and spaces stripped", "077-123 4567", "", "https://wa.me/0771234567"},
		{"Body query-escaped", "94771234567", "Your balance is Rs 5,000", "https://wa.me/94771234567?text=Your+balance+is+Rs+5%2C000"},
		{"Empty phone", "", "hello", ""},
		{"No digits", "+-()", "hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Link(tt.phone, tt.body); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindIsValid(t *testing.T) {
	valid := []Kind{KindCreditReminder, KindChequeReminder, KindPaymentConfirmation}
	for _, k := range valid {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if Kind("SPAM").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
