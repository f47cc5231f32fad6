package message

import (
	"net/url"
	"strings"
)

// Link builds a wa.me deep link for the given phone number and message
// body. The phone number is normalized to digits only; a leading "+" or
// "00" international prefix is dropped, matching what wa.me expects.
func Link(phone, body string) string {
	digits := normalizePhone(phone)
	if digits == "" {
		return ""
	}

	u := "https://wa.me/" + digits
	if body != "" {
		u += "?text=" + url.QueryEscape(body)
	}

	return u
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")

	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return strings.TrimPrefix(b.String(), "00")
}
