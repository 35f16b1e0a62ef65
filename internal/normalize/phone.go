package normalize

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

// FrenchCountryCode is the dialing code every normalised phone number carries.
const FrenchCountryCode = "33"

// phoneDigits is the digit count of a normalised number, country code included.
const phoneDigits = 11

// Phone normalises a French phone number to "+33" followed by 9 digits.
//
// Separators and any other non-digit characters are ignored. Accepted
// shapes are a 10-digit national number with a leading 0, a 9-digit
// number without it, and an 11 or 12 digit number already carrying 33
// (extra trailing digits are cut). A leading 0033 has its 00
// international prefix dropped first. Anything else is missing.
func Phone(v any) pgtype.Text {
	if core.IsMissing(v) {
		return pgtype.Text{Valid: false}
	}
	s := strings.TrimSpace(phoneText(v))
	if s == "" {
		return pgtype.Text{Valid: false}
	}

	digits := onlyDigits(s)
	if strings.HasPrefix(digits, "00"+FrenchCountryCode) {
		digits = digits[2:]
	}

	switch n := len(digits); {
	case n == 0:
		return pgtype.Text{Valid: false}
	case n == 10 && digits[0] == '0':
		digits = FrenchCountryCode + digits[1:]
	case n == 9:
		digits = FrenchCountryCode + digits
	case (n == 11 || n == 12) && strings.HasPrefix(digits, FrenchCountryCode):
		digits = digits[:phoneDigits]
	case n >= 9 && n <= 12:
		if !strings.HasPrefix(digits, FrenchCountryCode) {
			return pgtype.Text{Valid: false}
		}
	default:
		return pgtype.Text{Valid: false}
	}

	if len(digits) != phoneDigits {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: "+" + digits, Valid: true}
}

// phoneText stringifies a cell. Numbers read from a numeric column lose
// their leading zero but must not gain a ".0".
func phoneText(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return core.FormatCell(v)
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
