package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5/pgtype"
)

// emailPart is one address part: no '@' and no unicode whitespace.
const emailPart = `[^@\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`

// emailRegex accepts local@domain.tld.
var emailRegex = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// Email trims, removes interior whitespace and lowercases v, then accepts
// it only if it looks like an address. Non-string input is missing.
func Email(v any) pgtype.Text {
	s, ok := v.(string)
	if !ok {
		return pgtype.Text{Valid: false}
	}
	s = strings.ToLower(strings.Join(strings.FieldsFunc(s, isEmailSpace), ""))
	if !emailRegex.MatchString(s) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// IsValidEmail reports whether v, trimmed but otherwise untouched, looks
// like an address. Unlike Email it keeps interior whitespace and case, so
// "a b@x.com" is invalid here while Email accepts it as "ab@x.com".
func IsValidEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return emailRegex.MatchString(strings.TrimFunc(s, isEmailSpace))
}

// isEmailSpace matches the whitespace emailPart excludes: unicode spaces
// plus the \x1c-\x1f information separators.
func isEmailSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
