package core

import "strings"

// Column keyword sets used for heuristic column detection. Matching is a
// case-insensitive substring test against the header name.
var (
	EmailKeywords     = []string{"email", "courriel", "mail"}
	CountryKeywords   = []string{"pays", "country"}
	PhoneKeywords     = []string{"tel", "phone"}
	BirthdateKeywords = []string{"naissance", "birth", "dob"}
	IdentityKeywords  = []string{"nom", "name", "prenom", "firstname", "lastname", "email", "courriel"}
)

// FindColumn returns the first column, in input order, whose lowercased
// name contains any of the keywords.
func FindColumn(columns []string, keywords ...string) (string, bool) {
	for _, col := range columns {
		if matchesAny(col, keywords) {
			return col, true
		}
	}
	return "", false
}

// FindColumns returns every column matching any keyword and none of the
// exclude keywords, in input order.
func FindColumns(columns []string, keywords, exclude []string) []string {
	var out []string
	for _, col := range columns {
		if matchesAny(col, keywords) && !matchesAny(col, exclude) {
			out = append(out, col)
		}
	}
	return out
}

func matchesAny(col string, keywords []string) bool {
	lower := strings.ToLower(col)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
