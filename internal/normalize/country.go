package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical country names.
const (
	France  = "France"
	Germany = "Allemagne"
	USA     = "États-Unis"
	UK      = "Royaume-Uni"
	Spain   = "Espagne"
	Italy   = "Italie"
)

// countryNames maps lowercase abbreviations, native and English names to
// the canonical name.
var countryNames = map[string]string{
	"fr": France, "fra": France, "france": France,

	"de": Germany, "deu": Germany, "germany": Germany, "allemagne": Germany,

	"us": USA, "usa": USA, "united states": USA,
	"etats-unis": USA, "états-unis": USA, "etats unis": USA,

	"uk": UK, "gb": UK, "united kingdom": UK, "royaume-uni": UK,

	"es": Spain, "esp": Spain, "espagne": Spain, "spain": Spain,

	"it": Italy, "ita": Italy, "italie": Italy, "italy": Italy,
}

// foldedCountryNames is countryNames keyed without diacritics.
var foldedCountryNames = func() map[string]string {
	m := make(map[string]string, len(countryNames))
	for k, v := range countryNames {
		m[foldAccents(k)] = v
	}
	return m
}()

// Country maps a country spelling to its canonical French name. Unknown
// names are returned title-cased word by word rather than rejected.
// Non-string or blank input is missing.
func Country(v any) pgtype.Text {
	s, ok := v.(string)
	if !ok {
		return pgtype.Text{Valid: false}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}

	key := norm.NFC.String(strings.ToLower(s))
	if name, ok := countryNames[key]; ok {
		return pgtype.Text{String: name, Valid: true}
	}
	if name, ok := foldedCountryNames[foldAccents(key)]; ok {
		return pgtype.Text{String: name, Valid: true}
	}

	return pgtype.Text{String: titleWords(s), Valid: true}
}

// titleWords title-cases every run of cased letters, so a letter right
// after an apostrophe or a digit starts a new word: "o'neil" becomes
// "O'Neil". Combining marks stay inside the run they follow.
func titleWords(s string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	b.Grow(len(s))

	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case isCased(r), start >= 0 && unicode.Is(unicode.Mn, r):
			if start < 0 {
				start = i
			}
		default:
			if start >= 0 {
				b.WriteString(caser.String(s[start:i]))
				start = -1
			}
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// foldAccents strips combining marks: "états" becomes "etats".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
