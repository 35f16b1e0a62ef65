package normalize

import (
	"strings"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

// Conversion factors to kilograms.
const (
	KgPerGram  = 0.001
	KgPerPound = 0.453592
	KgPerOunce = 0.0283495
)

// EURPerUSD is the fixed exchange rate applied to US prices.
const EURPerUSD = 0.92

// Euro is the currency label written on every converted price.
const Euro = "€"

// weightFactors maps lowercase unit spellings to their factor to kg.
// Kilograms are absent on purpose: they pass through unrounded.
var weightFactors = map[string]float64{
	"g": KgPerGram, "gr": KgPerGram, "gram": KgPerGram, "grams": KgPerGram,
	"gramme": KgPerGram, "grammes": KgPerGram,

	"lb": KgPerPound, "lbs": KgPerPound, "pound": KgPerPound, "pounds": KgPerPound,

	"oz": KgPerOunce, "ounce": KgPerOunce, "ounces": KgPerOunce,
}

// usdSpellings are the uppercase labels of US dollars.
var usdSpellings = map[string]bool{"$": true, "USD": true, "US$": true}

// WeightKg converts weight, expressed in unit, to kilograms rounded to 3
// decimals. Kilograms and unknown units are returned unchanged.
// Non-numeric weights are missing.
func WeightKg(weight, unit any) pgtype.Float8 {
	w := core.ToFloat(weight)
	if !w.Valid {
		return w
	}
	factor, ok := weightFactors[strings.ToLower(strings.TrimSpace(unitText(unit)))]
	if !ok {
		return w
	}
	return pgtype.Float8{Float64: core.Round(w.Float64*factor, 3), Valid: true}
}

// PriceEUR converts price, expressed in currency, to euros at the fixed
// EURPerUSD rate, rounded to 2 decimals. Euro and unknown currencies are
// returned unchanged. Non-numeric prices are missing.
func PriceEUR(price, currency any) pgtype.Float8 {
	p := core.ToFloat(price)
	if !p.Valid {
		return p
	}
	if !IsUSD(currency) {
		return p
	}
	return pgtype.Float8{Float64: core.Round(p.Float64*EURPerUSD, 2), Valid: true}
}

// IsUSD reports whether a currency label denotes US dollars.
func IsUSD(currency any) bool {
	return usdSpellings[strings.ToUpper(strings.TrimSpace(unitText(currency)))]
}

func unitText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return core.FormatCell(v)
}
