package core

// convert.go provides cell-level conversions shared by the normalisers, the
// reducers and the CSV exporter.
//
// Cells hold plain Go values (string, float64, bool, time.Time) or nil for a
// missing value. Normalisers speak pgtype: a result with Valid=false is the
// missing marker, and CellOf lowers any pgtype value back into a cell.

import (
	"database/sql/driver"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a plain decimal number after trimming.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// DateLayout is the export format for date cells.
const DateLayout = "2006-01-02"

// IsMissing reports whether a cell holds no value: nil, NaN, or an
// invalid pgtype value.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case driver.Valuer:
		return CellOf(x) == nil
	default:
		return false
	}
}

// CellOf converts a pgtype value into a cell. Invalid values become nil.
func CellOf(v driver.Valuer) any {
	val, err := v.Value()
	if err != nil {
		return nil
	}
	return val
}

// ToText stringifies a cell the way a spreadsheet would show it.
// Returns invalid for missing cells.
func ToText(v any) pgtype.Text {
	if IsMissing(v) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: FormatCell(v), Valid: true}
}

// ToFloat converts a cell to pgtype.Float8.
// Numbers pass through; strings must be plain decimals after trimming.
// Returns invalid for missing or non-numeric input.
func ToFloat(v any) pgtype.Float8 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return pgtype.Float8{Valid: false}
		}
		return pgtype.Float8{Float64: x, Valid: true}
	case float32:
		return ToFloat(float64(x))
	case int:
		return pgtype.Float8{Float64: float64(x), Valid: true}
	case int64:
		return pgtype.Float8{Float64: float64(x), Valid: true}
	case string:
		s := strings.TrimSpace(x)
		if !numericRegex.MatchString(s) {
			return pgtype.Float8{Valid: false}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return pgtype.Float8{Valid: false}
		}
		return pgtype.Float8{Float64: f, Valid: true}
	default:
		return pgtype.Float8{Valid: false}
	}
}

// Round rounds x to the given number of decimal places using the exact
// binary value of x and ties-to-even, so 0.125 rounds to 0.12 and 2.675
// rounds to 2.67.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// FormatFloat renders a float in its shortest form, keeping a trailing ".0"
// on integral values so that numeric columns stay visibly numeric.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// FormatCell renders a cell for CSV export. Missing cells render empty.
func FormatCell(v any) string {
	if IsMissing(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return FormatFloat(x)
	case float32:
		return FormatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(DateLayout)
		}
		return x.Format("2006-01-02 15:04:05")
	case driver.Valuer:
		return FormatCell(CellOf(x))
	default:
		return fmt.Sprint(x)
	}
}

// cellKey returns a grouping key for a cell: equal values give equal keys,
// missing values share one key, and values of different kinds never collide.
func cellKey(v any) string {
	if IsMissing(v) {
		return "\x00"
	}
	switch x := v.(type) {
	case string:
		return "s" + x
	case bool:
		return "b" + FormatCell(x)
	case time.Time:
		return "t" + x.UTC().Format(time.RFC3339Nano)
	case float64, float32, int, int64:
		return "n" + FormatCell(ToFloat(x).Float64)
	default:
		return "s" + FormatCell(x)
	}
}

// rowKey joins the cell keys of the given columns. Each key is prefixed
// with its length so cell contents can never shift a boundary.
func rowKey(r Record, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		k := cellKey(r[c])
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}
	return b.String()
}
