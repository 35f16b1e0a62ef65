package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MissingMarkers are the cell values read as missing.
var MissingMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Load reads the CSV file at path into a dataset named after the file.
//
// A file that does not exist yields an error wrapping core.ErrSourceNotFound;
// a file without a header row yields core.ErrEmptyFile.
func Load(path string) (*core.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, core.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := Read(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses CSV data with a header row from r.
//
// Rows shorter than the header are padded with missing cells; longer rows
// are an error. Blank lines are skipped.
func Read(r io.Reader, name string) (*core.Dataset, error) {
	cr := csv.NewReader(Decode(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, core.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}
	columns := uniqueHeaders(header)

	var rows []core.Record
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if len(record) > len(columns) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("invalid csv: line %d: expected %d fields, saw %d", line, len(columns), len(record))
		}

		row := make(core.Record, len(columns))
		for i, col := range columns {
			if i >= len(record) {
				row[col] = nil
				continue
			}
			row[col] = cellValue(record[i])
		}
		rows = append(rows, row)
	}

	return core.NewDataset(name, columns, rows), nil
}

// Decode wraps r so it yields valid UTF-8: a byte order mark is consumed
// (switching to UTF-16 when it says so) and invalid bytes become U+FFFD.
func Decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// cellValue converts a raw field to a cell.
func cellValue(raw string) any {
	s := CleanCell(raw)
	if MissingMarkers[s] {
		return nil
	}
	return s
}

// uniqueHeaders cleans header names, names blank headers after their
// position, and suffixes repeated names with ".1", ".2", ...
func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	repeats := make(map[string]int)
	for i, h := range header {
		name := CleanHeader(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if used[name] {
			base := name
			for used[name] {
				repeats[base]++
				name = base + "." + strconv.Itoa(repeats[base])
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}
