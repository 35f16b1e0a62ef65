package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// Write exports a dataset with a header row. Cells are rendered with
// core.FormatCell, so missing values are empty fields.
func Write(path string, d *core.Dataset) error {
	rows := make([][]string, len(d.Rows))
	for i, r := range d.Rows {
		row := make([]string, len(d.Columns))
		for j, c := range d.Columns {
			row[j] = core.FormatCell(r[c])
		}
		rows[i] = row
	}
	return WriteTable(path, d.Columns, rows)
}

// WriteTable writes header and rows to path, creating parent directories.
// The file is replaced atomically.
func WriteTable(path string, header []string, rows [][]string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
