package csv

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "valid multibyte",
			input:    []byte("pays,États-Unis"),
			expected: "pays,États-Unis",
		},
		{
			name:     "invalid byte replaced",
			input:    []byte{'a', 0xFF, 'b'},
			expected: "a�b",
		},
		{
			name:     "utf-16 with BOM",
			input:    []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			expected: "hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(Decode(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestRead(t *testing.T) {
	input := "\xEF\xBB\xBFnom,email,tel\n" +
		"Dupont,A@X.FR,06 12 34 56 78\n" +
		"Martin,,N/A\n" +
		"\n" +
		"Durand,null\n"

	ds, err := Read(strings.NewReader(input), "clients")
	require.NoError(t, err)

	assert.Equal(t, "clients", ds.Name)
	assert.Equal(t, []string{"nom", "email", "tel"}, ds.Columns)
	require.Equal(t, 3, ds.Len(), "blank lines are skipped")

	assert.Equal(t, core.Record{"nom": "Dupont", "email": "A@X.FR", "tel": "06 12 34 56 78"}, ds.Rows[0])
	assert.Nil(t, ds.Rows[1]["email"], "empty field is missing")
	assert.Nil(t, ds.Rows[1]["tel"], "N/A is missing")
	assert.Nil(t, ds.Rows[2]["email"], "null is missing")
	assert.Contains(t, ds.Rows[2], "tel", "short rows are padded")
	assert.Nil(t, ds.Rows[2]["tel"])
}

func TestRead_KeepsWhitespaceAndText(t *testing.T) {
	ds, err := Read(strings.NewReader("email,code\n  a@b.fr  ,=\"007\"\n"), "x")
	require.NoError(t, err)

	assert.Equal(t, "  a@b.fr  ", ds.Rows[0]["email"])
	assert.Equal(t, "007", ds.Rows[0]["code"], "formula wrapper removed, leading zeros kept")
}

func TestRead_Headers(t *testing.T) {
	ds, err := Read(strings.NewReader(" nom ,email,,email,email\n1,2,3,4,5\n"), "x")
	require.NoError(t, err)

	assert.Equal(t, []string{"nom", "email", "Unnamed: 2", "email.1", "email.2"}, ds.Columns)
	assert.Equal(t, "4", ds.Rows[0]["email.1"])
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader(""), "x")
	assert.ErrorIs(t, err, core.ErrEmptyFile)

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid csv")
	assert.Equal(t, "FILE002", core.MapError(err).Code)
}

func TestRead_HeaderOnly(t *testing.T) {
	ds, err := Read(strings.NewReader("sku,name\n"), "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"sku", "name"}, ds.Columns)
	assert.Equal(t, 0, ds.Len())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog_fr.csv")
	require.NoError(t, os.WriteFile(path, []byte("sku,price\nA1,9.99\n"), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "catalog_fr", ds.Name)
	assert.Equal(t, "9.99", ds.Rows[0]["price"])

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, core.ErrSourceNotFound)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, core.ErrEmptyFile)
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "plain", want: "plain"},
		{input: "  spaced  ", want: "  spaced  "},
		{input: `="0612"`, want: "0612"},
		{input: ` ="x" `, want: "x"},
		{input: `=`, want: "="},
		{input: `="`, want: `="`},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
