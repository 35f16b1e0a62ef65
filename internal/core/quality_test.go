package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuality(t *testing.T) {
	ds := NewDataset("clients", []string{"nom", "email", "pays"}, []Record{
		{"nom": "Dupont", "email": "a@x.fr", "pays": "France"},
		{"nom": "Dupont", "email": "a@x.fr", "pays": "France"},
		{"nom": "Martin", "email": nil, "pays": "France"},
		{"nom": "Durand", "email": nil, "pays": nil},
	})

	m := ComputeQuality(ds, "Clients (AVANT)")

	assert.Equal(t, "Clients (AVANT)", m.DatasetName)
	assert.Equal(t, 4, m.TotalRows)
	assert.Equal(t, 3, m.TotalColumns)

	require.Len(t, m.CompletenessPerColumn, 3)
	assert.Equal(t, ColumnCompleteness{Column: "nom", Percent: 100}, m.CompletenessPerColumn[0])
	assert.Equal(t, ColumnCompleteness{Column: "email", Percent: 50}, m.CompletenessPerColumn[1])
	assert.Equal(t, ColumnCompleteness{Column: "pays", Percent: 75}, m.CompletenessPerColumn[2])

	// 3 missing cells out of 12
	assert.Equal(t, 75.0, m.GlobalCompletenessRate)
	assert.Equal(t, 25.0, m.MissingRate)
	assert.Equal(t, 1, m.NumDuplicates)
	assert.Equal(t, 25.0, m.DuplicateRate)
}

func TestComputeQuality_Rounding(t *testing.T) {
	ds := NewDataset("x", []string{"a"}, []Record{{"a": "1"}, {"a": nil}, {"a": nil}})

	m := ComputeQuality(ds, "x")

	pct, ok := m.Completeness("a")
	require.True(t, ok)
	assert.Equal(t, 33.33, pct)
	assert.Equal(t, 33.33, m.GlobalCompletenessRate)
	assert.Equal(t, 66.67, m.MissingRate)
	assert.Equal(t, 1, m.NumDuplicates, "two all-missing rows are duplicates")
	assert.Equal(t, 33.33, m.DuplicateRate)

	_, ok = m.Completeness("b")
	assert.False(t, ok)
}

func TestComputeQuality_Empty(t *testing.T) {
	tests := []struct {
		name string
		ds   *Dataset
	}{
		{name: "no rows", ds: NewDataset("x", []string{"a", "b"}, nil)},
		{name: "no rows no columns", ds: NewDataset("x", nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeQuality(tt.ds, "empty")
			assert.Zero(t, m.GlobalCompletenessRate)
			assert.Zero(t, m.MissingRate)
			assert.Zero(t, m.DuplicateRate)
			for _, cc := range m.CompletenessPerColumn {
				assert.Zero(t, cc.Percent, cc.Column)
			}
		})
	}
}

func TestComputeQuality_TypedDuplicates(t *testing.T) {
	ds := NewDataset("x", []string{"a"}, []Record{{"a": 1.0}, {"a": "1"}, {"a": 1.0}})

	m := ComputeQuality(ds, "x")
	assert.Equal(t, 1, m.NumDuplicates, "a number and its string form are different values")
}

func TestComputeQuality_SeparatorInValues(t *testing.T) {
	ds := NewDataset("x", []string{"a", "b"}, []Record{
		{"a": "x\x1fsy", "b": "z"},
		{"a": "x", "b": "y\x1fsz"},
		{"a": "x:1", "b": ""},
		{"a": "x", "b": "1:"},
	})

	m := ComputeQuality(ds, "x")
	assert.Equal(t, 0, m.NumDuplicates)
}
