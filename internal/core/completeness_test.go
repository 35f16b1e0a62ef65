package core

import (
	"math"
	"testing"
)

func TestCompletenessScore(t *testing.T) {
	columns := []string{"a", "b", "c"}
	tests := []struct {
		name string
		row  Record
		want int
	}{
		{name: "all present", row: Record{"a": "x", "b": 1.0, "c": false}, want: 3},
		{name: "empty string counts", row: Record{"a": "", "b": nil, "c": nil}, want: 1},
		{name: "nan is missing", row: Record{"a": math.NaN(), "b": "y"}, want: 1},
		{name: "absent cells", row: Record{}, want: 0},
		{name: "extra cells ignored", row: Record{"a": 1.0, "z": "ignored"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletenessScore(tt.row, columns)
			if got != tt.want {
				t.Errorf("CompletenessScore() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > len(columns) {
				t.Errorf("CompletenessScore() = %d, out of [0, %d]", got, len(columns))
			}
		})
	}
}

func TestCompletenessScores_DefaultsToAllColumns(t *testing.T) {
	ds := NewDataset("x", []string{"a", "b"}, []Record{
		{"a": 1.0, "b": 2.0},
		{"a": 1.0},
		{},
	})

	got := CompletenessScores(ds, nil)
	want := []int{2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CompletenessScores()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got := CompletenessScores(ds, []string{"b"}); got[0] != 1 || got[1] != 0 {
		t.Errorf("CompletenessScores(b) = %v, want [1 0 0]", got)
	}
}
