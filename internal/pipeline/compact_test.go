package pipeline

import (
	"math"
	"reflect"
	"testing"
)

func TestCompact(t *testing.T) {
	nan := math.NaN()

	w := &WideTable{
		RangeMax:   3,
		ImageNames: []string{"a", "b", "c", "d", "e"},
		Areas:      []float64{5, 1, 3, 1, 8},
		Cells: [][]float64{
			{5, nan, nan},
			{nan, 1, nan},
			{3, nan, nan},
			{nan, 1, nan},
			{8, nan, nan},
		},
	}

	s := Compact(w)

	if s.RangeMax != 3 {
		t.Fatalf("expected range max 3, got %d", s.RangeMax)
	}
	if !reflect.DeepEqual(s.Series[0], []float64{5, 3, 8}) {
		t.Errorf("plot 1: expected order-preserving compaction [5 3 8], got %v", s.Series[0])
	}
	if !reflect.DeepEqual(s.Series[1], []float64{1, 1}) {
		t.Errorf("plot 2: expected [1 1], got %v", s.Series[1])
	}
	if len(s.Series[2]) != 0 {
		t.Errorf("plot 3: expected empty series, got %v", s.Series[2])
	}
}

func TestCompactEmptyTable(t *testing.T) {
	s := Compact(&WideTable{RangeMax: 4})
	if len(s.Series) != 4 {
		t.Fatalf("expected 4 series, got %d", len(s.Series))
	}
	for i, series := range s.Series {
		if len(series) != 0 {
			t.Errorf("plot %d: expected empty series, got %v", i+1, series)
		}
	}
}
