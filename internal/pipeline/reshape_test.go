package pipeline

import (
	"math"
	"testing"
)

func TestReshape(t *testing.T) {
	tests := []struct {
		name         string
		measurements []Measurement
		rangeMax     int
		wantRows     int
		wantUnmatch  int
		// plot id -> expected value for the single retained row, when
		// wantRows == 1; 0 means every plot cell unset
		wantPlot  int
		wantValue float64
	}{
		{
			name: "matched row populates exactly one column",
			measurements: []Measurement{
				{ImageName: "plot_3-leftcam.jpg", Area: 7.0},
			},
			rangeMax:  10,
			wantRows:  1,
			wantPlot:  3,
			wantValue: 7.0,
		},
		{
			name: "out of range match retains row with no columns",
			measurements: []Measurement{
				{ImageName: "21-plot.jpg", Area: 5.0},
			},
			rangeMax:    5,
			wantRows:    1,
			wantUnmatch: 1,
		},
		{
			name: "zero area rows dropped before matching",
			measurements: []Measurement{
				{ImageName: "plot_3-leftcam.jpg", Area: 0},
			},
			rangeMax: 10,
			wantRows: 0,
		},
		{
			name: "missing image name degenerates to unmatched",
			measurements: []Measurement{
				{ImageName: "", Area: 2.5},
			},
			rangeMax:    10,
			wantRows:    1,
			wantUnmatch: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, unmatched, err := Reshape(tt.measurements, tt.rangeMax, nil)
			if err != nil {
				t.Fatalf("Reshape returned error: %v", err)
			}
			if len(w.Cells) != tt.wantRows {
				t.Fatalf("expected %d retained rows, got %d", tt.wantRows, len(w.Cells))
			}
			if unmatched != tt.wantUnmatch {
				t.Errorf("expected %d unmatched rows, got %d", tt.wantUnmatch, unmatched)
			}

			if tt.wantRows != 1 {
				return
			}
			for col, v := range w.Cells[0] {
				id := col + 1
				switch {
				case id == tt.wantPlot:
					if v != tt.wantValue {
						t.Errorf("plot %d: expected %v, got %v", id, tt.wantValue, v)
					}
				default:
					if !math.IsNaN(v) {
						t.Errorf("plot %d: expected unset cell, got %v", id, v)
					}
				}
			}
		})
	}
}

func TestReshapeRejectsBadRange(t *testing.T) {
	if _, _, err := Reshape(nil, 0, nil); err == nil {
		t.Error("expected error for non-positive range max")
	}
}

func TestReshapeProgressCallback(t *testing.T) {
	measurements := make([]Measurement, 2*reshapeProgressEvery)
	for i := range measurements {
		measurements[i] = Measurement{ImageName: "plot_1-a.jpg", Area: 1.0}
	}

	calls := 0
	_, _, err := Reshape(measurements, 5, func(string) { calls++ })
	if err != nil {
		t.Fatalf("Reshape returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 progress callbacks, got %d", calls)
	}
}
