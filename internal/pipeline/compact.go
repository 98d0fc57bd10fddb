package pipeline

import "math"

// PlotSeriesSet is the stage-2 output: for each plot, the dense series of
// area values assigned to it, in their original row order. Series lengths
// are independent; the set is ragged.
type PlotSeriesSet struct {
	RangeMax int
	Series   [][]float64
}

// Compact drops the source-identifier and area columns from the wide table
// and squeezes each plot column's set cells to the front, preserving their
// relative order.
func Compact(w *WideTable) *PlotSeriesSet {
	s := &PlotSeriesSet{
		RangeMax: w.RangeMax,
		Series:   make([][]float64, w.RangeMax),
	}

	for col := 0; col < w.RangeMax; col++ {
		for _, row := range w.Cells {
			if !math.IsNaN(row[col]) {
				s.Series[col] = append(s.Series[col], row[col])
			}
		}
	}

	return s
}
