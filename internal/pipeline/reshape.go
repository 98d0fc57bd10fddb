package pipeline

import (
	"fmt"
	"math"
)

// WideTable is the stage-1 output: one row per retained measurement, one
// column per plot ID from 1 to RangeMax. At most one plot cell per row is
// set; unset cells hold NaN.
type WideTable struct {
	RangeMax   int
	ImageNames []string
	Areas      []float64
	Cells      [][]float64
}

// reshapeProgressEvery is how many input rows are mapped between progress
// callbacks during the reshape stage.
const reshapeProgressEvery = 500

// Reshape maps each measurement to its plot column. Rows with a zero area
// are dropped as segmentation noise before matching. Rows that match no plot
// are retained with every plot cell unset; the returned count reports them
// so the caller can apply its unmatched-row policy.
func Reshape(measurements []Measurement, rangeMax int, progress func(string)) (*WideTable, int, error) {
	if rangeMax < 1 {
		return nil, 0, fmt.Errorf("range max must be positive, got %d", rangeMax)
	}

	w := &WideTable{RangeMax: rangeMax}
	unmatched := 0
	processed := 0

	for _, m := range measurements {
		if m.Area == 0 {
			continue
		}

		cells := make([]float64, rangeMax)
		for i := range cells {
			cells[i] = math.NaN()
		}

		if id := ExtractPlotID(m.ImageName, rangeMax); id > 0 {
			cells[id-1] = m.Area
		} else {
			unmatched++
		}

		w.ImageNames = append(w.ImageNames, m.ImageName)
		w.Areas = append(w.Areas, m.Area)
		w.Cells = append(w.Cells, cells)

		processed++
		if progress != nil && processed%reshapeProgressEvery == 0 {
			progress(fmt.Sprintf("mapped %d of %d measurements", processed, len(measurements)))
		}
	}

	return w, unmatched, nil
}
