package pipeline

import "math"

// Normalize min-max rescales StdDev, CVPercent and Entropy independently to
// [0,1] across all plot records. NaN cells do not participate in the min/max
// and remain NaN. A zero-range column (including the single-record case) is
// set to a constant 0 for every record; a column with no finite values at
// all is left untouched. No records are dropped.
func Normalize(stats []PlotStatistics) []PlotStatistics {
	out := append([]PlotStatistics(nil), stats...)

	normalizeColumn(out, func(s *PlotStatistics) *float64 { return &s.StdDev })
	normalizeColumn(out, func(s *PlotStatistics) *float64 { return &s.CVPercent })
	normalizeColumn(out, func(s *PlotStatistics) *float64 { return &s.Entropy })

	return out
}

func normalizeColumn(stats []PlotStatistics, field func(*PlotStatistics) *float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	finite := false

	for i := range stats {
		v := *field(&stats[i])
		if math.IsNaN(v) {
			continue
		}
		finite = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if !finite {
		return
	}

	if min == max {
		for i := range stats {
			*field(&stats[i]) = 0
		}
		return
	}

	for i := range stats {
		cell := field(&stats[i])
		*cell = (*cell - min) / (max - min)
	}
}
