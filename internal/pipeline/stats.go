package pipeline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PlotStatistics holds the per-plot summary. StdDev is the sample (n-1)
// standard deviation and is NaN below two values; CVPercent is NaN when the
// mean is zero; Entropy is the Shannon entropy (natural log) of the
// empirical distinct-value distribution.
type PlotStatistics struct {
	PlotID    int
	Count     int
	Mean      float64
	StdDev    float64
	CVPercent float64
	Entropy   float64
}

// iqrOutlierFactor is the conventional Tukey fence multiplier.
const iqrOutlierFactor = 1.5

// Summarize computes descriptive statistics for every plot with at least one
// value. With outlierFilter set, values outside [Q1-1.5*IQR, Q3+1.5*IQR]
// (linear-interpolation quantiles) are excluded first; a plot whose series
// becomes empty is omitted from the output rather than zero-filled. Count
// reflects the filtered series. Records are ordered by ascending plot ID.
func Summarize(s *PlotSeriesSet, outlierFilter bool) []PlotStatistics {
	var results []PlotStatistics

	for col, series := range s.Series {
		if len(series) == 0 {
			continue
		}

		retained := series
		if outlierFilter {
			retained = filterIQR(series)
			if len(retained) == 0 {
				continue
			}
		}

		mean := stat.Mean(retained, nil)
		std := stat.StdDev(retained, nil)

		cv := math.NaN()
		if mean != 0 {
			cv = std / mean * 100
		}

		results = append(results, PlotStatistics{
			PlotID:    col + 1,
			Count:     len(retained),
			Mean:      mean,
			StdDev:    std,
			CVPercent: cv,
			Entropy:   valueEntropy(retained),
		})
	}

	return results
}

// filterIQR returns the values within the Tukey fences, preserving order.
func filterIQR(series []float64) []float64 {
	sorted := append([]float64(nil), series...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	lo := q1 - iqrOutlierFactor*iqr
	hi := q3 + iqrOutlierFactor*iqr

	var retained []float64
	for _, v := range series {
		if v >= lo && v <= hi {
			retained = append(retained, v)
		}
	}
	return retained
}

// valueEntropy treats each distinct value as a category weighted by its
// relative frequency, so identical areas across a plot yield zero entropy
// regardless of scale.
func valueEntropy(series []float64) float64 {
	counts := make(map[float64]int, len(series))
	for _, v := range series {
		counts[v]++
	}

	probs := make([]float64, 0, len(counts))
	n := float64(len(series))
	for _, c := range counts {
		probs = append(probs, float64(c)/n)
	}

	return stat.Entropy(probs)
}
