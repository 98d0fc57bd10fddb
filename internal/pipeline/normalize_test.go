package pipeline

import (
	"math"
	"testing"
)

func TestNormalizeTwoRows(t *testing.T) {
	stats := []PlotStatistics{
		{PlotID: 1, Count: 3, Mean: 10, StdDev: 2, CVPercent: 20, Entropy: 0.5},
		{PlotID: 2, Count: 4, Mean: 12, StdDev: 8, CVPercent: 66, Entropy: 1.5},
	}

	out := Normalize(stats)

	if math.Abs(out[0].StdDev-0.0) > epsilon || math.Abs(out[1].StdDev-1.0) > epsilon {
		t.Errorf("expected std dev [0 1], got [%v %v]", out[0].StdDev, out[1].StdDev)
	}
	if math.Abs(out[0].CVPercent-0.0) > epsilon || math.Abs(out[1].CVPercent-1.0) > epsilon {
		t.Errorf("expected CV [0 1], got [%v %v]", out[0].CVPercent, out[1].CVPercent)
	}
	if math.Abs(out[0].Entropy-0.0) > epsilon || math.Abs(out[1].Entropy-1.0) > epsilon {
		t.Errorf("expected entropy [0 1], got [%v %v]", out[0].Entropy, out[1].Entropy)
	}

	// Non-target columns pass through untouched.
	if out[0].Mean != 10 || out[1].Mean != 12 {
		t.Errorf("expected means unchanged, got [%v %v]", out[0].Mean, out[1].Mean)
	}
	if out[0].Count != 3 || out[1].Count != 4 {
		t.Errorf("expected counts unchanged, got [%d %d]", out[0].Count, out[1].Count)
	}

	// Input is not mutated.
	if stats[0].StdDev != 2 || stats[1].StdDev != 8 {
		t.Errorf("input statistics mutated: [%v %v]", stats[0].StdDev, stats[1].StdDev)
	}
}

func TestNormalizeSingleRowDegenerates(t *testing.T) {
	stats := []PlotStatistics{
		{PlotID: 7, Count: 5, Mean: 3, StdDev: 1.2, CVPercent: 40, Entropy: 0.9},
	}

	out := Normalize(stats)

	if out[0].StdDev != 0 || out[0].CVPercent != 0 || out[0].Entropy != 0 {
		t.Errorf("expected zero-range columns set to 0, got std=%v cv=%v entropy=%v",
			out[0].StdDev, out[0].CVPercent, out[0].Entropy)
	}
	if out[0].Mean != 3 {
		t.Errorf("expected mean unchanged, got %v", out[0].Mean)
	}
}

func TestNormalizeConstantColumn(t *testing.T) {
	stats := []PlotStatistics{
		{PlotID: 1, StdDev: 4, CVPercent: 10, Entropy: 1},
		{PlotID: 2, StdDev: 4, CVPercent: 30, Entropy: 2},
	}

	out := Normalize(stats)

	if out[0].StdDev != 0 || out[1].StdDev != 0 {
		t.Errorf("expected constant std dev column set to 0, got [%v %v]", out[0].StdDev, out[1].StdDev)
	}
	if math.Abs(out[0].CVPercent-0.0) > epsilon || math.Abs(out[1].CVPercent-1.0) > epsilon {
		t.Errorf("expected CV [0 1], got [%v %v]", out[0].CVPercent, out[1].CVPercent)
	}
}

func TestNormalizeNaNCells(t *testing.T) {
	stats := []PlotStatistics{
		{PlotID: 1, StdDev: 2, CVPercent: math.NaN(), Entropy: 0},
		{PlotID: 2, StdDev: 6, CVPercent: 10, Entropy: 1},
		{PlotID: 3, StdDev: 10, CVPercent: 30, Entropy: 2},
	}

	out := Normalize(stats)

	// NaN cells are skipped for min/max and stay NaN.
	if !math.IsNaN(out[0].CVPercent) {
		t.Errorf("expected NaN CV to stay NaN, got %v", out[0].CVPercent)
	}
	if math.Abs(out[1].CVPercent-0.0) > epsilon || math.Abs(out[2].CVPercent-1.0) > epsilon {
		t.Errorf("expected finite CVs [0 1], got [%v %v]", out[1].CVPercent, out[2].CVPercent)
	}
	if math.Abs(out[1].StdDev-0.5) > epsilon {
		t.Errorf("expected middle std dev 0.5, got %v", out[1].StdDev)
	}
}

func TestNormalizeAllNaNColumnLeftAlone(t *testing.T) {
	stats := []PlotStatistics{
		{PlotID: 1, StdDev: math.NaN(), CVPercent: math.NaN(), Entropy: 0},
	}

	out := Normalize(stats)

	if !math.IsNaN(out[0].StdDev) || !math.IsNaN(out[0].CVPercent) {
		t.Errorf("expected all-NaN columns untouched, got std=%v cv=%v", out[0].StdDev, out[0].CVPercent)
	}
	if out[0].Entropy != 0 {
		t.Errorf("expected entropy 0, got %v", out[0].Entropy)
	}
}

func TestNormalizeEmptyTable(t *testing.T) {
	if out := Normalize(nil); len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %d records", len(out))
	}
}
