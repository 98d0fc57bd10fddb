package pipeline

import (
	"fmt"
	"path/filepath"
)

// UnmatchedPolicy controls what happens to measurement rows whose image name
// encodes no plot in range.
type UnmatchedPolicy string

const (
	// UnmatchedIgnore silently excludes unmatched rows from every plot
	// column. This matches the historical behavior and is the default.
	UnmatchedIgnore UnmatchedPolicy = "ignore"
	// UnmatchedWarn reports the unmatched-row count through the log
	// callback and continues.
	UnmatchedWarn UnmatchedPolicy = "warn"
	// UnmatchedFail aborts the pipeline after the reshape stage with an
	// UnmatchedRowsError.
	UnmatchedFail UnmatchedPolicy = "fail"
)

// DefaultRangeMax is the upper bound on plot IDs when none is configured.
const DefaultRangeMax = 420

// UnmatchedRowsError is returned under UnmatchedFail when any measurement
// row maps to no plot.
type UnmatchedRowsError struct {
	Rows int
}

func (e *UnmatchedRowsError) Error() string {
	return fmt.Sprintf("%d measurement rows matched no plot identifier", e.Rows)
}

// Options configures a pipeline run.
type Options struct {
	// RangeMax is the upper bound on plot IDs; DefaultRangeMax when zero.
	RangeMax int
	// OutlierFilter enables IQR outlier exclusion in the statistics stage.
	OutlierFilter bool
	// Unmatched selects the unmatched-row policy; UnmatchedIgnore when empty.
	Unmatched UnmatchedPolicy
	// Log receives progress text at stage boundaries and periodically during
	// long stages. It must not influence the run's outcome; nil is silent.
	Log func(string)
}

// Result summarizes a completed run.
type Result struct {
	Measurements int
	Retained     int
	Unmatched    int
	Statistics   []PlotStatistics
	Normalized   []PlotStatistics
}

// Run executes the four pipeline stages over the measurements and writes one
// CSV artifact per stage into outputDir, each overwriting its predecessor
// from prior runs. The run is synchronous: a stage fully materializes its
// output, on disk and in memory, before the next begins. On failure the
// artifacts already written stay on disk for diagnosis.
func Run(measurements []Measurement, outputDir string, opts Options) (*Result, error) {
	if opts.RangeMax == 0 {
		opts.RangeMax = DefaultRangeMax
	}
	if opts.Unmatched == "" {
		opts.Unmatched = UnmatchedIgnore
	}
	logf := func(format string, args ...interface{}) {
		if opts.Log != nil {
			opts.Log(fmt.Sprintf(format, args...))
		}
	}

	logf("reshaping %d measurements into %d plot columns", len(measurements), opts.RangeMax)
	wide, unmatched, err := Reshape(measurements, opts.RangeMax, opts.Log)
	if err != nil {
		return nil, err
	}
	if err := wide.WriteCSV(filepath.Join(outputDir, ArtifactReshaped)); err != nil {
		return nil, err
	}

	if unmatched > 0 {
		switch opts.Unmatched {
		case UnmatchedWarn:
			logf("warning: %d rows matched no plot identifier and carry no plot value", unmatched)
		case UnmatchedFail:
			return nil, &UnmatchedRowsError{Rows: unmatched}
		}
	}

	logf("compacting plot columns")
	series := Compact(wide)
	if err := series.WriteCSV(filepath.Join(outputDir, ArtifactCleaned)); err != nil {
		return nil, err
	}

	logf("computing per-plot statistics (outlier filter: %t)", opts.OutlierFilter)
	stats := Summarize(series, opts.OutlierFilter)
	if err := WriteStatisticsCSV(filepath.Join(outputDir, ArtifactStatistics), stats); err != nil {
		return nil, err
	}

	logf("normalizing dispersion columns across %d plots", len(stats))
	normalized := Normalize(stats)
	if err := WriteStatisticsCSV(filepath.Join(outputDir, ArtifactNormalized), normalized); err != nil {
		return nil, err
	}

	logf("pipeline complete: results written to %s", outputDir)

	return &Result{
		Measurements: len(measurements),
		Retained:     len(wide.Cells),
		Unmatched:    unmatched,
		Statistics:   stats,
		Normalized:   normalized,
	}, nil
}
