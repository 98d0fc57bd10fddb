package pipeline

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// Stage artifact filenames, written to the output directory in pipeline
// order. Artifacts from earlier stages survive a later-stage failure so the
// failing stage can be diagnosed from its exact input.
const (
	ArtifactReshaped   = "1_reshaped_data.csv"
	ArtifactCleaned    = "2_cleaned_data.csv"
	ArtifactStatistics = "3_statistical_analysis.csv"
	ArtifactNormalized = "4_normalized_final.csv"
)

// statisticsHeader mirrors the column labels of the upstream mask-area
// workbook family so downstream tooling keeps working.
var statisticsHeader = []string{"Plot ID", "Count", "Mean", "Std Dev", "CV (%)", "Entropy"}

// plotLabel renders a plot column header, e.g. plot 3 -> "3-".
func plotLabel(id int) string {
	return strconv.Itoa(id) + "-"
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeCSV writes rows to path as a whole-file operation, replacing any
// prior artifact of the same name.
func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WriteCSV persists the wide table: the retained source columns followed by
// one column per plot ID, unset cells blank.
func (w *WideTable) WriteCSV(path string) error {
	header := make([]string, 0, 2+w.RangeMax)
	header = append(header, "Image Name", "Area")
	for id := 1; id <= w.RangeMax; id++ {
		header = append(header, plotLabel(id))
	}

	rows := make([][]string, 0, 1+len(w.Cells))
	rows = append(rows, header)
	for i, cells := range w.Cells {
		row := make([]string, 0, len(header))
		row = append(row, w.ImageNames[i], formatCell(w.Areas[i]))
		for _, c := range cells {
			row = append(row, formatCell(c))
		}
		rows = append(rows, row)
	}

	return writeCSV(path, rows)
}

// WriteCSV persists the compacted series as one column per plot. The series
// are ragged, so shorter columns trail off into blank cells.
func (s *PlotSeriesSet) WriteCSV(path string) error {
	header := make([]string, 0, s.RangeMax)
	depth := 0
	for id := 1; id <= s.RangeMax; id++ {
		header = append(header, plotLabel(id))
		if n := len(s.Series[id-1]); n > depth {
			depth = n
		}
	}

	rows := make([][]string, 0, 1+depth)
	rows = append(rows, header)
	for i := 0; i < depth; i++ {
		row := make([]string, s.RangeMax)
		for col, series := range s.Series {
			if i < len(series) {
				row[col] = formatCell(series[i])
			}
		}
		rows = append(rows, row)
	}

	return writeCSV(path, rows)
}

// WriteStatisticsCSV persists a statistics table, raw or normalized. NaN
// cells are written blank, matching the other artifacts.
func WriteStatisticsCSV(path string, stats []PlotStatistics) error {
	rows := make([][]string, 0, 1+len(stats))
	rows = append(rows, statisticsHeader)
	for _, s := range stats {
		rows = append(rows, []string{
			plotLabel(s.PlotID),
			strconv.Itoa(s.Count),
			formatCell(s.Mean),
			formatCell(s.StdDev),
			formatCell(s.CVPercent),
			formatCell(s.Entropy),
		})
	}
	return writeCSV(path, rows)
}
