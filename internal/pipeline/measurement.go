// Package pipeline implements the four-stage per-plot statistics pipeline:
// reshape raw mask measurements into per-plot columns, compact the sparse
// columns into dense series, summarize each plot, and min-max normalize the
// dispersion statistics across plots.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Measurement is one row of raw input: a single detected mask's area and the
// image it came from.
type Measurement struct {
	ImageName string
	Area      float64
}

// SchemaError indicates a mandatory input column is missing.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input table is missing mandatory column %q", e.Column)
}

// ReadMeasurements loads a measurement table from a CSV file. The Area column
// is mandatory. Image Name is optional; without it every row degenerates to
// "no plot matched". A Mask Name column, if present, is dropped.
func ReadMeasurements(path string) ([]Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse input table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input table %s is empty", path)
	}

	header := records[0]
	areaIdx := -1
	nameIdx := -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Area":
			areaIdx = i
		case "Image Name":
			nameIdx = i
		}
	}
	if areaIdx < 0 {
		return nil, &SchemaError{Column: "Area"}
	}

	measurements := make([]Measurement, 0, len(records)-1)
	for i, rec := range records[1:] {
		if areaIdx >= len(rec) {
			return nil, fmt.Errorf("row %d: missing Area cell", i+2)
		}
		area, err := strconv.ParseFloat(strings.TrimSpace(rec[areaIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid Area value %q: %w", i+2, rec[areaIdx], err)
		}
		if area < 0 {
			return nil, fmt.Errorf("row %d: negative Area value %v", i+2, area)
		}

		var name string
		if nameIdx >= 0 && nameIdx < len(rec) {
			name = rec[nameIdx]
		}
		measurements = append(measurements, Measurement{ImageName: name, Area: area})
	}

	return measurements, nil
}
