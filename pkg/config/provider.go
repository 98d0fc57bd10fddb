// Package config loads pipeline configuration from pluggable backends.
package config

import "github.com/croplab/phenopipe/internal/pipeline"

// Provider defines the interface for configuration data sources
type Provider interface {
	// Load complete configuration
	LoadConfig() (*Data, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// Data represents the complete configuration structure
type Data struct {
	Pipeline PipelineData `json:"pipeline"`
	Results  *ResultsData `json:"results,omitempty"`
}

// PipelineData holds the defaults for a pipeline run; CLI flags override
// any of these.
type PipelineData struct {
	RangeMax      int    `json:"range_max,omitempty"`
	OutlierFilter bool   `json:"outlier_filter,omitempty"`
	Unmatched     string `json:"unmatched,omitempty"`
}

// ResultsData holds the optional run-history store configuration.
type ResultsData struct {
	Database string `json:"database"`
}

// Default returns the built-in configuration used when no config source is
// given.
func Default() *Data {
	return &Data{
		Pipeline: PipelineData{
			RangeMax:  pipeline.DefaultRangeMax,
			Unmatched: string(pipeline.UnmatchedIgnore),
		},
	}
}

// applyDefaults fills unset fields on a loaded configuration.
func applyDefaults(d *Data) *Data {
	if d.Pipeline.RangeMax == 0 {
		d.Pipeline.RangeMax = pipeline.DefaultRangeMax
	}
	if d.Pipeline.Unmatched == "" {
		d.Pipeline.Unmatched = string(pipeline.UnmatchedIgnore)
	}
	return d
}
