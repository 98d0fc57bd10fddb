package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*Data, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Pipeline struct {
			RangeMax      int    `yaml:"range_max"`
			OutlierFilter bool   `yaml:"outlier_filter"`
			Unmatched     string `yaml:"unmatched"`
		} `yaml:"pipeline"`
		Results *struct {
			Database string `yaml:"database"`
		} `yaml:"results,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// Convert to our internal format
	data := &Data{
		Pipeline: PipelineData{
			RangeMax:      yamlConfig.Pipeline.RangeMax,
			OutlierFilter: yamlConfig.Pipeline.OutlierFilter,
			Unmatched:     yamlConfig.Pipeline.Unmatched,
		},
	}
	if yamlConfig.Results != nil {
		data.Results = &ResultsData{Database: yamlConfig.Results.Database}
	}

	return applyDefaults(data), nil
}

// IsReadOnly returns true; YAML configuration is not writable through the
// provider.
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML files.
func (y *YAMLProvider) Close() error {
	return nil
}
