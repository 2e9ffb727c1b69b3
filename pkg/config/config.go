// Package config reads the optional fitc project file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the project file read by the fitc CLI. Command-line flags
// override any field set here.
type Config struct {
	// Model is the path of the model source file.
	Model string `yaml:"model"`

	// Data is the path of the observable data table (csv, json or
	// parquet).
	Data string `yaml:"data"`

	// Func names the generated C function.
	Func string `yaml:"func"`

	// Output is the path the generated source is written to.
	Output string `yaml:"output"`

	// Events sets the event count when no data file is given.
	Events int `yaml:"events"`
}

// Load reads and parses a YAML project file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
