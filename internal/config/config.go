// Package config loads experiment configurations for the tracking analysis
// utilities.
//
// Experiments are described by a YAML file with an output directory, a data
// section pointing at the hit-graph dataset, and a model section whose
// free-form keys are the model hyperparameters. The training harness copies
// the configuration into each result directory as config.yaml, so finished
// experiments can be reloaded without the original file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file the training harness saves into a
// result directory.
const ConfigFileName = "config.yaml"

// DataConfig describes the dataset section of an experiment configuration.
type DataConfig struct {
	// InputDir is the hit-graph dataset directory. May contain environment
	// variables ($SCRATCH etc.).
	InputDir string `yaml:"input_dir"`

	// NTrain and NValid are the split sizes used by the training harness.
	// The analysis utilities only need them to locate the test graphs.
	NTrain int `yaml:"n_train"`
	NValid int `yaml:"n_valid"`

	// NTest is the number of graphs taken from the back of the dataset for
	// evaluation. Zero means use the caller's default.
	NTest int `yaml:"n_test"`
}

// ModelConfig describes the model section of an experiment configuration.
//
// Apart from the model name, the section is free-form: every remaining key is
// a hyperparameter passed to the model factory. The loss_func key belongs to
// the training harness and is dropped on load.
type ModelConfig struct {
	// Name selects the model factory.
	Name string

	// Params holds the remaining hyperparameters.
	Params map[string]any
}

// UnmarshalYAML implements yaml.Unmarshaler for ModelConfig.
func (m *ModelConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if name, ok := raw["name"].(string); ok {
		m.Name = name
	}
	delete(raw, "name")

	// Training-only key, not a model hyperparameter.
	delete(raw, "loss_func")

	m.Params = raw
	return nil
}

// MarshalYAML implements yaml.Marshaler for ModelConfig.
func (m ModelConfig) MarshalYAML() (any, error) {
	out := make(map[string]any, len(m.Params)+1)
	for k, v := range m.Params {
		out[k] = v
	}
	out["name"] = m.Name
	return out, nil
}

// Config is a parsed experiment configuration.
type Config struct {
	// Output is the experiment output directory as configured, before
	// environment expansion.
	Output string `yaml:"output_dir"`

	Data  DataConfig  `yaml:"data"`
	Model ModelConfig `yaml:"model"`
}

// OutputDir returns the experiment output directory with environment
// variables expanded.
func (c *Config) OutputDir() string {
	return os.ExpandEnv(c.Output)
}

// InputDir returns the dataset input directory with environment variables
// expanded.
func (c *Config) InputDir() string {
	return os.ExpandEnv(c.Data.InputDir)
}

// Load reads an experiment configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDir reads the configuration saved in an experiment result directory.
func LoadDir(resultDir string) (*Config, error) {
	return Load(filepath.Join(resultDir, ConfigFileName))
}

// Save writes the configuration to a YAML file. The training harness uses
// this to persist the configuration into the result directory; the analysis
// side uses it in tests.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
