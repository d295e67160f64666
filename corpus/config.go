package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives a corpus scan from a YAML file.
type Config struct {
	// Schema is the path to the SDL schema file.
	Schema string `yaml:"schema"`
	// Documents lists glob patterns selecting executable documents.
	// Recursive patterns ("queries/**/*.graphql") are supported.
	Documents []string `yaml:"documents"`
	// FailFast aborts the scan on the first document that fails to extract
	// instead of recording it and continuing.
	FailFast bool `yaml:"fail_fast"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that the configuration names a schema and at least one
// document pattern.
func (c *Config) Validate() error {
	if c.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	if len(c.Documents) == 0 {
		return fmt.Errorf("documents is required")
	}
	return nil
}
