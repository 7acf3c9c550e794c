package treecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a tree definition from YAML (JSON is a YAML
// subset and also accepted).
func Parse(data []byte) (*TreeConfig, error) {
	var cfg TreeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a tree definition file.
func Load(path string) (*TreeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
