package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sbtqa/datajack-sub000/fixture"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "datajack.yaml"

// Default returns the configuration used without a config file: JSON and
// YAML collections in the current directory.
func Default() *Config {
	cfg := &Config{
		Sources: []Source{{Type: SourceJSON, Path: "."}},
	}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a config file. Relative source paths are made
// relative to the directory holding the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Sources {
		s := &cfg.Sources[i]
		if s.Path != "" && !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(dir, s.Path)
		}
	}

	return cfg, nil
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	shape := fixture.DefaultReferenceShape()
	refs := &cfg.References

	if refs.ValueKey == "" {
		refs.ValueKey = shape.ValueKey
	}

	if len(refs.CollectionKeys) == 0 {
		refs.CollectionKeys = shape.CollectionKeys
	}

	if refs.PathKey == "" {
		refs.PathKey = shape.PathKey
	}

	if refs.PinnedKeys == nil {
		refs.PinnedKeys = shape.PinnedKeys
	}

	if refs.MaxDepth == 0 {
		refs.MaxDepth = fixture.DefaultMaxReferenceDepth
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
