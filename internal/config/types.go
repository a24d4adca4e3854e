package config

import (
	"github.com/sbtqa/datajack-sub000/options"
)

// SourceType names a collection format.
type SourceType string

const (
	SourceJSON        SourceType = "json"
	SourceYAML        SourceType = "yaml"
	SourceProperties  SourceType = "properties"
	SourceSpreadsheet SourceType = "spreadsheet"
	SourceSQLite      SourceType = "sqlite"
)

// SourceTypes lists the supported formats.
var SourceTypes = []SourceType{SourceJSON, SourceYAML, SourceProperties, SourceSpreadsheet, SourceSQLite}

// Config is the top-level structure of datajack.yaml.
type Config struct {
	Version    string     `yaml:"version"`
	Sources    []Source   `yaml:"sources"`
	References References `yaml:"references"`
	Generator  Generator  `yaml:"generator"`
	Log        Log        `yaml:"log"`
}

// Source is one place collections are loaded from. Earlier sources win when
// two hold a collection of the same name.
type Source struct {
	Type SourceType `yaml:"type"`
	// Path is a directory for json, yaml and properties, a workbook for
	// spreadsheet and a database file for sqlite. Relative paths are
	// resolved against the directory of the config file.
	Path string `yaml:"path"`
	// Descent overrides the policy of the format.
	Descent options.DescentEnum `yaml:"descent,omitempty"`
}

// References describes the shape of reference nodes.
type References struct {
	ValueKey       string   `yaml:"value_key,omitempty"`
	CollectionKeys []string `yaml:"collection_keys,omitempty"`
	PathKey        string   `yaml:"path_key,omitempty"`
	PinnedKeys     []string `yaml:"pinned_keys,omitempty"`
	MaxDepth       int      `yaml:"max_depth,omitempty"`
}

// Generator configures the template generator.
type Generator struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Seed    uint64 `yaml:"seed,omitempty"`
}

// IsEnabled reports whether values are rendered; the default is true.
func (g Generator) IsEnabled() bool {
	return g.Enabled == nil || *g.Enabled
}

// Log configures the CLI logger.
type Log struct {
	Level string `yaml:"level,omitempty"`
}
