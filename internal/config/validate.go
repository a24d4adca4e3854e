package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/sbtqa/datajack-sub000/internal/diagnostic"
	"github.com/sbtqa/datajack-sub000/internal/match"
)

// Validate checks cfg for values the CLI cannot act on.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError("config_is_nil", "config is nil", "", "")
		return res
	}

	if cfg.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", cfg.Version), "", "version")
	}

	if len(cfg.Sources) == 0 {
		res.AddError("no_sources", "at least one source is required", "", "sources")
	}

	names := make([]string, len(SourceTypes))
	for i, st := range SourceTypes {
		names[i] = string(st)
	}

	for i, s := range cfg.Sources {
		field := fmt.Sprintf("sources[%d]", i)

		if !slices.Contains(SourceTypes, s.Type) {
			res.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        "unknown_source_type",
				Message:     fmt.Sprintf("unknown source type %q", s.Type),
				FieldPath:   field + ".type",
				Suggestions: match.Suggest(string(s.Type), names, 1, match.DefaultThreshold),
			})
		}

		if s.Path == "" {
			res.AddError("empty_source_path", "source path is empty", "", field+".path")
		}
	}

	if cfg.References.MaxDepth <= 0 {
		res.AddError("invalid_max_depth",
			fmt.Sprintf("max_depth must be positive, got %d", cfg.References.MaxDepth), "", "references.max_depth")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		res.AddError("invalid_log_level", fmt.Sprintf("invalid log level %q", cfg.Log.Level), "", "log.level")
	}

	return res
}

// LogLevel returns the configured log level, info when it does not parse.
func (cfg *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
