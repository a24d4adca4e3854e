package fixture

import (
	"log/slog"

	"github.com/sbtqa/datajack-sub000/options"
)

// DefaultMaxReferenceDepth bounds the number of hops in one reference chain.
const DefaultMaxReferenceDepth = 64

// ReferenceShape describes which leaf objects are references:
//
//	{"value": {"collection": "DataBlocks", "path": "Common.password", "docId": "42"}}
//
// The value object must carry one of CollectionKeys and a string under
// PathKey; one of PinnedKeys optionally pins a document id.
type ReferenceShape struct {
	ValueKey       string
	CollectionKeys []string
	PathKey        string
	PinnedKeys     []string
}

// DefaultReferenceShape recognises the keys used by the JSON, spreadsheet and
// database formats.
func DefaultReferenceShape() ReferenceShape {
	return ReferenceShape{
		ValueKey:       "value",
		CollectionKeys: []string{"collection", "sheet", "sheetName"},
		PathKey:        "path",
		PinnedKeys:     []string{"docId", "refId"},
	}
}

// Option configures a Provider created by Open.
type Option func(*settings)

type settings struct {
	generator Generator
	logger    *slog.Logger
	descent   options.DescentEnum
	shape     ReferenceShape
	maxDepth  int
}

func applyOptions(opts []Option) *settings {
	cfg := &settings{
		shape:    DefaultReferenceShape(),
		maxDepth: DefaultMaxReferenceDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithGenerator attaches a generator inherited by every derived Provider.
func WithGenerator(g Generator) Option {
	return func(cfg *settings) {
		cfg.generator = g
	}
}

// WithLogger sets the logger reference hops and loads are reported to at
// debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *settings) {
		cfg.logger = logger
	}
}

// WithDescent overrides the descent policy reported by the loader.
func WithDescent(d options.DescentEnum) Option {
	return func(cfg *settings) {
		cfg.descent = d
	}
}

// WithReferenceShape replaces the keys references are recognised by. Empty
// fields keep their defaults.
func WithReferenceShape(shape ReferenceShape) Option {
	return func(cfg *settings) {
		def := DefaultReferenceShape()
		if shape.ValueKey == "" {
			shape.ValueKey = def.ValueKey
		}
		if len(shape.CollectionKeys) == 0 {
			shape.CollectionKeys = def.CollectionKeys
		}
		if shape.PathKey == "" {
			shape.PathKey = def.PathKey
		}
		if shape.PinnedKeys == nil {
			shape.PinnedKeys = def.PinnedKeys
		}
		cfg.shape = shape
	}
}

// WithMaxReferenceDepth bounds the hops of one reference chain. Values below
// one keep the default.
func WithMaxReferenceDepth(depth int) Option {
	return func(cfg *settings) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}
