// Package setup turns a configuration into a ready fixture loader.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/generator"
	"github.com/sbtqa/datajack-sub000/internal/config"
	"github.com/sbtqa/datajack-sub000/loader"
	"github.com/sbtqa/datajack-sub000/loader/filesystem"
	"github.com/sbtqa/datajack-sub000/loader/properties"
	"github.com/sbtqa/datajack-sub000/loader/spreadsheet"
	"github.com/sbtqa/datajack-sub000/loader/sqlite"
	"github.com/sbtqa/datajack-sub000/options"
)

// Env is the loader and provider options described by a configuration.
type Env struct {
	Loader  *loader.Cached
	Options []fixture.Option
	// Cache holds generated values; nil when the generator is disabled.
	Cache *generator.MapCache

	closers []io.Closer
}

// Build validates cfg and opens every source in order.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Env, error) {
	if err := config.Validate(cfg).Error(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	env := &Env{}

	loaders := make([]fixture.Loader, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		l, err := env.source(ctx, src)
		if err != nil {
			_ = env.Close()
			return nil, err
		}
		logger.Debug("source ready", "type", src.Type, "path", src.Path)
		loaders = append(loaders, l)
	}

	env.Loader = loader.NewCached(loader.NewChain(loaders...))

	refs := cfg.References
	env.Options = []fixture.Option{
		fixture.WithLogger(logger),
		fixture.WithMaxReferenceDepth(refs.MaxDepth),
		fixture.WithReferenceShape(fixture.ReferenceShape{
			ValueKey:       refs.ValueKey,
			CollectionKeys: refs.CollectionKeys,
			PathKey:        refs.PathKey,
			PinnedKeys:     refs.PinnedKeys,
		}),
	}

	if cfg.Generator.IsEnabled() {
		env.Cache = generator.NewMapCache()

		genOpts := []generator.Option{generator.WithLogger(logger)}
		if cfg.Generator.Seed != 0 {
			genOpts = append(genOpts, generator.WithSeed(cfg.Generator.Seed))
		}

		env.Options = append(env.Options, fixture.WithGenerator(generator.New(env.Cache, genOpts...)))
	}

	return env, nil
}

func (e *Env) source(ctx context.Context, src config.Source) (fixture.Loader, error) {
	set := src.Descent != options.DescentUnset

	switch src.Type {
	case config.SourceJSON, config.SourceYAML:
		var opts []filesystem.Option
		if set {
			opts = append(opts, filesystem.WithDescent(src.Descent))
		}
		return filesystem.New(src.Path, opts...), nil
	case config.SourceProperties:
		var opts []properties.Option
		if set {
			opts = append(opts, properties.WithDescent(src.Descent))
		}
		return properties.New(src.Path, opts...), nil
	case config.SourceSpreadsheet:
		var opts []spreadsheet.Option
		if set {
			opts = append(opts, spreadsheet.WithDescent(src.Descent))
		}
		return spreadsheet.New(src.Path, opts...), nil
	case config.SourceSQLite:
		var opts []sqlite.Option
		if set {
			opts = append(opts, sqlite.WithDescent(src.Descent))
		}
		store, err := sqlite.Open(ctx, src.Path, opts...)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

// Open returns a Provider on collection.
func (e *Env) Open(collection string) (*fixture.Provider, error) {
	return fixture.Open(e.Loader, collection, e.Options...)
}

// Close releases database handles.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}
