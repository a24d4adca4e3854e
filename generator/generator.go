package generator

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Func is a function callable from expressions.
type Func func(args ...any) (any, error)

// Generator renders ${expr} templates and memoises the result per path.
// It implements fixture.Generator and is safe for concurrent use when its
// Cache is.
type Generator struct {
	cache  Cache
	logger *slog.Logger
	funcs  map[string]Func

	randMu sync.Mutex
	rand   *rand.Rand

	programsMu sync.Mutex
	programs   map[string]*exprvm.Program
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the random functions reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithFunction registers fn under name, replacing a default function of the
// same name.
func WithFunction(name string, fn Func) Option {
	return func(g *Generator) {
		if name != "" && fn != nil {
			g.funcs[name] = fn
		}
	}
}

// WithLogger sets the logger renders are reported to at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New returns a Generator storing its output in cache. A nil cache gets a
// fresh MapCache.
func New(cache Cache, opts ...Option) *Generator {
	if cache == nil {
		cache = NewMapCache()
	}

	g := &Generator{
		cache:    cache,
		logger:   slog.New(slog.DiscardHandler),
		funcs:    make(map[string]Func),
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		programs: make(map[string]*exprvm.Program),
	}

	g.funcs["uuid"] = g.uuid
	g.funcs["randomString"] = g.randomString
	g.funcs["randomDigits"] = g.randomDigits
	g.funcs["randomInt"] = g.randomInt

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Generate renders raw. A value rendered before under path is returned from
// the cache without evaluating anything.
func (g *Generator) Generate(path, raw string) (string, error) {
	if !hasTemplate(raw) {
		return raw, nil
	}

	if v, ok := g.cache.Get(path); ok {
		return v, nil
	}

	out, err := g.Render(path, raw)
	if err != nil {
		return "", err
	}

	g.logger.Debug("generated value", "path", path, "raw", raw, "value", out)
	g.cache.Set(path, out)

	return out, nil
}

// Render evaluates the expressions of raw without consulting the cache.
func (g *Generator) Render(path, raw string) (string, error) {
	parts, err := split(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", raw, err)
	}

	env := map[string]any{
		"path": path,
		"raw":  raw,
	}

	var b strings.Builder

	for _, p := range parts {
		if !p.expr {
			b.WriteString(p.text)
			continue
		}

		program, err := g.program(p.text)
		if err != nil {
			return "", err
		}

		result, err := exprlang.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("failed to evaluate %q: %w", p.text, err)
		}

		b.WriteString(stringify(result))
	}

	return b.String(), nil
}

func (g *Generator) program(expression string) (*exprvm.Program, error) {
	g.programsMu.Lock()
	defer g.programsMu.Unlock()

	if program, ok := g.programs[expression]; ok {
		return program, nil
	}

	options := []exprlang.Option{
		exprlang.Env(map[string]any{"path": "", "raw": ""}),
		exprlang.AllowUndefinedVariables(),
	}
	for name, fn := range g.funcs {
		options = append(options, exprlang.Function(name, fn))
	}

	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %q: %w", expression, err)
	}

	g.programs[expression] = program

	return program, nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
