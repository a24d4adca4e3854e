package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/sbtqa/datajack-sub000/utils"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"

	maxRandomLength = 4096
)

var errArity = errors.New("wrong number of arguments")

func (g *Generator) uuid(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("uuid: %w: want 0, got %d", errArity, len(args))
	}

	g.randMu.Lock()
	defer g.randMu.Unlock()

	id, err := uuid.NewRandomFromReader(randReader{g})
	if err != nil {
		return nil, fmt.Errorf("uuid: %w", err)
	}
	return id.String(), nil
}

func (g *Generator) randomString(args ...any) (any, error) {
	return g.pick("randomString", letters, args)
}

func (g *Generator) randomDigits(args ...any) (any, error) {
	return g.pick("randomDigits", digits, args)
}

func (g *Generator) pick(name, alphabet string, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: %w: want 1, got %d", name, errArity, len(args))
	}

	n, err := toInt(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if !utils.IsInRange(0, n, maxRandomLength) {
		return nil, fmt.Errorf("%s: length %d out of range [0, %d]", name, n, maxRandomLength)
	}

	g.randMu.Lock()
	defer g.randMu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[g.rand.IntN(len(alphabet))]
	}
	return string(b), nil
}

func (g *Generator) randomInt(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("randomInt: %w: want 2, got %d", errArity, len(args))
	}

	lo, err := toInt(args[0])
	if err != nil {
		return nil, fmt.Errorf("randomInt: %w", err)
	}
	hi, err := toInt(args[1])
	if err != nil {
		return nil, fmt.Errorf("randomInt: %w", err)
	}
	if lo > hi {
		return nil, fmt.Errorf("randomInt: min %d greater than max %d", lo, hi)
	}

	g.randMu.Lock()
	defer g.randMu.Unlock()

	return lo + g.rand.IntN(hi-lo+1), nil
}

// randReader feeds uuid from the generator source. The caller holds randMu.
type randReader struct {
	g *Generator
}

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.g.rand.Uint32())
	}
	return len(p), nil
}

func toInt(v any) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("want an integer, got %T", v)
	}
}
