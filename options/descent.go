package options

import (
	"fmt"
	"strings"
)

// DescentEnum selects how navigation treats a scalar met before a dotted
// path is fully consumed. Each loader reports the policy its format has
// historically used.
type DescentEnum int

const (
	DescentUnset   DescentEnum = iota // no preference, falls back to DescentStrict
	DescentStrict                     // fail with a field-not-found error
	DescentLenient                    // stop descending and return the scalar reached so far

	// DescentTotal is a constant that represents the total number of policies defined
	DescentTotal = int(iota)
)

// String returns the configuration name of the policy.
func (d DescentEnum) String() string {
	switch d {
	case DescentStrict:
		return "strict"
	case DescentLenient:
		return "lenient"
	case DescentUnset:
		return "unset"
	default:
		return fmt.Sprintf("DescentEnum(%d)", int(d))
	}
}

// Or returns d unless it is unset, in which case fallback is returned.
func (d DescentEnum) Or(fallback DescentEnum) DescentEnum {
	if d == DescentUnset {
		return fallback
	}
	return d
}

// ParseDescent parses a configuration value. The empty string yields
// DescentUnset.
func ParseDescent(s string) (DescentEnum, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DescentUnset, nil
	case "strict":
		return DescentStrict, nil
	case "lenient":
		return DescentLenient, nil
	default:
		return DescentUnset, fmt.Errorf("unknown descent policy %q (want strict or lenient)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the policy can be read
// straight from configuration files.
func (d *DescentEnum) UnmarshalText(text []byte) error {
	v, err := ParseDescent(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d DescentEnum) MarshalText() ([]byte, error) {
	if d == DescentUnset {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}
