package generator

import (
	"errors"
	"fmt"
	"strings"
)

var errUnterminated = errors.New("unterminated expression")

// part is a piece of a template: literal text or an expression.
type part struct {
	text string
	expr bool
}

// hasTemplate reports whether raw contains an expression.
func hasTemplate(raw string) bool {
	return strings.Contains(raw, "${")
}

// split cuts raw into literal and ${expression} parts. Braces inside an
// expression nest, and quoted strings may contain braces.
func split(raw string) ([]part, error) {
	var parts []part

	for {
		start := strings.Index(raw, "${")
		if start < 0 {
			if raw != "" {
				parts = append(parts, part{text: raw})
			}
			return parts, nil
		}

		if start > 0 {
			parts = append(parts, part{text: raw[:start]})
		}

		end, err := closing(raw, start+2)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", start, err)
		}

		body := strings.TrimSpace(raw[start+2 : end])
		if body == "" {
			return nil, fmt.Errorf("offset %d: empty expression", start)
		}

		parts = append(parts, part{text: body, expr: true})
		raw = raw[end+1:]
	}
}

// closing returns the index of the brace closing the expression that starts
// at from.
func closing(s string, from int) (int, error) {
	depth := 0
	var quote byte

	for i := from; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}

	return 0, errUnterminated
}
