package fieldpath

import (
	"regexp"
	"strconv"
	"strings"
)

var indexed = regexp.MustCompile(`^(.+)\[([0-9]+)\]$`)

// Segment is one element of a Path.
type Segment struct {
	// Key is the object key to look up. For index segments it is the key of
	// the array.
	Key string
	// Index is the array position, valid when Indexed is true.
	Index   int
	Indexed bool
}

// String renders the segment as it appeared in the path.
func (s Segment) String() string {
	if !s.Indexed {
		return s.Key
	}
	return s.Key + "[" + strconv.Itoa(s.Index) + "]"
}

// Path is a parsed dotted path.
type Path struct {
	raw      string
	Segments []Segment
}

// Parse splits path into segments. Parsing never fails: malformed index
// syntax is kept as a plain key so that the lookup reports the key missing.
func Parse(path string) Path {
	if path == "" {
		return Path{}
	}

	parts := strings.Split(path, ".")
	segments := make([]Segment, 0, len(parts))

	for _, part := range parts {
		segments = append(segments, parseSegment(part))
	}

	return Path{raw: path, Segments: segments}
}

func parseSegment(part string) Segment {
	m := indexed.FindStringSubmatch(part)
	if m == nil {
		return Segment{Key: part}
	}

	idx, err := strconv.Atoi(m[2])
	if err != nil {
		// out of int range, cannot address any item
		return Segment{Key: part}
	}

	return Segment{Key: m[1], Index: idx, Indexed: true}
}

// String returns the original path text.
func (p Path) String() string {
	return p.raw
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.Segments)
}

// IsEmpty reports whether the path addresses the current node itself.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Consumed returns the path text of the first n segments.
func (p Path) Consumed(n int) string {
	return join(p.Segments[:clamp(n, len(p.Segments))])
}

// Remaining returns the path text after the first n segments.
func (p Path) Remaining(n int) string {
	return join(p.Segments[clamp(n, len(p.Segments)):])
}

// Last returns the final segment. It returns the zero Segment for the empty
// path.
func (p Path) Last() Segment {
	if len(p.Segments) == 0 {
		return Segment{}
	}
	return p.Segments[len(p.Segments)-1]
}

// LastToken returns the text after the final "." of path, or path itself when
// it has no dot.
func LastToken(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Join concatenates two path texts, skipping empty sides.
func Join(prefix, suffix string) string {
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	default:
		return prefix + "." + suffix
	}
}

func join(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
