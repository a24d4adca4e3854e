package fixture

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error unwraps to exactly one of these, so callers can
// test with errors.Is(err, fixture.ErrFieldNotFound).
var (
	ErrCollectionNotFound     = errors.New("collection not found")
	ErrFieldNotFound          = errors.New("field not found")
	ErrNotAnArray             = errors.New("not an array")
	ErrNoReference            = errors.New("not a reference")
	ErrCyclicReference        = errors.New("cyclic reference")
	ErrGeneratorFailure       = errors.New("generator failure")
	ErrReferenceDepthExceeded = errors.New("reference depth exceeded")
)

// Error describes a failed fixture operation with enough context to locate
// the offending path in the source data.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Collection is the collection (file, sheet, table) being navigated.
	Collection string
	// Key is the offending segment, if any.
	Key string
	// Path is the logical path reached when the failure happened.
	Path string
	// Detail is a human-readable explanation.
	Detail string
	// Suggestions lists similar existing keys for missing fields.
	Suggestions []string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder

	b.WriteString("datajack: ")
	b.WriteString(e.kindText())

	var attrs []string
	if e.Collection != "" {
		attrs = append(attrs, fmt.Sprintf("collection=%q", e.Collection))
	}
	if e.Key != "" {
		attrs = append(attrs, fmt.Sprintf("key=%q", e.Key))
	}
	if e.Path != "" {
		attrs = append(attrs, fmt.Sprintf("path=%q", e.Path))
	}
	if len(attrs) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(attrs, " "))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString("?)")
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}

	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

func (e *Error) kindText() string {
	if e.Kind == nil {
		return "error"
	}
	return e.Kind.Error()
}

// NotFound returns a collection-not-found error for loaders to report a
// collection they do not hold.
func NotFound(collection string, cause error) error {
	return &Error{Kind: ErrCollectionNotFound, Collection: collection, Err: cause}
}

// KindOf returns the kind sentinel of err, or nil when err is not a fixture
// error.
func KindOf(err error) error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return nil
}

func collectionError(collection string, err error) error {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind == ErrCollectionNotFound {
		return err
	}
	return &Error{Kind: ErrCollectionNotFound, Collection: collection, Detail: "cannot open collection", Err: err}
}
