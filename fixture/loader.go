package fixture

import (
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

// Loader locates a named collection and returns its parsed document.
// Loaders report a missing collection with NotFound (or any error wrapping
// ErrCollectionNotFound); other errors are treated as failures to open it.
type Loader interface {
	Load(collection string) (*node.Node, error)
}

// PinnedLoader is implemented by loaders that store several documents per
// collection. Load returns the most recent one and LoadPinned the document
// with the given id. References carrying a pinned id need one.
type PinnedLoader interface {
	Loader
	LoadPinned(collection, id string) (*node.Node, error)
}

// Lister is implemented by loaders that can enumerate their collections.
type Lister interface {
	Collections() ([]string, error)
}

// DescentReporter is implemented by loaders whose format prescribes how a
// scalar met in the middle of a dotted path is treated.
type DescentReporter interface {
	Descent(collection string) options.DescentEnum
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(collection string) (*node.Node, error)

// Load implements Loader.
func (f LoaderFunc) Load(collection string) (*node.Node, error) {
	return f(collection)
}

// Generator rewrites a leaf value when it is materialized by Value. path is
// the logical path of the value and raw its text in the source document.
// Implementations typically memoise by path in a cache they own so repeated
// lookups yield the same output.
type Generator interface {
	Generate(path, raw string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(path, raw string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(path, raw string) (string, error) {
	return f(path, raw)
}
