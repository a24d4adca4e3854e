// Package properties loads collections from Java-style .properties files,
// one collection per file. Dotted keys are expanded into nested objects:
//
//	Common.password = 123qwe
//	Common.password2.value.collection = DataBlocks
//	Common.password2.value.path = Common.password
//	array[0] = a
//
// A value holding a JSON object or array is decoded into a subtree. Property
// expansion is disabled so ${...} templates reach the generator untouched.
package properties

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/magiconair/properties"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/internal/common"
	"github.com/sbtqa/datajack-sub000/internal/tree"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

const extension = ".properties"

// Loader reads .properties collections from a file system.
type Loader struct {
	fsys    fs.FS
	descent options.DescentEnum
}

// Option configures a Loader.
type Option func(*Loader)

// WithDescent sets the policy reported for every collection.
func WithDescent(d options.DescentEnum) Option {
	return func(l *Loader) {
		l.descent = d
	}
}

// New returns a Loader reading from dir.
func New(dir string, opts ...Option) *Loader {
	return NewFS(os.DirFS(dir), opts...)
}

// NewFS returns a Loader reading from fsys.
func NewFS(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{fsys: fsys, descent: options.DescentStrict}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *Loader) Load(collection string) (*node.Node, error) {
	if !fs.ValidPath(collection) || strings.Contains(collection, "/") {
		return nil, fixture.NotFound(collection, fmt.Errorf("invalid collection name"))
	}

	name := collection + extension

	data, err := fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fixture.NotFound(collection, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

// Decode parses properties text into a document.
func Decode(data []byte) (*node.Node, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}

	b := tree.New()
	for _, key := range props.Keys() {
		v, _ := props.Get(key)
		if err := b.Set(key, tree.Value(v)); err != nil {
			return nil, err
		}
	}
	return b.Node(), nil
}

// Collections lists the .properties files in the root directory, sorted.
func (l *Loader) Collections() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == extension {
			names = append(names, common.CollectionName(e.Name()))
		}
	}

	slices.Sort(names)
	return names, nil
}

func (l *Loader) Descent(string) options.DescentEnum {
	return l.descent
}
