// Package filesystem loads JSON and YAML collections from a directory, one
// collection per file named after it: Tests.json, DataBlocks.yaml.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/internal/common"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

// Extensions lists the recognised file extensions in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// Loader reads collections from a file system.
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

	for _, ext := range Extensions {
		name := collection + ext

		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		doc, err := node.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if !doc.IsObject() {
			return nil, fmt.Errorf("%s: top level must be an object, got %s", name, doc.Kind())
		}
		return doc, nil
	}

	return nil, fixture.NotFound(collection, nil)
}

// Collections lists the collection files in the root directory, sorted.
func (l *Loader) Collections() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if slices.Contains(Extensions, ext) {
			names = append(names, common.CollectionName(e.Name()))
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

func (l *Loader) Descent(string) options.DescentEnum {
	return l.descent
}
