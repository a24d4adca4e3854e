// Package spreadsheet loads collections from an .xlsx workbook, one
// collection per sheet. Column A holds a dotted key and column B its value:
//
//	| Common.password                   | 123qwe          |
//	| Common.password2.value.sheetName  | DataBlocks      |
//	| Common.password2.value.path       | Common.password |
//
// Rows with an empty key or a key starting with # are skipped. A value
// holding a JSON object or array is decoded into a subtree.
package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/internal/tree"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

// Loader reads sheets of one workbook.
type Loader struct {
	path    string
	descent options.DescentEnum
}

// Option configures a Loader.
type Option func(*Loader)

// WithDescent sets the policy reported for every sheet.
func WithDescent(d options.DescentEnum) Option {
	return func(l *Loader) {
		l.descent = d
	}
}

// New returns a Loader reading the workbook at path. Sheets are lenient by
// default: a path running past a cell value stops at the cell.
func New(path string, opts ...Option) *Loader {
	l := &Loader{path: path, descent: options.DescentLenient}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *Loader) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", l.path, err)
	}
	return f, nil
}

func (l *Loader) Load(collection string) (doc *node.Node, err error) {
	f, err := l.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook %s: %w", l.path, cerr)
		}
	}()

	idx, err := f.GetSheetIndex(collection)
	if err != nil || idx < 0 {
		return nil, fixture.NotFound(collection, err)
	}

	rows, err := f.GetRows(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", collection, err)
	}

	return Decode(rows)
}

// Decode builds a document from sheet rows.
func Decode(rows [][]string) (*node.Node, error) {
	b := tree.New()

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		key := strings.TrimSpace(row[0])
		if key == "" || strings.HasPrefix(key, "#") {
			continue
		}

		var value string
		if len(row) > 1 {
			value = row[1]
		}

		if err := b.Set(key, tree.Value(value)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return b.Node(), nil
}

// Collections lists the sheets in workbook order.
func (l *Loader) Collections() (names []string, err error) {
	f, err := l.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return f.GetSheetList(), nil
}

func (l *Loader) Descent(string) options.DescentEnum {
	return l.descent
}
