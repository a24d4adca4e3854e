// Package check verifies fixture collections: every reference must resolve
// and every key must be addressable by a path.
package check

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/internal/diagnostic"
	"github.com/sbtqa/datajack-sub000/internal/fieldpath"
	"github.com/sbtqa/datajack-sub000/node"
)

// Diagnostic codes reported by Run.
const (
	CodeListFailed       = "list_failed"
	CodeCollectionFailed = "collection_failed"
	CodeCollectionEmpty  = "collection_empty"
	CodeKeyUnaddressable = "key_unaddressable"
	CodeReferenceBroken  = "reference_broken"
	CodeReferenceCyclic  = "reference_cyclic"
	CodeReferenceDepth   = "reference_too_deep"
)

// Checker checks the collections of one loader.
type Checker struct {
	loader fixture.Loader
	opts   []fixture.Option
	logger *slog.Logger
}

func New(loader fixture.Loader, logger *slog.Logger, opts ...fixture.Option) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{loader: loader, opts: opts, logger: logger}
}

// Run checks the named collections, or every collection the loader lists
// when none are named.
func (c *Checker) Run(collections ...string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if len(collections) == 0 {
		lister, ok := c.loader.(fixture.Lister)
		if !ok {
			res.AddError(CodeListFailed, "loader cannot list its collections", "", "")
			return res
		}

		names, err := lister.Collections()
		if err != nil {
			res.AddError(CodeListFailed, err.Error(), "", "")
			return res
		}
		collections = names
	}

	for _, name := range collections {
		c.collection(res, name)
	}

	return res
}

func (c *Checker) collection(res *diagnostic.Diagnostics, name string) {
	c.logger.Debug("checking collection", "collection", name)

	p, err := fixture.Open(c.loader, name, c.opts...)
	if err != nil {
		res.AddError(CodeCollectionFailed, err.Error(), name, "")
		return
	}

	if p.Node().Len() == 0 {
		res.AddInfo(CodeCollectionEmpty, "collection has no keys", name, "")
		return
	}

	c.walk(res, p, "", p.Node())
}

// walk visits the children of n, which sits at path in the collection of p.
// References are resolved and not descended into.
func (c *Checker) walk(res *diagnostic.Diagnostics, p *fixture.Provider, path string, n *node.Node) {
	switch {
	case n.IsObject():
		for _, k := range n.Keys() {
			at := fieldpath.Join(path, k)
			if !addressable(k) {
				res.AddWarning(CodeKeyUnaddressable, fmt.Sprintf("key %q cannot be addressed by a path", k), p.Collection(), at)
				continue
			}
			child, _ := n.Get(k)
			c.visit(res, p, at, child)
		}
	case n.IsArray():
		for i, item := range n.Items() {
			c.visit(res, p, path+"["+strconv.Itoa(i)+"]", item)
		}
	}
}

func (c *Checker) visit(res *diagnostic.Diagnostics, p *fixture.Provider, path string, n *node.Node) {
	if !n.Kind().IsContainer() {
		return
	}

	got, err := p.Get(path)
	if err != nil {
		res.AddWarning(CodeKeyUnaddressable, err.Error(), p.Collection(), path)
		return
	}

	if !got.IsReference() {
		c.walk(res, p, path, n)
		return
	}

	c.logger.Debug("checking reference", "collection", p.Collection(), "path", path)

	if err := follow(got); err != nil {
		res.Add(referenceDiagnostic(p.Collection(), path, err))
	}
}

// follow resolves ref and every reference it lands on.
func follow(ref *fixture.Provider) error {
	cur := ref
	for cur.IsReference() {
		next, err := cur.Reference()
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// addressable reports whether key can be named in a path: keys holding
// dots or array index syntax cannot.
func addressable(key string) bool {
	if key == "" || strings.Contains(key, ".") {
		return false
	}
	return !fieldpath.Parse(key).Last().Indexed
}

func referenceDiagnostic(collection, path string, err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity:   diagnostic.DiagnosticError,
		Code:       CodeReferenceBroken,
		Message:    err.Error(),
		Collection: collection,
		FieldPath:  path,
	}

	switch fixture.KindOf(err) {
	case fixture.ErrCyclicReference:
		d.Code = CodeReferenceCyclic
	case fixture.ErrReferenceDepthExceeded:
		d.Code = CodeReferenceDepth
	}

	var fe *fixture.Error
	if errors.As(err, &fe) && len(fe.Suggestions) > 0 {
		d.Suggestions = fe.Suggestions
		d.Message = fmt.Sprintf("%s: %s", fe.Kind, fe.Detail)
	}

	return d
}
