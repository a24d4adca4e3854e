package fixture

import (
	"github.com/sbtqa/datajack-sub000/internal/fieldpath"
)

// Value materializes the leaf in scope as a string. A reference is followed
// to its final target first. The scalar is read under the value key, then
// under the last token of the requested path; an array in scope renders in
// canonical form. When a generator is attached its output replaces the raw
// scalar, and its failure is reported as ErrGeneratorFailure.
func (p *Provider) Value() (string, error) {
	if p.IsReference() {
		target, err := p.Reference()
		if err != nil {
			return "", err
		}
		return target.Value()
	}

	raw, err := p.raw()
	if err != nil {
		return "", err
	}

	if p.generator == nil {
		return raw, nil
	}

	p.cfg.logger.Debug("generating value", "collection", p.collection, "path", p.path)

	out, err := p.generator.Generate(p.path, raw)
	if err != nil {
		return "", &Error{
			Kind:       ErrGeneratorFailure,
			Collection: p.collection,
			Path:       p.path,
			Detail:     "cannot generate value",
			Err:        err,
		}
	}

	return out, nil
}

// RawValue is Value without the generator.
func (p *Provider) RawValue() (string, error) {
	return p.ApplyGenerator(nil).Value()
}

func (p *Provider) raw() (string, error) {
	if v, ok := p.node.Get(p.cfg.shape.ValueKey); ok {
		return v.Text(), nil
	}

	own := fieldpath.LastToken(p.way)
	if v, ok := p.node.Get(own); ok && own != "" {
		return v.Text(), nil
	}

	if p.node.IsArray() {
		return p.node.String(), nil
	}

	return "", &Error{
		Kind:       ErrFieldNotFound,
		Collection: p.collection,
		Key:        own,
		Path:       p.path,
		Detail:     "no value under " + quoteKeys(p.cfg.shape.ValueKey, own),
	}
}

func quoteKeys(keys ...string) string {
	var res string
	for _, k := range keys {
		if k == "" {
			continue
		}
		if res != "" {
			res += " or "
		}
		res += `"` + k + `"`
	}
	return res
}
