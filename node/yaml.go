package node

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Decode parses a JSON or YAML document into a tree, preserving key order.
// An empty document decodes to an empty object.
func Decode(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Kind == 0 {
		return NewObject(), nil
	}
	return FromYAML(&doc)
}

// FromYAML converts a yaml.v3 node into a tree.
func FromYAML(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return NewObject(), nil
		}
		return FromYAML(y.Content[0])
	case yaml.AliasNode:
		if y.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", y.Line)
		}
		return FromYAML(y.Alias)
	case yaml.SequenceNode:
		res := Array()
		for _, item := range y.Content {
			v, err := FromYAML(item)
			if err != nil {
				return nil, err
			}
			res.Append(v)
		}
		return res, nil
	case yaml.MappingNode:
		res := NewObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				if err := mergeInto(res, v); err != nil {
					return nil, err
				}
				continue
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: object keys must be scalars", k.Line)
			}
			val, err := FromYAML(v)
			if err != nil {
				return nil, err
			}
			res.Set(k.Value, val)
		}
		return res, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(y)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", y.Line, y.Kind)
	}
}

// mergeInto applies a YAML merge key: fields of the merged mappings are added
// unless res already has them.
func mergeInto(res *Node, v *yaml.Node) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		merged, err := FromYAML(src)
		if err != nil {
			return err
		}
		if !merged.IsObject() {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		for i, k := range merged.keys {
			if !res.Has(k) {
				res.Set(k, merged.values[i])
			}
		}
	}
	return nil
}

func fromYAMLScalar(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		if jsonNumber.MatchString(y.Value) {
			return Number(y.Value), nil
		}
		var i int64
		if err := y.Decode(&i); err != nil {
			return String(y.Value), nil
		}
		return Int(i), nil
	case "!!float":
		if jsonNumber.MatchString(y.Value) {
			return Number(y.Value), nil
		}
		var f float64
		if err := y.Decode(&f); err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return String(y.Value), nil
		}
		return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return String(y.Value), nil
	}
}
