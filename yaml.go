package paramtree

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// FromYAML builds a tree from a YAML mapping or sequence, keeping the
// order of mapping keys. Non-string mapping keys are converted with fmt.
func FromYAML(data []byte, opts *Options) (*Tree, error) {
	v, err := DecodeYAMLValue(data)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case Map, []interface{}:
	default:
		return nil, fmt.Errorf("%w: top-level YAML value must be a mapping or sequence, got %T", ErrInvalidArgument, v)
	}
	return FromMap(v, opts)
}

// DecodeYAMLValue decodes any YAML value into the types a tree stores:
// mappings become Map in document order, sequences []interface{} and
// integers int where they fit.
func DecodeYAMLValue(data []byte) (interface{}, error) {
	var v interface{}
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return fromYAMLValue(v), nil
}

func fromYAMLValue(v interface{}) interface{} {
	switch v := v.(type) {
	case yaml.MapSlice:
		m := make(Map, len(v))
		for i, item := range v {
			m[i] = Item{fmt.Sprint(item.Key), fromYAMLValue(item.Value)}
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = fromYAMLValue(elem)
		}
		return out
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
		return float64(v)
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
		return float64(v)
	}
	return v
}

// MarshalYAML lets go-yaml encode a tree directly, applying the same
// list-or-object rule as MarshalJSON.
func (t *Tree) MarshalYAML() (interface{}, error) {
	return toYAMLValue(t.ToPlain()), nil
}

// ToYAML encodes the tree as a YAML document.
func (t *Tree) ToYAML() ([]byte, error) {
	b, err := yaml.Marshal(toYAMLValue(t.ToPlain()))
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return b, nil
}

func toYAMLValue(v interface{}) interface{} {
	m, ok := v.(Map)
	if !ok {
		return v
	}
	if values, ok := m.listed(); ok {
		for i := range values {
			values[i] = toYAMLValue(values[i])
		}
		return values
	}
	out := make(yaml.MapSlice, len(m))
	for i, item := range m {
		out[i] = yaml.MapItem{Key: item.Key, Value: toYAMLValue(item.Value)}
	}
	return out
}
