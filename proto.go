package paramtree

import (
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto converts the tree to a protobuf Value holding a Struct, or a
// ListValue when the top level's keys are "0".."n-1". Struct fields are
// unordered, so key order does not survive.
func (t *Tree) ToProto() (*structpb.Value, error) {
	return toProtoValue(t.ToPlain())
}

func toProtoValue(v interface{}) (*structpb.Value, error) {
	m, ok := v.(Map)
	if !ok {
		pv, err := structpb.NewValue(v)
		if err != nil {
			return nil, fmt.Errorf("convert %T: %w", v, err)
		}
		return pv, nil
	}
	if values, ok := m.listed(); ok {
		list := &structpb.ListValue{Values: make([]*structpb.Value, len(values))}
		for i, elem := range values {
			pv, err := toProtoValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list.Values[i] = pv
		}
		return structpb.NewListValue(list), nil
	}
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(m))}
	for _, item := range m {
		pv, err := toProtoValue(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", item.Key, err)
		}
		s.Fields[item.Key] = pv
	}
	return structpb.NewStructValue(s), nil
}

// FromProto builds a tree from a protobuf Struct or ListValue. Struct
// fields are absorbed in sorted order; whole numbers become int.
func FromProto(v *structpb.Value, opts *Options) (*Tree, error) {
	data := fromProtoValue(v)
	switch data.(type) {
	case Map, []interface{}:
	default:
		return nil, fmt.Errorf("%w: top-level protobuf value must be a struct or list, got %T", ErrInvalidArgument, data)
	}
	return FromMap(data, opts)
}

func fromProtoValue(v *structpb.Value) interface{} {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m := make(Map, len(keys))
		for i, key := range keys {
			m[i] = Item{key, fromProtoValue(fields[key])}
		}
		return m
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		out := make([]interface{}, len(values))
		for i, elem := range values {
			out[i] = fromProtoValue(elem)
		}
		return out
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return int(f)
		}
		return f
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_BoolValue:
		return k.BoolValue
	}
	return nil
}
