package paramtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// MarshalJSON encodes the tree as JSON. Levels whose keys are exactly
// "0".."n-1" become arrays; all others become objects in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return t.ToPlain().MarshalJSON()
}

// MarshalJSON encodes m with the same list-or-object rule as Tree.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v interface{}) error {
	m, ok := v.(Map)
	if !ok {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %T: %w", v, err)
		}
		buf.Write(b)
		return nil
	}
	if values, ok := m.listed(); ok {
		buf.WriteByte('[')
		for i, elem := range values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	buf.WriteByte('{')
	for i, item := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := appendJSON(buf, item.Value); err != nil {
			return fmt.Errorf("%s: %w", item.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// FromJSON builds a tree from a JSON object or array, keeping the order
// of object keys. Integral numbers that fit an int are stored as int,
// other numbers as float64.
func FromJSON(data []byte, opts *Options) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: trailing data after top-level value")
	}
	switch v.(type) {
	case Map, []interface{}:
	default:
		return nil, fmt.Errorf("%w: top-level JSON value must be an object or array, got %T", ErrInvalidArgument, v)
	}
	return FromMap(v, opts)
}

func decodeJSON(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			m := Map{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				m = append(m, Item{key, value})
			}
			_, err = dec.Token()
			return m, err
		case '[':
			list := []interface{}{}
			for dec.More() {
				value, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("[%d]: %w", len(list), err)
				}
				list = append(list, value)
			}
			_, err = dec.Token()
			return list, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", tok)
	case json.Number:
		return normalizeNumber(string(tok))
	default:
		return tok, nil
	}
}

func normalizeNumber(s string) (interface{}, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && i >= math.MinInt && i <= math.MaxInt {
		return int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("number %q: %w", s, err)
	}
	return f, nil
}
