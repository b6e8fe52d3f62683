package paramtree

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// slot holds exactly one of a scalar value or an owned child branch.
type slot struct {
	value  interface{}
	branch *Tree
}

func newTree(separator, path string) *Tree {
	return &Tree{
		slots:     map[string]slot{},
		separator: separator,
		path:      path,
	}
}

// put stores s at local, keeping local's position if it is already present.
func (t *Tree) put(local string, s slot) {
	if _, present := t.slots[local]; !present {
		t.keys = append(t.keys, local)
	}
	t.slots[local] = s
}

func (t *Tree) remove(local string) {
	if _, present := t.slots[local]; !present {
		return
	}
	delete(t.slots, local)
	for i, k := range t.keys {
		if k == local {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// branchFor returns the branch at local, first replacing anything else
// stored there with a new empty branch.
func (t *Tree) branchFor(local string) *Tree {
	if s, present := t.slots[local]; present && s.branch != nil {
		return s.branch
	}
	b := newTree(t.separator, joinKey(t.path, local, t.separator))
	t.put(local, slot{branch: b})
	return b
}

func (t *Tree) valuePath(local string) string {
	return joinKey(t.path, local, t.separator)
}

func (t *Tree) lookup(key string) (interface{}, bool) {
	local, remainder, descend := splitKey(key, t.separator)
	s, present := t.slots[local]
	if !present {
		return nil, false
	}
	if descend {
		if s.branch == nil {
			return nil, false
		}
		return s.branch.lookup(remainder)
	}
	if s.branch != nil {
		return s.branch.ToPlain(), true
	}
	return s.value, true
}

func (t *Tree) getBranch(key string) (*Tree, error) {
	local, remainder, descend := splitKey(key, t.separator)
	s, present := t.slots[local]
	if !present {
		return nil, fmt.Errorf("%w: %q does not exist under %q", ErrMissingValue, key, t.path)
	}
	if s.branch == nil {
		if s.value == nil {
			return nil, nil
		}
		if descend {
			return nil, fmt.Errorf("%w: %q does not exist under %q", ErrMissingValue, key, t.path)
		}
		return nil, fmt.Errorf("%w: %q is a value, not a branch, under %q", ErrMissingValue, key, t.path)
	}
	if descend {
		return s.branch.getBranch(remainder)
	}
	return s.branch, nil
}

func (t *Tree) set(key string, value interface{}, force bool) error {
	local, remainder, descend := splitKey(key, t.separator)
	if descend {
		return t.branchFor(local).set(remainder, value, force)
	}
	items, ok, err := containerItems(value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", t.valuePath(local), err)
	}
	if ok {
		if len(items) == 0 {
			t.branchFor(local)
			return nil
		}
		for _, item := range items {
			err := t.set(local+t.separator+item.Key, item.Value, force)
			if err != nil {
				return err
			}
		}
		return nil
	}
	if !isScalar(value) {
		return fmt.Errorf("%w: cannot store %T at %q, leaves must be strings, numbers, booleans or nil",
			ErrInvalidArgument, value, t.valuePath(local))
	}
	if s, present := t.slots[local]; present && s.branch != nil && !force {
		return fmt.Errorf("%w: tried to replace branch %q with a scalar without force",
			ErrValueExists, t.valuePath(local))
	}
	t.put(local, slot{value: value})
	return nil
}

func (t *Tree) delete(key string) {
	local, remainder, descend := splitKey(key, t.separator)
	if descend {
		if s, present := t.slots[local]; present && s.branch != nil {
			s.branch.delete(remainder)
		}
		return
	}
	t.remove(local)
}

func (t *Tree) hasKey(key string) bool {
	local, remainder, descend := splitKey(key, t.separator)
	s, present := t.slots[local]
	if !descend {
		return present
	}
	if !present || s.branch == nil {
		return false
	}
	return s.branch.hasKey(remainder)
}

func (t *Tree) find(value interface{}) (string, bool) {
	for _, k := range t.keys {
		s := t.slots[k]
		if s.branch == nil && strictEqual(s.value, value) {
			return t.valuePath(k), true
		}
	}
	for _, k := range t.keys {
		if b := t.slots[k].branch; b != nil {
			if path, found := b.find(value); found {
				return path, true
			}
		}
	}
	return "", false
}

func (t *Tree) walk(f func(path string, value interface{}) error) error {
	for _, k := range t.keys {
		s := t.slots[k]
		if s.branch != nil {
			if err := s.branch.walk(f); err != nil {
				return err
			}
			continue
		}
		if err := f(t.valuePath(k), s.value); err != nil {
			return err
		}
	}
	return nil
}

// strictEqual matches scalars of identical dynamic type and value. Values
// whose type can't be compared never match.
func strictEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// containerItems lists the entries of value if it is a nested container
// that Set should absorb rather than store as a leaf. Unordered maps are
// absorbed in sorted key order.
func containerItems(value interface{}) (Map, bool, error) {
	switch v := value.(type) {
	case nil, []byte, string:
		return nil, false, nil
	case Map:
		return v, true, nil
	case *Tree:
		if v == nil {
			return nil, false, nil
		}
		return v.ToPlain(), true, nil
	case []interface{}:
		items := make(Map, len(v))
		for i, elem := range v {
			items[i] = Item{strconv.Itoa(i), elem}
		}
		return items, true, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make(Map, len(keys))
		for i, k := range keys {
			items[i] = Item{k, v[k]}
		}
		return items, true, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make(Map, rv.Len())
		for i := range items {
			items[i] = Item{strconv.Itoa(i), rv.Index(i).Interface()}
		}
		return items, true, nil
	case reflect.Map:
		items, err := mapItems(rv)
		if err != nil {
			return nil, false, err
		}
		return items, true, nil
	}
	return nil, false, nil
}

func mapItems(rv reflect.Value) (Map, error) {
	keys := rv.MapKeys()
	switch rv.Type().Key().Kind() {
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	case reflect.Interface:
		return interfaceKeyedItems(rv, keys)
	default:
		return nil, fmt.Errorf("%w: unsupported map key type %s", ErrInvalidArgument, rv.Type().Key())
	}
	items := make(Map, len(keys))
	for i, k := range keys {
		items[i] = Item{fmt.Sprint(k.Interface()), rv.MapIndex(k).Interface()}
	}
	return items, nil
}

// interfaceKeyedItems handles maps such as map[interface{}]interface{}, as
// produced by YAML decoders. Each key must hold a scalar; entries are
// ordered by their string form.
func interfaceKeyedItems(rv reflect.Value, keys []reflect.Value) (Map, error) {
	items := make(Map, len(keys))
	for i, k := range keys {
		key := k.Interface()
		if key == nil || !isScalar(key) {
			return nil, fmt.Errorf("%w: unsupported map key %#v", ErrInvalidArgument, key)
		}
		items[i] = Item{fmt.Sprint(key), rv.MapIndex(k).Interface()}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// isScalar reports whether value can be stored as a leaf: nil, a bool, a
// number, a string or raw bytes.
func isScalar(value interface{}) bool {
	switch value.(type) {
	case nil, []byte:
		return true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
