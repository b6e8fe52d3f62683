package paramtree

// Item is one key and value of a Map.
type Item struct {
	Key   string
	Value interface{}
}

// Map is the plain, ordered export of a tree. Values are scalars or
// nested Maps.
type Map []Item

// ToPlain exports the branch as nested Maps, preserving key order.
func (t *Tree) ToPlain() Map {
	m := make(Map, 0, len(t.keys))
	for _, k := range t.keys {
		s := t.slots[k]
		if s.branch != nil {
			m = append(m, Item{k, s.branch.ToPlain()})
		} else {
			m = append(m, Item{k, s.value})
		}
	}
	return m
}

// Get returns the value of the item with the given key.
func (m Map) Get(key string) (interface{}, bool) {
	for _, item := range m {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys of m in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, item := range m {
		keys[i] = item.Key
	}
	return keys
}

// ToMap converts m, and every Map nested in it, to a builtin map. Order is lost.
func (m Map) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for _, item := range m {
		if sub, ok := item.Value.(Map); ok {
			out[item.Key] = sub.ToMap()
		} else {
			out[item.Key] = item.Value
		}
	}
	return out
}

// listed returns m's values in index order if m's keys are exactly
// "0".."n-1", which is how every encoder decides between list and object.
func (m Map) listed() ([]interface{}, bool) {
	if !isList(m.Keys()) {
		return nil, false
	}
	values := make([]interface{}, len(m))
	for _, item := range m {
		i, _ := listIndex(item.Key)
		values[i] = item.Value
	}
	return values, true
}
