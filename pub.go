package paramtree

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue is returned by GetBranch when a key doesn't resolve to a branch.
	ErrMissingValue = errors.New("missing value")
	// ErrValueExists is returned by Set when a scalar write would replace a branch.
	ErrValueExists = errors.New("value exists")
	// ErrTypeMismatch is returned by typed accessors when the stored value has the wrong shape.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidArgument is returned when a tree is configured with an unusable separator.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Options sets parameters for a tree that can't change once it has data.
type Options struct {
	// Separator delimits the segments of composite keys. "" means use DefaultSeparator.
	Separator string
}

// Tree is a node of a parameter tree: an ordered set of keys, each holding
// either a scalar value or a child branch. The zero value is not usable;
// create trees with New or FromMap.
type Tree struct {
	keys      []string
	slots     map[string]slot
	separator string
	path      string
}

// New returns an empty tree.
func New(opts *Options) *Tree {
	separator := DefaultSeparator
	if opts != nil && opts.Separator != "" {
		separator = opts.Separator
	}
	return newTree(separator, "")
}

// NewWithSeparator returns an empty tree whose composite keys are split on
// separator, which must not be empty.
func NewWithSeparator(separator string) (*Tree, error) {
	if separator == "" {
		return nil, fmt.Errorf("%w: empty separator", ErrInvalidArgument)
	}
	return New(&Options{Separator: separator}), nil
}

// FromMap returns a tree holding the entries of the given nested container
// (a Map, a map with string or integer keys, or a slice), absorbed with Set.
func FromMap(data interface{}, opts *Options) (*Tree, error) {
	t := New(opts)
	items, ok, err := containerItems(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot build a tree from %T", ErrInvalidArgument, data)
	}
	for _, item := range items {
		if err := t.Set(item.Key, item.Value); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Get returns the value stored at key, or def if there is none. Branches
// are returned as a Map export, never as a live *Tree.
func (t *Tree) Get(key string, def interface{}) interface{} {
	if v, ok := t.lookup(key); ok {
		return v
	}
	return def
}

// Lookup is like Get but reports whether key is present, so that a stored
// nil can be told apart from a missing key.
func (t *Tree) Lookup(key string) (interface{}, bool) {
	return t.lookup(key)
}

// GetBranch returns the live branch at key, through which the tree can be
// modified. A key holding an explicit nil returns (nil, nil). Anything else
// that isn't a branch yields an error wrapping ErrMissingValue.
func (t *Tree) GetBranch(key string) (*Tree, error) {
	return t.getBranch(key)
}

// Set stores value at key, creating branches for every intermediate
// segment. Nested containers are absorbed one leaf at a time. Replacing
// an existing branch with a scalar fails with ErrValueExists; see SetForce.
// Leaves that aren't nil, booleans, numbers, strings or []byte fail with
// ErrInvalidArgument.
func (t *Tree) Set(key string, value interface{}) error {
	return t.set(key, value, false)
}

// SetForce is like Set, but will replace an existing branch with a scalar.
func (t *Tree) SetForce(key string, value interface{}) error {
	return t.set(key, value, true)
}

// Delete removes the value or branch at key. Deleting a missing key is not an error.
func (t *Tree) Delete(key string) {
	t.delete(key)
}

// HasKey reports whether key is present, even if it holds nil.
func (t *Tree) HasKey(key string) bool {
	return t.hasKey(key)
}

// Find returns the absolute path of the first scalar equal in type and
// value to the given one. Leaves of a branch are searched before its
// children.
func (t *Tree) Find(value interface{}) (string, bool) {
	return t.find(value)
}

// Keys returns the absolute paths of every leaf beneath this branch,
// depth first, in insertion order.
func (t *Tree) Keys() []string {
	keys := []string{}
	_ = t.walk(func(path string, _ interface{}) error {
		keys = append(keys, path)
		return nil
	})
	return keys
}

// Walk invokes f with the absolute path and value of every leaf, in Keys
// order, stopping at the first error.
func (t *Tree) Walk(f func(path string, value interface{}) error) error {
	return t.walk(f)
}

// Count returns the number of entries on or below this branch. Branch
// entries count once themselves, plus whatever they contain.
func (t *Tree) Count() int {
	total := len(t.keys)
	for _, k := range t.keys {
		if b := t.slots[k].branch; b != nil {
			total += b.Count()
		}
	}
	return total
}

// Len returns the number of entries directly on this branch.
func (t *Tree) Len() int {
	return len(t.keys)
}

// Path returns the absolute key of this branch; the root's is "".
func (t *Tree) Path() string {
	return t.path
}

// Separator returns the separator shared by every branch of the tree.
func (t *Tree) Separator() string {
	return t.separator
}
