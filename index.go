package paramtree

// Indexer is bracket-style access to a tree, for callers that treat it
// like a map keyed by composite keys.
type Indexer interface {
	Get(key string) interface{}
	Exists(key string) bool
	Set(key string, value interface{}) error
	Unset(key string)
}

// Index adapts a Tree to Indexer.
type Index struct {
	t *Tree
}

var _ Indexer = Index{}

// Index returns an Indexer over t.
func (t *Tree) Index() Index {
	return Index{t}
}

// Get returns the value at key, or nil.
func (ix Index) Get(key string) interface{} {
	return ix.t.Get(key, nil)
}

// Exists is HasKey.
func (ix Index) Exists(key string) bool {
	return ix.t.HasKey(key)
}

// Set is an unforced Tree.Set.
func (ix Index) Set(key string, value interface{}) error {
	return ix.t.Set(key, value)
}

// Unset is Delete.
func (ix Index) Unset(key string) {
	ix.t.Delete(key)
}
