package snapshot

import lru "github.com/hashicorp/golang-lru"

// Cache remembers encoded snapshots by link. It is also used to avoid
// re-storing snapshots, so care should be taken to switch/invalidate
// the Cache when the Persist is changed.
type Cache interface {
	// Add adds a freshly stored or loaded snapshot to the cache.
	Add(link string, encoded []byte)
	// Contains indicates the snapshot with the given link has already been persisted.
	Contains(link string) bool
	// Get retrieves the encoded snapshot with the given link, if cached.
	Get(link string) ([]byte, bool)
}

type arcCache struct {
	arc *lru.ARCCache
}

// NewCache creates a new ARC-based cache holding up to size snapshots.
// One cache can be shared by any number of configs.
func NewCache(size int) (Cache, error) {
	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return arcCache{arc}, nil
}

func (c arcCache) Add(link string, encoded []byte) {
	c.arc.Add(link, encoded)
}

func (c arcCache) Contains(link string) bool {
	return c.arc.Contains(link)
}

func (c arcCache) Get(link string) ([]byte, bool) {
	v, ok := c.arc.Get(link)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}
