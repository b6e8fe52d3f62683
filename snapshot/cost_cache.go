package snapshot

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

type costCache struct {
	c *ristretto.Cache[string, []byte]
}

// NewCostCache creates a Cache bounded by the total size of the encoded
// snapshots it holds rather than by their number. Admission is
// probabilistic, so an added snapshot may not be retained.
func NewCostCache(maxBytes int64) (Cache, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("cost cache needs a positive size, got %d", maxBytes)
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 10 * (maxBytes/1024 + 1),
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return costCache{c}, nil
}

func (c costCache) Add(link string, encoded []byte) {
	c.c.Set(link, encoded, int64(len(encoded)))
	c.c.Wait()
}

func (c costCache) Contains(link string) bool {
	_, ok := c.c.Get(link)
	return ok
}

func (c costCache) Get(link string) ([]byte, bool) {
	return c.c.Get(link)
}
