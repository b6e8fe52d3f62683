package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is wrapped by Persist implementations when no snapshot has the requested name.
var ErrNotFound = errors.New("snapshot not found")

type inMemoryStore struct {
	entries map[string][]byte
	l       sync.Mutex
}

// NewInMemoryStore provides a Persist that keeps snapshots in a map, usually for testing.
func NewInMemoryStore() Persist {
	return &inMemoryStore{entries: map[string][]byte{}}
}

func (ims *inMemoryStore) Store(ctx context.Context, name string, b []byte) error {
	ims.l.Lock()
	defer ims.l.Unlock()
	if _, present := ims.entries[name]; !present {
		ims.entries[name] = append([]byte(nil), b...)
	}
	return nil
}

func (ims *inMemoryStore) Load(ctx context.Context, name string) ([]byte, error) {
	ims.l.Lock()
	defer ims.l.Unlock()
	b, ok := ims.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return append([]byte(nil), b...), nil
}
