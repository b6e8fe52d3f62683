package snapshot

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/jrhy/paramtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func testTree(t *testing.T) *paramtree.Tree {
	t.Helper()
	tree, err := paramtree.FromMap(paramtree.Map{
		{Key: "test1", Value: false},
		{Key: "key2", Value: paramtree.Map{
			{Key: "subkey1", Value: 45},
			{Key: "subkey4", Value: 33},
			{Key: "branch", Value: paramtree.Map{
				{Key: "subsub1", Value: "Test"},
				{Key: "1", Value: "Numeric"},
			}},
		}},
	}, nil)
	require.NoError(t, err)
	return tree
}

type countingStore struct {
	Persist
	stores, loads int
}

func (cs *countingStore) Store(ctx context.Context, name string, b []byte) error {
	cs.stores++
	return cs.Persist.Store(ctx, name, b)
}

func (cs *countingStore) Load(ctx context.Context, name string) ([]byte, error) {
	cs.loads++
	return cs.Persist.Load(ctx, name)
}

func TestSaveLoad(t *testing.T) {
	for _, codec := range []*Codec{&JSONCodec, &YAMLCodec, &ProtoCodec} {
		codec := codec
		t.Run(codec.Name, func(t *testing.T) {
			tree := testTree(t)
			config := &Config{StoreWith: NewInMemoryStore(), Codec: codec}
			root, err := Save(ctx, config, tree)
			require.NoError(t, err)
			assert.Equal(t, 7, root.Count)
			assert.Equal(t, ".", root.Separator)

			loaded, err := root.Load(ctx, config)
			require.NoError(t, err)
			assert.Equal(t, 45, loaded.Get("key2.subkey1", nil))
			assert.Equal(t, "Numeric", loaded.Get("key2.branch.1", nil))
			assert.Equal(t, false, loaded.Get("test1", nil))
			assert.Equal(t, tree.Count(), loaded.Count())
		})
	}
}

func TestSameContentSameLink(t *testing.T) {
	config := &Config{StoreWith: NewInMemoryStore()}
	a, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	b, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	assert.Equal(t, a.Link, b.Link)

	other := testTree(t)
	require.NoError(t, other.Set("key2.subkey4", 34))
	c, err := Save(ctx, config, other)
	require.NoError(t, err)
	assert.NotEqual(t, a.Link, c.Link)
}

func TestCacheAvoidsStoreAndLoad(t *testing.T) {
	store := &countingStore{Persist: NewInMemoryStore()}
	cache, err := NewCache(10)
	require.NoError(t, err)
	config := &Config{StoreWith: store, Cache: cache}

	root, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	_, err = Save(ctx, config, testTree(t))
	require.NoError(t, err)
	assert.Equal(t, 1, store.stores)

	_, err = root.Load(ctx, config)
	require.NoError(t, err)
	assert.Equal(t, 0, store.loads)

	uncached := &Config{StoreWith: store}
	_, err = root.Load(ctx, uncached)
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads)
}

func TestLoadedTreeIsIndependentOfCache(t *testing.T) {
	cache, err := NewCache(10)
	require.NoError(t, err)
	config := &Config{StoreWith: NewInMemoryStore(), Cache: cache}
	root, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)

	first, err := root.Load(ctx, config)
	require.NoError(t, err)
	require.NoError(t, first.SetForce("key2", "gone"))

	second, err := root.Load(ctx, config)
	require.NoError(t, err)
	assert.Equal(t, 45, second.Get("key2.subkey1", nil))
}

func TestLoadDetectsTampering(t *testing.T) {
	store := NewInMemoryStore()
	config := &Config{StoreWith: store}
	root, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)

	forged := &Root{Link: link([]byte(`{"test1":true}`)), Count: root.Count}
	require.NoError(t, store.Store(ctx, forged.Link, []byte(`{"test1":false}`)))
	_, err = forged.Load(ctx, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content hashes to")
}

func TestLoadChecksCount(t *testing.T) {
	config := &Config{StoreWith: NewInMemoryStore()}
	root, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	root.Count++
	_, err = root.Load(ctx, config)
	require.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	config := &Config{StoreWith: NewInMemoryStore()}
	_, err := (&Root{Link: link([]byte("never stored"))}).Load(ctx, config)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRejectsMalformedLinks(t *testing.T) {
	store := &countingStore{Persist: NewInMemoryStore()}
	cache, err := NewCache(16)
	require.NoError(t, err)
	config := &Config{StoreWith: store, Cache: cache}
	root, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	require.Len(t, root.Link, 43)
	for _, bad := range []string{
		"",
		"missing",
		"../../etc/passwd",
		"/" + root.Link[1:],
		root.Link + "A",
		root.Link[:42] + "=",
		root.Link[:42] + "+",
	} {
		cache.Add(bad, []byte(`{}`))
		_, err := (&Root{Link: bad}).Load(ctx, config)
		require.ErrorIs(t, err, ErrInvalidLink, "%q", bad)
	}
	assert.Equal(t, 0, store.loads)
	assert.True(t, ValidLink(root.Link))
}

func TestSaveWithoutStore(t *testing.T) {
	_, err := Save(ctx, &Config{}, testTree(t))
	require.Error(t, err)
}

func TestCustomSeparatorSurvives(t *testing.T) {
	tree := paramtree.New(&paramtree.Options{Separator: "/"})
	require.NoError(t, tree.Set("a/b.c/d", 1))
	config := &Config{StoreWith: NewInMemoryStore()}
	root, err := Save(ctx, config, tree)
	require.NoError(t, err)
	assert.Equal(t, "/", root.Separator)

	loaded, err := root.Load(ctx, config)
	require.NoError(t, err)
	assert.Equal(t, "/", loaded.Separator())
	assert.Equal(t, 1, loaded.Get("a/b.c/d", nil))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	config := &Config{StoreWith: NewInMemoryStore(), Logger: logger}
	_, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stored snapshot")
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("proto")
	require.NoError(t, err)
	assert.Equal(t, "proto", c.Name)
	_, err = CodecByName("xml")
	require.Error(t, err)
}

func TestCostCache(t *testing.T) {
	_, err := NewCostCache(0)
	require.Error(t, err)

	cache, err := NewCostCache(1 << 20)
	require.NoError(t, err)
	store := &countingStore{Persist: NewInMemoryStore()}
	config := &Config{StoreWith: store, Cache: cache}

	root, err := Save(ctx, config, testTree(t))
	require.NoError(t, err)
	loaded, err := root.Load(ctx, config)
	require.NoError(t, err)
	assert.Equal(t, 45, loaded.Get("key2.subkey1", nil))
	// admission isn't guaranteed, but a miss must fall back to the store
	assert.LessOrEqual(t, store.loads, 1)
}
