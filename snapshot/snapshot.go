package snapshot

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jrhy/paramtree"
	"github.com/minio/blake2b-simd"
)

// Persist is the interface for loading and storing encoded snapshots. The given string identity corresponds to the content which is immutable (never modified).
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(context.Context, string, []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(context.Context, string) ([]byte, error)
}

// Config controls how snapshots are encoded, persisted and loaded.
type Config struct {
	// StoreWith is used to store and load encoded snapshots.
	StoreWith Persist

	// Codec encodes and decodes trees; nil means JSONCodec.
	Codec *Codec

	// Options are used when decoding a loaded tree.
	Options *paramtree.Options

	// Cache remembers snapshots already stored or loaded, and may be shared across configs using the same StoreWith.
	Cache Cache

	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// Root identifies a snapshot accessible in the persistent store.
type Root struct {
	Link      string
	Count     int
	Separator string
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (c *Config) codec() *Codec {
	if c.Codec == nil {
		return &JSONCodec
	}
	return c.Codec
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return discard
	}
	return c.Logger
}

func link(encoded []byte) string {
	hashBytes := blake2b.Sum256(encoded)
	return base64.RawURLEncoding.EncodeToString(hashBytes[:])
}

// ErrInvalidLink is returned when a link couldn't have been produced by Save.
var ErrInvalidLink = errors.New("invalid snapshot link")

// ValidLink reports whether name has the form of a snapshot link: an
// unpadded base64url encoding of a 32-byte hash.
func ValidLink(name string) bool {
	if len(name) != base64.RawURLEncoding.EncodedLen(linkHashSize) {
		return false
	}
	b, err := base64.RawURLEncoding.DecodeString(name)
	return err == nil && len(b) == linkHashSize
}

const linkHashSize = 32

// Save encodes the tree and stores it under the hash of its encoding,
// unless the cache shows it was stored already.
func Save(ctx context.Context, config *Config, t *paramtree.Tree) (*Root, error) {
	if config.StoreWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set Config.StoreWith")
	}
	encoded, err := config.codec().Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	name := link(encoded)
	root := &Root{Link: name, Count: t.Count(), Separator: t.Separator()}
	if config.Cache != nil && config.Cache.Contains(name) {
		config.logger().DebugContext(ctx, "snapshot already stored", "link", name)
		return root, nil
	}
	err = config.StoreWith.Store(ctx, name, encoded)
	if err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	if config.Cache != nil {
		config.Cache.Add(name, encoded)
	}
	config.logger().DebugContext(ctx, "stored snapshot", "link", name, "bytes", len(encoded), "count", root.Count)
	return root, nil
}

// Load retrieves and decodes the snapshot, checking that its content
// still matches its name and that it holds the expected number of entries.
func (r *Root) Load(ctx context.Context, config *Config) (*paramtree.Tree, error) {
	encoded, err := r.load(ctx, config)
	if err != nil {
		return nil, err
	}
	opts := config.Options
	if r.Separator != "" {
		opts = &paramtree.Options{Separator: r.Separator}
	}
	t, err := config.codec().Unmarshal(encoded, opts)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", r.Link, err)
	}
	if t.Count() != r.Count {
		return nil, fmt.Errorf("snapshot %s has %d entries, expected %d", r.Link, t.Count(), r.Count)
	}
	return t, nil
}

func (r *Root) load(ctx context.Context, config *Config) ([]byte, error) {
	if !ValidLink(r.Link) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLink, r.Link)
	}
	if config.Cache != nil {
		if cached, ok := config.Cache.Get(r.Link); ok {
			config.logger().DebugContext(ctx, "snapshot cache hit", "link", r.Link)
			return cached, nil
		}
	}
	if config.StoreWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set Config.StoreWith")
	}
	encoded, err := config.StoreWith.Load(ctx, r.Link)
	if err != nil {
		return nil, fmt.Errorf("persist load %s: %w", r.Link, err)
	}
	if actual := link(encoded); actual != r.Link {
		return nil, fmt.Errorf("persist load %s: content hashes to %s", r.Link, actual)
	}
	if config.Cache != nil {
		config.Cache.Add(r.Link, encoded)
	}
	config.logger().DebugContext(ctx, "loaded snapshot", "link", r.Link, "bytes", len(encoded))
	return encoded, nil
}
