package paramtree

import (
	"encoding/base64"
	"fmt"

	"github.com/minio/blake2b-simd"
)

// Hash returns a content hash of the tree: BLAKE2b-256 over its JSON
// encoding, in unpadded base64url. Trees with the same keys, order and
// values hash the same regardless of how they were built.
func (t *Tree) Hash() (string, error) {
	encoded, err := t.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	hashBytes := blake2b.Sum256(encoded)
	return base64.RawURLEncoding.EncodeToString(hashBytes[:]), nil
}
