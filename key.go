package paramtree

import (
	"strconv"
	"strings"
)

// DefaultSeparator joins the segments of a composite key unless Options says otherwise.
const DefaultSeparator = "."

// splitKey slices a composite key into the segment addressed on the current
// branch and the remainder to be resolved further down. ok is false when the
// key has no separator at all; an empty remainder is still a remainder.
func splitKey(key, separator string) (local, remainder string, ok bool) {
	return strings.Cut(key, separator)
}

// joinKey returns the absolute path of local beneath the branch at path.
func joinKey(path, local, separator string) string {
	if path == "" {
		return local
	}
	return path + separator + local
}

// listIndex reports whether key is the canonical decimal form of a
// non-negative integer, as produced by strconv.Itoa.
func listIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isList reports whether keys are exactly the set {"0", ..., "n-1"}, in any order.
func isList(keys []string) bool {
	seen := make([]bool, len(keys))
	for _, k := range keys {
		i, ok := listIndex(k)
		if !ok || i >= len(keys) || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
