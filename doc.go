/*
Package paramtree provides a hierarchical, path-addressable value store:
an in-memory tree whose leaves hold scalar values and whose branches are
themselves trees, navigable with separator-delimited composite keys like
"server.tls.port".  It lets configuration-shaped data be read and written
without walking nested maps by hand, and exported back to plain nested
data, JSON, YAML or protobuf.

Uses

- Layered application settings addressed by dotted keys

- Normalizing nested documents into a stable, content-hashable form

- Bracket-style access (Index) for code ported from dynamic languages


Keys

A composite key is split on the first occurrence of the tree's separator
(default "."); the left part addresses an entry of the current node and
the remainder is resolved by the child branch.  There is no escaping, so
a segment can never contain the separator.  The separator is fixed when
the tree is created and shared by every branch beneath it.

Branch protection

Set refuses to replace an existing branch with a scalar and returns
ErrValueExists; SetForce performs the write anyway, dropping the subtree.  Replacing one scalar with another is always
allowed, and intermediate segments of a composite key are turned into
branches as needed regardless of what they held before.

Serialization

ToPlain exports a tree as an ordered Map.  When a level's keys are
exactly "0".."n-1", JSON, YAML and protobuf encodings render that level
as a list instead of an object, so trees built from arrays come back out
as arrays.

Concurrency

A Tree is not safe for concurrent mutation.  Callers sharing a tree
between goroutines must hold a lock around every call.
*/
package paramtree
