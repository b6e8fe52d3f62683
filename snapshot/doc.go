/*
Package snapshot persists immutable, content-addressed copies of a
paramtree.Tree.  A snapshot is encoded with a Codec, named by the
BLAKE2b-256 hash of its encoding, and handed to a Persist, which can be
anything that stores bytes by name: a map, a directory, an S3 bucket or
a SQLite table (see the persist packages).  The returned Root is all that
is needed to load the tree again.

Because names are derived from content, storing the same tree twice is
a no-op, and a Cache shared between trees avoids re-storing or
re-fetching snapshots that were seen already.
*/
package snapshot
