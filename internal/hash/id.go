// Package hash provides the string-to-bucket hash the string table uses
// to place newly interned strings (stringtable.Table.Intern). It has no
// bearing on the wire format: a decoded packed string id already carries
// an explicit (bucket, chain) pair, so a reader never recomputes this hash.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns a fast, non-cryptographic 64-bit hash of s.
func ID(s string) uint64 {
	return xxhash.Sum64String(s)
}
