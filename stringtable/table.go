// Package stringtable implements the LSF string pool: the Strings chunk
// that backs every node and attribute name reference in the binary form.
//
// On the wire a string is addressed by a packed 32-bit id whose upper 16
// bits are a bucket index and lower 16 bits are a chain index within that
// bucket (spec.md §4.2). This package always writes the canonical
// 0x200-bucket hashed layout, and reads both that layout and the
// degenerate flat layout some inputs use, normalizing the latter into
// bucket-0 chain positions so every other package only ever deals with
// the canonical (bucket, chain) addressing.
package stringtable

import (
	"fmt"
	"unicode/utf8"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/internal/hash"
)

// BucketCount is the canonical bucket count written by this implementation
// and the count the flat layout is normalized onto. A hashed table keeps
// the bucket count it was read with.
const BucketCount = 0x200

// Absent is the packed id meaning "no string".
const Absent uint32 = 0xFFFFFFFF

// PackID combines a bucket index and a chain index into a packed string id.
func PackID(bucket, chain uint16) uint32 {
	return uint32(bucket)<<16 | uint32(chain)
}

// UnpackID splits a packed string id into its bucket and chain indices.
// Callers must check id != Absent first.
func UnpackID(id uint32) (bucket, chain uint16) {
	return uint16(id >> 16), uint16(id & 0xFFFF) //nolint:gosec
}

// Table is the decoded (or in-progress, for writers) string pool, resolved
// into the canonical bucket/chain addressing regardless of the wire layout
// it was read from.
type Table struct {
	buckets [][]string // buckets[b] is the chain of strings in bucket b, in chain order
}

// New returns an empty table with the canonical bucket count.
func New() *Table {
	return &Table{buckets: make([][]string, BucketCount)}
}

// String resolves a packed id to its string. ok is false for Absent, for
// an out-of-range bucket, or for a chain index beyond that bucket's length.
func (t *Table) String(id uint32) (s string, ok bool) {
	if id == Absent {
		return "", false
	}

	bucket, chain := UnpackID(id)
	if int(bucket) >= len(t.buckets) {
		return "", false
	}

	chainEntries := t.buckets[bucket]
	if int(chain) >= len(chainEntries) {
		return "", false
	}

	return chainEntries[chain], true
}

// Intern adds s to the table if it is not already present (by exact
// bucket-scan match) and returns its packed id. Placement uses the domain
// hash of s modulo BucketCount; ids are stable across repeated Intern calls
// for the same string.
func (t *Table) Intern(s string) uint32 {
	bucket := uint16(hash.ID(s) % BucketCount) //nolint:gosec

	for i, existing := range t.buckets[bucket] {
		if existing == s {
			return PackID(bucket, uint16(i)) //nolint:gosec
		}
	}

	t.buckets[bucket] = append(t.buckets[bucket], s)

	return PackID(bucket, uint16(len(t.buckets[bucket])-1)) //nolint:gosec
}

// Encode serializes the table into the canonical hashed layout (spec.md
// §4.2): a u32 bucket_count, then per bucket a u16 chain_length followed
// by chain_length [u16 byte_length][bytes] entries.
func Encode(t *Table, engine endian.EndianEngine) ([]byte, error) {
	size := 4
	for _, chainEntries := range t.buckets {
		size += 2
		for _, s := range chainEntries {
			if len(s) > 0xFFFF {
				return nil, fmt.Errorf("stringtable: string length %d exceeds uint16", len(s))
			}
			size += 2 + len(s)
		}
	}

	buf := make([]byte, size)
	off := 0
	engine.PutUint32(buf[off:], uint32(len(t.buckets))) //nolint:gosec
	off += 4

	for _, chainEntries := range t.buckets {
		engine.PutUint16(buf[off:], uint16(len(chainEntries))) //nolint:gosec
		off += 2

		for _, s := range chainEntries {
			engine.PutUint16(buf[off:], uint16(len(s))) //nolint:gosec
			off += 2
			off += copy(buf[off:], s)
		}
	}

	return buf, nil
}

// Decode parses a Strings chunk, accepting both the canonical hashed
// layout and the degenerate bucket_count==0 flat layout (spec.md §4.2).
func Decode(data []byte, engine endian.EndianEngine) (*Table, error) {
	if len(data) == 0 {
		return New(), nil
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated bucket_count", errs.ErrInvalidStringTable)
	}

	bucketCount := engine.Uint32(data[:4])
	rest := data[4:]

	if bucketCount == 0 {
		return decodeFlat(rest, engine)
	}

	return decodeHashed(bucketCount, rest, engine)
}

func decodeHashed(bucketCount uint32, data []byte, engine endian.EndianEngine) (*Table, error) {
	t := &Table{buckets: make([][]string, bucketCount)}

	off := 0
	for b := uint32(0); b < bucketCount; b++ {
		if off+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated chain length for bucket %d", errs.ErrInvalidStringTable, b)
		}

		chainLen := int(engine.Uint16(data[off:]))
		off += 2

		chainEntries := make([]string, 0, chainLen)
		for i := 0; i < chainLen; i++ {
			if off+2 > len(data) {
				return nil, fmt.Errorf("%w: truncated string length in bucket %d", errs.ErrInvalidStringTable, b)
			}
			strLen := int(engine.Uint16(data[off:]))
			off += 2

			if off+strLen > len(data) {
				return nil, fmt.Errorf("%w: truncated string bytes in bucket %d", errs.ErrInvalidStringTable, b)
			}

			raw := data[off : off+strLen]
			if !utf8.Valid(raw) {
				return nil, fmt.Errorf("%w: invalid UTF-8 string in bucket %d", errs.ErrInvalidStringTable, b)
			}

			chainEntries = append(chainEntries, string(raw))
			off += strLen
		}

		t.buckets[b] = chainEntries
	}

	return t, nil
}

// decodeFlat parses the degenerate positional layout: a flat sequence of
// [u8 flag=1][u8 pad][u16 length][bytes] records, addressed by positional
// index. Those positional ids are mapped into bucket-0 chain positions of
// a synthesized canonical-sized table (spec.md §4.2).
func decodeFlat(data []byte, engine endian.EndianEngine) (*Table, error) {
	t := New()

	off := 0
	for off < len(data) {
		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated flat string record", errs.ErrInvalidStringTable)
		}

		flag := data[off]
		// pad byte at off+1 is ignored
		length := int(engine.Uint16(data[off+2:]))
		off += 4

		if flag != 1 {
			return nil, fmt.Errorf("%w: unexpected flat string record flag %d", errs.ErrInvalidStringTable, flag)
		}
		if off+length > len(data) {
			return nil, fmt.Errorf("%w: truncated flat string bytes", errs.ErrInvalidStringTable)
		}

		raw := data[off : off+length]
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("%w: invalid UTF-8 in flat string record", errs.ErrInvalidStringTable)
		}

		t.buckets[0] = append(t.buckets[0], string(raw))
		off += length
	}

	return t, nil
}
