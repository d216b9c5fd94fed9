// Package errs collects the codec's hard/soft error taxonomy.
//
// Hard errors abort a decode; they are sentinel errors suitable for
// errors.Is. Soft errors are recovered locally — the offending record is
// skipped and decoding continues — and are reported as typed values
// collected into a Diagnostics accumulator rather than returned as the
// call's error.
package errs

import (
	"errors"
	"fmt"
)

// Hard errors: decode aborts, error surfaced to the caller.
var (
	ErrBadMagic           = errors.New("lsf: bad magic, expected \"LSOF\"")
	ErrUnsupportedVersion = errors.New("lsf: unsupported version")
	ErrTruncatedChunk     = errors.New("lsf: truncated chunk")
	ErrCorruptChunk       = errors.New("lsf: corrupt chunk")
	ErrInvalidStringTable = errors.New("lsf: invalid string table")
	ErrInvalidHeaderSize  = errors.New("lsf: invalid header size")
	ErrInvalidIndexEntry  = errors.New("lsf: invalid index entry")
)

// UnknownAttributeTypeError reports an attribute record whose type id is
// outside the [0,33] catalog. AttrIndex is the flat attribute record
// index; attribute payloads are decoded in a pre-pass before node
// association, so no node index is available yet when this is raised.
type UnknownAttributeTypeError struct {
	AttrIndex int
	TypeID    uint8
}

func (e *UnknownAttributeTypeError) Error() string {
	return fmt.Sprintf("lsf: attribute record %d: unknown attribute type id %d", e.AttrIndex, e.TypeID)
}

// OutOfRangeIndexError reports a record index (parent, sibling, attribute,
// or string reference) outside the bounds of its target array.
type OutOfRangeIndexError struct {
	Context string
	Index   int
	Limit   int
}

func (e *OutOfRangeIndexError) Error() string {
	return fmt.Sprintf("lsf: %s: index %d out of range [0,%d)", e.Context, e.Index, e.Limit)
}

// CycleDetectedError reports a sibling or attribute chain that revisits an
// index it has already walked.
type CycleDetectedError struct {
	Context    string
	StartIndex int
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("lsf: %s: cycle detected starting at index %d", e.Context, e.StartIndex)
}

// AttributeTooLargeError reports an attribute payload beyond the 1 MiB
// safety cap (spec: "the attribute is skipped"). AttrIndex is the flat
// attribute record index, for the same reason as UnknownAttributeTypeError.
type AttributeTooLargeError struct {
	AttrIndex int
	Length    uint32
}

func (e *AttributeTooLargeError) Error() string {
	return fmt.Sprintf("lsf: attribute record %d: payload length %d exceeds 1 MiB cap", e.AttrIndex, e.Length)
}

// DuplicateRegionNameError reports a second root node resolving to a region
// name already seen; the later region is dropped rather than aborting the
// whole decode, since every other region remains reconstructible.
type DuplicateRegionNameError struct {
	Name string
}

func (e *DuplicateRegionNameError) Error() string {
	return fmt.Sprintf("lsf: duplicate region name %q", e.Name)
}

// UnresolvedStringReferenceError reports a packed string id that does not
// resolve to a string in the table; the caller falls back to a synthetic
// name (attr_0x.../node_0x...).
type UnresolvedStringReferenceError struct {
	Context string
	Ref     uint32
}

func (e *UnresolvedStringReferenceError) Error() string {
	return fmt.Sprintf("lsf: %s: unresolved string reference 0x%08x", e.Context, e.Ref)
}

// Diagnostics accumulates soft errors encountered while decoding a file.
// A non-empty Diagnostics does not mean the decode failed: the returned
// Resource is still the best-effort reconstruction with offending records
// skipped or synthesized.
type Diagnostics struct {
	Items []error
}

// Add appends err to the diagnostics list.
func (d *Diagnostics) Add(err error) {
	d.Items = append(d.Items, err)
}

// Empty reports whether no soft errors were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.Items) == 0
}

func (d *Diagnostics) Error() string {
	if d.Empty() {
		return ""
	}

	msg := fmt.Sprintf("%d diagnostic(s):", len(d.Items))
	for _, item := range d.Items {
		msg += "\n  - " + item.Error()
	}

	return msg
}
