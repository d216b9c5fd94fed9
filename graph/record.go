// Package graph implements the node and attribute record arrays: the
// linked-list graph in which sibling chains and attribute chains are
// expressed as absolute indices into flat record arrays (spec.md §4.5).
package graph

import (
	"fmt"

	"github.com/ls-go/lsf/endian"
)

// NoIndex is the sentinel meaning "none" for parent, sibling, and
// attribute-chain links.
const NoIndex int32 = -1

// NodeRecordSizeV3 is the v3+ node record size in bytes.
const NodeRecordSizeV3 = 16

// NodeRecordSizePreV3 is the pre-v3 node record size in bytes (omits
// NextSiblingIdx, which is imputed as NoIndex).
const NodeRecordSizePreV3 = 12

// NodeRecord is a single node's flat-array entry.
//
// NameID: Offset 0, Size 4 — packed string table reference.
// ParentIdx: Offset 4, Size 4 — index of the owning node, or NoIndex for a region root.
// NextSiblingIdx: Offset 8, Size 4 — index of the next sibling, or NoIndex. Always NoIndex pre-v3.
// FirstAttributeIdx: Offset 12, Size 4 — index of the first attribute in this node's chain, or NoIndex.
type NodeRecord struct {
	NameID            uint32
	ParentIdx         int32
	NextSiblingIdx    int32
	FirstAttributeIdx int32
}

// Bytes encodes r as a v3+ (16-byte) record.
func (r *NodeRecord) Bytes(engine endian.EndianEngine) []byte {
	var b [NodeRecordSizeV3]byte
	engine.PutUint32(b[0:4], r.NameID)
	engine.PutUint32(b[4:8], uint32(r.ParentIdx))         //nolint:gosec
	engine.PutUint32(b[8:12], uint32(r.NextSiblingIdx))   //nolint:gosec
	engine.PutUint32(b[12:16], uint32(r.FirstAttributeIdx)) //nolint:gosec

	return b[:]
}

// WriteToSlice writes r's v3+ (16-byte) encoding into data at offset and
// returns the next write position.
func (r *NodeRecord) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint32(data[offset:offset+4], r.NameID)
	engine.PutUint32(data[offset+4:offset+8], uint32(r.ParentIdx))          //nolint:gosec
	engine.PutUint32(data[offset+8:offset+12], uint32(r.NextSiblingIdx))    //nolint:gosec
	engine.PutUint32(data[offset+12:offset+16], uint32(r.FirstAttributeIdx)) //nolint:gosec

	return offset + NodeRecordSizeV3
}

// ParseNodeRecord decodes one node record from data, honoring the pre-v3
// (12-byte, no NextSiblingIdx) or v3+ (16-byte) layout per v3OrLater.
func ParseNodeRecord(data []byte, v3OrLater bool, engine endian.EndianEngine) (NodeRecord, error) {
	if v3OrLater {
		if len(data) < NodeRecordSizeV3 {
			return NodeRecord{}, fmt.Errorf("graph: node record: need %d bytes, got %d", NodeRecordSizeV3, len(data))
		}

		return NodeRecord{
			NameID:            engine.Uint32(data[0:4]),
			ParentIdx:         int32(engine.Uint32(data[4:8])),  //nolint:gosec
			NextSiblingIdx:    int32(engine.Uint32(data[8:12])), //nolint:gosec
			FirstAttributeIdx: int32(engine.Uint32(data[12:16])), //nolint:gosec
		}, nil
	}

	if len(data) < NodeRecordSizePreV3 {
		return NodeRecord{}, fmt.Errorf("graph: node record: need %d bytes, got %d", NodeRecordSizePreV3, len(data))
	}

	return NodeRecord{
		NameID:            engine.Uint32(data[0:4]),
		ParentIdx:         int32(engine.Uint32(data[4:8])), //nolint:gosec
		NextSiblingIdx:    NoIndex,
		FirstAttributeIdx: int32(engine.Uint32(data[8:12])), //nolint:gosec
	}, nil
}

// AttributeRecordSizeV3 is the v3+ attribute record size in bytes.
const AttributeRecordSizeV3 = 16

// AttributeRecordSizePreV3 is the pre-v3 attribute record size in bytes
// (omits ValueOffset; payloads are consumed sequentially instead).
const AttributeRecordSizePreV3 = 12

const (
	attributeTypeBits = 6
	attributeTypeMask = 1<<attributeTypeBits - 1
)

// AttributeRecord is a single attribute's flat-array entry.
//
// NameID: Offset 0, Size 4 — packed string table reference.
// TypeAndLength: Offset 4, Size 4 — 6-bit type id in the low bits, 26-bit declared length in the high bits.
// NextAttributeIdx: Offset 8, Size 4 — index of the next attribute in this node's chain, or NoIndex.
// ValueOffset: Offset 12, Size 4 — byte offset into the values blob. Unused (computed via running cursor) pre-v3.
type AttributeRecord struct {
	NameID           uint32
	TypeAndLength    uint32
	NextAttributeIdx int32
	ValueOffset      uint32
}

// TypeID unpacks the 6-bit type id from TypeAndLength.
func (r *AttributeRecord) TypeID() uint8 {
	return uint8(r.TypeAndLength & attributeTypeMask) //nolint:gosec
}

// Length unpacks the 26-bit declared payload length from TypeAndLength.
func (r *AttributeRecord) Length() uint32 {
	return r.TypeAndLength >> attributeTypeBits
}

// PackTypeAndLength combines a type id and declared length into the wire
// field. length is truncated to 26 bits.
func PackTypeAndLength(typeID uint8, length uint32) uint32 {
	return uint32(typeID&attributeTypeMask) | (length << attributeTypeBits)
}

// Bytes encodes r as a v3+ (16-byte) record.
func (r *AttributeRecord) Bytes(engine endian.EndianEngine) []byte {
	var b [AttributeRecordSizeV3]byte
	engine.PutUint32(b[0:4], r.NameID)
	engine.PutUint32(b[4:8], r.TypeAndLength)
	engine.PutUint32(b[8:12], uint32(r.NextAttributeIdx)) //nolint:gosec
	engine.PutUint32(b[12:16], r.ValueOffset)

	return b[:]
}

// WriteToSlice writes r's v3+ (16-byte) encoding into data at offset and
// returns the next write position.
func (r *AttributeRecord) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint32(data[offset:offset+4], r.NameID)
	engine.PutUint32(data[offset+4:offset+8], r.TypeAndLength)
	engine.PutUint32(data[offset+8:offset+12], uint32(r.NextAttributeIdx)) //nolint:gosec
	engine.PutUint32(data[offset+12:offset+16], r.ValueOffset)

	return offset + AttributeRecordSizeV3
}

// ParseAttributeRecord decodes one attribute record from data, honoring the
// pre-v3 (12-byte, no ValueOffset) or v3+ (16-byte) layout per v3OrLater.
func ParseAttributeRecord(data []byte, v3OrLater bool, engine endian.EndianEngine) (AttributeRecord, error) {
	if v3OrLater {
		if len(data) < AttributeRecordSizeV3 {
			return AttributeRecord{}, fmt.Errorf("graph: attribute record: need %d bytes, got %d", AttributeRecordSizeV3, len(data))
		}

		return AttributeRecord{
			NameID:           engine.Uint32(data[0:4]),
			TypeAndLength:    engine.Uint32(data[4:8]),
			NextAttributeIdx: int32(engine.Uint32(data[8:12])), //nolint:gosec
			ValueOffset:      engine.Uint32(data[12:16]),
		}, nil
	}

	if len(data) < AttributeRecordSizePreV3 {
		return AttributeRecord{}, fmt.Errorf("graph: attribute record: need %d bytes, got %d", AttributeRecordSizePreV3, len(data))
	}

	return AttributeRecord{
		NameID:           engine.Uint32(data[0:4]),
		TypeAndLength:    engine.Uint32(data[4:8]),
		NextAttributeIdx: int32(engine.Uint32(data[8:12])), //nolint:gosec
		ValueOffset:      0,
	}, nil
}
