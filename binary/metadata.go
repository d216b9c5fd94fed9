package binary

import (
	"fmt"

	"github.com/ls-go/lsf/endian"
)

// chunkSizes is the (uncompressed, compressed) size pair for one chunk.
type chunkSizes struct {
	Uncompressed uint32
	Compressed   uint32
}

// Metadata is the fixed-layout block immediately following the header: the
// size pairs for the four chunks (five when the Keys chunk is present) plus
// the compression method and reserved words (spec.md §4.6).
type Metadata struct {
	Strings    chunkSizes
	Keys       chunkSizes // only meaningful when HasKeys
	Nodes      chunkSizes
	Attributes chunkSizes
	Values     chunkSizes

	CompressionFlags uint32
	Reserved         [3]uint32

	HasKeys bool
}

// Size returns the byte length of the encoded metadata block for a file of
// this version.
func (m Metadata) Size() int {
	pairs := 4 // strings, nodes, attributes, values
	if m.HasKeys {
		pairs++
	}

	return pairs*8 + 4 + 3*4
}

// ParseMetadata decodes the metadata block. hasKeys must reflect the
// file's version (spec.md §4.6: version >= 6 carries a Keys chunk).
func ParseMetadata(data []byte, hasKeys bool, engine endian.EndianEngine) (Metadata, error) {
	m := Metadata{HasKeys: hasKeys}

	need := m.sizeFor(hasKeys)
	if len(data) < need {
		return Metadata{}, fmt.Errorf("binary: metadata: need %d bytes, got %d", need, len(data))
	}

	off := 0
	m.Strings, off = readSizes(data, off, engine)

	if hasKeys {
		m.Keys, off = readSizes(data, off, engine)
	}

	m.Nodes, off = readSizes(data, off, engine)
	m.Attributes, off = readSizes(data, off, engine)
	m.Values, off = readSizes(data, off, engine)

	m.CompressionFlags = engine.Uint32(data[off:])
	off += 4

	for i := range m.Reserved {
		m.Reserved[i] = engine.Uint32(data[off:])
		off += 4
	}

	return m, nil
}

func (m Metadata) sizeFor(hasKeys bool) int {
	pairs := 4
	if hasKeys {
		pairs++
	}

	return pairs*8 + 4 + 3*4
}

func readSizes(data []byte, off int, engine endian.EndianEngine) (chunkSizes, int) {
	cs := chunkSizes{
		Uncompressed: engine.Uint32(data[off:]),
		Compressed:   engine.Uint32(data[off+4:]),
	}

	return cs, off + 8
}

// Bytes encodes m into its wire form.
func (m Metadata) Bytes(engine endian.EndianEngine) []byte {
	buf := make([]byte, m.Size())

	off := 0
	off = writeSizes(buf, off, m.Strings, engine)

	if m.HasKeys {
		off = writeSizes(buf, off, m.Keys, engine)
	}

	off = writeSizes(buf, off, m.Nodes, engine)
	off = writeSizes(buf, off, m.Attributes, engine)
	off = writeSizes(buf, off, m.Values, engine)

	engine.PutUint32(buf[off:], m.CompressionFlags)
	off += 4

	for _, r := range m.Reserved {
		engine.PutUint32(buf[off:], r)
		off += 4
	}

	return buf
}

func writeSizes(buf []byte, off int, cs chunkSizes, engine endian.EndianEngine) int {
	engine.PutUint32(buf[off:], cs.Uncompressed)
	engine.PutUint32(buf[off+4:], cs.Compressed)

	return off + 8
}
