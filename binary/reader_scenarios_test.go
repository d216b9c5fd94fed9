package binary_test

import (
	stdbinary "encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/binary"
	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/graph"
	"github.com/ls-go/lsf/stringtable"
)

// TestScenarioS1MinimalHeader is spec.md §8 S1: a header plus all-zero
// metadata decodes to a versioned Resource with zero regions.
func TestScenarioS1MinimalHeader(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	header := binary.Header{Version: 7}
	meta := binary.Metadata{HasKeys: true} // v7 >= KeysChunkVersion

	data := append(header.Bytes(engine), meta.Bytes(engine)...)

	res, diag, err := binary.Read(data, engine)
	require.NoError(t, err)
	require.True(t, diag.Empty())
	require.Equal(t, uint32(7), res.Metadata.Major)
	require.Empty(t, res.Regions)
}

// TestScenarioS2SingleIntAttribute is spec.md §8 S2: a hand-built v7 file
// with one string-table bucket ["R","N","A"], a node referring to "N", and
// an int32 attribute "A"=42. Per spec.md §4.5 step 4 the region's name is
// the resolved name of its root node itself ("N"), not the unused "R"
// string that merely occupies the first chain slot in the scenario's
// string table — this implementation follows that rule directly.
func TestScenarioS2SingleIntAttribute(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	strings := encodeRawStringTable(t, [][]string{{"R", "N", "A"}})

	node := graph.NodeRecord{
		NameID:            stringtable.PackID(0, 1), // "N"
		ParentIdx:         graph.NoIndex,
		NextSiblingIdx:    graph.NoIndex,
		FirstAttributeIdx: 0,
	}

	attr := graph.AttributeRecord{
		NameID:           stringtable.PackID(0, 2), // "A"
		TypeAndLength:    graph.PackTypeAndLength(uint8(format.TypeInt32), 4),
		NextAttributeIdx: graph.NoIndex,
		ValueOffset:      0,
	}

	values := []byte{0x2A, 0x00, 0x00, 0x00} // int32 42, little-endian

	meta := binary.Metadata{HasKeys: true}
	meta.Strings.Uncompressed = uint32(len(strings)) //nolint:gosec
	meta.Nodes.Uncompressed = graph.NodeRecordSizeV3
	meta.Attributes.Uncompressed = graph.AttributeRecordSizeV3
	meta.Values.Uncompressed = uint32(len(values)) //nolint:gosec

	header := binary.Header{Version: 7}

	data := append(header.Bytes(engine), meta.Bytes(engine)...)
	data = append(data, strings...)
	data = append(data, node.Bytes(engine)...)
	data = append(data, attr.Bytes(engine)...)
	data = append(data, values...)

	res, diag, err := binary.Read(data, engine)
	require.NoError(t, err)
	require.True(t, diag.Empty(), diag.Error())
	require.Len(t, res.Regions, 1)

	region := res.Regions[0]
	require.Equal(t, "N", region.Name)
	require.Len(t, region.Nodes, 1)
	require.Equal(t, "N", region.Nodes[0].Name)

	a := region.Nodes[0].Attribute("A")
	require.NotNil(t, a)
	require.Equal(t, format.TypeInt32, a.Type)
	require.Equal(t, int32(42), a.Value)
}

// TestScenarioS6RawChunkOverridesMethod is spec.md §8 S6: a chunk whose
// compressed_size is 0 is read as stored-raw bytes regardless of the
// method nibble recorded in compression_flags — here the file declares
// zlib, but the Strings chunk is never run through a zlib decoder.
func TestScenarioS6RawChunkOverridesMethod(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	strings := encodeRawStringTable(t, [][]string{{"ABCDEFGHIJKLMNOPQRSTUVWX"}})
	require.Len(t, strings, 32)

	node := graph.NodeRecord{
		NameID:            stringtable.PackID(0, 0),
		ParentIdx:         graph.NoIndex,
		NextSiblingIdx:    graph.NoIndex,
		FirstAttributeIdx: graph.NoIndex,
	}

	meta := binary.Metadata{CompressionFlags: uint32(format.CompressionZlib)}
	meta.Strings.Uncompressed = uint32(len(strings)) //nolint:gosec
	meta.Nodes.Uncompressed = graph.NodeRecordSizeV3

	header := binary.Header{Version: 4}

	data := append(header.Bytes(engine), meta.Bytes(engine)...)
	data = append(data, strings...)
	data = append(data, node.Bytes(engine)...)

	res, diag, err := binary.Read(data, engine)
	require.NoError(t, err)
	require.True(t, diag.Empty(), diag.Error())
	require.Len(t, res.Regions, 1)
	require.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWX", res.Regions[0].Name)
}

// encodeRawStringTable builds the canonical hashed Strings chunk wire
// format directly: u32 bucket_count, then per bucket a u16 chain_length
// followed by chain_length [u16 byte_length][bytes] entries (spec.md §4.2).
func encodeRawStringTable(t *testing.T, buckets [][]string) []byte {
	t.Helper()

	var out []byte

	head := make([]byte, 4)
	stdbinary.LittleEndian.PutUint32(head, uint32(len(buckets))) //nolint:gosec
	out = append(out, head...)

	for _, chain := range buckets {
		chainLen := make([]byte, 2)
		stdbinary.LittleEndian.PutUint16(chainLen, uint16(len(chain))) //nolint:gosec
		out = append(out, chainLen...)

		for _, s := range chain {
			strLen := make([]byte, 2)
			stdbinary.LittleEndian.PutUint16(strLen, uint16(len(s))) //nolint:gosec
			out = append(out, strLen...)
			out = append(out, []byte(s)...)
		}
	}

	return out
}
