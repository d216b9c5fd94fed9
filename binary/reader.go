package binary

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/graph"
	"github.com/ls-go/lsf/resource"
	"github.com/ls-go/lsf/stringtable"
)

// Read decodes a complete LSF file from data into a Resource. Soft errors
// encountered while reconstructing the graph are returned as diag rather
// than err; err is non-nil only for the hard-error cases in spec.md §7.
func Read(data []byte, engine endian.EndianEngine) (res *resource.Resource, diag *errs.Diagnostics, err error) {
	header, err := ParseHeader(data, engine)
	if err != nil {
		return nil, nil, err
	}

	hasKeys := header.Version >= KeysChunkVersion
	v3OrLater := header.Version >= V3RecordLayout

	meta, err := ParseMetadata(data[HeaderSize:], hasKeys, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errs.ErrTruncatedChunk, err)
	}

	method := format.CompressionTypeFromFlags(meta.CompressionFlags)
	if !method.Valid() {
		return nil, nil, fmt.Errorf("%w: compression method %d", errs.ErrCorruptChunk, method)
	}

	stream := data[HeaderSize+meta.Size():]

	stringsRaw, rest, err := sliceChunk(stream, meta.Strings, "strings")
	if err != nil {
		return nil, nil, err
	}

	var keysRaw []byte
	if hasKeys {
		keysRaw, rest, err = sliceChunk(rest, meta.Keys, "keys")
		if err != nil {
			return nil, nil, err
		}
	}

	nodesRaw, rest, err := sliceChunk(rest, meta.Nodes, "nodes")
	if err != nil {
		return nil, nil, err
	}

	attrsRaw, rest, err := sliceChunk(rest, meta.Attributes, "attributes")
	if err != nil {
		return nil, nil, err
	}

	valuesRaw := rest // spec.md §4.6: Values payload is the stream remainder

	var (
		stringsBytes, keysBytes, nodesBytes, attrsBytes, valuesBytes []byte
		decodeErr                                                    error
	)

	g := &errgroup.Group{}

	g.Go(func() error {
		b, e := readChunk(stringsRaw, meta.Strings, method, "strings")
		stringsBytes = b

		return e
	})

	if hasKeys {
		g.Go(func() error {
			b, e := readChunk(keysRaw, meta.Keys, method, "keys")
			keysBytes = b

			return e
		})
	}

	g.Go(func() error {
		b, e := readChunk(nodesRaw, meta.Nodes, method, "nodes")
		nodesBytes = b

		return e
	})

	g.Go(func() error {
		b, e := readChunk(attrsRaw, meta.Attributes, method, "attributes")
		attrsBytes = b

		return e
	})

	g.Go(func() error {
		b, e := readValuesChunk(valuesRaw, meta.Values, method)
		valuesBytes = b

		return e
	})

	if decodeErr = g.Wait(); decodeErr != nil {
		return nil, nil, decodeErr
	}

	strings, err := stringtable.Decode(stringsBytes, engine)
	if err != nil {
		return nil, nil, err
	}

	nodeRecords, err := decodeNodeRecords(nodesBytes, v3OrLater, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errs.ErrCorruptChunk, err)
	}

	attrRecords, err := decodeAttributeRecords(attrsBytes, v3OrLater, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errs.ErrCorruptChunk, err)
	}

	regions, diag, err := graph.Read(nodeRecords, attrRecords, valuesBytes, strings, v3OrLater, engine)
	if err != nil {
		return nil, nil, err
	}

	return &resource.Resource{
		Metadata: resource.Metadata{Major: header.Version, EngineVersion: header.EngineVersion},
		Regions:  regions,
		Keys:     keysBytes,
	}, diag, nil
}

// sliceChunk carves the declared-size prefix for a non-Values chunk off
// stream, returning it and the remainder. It performs no decompression.
func sliceChunk(stream []byte, sizes chunkSizes, target string) (chunk, rest []byte, err error) {
	n := int(sizes.Compressed)
	if sizes.Compressed == 0 {
		n = int(sizes.Uncompressed)
	}

	if n > len(stream) {
		return nil, nil, fmt.Errorf("%w: %s: need %d bytes, have %d", errs.ErrTruncatedChunk, target, n, len(stream))
	}

	return stream[:n], stream[n:], nil
}

func decodeNodeRecords(data []byte, v3OrLater bool, engine endian.EndianEngine) ([]graph.NodeRecord, error) {
	size := graph.NodeRecordSizeV3
	if !v3OrLater {
		size = graph.NodeRecordSizePreV3
	}

	if len(data)%size != 0 {
		return nil, fmt.Errorf("node records: %d bytes not a multiple of record size %d", len(data), size)
	}

	count := len(data) / size
	out := make([]graph.NodeRecord, count)

	for i := range count {
		rec, err := graph.ParseNodeRecord(data[i*size:(i+1)*size], v3OrLater, engine)
		if err != nil {
			return nil, err
		}

		out[i] = rec
	}

	return out, nil
}

func decodeAttributeRecords(data []byte, v3OrLater bool, engine endian.EndianEngine) ([]graph.AttributeRecord, error) {
	size := graph.AttributeRecordSizeV3
	if !v3OrLater {
		size = graph.AttributeRecordSizePreV3
	}

	if len(data)%size != 0 {
		return nil, fmt.Errorf("attribute records: %d bytes not a multiple of record size %d", len(data), size)
	}

	count := len(data) / size
	out := make([]graph.AttributeRecord, count)

	for i := range count {
		rec, err := graph.ParseAttributeRecord(data[i*size:(i+1)*size], v3OrLater, engine)
		if err != nil {
			return nil, err
		}

		out[i] = rec
	}

	return out, nil
}
