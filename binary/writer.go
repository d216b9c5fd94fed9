package binary

import (
	"golang.org/x/sync/errgroup"

	"github.com/ls-go/lsf/compress"
	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/graph"
	"github.com/ls-go/lsf/internal/options"
	"github.com/ls-go/lsf/internal/pool"
	"github.com/ls-go/lsf/resource"
	"github.com/ls-go/lsf/stringtable"
)

// Write serializes res into a complete LSF file using the given
// compression method for every chunk (spec.md §4.5 "Writing", §4.6).
// Output always uses the v3+ node/attribute record layout: a version below
// V3RecordLayout is raised to it, since this implementation never
// produces the pre-v3 layout (round-trip equivalence, not byte identity,
// is what spec.md §1 requires of writers).
func Write(res *resource.Resource, method format.CompressionType, engine endian.EndianEngine, opts ...WriterOption) ([]byte, error) {
	cfg := &WriterConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var codec compress.Codec

	switch {
	case method == format.CompressionLZ4 && cfg.LZ4Block:
		codec = compress.NewLZ4BlockCodec()
	default:
		var err error

		codec, err = compress.CreateCodec(method, "file")
		if err != nil {
			return nil, err
		}
	}

	version := res.Metadata.Major
	if version < V3RecordLayout {
		version = V3RecordLayout
	}

	hasKeys := version >= KeysChunkVersion

	strings := stringtable.New()

	written, err := graph.Write(res.Regions, strings, engine)
	if err != nil {
		return nil, err
	}

	stringsBytes, err := stringtable.Encode(strings, engine)
	if err != nil {
		return nil, err
	}

	nodesBytes := encodeNodeRecords(written.Nodes, engine)
	attrsBytes := encodeAttributeRecords(written.Attributes, engine)

	var keysBytes []byte
	if hasKeys {
		keysBytes = res.Keys
	}

	var (
		stringsSizes, keysSizes, nodesSizes, attrsSizes, valuesSizes chunkSizes
		stringsComp, keysComp, nodesComp, attrsComp, valuesComp      []byte
	)

	g := &errgroup.Group{}

	g.Go(func() error {
		var e error
		stringsSizes, stringsComp, e = writeChunk(stringsBytes, codec, "strings")

		return e
	})

	if hasKeys {
		g.Go(func() error {
			var e error
			keysSizes, keysComp, e = writeChunk(keysBytes, codec, "keys")

			return e
		})
	}

	g.Go(func() error {
		var e error
		nodesSizes, nodesComp, e = writeChunk(nodesBytes, codec, "nodes")

		return e
	})

	g.Go(func() error {
		var e error
		attrsSizes, attrsComp, e = writeChunk(attrsBytes, codec, "attributes")

		return e
	})

	g.Go(func() error {
		var e error
		valuesSizes, valuesComp, e = writeChunk(written.Values, codec, "values")

		return e
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta := Metadata{
		Strings:          stringsSizes,
		Keys:             keysSizes,
		Nodes:            nodesSizes,
		Attributes:       attrsSizes,
		Values:           valuesSizes,
		CompressionFlags: uint32(method),
		HasKeys:          hasKeys,
	}

	header := Header{Version: version, EngineVersion: res.Metadata.EngineVersion}

	total := HeaderSize + meta.Size() + len(stringsComp) + len(keysComp) + len(nodesComp) + len(attrsComp) + len(valuesComp)

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	buf.Grow(total)
	buf.MustWrite(header.Bytes(engine))
	buf.MustWrite(meta.Bytes(engine))
	buf.MustWrite(stringsComp)

	if hasKeys {
		buf.MustWrite(keysComp)
	}

	buf.MustWrite(nodesComp)
	buf.MustWrite(attrsComp)
	buf.MustWrite(valuesComp)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func encodeNodeRecords(records []graph.NodeRecord, engine endian.EndianEngine) []byte {
	buf := make([]byte, len(records)*graph.NodeRecordSizeV3)

	offset := 0
	for i := range records {
		offset = records[i].WriteToSlice(buf, offset, engine)
	}

	return buf
}

func encodeAttributeRecords(records []graph.AttributeRecord, engine endian.EndianEngine) []byte {
	buf := make([]byte, len(records)*graph.AttributeRecordSizeV3)

	offset := 0
	for i := range records {
		offset = records[i].WriteToSlice(buf, offset, engine)
	}

	return buf
}
