package binary

import (
	"fmt"

	"github.com/ls-go/lsf/compress"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/format"
)

// readChunk applies the compression sentinel rules to one chunk's declared
// sizes and its raw bytes — already sliced to the exact chunk length by
// sliceChunk — returning the uncompressed payload (spec.md §4.1).
func readChunk(stream []byte, sizes chunkSizes, method format.CompressionType, target string) (payload []byte, err error) {
	switch {
	case sizes.Compressed == 0 && sizes.Uncompressed > 0:
		n := int(sizes.Uncompressed)
		if n > len(stream) {
			return nil, fmt.Errorf("%w: %s: need %d raw bytes, have %d", errs.ErrTruncatedChunk, target, n, len(stream))
		}

		out := make([]byte, n)
		copy(out, stream[:n])

		return out, nil

	case sizes.Compressed == 0 && sizes.Uncompressed == 0:
		return nil, nil

	default:
		codec, cErr := compress.CreateCodec(method, target)
		if cErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", errs.ErrCorruptChunk, target, cErr)
		}

		out, dErr := codec.Decompress(stream, int(sizes.Uncompressed))
		if dErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", errs.ErrCorruptChunk, target, dErr)
		}

		return out, nil
	}
}

// readValuesChunk is readChunk specialized for the Values chunk, whose
// declared sizes are advisory: when they disagree with what is actually
// present — in either direction — the full remainder of the stream is
// treated as the payload (spec.md §4.6), never a declared-size-bounded
// slice of it.
func readValuesChunk(stream []byte, sizes chunkSizes, method format.CompressionType) ([]byte, error) {
	if sizes.Compressed == 0 {
		out := make([]byte, len(stream))
		copy(out, stream)

		return out, nil
	}

	codec, err := compress.CreateCodec(method, "values")
	if err != nil {
		return nil, fmt.Errorf("%w: values: %w", errs.ErrCorruptChunk, err)
	}

	// The declared uncompressed size is advisory too: the codec first runs
	// without it, and it is used only when decoding cannot proceed without
	// it (the LZ4 raw block sub-format).
	out, err := codec.Decompress(stream, 0)
	if err != nil {
		out, err = codec.Decompress(stream, int(sizes.Uncompressed))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: values: %w", errs.ErrCorruptChunk, err)
	}

	return out, nil
}

// writeChunk compresses payload with codec and returns the chunk's size
// pair plus its compressed bytes. codec is shared across all five chunks
// of a file, since the compression method is recorded once per file, not
// per chunk (spec.md §4.1).
func writeChunk(payload []byte, codec compress.Codec, target string) (chunkSizes, []byte, error) {
	if len(payload) == 0 {
		return chunkSizes{}, nil, nil
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return chunkSizes{}, nil, fmt.Errorf("binary: compressing %s: %w", target, err)
	}

	return chunkSizes{
		Uncompressed: uint32(len(payload)),   //nolint:gosec
		Compressed:   uint32(len(compressed)), //nolint:gosec
	}, compressed, nil
}
