package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/compress"
	"github.com/ls-go/lsf/format"
)

func TestReadValuesChunkDeclaredSizeTooSmall(t *testing.T) {
	// Declared uncompressed size is smaller than the actual stream
	// remainder; spec.md §4.6 requires treating the whole remainder as
	// the payload, not truncating to the declared size.
	stream := []byte("the full values payload, longer than declared")
	sizes := chunkSizes{Uncompressed: 4, Compressed: 0}

	out, err := readValuesChunk(stream, sizes, format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, stream, out)
}

func TestReadValuesChunkDeclaredSizeTooLarge(t *testing.T) {
	stream := []byte("short")
	sizes := chunkSizes{Uncompressed: 1000, Compressed: 0}

	out, err := readValuesChunk(stream, sizes, format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, stream, out)
}

func TestReadValuesChunkCompressedSizeDisagreesWithStream(t *testing.T) {
	codec := compress.NewZstdCodec()

	payload := []byte("values chunk payload for compressed-size mismatch test")
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)

	// Declare a compressed size that disagrees with the actual stream
	// length; the reader must decompress the full stream anyway.
	sizes := chunkSizes{Uncompressed: uint32(len(payload)), Compressed: uint32(len(compressed) - 1)} //nolint:gosec

	out, err := readValuesChunk(compressed, sizes, format.CompressionZstd)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}
