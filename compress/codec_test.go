package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/compress"
	"github.com/ls-go/lsf/format"
)

func TestCodecRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated. " +
		"the quick brown fox jumps over the lazy dog, repeated.")

	codecs := map[string]compress.Codec{
		"none": compress.NewNoOpCodec(),
		"zlib": compress.NewZlibCodec(),
		"lz4":  compress.NewLZ4Codec(),
		"lz4-block": func() compress.Codec {
			return compress.NewLZ4BlockCodec()
		}(),
		"zstd": compress.NewZstdCodec(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed, len(payload))
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, codec := range []compress.Codec{
		compress.NewNoOpCodec(),
		compress.NewZlibCodec(),
		compress.NewLZ4Codec(),
		compress.NewZstdCodec(),
	} {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed, 0)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}

func TestCodecDetectsShortStream(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated. " +
		"the quick brown fox jumps over the lazy dog, repeated.")

	codecs := map[string]compress.Codec{
		"none":      compress.NewNoOpCodec(),
		"zlib":      compress.NewZlibCodec(),
		"lz4":       compress.NewLZ4Codec(),
		"lz4-block": compress.NewLZ4BlockCodec(),
		"zstd":      compress.NewZstdCodec(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed, len(payload)+10)
			require.Error(t, err)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, method := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZlib,
		format.CompressionLZ4,
		format.CompressionZstd,
	} {
		codec, err := compress.CreateCodec(method, "strings")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := compress.CreateCodec(format.CompressionType(99), "strings")
	require.Error(t, err)
}
