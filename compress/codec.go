package compress

import (
	"fmt"

	"github.com/ls-go/lsf/format"
)

// Compressor compresses a chunk payload for the LSF container.
type Compressor interface {
	// Compress compresses data and returns the compressed result. The
	// returned slice is newly allocated; data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a chunk payload previously produced by the
// matching Compressor.
type Decompressor interface {
	// Decompress decompresses data. uncompressedSize is the value declared
	// in the file's metadata block; when it is positive, a result of any
	// other length is an error. A value <= 0 disables that check. Some
	// methods (LZ4 raw block) require a positive value to size their output
	// buffer, others use it only to detect a corrupt chunk.
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for the given method. target names the
// chunk being compressed/decompressed, for error context.
func CreateCodec(method format.CompressionType, target string) (Codec, error) {
	switch method {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZlib:
		return NewZlibCodec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	default:
		return nil, fmt.Errorf("compress: invalid %s compression method %d", target, method)
	}
}
