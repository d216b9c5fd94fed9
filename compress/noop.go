package compress

import "fmt"

// NoOpCodec passes chunk bytes through unchanged. It serves files whose
// method is CompressionNone; a chunk whose compressed_size is 0 and
// uncompressed_size is positive ("stored raw" regardless of the method
// nibble) is copied by the binary package's chunk reader without any Codec.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec returns a codec that performs no compression.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize > 0 && len(data) != uncompressedSize {
		return nil, fmt.Errorf("compress: noop: short stream: got %d bytes, want %d", len(data), uncompressedSize)
	}

	return data, nil
}
