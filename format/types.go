package format

// CompressionType identifies the compression scheme applied to a chunk.
// It occupies the low 4 bits of the file's compression_flags word.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0 // stored raw
	CompressionZlib CompressionType = 1 // DEFLATE via zlib framing
	CompressionLZ4  CompressionType = 2 // LZ4 frame or raw block
	CompressionZstd CompressionType = 3 // Zstandard
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the four defined methods.
func (c CompressionType) Valid() bool {
	return c <= CompressionZstd
}

// CompressionTypeFromFlags extracts the compression method from the low
// nibble of a compression_flags word; the remaining bits are reserved.
func CompressionTypeFromFlags(flags uint32) CompressionType {
	return CompressionType(flags & 0x0F)
}
