package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4FrameMagic is the 4-byte magic that opens an LZ4 frame stream
// (spec: "04 22 4D 18"). A chunk without this prefix is a raw LZ4 block.
var lz4FrameMagic = [4]byte{0x04, 0x22, 0x4D, 0x18}

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec implements format.CompressionLZ4. It writes the frame format
// (self-describing, carries its own size) and reads both the frame format
// and the raw block format, per spec.md §4.1.
type LZ4Codec struct {
	// Block selects the raw block wire sub-format on Compress instead of
	// the self-describing frame format. The reader accepts both
	// regardless of this setting.
	Block bool
}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns an LZ4 codec that writes the frame format.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// NewLZ4BlockCodec returns an LZ4 codec that writes the raw block format.
func NewLZ4BlockCodec() LZ4Codec {
	return LZ4Codec{Block: true}
}

func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if c.Block {
		return c.compressBlock(data)
	}

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: lz4 frame write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: lz4 frame close: %w", err)
	}

	return buf.Bytes(), nil
}

func (c LZ4Codec) compressBlock(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("compress: lz4 block: %w", err)
	}

	return dst[:n], nil
}

// Decompress auto-detects the frame magic and falls back to the raw block
// format, which requires uncompressedSize to size its output buffer.
func (c LZ4Codec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if isLZ4Frame(data) {
		r := lz4.NewReader(bytes.NewReader(data))
		out := bytes.NewBuffer(make([]byte, 0, uncompressedSize))
		if _, err := io.Copy(out, r); err != nil {
			return nil, fmt.Errorf("compress: lz4 frame read: %w", err)
		}

		if uncompressedSize > 0 && out.Len() != uncompressedSize {
			return nil, fmt.Errorf("compress: lz4 frame: short stream: got %d bytes, want %d", out.Len(), uncompressedSize)
		}

		return out.Bytes(), nil
	}

	if uncompressedSize <= 0 {
		return nil, fmt.Errorf("compress: lz4 raw block requires a known uncompressed size")
	}

	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("compress: lz4 block: %w", err)
	}

	if n != uncompressedSize {
		return nil, fmt.Errorf("compress: lz4 block: short stream: got %d bytes, want %d", n, uncompressedSize)
	}

	return dst[:n], nil
}

func isLZ4Frame(data []byte) bool {
	if len(data) < 4 {
		return false
	}

	return binary.LittleEndian.Uint32(data[:4]) == binary.LittleEndian.Uint32(lz4FrameMagic[:])
}
