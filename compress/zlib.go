package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibCodec implements format.CompressionZlib using klauspost/compress's
// drop-in, faster zlib implementation.
type ZlibCodec struct{}

var _ Codec = ZlibCodec{}

// NewZlibCodec returns a zlib Codec.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{}
}

func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: zlib close: %w", err)
	}

	return buf.Bytes(), nil
}

func (c ZlibCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compress: zlib open: %w", err)
	}
	defer r.Close()

	out := make([]byte, 0, uncompressedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("compress: zlib read: %w", err)
	}

	if uncompressedSize > 0 && buf.Len() != uncompressedSize {
		return nil, fmt.Errorf("compress: zlib: short stream: got %d bytes, want %d", buf.Len(), uncompressedSize)
	}

	return buf.Bytes(), nil
}
