// Package binary implements the LSF file codec: header and metadata
// framing, and the orchestration of compression, the string table, and the
// graph codec into a complete Resource read or write (spec.md §4.6).
package binary

import (
	"fmt"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
)

// Magic is the 4-byte file signature, "LSOF".
var Magic = [4]byte{'L', 'S', 'O', 'F'}

// MinSupportedVersion is the oldest version this codec reads. Versions
// below 3 degrade to the pre-v3 node/attribute record layouts (spec.md §6:
// "Readers MUST accept any version ≥ 3 and SHOULD accept version 2").
const MinSupportedVersion = 2

// V3RecordLayout is the version at and above which node and attribute
// records carry NextSiblingIdx and ValueOffset respectively.
const V3RecordLayout = 3

// KeysChunkVersion is the version at and above which a Keys chunk appears
// between Strings and Nodes.
const KeysChunkVersion = 6

// HeaderSize is the fixed byte size of the file header.
const HeaderSize = 4 + 4 + 8

// Header is the fixed preamble: magic, version, and engine version.
type Header struct {
	Version      uint32
	EngineVersion uint64
}

// ParseHeader reads and validates the magic and decodes the header fields.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes, got %d", errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}

	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return Header{}, errs.ErrBadMagic
	}

	version := engine.Uint32(data[4:8])
	if version < MinSupportedVersion {
		return Header{}, fmt.Errorf("%w: %d (minimum %d)", errs.ErrUnsupportedVersion, version, MinSupportedVersion)
	}

	return Header{
		Version:       version,
		EngineVersion: engine.Uint64(data[8:16]),
	}, nil
}

// Bytes encodes h into the fixed-size header.
func (h Header) Bytes(engine endian.EndianEngine) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	engine.PutUint32(buf[4:8], h.Version)
	engine.PutUint64(buf[8:16], h.EngineVersion)

	return buf
}
