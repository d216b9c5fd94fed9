// Package endian provides the byte-order abstraction used to read and write
// every fixed-width field in the LSF container.
//
// LSF is little-endian throughout (spec: "Little-endian throughout"), but
// the codec is written against the EndianEngine interface rather than
// binary.LittleEndian directly so the framing, graph, and value codecs
// never hard-code a byte order.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface, satisfied by binary.LittleEndian and
// binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine used for all LSF I/O.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
