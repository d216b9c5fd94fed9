// Package value implements the scalar, vector, matrix, string, and
// translated-string codecs for the 34-entry attribute type catalog
// (spec.md §4.3, §4.4). Dispatch is purely a function of the
// format.AttributeType id; variable-length payloads are handed their
// declared length by the caller (the graph package), never inferred here.
package value

import (
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/format"
)

// Vec is a fixed-length int32 or float32 vector (ivec2/3/4, fvec2/3/4),
// stored as float64 to hold either representation without a generic split;
// callers know which from the originating AttributeType.
// Vec also carries row-major, flattened matrix payloads (mat2/mat3/
// mat3x4/mat4x3/mat4); only the originating AttributeType distinguishes a
// matrix from a same-length vector (mat2 and fvec4 both hold 4 elements),
// and both round-trip through Encode's shared float-sequence path.
type Vec []float64

// TranslatedString is the decoded form of attribute type 28.
type TranslatedString struct {
	Version uint16
	Value   string
	Handle  string
}

// TranslatedFSString is the decoded form of attribute type 33: the same
// outer layout as TranslatedString, plus an opaque trailing argument list.
// Implementations that do not need argument fidelity (this one) preserve
// the raw trailing bytes verbatim on round-trip rather than parsing the
// recursive structure.
type TranslatedFSString struct {
	TranslatedString
	RawArguments []byte
}

func trimTrailingNuls(s string) string {
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}

	return s
}

// Decode reads exactly the bytes t's payload rule requires from data,
// returning the Go value appropriate for t. Variable-length types consume
// all of data; the caller must slice data to the declared length first.
func Decode(t format.AttributeType, data []byte, engine endian.EndianEngine) (any, error) {
	switch t {
	case format.TypeNone:
		return nil, nil
	case format.TypeUInt8:
		return readFixed(data, 1, func(b []byte) any { return b[0] })
	case format.TypeInt8:
		return readFixed(data, 1, func(b []byte) any { return int8(b[0]) }) //nolint:gosec
	case format.TypeInt16:
		return readFixed(data, 2, func(b []byte) any { return int16(engine.Uint16(b)) }) //nolint:gosec
	case format.TypeUInt16:
		return readFixed(data, 2, func(b []byte) any { return engine.Uint16(b) })
	case format.TypeInt32:
		return readFixed(data, 4, func(b []byte) any { return int32(engine.Uint32(b)) }) //nolint:gosec
	case format.TypeUInt32:
		return readFixed(data, 4, func(b []byte) any { return engine.Uint32(b) })
	case format.TypeFloat:
		return readFixed(data, 4, func(b []byte) any { return decodeFloat32(engine.Uint32(b)) })
	case format.TypeDouble:
		return readFixed(data, 8, func(b []byte) any { return decodeFloat64(engine.Uint64(b)) })
	case format.TypeUInt64:
		return readFixed(data, 8, func(b []byte) any { return engine.Uint64(b) })
	case format.TypeInt64, format.TypeInt64Alt:
		return readFixed(data, 8, func(b []byte) any { return int64(engine.Uint64(b)) }) //nolint:gosec
	case format.TypeBool:
		return readFixed(data, 1, func(b []byte) any { return b[0] != 0 })
	case format.TypeIVec2, format.TypeIVec3, format.TypeIVec4:
		return decodeIntVec(data, vecLen(t), engine)
	case format.TypeFVec2, format.TypeFVec3, format.TypeFVec4:
		return decodeFloatSeq(data, vecLen(t), engine)
	case format.TypeMat2:
		return decodeMat(data, 4, engine)
	case format.TypeMat3:
		return decodeMat(data, 9, engine)
	case format.TypeMat3x4, format.TypeMat4x3:
		return decodeMat(data, 12, engine)
	case format.TypeMat4:
		return decodeMat(data, 16, engine)
	case format.TypeLSString, format.TypeLSStringAlt, format.TypePath, format.TypeFixedString:
		return trimTrailingNuls(string(data)), nil
	case format.TypeScratchBuffer:
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	case format.TypeWString, format.TypeLSWString:
		return decodeWString(data, engine)
	case format.TypeGUID:
		return decodeGUID(data)
	case format.TypeTranslatedString:
		return decodeTranslatedString(data, engine)
	case format.TypeTranslatedFSString:
		return decodeTranslatedFSString(data, engine)
	default:
		return nil, fmt.Errorf("value: unsupported attribute type %d", t)
	}
}

// Encode serializes v (as produced by Decode, or an equivalent literal)
// back into its wire payload for t.
func Encode(t format.AttributeType, v any, engine endian.EndianEngine) ([]byte, error) {
	switch t {
	case format.TypeNone:
		return nil, nil
	case format.TypeUInt8:
		return []byte{v.(byte)}, nil //nolint:forcetypeassert
	case format.TypeInt8:
		return []byte{byte(v.(int8))}, nil //nolint:forcetypeassert
	case format.TypeInt16:
		buf := make([]byte, 2)
		engine.PutUint16(buf, uint16(v.(int16))) //nolint:forcetypeassert

		return buf, nil
	case format.TypeUInt16:
		buf := make([]byte, 2)
		engine.PutUint16(buf, v.(uint16)) //nolint:forcetypeassert

		return buf, nil
	case format.TypeInt32:
		buf := make([]byte, 4)
		engine.PutUint32(buf, uint32(v.(int32))) //nolint:forcetypeassert

		return buf, nil
	case format.TypeUInt32:
		buf := make([]byte, 4)
		engine.PutUint32(buf, v.(uint32)) //nolint:forcetypeassert

		return buf, nil
	case format.TypeFloat:
		buf := make([]byte, 4)
		engine.PutUint32(buf, encodeFloat32(v.(float32))) //nolint:forcetypeassert

		return buf, nil
	case format.TypeDouble:
		buf := make([]byte, 8)
		engine.PutUint64(buf, encodeFloat64(v.(float64))) //nolint:forcetypeassert

		return buf, nil
	case format.TypeUInt64:
		buf := make([]byte, 8)
		engine.PutUint64(buf, v.(uint64)) //nolint:forcetypeassert

		return buf, nil
	case format.TypeInt64, format.TypeInt64Alt:
		buf := make([]byte, 8)
		engine.PutUint64(buf, uint64(v.(int64))) //nolint:forcetypeassert

		return buf, nil
	case format.TypeBool:
		if v.(bool) { //nolint:forcetypeassert
			return []byte{1}, nil
		}

		return []byte{0}, nil
	case format.TypeIVec2, format.TypeIVec3, format.TypeIVec4:
		return encodeIntVec(v.(Vec), engine) //nolint:forcetypeassert
	case format.TypeFVec2, format.TypeFVec3, format.TypeFVec4,
		format.TypeMat2, format.TypeMat3, format.TypeMat3x4, format.TypeMat4x3, format.TypeMat4:
		return encodeFloatSeq(v.(Vec), engine) //nolint:forcetypeassert
	case format.TypeLSString, format.TypeLSStringAlt, format.TypePath, format.TypeFixedString:
		return []byte(v.(string)), nil //nolint:forcetypeassert
	case format.TypeScratchBuffer:
		return v.([]byte), nil //nolint:forcetypeassert
	case format.TypeWString, format.TypeLSWString:
		return encodeWString(v.(string), engine) //nolint:forcetypeassert
	case format.TypeGUID:
		return encodeGUID(v.(uuid.UUID)), nil //nolint:forcetypeassert
	case format.TypeTranslatedString:
		return encodeTranslatedString(v.(TranslatedString), engine) //nolint:forcetypeassert
	case format.TypeTranslatedFSString:
		return encodeTranslatedFSString(v.(TranslatedFSString), engine) //nolint:forcetypeassert
	default:
		return nil, fmt.Errorf("value: unsupported attribute type %d", t)
	}
}

func vecLen(t format.AttributeType) int {
	switch t {
	case format.TypeIVec2, format.TypeFVec2:
		return 2
	case format.TypeIVec3, format.TypeFVec3:
		return 3
	case format.TypeIVec4, format.TypeFVec4:
		return 4
	default:
		return 0
	}
}

func readFixed(data []byte, n int, f func([]byte) any) (any, error) {
	if len(data) != n {
		return nil, fmt.Errorf("value: expected %d bytes, got %d", n, len(data))
	}

	return f(data), nil
}

func decodeFloat32(bits uint32) float32 {
	return float32FromBits(bits)
}

func decodeFloat64(bits uint64) float64 {
	return float64FromBits(bits)
}

func decodeIntVec(data []byte, n int, engine endian.EndianEngine) (Vec, error) {
	if len(data) != n*4 {
		return nil, fmt.Errorf("value: ivec%d: expected %d bytes, got %d", n, n*4, len(data))
	}

	out := make(Vec, n)
	for i := range n {
		out[i] = float64(int32(engine.Uint32(data[i*4:]))) //nolint:gosec
	}

	return out, nil
}

func encodeIntVec(v Vec, engine endian.EndianEngine) ([]byte, error) {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		engine.PutUint32(buf[i*4:], uint32(int32(f))) //nolint:gosec
	}

	return buf, nil
}

func decodeFloatSeq(data []byte, n int, engine endian.EndianEngine) (Vec, error) {
	if len(data) != n*4 {
		return nil, fmt.Errorf("value: fvec%d: expected %d bytes, got %d", n, n*4, len(data))
	}

	out := make(Vec, n)
	for i := range n {
		out[i] = float64(decodeFloat32(engine.Uint32(data[i*4:])))
	}

	return out, nil
}

func decodeMat(data []byte, n int, engine endian.EndianEngine) (Vec, error) {
	if len(data) != n*4 {
		return nil, fmt.Errorf("value: matrix: expected %d bytes, got %d", n*4, len(data))
	}

	out := make(Vec, n)
	for i := range n {
		out[i] = float64(decodeFloat32(engine.Uint32(data[i*4:])))
	}

	return out, nil
}

func encodeFloatSeq(v Vec, engine endian.EndianEngine) ([]byte, error) {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		engine.PutUint32(buf[i*4:], encodeFloat32(float32(f)))
	}

	return buf, nil
}

func decodeWString(data []byte, engine endian.EndianEngine) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("value: wstring: odd byte length %d", len(data))
	}

	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = engine.Uint16(data[i*2:])
	}

	for len(units) > 0 && units[len(units)-1] == 0 {
		units = units[:len(units)-1]
	}

	return string(utf16.Decode(units)), nil
}

func encodeWString(s string, engine endian.EndianEngine) ([]byte, error) {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, len(units)*2)

	for i, u := range units {
		engine.PutUint16(buf[i*2:], u)
	}

	return buf, nil
}

func decodeGUID(data []byte) (uuid.UUID, error) {
	if len(data) != 16 {
		return uuid.Nil, fmt.Errorf("value: guid: expected 16 bytes, got %d", len(data))
	}

	var b [16]byte
	copy(b[:8], data[:8])

	for i := range 8 {
		b[8+i] = data[15-i]
	}

	return uuid.FromBytes(b[:])
}

func encodeGUID(id uuid.UUID) []byte {
	out := make([]byte, 16)
	copy(out[:8], id[:8])

	for i := range 8 {
		out[8+i] = id[15-i]
	}

	return out
}

func decodeTranslatedString(data []byte, engine endian.EndianEngine) (TranslatedString, error) {
	if len(data) < 4 {
		return TranslatedString{}, nil
	}

	version := engine.Uint16(data[0:2])
	valueLen := int(engine.Uint16(data[2:4]))

	if 4+valueLen > len(data) {
		return TranslatedString{}, fmt.Errorf("value: translated string: declared value length %d exceeds payload", valueLen)
	}

	val := string(data[4 : 4+valueLen])
	handle := trimTrailingNuls(string(data[4+valueLen:]))

	return TranslatedString{Version: version, Value: val, Handle: handle}, nil
}

func encodeTranslatedString(ts TranslatedString, engine endian.EndianEngine) ([]byte, error) {
	out := make([]byte, 4+len(ts.Value)+len(ts.Handle))
	engine.PutUint16(out[0:2], ts.Version)
	engine.PutUint16(out[2:4], uint16(len(ts.Value))) //nolint:gosec
	copy(out[4:], ts.Value)
	copy(out[4+len(ts.Value):], ts.Handle)

	return out, nil
}

func decodeTranslatedFSString(data []byte, engine endian.EndianEngine) (TranslatedFSString, error) {
	if len(data) < 4 {
		return TranslatedFSString{}, nil
	}

	version := engine.Uint16(data[0:2])
	valueLen := int(engine.Uint16(data[2:4]))

	if 4+valueLen > len(data) {
		return TranslatedFSString{}, fmt.Errorf("value: translated fs string: declared value length %d exceeds payload", valueLen)
	}

	val := string(data[4 : 4+valueLen])
	tail := data[4+valueLen:]

	raw := make([]byte, len(tail))
	copy(raw, tail)

	// The handle/argument-list boundary beyond the outer layout is not
	// independently length-prefixed in the spec; kept as opaque trailing
	// bytes and re-emitted verbatim (spec.md §4.3: "accept and re-emit an
	// empty argument list").
	return TranslatedFSString{
		TranslatedString: TranslatedString{Version: version, Value: val},
		RawArguments:     raw,
	}, nil
}

func encodeTranslatedFSString(tfs TranslatedFSString, engine endian.EndianEngine) ([]byte, error) {
	head, err := encodeTranslatedString(tfs.TranslatedString, engine)
	if err != nil {
		return nil, err
	}

	return append(head, tfs.RawArguments...), nil
}

func float32FromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}

func float64FromBits(bits uint64) float64 {
	return math.Float64frombits(bits)
}

func encodeFloat32(f float32) uint32 {
	return math.Float32bits(f)
}

func encodeFloat64(f float64) uint64 {
	return math.Float64bits(f)
}
