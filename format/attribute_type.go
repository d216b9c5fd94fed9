package format

import "fmt"

// AttributeType is the closed, 34-entry catalog of attribute value kinds.
// Ids are wire-critical (they appear packed into attribute records);
// tags are XML-critical (they appear as the `type` attribute of `<attribute>`
// elements in the LSX form).
type AttributeType uint8

const (
	TypeNone AttributeType = iota
	TypeUInt8
	TypeInt16
	TypeUInt16
	TypeInt32
	TypeUInt32
	TypeFloat
	TypeDouble
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeFVec2
	TypeFVec3
	TypeFVec4
	TypeMat2
	TypeMat3
	TypeMat3x4
	TypeMat4x3
	TypeMat4
	TypeBool
	TypeLSString
	TypePath
	TypeFixedString
	TypeLSStringAlt
	TypeUInt64
	TypeScratchBuffer
	TypeInt64
	TypeInt8
	TypeTranslatedString
	TypeWString
	TypeLSWString
	TypeGUID
	TypeInt64Alt
	TypeTranslatedFSString

	typeCount // sentinel: number of defined ids, must equal 34
)

var _ [34]struct{} = [typeCount]struct{}{}

// tags holds the stable textual representation used by the LSX side,
// indexed by AttributeType.
var tags = [typeCount]string{
	TypeNone:               "None",
	TypeUInt8:              "uint8",
	TypeInt16:              "int16",
	TypeUInt16:             "uint16",
	TypeInt32:              "int32",
	TypeUInt32:             "uint32",
	TypeFloat:              "float",
	TypeDouble:             "double",
	TypeIVec2:              "ivec2",
	TypeIVec3:              "ivec3",
	TypeIVec4:              "ivec4",
	TypeFVec2:              "fvec2",
	TypeFVec3:              "fvec3",
	TypeFVec4:              "fvec4",
	TypeMat2:               "mat2",
	TypeMat3:               "mat3",
	TypeMat3x4:             "mat3x4",
	TypeMat4x3:             "mat4x3",
	TypeMat4:               "mat4",
	TypeBool:               "bool",
	TypeLSString:           "LSString",
	TypePath:               "path",
	TypeFixedString:        "FixedString",
	TypeLSStringAlt:        "LSString",
	TypeUInt64:             "uint64",
	TypeScratchBuffer:      "ScratchBuffer",
	TypeInt64:              "int64",
	TypeInt8:               "int8",
	TypeTranslatedString:   "TranslatedString",
	TypeWString:            "WString",
	TypeLSWString:          "LSWString",
	TypeGUID:               "guid",
	TypeInt64Alt:           "int64",
	TypeTranslatedFSString: "TranslatedFSString",
}

// String returns the stable XML tag for t, or "Unknown" if t is outside
// the [0,33] catalog range.
func (t AttributeType) String() string {
	if int(t) >= len(tags) {
		return "Unknown"
	}

	return tags[t]
}

// Valid reports whether t is a defined catalog entry ([0,33]).
func (t AttributeType) Valid() bool {
	return t < typeCount
}

// ParseAttributeType resolves a wire-tag string back to its AttributeType.
//
// Several ids share a tag (20/23 both "LSString", 26/32 both "int64"); the
// lowest id sharing that tag is returned, which is sufficient for the
// round-trip property in spec.md §8 (from_str ∘ as_str is idempotent on the
// canonical id, not necessarily the identity on every alias).
func ParseAttributeType(tag string) (AttributeType, error) {
	for i, t := range tags {
		if t == tag {
			return AttributeType(i), nil
		}
	}

	return TypeNone, fmt.Errorf("format: unknown attribute type tag %q", tag)
}
