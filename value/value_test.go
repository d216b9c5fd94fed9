package value_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/value"
)

func TestDecodeFloatVec3(t *testing.T) {
	// spec.md S3: fvec3, bytes for (1.0, 2.0, 3.0) little-endian.
	data := []byte{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x40, 0x40}

	v, err := value.Decode(format.TypeFVec3, data, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, value.Vec{1.0, 2.0, 3.0}, v)
}

func TestDecodeWString(t *testing.T) {
	// spec.md S5: WString, "Hello" as UTF-16LE code units.
	data := []byte{0x48, 0x00, 0x65, 0x00, 0x6C, 0x00, 0x6C, 0x00, 0x6F, 0x00}

	v, err := value.Decode(format.TypeWString, data, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, "Hello", v)

	withTrailingNul := append(append([]byte{}, data...), 0x00, 0x00)
	v2, err := value.Decode(format.TypeWString, withTrailingNul, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, "Hello", v2)
}

func TestScalarRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	cases := []struct {
		typ format.AttributeType
		val any
	}{
		{format.TypeUInt8, byte(200)},
		{format.TypeInt8, int8(-12)},
		{format.TypeInt16, int16(-1000)},
		{format.TypeUInt16, uint16(60000)},
		{format.TypeInt32, int32(-70000)},
		{format.TypeUInt32, uint32(4000000000)},
		{format.TypeFloat, float32(3.5)},
		{format.TypeDouble, float64(2.718281828)},
		{format.TypeUInt64, uint64(18000000000000000000)},
		{format.TypeInt64, int64(-9000000000000000000)},
		{format.TypeBool, true},
	}

	for _, c := range cases {
		encoded, err := value.Encode(c.typ, c.val, engine)
		require.NoError(t, err)

		decoded, err := value.Decode(c.typ, encoded, engine)
		require.NoError(t, err)
		require.Equal(t, c.val, decoded)
	}
}

func TestGUIDHalfReversalRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	id := uuid.New()

	encoded, err := value.Encode(format.TypeGUID, id, engine)
	require.NoError(t, err)
	require.Len(t, encoded, 16)

	decoded, err := value.Decode(format.TypeGUID, encoded, engine)
	require.NoError(t, err)
	require.Equal(t, id, decoded)

	// The wire form differs from the canonical byte order in its last 8 bytes.
	canonical, _ := id.MarshalBinary()
	require.Equal(t, canonical[:8], encoded[:8])
	require.NotEqual(t, canonical[8:], encoded[8:])
}

func TestTranslatedStringRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	ts := value.TranslatedString{Version: 1, Value: "Hello", Handle: "h123"}

	encoded, err := value.Encode(format.TypeTranslatedString, ts, engine)
	require.NoError(t, err)

	decoded, err := value.Decode(format.TypeTranslatedString, encoded, engine)
	require.NoError(t, err)
	require.Equal(t, ts, decoded)
}

func TestTranslatedStringEmptyWhenShort(t *testing.T) {
	v, err := value.Decode(format.TypeTranslatedString, []byte{1, 2}, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, value.TranslatedString{}, v)
}

func TestLSStringStripsTrailingNuls(t *testing.T) {
	v, err := value.Decode(format.TypeLSString, []byte("RootTemplate\x00\x00"), endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, "RootTemplate", v)
}

func TestMat3RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	m := value.Vec{1, 0, 0, 0, 1, 0, 0, 0, 1}

	encoded, err := value.Encode(format.TypeMat3, m, engine)
	require.NoError(t, err)
	require.Len(t, encoded, 36)

	decoded, err := value.Decode(format.TypeMat3, encoded, engine)
	require.NoError(t, err)
	require.Equal(t, m, decoded)
}
