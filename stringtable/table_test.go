package stringtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/stringtable"
)

func TestInternAndString(t *testing.T) {
	tbl := stringtable.New()

	id1 := tbl.Intern("RootTemplate")
	id2 := tbl.Intern("DisplayName")
	id3 := tbl.Intern("RootTemplate") // dedupe

	require.Equal(t, id1, id3)
	require.NotEqual(t, id1, id2)

	s, ok := tbl.String(id1)
	require.True(t, ok)
	require.Equal(t, "RootTemplate", s)

	_, ok = tbl.String(stringtable.Absent)
	require.False(t, ok)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	tbl := stringtable.New()
	names := []string{"GameObjects", "Translation", "RootTemplate", "children", "node"}
	ids := make([]uint32, len(names))
	for i, n := range names {
		ids[i] = tbl.Intern(n)
	}

	data, err := stringtable.Encode(tbl, engine)
	require.NoError(t, err)

	decoded, err := stringtable.Decode(data, engine)
	require.NoError(t, err)

	for i, n := range names {
		s, ok := decoded.String(ids[i])
		require.True(t, ok)
		require.Equal(t, n, s)
	}
}

func TestDecodeFlatLayout(t *testing.T) {
	// bucket_count=0 then two [flag][pad][u16 len][bytes] records.
	data := []byte{
		0, 0, 0, 0, // bucket_count = 0
		1, 0, 4, 0, 'n', 'a', 'm', 'e',
		1, 0, 2, 0, 'i', 'd',
	}

	tbl, err := stringtable.Decode(data, endian.GetLittleEndianEngine())
	require.NoError(t, err)

	s, ok := tbl.String(stringtable.PackID(0, 0))
	require.True(t, ok)
	require.Equal(t, "name", s)

	s, ok = tbl.String(stringtable.PackID(0, 1))
	require.True(t, ok)
	require.Equal(t, "id", s)
}

func TestDecodeEmptyChunkYieldsEmptyTable(t *testing.T) {
	tbl, err := stringtable.Decode(nil, endian.GetLittleEndianEngine())
	require.NoError(t, err)

	_, ok := tbl.String(stringtable.PackID(0, 0))
	require.False(t, ok)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := stringtable.Decode([]byte{1, 2}, endian.GetLittleEndianEngine())
	require.Error(t, err)
}

func TestDecodeHashedRejectsInvalidUTF8(t *testing.T) {
	data := []byte{
		1, 0, 0, 0, // bucket_count = 1
		1, 0, // bucket 0 chain_length = 1
		2, 0, 0xFF, 0xFE, // byte_length=2, invalid UTF-8 bytes
	}

	_, err := stringtable.Decode(data, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidStringTable)
}

func TestDecodeFlatRejectsInvalidUTF8(t *testing.T) {
	data := []byte{
		0, 0, 0, 0, // bucket_count = 0
		1, 0, 2, 0, 0xFF, 0xFE, // flag=1, pad, len=2, invalid UTF-8 bytes
	}

	_, err := stringtable.Decode(data, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidStringTable)
}
