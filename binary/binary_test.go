package binary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/binary"
	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/resource"
)

func sampleResource() *resource.Resource {
	return &resource.Resource{
		Metadata: resource.Metadata{Major: 4},
		Regions: []*resource.Region{
			{
				Name: "TemplateBank",
				Nodes: []*resource.Node{
					{
						Name: "TemplateBank",
						Attributes: []*resource.Attribute{
							{Name: "ContentVersion", Type: format.TypeUInt32, Value: uint32(1)},
						},
						Children: []*resource.Node{
							{
								Name: "GameObjects",
								Attributes: []*resource.Attribute{
									{Name: "Name", Type: format.TypeLSString, Value: "Barrel"},
									{Name: "Health", Type: format.TypeInt32, Value: int32(40)},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	for _, method := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZlib,
		format.CompressionLZ4,
		format.CompressionZstd,
	} {
		t.Run(method.String(), func(t *testing.T) {
			res := sampleResource()

			data, err := binary.Write(res, method, engine)
			require.NoError(t, err)
			require.Equal(t, "LSOF", string(data[0:4]))

			decoded, diag, err := binary.Read(data, engine)
			require.NoError(t, err)
			require.True(t, diag.Empty(), diag.Error())

			require.Len(t, decoded.Regions, 1)
			root := decoded.Regions[0].Nodes[0]
			require.Equal(t, "TemplateBank", root.Name)
			require.Equal(t, uint32(1), root.Attribute("ContentVersion").Value)
			require.Len(t, root.Children, 1)
			require.Equal(t, "Barrel", root.Children[0].Attribute("Name").Value)
			require.Equal(t, int32(40), root.Children[0].Attribute("Health").Value)
		})
	}
}

func TestWriteReadRoundTripLZ4Block(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	res := sampleResource()

	data, err := binary.Write(res, format.CompressionLZ4, engine, binary.WithLZ4Block())
	require.NoError(t, err)

	decoded, diag, err := binary.Read(data, engine)
	require.NoError(t, err)
	require.True(t, diag.Empty(), diag.Error())
	require.Equal(t, "Barrel", decoded.Regions[0].Nodes[0].Children[0].Attribute("Name").Value)
}

func TestReadRejectsBadMagic(t *testing.T) {
	data := make([]byte, binary.HeaderSize)
	copy(data, []byte("XXXX"))

	_, _, err := binary.Read(data, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrBadMagic)
}
