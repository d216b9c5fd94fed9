package lsf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	lsf "github.com/ls-go/lsf"
)

func TestReadWriteRoundTrip(t *testing.T) {
	res := &lsf.Resource{
		Metadata: lsf.Metadata{Major: 4},
		Regions: []*lsf.Region{
			{
				Name: "Config",
				Nodes: []*lsf.Node{
					{
						Name: "Config",
						Attributes: []*lsf.Attribute{
							{Name: "Version", Type: lsf.AttributeType(5), Value: uint32(1)},
						},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, lsf.Write(&buf, res, lsf.CompressionZstd))

	decoded, diag, err := lsf.Read(&buf)
	require.NoError(t, err)
	require.True(t, diag.Empty())
	require.Equal(t, "Config", decoded.Regions[0].Name)
}
