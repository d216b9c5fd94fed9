package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	lsf "github.com/ls-go/lsf"
	"github.com/ls-go/lsf/format"
)

func sampleResource() *lsf.Resource {
	return &lsf.Resource{
		Metadata: lsf.Metadata{Major: 4},
		Regions: []*lsf.Region{
			{
				Name: "TemplateBank",
				Nodes: []*lsf.Node{
					{
						Name: "TemplateBank",
						Attributes: []*lsf.Attribute{
							{Name: "ContentVersion", Type: format.TypeUInt32, Value: uint32(1)},
						},
					},
				},
			},
		},
	}
}

func TestToXMLThenToBinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lsfPath := filepath.Join(dir, "in.lsf")
	lsxPath := filepath.Join(dir, "out.lsx")
	rebuiltPath := filepath.Join(dir, "rebuilt.lsf")

	require.NoError(t, lsf.WriteFile(lsfPath, sampleResource(), lsf.CompressionZstd))

	require.NoError(t, runToXML(lsfPath, lsxPath))

	require.NoError(t, runToBinary(lsxPath, rebuiltPath, format.CompressionZstd, false, lsf.Metadata{}))

	res, diag, err := lsf.ReadFile(rebuiltPath)
	require.NoError(t, err)
	require.True(t, diag.Empty())
	require.Len(t, res.Regions, 1)
	require.Equal(t, "TemplateBank", res.Regions[0].Name)
}

func TestParseCompressionRejectsUnknown(t *testing.T) {
	_, err := parseCompression("lzma")
	require.Error(t, err)
}

func TestNewRootCmdHasBothSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	require.True(t, names["to-xml"])
	require.True(t, names["to-binary"])
}
