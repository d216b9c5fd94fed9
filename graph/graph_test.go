package graph_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/graph"
	"github.com/ls-go/lsf/resource"
	"github.com/ls-go/lsf/stringtable"
)

func TestWriteReadRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	regions := []*resource.Region{
		{
			Name: "TemplateBank",
			Nodes: []*resource.Node{
				{
					Name: "TemplateBank",
					Attributes: []*resource.Attribute{
						{Name: "ID", Type: format.TypeLSString, Value: "root-1"},
					},
					Children: []*resource.Node{
						{
							Name: "GameObjects",
							Attributes: []*resource.Attribute{
								{Name: "MapKey", Type: format.TypeGUID, Value: uuid.New()},
								{Name: "Health", Type: format.TypeInt32, Value: int32(100)},
							},
						},
						{
							Name: "GameObjects",
							Attributes: []*resource.Attribute{
								{Name: "Health", Type: format.TypeInt32, Value: int32(50)},
							},
						},
					},
				},
			},
		},
	}

	strings := stringtable.New()

	written, err := graph.Write(regions, strings, engine)
	require.NoError(t, err)
	require.Len(t, written.Nodes, 3)
	require.Len(t, written.Attributes, 3)

	decodedRegions, diag, err := graph.Read(written.Nodes, written.Attributes, written.Values, strings, true, engine)
	require.NoError(t, err)
	require.True(t, diag.Empty(), diag.Error())

	require.Len(t, decodedRegions, 1)
	root := decodedRegions[0].Nodes[0]
	require.Equal(t, "TemplateBank", root.Name)
	require.Equal(t, "root-1", root.Attribute("ID").Value)
	require.Len(t, root.Children, 2)
	require.Equal(t, int32(100), root.Children[0].Attribute("Health").Value)
	require.Equal(t, int32(50), root.Children[1].Attribute("Health").Value)
}

func TestReadDetectsCycle(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	strings := stringtable.New()
	nameID := strings.Intern("n")

	nodes := []graph.NodeRecord{
		{NameID: nameID, ParentIdx: graph.NoIndex, NextSiblingIdx: graph.NoIndex, FirstAttributeIdx: 0},
	}
	attrs := []graph.AttributeRecord{
		{NameID: nameID, TypeAndLength: graph.PackTypeAndLength(uint8(format.TypeInt32), 4), NextAttributeIdx: 1, ValueOffset: 0},
		{NameID: nameID, TypeAndLength: graph.PackTypeAndLength(uint8(format.TypeInt32), 4), NextAttributeIdx: 0, ValueOffset: 0},
	}
	values := make([]byte, 4)

	regions, diag, err := graph.Read(nodes, attrs, values, strings, true, engine)
	require.NoError(t, err)
	require.False(t, diag.Empty())
	require.Len(t, regions, 1)
}
