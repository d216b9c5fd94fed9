package graph

import (
	"fmt"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/resource"
	"github.com/ls-go/lsf/stringtable"
	"github.com/ls-go/lsf/value"
)

// Written is the flattened form produced by Write: record arrays ready for
// the file codec to frame and compress, plus the concatenated values blob.
type Written struct {
	Nodes      []NodeRecord
	Attributes []AttributeRecord
	Values     []byte
}

// Write flattens regions into node and attribute record arrays plus a
// values blob (spec.md §4.5 "Writing"). Strings is populated with every
// node and attribute name encountered, in first-use order. Output always
// uses the v3+ record layout and explicit ValueOffset.
func Write(regions []*resource.Region, strings *stringtable.Table, engine endian.EndianEngine) (*Written, error) {
	w := &writer{strings: strings, engine: engine}

	for _, region := range regions {
		for _, node := range region.Nodes {
			if err := w.addNode(node, NoIndex); err != nil {
				return nil, err
			}
		}
	}

	return &Written{Nodes: w.nodes, Attributes: w.attrs, Values: w.values}, nil
}

type writer struct {
	strings *stringtable.Table
	engine  endian.EndianEngine

	nodes  []NodeRecord
	attrs  []AttributeRecord
	values []byte
}

// addNode appends node (and its subtree, depth-first preorder) to the
// flattened arrays, linking it to parentIdx. Its own index is the length
// of w.nodes on entry.
func (w *writer) addNode(node *resource.Node, parentIdx int32) error {
	nodeIdx := int32(len(w.nodes)) //nolint:gosec

	w.nodes = append(w.nodes, NodeRecord{
		NameID:            w.strings.Intern(node.Name),
		ParentIdx:         parentIdx,
		NextSiblingIdx:    NoIndex,
		FirstAttributeIdx: NoIndex,
	})

	firstAttrIdx, err := w.addAttributes(node.Attributes)
	if err != nil {
		return err
	}
	w.nodes[nodeIdx].FirstAttributeIdx = firstAttrIdx

	var prevChildIdx int32 = NoIndex

	for _, child := range node.Children {
		childIdx := int32(len(w.nodes)) //nolint:gosec

		if err := w.addNode(child, nodeIdx); err != nil {
			return err
		}

		if prevChildIdx != NoIndex {
			w.nodes[prevChildIdx].NextSiblingIdx = childIdx
		}
		prevChildIdx = childIdx
	}

	return nil
}

func (w *writer) addAttributes(attrs []*resource.Attribute) (int32, error) {
	if len(attrs) == 0 {
		return NoIndex, nil
	}

	first := int32(len(w.attrs)) //nolint:gosec

	var prevIdx int32 = NoIndex

	for _, attr := range attrs {
		payload, err := value.Encode(attr.Type, attr.Value, w.engine)
		if err != nil {
			return NoIndex, fmt.Errorf("graph: encoding attribute %q: %w", attr.Name, err)
		}

		idx := int32(len(w.attrs)) //nolint:gosec
		offset := len(w.values)
		w.values = append(w.values, payload...)

		w.attrs = append(w.attrs, AttributeRecord{
			NameID:           w.strings.Intern(attr.Name),
			TypeAndLength:    PackTypeAndLength(uint8(attr.Type), uint32(len(payload))), //nolint:gosec
			NextAttributeIdx: NoIndex,
			ValueOffset:      uint32(offset), //nolint:gosec
		})

		if prevIdx != NoIndex {
			w.attrs[prevIdx].NextAttributeIdx = idx
		}
		prevIdx = idx
	}

	return first, nil
}
