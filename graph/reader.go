package graph

import (
	"fmt"
	"log/slog"

	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/resource"
	"github.com/ls-go/lsf/stringtable"
	"github.com/ls-go/lsf/value"
)

// maxAttributesPerNode bounds the attribute-chain walk (spec.md §4.5: "a
// configurable safety limit (1,000 per node)").
const maxAttributesPerNode = 1000

// maxAttributeValueSize is the 1 MiB per-value safety cap (spec.md §4.4).
const maxAttributeValueSize = 1 << 20

// NameResolver resolves a packed string id, recording a diagnostic and
// returning a synthetic name when the id does not resolve.
type NameResolver struct {
	Table       *stringtable.Table
	Diagnostics *errs.Diagnostics
}

func (r *NameResolver) resolve(id uint32, context string) string {
	if s, ok := r.Table.String(id); ok {
		return s
	}

	r.Diagnostics.Add(&errs.UnresolvedStringReferenceError{Context: context, Ref: id})

	if context == "node" {
		return fmt.Sprintf("node_0x%x", id)
	}

	return fmt.Sprintf("attr_0x%x", id)
}

// Read reconstructs the region/node tree from the decoded node and
// attribute record arrays plus the raw values blob (spec.md §4.5
// "Reading (reconstruction)"). v3OrLater selects the record layout and
// whether ValueOffset is explicit (v3+) or a running cursor (pre-v3).
func Read(
	nodeRecords []NodeRecord,
	attrRecords []AttributeRecord,
	valueBlob []byte,
	strings *stringtable.Table,
	v3OrLater bool,
	engine endian.EndianEngine,
) ([]*resource.Region, *errs.Diagnostics, error) {
	diag := &errs.Diagnostics{}
	resolver := &NameResolver{Table: strings, Diagnostics: diag}

	attrValues, attrTypes := decodeAttributeValues(attrRecords, valueBlob, v3OrLater, engine, diag)

	nodes := make([]*resource.Node, len(nodeRecords))
	for i, rec := range nodeRecords {
		nodes[i] = &resource.Node{
			Name:       resolver.resolve(rec.NameID, "node"),
			Attributes: collectAttributes(i, nodeRecords, attrRecords, attrValues, attrTypes, resolver, diag),
		}
	}

	roots := rootIndices(nodeRecords, true)
	if len(roots) == 0 && len(nodeRecords) > 0 {
		slog.Warn("lsf: no strict region roots found (parent_idx == -1), falling back to permissive rule (parent_idx <= 0)")
		roots = rootIndices(nodeRecords, false)
	}

	isRoot := make([]bool, len(nodeRecords))
	for _, i := range roots {
		isRoot[i] = true
	}

	attachChildren(nodeRecords, nodes, isRoot, diag)

	return buildRegions(roots, nodes, diag), diag, nil
}

func decodeAttributeValues(
	attrRecords []AttributeRecord,
	valueBlob []byte,
	v3OrLater bool,
	engine endian.EndianEngine,
	diag *errs.Diagnostics,
) ([]any, []format.AttributeType) {
	values := make([]any, len(attrRecords))
	types := make([]format.AttributeType, len(attrRecords))

	cursor := 0

	for i, rec := range attrRecords {
		typeID := format.AttributeType(rec.TypeID())
		length := rec.Length()
		types[i] = typeID

		if !typeID.Valid() {
			diag.Add(&errs.UnknownAttributeTypeError{AttrIndex: i, TypeID: rec.TypeID()})

			continue
		}

		if length > maxAttributeValueSize {
			diag.Add(&errs.AttributeTooLargeError{AttrIndex: i, Length: length})

			if !v3OrLater {
				cursor += int(length)
			}

			continue
		}

		var offset int
		if v3OrLater {
			offset = int(rec.ValueOffset)
		} else {
			offset = cursor
			cursor += int(length)
		}

		if offset < 0 || offset+int(length) > len(valueBlob) {
			diag.Add(&errs.OutOfRangeIndexError{Context: "attribute value offset", Index: offset, Limit: len(valueBlob)})

			continue
		}

		v, err := value.Decode(typeID, valueBlob[offset:offset+int(length)], engine)
		if err != nil {
			diag.Add(&errs.OutOfRangeIndexError{Context: "attribute value decode", Index: i, Limit: len(attrRecords)})

			continue
		}

		values[i] = v
	}

	return values, types
}

func collectAttributes(
	nodeIdx int,
	nodeRecords []NodeRecord,
	attrRecords []AttributeRecord,
	attrValues []any,
	attrTypes []format.AttributeType,
	resolver *NameResolver,
	diag *errs.Diagnostics,
) []*resource.Attribute {
	rec := nodeRecords[nodeIdx]
	if rec.FirstAttributeIdx == NoIndex {
		return nil
	}

	var attrs []*resource.Attribute

	visited := make(map[int32]bool)
	idx := rec.FirstAttributeIdx

	for idx != NoIndex {
		if len(attrs) >= maxAttributesPerNode {
			break
		}

		if int(idx) < 0 || int(idx) >= len(attrRecords) {
			diag.Add(&errs.OutOfRangeIndexError{Context: "attribute chain", Index: int(idx), Limit: len(attrRecords)})

			break
		}

		if visited[idx] {
			diag.Add(&errs.CycleDetectedError{Context: "attribute chain", StartIndex: int(rec.FirstAttributeIdx)})

			break
		}

		visited[idx] = true

		attrRec := attrRecords[idx]
		if attrTypes[idx].Valid() && attrValues[idx] != nil {
			attrs = append(attrs, &resource.Attribute{
				Name:  resolver.resolve(attrRec.NameID, "attribute"),
				Type:  attrTypes[idx],
				Value: attrValues[idx],
			})
		}

		idx = attrRec.NextAttributeIdx
	}

	return attrs
}

func attachChildren(nodeRecords []NodeRecord, nodes []*resource.Node, isRoot []bool, diag *errs.Diagnostics) {
	referencedAsNext := make(map[int32]bool)
	for _, rec := range nodeRecords {
		if rec.NextSiblingIdx != NoIndex {
			referencedAsNext[rec.NextSiblingIdx] = true
		}
	}

	headSeen := make(map[int32]bool)

	for i, rec := range nodeRecords {
		if isRoot[i] {
			continue
		}
		if referencedAsNext[int32(i)] { //nolint:gosec
			continue
		}

		if headSeen[rec.ParentIdx] {
			continue
		}
		headSeen[rec.ParentIdx] = true

		parentIdx := int(rec.ParentIdx)
		if parentIdx < 0 || parentIdx >= len(nodes) {
			diag.Add(&errs.OutOfRangeIndexError{Context: "node parent", Index: parentIdx, Limit: len(nodes)})

			continue
		}

		visited := make(map[int32]bool)
		idx := int32(i) //nolint:gosec

		for idx != NoIndex {
			if visited[idx] {
				diag.Add(&errs.CycleDetectedError{Context: "sibling chain", StartIndex: i})

				break
			}
			visited[idx] = true

			if int(idx) >= len(nodes) {
				diag.Add(&errs.OutOfRangeIndexError{Context: "sibling chain", Index: int(idx), Limit: len(nodes)})

				break
			}

			nodes[parentIdx].Children = append(nodes[parentIdx].Children, nodes[idx])
			idx = nodeRecords[idx].NextSiblingIdx
		}
	}
}

func isRootRec(rec NodeRecord, strict bool) bool {
	if strict {
		return rec.ParentIdx == NoIndex
	}

	return rec.ParentIdx <= 0
}

func buildRegions(roots []int, nodes []*resource.Node, diag *errs.Diagnostics) []*resource.Region {
	regions := make([]*resource.Region, 0, len(roots))
	seen := make(map[string]bool)

	for _, i := range roots {
		name := nodes[i].Name
		if seen[name] {
			diag.Add(&errs.DuplicateRegionNameError{Name: name})

			continue
		}
		seen[name] = true

		regions = append(regions, &resource.Region{Name: name, Nodes: []*resource.Node{nodes[i]}})
	}

	return regions
}

func rootIndices(nodeRecords []NodeRecord, strict bool) []int {
	var idxs []int
	for i, rec := range nodeRecords {
		if isRootRec(rec, strict) {
			idxs = append(idxs, i)
		}
	}

	return idxs
}
