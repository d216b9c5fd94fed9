// Package resource defines the in-memory Resource data model shared by the
// LSF binary codec and the LSX XML bridge: a versioned document made of
// named Regions, each a tree of Nodes carrying typed Attributes.
package resource

import "github.com/ls-go/lsf/format"

// Metadata holds the four version integers carried by a Resource. Only
// Major affects the binary framing (spec.md §3); Minor/Revision/Build are
// meaningful on the LSX side and always zero when a Resource originates
// from a binary read, since the wire header carries no fields for them.
// EngineVersion is the binary header's opaque 64-bit engine version word,
// round-tripped verbatim.
type Metadata struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Build    uint32

	EngineVersion uint64
}

// Resource is a complete document: metadata plus a name-keyed set of
// Regions. Region names are unique within a Resource.
type Resource struct {
	Metadata Metadata
	Regions  []*Region

	// Keys holds the raw version >= 6 Keys chunk, opaque to this codec and
	// round-tripped verbatim. Empty for versions below 6.
	Keys []byte
}

// Region looks up a region by name, or returns nil if none matches.
func (r *Resource) Region(name string) *Region {
	for _, region := range r.Regions {
		if region.Name == name {
			return region
		}
	}

	return nil
}

// Region is a named root holding an ordered sequence of top-level Nodes.
type Region struct {
	Name  string
	Nodes []*Node
}

// Node is identified by a domain name and carries an ordered sequence of
// children plus an ordered set of attributes (per-node attribute names are
// unique). ID is an optional XML-facing override for the node's id
// attribute; when empty, the LSX bridge falls back to Name, matching the
// reference implementation where the resolved binary name is written
// directly as the node's id.
type Node struct {
	Name       string
	ID         string
	Children   []*Node
	Attributes []*Attribute
}

// Attribute looks up an attribute on this node by name, or returns nil if
// none matches.
func (n *Node) Attribute(name string) *Attribute {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a
		}
	}

	return nil
}

// Attribute pairs a type drawn from the 34-entry catalog with a typed
// value whose Go representation is determined by that type (see the value
// package).
type Attribute struct {
	Name  string
	Type  format.AttributeType
	Value any
}
