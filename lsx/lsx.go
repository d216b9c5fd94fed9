// Package lsx implements the LSX XML bridge: marshaling a Resource to the
// textual save-game form and back (spec.md §6 "XML interface").
//
// The XML producer writes an XML 1.0 UTF-8 document with root <save>, a
// single <version> element carrying the four metadata fields, and one
// <region id="…"> per region containing nested <node id="…"> elements with
// <attribute id type value/> children and optional <children> wrappers.
package lsx

import (
	"encoding/xml"
	"io"

	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/resource"
)

// Marshal writes res to w as an LSX document.
func Marshal(w io.Writer, res *resource.Resource) error {
	doc, err := toDocument(res)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return enc.Encode(doc)
}

// Unmarshal decodes an LSX document from r into a Resource. diag reports
// soft errors (unresolvable attribute type tags are dropped with a
// diagnostic rather than failing the whole document).
func Unmarshal(r io.Reader) (*resource.Resource, *errs.Diagnostics, error) {
	var doc saveDocument

	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, err
	}

	diag := &errs.Diagnostics{}
	res := fromDocument(&doc, diag)

	return res, diag, nil
}
