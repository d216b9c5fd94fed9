// Package lsf provides a high-performance reader and writer for Larian's
// proprietary LSF binary game-data container.
//
// LSF stores a versioned Resource: named Regions, each a tree of Nodes
// carrying typed Attributes drawn from a closed 34-entry catalog. The file
// is a chunked, independently-compressed container (string pool, node
// records, attribute records, a raw value blob, and — from version 6 — an
// opaque Keys chunk), built for compact on-disk storage of deeply nested
// save-game and template data.
//
// # Basic Usage
//
// Reading a file:
//
//	res, diag, err := lsf.ReadFile("Main.lsf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !diag.Empty() {
//	    log.Println(diag)
//	}
//	region := res.Region("TemplateBank")
//
// Writing a file:
//
//	err := lsf.WriteFile("Main.lsf", res, lsf.CompressionZstd)
//
// # Package Structure
//
// This package is a thin façade over binary (file framing and
// orchestration), graph (node/attribute record codec), value (typed
// payload codec), stringtable (string pool codec), and resource (the
// shared in-memory data model also used by the lsx package). Use those
// packages directly for finer control.
package lsf

import (
	"io"
	"os"

	"github.com/ls-go/lsf/binary"
	"github.com/ls-go/lsf/endian"
	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/resource"
)

// Re-exported data model types, so callers need only import this package
// for common use.
type (
	Resource  = resource.Resource
	Region    = resource.Region
	Node      = resource.Node
	Attribute = resource.Attribute
	Metadata  = resource.Metadata

	AttributeType = format.AttributeType
	Diagnostics   = errs.Diagnostics
)

// Compression method constants, re-exported for callers configuring Write.
const (
	CompressionNone = format.CompressionNone
	CompressionZlib = format.CompressionZlib
	CompressionLZ4  = format.CompressionLZ4
	CompressionZstd = format.CompressionZstd
)

var defaultEngine = endian.GetLittleEndianEngine()

// Read decodes a complete LSF file from r into a Resource. diag reports
// any soft errors encountered (dropped or synthetically-named records);
// a non-nil err means a hard error aborted the decode (spec.md §7).
func Read(r io.Reader) (*Resource, *Diagnostics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	return binary.Read(data, defaultEngine)
}

// ReadFile opens path and decodes it as an LSF file.
func ReadFile(path string) (*Resource, *Diagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return Read(f)
}

// WriterOption configures a writer-only sub-format choice, e.g. WithLZ4Block.
type WriterOption = binary.WriterOption

// WithLZ4Block selects the raw LZ4 block wire sub-format on write instead
// of the self-describing frame format (readers accept both regardless).
func WithLZ4Block() WriterOption {
	return binary.WithLZ4Block()
}

// Write encodes res to w using the given compression method for every
// chunk. Encoding is total over any well-formed Resource (spec.md §7).
func Write(w io.Writer, res *Resource, method format.CompressionType, opts ...WriterOption) error {
	data, err := binary.Write(res, method, defaultEngine, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// WriteFile creates (or truncates) path and writes res to it.
func WriteFile(path string, res *Resource, method format.CompressionType, opts ...WriterOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, res, method, opts...); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
