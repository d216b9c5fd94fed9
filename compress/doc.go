// Package compress implements the four chunk compression methods used by
// the LSF container format: none, zlib, LZ4, and Zstd.
//
// Each of the file's five chunks (Strings, Keys, Nodes, Attributes, Values)
// carries its method in the low 4 bits of a single compression_flags word
// recorded once per file (spec: the method is not per-chunk). A chunk whose
// declared compressed_size is zero and uncompressed_size is positive is
// stored raw regardless of the method nibble; the binary package's chunk
// reader copies such a chunk directly and never hands it to a Codec.
package compress
