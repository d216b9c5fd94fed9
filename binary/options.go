package binary

import "github.com/ls-go/lsf/internal/options"

// WriterConfig holds the functional-option-configurable knobs for Write.
// The compression method itself stays a positional argument (it governs
// decoding too, so it belongs to the file, not to one writer's taste);
// these options cover writer-only sub-format choices.
type WriterConfig struct {
	// LZ4Block selects the raw LZ4 block sub-format instead of the
	// self-describing frame format. Readers accept both regardless of
	// this setting (spec.md §4.1).
	LZ4Block bool
}

// WriterOption configures a WriterConfig before Write runs.
type WriterOption = options.Option[*WriterConfig]

// WithLZ4Block selects the raw LZ4 block wire sub-format on write. Has no
// effect unless the file's compression method is CompressionLZ4.
func WithLZ4Block() WriterOption {
	return options.NoError(func(c *WriterConfig) { c.LZ4Block = true })
}
