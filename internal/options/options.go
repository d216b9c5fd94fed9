// Package options implements a minimal generic functional-options helper
// used by the binary writer, so knob sets (e.g.
// WriterConfig's LZ4 sub-format choice) grow without new constructor
// parameters (spec.md §4.6).
package options

// Option configures a target of type T. It returns an error so option
// constructors can validate their arguments at apply time rather than at
// call time.
type Option[T any] func(T) error

// Apply runs every opt against target in order, stopping at the first
// error. A nil opt is skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}

// New wraps fn, which may fail, as an Option.
func New[T any](fn func(T) error) Option[T] {
	return Option[T](fn)
}

// NoError wraps fn, which cannot fail, as an Option.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)

		return nil
	}
}
