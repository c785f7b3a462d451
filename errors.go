package genco

import (
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/quasi"
)

// ParseError surfaces a malformed interpolation with its source span
// (spec.md §7, error kind 1). Aliased here so callers never need to
// import the internal package that defines it.
type ParseError = quasi.ParseError

// FormatError surfaces an adapter's rejection of a value it was asked to
// quote or render (spec.md §7, error kind 2).
type FormatError = lang.FormatError

// SinkError wraps a failure of the io.Writer a render was asked to fill
// (spec.md §7, error kind 3): propagated unchanged, not reinterpreted.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "genco: sink error: " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }
