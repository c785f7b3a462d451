package quasi

import (
	"fmt"

	"github.com/udoprog/genco/internal/atom"
)

// ParseError is a malformed interpolation: a "for" missing "in", a
// "match" missing "=>", or an unexpected end of input (spec.md §7). An
// unmatched bracket is not a ParseError: brackets are matched before
// parsing, and internal/atomizer reports a mismatch as its own
// BracketError. It carries the offending span, matching the teacher's
// parser.ParseError (message + position) but keyed on a Span rather than
// a single Rust token.
type ParseError struct {
	Msg  string
	Span atom.Span
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

func (e ParseError) String() string { return e.Error() }
