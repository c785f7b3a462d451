// Package cursor implements the source cursor (spec.md component A): a
// sequential reader over an atom stream with adjacency queries, used by
// internal/quasi to recognize the interpolation sublanguage.
package cursor

import "github.com/udoprog/genco/internal/atom"

// Cursor reads a sequence of atoms one at a time. It generalizes the
// teacher's parser.TokenStream (internal/parser/stream.go) from a flat
// Rust token index to an atom index with joint-adjacency awareness.
type Cursor interface {
	// Peek returns the next atom without consuming it. Returns the EOF
	// atom once the stream is exhausted.
	Peek() atom.Atom
	// PeekN returns the nth atom ahead (n=0 is Peek()), or the EOF atom
	// past the end.
	PeekN(n int) atom.Atom
	// Next returns the next atom and advances past it.
	Next() atom.Atom
	// Eof reports whether Peek() would return the EOF atom.
	Eof() bool
	// Span returns the span of the next atom (or of the EOF position —
	// the end of the last real atom — once exhausted).
	Span() atom.Span
	// JointWithNext reports whether the atom just consumed (the one
	// returned by the most recent Next()) abuts the atom now at Peek(),
	// with no source whitespace between them. Used to distinguish "$$"
	// (escape) from "$" followed by unrelated, non-adjacent text.
	JointWithNext() bool
}

type sliceCursor struct {
	atoms []atom.Atom
	pos   int
	last  atom.Atom
	hasLast bool
}

// New wraps a flat slice of atoms (e.g. the top level of an atomizer
// result, or the Children of a Group atom) in a Cursor.
func New(atoms []atom.Atom) Cursor {
	return &sliceCursor{atoms: atoms}
}

func (c *sliceCursor) Peek() atom.Atom { return c.PeekN(0) }

func (c *sliceCursor) PeekN(n int) atom.Atom {
	idx := c.pos + n
	if idx >= len(c.atoms) {
		return atom.EOFAtom()
	}
	return c.atoms[idx]
}

func (c *sliceCursor) Next() atom.Atom {
	a := c.Peek()
	if a.Kind != atom.EOF {
		c.pos++
		c.last = a
		c.hasLast = true
	}
	return a
}

func (c *sliceCursor) Eof() bool { return c.Peek().Kind == atom.EOF }

func (c *sliceCursor) Span() atom.Span {
	if a := c.Peek(); a.Kind != atom.EOF {
		return a.Span
	}
	if len(c.atoms) > 0 {
		end := c.atoms[len(c.atoms)-1].Span.End
		return atom.Span{Start: end, End: end}
	}
	return atom.Span{}
}

func (c *sliceCursor) JointWithNext() bool {
	if !c.hasLast {
		return false
	}
	next := c.Peek()
	if next.Kind == atom.EOF {
		return false
	}
	return atom.Joint(c.last, next)
}
