// Package whitespace implements the whitespace inferencer (spec.md
// component C): given the spatial positions of template atoms, it emits
// explicit Space/Push/Line/Indent/Unindent markers into an intermediate
// token stream.
package whitespace

import (
	"github.com/udoprog/genco/internal/atom"
	"github.com/udoprog/genco/internal/its"
)

// State is the inferencer's save/restore point, acquired on entry to a
// nested construct (an interpolated value's own output, a $for/$if/
// $match body) and released at its matching exit, per spec.md §5's
// concurrency model.
type State struct {
	prevEnd       atom.Position
	columnStack   []int
	started       bool
	hasPrevColumn bool
}

// Inferencer tracks prev_end and column_stack (spec.md §4.C) across a
// single render. Degraded mode (flat) is chosen only by constructing the
// Inferencer with NewDegraded; the supplied atoms' positions are never
// inspected to select it.
type Inferencer struct {
	State
	flat     bool
	lastSpan atom.Span
	// soft, when true, downgrades a would-be Push into a Line — used
	// while rendering a $for...join(...) separator body, whose own
	// embedded line breaks must be suppressible at boundaries rather
	// than hard (spec.md §4.C, last paragraph).
	soft bool
}

// New creates an Inferencer in normal (position-aware) mode.
func New() *Inferencer {
	return &Inferencer{}
}

// NewDegraded creates an Inferencer that never reasons about columns: a
// single Space between non-adjacent atoms, no Indent/Unindent. This is
// the Design Notes fallback, used only when a caller asks for it
// (RenderFlat, RenderAtomsFlat, the CLI's --flat flag); atoms with
// missing or zero positions do not switch to it on their own.
func NewDegraded() *Inferencer {
	return &Inferencer{flat: true}
}

// Save snapshots the current state for a nested construct.
func (inf *Inferencer) Save() State { return inf.State }

// Restore reinstates a previously saved state in full, prev_end
// included, as if the nested construct's output had never happened from
// the outer scope's point of view. A caller that wants the outer scope to
// continue from the nested construct's last atom does not call Restore.
// See Enter/Exit for the common pattern.
func (inf *Inferencer) Restore(s State) { inf.State = s }

// Enter begins a nested construct and returns the saved outer state to
// hand to Exit, per the
// Design Notes resolution of the $if open question: the body's first
// atom position becomes the reference column, and the outer column
// stack is inherited unchanged (see DESIGN.md).
func (inf *Inferencer) Enter() State {
	saved := inf.Save()
	return saved
}

// Exit restores the outer state after a nested construct completes,
// synthesizing the Unindent spec.md §4.E describes ("on exit, a
// synthetic Unindent restores the outer column stack") whenever the
// nested construct pushed any Indent levels of its own.
func (inf *Inferencer) Exit(saved State, stream *its.Stream) {
	for len(inf.columnStack) > len(saved.columnStack) {
		stream.AppendUnindent()
		inf.columnStack = inf.columnStack[:len(inf.columnStack)-1]
	}
	inf.State = saved
}

// WithSoftBreaks returns an Inferencer that behaves identically except
// that line jumps render as Line instead of Push. Used for join
// separators.
func (inf *Inferencer) WithSoftBreaks() *Inferencer {
	clone := *inf
	clone.columnStack = append([]int(nil), inf.columnStack...)
	clone.soft = true
	return &clone
}

// EmitAtom runs the algorithm of spec.md §4.C for a single literal atom
// and appends the resulting markers plus its text to stream.
func (inf *Inferencer) EmitAtom(a atom.Atom, stream *its.Stream) {
	inf.EmitSpan(a.Span, stream)
	stream.AppendText(a.Text)
}

// EmitSpan runs the same positional algorithm as EmitAtom but appends no
// text of its own: used for an interpolation, whose replacement content
// (an Item, or host-supplied text of arbitrary shape) is appended by the
// caller immediately afterward. The span stands in for the "atom" the
// algorithm reasons about.
func (inf *Inferencer) EmitSpan(span atom.Span, stream *its.Stream) {
	if inf.flat {
		inf.emitFlat(span, stream)
		return
	}

	if !inf.started {
		inf.columnStack = append(inf.columnStack, span.Start.Column)
		inf.started = true
		inf.hasPrevColumn = true
		inf.prevEnd = span.End
		return
	}

	s := span.Start
	switch {
	case s.Line == inf.prevEnd.Line && s.Column > inf.prevEnd.Column:
		stream.AppendSpace()
	case s.Line > inf.prevEnd.Line:
		d := s.Line - inf.prevEnd.Line
		if inf.soft {
			stream.AppendLine()
		} else if d == 1 {
			stream.AppendPush()
		} else {
			stream.AppendPush()
			stream.AppendPush()
		}
		inf.applyColumn(s.Column, stream)
	}

	inf.prevEnd = span.End
}

func (inf *Inferencer) applyColumn(column int, stream *its.Stream) {
	top := inf.columnStack[len(inf.columnStack)-1]
	switch {
	case column > top:
		stream.AppendIndent()
		inf.columnStack = append(inf.columnStack, column)
	case column == top:
		// no structural change
	default:
		stream.AppendUnindent()
		inf.columnStack = inf.columnStack[:len(inf.columnStack)-1]
		for len(inf.columnStack) > 0 && inf.columnStack[len(inf.columnStack)-1] > column {
			stream.AppendUnindent()
			inf.columnStack = inf.columnStack[:len(inf.columnStack)-1]
		}
		if len(inf.columnStack) == 0 || inf.columnStack[len(inf.columnStack)-1] != column {
			// Best-effort dedent: the column lies between two stack
			// levels (or below the outermost one), so it becomes a
			// level of its own; no error (spec.md §4.C).
			inf.columnStack = append(inf.columnStack, column)
		}
	}
}

func (inf *Inferencer) emitFlat(span atom.Span, stream *its.Stream) {
	if inf.hasPrevColumn && inf.lastSpan.End != span.Start {
		stream.AppendSpace()
	}
	inf.lastSpan = span
	inf.hasPrevColumn = true
}
