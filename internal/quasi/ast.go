// Package quasi implements the interpolation parser (spec.md component
// B): it recognizes the '$'-prefixed sublanguage embedded in otherwise
// opaque target-language atoms and lowers it into the template AST
// described in spec.md §3.
package quasi

import "github.com/udoprog/genco/internal/atom"

// Node is any piece of a parsed template.
type Node interface {
	Span() atom.Span
}

// Expr captures a host expression verbatim: the quasiquote grammar never
// interprets expression text, it only delimits it (spec.md Design Note
// "Opaque host expressions"). The host evaluates it via Bindings.Eval,
// keyed by Raw().
type Expr struct {
	Atoms    []atom.Atom
	ExprSpan atom.Span
}

func (e Expr) Span() atom.Span { return e.ExprSpan }

// Raw reconstructs a best-effort source rendering of the captured atoms,
// for use as a lookup key and in diagnostics. It is not guaranteed to be
// byte-identical to the original source (only to be stable and readable).
func (e Expr) Raw() string {
	return renderAtoms(e.Atoms)
}

// Literal is an opaque run of target-language atoms, preserved verbatim.
type Literal struct {
	Atoms    []atom.Atom
	LitSpan  atom.Span
}

func (l Literal) Span() atom.Span { return l.LitSpan }

// Interp interpolates a single host value into the output.
type Interp struct {
	ExprVal  Expr
	IntpSpan atom.Span
}

func (i Interp) Span() atom.Span { return i.IntpSpan }

// Register evaluates a host value for its side effect (e.g. import
// registration) without emitting any text.
type Register struct {
	ExprVal  Expr
	RegSpan  atom.Span
}

func (r Register) Span() atom.Span { return r.RegSpan }

// Ref is a non-consuming reference: like Interp, but signals to the
// evaluator that the referenced value is borrowed, not owned, and must
// not be registered as an import even if the adapter would otherwise do
// so for a plain Interp of the same value. Supplements the distilled
// spec (see SPEC_FULL.md §13).
type Ref struct {
	ExprVal Expr
	RefSpan atom.Span
}

func (r Ref) Span() atom.Span { return r.RefSpan }

// Escape produces a literal '$' in the output ("$$").
type Escape struct {
	EscSpan atom.Span
}

func (e Escape) Span() atom.Span { return e.EscSpan }

// Body is a nested template: a sequence of nodes parsed the same way as
// the top level.
type Body []Node

func (b Body) Span() atom.Span {
	if len(b) == 0 {
		return atom.Span{}
	}
	return atom.Span{Start: b[0].Span().Start, End: b[len(b)-1].Span().End}
}

// Repeat is "$for binding in iterable [join (sep)] { body }".
type Repeat struct {
	Binding  string
	Iterable Expr
	Join     *Body
	// JoinLeadingSpace/JoinTrailingSpace record whether the separator's
	// enclosing "(...)" had source whitespace between its parenthesis
	// and its first/last atom — whitespace the atom model has no other
	// way to carry, since it lies outside every atom's own span (spec.md
	// §8's join law, "join (, )" renders "a, b, c", depends on the
	// trailing one).
	JoinLeadingSpace  bool
	JoinTrailingSpace bool
	Body              Body
	RepeatSpan        atom.Span
}

func (r Repeat) Span() atom.Span { return r.RepeatSpan }

// If is "$if cond { then } [else { else }]".
type If struct {
	Cond   Expr
	Then   Body
	Else   *Body
	IfSpan atom.Span
}

func (i If) Span() atom.Span { return i.IfSpan }

// Arm is one "pat (| pat)* => body" arm of a $match.
type Arm struct {
	Patterns []Expr
	Body     Body
}

// Match is "$match scrutinee { arm* }".
type Match struct {
	Scrutinee Expr
	Arms      []Arm
	MatchSpan atom.Span
}

func (m Match) Span() atom.Span { return m.MatchSpan }

// Let is "$let name = expr", binding a name for subsequent $name/$(expr)
// references within the same body.
type Let struct {
	Binding string
	Value   Expr
	LetSpan atom.Span
}

func (l Let) Span() atom.Span { return l.LetSpan }

// StringPart is one piece of a QuotedString: either opaque literal text
// or an interpolated value.
type StringPart struct {
	IsInterp bool
	Text     string // valid when !IsInterp
	ExprVal  Expr   // valid when IsInterp
}

// QuotedString is a string literal (quotes matched at parse time)
// containing zero or more interpolations, to be rendered via the
// language adapter's quoting rules.
type QuotedString struct {
	Parts  []StringPart
	QSSpan atom.Span
}

func (q QuotedString) Span() atom.Span { return q.QSSpan }

// Template is the parsed form of an entire quasiquote body.
type Template struct {
	Body Body
}
