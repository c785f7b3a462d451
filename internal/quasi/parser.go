package quasi

import (
	"github.com/udoprog/genco/internal/atom"
	"github.com/udoprog/genco/internal/cursor"
)

// Parser recognizes the '$' sublanguage of spec.md §4.B over an atom
// stream and lowers it into a Template. Grounded on the teacher's
// recursive-descent parser (internal/parser/grammar.go,
// internal/parser/parser.go): same error-accumulation style, same
// "keep going, collect every error" philosophy rather than failing fast.
type Parser struct {
	errors []ParseError
}

// NewParser creates a Parser. Unlike the teacher's Parser, which owns a
// single token stream for its whole lifetime, this one is reentrant: it
// is invoked once per nested body (each $if/$for/$match arm/Group
// recurses into a fresh cursor), sharing only the accumulated error list.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a flat atom slice (top-level template source, or the
// Children of a Group) into a Template plus any accumulated errors.
func Parse(atoms []atom.Atom) (*Template, []ParseError) {
	p := NewParser()
	body := p.parseBody(cursor.New(atoms))
	return &Template{Body: body}, p.errors
}

func (p *Parser) error(msg string, span atom.Span) {
	p.errors = append(p.errors, ParseError{Msg: msg, Span: span})
}

// parseBody consumes c to EOF, merging opaque atom runs into Literal (or
// QuotedString, for a bare string atom containing '$') nodes and
// recognizing '$' forms in between.
func (p *Parser) parseBody(c cursor.Cursor) Body {
	var body Body
	var run []atom.Atom

	flush := func() {
		if len(run) > 0 {
			body = append(body, Literal{Atoms: run, LitSpan: atom.Span{Start: run[0].Span.Start, End: run[len(run)-1].Span.End}})
			run = nil
		}
	}

	for !c.Eof() {
		next := c.Peek()
		switch {
		case next.Kind == atom.Sentinel:
			flush()
			if n := p.parseInterp(c); n != nil {
				body = append(body, n)
			}
		case next.Kind == atom.String && containsDollar(next.Text):
			flush()
			c.Next()
			body = append(body, p.parseQuotedAtom(next))
		default:
			run = append(run, c.Next())
		}
	}
	flush()
	return body
}

func containsDollar(s string) bool {
	for _, r := range s {
		if r == '$' {
			return true
		}
	}
	return false
}

// parseInterp consumes the already-peeked Sentinel atom and whatever
// follows it, applying the tie-break rules of spec.md §4.B. It always
// returns a node: an unrecognized form after '$' records a ParseError,
// skips that one atom and yields the '$' as a one-atom Literal, so
// parsing continues with what follows. A bare, non-joint '$' is likewise
// emitted directly as a one-atom Literal to keep the body flat.
func (p *Parser) parseInterp(c cursor.Cursor) Node {
	dollar := c.Next() // consume '$'
	if c.Eof() || !c.JointWithNext() {
		// '$' not followed jointly by anything: spec.md §4.B tie-break —
		// this is a literal '$', not an interpolation.
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}

	next := c.Peek()
	switch {
	case next.Kind == atom.Sentinel:
		c.Next()
		return Escape{EscSpan: atom.Span{Start: dollar.Span.Start, End: next.Span.End}}

	case next.Kind == atom.Ident && next.Text == "if":
		return p.parseIf(c, dollar)

	case next.Kind == atom.Ident && next.Text == "match":
		return p.parseMatch(c, dollar)

	case next.Kind == atom.Ident && next.Text == "let":
		return p.parseLet(c, dollar)

	case next.Kind == atom.Ident && next.Text == "for":
		return p.parseFor(c, dollar)

	case next.Kind == atom.Ident && next.Text == "ref":
		c.Next()
		valAtoms := p.collectUntilBoundary(c)
		span := atom.Span{Start: dollar.Span.Start, End: endOf(valAtoms, next.Span)}
		return Ref{ExprVal: Expr{Atoms: valAtoms, ExprSpan: span}, RefSpan: span}

	case next.Kind == atom.Ident:
		c.Next()
		return Interp{
			ExprVal:  Expr{Atoms: []atom.Atom{next}, ExprSpan: next.Span},
			IntpSpan: atom.Span{Start: dollar.Span.Start, End: next.Span.End},
		}

	case next.Kind == atom.Group && next.Delim == atom.Paren:
		c.Next()
		return Interp{
			ExprVal:  Expr{Atoms: next.Children, ExprSpan: next.Span},
			IntpSpan: atom.Span{Start: dollar.Span.Start, End: next.Span.End},
		}

	case next.Kind == atom.Group && next.Delim == atom.Bracket:
		c.Next()
		return Register{
			ExprVal: Expr{Atoms: next.Children, ExprSpan: next.Span},
			RegSpan: atom.Span{Start: dollar.Span.Start, End: next.Span.End},
		}

	case next.Kind == atom.Group && next.Delim == atom.Brace:
		c.Next()
		return p.parseQuotedGroup(next, dollar)

	default:
		p.error("unrecognized form after '$'", next.Span)
		c.Next()
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
}

func endOf(atoms []atom.Atom, fallback atom.Span) atom.Position {
	if len(atoms) == 0 {
		return fallback.End
	}
	return atoms[len(atoms)-1].Span.End
}

// collectUntilBoundary gathers atoms for an opaque expression (a $let
// value or a $ref target) until EOF, the next '$' sentinel, or a
// top-level ';' terminator (consumed and discarded), whichever comes
// first. Brackets are never a boundary here since they arrive as
// already-grouped atoms, not individual punctuation.
func (p *Parser) collectUntilBoundary(c cursor.Cursor) []atom.Atom {
	var atoms []atom.Atom
	for !c.Eof() {
		n := c.Peek()
		if n.Kind == atom.Sentinel {
			break
		}
		if n.Kind == atom.Punct && n.Text == ";" {
			c.Next()
			break
		}
		atoms = append(atoms, c.Next())
	}
	return atoms
}

// collectUntilBrace gathers the condition/scrutinee/iterable atoms of an
// $if/$match/$for, which always end at the construct's required Brace
// body group.
func (p *Parser) collectUntilBrace(c cursor.Cursor) []atom.Atom {
	var atoms []atom.Atom
	for !c.Eof() {
		n := c.Peek()
		if n.Kind == atom.Group && n.Delim == atom.Brace {
			break
		}
		atoms = append(atoms, c.Next())
	}
	return atoms
}

func (p *Parser) parseIf(c cursor.Cursor, dollar atom.Atom) Node {
	c.Next() // "if"
	condAtoms := p.collectUntilBrace(c)
	if c.Eof() {
		p.error("'if' missing body", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	thenGroup := c.Next()
	thenBody := p.parseBody(cursor.New(thenGroup.Children))

	var elseBody *Body
	if c.Peek().Kind == atom.Ident && c.Peek().Text == "else" {
		c.Next()
		if c.Peek().Kind == atom.Group && c.Peek().Delim == atom.Brace {
			elseGroup := c.Next()
			b := p.parseBody(cursor.New(elseGroup.Children))
			elseBody = &b
		} else {
			p.error("'else' missing body", c.Span())
		}
	}

	end := thenGroup.Span.End
	if elseBody != nil {
		end = elseBody.Span().End
	}
	return If{
		Cond:   Expr{Atoms: condAtoms, ExprSpan: spanOrDollar(condAtoms, dollar)},
		Then:   thenBody,
		Else:   elseBody,
		IfSpan: atom.Span{Start: dollar.Span.Start, End: end},
	}
}

func spanOrDollar(atoms []atom.Atom, dollar atom.Atom) atom.Span {
	if len(atoms) == 0 {
		return dollar.Span
	}
	return atom.Span{Start: atoms[0].Span.Start, End: atoms[len(atoms)-1].Span.End}
}

func (p *Parser) parseMatch(c cursor.Cursor, dollar atom.Atom) Node {
	c.Next() // "match"
	scrutAtoms := p.collectUntilBrace(c)
	if c.Eof() {
		p.error("'match' missing arm block", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	armsGroup := c.Next()
	arms := p.parseArms(armsGroup.Children)

	return Match{
		Scrutinee: Expr{Atoms: scrutAtoms, ExprSpan: spanOrDollar(scrutAtoms, dollar)},
		Arms:      arms,
		MatchSpan: atom.Span{Start: dollar.Span.Start, End: armsGroup.Span.End},
	}
}

func (p *Parser) parseArms(atoms []atom.Atom) []Arm {
	var arms []Arm
	c := cursor.New(atoms)
	for !c.Eof() {
		var patterns []Expr
		var patAtoms []atom.Atom
		foundArrow := false
		for !c.Eof() {
			n := c.Peek()
			if n.Kind == atom.Operator && n.Text == "|" {
				patterns = append(patterns, Expr{Atoms: patAtoms, ExprSpan: spanOrZero(patAtoms)})
				patAtoms = nil
				c.Next()
				continue
			}
			if n.Kind == atom.Operator && n.Text == "=>" {
				c.Next()
				foundArrow = true
				break
			}
			patAtoms = append(patAtoms, c.Next())
		}
		if !foundArrow {
			if len(patAtoms) > 0 || len(patterns) > 0 {
				p.error("'match' arm missing '=>'", spanOrZero(patAtoms))
			}
			break
		}
		patterns = append(patterns, Expr{Atoms: patAtoms, ExprSpan: spanOrZero(patAtoms)})

		var armBody Body
		if c.Peek().Kind == atom.Group && c.Peek().Delim == atom.Brace {
			g := c.Next()
			armBody = p.parseBody(cursor.New(g.Children))
		} else {
			var bodyAtoms []atom.Atom
			for !c.Eof() {
				n := c.Peek()
				if n.Kind == atom.Punct && n.Text == "," {
					break
				}
				bodyAtoms = append(bodyAtoms, c.Next())
			}
			armBody = p.parseBody(cursor.New(bodyAtoms))
		}
		arms = append(arms, Arm{Patterns: patterns, Body: armBody})

		if c.Peek().Kind == atom.Punct && c.Peek().Text == "," {
			c.Next()
		}
	}
	return arms
}

func spanOrZero(atoms []atom.Atom) atom.Span {
	if len(atoms) == 0 {
		return atom.Span{}
	}
	return atom.Span{Start: atoms[0].Span.Start, End: atoms[len(atoms)-1].Span.End}
}

func (p *Parser) parseLet(c cursor.Cursor, dollar atom.Atom) Node {
	c.Next() // "let"
	if c.Peek().Kind != atom.Ident {
		p.error("expected identifier after 'let'", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	name := c.Next()
	if !(c.Peek().Kind == atom.Operator && c.Peek().Text == "=") {
		p.error("expected '=' in 'let'", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	c.Next() // "="
	valAtoms := p.collectUntilBoundary(c)
	return Let{
		Binding: name.Text,
		Value:   Expr{Atoms: valAtoms, ExprSpan: spanOrDollar(valAtoms, name)},
		LetSpan: atom.Span{Start: dollar.Span.Start, End: endOf(valAtoms, name.Span)},
	}
}

func (p *Parser) parseFor(c cursor.Cursor, dollar atom.Atom) Node {
	c.Next() // "for"
	if c.Peek().Kind != atom.Ident {
		p.error("expected binding identifier after 'for'", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	binding := c.Next()
	if !(c.Peek().Kind == atom.Ident && c.Peek().Text == "in") {
		p.error("'for' missing 'in'", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	c.Next() // "in"

	var iterAtoms []atom.Atom
	for !c.Eof() {
		n := c.Peek()
		if n.Kind == atom.Ident && n.Text == "join" {
			break
		}
		if n.Kind == atom.Group && n.Delim == atom.Brace {
			break
		}
		iterAtoms = append(iterAtoms, c.Next())
	}

	var join *Body
	var joinLeadingSpace, joinTrailingSpace bool
	if c.Peek().Kind == atom.Ident && c.Peek().Text == "join" {
		c.Next()
		if !(c.Peek().Kind == atom.Group && c.Peek().Delim == atom.Paren) {
			p.error("'join' expects '(' separator ')'", c.Span())
		} else {
			g := c.Next()
			b := p.parseBody(cursor.New(g.Children))
			join = &b
			joinLeadingSpace, joinTrailingSpace = joinGroupSpacing(g)
		}
	}

	if c.Eof() || !(c.Peek().Kind == atom.Group && c.Peek().Delim == atom.Brace) {
		p.error("'for' missing body", c.Span())
		return Literal{Atoms: []atom.Atom{dollar}, LitSpan: dollar.Span}
	}
	bodyGroup := c.Next()
	body := p.parseBody(cursor.New(bodyGroup.Children))

	return Repeat{
		Binding:           binding.Text,
		Iterable:          Expr{Atoms: iterAtoms, ExprSpan: spanOrDollar(iterAtoms, binding)},
		Join:              join,
		JoinLeadingSpace:  joinLeadingSpace,
		JoinTrailingSpace: joinTrailingSpace,
		Body:              body,
		RepeatSpan:        atom.Span{Start: dollar.Span.Start, End: bodyGroup.Span.End},
	}
}

// joinGroupSpacing reports whether a join separator's enclosing group had
// source whitespace just inside its open or close parenthesis — the only
// place such whitespace could have been written, since it falls outside
// every child atom's own span and the atomizer never materializes it as
// an atom of its own.
func joinGroupSpacing(g atom.Atom) (leading, trailing bool) {
	if len(g.Children) == 0 {
		return false, false
	}
	first := g.Children[0]
	last := g.Children[len(g.Children)-1]
	open := atom.Position{Line: g.Span.Start.Line, Column: g.Span.Start.Column + 1}
	close := atom.Position{Line: g.Span.End.Line, Column: g.Span.End.Column - 1}
	leading = first.Span.Start.Line == open.Line && first.Span.Start.Column > open.Column
	trailing = last.Span.End.Line == close.Line && last.Span.End.Column < close.Column
	return leading, trailing
}
