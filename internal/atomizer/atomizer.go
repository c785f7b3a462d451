package atomizer

import (
	"fmt"
	"strings"

	"github.com/udoprog/genco/internal/atom"
)

// BracketError reports an unmatched '(' '{' or '[' (or a stray close)
// found while grouping atoms into balanced Group atoms.
type BracketError struct {
	Pos     atom.Position
	Message string
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Atomize turns raw template source into a flat, top-level []atom.Atom
// stream, with bracketed runs collapsed into atom.Group atoms.
func Atomize(src string) ([]atom.Atom, error) {
	s := newScanner(src)
	atoms, err := scanLevel(s, 0)
	if err != nil {
		return nil, err
	}
	return atoms, nil
}

// scanLevel scans atoms until EOF (closing == 0) or until it sees the
// rune in closing, which it leaves unconsumed for the caller to account
// for in the enclosing Group's span.
func scanLevel(s *scanner, closing rune) ([]atom.Atom, error) {
	var atoms []atom.Atom
	for {
		skipWhitespace(s)
		if s.isEOF() {
			if closing != 0 {
				return nil, &BracketError{Pos: s.position(), Message: "unexpected end of input, unmatched bracket"}
			}
			return atoms, nil
		}
		if s.ch == closing {
			return atoms, nil
		}
		if _, isClose := closeFor[closing]; isClose {
			// unreachable guard: closeFor maps opens to closes, not used here.
		}
		if isStrayClose(s.ch) {
			return nil, &BracketError{Pos: s.position(), Message: fmt.Sprintf("unexpected closing %q with no matching open", s.ch)}
		}
		a, err := scanOne(s)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}
}

func isStrayClose(r rune) bool {
	return r == ')' || r == '}' || r == ']'
}

func skipWhitespace(s *scanner) {
	for !s.isEOF() && (s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r') {
		s.readChar()
	}
}

func scanOne(s *scanner) (atom.Atom, error) {
	start := s.position()
	ch := s.ch

	if open, ok := delimFor[ch]; ok {
		_ = open
		return scanGroup(s, start)
	}

	switch {
	case ch == '$':
		s.readChar()
		return atom.Atom{Kind: atom.Sentinel, Text: "$", Span: atom.Span{Start: start, End: s.position()}}, nil
	case ch == '"':
		return scanString(s, start)
	case isIdentStart(ch):
		return scanIdent(s, start)
	case isDigit(ch):
		return scanNumber(s, start)
	case isOperatorChar(ch):
		return scanOperator(s, start)
	default:
		s.readChar()
		return atom.Atom{Kind: atom.Punct, Text: string(ch), Span: atom.Span{Start: start, End: s.position()}}, nil
	}
}

func scanGroup(s *scanner, start atom.Position) (atom.Atom, error) {
	open := s.ch
	closing := closeFor[open]
	delim := delimFor[open]
	s.readChar() // consume opening bracket

	children, err := scanLevel(s, closing)
	if err != nil {
		return atom.Atom{}, err
	}
	if s.isEOF() || s.ch != closing {
		return atom.Atom{}, &BracketError{Pos: start, Message: fmt.Sprintf("unmatched %q", open)}
	}
	s.readChar() // consume closing bracket
	return atom.Atom{
		Kind:     atom.Group,
		Delim:    delim,
		Children: children,
		Span:     atom.Span{Start: start, End: s.position()},
	}, nil
}

func scanIdent(s *scanner, start atom.Position) (atom.Atom, error) {
	var b strings.Builder
	for !s.isEOF() && isIdentCont(s.ch) {
		b.WriteRune(s.ch)
		s.readChar()
	}
	return atom.Atom{Kind: atom.Ident, Text: b.String(), Span: atom.Span{Start: start, End: s.position()}}, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func scanNumber(s *scanner, start atom.Position) (atom.Atom, error) {
	var b strings.Builder
	for !s.isEOF() && (isDigit(s.ch) || s.ch == '.' || s.ch == '_' ||
		s.ch == 'x' || s.ch == 'b' || s.ch == 'o' || s.ch == 'e' || s.ch == 'E' ||
		(b.Len() > 0 && isIdentCont(s.ch))) {
		b.WriteRune(s.ch)
		s.readChar()
	}
	return atom.Atom{Kind: atom.Literal, Text: b.String(), Span: atom.Span{Start: start, End: s.position()}}, nil
}

func scanString(s *scanner, start atom.Position) (atom.Atom, error) {
	var b strings.Builder
	b.WriteRune(s.ch) // opening quote
	s.readChar()
	for !s.isEOF() && s.ch != '"' {
		if s.ch == '\\' {
			b.WriteRune(s.ch)
			s.readChar()
			if s.isEOF() {
				break
			}
		}
		b.WriteRune(s.ch)
		s.readChar()
	}
	if s.isEOF() {
		return atom.Atom{}, &BracketError{Pos: start, Message: "unterminated string literal"}
	}
	b.WriteRune(s.ch) // closing quote
	s.readChar()
	return atom.Atom{Kind: atom.String, Text: b.String(), Span: atom.Span{Start: start, End: s.position()}}, nil
}

func scanOperator(s *scanner, start atom.Position) (atom.Atom, error) {
	var b strings.Builder
	for !s.isEOF() && isOperatorChar(s.ch) {
		b.WriteRune(s.ch)
		s.readChar()
	}
	return atom.Atom{Kind: atom.Operator, Text: b.String(), Span: atom.Span{Start: start, End: s.position()}}, nil
}
