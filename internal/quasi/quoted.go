package quasi

import (
	"strings"

	"github.com/udoprog/genco/internal/atom"
	"github.com/udoprog/genco/internal/atomizer"
)

// parseQuotedAtom builds a QuotedString from a String atom whose raw text
// (quotes included) contains one or more '$' interpolations, e.g. an
// atom with Text `"Hello $name"`. The surrounding quote characters are
// stripped before scanning — they belong to the source's own string
// syntax, not to the content the adapter's QuoteString re-quotes.
func (p *Parser) parseQuotedAtom(a atom.Atom) Node {
	inner := a.Text
	if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
		inner = inner[1 : len(inner)-1]
	}
	parts := scanQuotedParts(inner, a.Span)
	return QuotedString{Parts: parts, QSSpan: a.Span}
}

// parseQuotedGroup handles the explicit "${ ... }" form: the braces
// supply a quoted body directly, without an enclosing string atom. Its
// contents are re-rendered to text and scanned exactly as an embedded
// string literal would be. When the braces hold a single string atom
// (`${"Hello $name"}`), that atom's own surrounding quotes are stripped
// first, as in parseQuotedAtom.
func (p *Parser) parseQuotedGroup(group atom.Atom, dollar atom.Atom) Node {
	text := renderAtoms(group.Children)
	if len(group.Children) == 1 && group.Children[0].Kind == atom.String {
		inner := group.Children[0].Text
		if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
			text = inner[1 : len(inner)-1]
		}
	}
	parts := scanQuotedParts(text, group.Span)
	return QuotedString{Parts: parts, QSSpan: atom.Span{Start: dollar.Span.Start, End: group.Span.End}}
}

// scanQuotedParts splits raw text into literal runs and interpolations.
// Escapes are resolved: "$$" to '$', and a backslash before '\\', '"',
// '$', 'n' or 't' to that character (newline and tab for the last two);
// any other backslash pair is kept verbatim. "$name" and "$(expr)" become
// interpolation parts whose Expr atoms are independently re-atomized
// from the captured substring — position information inside a quoted
// body is necessarily approximate (the whitespace inferencer never
// looks inside a QuotedString; rendering is delegated whole to the
// language adapter's quoter).
func scanQuotedParts(text string, span atom.Span) []StringPart {
	var parts []StringPart
	var lit strings.Builder
	runes := []rune(text)
	n := len(runes)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, StringPart{Text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < n; i++ {
		r := runes[i]
		if r == '\\' && i+1 < n {
			switch next := runes[i+1]; next {
			case '\\', '"', '$':
				lit.WriteRune(next)
			case 'n':
				lit.WriteRune('\n')
			case 't':
				lit.WriteRune('\t')
			default:
				lit.WriteRune(r)
				lit.WriteRune(next)
			}
			i++
			continue
		}
		if r != '$' {
			lit.WriteRune(r)
			continue
		}
		if i+1 < n && runes[i+1] == '$' {
			lit.WriteRune('$')
			i++
			continue
		}
		if i+1 < n && isIdentStartRune(runes[i+1]) {
			j := i + 1
			for j < n && isIdentContRune(runes[j]) {
				j++
			}
			name := string(runes[i+1 : j])
			flush()
			parts = append(parts, StringPart{IsInterp: true, ExprVal: exprFromText(name, span)})
			i = j - 1
			continue
		}
		if i+1 < n && runes[i+1] == '(' {
			depth := 1
			j := i + 2
			for j < n && depth > 0 {
				if runes[j] == '(' {
					depth++
				} else if runes[j] == ')' {
					depth--
				}
				j++
			}
			inner := string(runes[i+2 : j-1])
			flush()
			parts = append(parts, StringPart{IsInterp: true, ExprVal: exprFromText(inner, span)})
			i = j - 1
			continue
		}
		// Lone '$' with nothing recognizable after it: literal.
		lit.WriteRune('$')
	}
	flush()
	return parts
}

func exprFromText(text string, span atom.Span) Expr {
	atoms, err := atomizer.Atomize(text)
	if err != nil || len(atoms) == 0 {
		return Expr{Atoms: []atom.Atom{{Kind: atom.Ident, Text: text, Span: span}}, ExprSpan: span}
	}
	return Expr{Atoms: atoms, ExprSpan: span}
}

func isIdentStartRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContRune(r rune) bool {
	return isIdentStartRune(r) || (r >= '0' && r <= '9')
}
