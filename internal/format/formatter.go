// Package format implements the formatting engine (spec.md component
// F): it serializes an intermediate token stream to characters, honoring
// indentation, line-break collapsing, and the configured indent unit and
// line ending, delegating per-item rendering and import emission to a
// lang.Language adapter.
//
// Grounded on the teacher's internal/backend/go_backend.go: the same
// "indent counter plus emit helper" idiom, generalized from a single
// hardcoded Go backend into one driven entirely by the adapter.
package format

import (
	"io"
	"strings"

	"github.com/udoprog/genco/internal/its"
	"github.com/udoprog/genco/internal/lang"
)

// WriteError wraps a failure of the underlying sink (spec.md §7, error
// kind 3: SinkError). Kept distinct from lang.FormatError so callers can
// tell a broken writer apart from an adapter rejecting a value.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "sink write error: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// Format serializes stream to w using adapter for per-item rendering and
// import emission, under cfg.
func Format(w io.Writer, stream *its.Stream, set *lang.ImportSet, adapter lang.Language, cfg lang.Config) error {
	f := &formatter{w: w, set: set, adapter: adapter, cfg: cfg, indentString: indentString(cfg.Indent)}
	if set.Len() > 0 {
		if err := adapter.EmitImports(set, w, cfg); err != nil {
			return err
		}
		// One line ending to terminate the last import line, one more
		// for the blank line the imports block is always followed by
		// (spec.md §6, "Imports block layout").
		if err := f.writeRaw(cfg.LineEnding + cfg.LineEnding); err != nil {
			return err
		}
	}
	return f.run(stream.Tokens())
}

func indentString(u lang.IndentUnit) string {
	if u.Tab {
		return "\t"
	}
	n := u.Spaces
	if n <= 0 {
		n = 4
	}
	return strings.Repeat(" ", n)
}

type formatter struct {
	w            io.Writer
	set          *lang.ImportSet
	adapter      lang.Language
	cfg          lang.Config
	indentString string

	indent        int
	pendingIndent bool
	atLineStart   bool
}

func (f *formatter) run(tokens []its.Token) error {
	f.atLineStart = true
	f.pendingIndent = false
	for i, tok := range tokens {
		switch tok.Kind {
		case its.KindText:
			if err := f.flushIndent(); err != nil {
				return err
			}
			if err := f.writeRaw(tok.Text); err != nil {
				return err
			}
		case its.KindItem:
			if err := f.flushIndent(); err != nil {
				return err
			}
			v, _ := lang.ValueOf(tok.Item)
			s, err := f.adapter.RenderItem(v, f.set)
			if err != nil {
				return err
			}
			if err := f.writeRaw(s); err != nil {
				return err
			}
		case its.KindSpace:
			if f.pendingIndent || f.atLineStart {
				continue
			}
			if err := f.writeRaw(" "); err != nil {
				return err
			}
		case its.KindPush:
			if err := f.newline(tok.Blank); err != nil {
				return err
			}
		case its.KindLine:
			if f.suppressedLine(tokens, i) {
				continue
			}
			if err := f.newline(false); err != nil {
				return err
			}
		case its.KindIndent:
			f.indent++
		case its.KindUnindent:
			if f.indent > 0 {
				f.indent--
			}
		}
	}
	return nil
}

// suppressedLine implements "Line is suppressed if adjacent to
// Indent/Unindent/start/end" (spec.md component F).
func (f *formatter) suppressedLine(tokens []its.Token, i int) bool {
	if i == 0 || i == len(tokens)-1 {
		return true
	}
	if prev := tokens[i-1]; prev.Kind == its.KindIndent || prev.Kind == its.KindUnindent {
		return true
	}
	if next := tokens[i+1]; next.Kind == its.KindIndent || next.Kind == its.KindUnindent {
		return true
	}
	return false
}

func (f *formatter) newline(blank bool) error {
	if err := f.writeRaw(f.cfg.LineEnding); err != nil {
		return err
	}
	if blank {
		if err := f.writeRaw(f.cfg.LineEnding); err != nil {
			return err
		}
	}
	f.pendingIndent = true
	f.atLineStart = true
	return nil
}

func (f *formatter) flushIndent() error {
	f.atLineStart = false
	if !f.pendingIndent {
		return nil
	}
	f.pendingIndent = false
	if f.indent <= 0 {
		return nil
	}
	return f.writeRaw(strings.Repeat(f.indentString, f.indent))
}

func (f *formatter) writeRaw(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(f.w, s); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}
