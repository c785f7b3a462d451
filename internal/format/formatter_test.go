package format_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udoprog/genco/internal/format"
	"github.com/udoprog/genco/internal/its"
	"github.com/udoprog/genco/internal/lang"
)

type stubAdapter struct {
	importLines []string
}

func (stubAdapter) QuoteString(parts []lang.StringPart) (string, error) {
	return lang.ConcatQuote(parts, lang.EscapeDoubleQuoted)
}

func (stubAdapter) RegisterItem(v lang.Value, set *lang.ImportSet) {
	set.Add(v.Data.(string), v)
}

func (stubAdapter) RenderItem(v lang.Value, _ *lang.ImportSet) (string, error) {
	return v.Data.(string), nil
}

func (a stubAdapter) EmitImports(set *lang.ImportSet, w io.Writer, cfg lang.Config) error {
	for i, e := range set.Entries() {
		if i > 0 {
			if _, err := io.WriteString(w, cfg.LineEnding); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "import "+e.Key+";"); err != nil {
			return err
		}
	}
	return nil
}

func (stubAdapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: lang.FourSpaces, LineEnding: "\n"}
}

func cfg() lang.Config {
	return lang.Config{Indent: lang.IndentUnit{Spaces: 4}, LineEnding: "\n"}
}

func TestFormatTextAndSpace(t *testing.T) {
	s := its.NewStream()
	s.AppendText("fn")
	s.AppendSpace()
	s.AppendText("test")

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, lang.NewImportSet(), stubAdapter{}, cfg()))
	assert.Equal(t, "fn test", sb.String())
}

func TestFormatLineSuppressedAtStreamBoundaries(t *testing.T) {
	s := its.NewStream()
	s.AppendLine()
	s.AppendText("a")
	s.AppendLine()

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, lang.NewImportSet(), stubAdapter{}, cfg()))
	assert.Equal(t, "a", sb.String())
}

func TestFormatLineSuppressedAdjacentToIndent(t *testing.T) {
	s := its.NewStream()
	s.AppendText("a")
	s.AppendIndent()
	s.AppendLine()
	s.AppendText("b")

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, lang.NewImportSet(), stubAdapter{}, cfg()))
	assert.Equal(t, "ab", sb.String())
}

func TestFormatPushIndentsFollowingLine(t *testing.T) {
	s := its.NewStream()
	s.AppendText("a")
	s.AppendIndent()
	s.AppendPush()
	s.AppendText("b")
	s.AppendUnindent()
	s.AppendPush()
	s.AppendText("c")

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, lang.NewImportSet(), stubAdapter{}, cfg()))
	assert.Equal(t, "a\n    b\nc", sb.String())
}

func TestFormatBlankPushAddsExtraLine(t *testing.T) {
	s := its.NewStream()
	s.AppendText("a")
	s.AppendPush()
	s.AppendPush() // collapses, marks Blank
	s.AppendText("b")

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, lang.NewImportSet(), stubAdapter{}, cfg()))
	assert.Equal(t, "a\n\nb", sb.String())
}

// Imports block layout: rendered before the body, followed by exactly one
// blank line (spec.md §6).
func TestFormatImportsFollowedByBlankLine(t *testing.T) {
	s := its.NewStream()
	s.AppendText("body")

	set := lang.NewImportSet()
	set.Add("pkg", lang.Value{Data: "pkg", Importable: true})

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, set, stubAdapter{}, cfg()))
	assert.Equal(t, "import pkg;\n\nbody", sb.String())
}

func TestFormatNoImportsNoLeadingBlankLine(t *testing.T) {
	s := its.NewStream()
	s.AppendText("body")

	var sb strings.Builder
	require.NoError(t, format.Format(&sb, s, lang.NewImportSet(), stubAdapter{}, cfg()))
	assert.Equal(t, "body", sb.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestFormatWrapsSinkErrors(t *testing.T) {
	s := its.NewStream()
	s.AppendText("a")

	err := format.Format(failingWriter{}, s, lang.NewImportSet(), stubAdapter{}, cfg())
	require.Error(t, err)
	var we *format.WriteError
	assert.ErrorAs(t, err, &we)
}
