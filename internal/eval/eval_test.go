package eval_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udoprog/genco/internal/atomizer"
	"github.com/udoprog/genco/internal/eval"
	"github.com/udoprog/genco/internal/its"
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/quasi"
)

// stubLang is a minimal lang.Language for exercising the evaluator without
// depending on any concrete target-language adapter's own policy.
type stubLang struct{}

func (stubLang) QuoteString(parts []lang.StringPart) (string, error) {
	return lang.ConcatQuote(parts, lang.EscapeDoubleQuoted)
}

func (stubLang) RegisterItem(v lang.Value, set *lang.ImportSet) {
	key, _ := v.Data.(string)
	set.Add(key, v)
}

func (stubLang) RenderItem(v lang.Value, _ *lang.ImportSet) (string, error) {
	return v.Data.(string), nil
}

func (stubLang) EmitImports(set *lang.ImportSet, w io.Writer, _ lang.Config) error {
	for _, e := range set.Entries() {
		if _, err := io.WriteString(w, "import "+e.Key+";"); err != nil {
			return err
		}
	}
	return nil
}

func (stubLang) DefaultConfig() lang.Config {
	return lang.Config{Indent: lang.FourSpaces, LineEnding: "\n"}
}

func parse(t *testing.T, src string) *quasi.Template {
	t.Helper()
	atoms, err := atomizer.Atomize(src)
	require.NoError(t, err)
	tmpl, errs := quasi.Parse(atoms)
	require.Empty(t, errs)
	return tmpl
}

func renderText(tokens []its.Token) string {
	var out string
	for _, tok := range tokens {
		switch tok.Kind {
		case its.KindText:
			out += tok.Text
		case its.KindSpace:
			out += " "
		case its.KindPush, its.KindLine:
			out += "\n"
		}
	}
	return out
}

// A bracketed group that is ordinary target-language syntax (no
// preceding '$') carries no text of its own on its atom — the evaluator
// must recurse into it rather than drop it.
func TestEvalRendersBracketGroupsInLiterals(t *testing.T) {
	tmpl := parse(t, "fn test(a, b) { body }")
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.Contains(t, text, "(a, b)")
	assert.Contains(t, text, "{")
	assert.Contains(t, text, "}")
}

func TestEvalRendersNestedBracketGroups(t *testing.T) {
	tmpl := parse(t, "f(g(x))")
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{}, false)
	require.NoError(t, err)
	assert.Equal(t, "f(g(x))", renderText(stream.Tokens()))
}

func TestEvalInterpolatesBareName(t *testing.T) {
	tmpl := parse(t, "let x = $name;")
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"name": "42"}, false)
	require.NoError(t, err)
	assert.Contains(t, renderText(stream.Tokens()), "42")
}

func TestEvalEscapeProducesLiteralDollar(t *testing.T) {
	tmpl := parse(t, `$$name`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{}, false)
	require.NoError(t, err)
	assert.Contains(t, renderText(stream.Tokens()), "$name")
}

func TestEvalRegisterAddsImportWithoutEmittingText(t *testing.T) {
	tmpl := parse(t, `$[hashmap]`)
	stream, imports, err := eval.Eval(tmpl, stubLang{}, eval.Map{"hashmap": lang.Value{Data: "std::collections::HashMap", Importable: true}}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, imports.Len())
	assert.Equal(t, 0, stream.Len())
}

func TestEvalIfTrueBranch(t *testing.T) {
	tmpl := parse(t, `$if cond { yes } else { no }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"cond": true}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.Contains(t, text, "yes")
	assert.NotContains(t, text, "no")
}

func TestEvalIfFalseBranchElse(t *testing.T) {
	tmpl := parse(t, `$if cond { yes } else { no }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"cond": false}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.Contains(t, text, "no")
	assert.NotContains(t, text, "yes")
}

func TestEvalIfFalseNoElseEmitsNothing(t *testing.T) {
	tmpl := parse(t, `before $if cond { yes } after`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"cond": false}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.NotContains(t, text, "yes")
	assert.Contains(t, text, "before")
	assert.Contains(t, text, "after")
}

// $match with alternative patterns ("1 | 2 => low"): scrutinee 2 picks the
// first arm whose alternatives include it (spec.md §8 match scenario).
func TestEvalMatchWithAlternatives(t *testing.T) {
	tmpl := parse(t, `$match k { 1 | 2 => low , 3 => mid }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"k": "2", "1": "1", "2": "2", "3": "3"}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.Contains(t, text, "low")
	assert.NotContains(t, text, "mid")
}

func TestEvalMatchNoArmErrors(t *testing.T) {
	tmpl := parse(t, `$match k { 1 => low }`)
	_, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"k": "9", "1": "1"}, false)
	assert.Error(t, err)
}

func TestEvalForJoinsWithSeparator(t *testing.T) {
	tmpl := parse(t, `$for x in items join (,) { $x }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"items": []any{"a", "b", "c"}}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.Contains(t, text, "a")
	assert.Contains(t, text, "b")
	assert.Contains(t, text, "c")
	assert.Equal(t, 2, strings.Count(text, ","), "three items joined by a separator produce exactly two separators")
}

// spec.md §8's join law: "join (, )" (a trailing space inside the
// parens, invisible to any atom's own span) renders "a, b, c" exactly —
// the separator's inter-item spacing, not just its item count.
func TestEvalForJoinLawExactSpacing(t *testing.T) {
	tmpl := parse(t, `$for x in items join (, ) { $x }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"items": []any{"a", "b", "c"}}, false)
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", renderText(stream.Tokens()))
}

// The empty-iterable half of the same law: no items, no separator, no
// output at all.
func TestEvalForJoinLawEmptyIterable(t *testing.T) {
	tmpl := parse(t, `$for x in items join (, ) { $x }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"items": []any{}}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stream.Len())
}

func TestEvalForEmptyIterableEmitsNothing(t *testing.T) {
	tmpl := parse(t, `$for x in items { $x }`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"items": []any{}}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stream.Len())
}

func TestEvalLetBindsNameForRestOfBody(t *testing.T) {
	tmpl := parse(t, `$let y = greeting; $y`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"greeting": "hi"}, false)
	require.NoError(t, err)
	assert.Contains(t, renderText(stream.Tokens()), "hi")
}

func TestEvalRefDoesNotRegisterImport(t *testing.T) {
	tmpl := parse(t, `$ref hashmap;`)
	_, imports, err := eval.Eval(tmpl, stubLang{}, eval.Map{"hashmap": lang.Value{Data: "std::collections::HashMap", Importable: true}}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, imports.Len())
}

// A quoted atom containing an embedded "$name" interpolation must not
// carry its own surrounding quote characters into the interpolated
// concatenation: stubLang's QuoteString re-quotes the whole result, so a
// doubled quote pair would indicate internal/quasi's quoted-atom parsing
// failed to strip them first (spec.md §8 scenario 6's concern, exercised
// here against a concatenation-style adapter rather than Dart's own).
func TestEvalQuotedStringDoesNotDoubleQuote(t *testing.T) {
	tmpl := parse(t, `"Hello $name"`)
	stream, _, err := eval.Eval(tmpl, stubLang{}, eval.Map{"name": "world"}, false)
	require.NoError(t, err)
	text := renderText(stream.Tokens())
	assert.Equal(t, `"Hello " + world`, text)
}
