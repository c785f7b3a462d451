package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udoprog/genco/internal/lang"
)

func TestEscapeDoubleQuoted(t *testing.T) {
	assert.Equal(t, `a\"b`, lang.EscapeDoubleQuoted(`a"b`))
	assert.Equal(t, `a\\b`, lang.EscapeDoubleQuoted(`a\b`))
	assert.Equal(t, `a\nb`, lang.EscapeDoubleQuoted("a\nb"))
}

func TestIsSimpleIdent(t *testing.T) {
	assert.True(t, lang.IsSimpleIdent("name"))
	assert.True(t, lang.IsSimpleIdent("_private1"))
	assert.False(t, lang.IsSimpleIdent(""))
	assert.False(t, lang.IsSimpleIdent("1name"))
	assert.False(t, lang.IsSimpleIdent("a + b"))
}

func TestConcatQuoteEmpty(t *testing.T) {
	s, err := lang.ConcatQuote(nil, lang.EscapeDoubleQuoted)
	require.NoError(t, err)
	assert.Equal(t, `""`, s)
}

func TestConcatQuoteAllLiteral(t *testing.T) {
	s, err := lang.ConcatQuote([]lang.StringPart{{Literal: true, Text: "hi"}}, lang.EscapeDoubleQuoted)
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, s)
}

func TestConcatQuoteInterleaved(t *testing.T) {
	s, err := lang.ConcatQuote([]lang.StringPart{
		{Literal: true, Text: "a"},
		{Literal: false, Value: "x"},
		{Literal: true, Text: "b"},
	}, lang.EscapeDoubleQuoted)
	require.NoError(t, err)
	assert.Equal(t, `"a" + x + "b"`, s)
}

func TestTemplateQuoteBareVsBraced(t *testing.T) {
	s, err := lang.TemplateQuote([]lang.StringPart{
		{Literal: false, Value: "name"},
	}, true, lang.EscapeDoubleQuoted)
	require.NoError(t, err)
	assert.Equal(t, `"$name"`, s)

	s, err = lang.TemplateQuote([]lang.StringPart{
		{Literal: false, Value: "a + b"},
	}, true, lang.EscapeDoubleQuoted)
	require.NoError(t, err)
	assert.Equal(t, `"${a + b}"`, s)
}

func TestTemplateQuoteBareDisallowed(t *testing.T) {
	s, err := lang.TemplateQuote([]lang.StringPart{
		{Literal: false, Value: "name"},
	}, false, lang.EscapeDoubleQuoted)
	require.NoError(t, err)
	assert.Equal(t, `"${name}"`, s)
}

func TestImportSetAddDedupesByKey(t *testing.T) {
	set := lang.NewImportSet()
	first := set.Add("k", lang.Value{Data: 1})
	second := set.Add("k", lang.Value{Data: 2})
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, 1, set.Entries()[0].Value.Data)
}

func TestImportSetPreservesInsertionOrder(t *testing.T) {
	set := lang.NewImportSet()
	set.Add("b", lang.Value{})
	set.Add("a", lang.Value{})
	entries := set.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Key)
	assert.Equal(t, "a", entries[1].Key)
}
