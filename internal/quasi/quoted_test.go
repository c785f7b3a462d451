package quasi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udoprog/genco/internal/quasi"
)

// A string atom's raw text carries its own surrounding quote characters
// (internal/atom's String.Text doc comment); parsing it into a
// QuotedString must strip them rather than fold them into the first
// literal part, or a re-quoting adapter would double them up (spec.md §8
// scenario 6).
func TestQuotedAtomStripsSurroundingQuotes(t *testing.T) {
	tmpl, errs := parse(t, `"Hello $name"`)
	require.Empty(t, errs)
	require.Len(t, tmpl.Body, 1)
	qs, ok := tmpl.Body[0].(quasi.QuotedString)
	require.True(t, ok)
	require.Len(t, qs.Parts, 2)
	assert.False(t, qs.Parts[0].IsInterp)
	assert.Equal(t, "Hello ", qs.Parts[0].Text)
	assert.NotContains(t, qs.Parts[0].Text, `"`)
	assert.True(t, qs.Parts[1].IsInterp)
	assert.Equal(t, "name", qs.Parts[1].ExprVal.Raw())
}

func TestQuotedAtomWithNoInterpolationStaysLiteral(t *testing.T) {
	tmpl, errs := parse(t, `plain text`)
	require.Empty(t, errs)
	// No '$' anywhere: never routed through QuotedString at all.
	for _, n := range tmpl.Body {
		_, isQuoted := n.(quasi.QuotedString)
		assert.False(t, isQuoted)
	}
}

func TestQuotedAtomDoubleDollarEscape(t *testing.T) {
	tmpl, errs := parse(t, `"price: $$5"`)
	require.Empty(t, errs)
	qs, ok := tmpl.Body[0].(quasi.QuotedString)
	require.True(t, ok)
	require.Len(t, qs.Parts, 1)
	assert.Equal(t, "price: $5", qs.Parts[0].Text)
}

// The explicit "${ ... }" brace-group form supplies a quoted body
// directly: its content is scanned as string text, so a bare word with no
// '$' inside the braces is a literal part, not an interpolation.
func TestQuotedGroupBraceForm(t *testing.T) {
	tmpl, errs := parse(t, `${name}`)
	require.Empty(t, errs)
	require.Len(t, tmpl.Body, 1)
	qs, ok := tmpl.Body[0].(quasi.QuotedString)
	require.True(t, ok)
	require.Len(t, qs.Parts, 1)
	assert.False(t, qs.Parts[0].IsInterp)
	assert.Equal(t, "name", qs.Parts[0].Text)
}

func TestQuotedAtomParenExprInterpolation(t *testing.T) {
	tmpl, errs := parse(t, `"total: $(a + b)"`)
	require.Empty(t, errs)
	qs, ok := tmpl.Body[0].(quasi.QuotedString)
	require.True(t, ok)
	require.Len(t, qs.Parts, 2)
	assert.Equal(t, "total: ", qs.Parts[0].Text)
	assert.True(t, qs.Parts[1].IsInterp)
	assert.Equal(t, "a + b", qs.Parts[1].ExprVal.Raw())
}
