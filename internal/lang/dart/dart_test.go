package dart_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/dart"
)

// A bare-identifier interpolation embeds as "$name"; anything else falls
// back to "${value}" (spec.md §8 scenario 6).
func TestQuoteStringBareIdentInterpolation(t *testing.T) {
	adapter := dart.New()
	quoted, err := adapter.QuoteString([]lang.StringPart{
		{Literal: true, Text: "Hello "},
		{Literal: false, Value: "world"},
	})
	require.NoError(t, err)
	assert.Equal(t, `"Hello $world"`, quoted)
}

func TestQuoteStringBracesNonIdentInterpolation(t *testing.T) {
	adapter := dart.New()
	quoted, err := adapter.QuoteString([]lang.StringPart{
		{Literal: true, Text: "sum: "},
		{Literal: false, Value: "a + b"},
	})
	require.NoError(t, err)
	assert.Equal(t, `"sum: ${a + b}"`, quoted)
}

func TestImportEmitsSortedPackageDirectives(t *testing.T) {
	adapter := dart.New()
	set := lang.NewImportSet()
	adapter.RegisterItem(dart.Import("package:collection/collection.dart"), set)
	adapter.RegisterItem(dart.Import("dart:convert"), set)
	adapter.RegisterItem(dart.Import("dart:convert"), set) // duplicate

	require.Equal(t, 2, set.Len())

	var sb strings.Builder
	require.NoError(t, adapter.EmitImports(set, &sb, adapter.DefaultConfig()))
	assert.Equal(t, "import 'dart:convert';\nimport 'package:collection/collection.dart';", sb.String())
}

func TestDefaultConfigUsesTwoSpaceIndent(t *testing.T) {
	cfg := dart.New().DefaultConfig()
	assert.Equal(t, 2, cfg.Indent.Spaces)
}
