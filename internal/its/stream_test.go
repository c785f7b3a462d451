package its_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udoprog/genco/internal/its"
)

func kinds(tokens []its.Token) []its.Kind {
	out := make([]its.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestAppendTextMerges(t *testing.T) {
	s := its.NewStream()
	s.AppendText("a")
	s.AppendText("b")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "ab", s.Tokens()[0].Text)
}

func TestAppendSpaceCollapses(t *testing.T) {
	s := its.NewStream()
	s.AppendSpace()
	s.AppendSpace()
	s.AppendSpace()
	assert.Equal(t, []its.Kind{its.KindSpace}, kinds(s.Tokens()))
}

func TestAppendPushCollapsesAndMarksBlank(t *testing.T) {
	s := its.NewStream()
	s.AppendPush()
	s.AppendPush()
	assert.Equal(t, []its.Kind{its.KindPush}, kinds(s.Tokens()))
	assert.True(t, s.Tokens()[0].Blank)
}

func TestAppendPushAbsorbsPendingLine(t *testing.T) {
	s := its.NewStream()
	s.AppendLine()
	s.AppendPush()
	assert.Equal(t, []its.Kind{its.KindPush}, kinds(s.Tokens()))
	assert.False(t, s.Tokens()[0].Blank)
}

func TestAppendLineCollapses(t *testing.T) {
	s := its.NewStream()
	s.AppendLine()
	s.AppendLine()
	assert.Equal(t, []its.Kind{its.KindLine}, kinds(s.Tokens()))
}

func TestAppendLineDominatedByPush(t *testing.T) {
	s := its.NewStream()
	s.AppendPush()
	s.AppendLine()
	assert.Equal(t, []its.Kind{its.KindPush}, kinds(s.Tokens()))
}

func TestAppendIndentUnindentAreNotCollapsed(t *testing.T) {
	s := its.NewStream()
	s.AppendIndent()
	s.AppendIndent()
	s.AppendUnindent()
	assert.Equal(t, []its.Kind{its.KindIndent, its.KindIndent, its.KindUnindent}, kinds(s.Tokens()))
}

func TestEmptyTextAppendIsNoop(t *testing.T) {
	s := its.NewStream()
	s.AppendText("")
	assert.Equal(t, 0, s.Len())
}
