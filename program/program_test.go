package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WordsAndComments(t *testing.T) {
	l := Parse("G01 X10.500 y-2 F1000 ; cut (ignored)")

	require.Len(t, l.Words, 4)
	assert.Equal(t, byte('G'), l.Words[0].Letter)
	assert.Equal(t, 1.0, l.Words[0].Value)
	assert.Equal(t, "01", l.Words[0].Text)
	assert.Equal(t, byte('Y'), l.Words[2].Letter)
	assert.Equal(t, -2.0, l.Words[2].Value)
	assert.Equal(t, "cut (ignored)", l.Comment)
	assert.Empty(t, l.Malformed)
}

func TestParse_ParenComment(t *testing.T) {
	l := Parse("G0 (rapid) Z5")
	require.Len(t, l.Words, 2)
	assert.Equal(t, "rapid", l.Comment)
	assert.True(t, l.HasCode('Z', 5))
}

func TestParse_Percent(t *testing.T) {
	assert.True(t, Parse(" % ").Percent)
	assert.Equal(t, "%", Parse("%").String())
}

func TestHasCode_DistinguishesFractionalCodes(t *testing.T) {
	l := Parse("G05.1 Q1")
	assert.True(t, l.HasCode('G', 5.1))
	assert.False(t, l.HasCode('G', 0))
	assert.False(t, l.HasCode('G', 5))
	_, ok := l.MotionCode()
	assert.False(t, ok)

	assert.True(t, Parse("G00 X1").HasCode('G', 0))
}

func TestParse_MalformedFractionalG(t *testing.T) {
	assert.NotEmpty(t, Parse("G05.1Q1").Malformed)
	assert.NotEmpty(t, Parse("G1.5.3 X1").Malformed)
	assert.Empty(t, Parse("G05.1 Q1").Malformed)
	assert.Empty(t, Parse("G64 P0.05").Malformed)
	assert.NotEmpty(t, Parse("G1 X").Malformed)
}

func TestLineString_RoundTripsWords(t *testing.T) {
	l := Parse("G1   X10.000  Y20.000 F1000")
	assert.Equal(t, "G1 X10.000 Y20.000 F1000", l.String())

	dropped := l.Without(func(w Word) bool { return w.Letter == 'F' })
	assert.Equal(t, "G1 X10.000 Y20.000", dropped.String())
	assert.Equal(t, "G1 X10.000 Y20.000 F1000", l.String(), "исходная строка не изменяется")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.500", FormatNumber(1.5, 3))
	assert.Equal(t, "0.000", FormatNumber(-0.0001, 3))
	assert.Equal(t, "-4.000", FormatNumber(-4, 3))
	assert.Equal(t, "1000", FormatNumber(1000, -1))
	assert.Equal(t, "12.25", FormatNumber(12.25, -1))
}

func TestState_Apply(t *testing.T) {
	st := NewState()
	st = st.Apply(Parse("G1 X10 Y5 F800"))
	assert.Equal(t, 1, st.Motion)
	assert.Equal(t, Value{V: 10, Set: true}, st.X)
	assert.False(t, st.Z.Set)

	st = st.Apply(Parse("G81 X1 Y1 Z-5 R2"))
	assert.Equal(t, 81, st.Motion)
	st = st.Apply(Parse("G80"))
	assert.Equal(t, NoMotion, st.Motion)

	st = st.Apply(Parse("M3 S12000"))
	assert.True(t, st.Spindle)
	assert.Equal(t, 12000.0, st.S.V)
}

func TestState_ApplyIncremental(t *testing.T) {
	st := NewState().Apply(Parse("G90 G0 X5 Z10"))
	assert.False(t, st.Relative)

	st = st.Apply(Parse("G91 G1 X10 Y2 Z-1"))
	assert.True(t, st.Relative)
	assert.Equal(t, Value{V: 15, Set: true}, st.X)
	assert.Equal(t, Value{V: 2, Set: true}, st.Y)
	assert.Equal(t, Value{V: 9, Set: true}, st.Z)

	next := st.Apply(Parse("G1 X10"))
	assert.False(t, next.SamePosition(st))
	assert.Equal(t, 25.0, next.X.V)

	assert.True(t, next.Apply(Parse("G1 X0")).SamePosition(next))

	st = next.Apply(Parse("G90 X1"))
	assert.False(t, st.Relative)
	assert.Equal(t, 1.0, st.X.V)
}

func TestApplyDirectives(t *testing.T) {
	lines := []string{"a", "b", "c"}
	out := Apply(lines, []Directive{
		{Index: 3, Position: InsertBefore, Lines: []string{"end"}},
		{Index: 0, Position: InsertAfter, Lines: []string{"a1", "a2"}},
		{Index: 2, Position: InsertBefore, Lines: []string{"pre-c"}},
		{Index: 0, Position: InsertBefore, Lines: []string{"start"}},
	})
	assert.Equal(t, []string{"start", "a", "a1", "a2", "b", "pre-c", "c", "end"}, out)
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestSplitJoinCount(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, Split("a\r\nb\n"))
	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 3, CountLines("a\nb\nc"))
	assert.Equal(t, "a\nb", Join([]string{"a", "b"}))
}
