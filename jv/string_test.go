package jv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jvlang.dev/jv/jv"
	"go.jvlang.dev/jv/stringtest"
)

func TestStringRepairsInvalidUTF8(t *testing.T) {
	t.Parallel()

	v := jv.StringFromBytes([]byte{'a', 0xff, 'b'})
	assert.Equal(t, "a�b", v.StringValue())
}

func TestStringLengths(t *testing.T) {
	t.Parallel()

	v := jv.String("héllo")
	assert.Equal(t, 6, v.StringLengthBytes())
	assert.Equal(t, 5, v.StringLengthCodepoints())
}

func TestStringSlice(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in         string
		start, end int
		want       string
	}{
		"basic":            {in: "hello", start: 1, end: 3, want: "el"},
		"negative start":   {in: "hello", start: -3, end: 5, want: "llo"},
		"negative both":    {in: "hello", start: -3, end: -1, want: "ll"},
		"out of range end": {in: "hello", start: 0, end: 100, want: "hello"},
		"inverted clamps":  {in: "hello", start: 4, end: 1, want: ""},
		"unicode":          {in: "héllo", start: 1, end: 3, want: "él"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v := jv.String(tc.in)
			got := v.StringSlice(tc.start, tc.end)
			assert.Equal(t, tc.want, got.StringValue())
		})
	}
}

func TestStringConcat(t *testing.T) {
	t.Parallel()

	a := jv.String("foo")
	b := jv.String("bar")
	assert.Equal(t, "foobar", a.StringConcat(b).StringValue())
}

func TestStringSplit(t *testing.T) {
	t.Parallel()

	parts := jv.String("a,b,c").StringSplit(jv.String(","))
	require.Len(t, parts, 3)
	assert.Equal(t, "a", parts[0].StringValue())
	assert.Equal(t, "b", parts[1].StringValue())
	assert.Equal(t, "c", parts[2].StringValue())

	chars := jv.String("abc").StringSplit(jv.String(""))
	require.Len(t, chars, 3)
	assert.Equal(t, "a", chars[0].StringValue())
}

func TestStringSplitOnLines(t *testing.T) {
	t.Parallel()

	joined := stringtest.JoinLF("line1", "line2", "line3")
	lines := jv.String(joined).StringSplit(jv.String("\n"))

	require.Len(t, lines, 3)
	assert.Equal(t, "line1", lines[0].StringValue())
	assert.Equal(t, "line2", lines[1].StringValue())
	assert.Equal(t, "line3", lines[2].StringValue())
}

func TestStringRepeat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abcabcabc", jv.String("abc").StringRepeat(3).StringValue())
	assert.Equal(t, jv.KindNull, jv.String("abc").StringRepeat(-1).Kind())
	assert.Equal(t, "", jv.String("abc").StringRepeat(0).StringValue())
}

func TestExplodeImplode(t *testing.T) {
	t.Parallel()

	exploded := jv.String("ab").Explode()
	require.Equal(t, 2, exploded.ArrayLength())

	first := exploded.ArrayGet(0)
	assert.InDelta(t, float64('a'), first.NumberValue(), 0)

	imploded := jv.Implode(exploded)
	assert.Equal(t, "ab", imploded.StringValue())
}

func TestStringIndexes(t *testing.T) {
	t.Parallel()

	idx := jv.StringIndexes(jv.String("abcabc"), jv.String("bc"))
	assert.Equal(t, []float64{1, 4}, toFloats(t, idx))

	empty := jv.StringIndexes(jv.String("abc"), jv.String(""))
	assert.Equal(t, 0, empty.ArrayLength())
}

func TestStringAppend(t *testing.T) {
	t.Parallel()

	v := jv.String("foo")
	v = v.StringAppendStr("bar")
	v = v.StringAppendCodepoint('!')
	v = v.StringAppendBuf([]byte("?"))
	assert.Equal(t, "foobar!?", v.StringValue())
}

func TestStringAppendSharedCellClonesFirst(t *testing.T) {
	t.Parallel()

	a := jv.String("foo")
	b := a.Copy()

	a = a.StringAppendStr("bar")
	assert.Equal(t, "foobar", a.StringValue())
	assert.Equal(t, "foo", b.StringValue())
	b.Free()
}
