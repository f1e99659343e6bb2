package vim

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeClipboard struct {
	content string
	err     error
}

func (c *fakeClipboard) Get() (string, error) { return c.content, c.err }

func (c *fakeClipboard) Set(content string) error {
	c.content = content
	return c.err
}

func TestRegisterSetGet(t *testing.T) {
	rs := NewRegisterStore()

	rs.Set('a', "hello", false)
	content, linewise := rs.Get('a')
	assert.Equal(t, "hello", content)
	assert.False(t, linewise)

	rs.Set('A', " world", false)
	content, _ = rs.Get('a')
	assert.Equal(t, "hello world", content)

	content, _ = rs.Get('A')
	assert.Equal(t, "hello world", content, "uppercase reads the lowercase register")
}

func TestRegisterAppendLinewise(t *testing.T) {
	rs := NewRegisterStore()
	rs.Set('b', "one", false)
	rs.Append('b', "two\n", true)

	content, linewise := rs.Get('b')
	assert.Equal(t, "one\ntwo\n", content)
	assert.True(t, linewise)

	rs.Append('c', "fresh", false)
	content, _ = rs.Get('c')
	assert.Equal(t, "fresh", content)
}

func TestRegisterIgnoredWrites(t *testing.T) {
	rs := NewRegisterStore()
	rs.Set('_', "gone", false)
	rs.Set('.', "nope", false)
	rs.Set('!', "bad", false)

	for _, name := range []rune{'_', '.', '!'} {
		content, _ := rs.Get(name)
		assert.Empty(t, content, "register %q", name)
	}
}

func TestRegisterYank(t *testing.T) {
	rs := NewRegisterStore()
	rs.SetYank(0, "yanked\n", true)

	for _, name := range []rune{'"', '0'} {
		content, linewise := rs.Get(name)
		assert.Equal(t, "yanked\n", content)
		assert.True(t, linewise)
	}

	rs.SetYank('x', "named", false)
	content, _ := rs.Get('x')
	assert.Equal(t, "named", content)
	content, _ = rs.Get('0')
	assert.Equal(t, "named", content)

	rs.SetYank('_', "void", false)
	content, _ = rs.Get('"')
	assert.Equal(t, "named", content)
}

func TestRegisterDeleteRotation(t *testing.T) {
	rs := NewRegisterStore()

	rs.SetDelete(0, "word", false)
	content, _ := rs.Get('-')
	assert.Equal(t, "word", content, "small delete")
	content, _ = rs.Get('1')
	assert.Empty(t, content)

	for _, line := range []string{"first\n", "second\n", "third\n"} {
		rs.SetDelete(0, line, true)
	}
	tests := []struct {
		name rune
		want string
	}{
		{'1', "third\n"},
		{'2', "second\n"},
		{'3', "first\n"},
		{'"', "third\n"},
	}
	for _, tt := range tests {
		content, _ := rs.Get(tt.name)
		assert.Equal(t, tt.want, content, "register %q", tt.name)
	}
}

func TestRegisterRotationStopsAtNine(t *testing.T) {
	rs := NewRegisterStore()
	for i := 0; i < 12; i++ {
		rs.SetDelete(0, strings.Repeat("x", i+1)+"\n", true)
	}
	content, _ := rs.Get('9')
	assert.Equal(t, strings.Repeat("x", 4)+"\n", content)
}

func TestRegisterReadOnlySetters(t *testing.T) {
	rs := NewRegisterStore()
	rs.SetLastInserted("typed")
	rs.SetLastCommand("w")
	rs.SetLastSearch("foo")

	for name, want := range map[rune]string{'.': "typed", ':': "w", '/': "foo"} {
		content, _ := rs.Get(name)
		assert.Equal(t, want, content)
	}
}

func TestRegisterClipboard(t *testing.T) {
	rs := NewRegisterStore()
	cb := &fakeClipboard{}
	rs.SetClipboard(cb)

	rs.Set('+', "line\n", true)
	assert.Equal(t, "line\n", cb.content)

	content, linewise := rs.Get('*')
	assert.Equal(t, "line\n", content)
	assert.True(t, linewise)

	cb.err = errors.New("no display")
	content, _ = rs.Get('+')
	assert.Empty(t, content)
}

func TestRegisterFormat(t *testing.T) {
	rs := NewRegisterStore()
	rs.Set('a', "one\ntwo\n", true)
	rs.Set('b', "x", false)

	out := rs.Format()
	assert.Contains(t, out, "  l  \"a   one^Jtwo^J\n")
	assert.Contains(t, out, "  c  \"b   x\n")
	assert.Less(t, strings.Index(out, "\"a"), strings.Index(out, "\"b"))
}

func TestRegisterTypes(t *testing.T) {
	tests := []struct {
		name rune
		want RegisterType
	}{
		{'"', RegisterUnnamed},
		{'a', RegisterNamed},
		{'Z', RegisterNamed},
		{'0', RegisterLastYank},
		{'5', RegisterNumbered},
		{'-', RegisterSmallDelete},
		{'_', RegisterBlackHole},
		{'.', RegisterLastInserted},
		{':', RegisterCommand},
		{'/', RegisterSearch},
		{'+', RegisterClipboard},
		{'*', RegisterClipboard},
		{'!', RegisterInvalid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetRegisterType(tt.name), "register %q", tt.name)
		assert.Equal(t, tt.want != RegisterInvalid, IsValidRegister(tt.name))
	}
}

func TestMarkResolve(t *testing.T) {
	ms := NewMarkStore()
	require.NoError(t, ms.Set('a', 3, 2, "A"))
	require.NoError(t, ms.Set('G', 7, 0, "A"))

	info, err := ms.Resolve('a', "A")
	require.NoError(t, err)
	assert.Equal(t, MarkInfo{Line: 3, Column: 2, Document: "A"}, info)

	_, err = ms.Resolve('a', "B")
	assert.ErrorIs(t, err, ErrMarkOtherDocument)

	info, err = ms.Resolve('G', "B")
	require.NoError(t, err)
	assert.True(t, info.Global)
	assert.Equal(t, "A", info.Document)

	_, err = ms.Resolve('b', "A")
	assert.ErrorIs(t, err, ErrMarkNotSet)

	_, err = ms.Resolve('1', "A")
	assert.ErrorIs(t, err, ErrInvalidMark)
	assert.ErrorIs(t, ms.Set('#', 0, 0, "A"), ErrInvalidMark)
}

func TestMarkDeleteAndClear(t *testing.T) {
	ms := NewMarkStore()
	require.NoError(t, ms.Set('a', 0, 0, "A"))
	require.NoError(t, ms.Set('b', 1, 0, "B"))
	require.NoError(t, ms.Set('C', 2, 0, "A"))
	require.NoError(t, ms.Set(LastChangeMark, 4, 1, "A"))

	assert.True(t, ms.Delete('b'))
	assert.False(t, ms.Delete('b'))

	ms.ClearLocal("A")
	assert.Equal(t, []rune{'C'}, ms.Names())
	assert.Len(t, ms.Globals(), 1)

	ms.Clear()
	assert.Zero(t, ms.Len())
}

func TestMarkFormat(t *testing.T) {
	ms := NewMarkStore()
	assert.Equal(t, "No marks set\n", ms.Format("A"))

	require.NoError(t, ms.Set('b', 1, 4, "A"))
	require.NoError(t, ms.Set('a', 0, 0, "A"))
	require.NoError(t, ms.Set('z', 9, 9, "B"))
	require.NoError(t, ms.Set('Q', 2, 3, "B"))
	require.NoError(t, ms.Set(LastChangeMark, 5, 0, "A"))

	want := "Marks:\n-----\n" +
		"Local marks (a-z):\n" +
		"  a : line 1, col 1\n" +
		"  b : line 2, col 5\n" +
		"\nGlobal marks (A-Z):\n" +
		"  Q : line 3, col 4 [B]\n" +
		"\nLast change position:\n" +
		"  . : line 6, col 1\n"
	assert.Equal(t, want, ms.Format("A"))
}

func TestJumpListNavigation(t *testing.T) {
	j := NewJumpList(0)
	_, ok := j.Back()
	assert.False(t, ok)

	j.Record(0, 0)
	j.Record(100, 5)
	j.Record(200, 9)
	require.Equal(t, 3, j.Size())

	last, ok := j.Last()
	require.True(t, ok)
	assert.Equal(t, JumpPosition{Offset: 100, Line: 5}, last)

	pos, ok := j.Back()
	require.True(t, ok)
	assert.Equal(t, 100, pos.Offset)
	pos, ok = j.Back()
	require.True(t, ok)
	assert.Equal(t, 0, pos.Offset)
	_, ok = j.Back()
	assert.False(t, ok)

	pos, ok = j.Forward()
	require.True(t, ok)
	assert.Equal(t, 100, pos.Offset)

	j.Record(300, 12)
	assert.Equal(t, 3, j.Size(), "forward history is dropped")
	_, ok = j.Forward()
	assert.False(t, ok)
}

func TestJumpListDedupe(t *testing.T) {
	j := NewJumpList(10)
	j.Record(10, 1)
	j.Record(14, 1)
	assert.Equal(t, 1, j.Size())

	j.Record(16, 1)
	assert.Equal(t, 2, j.Size(), "more than 5 away")

	j.Record(18, 2)
	assert.Equal(t, 3, j.Size(), "different line")
}

func TestJumpListSwapAndCapacity(t *testing.T) {
	j := NewJumpList(3)
	_, ok := j.SwapLast()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		j.Record(i*100, i*10)
	}
	assert.Equal(t, 3, j.Size())

	pos, ok := j.SwapLast()
	require.True(t, ok)
	assert.Equal(t, 300, pos.Offset)
	last, _ := j.Last()
	assert.Equal(t, 400, last.Offset)

	j.Clear()
	assert.Zero(t, j.Size())
	assert.Equal(t, -1, j.Index())
}

func TestProperty_JumpListBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 20).Draw(t, "capacity")
		j := NewJumpList(capacity)
		n := rapid.IntRange(0, 60).Draw(t, "n")
		for i := 0; i < n; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				off := rapid.IntRange(0, 500).Draw(t, "offset")
				j.Record(off, off/40)
			case 1:
				j.Back()
			default:
				j.Forward()
			}
			if j.Size() > capacity {
				t.Fatalf("size %d exceeds capacity %d", j.Size(), capacity)
			}
			if j.Index() >= j.Size() {
				t.Fatalf("index %d out of range %d", j.Index(), j.Size())
			}
		}
	})
}
