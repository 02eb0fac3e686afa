package lines

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClassifiesLines(t *testing.T) {
	ls := Parse("- [ ] write docs\n  - [x] outline\nnotes here\n-[x]tight")
	require.Len(t, ls, 4)

	require.Equal(t, Checkbox("", false, "write docs"), ls[0])
	require.Equal(t, Checkbox("  ", true, "outline"), ls[1])
	require.Equal(t, 1, ls[1].IndentLevel())
	require.Equal(t, 12, ls[1].Offset())
	require.Equal(t, Plain("notes here"), ls[2])
	require.Equal(t, Checkbox("", true, "tight"), ls[3])
}

func TestParseDegradesUnknownMarksToPlain(t *testing.T) {
	ls := Parse("- [X] upper case mark\n- [-] dash")
	require.False(t, ls[0].Checkbox)
	require.False(t, ls[1].Checkbox)
	require.Equal(t, "- [X] upper case mark", ls[0].Text)
}

func TestSerializeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"- [ ] a",
		"- [ ] a\n  - [x] b\n    - [ ] c",
		"heading\n\n- [x] done\nfooter text",
		"- [ ] ",
		"  plain with leading spaces",
	}
	for _, text := range cases {
		require.Equal(t, text, Serialize(Parse(text)), "round trip of %q", text)
	}
}

func TestToggleOnlyTouchesCheckState(t *testing.T) {
	ls := Parse("  - [ ] item")
	out := Toggle(ls, 0, true)
	require.Equal(t, "  - [x] item", Serialize(out))
	require.False(t, ls[0].Checked, "input must not be mutated")

	again := Toggle(out, 0, true)
	require.Equal(t, out, again)

	plain := Parse("text")
	require.Equal(t, plain, Toggle(plain, 0, true))
	require.Equal(t, ls, Toggle(ls, 5, true))
}

func TestInsertAfterInheritsIndent(t *testing.T) {
	ls := Parse("- [ ] a\n    - [ ] b")
	out := InsertAfter(ls, 1, true)
	require.Equal(t, "- [ ] a\n    - [ ] b\n    - [ ] ", Serialize(out))

	out = InsertAfter(ls, 1, false)
	require.Equal(t, "- [ ] a\n    - [ ] b\n- [ ] ", Serialize(out))

	out = InsertAfter(ls, -1, true)
	require.Equal(t, Checkbox("", false, ""), out[0])
}

func TestBreakOnPlainLineAddsPlainLine(t *testing.T) {
	out := Break(Parse("intro\n  - [x] a"), 0)
	require.Equal(t, "intro\n\n  - [x] a", Serialize(out))

	out = Break(Parse("intro\n  - [x] a"), 1)
	require.Equal(t, "intro\n  - [x] a\n  - [ ] ", Serialize(out))
}

func TestIndentOutdent(t *testing.T) {
	ls := Parse("- [ ] a")
	in := Indent(ls, 0)
	require.Equal(t, "  - [ ] a", Serialize(in))
	require.Equal(t, 1, in[0].IndentLevel())

	back := Outdent(in, 0)
	require.Equal(t, "- [ ] a", Serialize(back))

	require.Equal(t, ls, Outdent(ls, 0), "outdent at zero indent is a no-op")

	single := Parse(" - [ ] a")
	require.Equal(t, single, Outdent(single, 0))
}

func TestRemoveIfEmpty(t *testing.T) {
	ls := Parse("- [ ] a\n- [ ] \n- [ ] c")
	out, focus, removed := RemoveIfEmpty(ls, 1)
	require.True(t, removed)
	require.Equal(t, 0, focus)
	require.Equal(t, "- [ ] a\n- [ ] c", Serialize(out))

	same, focus, removed := RemoveIfEmpty(out, 1)
	require.False(t, removed)
	require.Equal(t, 1, focus)
	require.Equal(t, out, same)

	first, focus, removed := RemoveIfEmpty(Parse("\nnext"), 0)
	require.True(t, removed)
	require.Equal(t, 0, focus)
	require.Equal(t, "next", Serialize(first))
}

func TestRemoveIfEmptyIsNoOpWithoutEmptyLines(t *testing.T) {
	ls := Parse("- [ ] a\nb\n  - [x] c")
	for i := range ls {
		out, _, removed := RemoveIfEmpty(ls, i)
		require.False(t, removed)
		require.Equal(t, ls, out)
	}
}

func TestNextUnchecked(t *testing.T) {
	idx, ok := NextUnchecked(Parse("plain\n- [x] a\n  - [ ] b\n- [ ] c"))
	require.True(t, ok)
	require.Equal(t, 2, idx)

	_, ok = NextUnchecked(Parse("- [x] a\ntext"))
	require.False(t, ok)
}

func TestSetLabelRejectsEmptyCheckboxLabel(t *testing.T) {
	ls := Parse("- [x] keep me\nplain")
	out, ok := SetLabel(ls, 0, "  ")
	require.False(t, ok)
	require.Equal(t, ls, out)

	out, ok = SetLabel(ls, 0, "renamed")
	require.True(t, ok)
	require.Equal(t, "- [x] renamed\nplain", Serialize(out))

	out, ok = SetLabel(ls, 1, "")
	require.True(t, ok)
	require.Equal(t, "- [x] keep me\n", Serialize(out))
}

func TestToCheckboxAndProgress(t *testing.T) {
	out := ToCheckbox(Parse("buy milk\n- [x] done"), 0)
	require.Equal(t, "- [ ] buy milk\n- [x] done", Serialize(out))

	done, total := Progress(out)
	require.Equal(t, 1, done)
	require.Equal(t, 2, total)
}

func TestCompletedLabels(t *testing.T) {
	labels := CompletedLabels("- [x] Review emails\n- [ ] Check calendar\n  - [x] nested\n- [x]\nplain [x]")
	require.Equal(t, []string{"Review emails", "nested"}, labels)
	require.Empty(t, CompletedLabels(""))
}
