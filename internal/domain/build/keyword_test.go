package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyword(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Keyword
	}{
		{name: "exact", line: "[running shoes]", want: Keyword{"running shoes", MatchExact}},
		{name: "exact inner spaces trimmed", line: "[  running shoes ]", want: Keyword{"running shoes", MatchExact}},
		{name: "phrase", line: `"trail shoes"`, want: Keyword{"trail shoes", MatchPhrase}},
		{name: "broad", line: "sneakers", want: Keyword{"sneakers", MatchBroad}},
		{name: "broad keeps surrounding trim only", line: "  red  sneakers ", want: Keyword{"red  sneakers", MatchBroad}},
		{name: "mixed delimiters stay broad", line: `[kw"`, want: Keyword{`[kw"`, MatchBroad}},
		{name: "lone bracket", line: "[", want: Keyword{"[", MatchBroad}},
		{name: "lone quote", line: `"`, want: Keyword{`"`, MatchBroad}},
		{name: "empty exact", line: "[]", want: Keyword{"", MatchExact}},
		{name: "bracket wins over quote", line: `["kw"]`, want: Keyword{`"kw"`, MatchExact}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeyword(tt.line))
		})
	}
}

func TestParseKeyword_Rewrap(t *testing.T) {
	wrap := map[MatchType]func(string) string{
		MatchExact:  func(s string) string { return "[" + s + "]" },
		MatchPhrase: func(s string) string { return `"` + s + `"` },
		MatchBroad:  func(s string) string { return s },
	}
	for _, line := range []string{"[a b]", `"c d"`, "e f", "[ padded ]", `" x "`} {
		first := ParseKeyword(line)
		second := ParseKeyword(wrap[first.MatchType](first.Text))
		assert.Equal(t, first, second, line)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "whitespace only", text: " \n\t\n ", want: nil},
		{name: "drops blank lines", text: "a\n\n  \nb", want: []string{"a", "b"}},
		{name: "outer trim only", text: "  a\n b \nc  ", want: []string{"a", " b ", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.text))
		})
	}
}

func TestFirstN(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, FirstN(lines, 2))
	assert.Equal(t, lines, FirstN(lines, 5))
}

func TestNormalizeSnippetValues(t *testing.T) {
	assert.Equal(t, "a\nb", normalizeSnippetValues(" a \n\n b", 3))
	assert.Equal(t, "a", normalizeSnippetValues("a\n\nb", 2))
	assert.Equal(t, "a\nb\nc", normalizeSnippetValues("a\nb\nc", 0))
	assert.Equal(t, "", normalizeSnippetValues("", 3))
}
