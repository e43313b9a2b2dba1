package build

import "strings"

// MatchType is the keyword matching mode
type MatchType string

const (
	MatchExact  MatchType = "Exact"
	MatchPhrase MatchType = "Phrase"
	MatchBroad  MatchType = "Broad"
)

const (
	MaxHeadlines    = 15
	MaxDescriptions = 4
)

// Keyword is a parsed keyword line
type Keyword struct {
	Text      string
	MatchType MatchType
}

// ParseKeyword classifies one keyword line. [kw] is Exact, "kw" is Phrase,
// anything else is Broad. Only the outer delimiter pair is stripped.
func ParseKeyword(line string) Keyword {
	kw := strings.TrimSpace(line)
	switch {
	case len(kw) >= 2 && strings.HasPrefix(kw, "[") && strings.HasSuffix(kw, "]"):
		return Keyword{Text: strings.TrimSpace(kw[1 : len(kw)-1]), MatchType: MatchExact}
	case len(kw) >= 2 && strings.HasPrefix(kw, `"`) && strings.HasSuffix(kw, `"`):
		return Keyword{Text: strings.TrimSpace(kw[1 : len(kw)-1]), MatchType: MatchPhrase}
	}
	return Keyword{Text: kw, MatchType: MatchBroad}
}

// SplitLines splits multi-line form text into its meaningful lines.
// Blank and whitespace-only lines are dropped; surviving lines keep
// their inner whitespace.
func SplitLines(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// FirstN returns at most n leading lines
func FirstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// normalizeSnippetValues mirrors loading values into a fixed number of
// value slots and reading back the non-empty ones.
func normalizeSnippetValues(values string, slots int) string {
	parts := strings.Split(values, "\n")
	if slots > 0 && len(parts) > slots {
		parts = parts[:slots]
	}
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, "\n")
}

// SnippetValues returns the trimmed non-empty snippet values joined by newline
func SnippetValues(values string) string {
	return normalizeSnippetValues(values, 0)
}
