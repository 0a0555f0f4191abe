// Package match implements PatternMatcher: locating occurrences of a
// literal or regular-expression pattern across the raw, unstyled per-line
// text of a projected grid.
package match

import "github.com/Gaurav-Gosain/termdrive/internal/pattern"

// Match is one occurrence of a pattern on the grid.
type Match struct {
	Row  int
	Col  int
	Text string
}

// Find returns every non-overlapping match of p across lines, in line-major
// then column order. lines must be raw per-line text: no style filtering,
// no trailing-whitespace trimming. Column is the 0-based rune index within
// the line at which the match begins.
func Find(lines []string, p pattern.Pattern) []Match {
	re := p.Matcher()
	var out []Match
	for row, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			out = append(out, Match{
				Row:  row,
				Col:  runeIndex(line, loc[0]),
				Text: line[loc[0]:loc[1]],
			})
		}
	}
	return out
}

// runeIndex converts a byte offset within s to the rune index at that
// offset, so Match.Col counts characters rather than UTF-8 bytes.
func runeIndex(s string, byteOffset int) int {
	count := 0
	for i := range s {
		if i >= byteOffset {
			break
		}
		count++
	}
	return count
}
