// Package screen implements ScreenProjector: the pure function that turns
// an emulator grid snapshot into the filtered, cleaned-up text view
// assertions are written against.
package screen

import (
	"strings"

	"github.com/Gaurav-Gosain/termdrive/internal/vtgrid"
)

// StyleFilter holds the independent optional predicates TextOptions.Only
// may set. A nil field means "don't filter on this attribute".
type StyleFilter struct {
	Bold       *bool
	Italic     *bool
	Underline  *bool
	Foreground *string
	Background *string
}

// matches reports whether every non-nil predicate in f holds for span.
func (f *StyleFilter) matches(span vtgrid.Span) bool {
	if f == nil {
		return true
	}
	if f.Bold != nil && *f.Bold != span.Style.Bold {
		return false
	}
	if f.Italic != nil && *f.Italic != span.Style.Italic {
		return false
	}
	if f.Underline != nil && *f.Underline != span.Style.Underline {
		return false
	}
	if f.Foreground != nil && *f.Foreground != span.Fg {
		return false
	}
	if f.Background != nil && *f.Background != span.Bg {
		return false
	}
	return true
}

// Options configures one projection. Only is spec §3's TextOptions.only;
// TrimEnd is TextOptions.trim_end; ShowCursor is TextOptions.show_cursor.
// The remaining TextOptions fields (wait_for, timeout, immediate) are
// polling concerns handled by Session, not by the pure projector.
type Options struct {
	Only       *StyleFilter
	TrimEnd    bool
	ShowCursor bool
}

// Project implements the algorithm of spec §4.2. It never touches the PTY
// or IdleTracker.
func Project(g vtgrid.Grid, opts Options) string {
	lines := make([]string, len(g.Lines))
	for i, line := range g.Lines {
		lines[i] = rightTrim(projectLine(line, opts.Only))
	}

	if opts.ShowCursor && g.CursorVisible {
		overlayCursor(lines, g.CursorRow, g.CursorCol)
	}

	if opts.TrimEnd {
		lines = dropTrailingEmpty(lines)
	}

	return "\n" + strings.Join(lines, "\n")
}

// overlayCursor marks the emulator's cursor cell in place by bracketing
// it (e.g. "ab[c]d"), since plain text has no SGR reverse-video
// equivalent of a blinking caret. row/col are 0-based, matching
// vtgrid.Grid.CursorRow/CursorCol. A column past the trimmed line's end
// (the common case on a blank line) pads with spaces first.
func overlayCursor(lines []string, row, col int) {
	if row < 0 || row >= len(lines) || col < 0 {
		return
	}
	runes := []rune(lines[row])
	if col >= len(runes) {
		lines[row] = string(runes) + strings.Repeat(" ", col-len(runes)) + "[]"
		return
	}
	marked := make([]rune, 0, len(runes)+2)
	marked = append(marked, runes[:col]...)
	marked = append(marked, '[', runes[col], ']')
	marked = append(marked, runes[col+1:]...)
	lines[row] = string(marked)
}

// RawLines projects every line with no style filter and no trimming, the
// shape PatternMatcher requires.
func RawLines(g vtgrid.Grid) []string {
	lines := make([]string, len(g.Lines))
	for i, line := range g.Lines {
		lines[i] = projectLine(line, nil)
	}
	return lines
}

func projectLine(line vtgrid.Line, only *StyleFilter) string {
	var b strings.Builder
	for _, span := range line.Spans {
		if only == nil || only.matches(span) {
			b.WriteString(span.Text)
		} else {
			b.WriteString(strings.Repeat(" ", span.Width))
		}
	}
	return b.String()
}

func rightTrim(s string) string {
	return strings.TrimRight(s, " \t\r")
}

func dropTrailingEmpty(lines []string) []string {
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return lines[:end]
}
