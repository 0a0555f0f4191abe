package screen

import (
	"testing"

	"github.com/Gaurav-Gosain/termdrive/internal/vtgrid"
)

func lineOf(spans ...vtgrid.Span) vtgrid.Line {
	return vtgrid.Line{Spans: spans}
}

func TestProjectLeadingNewline(t *testing.T) {
	g := vtgrid.Grid{Lines: []vtgrid.Line{
		lineOf(vtgrid.Span{Text: "hello world", Width: 11}),
	}}
	got := Project(g, Options{})
	want := "\nhello world"
	if got != want {
		t.Errorf("Project() = %q, want %q", got, want)
	}
}

func TestProjectRightTrimsTrailingWhitespace(t *testing.T) {
	g := vtgrid.Grid{Lines: []vtgrid.Line{
		lineOf(vtgrid.Span{Text: "hi   ", Width: 5}),
	}}
	got := Project(g, Options{})
	if got != "\nhi" {
		t.Errorf("Project() = %q, want %q", got, "\nhi")
	}
}

func TestProjectTrimEndDropsTrailingBlankLines(t *testing.T) {
	g := vtgrid.Grid{Lines: []vtgrid.Line{
		lineOf(vtgrid.Span{Text: "hello", Width: 5}),
		lineOf(vtgrid.Span{Text: "     ", Width: 5}),
		lineOf(vtgrid.Span{Text: "     ", Width: 5}),
	}}
	got := Project(g, Options{TrimEnd: true})
	if got != "\nhello" {
		t.Errorf("Project(trim_end) = %q, want %q", got, "\nhello")
	}
}

func TestProjectStyleFilterPreservesLayoutMidLine(t *testing.T) {
	red := "#ff0000"
	g := vtgrid.Grid{Lines: []vtgrid.Line{
		lineOf(
			vtgrid.Span{Text: "bad", Width: 3},
			vtgrid.Span{Text: "ok", Width: 2, Fg: red},
			vtgrid.Span{Text: "!", Width: 1},
		),
	}}
	filtered := Project(g, Options{Only: &StyleFilter{Foreground: &red}})
	unfiltered := Project(g, Options{})
	if len(filtered) != len(unfiltered) {
		t.Errorf("filtered length %d != unfiltered length %d", len(filtered), len(unfiltered))
	}
	if filtered != "\n   ok!" {
		t.Errorf("Project(only fg=red) = %q, want %q", filtered, "\n   ok!")
	}
}

func TestProjectIdempotent(t *testing.T) {
	g := vtgrid.Grid{Lines: []vtgrid.Line{
		lineOf(vtgrid.Span{Text: "abc", Width: 3}),
	}}
	a := Project(g, Options{})
	b := Project(g, Options{})
	if a != b {
		t.Errorf("Project not idempotent: %q != %q", a, b)
	}
}

func TestProjectShowCursorBracketsCell(t *testing.T) {
	g := vtgrid.Grid{
		Lines:         []vtgrid.Line{lineOf(vtgrid.Span{Text: "hello", Width: 5})},
		CursorRow:     0,
		CursorCol:     1,
		CursorVisible: true,
	}
	got := Project(g, Options{ShowCursor: true})
	if got != "\nh[e]llo" {
		t.Errorf("Project(show_cursor) = %q, want %q", got, "\nh[e]llo")
	}
}

func TestProjectShowCursorIgnoredWhenNotVisible(t *testing.T) {
	g := vtgrid.Grid{
		Lines:         []vtgrid.Line{lineOf(vtgrid.Span{Text: "hello", Width: 5})},
		CursorRow:     0,
		CursorCol:     1,
		CursorVisible: false,
	}
	got := Project(g, Options{ShowCursor: true})
	if got != "\nhello" {
		t.Errorf("Project(show_cursor, invisible) = %q, want %q", got, "\nhello")
	}
}

func TestProjectShowCursorPastLineEndPads(t *testing.T) {
	g := vtgrid.Grid{
		Lines:         []vtgrid.Line{lineOf(vtgrid.Span{Text: "hi", Width: 2})},
		CursorRow:     0,
		CursorCol:     4,
		CursorVisible: true,
	}
	got := Project(g, Options{ShowCursor: true})
	if got != "\nhi  []" {
		t.Errorf("Project(show_cursor past end) = %q, want %q", got, "\nhi  []")
	}
}

func TestRawLinesNoFilterNoTrim(t *testing.T) {
	g := vtgrid.Grid{Lines: []vtgrid.Line{
		lineOf(vtgrid.Span{Text: "hi  ", Width: 4}),
	}}
	lines := RawLines(g)
	if len(lines) != 1 || lines[0] != "hi  " {
		t.Errorf("RawLines() = %q, want untrimmed %q", lines, "hi  ")
	}
}
