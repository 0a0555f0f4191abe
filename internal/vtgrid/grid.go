// Package vtgrid adapts github.com/danielgatis/go-headless-term's Terminal
// to the Grid/Span/Cell data model the core's ScreenProjector and
// PatternMatcher are written against, and preserves the emulator's
// indexed-vs-RGB color distinction instead of normalizing it (spec §9).
package vtgrid

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	headlessterm "github.com/danielgatis/go-headless-term"
)

// Style is the subset of a cell's rendering attributes ScreenProjector's
// style filter predicates can test.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Span is a run of adjacent cells sharing identical style and colors.
// Fg/Bg are already rendered to the representation spec §3 requires: a
// decimal string for an indexed palette color, a lowercase "#rrggbb" for a
// 24-bit RGB color, or the empty string for the terminal's unset default.
type Span struct {
	Text  string
	Width int
	Style Style
	Fg    string
	Bg    string
}

// Line is one row of the grid, as an ordered sequence of spans whose
// widths sum to the grid's column count.
type Line struct {
	Spans []Span
}

// Grid is a snapshot of the emulator's screen at one instant.
type Grid struct {
	Rows, Cols    int
	Lines         []Line
	CursorRow     int
	CursorCol     int
	CursorVisible bool
}

// Emulator wraps a *headlessterm.Terminal behind the feed/snapshot/resize
// surface spec §6 assumes of the terminal emulator dependency.
type Emulator struct {
	mu   sync.Mutex
	term *headlessterm.Terminal
}

// responseWriter forwards terminal-generated responses (e.g. cursor
// position reports queried by the child) back to the PTY, mirroring the
// teacher's handleIOOperations response-writeback goroutine, except
// go-headless-term delivers responses via a registered io.Writer instead
// of a pull-based Read.
type responseWriter struct {
	w io.Writer
}

func (r responseWriter) Write(p []byte) (int, error) {
	return r.w.Write(p)
}

// NewEmulator creates an emulator sized to (cols, rows) whose generated
// responses are written to respond.
func NewEmulator(cols, rows int, respond io.Writer) *Emulator {
	term := headlessterm.New(
		headlessterm.WithSize(rows, cols),
		headlessterm.WithResponse(responseWriter{w: respond}),
	)
	return &Emulator{term: term}
}

// Feed parses data and updates terminal state. The emulator is expected to
// be total over arbitrary byte streams; Feed never returns an error for
// malformed input, only for an already-failed write to the underlying
// decoder's internal io.Writer contract.
func (e *Emulator) Feed(data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.term.Write(data)
	return err
}

// Resize updates the emulator's dimensions.
func (e *Emulator) Resize(cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term.Resize(rows, cols)
}

// Destroy releases emulator resources. go-headless-term has no explicit
// teardown; Destroy exists so Session.Close has a single uniform call,
// per spec §4.5 ("destroys the emulator").
func (e *Emulator) Destroy() {}

// Snapshot projects the current terminal state into a Grid.
func (e *Emulator) Snapshot() Grid {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, cols := e.term.Rows(), e.term.Cols()
	row, col := e.term.CursorPos()
	g := Grid{
		Rows:          rows,
		Cols:          cols,
		Lines:         make([]Line, rows),
		CursorRow:     row,
		CursorCol:     col,
		CursorVisible: e.term.CursorVisible(),
	}

	for r := 0; r < rows; r++ {
		g.Lines[r] = e.snapshotLine(r, cols)
	}
	return g
}

func (e *Emulator) snapshotLine(row, cols int) Line {
	var spans []Span
	var cur *Span
	var text []rune

	flush := func() {
		if cur != nil {
			cur.Text = string(text)
			spans = append(spans, *cur)
		}
	}

	for col := 0; col < cols; col++ {
		cell := e.term.Cell(row, col)
		if cell == nil || cell.IsWideSpacer() {
			if cur != nil {
				cur.Width++
			}
			continue
		}

		style := Style{
			Bold:      cell.HasFlag(headlessterm.CellFlagBold),
			Italic:    cell.HasFlag(headlessterm.CellFlagItalic),
			Underline: cell.HasFlag(headlessterm.CellFlagUnderline) || cell.HasFlag(headlessterm.CellFlagDoubleUnderline),
		}
		fg := renderColor(cell.Fg, true)
		bg := renderColor(cell.Bg, false)

		if cur == nil || cur.Style != style || cur.Fg != fg || cur.Bg != bg {
			flush()
			cur = &Span{Style: style, Fg: fg, Bg: bg}
			text = nil
		}

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		text = append(text, ch)
		cur.Width++
	}
	flush()

	return Line{Spans: spans}
}

// renderColor formats c per spec §3: an *headlessterm.IndexedColor renders
// as its decimal index, any other resolved color renders as lowercase hex,
// and the terminal's semantic default (foreground/background NamedColor,
// meaning "no explicit color was set") renders as the empty string so the
// style filter's foreground/background predicates only match cells with
// an explicit color, never the ambient default.
func renderColor(c color.Color, fg bool) string {
	switch v := c.(type) {
	case nil:
		return ""
	case *headlessterm.IndexedColor:
		return fmt.Sprintf("%d", v.Index)
	case *headlessterm.NamedColor:
		if isDefaultName(v.Name, fg) {
			return ""
		}
		rgba := headlessterm.DefaultPalette[clampIndex(v.Name)]
		return hexString(rgba.R, rgba.G, rgba.B)
	default:
		r, g, b, _ := v.RGBA()
		return hexString(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func isDefaultName(name int, fg bool) bool {
	if fg {
		return name == headlessterm.NamedColorForeground
	}
	return name == headlessterm.NamedColorBackground
}

func clampIndex(i int) int {
	if i < 0 || i > 255 {
		return 0
	}
	return i
}

func hexString(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
