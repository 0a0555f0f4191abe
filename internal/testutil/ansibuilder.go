package testutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ANSIBuilder composes xterm control sequences and plain text into one
// byte stream, for tests that need to hand an emulator a precise,
// hand-built frame of output.
type ANSIBuilder struct {
	b strings.Builder
}

// NewANSIBuilder returns an empty builder.
func NewANSIBuilder() *ANSIBuilder {
	return &ANSIBuilder{}
}

func formatCount(n int) string {
	if n == 1 {
		return ""
	}
	return strconv.Itoa(n)
}

// Text appends literal text.
func (b *ANSIBuilder) Text(s string) *ANSIBuilder {
	b.b.WriteString(s)
	return b
}

// Newline appends a CRLF.
func (b *ANSIBuilder) Newline() *ANSIBuilder {
	b.b.WriteString("\r\n")
	return b
}

// CursorHome moves the cursor to row 1, col 1.
func (b *ANSIBuilder) CursorHome() *ANSIBuilder {
	b.b.WriteString("\x1b[H")
	return b
}

// CursorTo moves the cursor to the given 1-based row and column.
func (b *ANSIBuilder) CursorTo(row, col int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%d;%dH", row, col)
	return b
}

// CursorUp moves the cursor up n rows.
func (b *ANSIBuilder) CursorUp(n int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%sA", formatCount(n))
	return b
}

// CursorDown moves the cursor down n rows.
func (b *ANSIBuilder) CursorDown(n int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%sB", formatCount(n))
	return b
}

// CursorForward moves the cursor right n columns.
func (b *ANSIBuilder) CursorForward(n int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%sC", formatCount(n))
	return b
}

// CursorBackward moves the cursor left n columns.
func (b *ANSIBuilder) CursorBackward(n int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%sD", formatCount(n))
	return b
}

// ClearScreen clears the entire screen.
func (b *ANSIBuilder) ClearScreen() *ANSIBuilder {
	b.b.WriteString("\x1b[2J")
	return b
}

// ClearLine clears the entire current line.
func (b *ANSIBuilder) ClearLine() *ANSIBuilder {
	b.b.WriteString("\x1b[2K")
	return b
}

// ClearToEndOfLine clears from the cursor to the end of the line.
func (b *ANSIBuilder) ClearToEndOfLine() *ANSIBuilder {
	b.b.WriteString("\x1b[K")
	return b
}

// ClearToEndOfScreen clears from the cursor to the end of the screen.
func (b *ANSIBuilder) ClearToEndOfScreen() *ANSIBuilder {
	b.b.WriteString("\x1b[J")
	return b
}

// Reset emits SGR 0.
func (b *ANSIBuilder) Reset() *ANSIBuilder {
	b.b.WriteString("\x1b[0m")
	return b
}

// Bold emits SGR 1.
func (b *ANSIBuilder) Bold() *ANSIBuilder {
	b.b.WriteString("\x1b[1m")
	return b
}

// Italic emits SGR 3.
func (b *ANSIBuilder) Italic() *ANSIBuilder {
	b.b.WriteString("\x1b[3m")
	return b
}

// Underline emits SGR 4.
func (b *ANSIBuilder) Underline() *ANSIBuilder {
	b.b.WriteString("\x1b[4m")
	return b
}

// FgColor emits a raw SGR foreground code (e.g. 31 for red).
func (b *ANSIBuilder) FgColor(code int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%dm", code)
	return b
}

// BgColor emits a raw SGR background code (e.g. 44 for blue).
func (b *ANSIBuilder) BgColor(code int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%dm", code)
	return b
}

// Fg256 emits an indexed-palette foreground color.
func (b *ANSIBuilder) Fg256(index int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[38;5;%dm", index)
	return b
}

// Bg256 emits an indexed-palette background color.
func (b *ANSIBuilder) Bg256(index int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[48;5;%dm", index)
	return b
}

// FgRGB emits a 24-bit truecolor foreground.
func (b *ANSIBuilder) FgRGB(r, g, bl int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[38;2;%d;%d;%dm", r, g, bl)
	return b
}

// BgRGB emits a 24-bit truecolor background.
func (b *ANSIBuilder) BgRGB(r, g, bl int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[48;2;%d;%d;%dm", r, g, bl)
	return b
}

// AltScreen switches to the alternate screen buffer.
func (b *ANSIBuilder) AltScreen() *ANSIBuilder {
	b.b.WriteString("\x1b[?1049h")
	return b
}

// MainScreen switches back to the primary screen buffer.
func (b *ANSIBuilder) MainScreen() *ANSIBuilder {
	b.b.WriteString("\x1b[?1049l")
	return b
}

// ShowCursor makes the cursor visible.
func (b *ANSIBuilder) ShowCursor() *ANSIBuilder {
	b.b.WriteString("\x1b[?25h")
	return b
}

// HideCursor hides the cursor.
func (b *ANSIBuilder) HideCursor() *ANSIBuilder {
	b.b.WriteString("\x1b[?25l")
	return b
}

// EnableBracketedPaste turns on bracketed-paste mode.
func (b *ANSIBuilder) EnableBracketedPaste() *ANSIBuilder {
	b.b.WriteString("\x1b[?2004h")
	return b
}

// DisableBracketedPaste turns off bracketed-paste mode.
func (b *ANSIBuilder) DisableBracketedPaste() *ANSIBuilder {
	b.b.WriteString("\x1b[?2004l")
	return b
}

// OSCTitle sets the window title via OSC 0.
func (b *ANSIBuilder) OSCTitle(title string) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b]0;%s\x07", title)
	return b
}

// ScrollRegion sets the scrolling region to [top, bottom].
func (b *ANSIBuilder) ScrollRegion(top, bottom int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%d;%dr", top, bottom)
	return b
}

// ScrollUp scrolls the screen up n lines.
func (b *ANSIBuilder) ScrollUp(n int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%sS", formatCount(n))
	return b
}

// ScrollDown scrolls the screen down n lines.
func (b *ANSIBuilder) ScrollDown(n int) *ANSIBuilder {
	fmt.Fprintf(&b.b, "\x1b[%sT", formatCount(n))
	return b
}

// Clear discards everything built so far.
func (b *ANSIBuilder) Clear() *ANSIBuilder {
	b.b.Reset()
	return b
}

// String returns the accumulated byte stream.
func (b *ANSIBuilder) String() string {
	return b.b.String()
}

// Bytes returns the accumulated byte stream as a []byte.
func (b *ANSIBuilder) Bytes() []byte {
	return []byte(b.b.String())
}
