// Package testutil provides FakeShell, an in-memory stand-in for a
// PTY-backed child process that satisfies internal/vtgrid.PTY, plus
// helpers for building the byte sequences a real terminal program would
// emit. internal/vtgrid and internal/driver tests wrap a FakeShell in a
// vtgrid.Handle via vtgrid.NewHandle to drive a Session deterministically,
// scripting exactly what the "child" writes instead of racing a real
// shell's own timing.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// FakeShell is a io.ReadWriteCloser standing in for a PTY: SendOutput
// queues bytes a Read call will return (as if the child wrote to its
// stdout), and Write records bytes as if they were sent to the child's
// stdin.
type FakeShell struct {
	mu      sync.Mutex
	cond    *sync.Cond
	outBuf  bytes.Buffer
	input   strings.Builder
	history []string
	closed  bool
	done    chan struct{}
	cols    int
	rows    int
}

// NewFakeShell returns a ready-to-use FakeShell.
func NewFakeShell() *FakeShell {
	s := &FakeShell{done: make(chan struct{})}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Read blocks until output is available or the shell is closed, then
// copies up to len(p) bytes per the io.Reader contract.
func (s *FakeShell) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.outBuf.Len() == 0 && !s.closed {
		s.cond.Wait()
	}
	if s.outBuf.Len() == 0 && s.closed {
		return 0, io.EOF
	}
	return s.outBuf.Read(p)
}

// ReadWithTimeout behaves like Read but gives up after timeout.
func (s *FakeShell) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := s.Read(p)
		done <- result{n, err}
	}()

	select {
	case r := <-done:
		return r.n, r.err
	case <-time.After(timeout):
		return 0, fmt.Errorf("testutil: Read timed out after %s", timeout)
	}
}

// Write records input as if it were sent to the child's stdin.
func (s *FakeShell) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.New("testutil: write to closed FakeShell")
	}
	s.input.Write(p)
	s.history = append(s.history, string(p))
	return len(p), nil
}

// SendOutput queues s as output the next Read call(s) will return.
func (s *FakeShell) SendOutput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.outBuf.WriteString(text)
	s.cond.Broadcast()
}

// SendOutputf is SendOutput with fmt.Sprintf formatting.
func (s *FakeShell) SendOutputf(format string, args ...any) {
	s.SendOutput(fmt.Sprintf(format, args...))
}

// GetInput returns everything written so far, concatenated.
func (s *FakeShell) GetInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input.String()
}

// GetInputHistory returns each Write call's payload, in order.
func (s *FakeShell) GetInputHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// ClearInput resets recorded input and history.
func (s *FakeShell) ClearInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.Reset()
	s.history = nil
}

// IsClosed reports whether Close has been called.
func (s *FakeShell) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Resize records the geometry a real PTY would propagate to the child via
// SIGWINCH; FakeShell has no child to notify, so it just remembers it.
func (s *FakeShell) Resize(cols, rows int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("testutil: resize of closed FakeShell")
	}
	s.cols, s.rows = cols, rows
	return nil
}

// Size returns the geometry from the most recent Resize call.
func (s *FakeShell) Size() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols, s.rows
}

// Done returns a channel closed when Close is called, standing in for a
// real child's exit. vtgrid.NewHandle's wait func blocks on it so a
// FakeShell-backed Handle's Exited channel closes the same way a real
// child's does.
func (s *FakeShell) Done() <-chan struct{} {
	return s.done
}

// Close is idempotent; it wakes any blocked Read with io.EOF and closes
// the channel Done returns.
func (s *FakeShell) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	s.cond.Broadcast()
	return nil
}

// ErrorOutput formats a bash-style command error line.
func ErrorOutput(cmd, message string) string {
	return fmt.Sprintf("bash: %s: %s\n", cmd, message)
}

// CommandNotFound formats a bash-style "command not found" line.
func CommandNotFound(cmd string) string {
	return fmt.Sprintf("bash: %s: command not found\n", cmd)
}

// TabCompletionResponse joins candidates the way bash's completion
// listing does: two spaces between entries, CRLF terminated.
func TabCompletionResponse(candidates []string) string {
	return strings.Join(candidates, "  ") + "\r\n"
}

// ShellPrompt formats a conventional "user@host:cwd$ " prompt.
func ShellPrompt(user, host, cwd string) string {
	return fmt.Sprintf("%s@%s:%s$ ", user, host, cwd)
}

// ColoredLine wraps text in an SGR foreground color and CRLF-terminates it.
func ColoredLine(fgCode int, text string) string {
	return NewANSIBuilder().FgColor(fgCode).Text(text).Reset().String() + "\r\n"
}

// LSOutput renders names the way `ls` colors directories (bold blue) vs
// plain files.
func LSOutput(names []string, isDir []bool) string {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("  ")
		}
		if i < len(isDir) && isDir[i] {
			b.WriteString(NewANSIBuilder().FgColor(34).Text(name).Reset().String())
		} else {
			b.WriteString(name)
		}
	}
	b.WriteString("\r\n")
	return b.String()
}

// ProgressBar renders a simple bracketed progress bar at percent of width.
func ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("#", filled), strings.Repeat(" ", width-filled), percent)
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// SpinnerFrame returns the classic four-frame spinner glyph for step i.
func SpinnerFrame(i int) string {
	return spinnerFrames[i%len(spinnerFrames)]
}

// CursorPositionResponse formats a DSR cursor-position report.
func CursorPositionResponse(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dR", row, col)
}

// TerminalSizeResponse formats an XTWINOPS "report text area size in
// characters" response.
func TerminalSizeResponse(rows, cols int) string {
	return fmt.Sprintf("\x1b[8;%d;%dt", rows, cols)
}
