// Package driver implements Session: the orchestrator coupling the PTY
// byte stream, the emulator grid, and the caller's wait/act requests into
// a single deterministic, idle-tracked automation surface.
package driver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/termdrive/internal/config"
	"github.com/Gaurav-Gosain/termdrive/internal/idle"
	"github.com/Gaurav-Gosain/termdrive/internal/keycodec"
	"github.com/Gaurav-Gosain/termdrive/internal/match"
	"github.com/Gaurav-Gosain/termdrive/internal/pattern"
	"github.com/Gaurav-Gosain/termdrive/internal/screen"
	"github.com/Gaurav-Gosain/termdrive/internal/vtgrid"
)

// Logger receives diagnostics the Session itself never fails on, mirroring
// spec §7's "emulator feed errors are logged and swallowed" policy.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// LaunchOptions is spec §3's LaunchOptions.
type LaunchOptions struct {
	Command string
	Args    []string
	Cols    int
	Rows    int
	Cwd     string
	Env     map[string]string
	Logger  Logger
}

// TextOptions is spec §3's TextOptions. WaitFor defaults to "trimmed text
// is non-empty" when nil. Timeout defaults to config.TextTimeout when 0.
type TextOptions struct {
	Only      *screen.StyleFilter
	WaitFor   func(string) bool
	Timeout   time.Duration
	TrimEnd   bool
	Immediate bool
	// ShowCursor brackets the emulator's cursor cell (e.g. "x[y]z") in the
	// returned text when the cursor is visible. See screen.Project.
	ShowCursor bool
}

// ClickOptions configures Session.Click.
type ClickOptions struct {
	First   bool
	Timeout time.Duration
}

// FrameOptions configures Session.CaptureFrames.
type FrameOptions struct {
	FrameCount int
	IntervalMS int
}

// Session is one driven child process. The zero value is not usable;
// construct with Launch.
type Session struct {
	id string

	geomMu sync.Mutex
	cols   int
	rows   int

	pty    *vtgrid.Handle
	emu    *vtgrid.Emulator
	idle   *idle.Tracker
	logger Logger

	closed atomic.Bool
}

// Launch spawns command under a PTY per opts, wires the emulator and
// IdleTracker, and waits for the child's first output (and the
// quiescence that follows it) before returning, per spec §6's helper
// constructor contract. The wait is best-effort: a child that produces no
// output at all (e.g. `cat` before any input) does not make Launch fail.
func Launch(opts LaunchOptions) (*Session, error) {
	cols := opts.Cols
	if cols <= 0 {
		cols = config.DefaultCols
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = config.DefaultRows
	}

	id := uuid.NewString()
	handle, err := vtgrid.Spawn(vtgrid.SpawnOptions{
		Command: opts.Command,
		Args:    opts.Args,
		Cols:    cols,
		Rows:    rows,
		Cwd:     opts.Cwd,
		Env:     opts.Env,
	})
	if err != nil {
		return nil, launchFailureErr(fmt.Errorf("session %s: %w", id, err))
	}

	return wrapHandle(id, handle, cols, rows, opts.Logger), nil
}

// wrapHandle builds a Session around an already-constructed PTY handle:
// it wires the emulator and IdleTracker, arranges for the Session to
// auto-close when the handle's underlying connection exits, and performs
// spec §6's helper-constructor wait (first data, then quiescence) before
// returning. Launch uses this for a real spawned child; driver tests call
// it directly with a vtgrid.Handle wrapping an internal/testutil.FakeShell
// so Session-level behavior can be exercised without a real shell.
func wrapHandle(id string, handle *vtgrid.Handle, cols, rows int, logger Logger) *Session {
	if logger == nil {
		logger = noopLogger{}
	}

	s := &Session{
		id:     id,
		cols:   cols,
		rows:   rows,
		pty:    handle,
		idle:   idle.New(),
		logger: logger,
	}

	emu := vtgrid.NewEmulator(cols, rows, writerFunc(handle.Write))
	s.emu = emu

	handle.OnData(func(chunk []byte) {
		if s.closed.Load() {
			return
		}
		if err := emu.Feed(chunk); err != nil {
			s.logger.Printf("session %s: emulator feed error: %v", s.id, err)
		}
		s.idle.Notify()
	})

	go func() {
		<-handle.Exited
		_ = s.Close()
	}()

	_ = s.idle.AwaitFirstData(config.WaitForDataTimeout)
	_ = s.idle.AwaitQuiescent(config.WaitIdleTimeout)

	return s
}

// writerFunc adapts a func([]byte) error to io.Writer, for wiring
// emulator-generated responses (e.g. cursor position reports) back to the
// PTY.
type writerFunc func([]byte) error

func (f writerFunc) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *Session) isClosed() bool {
	return s.closed.Load()
}

func (s *Session) writeRaw(data []byte) error {
	if s.isClosed() {
		return closedErr("write")
	}
	if len(data) == 0 {
		return nil
	}
	return s.pty.Write(data)
}

// Type writes each code point of text to the PTY with a small
// inter-character pacing delay, then awaits quiescence.
func (s *Session) Type(text string) error {
	if s.isClosed() {
		return closedErr("type")
	}
	for _, r := range text {
		if err := s.writeRaw([]byte(string(r))); err != nil {
			return writeFailureErr("type", err)
		}
		time.Sleep(config.TypePace)
	}
	s.awaitQuiescentBestEffort(config.WaitIdleTimeout)
	return nil
}

// Press validates keys against the Key enumeration, encodes the chord via
// KeyCodec, writes it in one PTY write, then awaits quiescence.
func (s *Session) Press(keys []string) error {
	if s.isClosed() {
		return closedErr("press")
	}
	if err := keycodec.Validate(keys); err != nil {
		return invalidKeyErr(err)
	}
	chord := buildChord(keys)
	if err := s.writeRaw(keycodec.Encode(chord)); err != nil {
		return writeFailureErr("press", err)
	}
	s.awaitQuiescentBestEffort(config.WaitIdleTimeout)
	return nil
}

func buildChord(names []string) keycodec.Chord {
	var chord keycodec.Chord
	for _, n := range names {
		switch keycodec.Modifier(n) {
		case keycodec.Ctrl, keycodec.Alt, keycodec.Shift, keycodec.Meta:
			chord.Mods = append(chord.Mods, keycodec.Modifier(n))
		default:
			chord.Keys = append(chord.Keys, keycodec.Key(n))
		}
	}
	return chord
}

// SendRaw writes bytes without pacing and without awaiting quiescence.
func (s *Session) SendRaw(data []byte) error {
	if s.isClosed() {
		return closedErr("send_raw")
	}
	if err := s.writeRaw(data); err != nil {
		return writeFailureErr("send_raw", err)
	}
	return nil
}

// awaitQuiescentBestEffort awaits quiescence and discards the result, so
// neither a timeout nor a close during the wait fails the calling operation.
func (s *Session) awaitQuiescentBestEffort(timeout time.Duration) {
	err := s.idle.AwaitQuiescent(timeout)
	_ = err // closed or timeout: either way, the operation itself already completed its write.
}

func (s *Session) snapshotText(opts TextOptions) string {
	g := s.emu.Snapshot()
	return screen.Project(g, screen.Options{Only: opts.Only, TrimEnd: opts.TrimEnd, ShowCursor: opts.ShowCursor})
}

func defaultWaitFor(s string) bool {
	return trimmedNonEmpty(s)
}

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// Text returns the current projection if Immediate is set; otherwise it
// polls, re-projecting after each brief quiescence wait, until WaitFor
// holds or Timeout expires.
func (s *Session) Text(opts TextOptions) (string, error) {
	if s.isClosed() {
		return "", closedErr("text")
	}

	waitFor := opts.WaitFor
	if waitFor == nil {
		waitFor = defaultWaitFor
	}

	if opts.Immediate {
		return s.snapshotText(opts), nil
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.TextTimeout
	}

	deadline := time.Now().Add(timeout)
	for {
		if s.isClosed() {
			return "", closedErr("text")
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		wait := config.TextPollInterval
		if wait > remaining {
			wait = remaining
		}
		_ = s.idle.AwaitQuiescent(wait)

		text := s.snapshotText(opts)
		if waitFor(text) {
			return text, nil
		}
	}

	final := s.snapshotText(opts)
	if waitFor(final) {
		return final, nil
	}
	return "", timeoutErr("text", final)
}

// WaitForText is sugar over Text whose predicate is "pattern matches the
// projected text".
func (s *Session) WaitForText(pat pattern.Pattern, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = config.WaitForTextTimeout
	}
	return s.Text(TextOptions{
		Timeout: timeout,
		WaitFor: pat.MatchString,
	})
}

// WaitIdle delegates to the IdleTracker.
func (s *Session) WaitIdle(timeout time.Duration) error {
	if s.isClosed() {
		return closedErr("wait_idle")
	}
	if timeout <= 0 {
		timeout = config.WaitIdleTimeout
	}
	return s.mapIdleErr("wait_idle", s.idle.AwaitQuiescent(timeout))
}

// WaitForData delegates to the IdleTracker.
func (s *Session) WaitForData(timeout time.Duration) error {
	if s.isClosed() {
		return closedErr("wait_for_data")
	}
	if timeout <= 0 {
		timeout = config.WaitForDataTimeout
	}
	return s.mapIdleErr("wait_for_data", s.idle.AwaitFirstData(timeout))
}

func (s *Session) mapIdleErr(op string, err error) error {
	switch err {
	case nil:
		return nil
	case idle.ErrClosed:
		return closedErr(op)
	case idle.ErrTimeout:
		return timeoutErr(op, s.snapshotText(TextOptions{}))
	default:
		return err
	}
}

// Click polls for pat on the raw grid text, clicking the sole match, or
// the first match (line-major, then column) if opts.First is set. More
// than one match without First is an AmbiguousClick error; none within
// the timeout is a ClickNotFound error.
func (s *Session) Click(pat pattern.Pattern, opts ClickOptions) error {
	if s.isClosed() {
		return closedErr("click")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.ClickTimeout
	}

	deadline := time.Now().Add(timeout)
	for {
		if s.isClosed() {
			return closedErr("click")
		}
		g := s.emu.Snapshot()
		matches := match.Find(screen.RawLines(g), pat)

		if len(matches) == 1 {
			return s.ClickAt(matches[0].Col, matches[0].Row)
		}
		if len(matches) > 1 {
			if opts.First {
				return s.ClickAt(matches[0].Col, matches[0].Row)
			}
			return ambiguousClickErr(len(matches), pat.String())
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return clickNotFoundErr(pat.String())
		}
		wait := config.ClickPollInterval
		if wait > remaining {
			wait = remaining
		}
		_ = s.idle.AwaitQuiescent(wait)
	}
}

// ClickAt emits the SGR mouse press+release pair at 0-based cell (x, y),
// then awaits quiescence.
func (s *Session) ClickAt(x, y int) error {
	if s.isClosed() {
		return closedErr("click_at")
	}
	if err := s.writeRaw(keycodec.ClickSGR(x, y)); err != nil {
		return writeFailureErr("click_at", err)
	}
	s.awaitQuiescentBestEffort(config.WaitIdleTimeout)
	return nil
}

func (s *Session) wheelTarget(x, y *int) (int, int) {
	s.geomMu.Lock()
	cols, rows := s.cols, s.rows
	s.geomMu.Unlock()

	cx, cy := cols/2, rows/2
	if x != nil {
		cx = *x
	}
	if y != nil {
		cy = *y
	}
	return cx, cy
}

// ScrollUp emits lines repeats of the wheel-up SGR event at (x, y),
// defaulting to the grid center, then awaits quiescence.
func (s *Session) ScrollUp(lines int, x, y *int) error {
	return s.scroll("scroll_up", keycodec.WheelUp, lines, x, y)
}

// ScrollDown emits lines repeats of the wheel-down SGR event at (x, y),
// defaulting to the grid center, then awaits quiescence.
func (s *Session) ScrollDown(lines int, x, y *int) error {
	return s.scroll("scroll_down", keycodec.WheelDown, lines, x, y)
}

func (s *Session) scroll(op string, encode func(x, y int) []byte, lines int, x, y *int) error {
	if s.isClosed() {
		return closedErr(op)
	}
	if lines <= 0 {
		lines = 1
	}
	cx, cy := s.wheelTarget(x, y)
	for i := 0; i < lines; i++ {
		if err := s.writeRaw(encode(cx, cy)); err != nil {
			return writeFailureErr(op, err)
		}
	}
	s.awaitQuiescentBestEffort(config.WaitIdleTimeout)
	return nil
}

// CaptureFrames sends the already-encoded key bytes via SendRaw, then
// captures FrameCount immediate projections interval_ms apart, to observe
// transient renders the debounce would otherwise hide.
func (s *Session) CaptureFrames(keys []byte, opts FrameOptions) ([]string, error) {
	if s.isClosed() {
		return nil, closedErr("capture_frames")
	}
	frameCount := opts.FrameCount
	if frameCount <= 0 {
		frameCount = config.DefaultFrameCount
	}
	intervalMS := opts.IntervalMS
	if intervalMS <= 0 {
		intervalMS = config.DefaultFrameIntervalMS
	}

	if err := s.SendRaw(keys); err != nil {
		return nil, err
	}

	frames := make([]string, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		frames = append(frames, s.snapshotText(TextOptions{Immediate: true}))
		if i < frameCount-1 {
			time.Sleep(time.Duration(intervalMS) * time.Millisecond)
		}
	}
	s.awaitQuiescentBestEffort(config.WaitIdleTimeout)
	return frames, nil
}

// Resize updates session geometry, the emulator, and the PTY atomically
// with respect to callers (guarded by geomMu). No quiescence wait: the
// child's own SIGWINCH-driven repaint will be observed by subsequent
// operations.
func (s *Session) Resize(cols, rows int) error {
	if s.isClosed() {
		return closedErr("resize")
	}
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("resize: cols and rows must be positive, got %d x %d", cols, rows)
	}

	s.geomMu.Lock()
	defer s.geomMu.Unlock()

	s.emu.Resize(cols, rows)
	if err := s.pty.Resize(cols, rows); err != nil {
		return writeFailureErr("resize", err)
	}
	s.cols, s.rows = cols, rows
	return nil
}

// Close is idempotent. It sets the closed flag, cancels the idle
// debounce, kills the PTY, and destroys the emulator, in that order.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.idle.Close()
	err := s.pty.Kill()
	s.emu.Destroy()
	if err != nil {
		return writeFailureErr("close", err)
	}
	return nil
}

// ID returns the Session's diagnostic identifier. Launch includes the
// identifier it generated in its LaunchFailure message; other error
// messages do not carry it.
func (s *Session) ID() string {
	return s.id
}
