package vtgrid

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/x/xpty"

	"github.com/Gaurav-Gosain/termdrive/internal/config"
)

// PTY is the minimal duplex transport Handle needs: a byte stream plus
// resize. A real xpty.Pty satisfies it directly; internal/testutil.FakeShell
// satisfies it as an in-memory stand-in for driver tests that don't want to
// spawn a real child.
type PTY interface {
	io.Reader
	io.Writer
	io.Closer
	Resize(cols, rows int) error
}

// Handle adapts a PTY to spec §6's PtyHandle contract: write/resize/kill
// plus an on_data registration that buffers any data read before a
// callback is registered and flushes it on registration, so no early
// child output is lost. Buffered flush and every chunk delivered after it
// are serialized through deliverMu, so a chunk racing the flush can never
// reach the callback out of arrival order.
type Handle struct {
	conn PTY
	wait func()
	kill func() error

	mu        sync.Mutex
	deliverMu sync.Mutex
	callback  func([]byte)
	buffered  [][]byte

	// Exited is closed once the underlying connection has exited (a real
	// child reaped by Wait, or a FakeShell that's been Closed).
	Exited chan struct{}
}

// SpawnOptions mirrors spec §3's LaunchOptions fields relevant to PTY
// construction.
type SpawnOptions struct {
	Command string
	Args    []string
	Cols    int
	Rows    int
	Cwd     string
	Env     map[string]string
}

// NewHandle wraps an already-constructed PTY. wait blocks until the
// connection's underlying process (or logical equivalent) has exited;
// kill tears the connection down. Spawn uses this for a real child;
// driver tests use it directly to drive a Session against
// internal/testutil.FakeShell.
func NewHandle(conn PTY, wait func(), kill func() error) *Handle {
	h := &Handle{
		conn:   conn,
		wait:   wait,
		kill:   kill,
		Exited: make(chan struct{}),
	}
	go h.readLoop()
	go h.waitForExit()
	return h
}

// Spawn launches command under a new PTY sized (cols, rows), merging Env
// over the inherited environment and forcing TERM/COLORTERM on top per
// spec §3.
func Spawn(opts SpawnOptions) (*Handle, error) {
	// #nosec G204 - command is caller-controlled by design; this package
	// drives arbitrary terminal applications under test.
	cmd := exec.Command(opts.Command, opts.Args...)
	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	}

	env := os.Environ()
	for k, v := range opts.Env {
		env = append(env, k+"="+v)
	}
	env = append(env, "TERM="+config.ForcedTerm, "COLORTERM="+config.ForcedColorTerm)
	cmd.Env = env

	ptyInstance, err := xpty.NewPty(opts.Cols, opts.Rows)
	if err != nil {
		return nil, fmt.Errorf("create pty: %w", err)
	}

	if err := ptyInstance.Start(cmd); err != nil {
		_ = ptyInstance.Close()
		return nil, fmt.Errorf("start command: %w", err)
	}

	if err := ptyInstance.Resize(opts.Cols, opts.Rows); err != nil {
		_ = ptyInstance.Close()
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("resize pty: %w", err)
	}

	return NewHandle(ptyInstance, func() { _ = cmd.Wait() }, func() error {
		err := ptyInstance.Close()
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return err
	}), nil
}

func (h *Handle) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := h.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			h.deliver(chunk)
		}
		if err != nil {
			return
		}
	}
}

// deliver either buffers chunk (no callback registered yet) or hands it to
// the callback, serialized against OnData's buffered flush via deliverMu.
func (h *Handle) deliver(chunk []byte) {
	h.mu.Lock()
	if h.callback == nil {
		h.buffered = append(h.buffered, chunk)
		h.mu.Unlock()
		return
	}
	cb := h.callback
	h.mu.Unlock()

	h.deliverMu.Lock()
	cb(chunk)
	h.deliverMu.Unlock()
}

// OnData registers cb to receive every chunk read from the child, in
// order. Any chunk read before registration is flushed to cb first; cb
// calls for chunks that arrive concurrently with that flush block on
// deliverMu until the flush completes, so arrival order is preserved.
func (h *Handle) OnData(cb func([]byte)) {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	buffered := h.buffered
	h.buffered = nil
	h.callback = cb
	h.mu.Unlock()

	for _, chunk := range buffered {
		cb(chunk)
	}
}

func (h *Handle) waitForExit() {
	h.wait()
	close(h.Exited)
}

// Write queues bytes to the child's stdin.
func (h *Handle) Write(data []byte) error {
	_, err := h.conn.Write(data)
	return err
}

// Resize propagates SIGWINCH to the child via the PTY.
func (h *Handle) Resize(cols, rows int) error {
	return h.conn.Resize(cols, rows)
}

// Kill terminates the child and releases the connection's resources.
func (h *Handle) Kill() error {
	return h.kill()
}
