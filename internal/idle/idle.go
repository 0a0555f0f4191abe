// Package idle implements IdleTracker: the quiescence scheduler the rest
// of the core waits on. It observes PTY-data arrival and fires a
// "quiescent" event a fixed debounce after the last byte.
package idle

import (
	"errors"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/termdrive/internal/config"
)

// ErrTimeout is returned when a wait's timeout elapses before its
// condition is met.
var ErrTimeout = errors.New("idle: timeout")

// ErrClosed is returned to every outstanding waiter when Close is called.
var ErrClosed = errors.New("idle: closed")

// Tracker implements the debounce-based quiescence model of spec §4.4. The
// zero value is not usable; construct with New.
type Tracker struct {
	mu sync.Mutex

	scheduled  bool
	generation uint64
	timer      *time.Timer
	waiters    []chan struct{}

	hasData          bool
	firstDataWaiters []chan struct{}

	closed   bool
	closedCh chan struct{}
}

// New returns a Tracker with no data received yet and no debounce armed.
func New() *Tracker {
	return &Tracker{closedCh: make(chan struct{})}
}

// Notify must be called on every arriving chunk. It marks first-data
// arrival (waking any AwaitFirstData waiters exactly once), cancels any
// pending debounce, and arms a fresh one of config.IdleDebounce.
func (t *Tracker) Notify() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	if !t.hasData {
		t.hasData = true
		for _, w := range t.firstDataWaiters {
			close(w)
		}
		t.firstDataWaiters = nil
	}

	t.generation++
	gen := t.generation
	t.scheduled = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(config.IdleDebounce, func() { t.fire(gen) })
	t.mu.Unlock()
}

func (t *Tracker) fire(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.scheduled = false
	waiters := t.waiters
	t.waiters = nil
	t.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
}

// AwaitQuiescent returns nil when the debounce fires, or ErrTimeout if
// timeout elapses first. If no debounce is currently scheduled
// (no byte has arrived since the last fire), it resolves after
// min(timeout, config.InitialIdleFallback) with no error: the stream is
// trivially quiescent. Returns ErrClosed if the Tracker is closed while
// waiting.
func (t *Tracker) AwaitQuiescent(timeout time.Duration) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if !t.scheduled {
		t.mu.Unlock()
		wait := config.InitialIdleFallback
		if timeout < wait {
			wait = timeout
		}
		select {
		case <-time.After(wait):
			return nil
		case <-t.closedCh:
			return ErrClosed
		}
	}

	ch := make(chan struct{})
	t.waiters = append(t.waiters, ch)
	t.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-t.closedCh:
		return ErrClosed
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// AwaitFirstData resolves as soon as the first byte ever arrives, or
// immediately if one already has. Fails with ErrTimeout if none arrives
// within timeout.
func (t *Tracker) AwaitFirstData(timeout time.Duration) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.hasData {
		t.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	t.firstDataWaiters = append(t.firstDataWaiters, ch)
	t.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-t.closedCh:
		return ErrClosed
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// Close cancels the pending debounce and releases every outstanding
// waiter with ErrClosed. Idempotent.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
	}
	close(t.closedCh)
	t.mu.Unlock()
}
