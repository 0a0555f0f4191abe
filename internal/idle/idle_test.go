package idle

import (
	"testing"
	"time"
)

func TestAwaitQuiescentNoDataYetUsesFallback(t *testing.T) {
	tr := New()
	start := time.Now()
	if err := tr.AwaitQuiescent(500 * time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed > 100*time.Millisecond {
		t.Errorf("expected fallback-bounded resolution, took %v", elapsed)
	}
}

func TestAwaitQuiescentAfterNotify(t *testing.T) {
	tr := New()
	tr.Notify()
	start := time.Now()
	if err := tr.AwaitQuiescent(500 * time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 40*time.Millisecond || elapsed > 200*time.Millisecond {
		t.Errorf("expected resolution near IDLE_DEBOUNCE, took %v", elapsed)
	}
}

func TestBurstOfNotifiesThenAwaitResolves(t *testing.T) {
	tr := New()
	for i := 0; i < 5; i++ {
		tr.Notify()
		time.Sleep(10 * time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		tr.AwaitQuiescent(time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("AwaitQuiescent never resolved after burst")
	}
}

func TestAwaitQuiescentTimesOut(t *testing.T) {
	tr := New()
	tr.Notify()
	tr.Notify()
	err := tr.AwaitQuiescent(10 * time.Millisecond)
	if err != ErrTimeout {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestAwaitFirstDataImmediateSuccess(t *testing.T) {
	tr := New()
	tr.Notify()
	if err := tr.AwaitFirstData(time.Millisecond); err != nil {
		t.Errorf("expected immediate success, got %v", err)
	}
}

func TestAwaitFirstDataTimesOutWithNoData(t *testing.T) {
	tr := New()
	if err := tr.AwaitFirstData(10 * time.Millisecond); err != ErrTimeout {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestAwaitFirstDataResolvesOnNotify(t *testing.T) {
	tr := New()
	done := make(chan error, 1)
	go func() { done <- tr.AwaitFirstData(time.Second) }()
	time.Sleep(10 * time.Millisecond)
	tr.Notify()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("AwaitFirstData never resolved")
	}
}

func TestCloseReleasesWaitersWithError(t *testing.T) {
	tr := New()
	tr.Notify()
	done := make(chan error, 1)
	go func() { done <- tr.AwaitQuiescent(time.Second) }()
	time.Sleep(10 * time.Millisecond)
	tr.Close()
	select {
	case err := <-done:
		if err != ErrClosed {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("waiter never released on Close")
	}
}

func TestCloseIdempotent(t *testing.T) {
	tr := New()
	tr.Close()
	tr.Close()
}
