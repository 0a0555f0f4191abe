// Package config holds the fixed timing constants and launch defaults the
// core depends on.
package config

import "time"

// =============================================================================
// Quiescence Timing
// =============================================================================

const (
	// IdleDebounce is the time after the last received byte before the PTY
	// stream is declared idle.
	IdleDebounce = 60 * time.Millisecond

	// InitialIdleFallback is the period a quiescence waiter resolves after
	// when it arms before any byte has ever arrived.
	InitialIdleFallback = 20 * time.Millisecond
)

// =============================================================================
// Geometry Defaults
// =============================================================================

const (
	// DefaultCols is the terminal width used when LaunchOptions.Cols is unset.
	DefaultCols = 80

	// DefaultRows is the terminal height used when LaunchOptions.Rows is unset.
	DefaultRows = 24
)

// =============================================================================
// Operation Timeouts
// =============================================================================

const (
	// TypePace is the inter-character delay used by Session.Type to mimic
	// real typing.
	TypePace = time.Millisecond

	// TextTimeout is the default timeout for Session.Text.
	TextTimeout = 1000 * time.Millisecond

	// TextPollInterval is how often Session.Text re-projects the grid while
	// waiting for its predicate to hold.
	TextPollInterval = 15 * time.Millisecond

	// WaitForTextTimeout is the default timeout for Session.WaitForText.
	WaitForTextTimeout = 5000 * time.Millisecond

	// WaitIdleTimeout is the default timeout for Session.WaitIdle.
	WaitIdleTimeout = 500 * time.Millisecond

	// WaitForDataTimeout is the default timeout for Session.WaitForData.
	WaitForDataTimeout = 5000 * time.Millisecond

	// ClickTimeout is the default timeout for Session.Click.
	ClickTimeout = 5000 * time.Millisecond

	// ClickPollInterval is the quiescence wait between click polling rounds.
	ClickPollInterval = 15 * time.Millisecond
)

// =============================================================================
// Frame Capture Defaults
// =============================================================================

const (
	// DefaultFrameCount is the default number of frames Session.CaptureFrames
	// returns when FrameCount is unset.
	DefaultFrameCount = 5

	// DefaultFrameIntervalMS is the default inter-frame sleep, in
	// milliseconds, when IntervalMS is unset.
	DefaultFrameIntervalMS = 10
)

// =============================================================================
// Environment
// =============================================================================

const (
	// ForcedTerm is forced into the child's environment regardless of
	// LaunchOptions.Env, so the child always sees a truecolor-capable term.
	ForcedTerm = "xterm-truecolor"

	// ForcedColorTerm is forced alongside ForcedTerm.
	ForcedColorTerm = "truecolor"
)
