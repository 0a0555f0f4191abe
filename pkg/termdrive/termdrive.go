// Package termdrive provides a reusable driver for automating terminal
// programs under a PTY: type and click into them, wait for text or
// quiescence to appear, and read back the styled screen, all without a
// real display attached.
//
// # Basic usage
//
//	session, err := termdrive.New("bash", termdrive.WithSize(80, 24))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer session.Close()
//
//	session.Type("echo hello\n")
//	text, err := session.WaitForText(termdrive.Lit("hello"), 0)
package termdrive

import (
	"time"

	"github.com/Gaurav-Gosain/termdrive/internal/driver"
	"github.com/Gaurav-Gosain/termdrive/internal/pattern"
	"github.com/Gaurav-Gosain/termdrive/internal/screen"
)

// Session is a running, driven child process.
type Session = driver.Session

// TextOptions configures Session.Text.
type TextOptions = driver.TextOptions

// ClickOptions configures Session.Click.
type ClickOptions = driver.ClickOptions

// FrameOptions configures Session.CaptureFrames.
type FrameOptions = driver.FrameOptions

// StyleFilter narrows TextOptions.Only to spans matching every set
// predicate.
type StyleFilter = screen.StyleFilter

// Pattern is a literal-or-regex matcher, used by WaitForText and Click.
type Pattern = pattern.Pattern

// Lit builds a Pattern matching text verbatim.
func Lit(text string) Pattern { return pattern.Lit(text) }

// ParsePattern recognizes the "/pattern/flags" convention, falling back
// to a literal match when s isn't shaped like a delimited regex.
func ParsePattern(s string) (Pattern, error) { return pattern.Parse(s) }

// Error is the concrete error type Session operations return for the
// kinds below (Resize's non-positive geometry check returns a plain error).
type Error = driver.Error

// Kind tags the category of an Error.
type Kind = driver.Kind

// Error kind constants, mirroring driver.Kind*.
const (
	KindInvalidKey     = driver.KindInvalidKey
	KindTimeout        = driver.KindTimeout
	KindAmbiguousClick = driver.KindAmbiguousClick
	KindClickNotFound  = driver.KindClickNotFound
	KindClosedSession  = driver.KindClosedSession
	KindLaunchFailure  = driver.KindLaunchFailure
	KindWriteFailure   = driver.KindWriteFailure
)

// Options configures a launched Session.
type Options struct {
	Args   []string
	Cols   int
	Rows   int
	Cwd    string
	Env    map[string]string
	Logger driver.Logger
}

// Option is a functional option for configuring a launch.
type Option func(*Options)

// WithArgs sets the command's argument vector.
func WithArgs(args ...string) Option {
	return func(o *Options) { o.Args = args }
}

// WithSize sets the initial terminal geometry. A non-positive value falls
// back to its own default (80 columns, 24 rows).
func WithSize(cols, rows int) Option {
	return func(o *Options) {
		o.Cols = cols
		o.Rows = rows
	}
}

// WithCwd sets the child's working directory.
func WithCwd(dir string) Option {
	return func(o *Options) { o.Cwd = dir }
}

// WithEnv merges additional environment variables over the inherited
// environment. TERM and COLORTERM are always forced regardless.
func WithEnv(env map[string]string) Option {
	return func(o *Options) { o.Env = env }
}

// WithLogger routes the Session's internal diagnostics (e.g. dropped
// emulator feed errors) to logger instead of discarding them.
func WithLogger(logger driver.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// DefaultOptions returns the zero-value defaults: an 80x24 terminal,
// inherited cwd and environment, no extra args, no logger.
func DefaultOptions() Options {
	return Options{}
}

// New launches command under a PTY with opts applied, waits for its
// first output and the quiescence that follows, and returns a ready
// Session.
func New(command string, opts ...Option) (*Session, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return driver.Launch(driver.LaunchOptions{
		Command: command,
		Args:    options.Args,
		Cols:    options.Cols,
		Rows:    options.Rows,
		Cwd:     options.Cwd,
		Env:     options.Env,
		Logger:  options.Logger,
	})
}

// Launch is sugar over New for callers who already have a fully built
// driver.LaunchOptions, e.g. a CLI front-end parsing flags.
func Launch(opts driver.LaunchOptions) (*Session, error) {
	return driver.Launch(opts)
}

// WaitForTextTimeout is the zero-value sentinel meaning "use the
// package's default timeout" when passed to Session.WaitForText and
// friends.
const WaitForTextTimeout time.Duration = 0
