// Package keycodec implements KeyCodec: the pure, stateless translation
// from a symbolic key chord to the byte string an xterm-compatible
// terminal expects on its input stream.
package keycodec

import (
	"fmt"
	"sort"
	"strings"
)

// Modifier is one of the four chord modifiers.
type Modifier string

const (
	Ctrl  Modifier = "ctrl"
	Alt   Modifier = "alt"
	Shift Modifier = "shift"
	Meta  Modifier = "meta"
)

// Key is a closed enumeration of the main keys a chord may carry. Values
// are the canonical lowercase names; Validate rejects anything else.
type Key string

const (
	KeyEnter     Key = "enter"
	KeyReturn    Key = "return"
	KeyEsc       Key = "esc"
	KeyEscape    Key = "escape"
	KeyTab       Key = "tab"
	KeySpace     Key = "space"
	KeyBackspace Key = "backspace"
	KeyDelete    Key = "delete"
	KeyInsert    Key = "insert"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyHome      Key = "home"
	KeyEnd       Key = "end"
	KeyPageUp    Key = "pageup"
	KeyPageDown  Key = "pagedown"
	KeyClear     Key = "clear"
	KeyLinefeed  Key = "linefeed"
	KeyF1        Key = "f1"
	KeyF2        Key = "f2"
	KeyF3        Key = "f3"
	KeyF4        Key = "f4"
	KeyF5        Key = "f5"
	KeyF6        Key = "f6"
	KeyF7        Key = "f7"
	KeyF8        Key = "f8"
	KeyF9        Key = "f9"
	KeyF10       Key = "f10"
	KeyF11       Key = "f11"
	KeyF12       Key = "f12"
)

const lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
const digits = "0123456789"
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var namedSpecials = []Key{
	KeyEnter, KeyReturn, KeyEsc, KeyEscape, KeyTab, KeySpace, KeyBackspace,
	KeyDelete, KeyInsert, KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
	KeyPageUp, KeyPageDown, KeyClear, KeyLinefeed,
	KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
}

var modifierNames = []Modifier{Ctrl, Alt, Shift, Meta}

// ValidNames returns every accepted Key name (including the four
// modifiers, which are themselves part of the Key enumeration per spec
// §3) plus single letters, digits, and punctuation characters, sorted, for
// InvalidKey error messages.
func ValidNames() []string {
	names := make([]string, 0, len(namedSpecials)+len(modifierNames)+len(lowercaseLetters)+len(digits)+len(punctuation))
	for _, m := range modifierNames {
		names = append(names, string(m))
	}
	for _, k := range namedSpecials {
		names = append(names, string(k))
	}
	for _, c := range lowercaseLetters + digits + punctuation {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

// IsValid reports whether name is a recognized Key, including the four
// modifier names.
func IsValid(name string) bool {
	if len(name) == 1 {
		c := name[0]
		if strings.ContainsRune(lowercaseLetters, rune(c)) ||
			strings.ContainsRune(digits, rune(c)) ||
			strings.ContainsRune(punctuation, rune(c)) {
			return true
		}
	}
	for _, k := range namedSpecials {
		if string(k) == name {
			return true
		}
	}
	for _, m := range modifierNames {
		if string(m) == name {
			return true
		}
	}
	return false
}

// Validate checks every element of names against the Key enumeration. It
// returns an error naming every offending element and the full valid set,
// sorted, matching the InvalidKey error kind's contract.
func Validate(names []string) error {
	var bad []string
	for _, n := range names {
		if !IsValid(n) {
			bad = append(bad, n)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return fmt.Errorf("invalid key(s) %s: valid keys are %s",
		strings.Join(bad, ", "), strings.Join(ValidNames(), ", "))
}

// Chord is a set of modifiers plus zero or more main keys, applied in
// input order.
type Chord struct {
	Mods []Modifier
	Keys []Key
}

func (c Chord) has(m Modifier) bool {
	for _, x := range c.Mods {
		if x == m {
			return true
		}
	}
	return false
}

// fixedSequences are the bit-exact escape sequences of spec §4.1, keyed by
// canonical key name.
var fixedSequences = map[Key]string{
	KeyEnter:     "\r",
	KeyReturn:    "\r",
	KeyTab:       "\t",
	KeySpace:     " ",
	KeyBackspace: "\x7f",
	KeyDelete:    "\x1b[3~",
	KeyInsert:    "\x1b[2~",
	KeyUp:        "\x1b[A",
	KeyDown:      "\x1b[B",
	KeyRight:     "\x1b[C",
	KeyLeft:      "\x1b[D",
	KeyHome:      "\x1b[H",
	KeyEnd:       "\x1b[F",
	KeyPageUp:    "\x1b[5~",
	KeyPageDown:  "\x1b[6~",
	KeyClear:     "\x1b[E",
	KeyLinefeed:  "\n",
	KeyEsc:       "\x1b",
	KeyEscape:    "\x1b",
	KeyF1:        "\x1bOP",
	KeyF2:        "\x1bOQ",
	KeyF3:        "\x1bOR",
	KeyF4:        "\x1bOS",
	KeyF5:        "\x1b[15~",
	KeyF6:        "\x1b[17~",
	KeyF7:        "\x1b[18~",
	KeyF8:        "\x1b[19~",
	KeyF9:        "\x1b[20~",
	KeyF10:       "\x1b[21~",
	KeyF11:       "\x1b[23~",
	KeyF12:       "\x1b[24~",
}

// csiUCodepoints are the Unicode codepoints CSI-u encoding uses for the
// keys rule 2 of spec §4.1 applies to.
var csiUCodepoints = map[Key]int{
	KeyEnter:     13,
	KeyReturn:    13,
	KeyTab:       9,
	KeyBackspace: 127,
	KeyEsc:       27,
	KeyEscape:    27,
}

// Encode turns chord into the byte string to write to the PTY, per spec
// §4.1 rules 1-5, applied independently to each main key in input order
// and concatenated. A chord with no main keys (modifiers only) encodes to
// the empty string.
func Encode(chord Chord) []byte {
	var out strings.Builder
	for _, k := range chord.Keys {
		out.WriteString(encodeOne(chord, k))
	}
	return []byte(out.String())
}

func encodeOne(chord Chord, k Key) string {
	// Rule 1: ctrl + single letter a-z -> C0 control byte.
	if chord.has(Ctrl) && len(k) == 1 && strings.ContainsRune(lowercaseLetters, rune(k[0])) {
		return string(rune(k[0] - 'a' + 1))
	}
	// Rule 1 continued: ctrl + other single char -> raw char, shift/alt ignored here.
	if chord.has(Ctrl) && len(k) == 1 {
		return string(k)
	}

	hasAnyMod := chord.has(Ctrl) || chord.has(Alt) || chord.has(Shift)
	if code, ok := csiUCodepoints[k]; ok && hasAnyMod {
		mod := 1
		if chord.has(Shift) {
			mod += 1
		}
		if chord.has(Alt) {
			mod += 2
		}
		if chord.has(Ctrl) {
			mod += 4
		}
		return fmt.Sprintf("\x1b[%d;%du", code, mod)
	}

	if seq, ok := fixedSequences[k]; ok {
		if chord.has(Alt) {
			return "\x1b" + seq
		}
		return seq
	}

	if len(k) == 1 {
		s := string(k)
		if chord.has(Shift) {
			s = strings.ToUpper(s)
		}
		if chord.has(Alt) {
			return "\x1b" + s
		}
		return s
	}

	// Last-resort passthrough.
	return string(k)
}

// Mouse sequence construction, used internally by Session, not exposed to
// callers: SGR 1006 press/release and wheel events per spec §4.1.

const (
	mouseButtonLeft = 0
	mouseWheelUp    = 64
	mouseWheelDown  = 65
)

// ClickSGR returns the press-then-release byte pair for a left click at
// 0-based cell (x, y).
func ClickSGR(x, y int) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "\x1b[<%d;%d;%dM", mouseButtonLeft, x+1, y+1)
	fmt.Fprintf(&b, "\x1b[<%d;%d;%dm", mouseButtonLeft, x+1, y+1)
	return []byte(b.String())
}

// wheelSGR returns a single wheel press event at 0-based cell (x, y). Pass
// mouseWheelUp or mouseWheelDown via the exported WheelUp/WheelDown
// helpers.
func wheelSGR(button, x, y int) []byte {
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%dM", button, x+1, y+1))
}

// WheelUp returns a scroll-up wheel event at 0-based cell (x, y).
func WheelUp(x, y int) []byte {
	return wheelSGR(mouseWheelUp, x, y)
}

// WheelDown returns a scroll-down wheel event at 0-based cell (x, y).
func WheelDown(x, y int) []byte {
	return wheelSGR(mouseWheelDown, x, y)
}
