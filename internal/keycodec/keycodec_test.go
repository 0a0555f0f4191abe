package keycodec

import "testing"

func TestEncodeSinglePrintableChar(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		chord := Chord{Keys: []Key{Key(string(c))}}
		got := Encode(chord)
		if string(got) != string(c) {
			t.Errorf("Encode(%q) = %q, want %q", c, got, c)
		}
	}
}

func TestEncodeCtrlLetter(t *testing.T) {
	tests := []struct {
		letter byte
		want   byte
	}{
		{'a', 1},
		{'b', 2},
		{'c', 3},
		{'z', 26},
	}
	for _, tt := range tests {
		chord := Chord{Mods: []Modifier{Ctrl}, Keys: []Key{Key(string(tt.letter))}}
		got := Encode(chord)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("Encode(ctrl+%c) = %v, want [%d]", tt.letter, got, tt.want)
		}
	}
}

func TestEncodeCSIU(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		mods []Modifier
		want string
	}{
		{"ctrl+enter", KeyEnter, []Modifier{Ctrl}, "\x1b[13;5u"},
		{"alt+enter", KeyEnter, []Modifier{Alt}, "\x1b[13;3u"},
		{"shift+enter", KeyEnter, []Modifier{Shift}, "\x1b[13;2u"},
		{"ctrl+shift+alt+enter", KeyEnter, []Modifier{Ctrl, Shift, Alt}, "\x1b[13;8u"},
		{"ctrl+tab", KeyTab, []Modifier{Ctrl}, "\x1b[9;5u"},
		{"ctrl+backspace", KeyBackspace, []Modifier{Ctrl}, "\x1b[127;5u"},
		{"ctrl+escape", KeyEscape, []Modifier{Ctrl}, "\x1b[27;5u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(Chord{Mods: tt.mods, Keys: []Key{tt.key}})
			if string(got) != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeAltNavigation(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyUp, "\x1b\x1b[A"},
		{KeyDown, "\x1b\x1b[B"},
		{KeyLeft, "\x1b\x1b[D"},
		{KeyRight, "\x1b\x1b[C"},
	}
	for _, tt := range tests {
		got := Encode(Chord{Mods: []Modifier{Alt}, Keys: []Key{tt.key}})
		if string(got) != tt.want {
			t.Errorf("Encode(alt+%s) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEncodeFixedSequences(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEnter, "\r"},
		{KeyTab, "\t"},
		{KeySpace, " "},
		{KeyBackspace, "\x7f"},
		{KeyDelete, "\x1b[3~"},
		{KeyInsert, "\x1b[2~"},
		{KeyUp, "\x1b[A"},
		{KeyDown, "\x1b[B"},
		{KeyRight, "\x1b[C"},
		{KeyLeft, "\x1b[D"},
		{KeyHome, "\x1b[H"},
		{KeyEnd, "\x1b[F"},
		{KeyPageUp, "\x1b[5~"},
		{KeyPageDown, "\x1b[6~"},
		{KeyClear, "\x1b[E"},
		{KeyLinefeed, "\n"},
		{KeyEsc, "\x1b"},
		{KeyF1, "\x1bOP"},
		{KeyF5, "\x1b[15~"},
		{KeyF12, "\x1b[24~"},
	}
	for _, tt := range tests {
		got := Encode(Chord{Keys: []Key{tt.key}})
		if string(got) != tt.want {
			t.Errorf("Encode(%s) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEncodeShiftUppercases(t *testing.T) {
	got := Encode(Chord{Mods: []Modifier{Shift}, Keys: []Key{"a"}})
	if string(got) != "A" {
		t.Errorf("Encode(shift+a) = %q, want %q", got, "A")
	}
}

func TestEncodeModifiersOnlyIsEmpty(t *testing.T) {
	got := Encode(Chord{Mods: []Modifier{Ctrl, Alt, Shift}})
	if len(got) != 0 {
		t.Errorf("Encode(modifiers only) = %q, want empty", got)
	}
}

func TestEncodeMultiKeyChordConcatenates(t *testing.T) {
	got := Encode(Chord{Keys: []Key{"a", "b"}})
	if string(got) != "ab" {
		t.Errorf("Encode(a,b) = %q, want %q", got, "ab")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	chord := Chord{Mods: []Modifier{Ctrl}, Keys: []Key{KeyEnter}}
	a := Encode(chord)
	b := Encode(chord)
	if string(a) != string(b) {
		t.Errorf("Encode not deterministic: %q != %q", a, b)
	}
}

func TestValidateRejectsUnknown(t *testing.T) {
	err := Validate([]string{"a", "bogus", "enter", "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateAcceptsKnown(t *testing.T) {
	if err := Validate([]string{"a", "1", "enter", "f12", "!"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClickSGR(t *testing.T) {
	got := ClickSGR(4, 9)
	want := "\x1b[<0;5;10M\x1b[<0;5;10m"
	if string(got) != want {
		t.Errorf("ClickSGR(4,9) = %q, want %q", got, want)
	}
}

func TestWheelUpDown(t *testing.T) {
	if string(WheelUp(0, 0)) != "\x1b[<64;1;1M" {
		t.Errorf("WheelUp wrong: %q", WheelUp(0, 0))
	}
	if string(WheelDown(0, 0)) != "\x1b[<65;1;1M" {
		t.Errorf("WheelDown wrong: %q", WheelDown(0, 0))
	}
}
