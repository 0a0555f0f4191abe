package tapescript

import (
	"strings"
	"testing"
)

func TestParseSkipsBlankLinesAndComments(t *testing.T) {
	src := `
# a comment
type "hello"

press enter
`
	script, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(script.Commands) != 2 {
		t.Fatalf("Parse() got %d commands, want 2", len(script.Commands))
	}
	if script.Commands[0].Verb != "type" || script.Commands[0].Args[0] != "hello" {
		t.Errorf("Commands[0] = %+v, want type hello", script.Commands[0])
	}
	if script.Commands[1].Verb != "press" || script.Commands[1].Args[0] != "enter" {
		t.Errorf("Commands[1] = %+v, want press enter", script.Commands[1])
	}
}

func TestParseMultipleSpaceSeparatedArgs(t *testing.T) {
	script, err := Parse(strings.NewReader("press ctrl a"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(script.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(script.Commands))
	}
	if got := script.Commands[0].Args; len(got) != 2 || got[0] != "ctrl" || got[1] != "a" {
		t.Errorf("Args = %v, want [ctrl a]", got)
	}
}

func TestParseRejectsUnknownVerb(t *testing.T) {
	_, err := Parse(strings.NewReader("frobnicate everything"))
	if err == nil {
		t.Fatal("Parse() with unknown verb returned nil error")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error %q does not name the offending line", err.Error())
	}
}

func TestParseResizeTwoArgs(t *testing.T) {
	script, err := Parse(strings.NewReader("resize 100 30"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cmd := script.Commands[0]
	if cmd.Verb != "resize" || len(cmd.Args) != 2 || cmd.Args[0] != "100" || cmd.Args[1] != "30" {
		t.Errorf("Commands[0] = %+v, want resize 100 30", cmd)
	}
}
