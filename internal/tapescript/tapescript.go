// Package tapescript implements a small line-oriented script format that
// sequences Session operations for batch/scripted driving outside of
// direct Go-API use: one verb per line, blank lines and "#" comments
// ignored, mirroring the shape of the teacher's own .tape format without
// reusing its execution model (that format drives a live TUI model;
// tapescript drives a termdrive Session headlessly).
package tapescript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/termdrive/internal/driver"
	"github.com/Gaurav-Gosain/termdrive/internal/pattern"
)

// Command is one parsed script line.
type Command struct {
	Verb string
	Args []string
	Line int
}

// Script is an ordered sequence of Commands.
type Script struct {
	Commands []Command
}

// Parse reads a tapescript file from r. Recognized verbs: type, press,
// sendraw, wait (alias for wait_for_text), click, screenshot, sleep,
// resize. Unrecognized verbs are a parse error naming the offending line.
func Parse(r io.Reader) (Script, error) {
	scanner := bufio.NewScanner(r)
	var script Script
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitFields(line)
		verb := strings.ToLower(fields[0])
		args := fields[1:]
		if !isKnownVerb(verb) {
			return Script{}, fmt.Errorf("tapescript: line %d: unknown verb %q", lineNo, fields[0])
		}
		script.Commands = append(script.Commands, Command{Verb: verb, Args: args, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return Script{}, fmt.Errorf("tapescript: %w", err)
	}
	return script, nil
}

// splitFields splits a line on whitespace, except that when everything
// after the verb is one double-quoted string (the common case:
// `type "hello world"`) it is kept, unquoted, as a single field.
func splitFields(line string) []string {
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		head := line[:idx]
		rest := strings.TrimSpace(line[idx+1:])
		if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
			return []string{head, rest[1 : len(rest)-1]}
		}
		return append([]string{head}, strings.Fields(rest)...)
	}
	return []string{line}
}

var knownVerbs = map[string]bool{
	"type": true, "press": true, "sendraw": true, "wait": true,
	"click": true, "screenshot": true, "sleep": true, "resize": true,
}

func isKnownVerb(v string) bool {
	return knownVerbs[strings.ToLower(v)]
}

// Result is one screenshot verb's captured output, in script order.
type Result struct {
	Line int
	Text string
}

// Run executes script against s in order, returning every screenshot
// verb's captured text. A command error aborts the run and is returned
// wrapped with its source line.
func Run(script Script, s *driver.Session) ([]Result, error) {
	var results []Result
	for _, cmd := range script.Commands {
		if err := runOne(cmd, s, &results); err != nil {
			return results, fmt.Errorf("tapescript: line %d: %w", cmd.Line, err)
		}
	}
	return results, nil
}

func runOne(cmd Command, s *driver.Session, results *[]Result) error {
	switch cmd.Verb {
	case "type":
		return s.Type(strings.Join(cmd.Args, " "))
	case "press":
		return s.Press(cmd.Args)
	case "sendraw":
		return s.SendRaw([]byte(strings.Join(cmd.Args, " ")))
	case "wait":
		if len(cmd.Args) == 0 {
			return fmt.Errorf("wait requires a pattern argument")
		}
		pat, err := pattern.Parse(cmd.Args[0])
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", cmd.Args[0], err)
		}
		timeout := time.Duration(0)
		if len(cmd.Args) > 1 {
			timeout = parseMillis(cmd.Args[1])
		}
		_, err = s.WaitForText(pat, timeout)
		return err
	case "click":
		if len(cmd.Args) == 0 {
			return fmt.Errorf("click requires a pattern argument")
		}
		pat, err := pattern.Parse(cmd.Args[0])
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", cmd.Args[0], err)
		}
		return s.Click(pat, driver.ClickOptions{})
	case "screenshot":
		text, err := s.Text(driver.TextOptions{Immediate: true, TrimEnd: true})
		if err != nil {
			return err
		}
		*results = append(*results, Result{Line: cmd.Line, Text: text})
		return nil
	case "sleep":
		if len(cmd.Args) == 0 {
			return fmt.Errorf("sleep requires a millisecond duration")
		}
		time.Sleep(parseMillis(cmd.Args[0]))
		return nil
	case "resize":
		if len(cmd.Args) != 2 {
			return fmt.Errorf("resize requires cols and rows")
		}
		cols, err1 := strconv.Atoi(cmd.Args[0])
		rows, err2 := strconv.Atoi(cmd.Args[1])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("resize: cols/rows must be integers")
		}
		return s.Resize(cols, rows)
	default:
		return fmt.Errorf("unknown verb %q", cmd.Verb)
	}
}

func parseMillis(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}
