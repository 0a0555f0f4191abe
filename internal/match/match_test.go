package match

import (
	"testing"

	"github.com/Gaurav-Gosain/termdrive/internal/pattern"
)

func TestFindLiteralSingleMatch(t *testing.T) {
	lines := []string{"hello world", "goodbye"}
	matches := Find(lines, pattern.Lit("world"))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Row != 0 || matches[0].Col != 6 || matches[0].Text != "world" {
		t.Errorf("unexpected match: %+v", matches[0])
	}
}

func TestFindLiteralMultipleOnOneLine(t *testing.T) {
	lines := []string{"aaa bbb aaa"}
	matches := Find(lines, pattern.Lit("aaa"))
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Col != 0 || matches[1].Col != 8 {
		t.Errorf("unexpected columns: %d, %d", matches[0].Col, matches[1].Col)
	}
}

func TestFindDoesNotCrossLines(t *testing.T) {
	lines := []string{"foo", "bar"}
	matches := Find(lines, pattern.Lit("foo\nbar"))
	if len(matches) != 0 {
		t.Fatalf("expected 0 matches, got %d", len(matches))
	}
}

func TestFindRegex(t *testing.T) {
	p, err := pattern.Parse(`/value: \d+/`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lines := []string{`echo "value: 42"`, `value: 7 and value: 9`}
	matches := Find(lines, p)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
}

func TestFindNoMatches(t *testing.T) {
	matches := Find([]string{"nothing here"}, pattern.Lit("absent"))
	if len(matches) != 0 {
		t.Fatalf("expected 0 matches, got %d", len(matches))
	}
}
