package pattern

import "testing"

func TestParseLiteral(t *testing.T) {
	p, err := Parse("hello world")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.MatchString("say hello world now") {
		t.Error("expected literal substring match")
	}
	if p.MatchString("say hello earth now") {
		t.Error("unexpected match")
	}
}

func TestParseLiteralEscapesMetacharacters(t *testing.T) {
	p, err := Parse("value: 42 (ok)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.MatchString("result is value: 42 (ok) done") {
		t.Error("expected literal substring with parens to match verbatim")
	}
}

func TestParseRegex(t *testing.T) {
	p, err := Parse(`/value: \d+/`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.MatchString(`echo "value: 42"`) {
		t.Error("expected regex to match")
	}
	if p.MatchString(`echo "value: abc"`) {
		t.Error("unexpected regex match")
	}
}

func TestParseRegexCaseInsensitive(t *testing.T) {
	p, err := Parse(`/HELLO/i`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.MatchString("hello there") {
		t.Error("expected case-insensitive match")
	}
}

func TestParseInvalidRegex(t *testing.T) {
	if _, err := Parse(`/(unterminated/`); err == nil {
		t.Error("expected error for invalid regex")
	}
}

func TestMatcherFindAllPerLine(t *testing.T) {
	p := Lit("aaa")
	m := p.Matcher()
	matches := m.FindAllStringIndex("aaa bbb aaa", -1)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}
