// Package pattern implements the string-or-regex sum type shared by
// PatternMatcher, Session.WaitForText, and Session.Click.
package pattern

import (
	"regexp"
	"strings"
)

// Kind distinguishes the two Pattern variants.
type Kind int

const (
	// Literal matches a raw substring, with regex metacharacters escaped.
	Literal Kind = iota
	// Regex matches a compiled regular expression.
	Regex
)

// Pattern is Literal(text) | Regex(expr, flags). Construct with Lit or Re;
// the zero value is an empty Literal.
type Pattern struct {
	kind Kind
	text string
	expr *regexp.Regexp
	src  string
}

// Lit builds a literal pattern matching text verbatim.
func Lit(text string) Pattern {
	return Pattern{kind: Literal, text: text}
}

// Re builds a regex pattern from an already-compiled expression, retaining
// src for error messages.
func Re(src string, expr *regexp.Regexp) Pattern {
	return Pattern{kind: Regex, expr: expr, src: src}
}

// Parse recognizes the `/pattern/flags` CLI convention: a leading slash and
// the last slash in s delimit a regex body, anything after that closing
// slash is the flag string (only "i" for case-insensitive and "g" for
// global are recognized; "g" has no effect on compilation here since
// PatternMatcher always finds all matches per line regardless). Input
// without that shape is a Literal.
func Parse(s string) (Pattern, error) {
	if len(s) < 2 || s[0] != '/' {
		return Lit(s), nil
	}
	end := strings.LastIndexByte(s, '/')
	if end <= 0 {
		return Lit(s), nil
	}
	body := s[1:end]
	flags := s[end+1:]

	reSrc := body
	if strings.Contains(flags, "i") {
		reSrc = "(?i)" + reSrc
	}
	expr, err := regexp.Compile(reSrc)
	if err != nil {
		return Pattern{}, err
	}
	return Re(body, expr), nil
}

// String renders the pattern for diagnostic messages.
func (p Pattern) String() string {
	if p.kind == Literal {
		return p.text
	}
	return "/" + p.src + "/"
}

// MatchString reports whether the pattern matches anywhere within s.
func (p Pattern) MatchString(s string) bool {
	if p.kind == Literal {
		return strings.Contains(s, p.text)
	}
	return p.expr.MatchString(s)
}

// compiledLiteral returns a regexp matching the literal text verbatim, used
// internally by PatternMatcher so both variants share one matching path.
func (p Pattern) compiledLiteral() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(p.text))
}

// Matcher returns the regexp to run per line: the escaped literal for a
// Literal pattern, or the underlying expression for a Regex pattern.
func (p Pattern) Matcher() *regexp.Regexp {
	if p.kind == Literal {
		return p.compiledLiteral()
	}
	return p.expr
}
