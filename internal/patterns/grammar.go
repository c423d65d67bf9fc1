// Package patterns provides shared regex patterns and helper functions for GDS itinerary parsing.
// This file contains the token-sequence grammar definitions that compile down to Formats.

package patterns

import "strings"

// Sep describes what may appear between a token and the one before it.
type Sep int

const (
	Space    Sep = iota // one or more whitespace characters
	OptSpace            // zero or more whitespace characters
	Adjacent            // nothing; the token is glued to its predecessor
)

func (s Sep) regex() string {
	switch s {
	case Space:
		return `\s+`
	case OptSpace:
		return `\s*`
	default:
		return ""
	}
}

// Token is one element of a line grammar.
//
// A token with a Name is captured under that name; a token without one is
// filler and is matched but discarded. Pattern may use {PLACEHOLDER}
// references to BasePatterns. An Optional token and its separator may be
// absent as a unit.
type Token struct {
	Name     string
	Pattern  string
	Sep      Sep
	Optional bool
}

// Field returns a captured token.
func Field(name, pattern string, sep Sep) Token {
	return Token{Name: name, Pattern: pattern, Sep: sep}
}

// Filler returns a token that is matched but not captured.
func Filler(pattern string, sep Sep) Token {
	return Token{Pattern: pattern, Sep: sep}
}

// Optional marks a token as optional.
func Optional(t Token) Token {
	t.Optional = true
	return t
}

// Grammar is an ordered token sequence describing one line layout.
// Lines are matched from their start; leading whitespace is allowed.
// Tail is appended after the last token and constrains what may follow it.
type Grammar struct {
	Name   string
	Tokens []Token
	Tail   string
}

// LineEnd is the usual Tail: the last token must be followed by whitespace
// or the end of the line, so trailing remarks are ignored but a token is
// never matched as the prefix of a longer one.
const LineEnd = `(?:\s|$)`

// Pattern renders the grammar as a {PLACEHOLDER} pattern for the Compiler.
func (g Grammar) Pattern() string {
	var b strings.Builder
	b.WriteString(`^\s*`)
	for i, t := range g.Tokens {
		sep := t.Sep.regex()
		if i == 0 {
			sep = ""
		}

		var body string
		if t.Name != "" {
			body = "(?P<" + t.Name + ">" + t.Pattern + ")"
		} else {
			body = "(?:" + t.Pattern + ")"
		}

		part := sep + body
		if t.Optional {
			part = "(?:" + part + ")?"
		}
		b.WriteString(part)
	}
	b.WriteString(g.Tail)
	return b.String()
}

// Fields returns the capture names in token order.
func (g Grammar) Fields() []string {
	var fields []string
	for _, t := range g.Tokens {
		if t.Name != "" {
			fields = append(fields, t.Name)
		}
	}
	return fields
}

// Format converts the grammar into a Format for the Compiler.
func (g Grammar) Format() Format {
	return Format{
		Name:    g.Name,
		Pattern: g.Pattern(),
		Fields:  g.Fields(),
	}
}
