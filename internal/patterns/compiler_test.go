package patterns

import (
	"strings"
	"testing"
)

func TestCompilerFirstMatchWins(t *testing.T) {
	c := NewCompiler([]Format{
		{Name: "time", Pattern: `^(?P<t>{TIME4})$`},
		{Name: "digits", Pattern: `^(?P<d>\d+)$`},
	}, nil)
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	m := c.Parse("0800")
	if m == nil || m.FormatName != "time" {
		t.Fatalf("match = %+v, want format time", m)
	}
	if got := m.GetCapture("t", ""); got != "0800" {
		t.Errorf("t = %q, want 0800", got)
	}

	m = c.Parse("123456")
	if m == nil || m.FormatName != "digits" {
		t.Fatalf("match = %+v, want format digits", m)
	}
}

func TestCompilerLocalOverride(t *testing.T) {
	c := NewCompiler([]Format{{Name: "iata", Pattern: `^{IATA}$`}}, map[string]string{"IATA": `[A-Z]{4}`})
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if c.Parse("CCS") != nil {
		t.Error("expected local override to reject 3 letters")
	}
	if c.Parse("SVMI") == nil {
		t.Error("expected local override to accept 4 letters")
	}
}

func TestCompilerBadPattern(t *testing.T) {
	c := NewCompiler([]Format{{Name: "broken", Pattern: `(?P<x>`}}, nil)
	err := c.Compile()
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should name the format", err)
	}
}

func TestGetCaptureNilMatch(t *testing.T) {
	var m *Match
	if got := m.GetCapture("x", "default"); got != "default" {
		t.Errorf("GetCapture on nil = %q, want default", got)
	}
}

func TestParseWithTrace(t *testing.T) {
	c := NewCompiler([]Format{
		{Name: "date", Pattern: `^(?P<date>{DDMMM})$`},
		{Name: "time", Pattern: `^(?P<time>{TIME4})$`},
	}, nil)
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	trace := c.ParseWithTrace("15jan")
	if len(trace.Formats) != 2 {
		t.Fatalf("len(Formats) = %d, want 2", len(trace.Formats))
	}
	if !trace.Formats[0].Matched || trace.Formats[1].Matched {
		t.Errorf("matched = [%v %v], want [true false]", trace.Formats[0].Matched, trace.Formats[1].Matched)
	}
	if trace.Match == nil || trace.Match.Captures["date"] != "15JAN" {
		t.Errorf("match = %+v, want date 15JAN", trace.Match)
	}
	if strings.Contains(trace.Formats[0].Pattern, "{DDMMM}") {
		t.Errorf("trace pattern not expanded: %s", trace.Formats[0].Pattern)
	}
	if got := c.Expanded("time"); got != `^(?P<time>\d{4})$` {
		t.Errorf("Expanded(time) = %s", got)
	}
}
