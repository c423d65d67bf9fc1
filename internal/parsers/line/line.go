// Package line implements the table-driven line parser shared by every GDS.
// Each GDS package supplies only a patterns.Grammar; this package compiles it
// and maps its captures onto gds.LineFields.
package line

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gds_translator/internal/gds"
	"gds_translator/internal/patterns"
	"gds_translator/internal/registry"
)

// Capture names understood by the parser. Grammars may omit the optional ones.
const (
	Segment     = "segment"
	Airline     = "airline"
	Flight      = "flight"
	DepDate     = "dep_date"
	Origin      = "origin"
	Destination = "destination"
	DepTime     = "dep_time"
	ArrTime     = "arr_time"
	ArrDate     = "arr_date"
	DayOffset   = "day_offset"
)

// required lists the captures every grammar must define.
var required = []string{Segment, Airline, Flight, DepDate, Origin, Destination, DepTime, ArrTime}

// minLength is the shortest line any grammar could accept: segment, carrier,
// one flight digit, date, route, two times and separators.
const minLength = 24

// Parser parses lines of one GDS format.
type Parser struct {
	format  gds.Format
	grammar patterns.Grammar

	once     sync.Once
	compiler *patterns.Compiler
	err      error
}

// New creates a parser for format f driven by grammar g.
func New(f gds.Format, g patterns.Grammar) *Parser {
	return &Parser{format: f, grammar: g}
}

func (p *Parser) Format() gds.Format        { return p.format }
func (p *Parser) Grammar() patterns.Grammar { return p.grammar }

func (p *Parser) getCompiler() (*patterns.Compiler, error) {
	p.once.Do(func() {
		if err := validate(p.grammar); err != nil {
			p.err = err
			return
		}
		p.compiler = patterns.NewCompiler([]patterns.Format{p.grammar.Format()}, nil)
		p.err = p.compiler.Compile()
	})
	return p.compiler, p.err
}

func validate(g patterns.Grammar) error {
	have := make(map[string]bool)
	for _, name := range g.Fields() {
		have[name] = true
	}
	for _, name := range required {
		if !have[name] {
			return fmt.Errorf("grammar %s: missing capture %q", g.Name, name)
		}
	}
	return nil
}

// QuickCheck rejects lines that are too short or do not open with a segment number.
func (p *Parser) QuickCheck(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minLength {
		return false
	}
	return unicode.IsDigit(rune(trimmed[0]))
}

// Parse matches one line. A nil result with a nil error means no match.
func (p *Parser) Parse(text string) (*gds.LineFields, error) {
	compiler, err := p.getCompiler()
	if err != nil {
		return nil, err
	}

	match := compiler.Parse(text)
	if match == nil {
		return nil, nil
	}
	return toFields(match), nil
}

// ParseWithTrace matches one line and reports the expanded pattern and captures.
func (p *Parser) ParseWithTrace(text string) *registry.TraceResult {
	trace := &registry.TraceResult{
		Grammar: p.grammar.Name,
		QuickCheck: &registry.QuickCheck{
			Passed: p.QuickCheck(text),
		},
	}
	if !trace.QuickCheck.Passed {
		trace.QuickCheck.Reason = "line too short or missing segment number"
	}

	compiler, err := p.getCompiler()
	if err != nil {
		trace.QuickCheck.Reason = err.Error()
		return trace
	}

	pt := compiler.ParseWithTrace(text)
	for _, ft := range pt.Formats {
		trace.Formats = append(trace.Formats, registry.FormatTrace{
			Name:     ft.Name,
			Matched:  ft.Matched,
			Pattern:  ft.Pattern,
			Captures: ft.Captures,
		})
	}
	trace.Matched = trace.QuickCheck.Passed && pt.Match != nil
	return trace
}

func toFields(m *patterns.Match) *gds.LineFields {
	return &gds.LineFields{
		Segment:       m.GetCapture(Segment, ""),
		Airline:       m.GetCapture(Airline, ""),
		Flight:        stripSpaces(m.GetCapture(Flight, "")),
		DepartureDate: m.GetCapture(DepDate, ""),
		Origin:        m.GetCapture(Origin, ""),
		Destination:   m.GetCapture(Destination, ""),
		DepartureTime: m.GetCapture(DepTime, ""),
		ArrivalTime:   m.GetCapture(ArrTime, ""),
		ArrivalDate:   m.GetCapture(ArrDate, ""),
		DayOffset:     m.GetCapture(DayOffset, ""),
	}
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
