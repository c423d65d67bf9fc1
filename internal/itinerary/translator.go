package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gds_translator/internal/gds"
	"gds_translator/internal/lookup"
	"gds_translator/internal/normalise"
	_ "gds_translator/internal/parsers" // register all grammars via init()
	"gds_translator/internal/registry"
)

// Translator parses itineraries against fixed airline and airport directories.
// It holds no mutable state and is safe for concurrent use.
type Translator struct {
	registry *registry.Registry
	airlines lookup.Directory
	airports lookup.Directory
	logger   *zap.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithRegistry replaces the default grammar registry.
func WithRegistry(r *registry.Registry) Option {
	return func(t *Translator) { t.registry = r }
}

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// NewTranslator creates a Translator. The directories are read, never written.
func NewTranslator(airlines, airports lookup.Directory, opts ...Option) *Translator {
	t := &Translator{
		registry: registry.Default(),
		airlines: airlines,
		airports: airports,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ParseItinerary parses raw text with a one-off Translator.
func ParseItinerary(raw string, format gds.Format, airlines, airports lookup.Directory) (*ParseResult, error) {
	return NewTranslator(airlines, airports).Parse(raw, format)
}

// Parse splits raw into lines, drops blank ones and parses the rest with the
// grammar for format. A line that does not match becomes a LineParseError
// entry and never affects its neighbours. Any fault inside the translator is
// returned as a *GlobalParseError with a nil result.
func (t *Translator) Parse(raw string, format gds.Format) (res *ParseResult, err error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("itinerary translation panicked",
				zap.String("gds_format", format.String()),
				zap.Any("panic", r))
			res = nil
			err = &GlobalParseError{Format: format, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	lines := SplitLines(raw)
	res = &ParseResult{
		Format:  format,
		Entries: make([]Entry, 0, len(lines)),
	}

	for i, line := range lines {
		fields, err := t.registry.Dispatch(format, line)
		if err != nil {
			return nil, &GlobalParseError{Format: format, Cause: err}
		}
		if fields == nil {
			t.logger.Debug("line did not match grammar",
				zap.String("gds_format", format.String()),
				zap.Int("line", i+1),
				zap.String("text", line))
			res.Entries = append(res.Entries, Entry{Error: &LineParseError{Line: line}})
			continue
		}
		res.Entries = append(res.Entries, Entry{Segment: t.buildSegment(fields)})
	}

	return res, nil
}

// Trace runs the grammar for format against a single line and reports the
// pattern tried and what it captured.
func (t *Translator) Trace(line string, format gds.Format) (*registry.TraceResult, error) {
	g, ok := t.registry.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	tr, ok := g.(registry.Traceable)
	if !ok {
		return nil, fmt.Errorf("grammar for %s does not support tracing", format)
	}
	return tr.ParseWithTrace(line), nil
}

// buildSegment normalises dates and times and resolves codes.
func (t *Translator) buildSegment(f *gds.LineFields) *FlightSegment {
	depDate := normalise.FormatDate(f.DepartureDate)

	arrDate := depDate
	var explicitArr string
	if f.ArrivalDate != "" {
		explicitArr = normalise.FormatDate(f.ArrivalDate)
		arrDate = explicitArr
	}

	// An absent marker leaves offset at zero.
	offset, _ := strconv.Atoi(f.DayOffset)

	airline := lookup.ResolveAirline(f.Airline, t.airlines)
	origin := lookup.ResolveAirport(f.Origin, t.airports)
	dest := lookup.ResolveAirport(f.Destination, t.airports)

	return &FlightSegment{
		AirlineCode:       f.Airline,
		FlightNumber:      f.Flight,
		AirlineName:       airline.Name,
		DepartureDate:     depDate,
		DepartureTime:     normalise.FormatTime(f.DepartureTime),
		ArrivalTime:       normalise.FormatTime(f.ArrivalTime),
		ArrivalDate:       arrDate,
		NextDay:           normalise.IsNextDay(depDate, explicitArr, offset),
		OriginCode:        f.Origin,
		DestinationCode:   f.Destination,
		OriginName:        origin.Name,
		DestinationName:   dest.Name,
		AirlineSource:     airline.Source,
		OriginSource:      origin.Source,
		DestinationSource: dest.Source,
	}
}

// SplitLines splits text on line boundaries and drops lines that are empty
// after trimming. Kept lines are returned verbatim, minus a trailing CR.
func SplitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
