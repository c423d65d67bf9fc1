// Package itinerary turns raw GDS itinerary text into an ordered list of
// flight segments and per-line errors.
package itinerary

import (
	"errors"
	"fmt"

	"gds_translator/internal/gds"
	"gds_translator/internal/lookup"
)

// ErrUnsupportedFormat is returned for a format outside the GDS enumeration.
var ErrUnsupportedFormat = errors.New("unsupported gds format")

// FlightSegment is one successfully parsed itinerary line.
type FlightSegment struct {
	AirlineCode     string `json:"airline_code"`
	FlightNumber    string `json:"flight_number"`
	AirlineName     string `json:"airline_name"`
	DepartureDate   string `json:"departure_date"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	ArrivalDate     string `json:"arrival_date"`
	NextDay         bool   `json:"next_day"`
	OriginCode      string `json:"origin_code"`
	DestinationCode string `json:"destination_code"`
	OriginName      string `json:"origin_name"`
	DestinationName string `json:"destination_name"`

	// Which resolution path produced each name.
	AirlineSource     lookup.Source `json:"-"`
	OriginSource      lookup.Source `json:"-"`
	DestinationSource lookup.Source `json:"-"`
}

// LineParseError records a line that did not satisfy the grammar.
type LineParseError struct {
	Line string `json:"line"`
}

func (e *LineParseError) Error() string {
	return "unrecognised line format: " + e.Line
}

// Entry is one non-blank input line's outcome: exactly one of Segment and
// Error is set.
type Entry struct {
	Segment *FlightSegment  `json:"segment,omitempty"`
	Error   *LineParseError `json:"error,omitempty"`
}

// OK reports whether the line parsed.
func (e Entry) OK() bool { return e.Segment != nil }

// ParseResult holds one entry per non-blank input line, in input order.
type ParseResult struct {
	Format  gds.Format `json:"gds_format"`
	Entries []Entry    `json:"entries"`
}

// Segments returns the parsed segments in order, skipping line errors.
func (r *ParseResult) Segments() []*FlightSegment {
	var out []*FlightSegment
	for _, e := range r.Entries {
		if e.Segment != nil {
			out = append(out, e.Segment)
		}
	}
	return out
}

// LineErrors returns the line errors in order.
func (r *ParseResult) LineErrors() []*LineParseError {
	var out []*LineParseError
	for _, e := range r.Entries {
		if e.Error != nil {
			out = append(out, e.Error)
		}
	}
	return out
}

// GlobalParseError is a fault in the translator itself while processing a
// well-formed call. It is reported for the whole itinerary; no partial
// result accompanies it.
type GlobalParseError struct {
	Format gds.Format
	Cause  error
}

func (e *GlobalParseError) Error() string {
	return fmt.Sprintf("could not process %s itinerary: %v", e.Format, e.Cause)
}

func (e *GlobalParseError) Unwrap() error { return e.Cause }
