// Package gds provides the GDS format enumeration and the raw fields
// captured from a single itinerary line.
package gds

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies the reservation system an itinerary was exported from.
type Format string

const (
	Sabre   Format = "SABRE"
	Amadeus Format = "AMADEUS"
	KIU     Format = "KIU"
)

// ErrUnknownFormat is returned by ParseFormat for anything outside the enum.
var ErrUnknownFormat = errors.New("unknown gds format")

// Formats returns the recognised formats in display order.
func Formats() []Format {
	return []Format{Sabre, Amadeus, KIU}
}

// Valid reports whether f is one of the recognised formats.
func (f Format) Valid() bool {
	switch f {
	case Sabre, Amadeus, KIU:
		return true
	}
	return false
}

func (f Format) String() string { return string(f) }

// ParseFormat converts a caller-supplied name into a Format.
// Matching ignores case and surrounding whitespace.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// LineFields holds the tokens a grammar captured from one line, before any
// normalisation or code resolution. Optional tokens that were absent are empty.
type LineFields struct {
	Segment       string `json:"segment"`
	Airline       string `json:"airline"`
	Flight        string `json:"flight"`
	DepartureDate string `json:"departure_date"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	ArrivalDate   string `json:"arrival_date,omitempty"` // Explicit arrival DDMMM (SABRE, KIU).
	DayOffset     string `json:"day_offset,omitempty"`   // Explicit +N marker (AMADEUS).
}
