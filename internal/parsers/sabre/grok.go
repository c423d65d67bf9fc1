// Package sabre defines the SABRE itinerary line grammar.
package sabre

import (
	"gds_translator/internal/gds"
	"gds_translator/internal/parsers/line"
	"gds_translator/internal/patterns"
	"gds_translator/internal/registry"
)

// Grammar describes a SABRE segment line.
// Example: 1 AA 123 15JAN X CCSMIA# 0800 1200 16JAN
// Groups: segment, airline, flight, dep_date, origin, destination, dep_time, arr_time, arr_date
//
// The weekday filler is any single character. Remarks between the route and
// the times are skipped. A different arrival date follows the arrival time
// after whitespace.
var Grammar = patterns.Grammar{
	Name: "sabre_segment",
	Tokens: []patterns.Token{
		patterns.Field(line.Segment, `{SEGNUM}`, patterns.Space),
		patterns.Field(line.Airline, `{CARRIER}`, patterns.Space),
		patterns.Field(line.Flight, `{FLIGHTNO_SPACED}`, patterns.OptSpace),
		patterns.Field(line.DepDate, `{DDMMM}`, patterns.Space),
		patterns.Filler(`\S`, patterns.Space),
		patterns.Field(line.Origin, `{IATA}`, patterns.Space),
		patterns.Field(line.Destination, `{IATA}`, patterns.Adjacent),
		patterns.Filler(`.*?`, patterns.Adjacent),
		patterns.Field(line.DepTime, `{TIME4}`, patterns.Space),
		patterns.Field(line.ArrTime, `{TIME4}`, patterns.Space),
		patterns.Optional(patterns.Field(line.ArrDate, `{DDMMM}`, patterns.Space)),
	},
	Tail: patterns.LineEnd,
}

func init() {
	registry.Register(line.New(gds.Sabre, Grammar))
}
