// Package amadeus defines the AMADEUS itinerary line grammar.
package amadeus

import (
	"gds_translator/internal/gds"
	"gds_translator/internal/parsers/line"
	"gds_translator/internal/patterns"
	"gds_translator/internal/registry"
)

// Grammar describes an AMADEUS segment line.
// Example: 1 IB6501 Y 15JAN 3 MADCCS HK1 1200 1640+1
// Groups: segment, airline, flight, dep_date, origin, destination, dep_time, arr_time, day_offset
//
// Carriers are letters only. The booking class letter sits between the
// flight number and the date, the weekday after it. A status token
// (HK1, HK 2) precedes the times. A "+N" glued to the arrival time means
// arrival N days after departure.
var Grammar = patterns.Grammar{
	Name: "amadeus_segment",
	Tokens: []patterns.Token{
		patterns.Field(line.Segment, `{SEGNUM}`, patterns.Space),
		patterns.Field(line.Airline, `{CARRIER_ALPHA}`, patterns.Space),
		patterns.Field(line.Flight, `{FLIGHTNO}`, patterns.OptSpace),
		patterns.Filler(`[A-Z]`, patterns.Space),
		patterns.Field(line.DepDate, `{DDMMM}`, patterns.Space),
		patterns.Filler(`\S`, patterns.Space),
		patterns.Field(line.Origin, `{IATA}`, patterns.Space),
		patterns.Field(line.Destination, `{IATA}`, patterns.Adjacent),
		patterns.Filler(`\S+`, patterns.Space),
		patterns.Optional(patterns.Filler(`\d+`, patterns.Space)),
		patterns.Field(line.DepTime, `{TIME4}`, patterns.Space),
		patterns.Field(line.ArrTime, `{TIME4}`, patterns.Space),
		patterns.Optional(patterns.Field(line.DayOffset, `\+{DAYS}`, patterns.Adjacent)),
	},
	Tail: patterns.LineEnd,
}

func init() {
	registry.Register(line.New(gds.Amadeus, Grammar))
}
