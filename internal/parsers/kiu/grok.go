// Package kiu defines the KIU itinerary line grammar.
package kiu

import (
	"gds_translator/internal/gds"
	"gds_translator/internal/parsers/line"
	"gds_translator/internal/patterns"
	"gds_translator/internal/registry"
)

// Grammar describes a KIU segment line.
// Example: 1 V0 1234 Y 15JAN MO CCSPMV HK1 2300 004516JAN
// Groups: segment, airline, flight, dep_date, origin, destination, dep_time, arr_time, arr_date
//
// The weekday is a two-character filler. A different arrival date is glued
// to the arrival time without whitespace.
var Grammar = patterns.Grammar{
	Name: "kiu_segment",
	Tokens: []patterns.Token{
		patterns.Field(line.Segment, `{SEGNUM}`, patterns.Space),
		patterns.Field(line.Airline, `{CARRIER}`, patterns.Space),
		patterns.Field(line.Flight, `{FLIGHTNO_SPACED}`, patterns.OptSpace),
		patterns.Field(line.DepDate, `{DDMMM}`, patterns.Space),
		patterns.Filler(`\S{2}`, patterns.Space),
		patterns.Field(line.Origin, `{IATA}`, patterns.Space),
		patterns.Field(line.Destination, `{IATA}`, patterns.Adjacent),
		patterns.Filler(`.*?`, patterns.Adjacent),
		patterns.Field(line.DepTime, `{TIME4}`, patterns.Space),
		patterns.Field(line.ArrTime, `{TIME4}`, patterns.Space),
		patterns.Optional(patterns.Field(line.ArrDate, `{DDMMM}`, patterns.Adjacent)),
	},
	Tail: patterns.LineEnd,
}

func init() {
	registry.Register(line.New(gds.KIU, Grammar))
}
