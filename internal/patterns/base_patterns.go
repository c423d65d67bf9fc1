// Package patterns provides shared regex patterns and helper functions for GDS itinerary parsing.
// This file contains grok-style base patterns for use with the Compiler.

package patterns

// BasePatterns defines reusable regex components for grok-style pattern composition.
// These are referenced in grammar tokens using {PATTERN_NAME} syntax.
// Input is upper-cased before matching, so only upper-case letters appear here.
var BasePatterns = map[string]string{
	// Segment ordinal at the start of a line.
	"SEGNUM": `\d+`,

	// Carrier codes. Most systems allow a digit (e.g. 4M, V0); some only letters.
	"CARRIER":       `[A-Z0-9]{2}`,
	"CARRIER_ALPHA": `[A-Z]{2}`,

	// Flight numbers: digits plus an optional letter suffix (booking class or
	// operational suffix). The spaced variant tolerates blanks between digits
	// and the suffix, e.g. "1234 Y".
	"FLIGHTNO":        `\d+[A-Z]*`,
	"FLIGHTNO_SPACED": `\d[\d ]*?[A-Z]*`,

	// Dates and times.
	"DDMMM": `\d{2}[A-Z]{3}`, // 15JAN
	"TIME4": `\d{4}`,         // HHMM
	"DAYS":  `\d`,            // +N day offset digit

	// Airports.
	"IATA": `[A-Z]{3}`,
}
