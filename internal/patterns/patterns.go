// Package patterns provides shared regex patterns and helper functions for GDS itinerary parsing.
package patterns

import "regexp"

// Token patterns used outside the grammars, when a captured value is
// normalised on its own.
var (
	// DatePattern matches a DDMMM date token: two-digit day, three-letter month.
	DatePattern = regexp.MustCompile(`^(\d{2})([A-Za-z]{3})$`)

	// TimePattern matches an HHMM time token with an optional trailing marker
	// (e.g. "+1"). The marker is carried through verbatim by the normaliser.
	TimePattern = regexp.MustCompile(`^(\d{2})(\d{2})(.*)$`)
)
