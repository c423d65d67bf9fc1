package itinerary

import (
	"fmt"
	"strings"
)

// NextDayNote is appended to the arrival time of a next-day segment.
const NextDayNote = "(+1 día)"

// UnrecognisedPrefix introduces a line that did not parse.
const UnrecognisedPrefix = "Formato no reconocido: "

// Text renders the result for display, one block per entry.
func (r *ParseResult) Text() string {
	var b strings.Builder
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		if e.Error != nil {
			b.WriteString(UnrecognisedPrefix)
			b.WriteString(strings.TrimSpace(e.Error.Line))
			b.WriteString("\n")
			continue
		}
		writeSegment(&b, e.Segment)
	}
	return b.String()
}

func writeSegment(b *strings.Builder, s *FlightSegment) {
	fmt.Fprintf(b, "%s %s - %s\n", s.AirlineCode, s.FlightNumber, s.AirlineName)
	fmt.Fprintf(b, "  Salida:  %s %s  %s (%s)\n", s.DepartureDate, s.DepartureTime, s.OriginName, s.OriginCode)
	fmt.Fprintf(b, "  Llegada: %s %s  %s (%s)", s.ArrivalDate, s.ArrivalTime, s.DestinationName, s.DestinationCode)
	if s.NextDay {
		b.WriteString(" ")
		b.WriteString(NextDayNote)
	}
	b.WriteString("\n")
}
