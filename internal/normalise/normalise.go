// Package normalise converts GDS date and time tokens into display form.
package normalise

import (
	"strconv"
	"strings"

	"gds_translator/internal/patterns"
)

// monthNames maps GDS month abbreviations to their Spanish display names.
var monthNames = map[string]string{
	"JAN": "enero",
	"FEB": "febrero",
	"MAR": "marzo",
	"APR": "abril",
	"MAY": "mayo",
	"JUN": "junio",
	"JUL": "julio",
	"AUG": "agosto",
	"SEP": "septiembre",
	"OCT": "octubre",
	"NOV": "noviembre",
	"DEC": "diciembre",
}

// MonthName returns the display name for a three-letter month code.
// The lookup is case-insensitive.
func MonthName(code string) (string, bool) {
	name, ok := monthNames[strings.ToUpper(code)]
	return name, ok
}

// FormatDate renders a DDMMM token as "{day} de {month}".
//
// The day loses its zero padding ("05JAN" -> "5 de enero"). An unrecognised
// month code is echoed unchanged in place of the month name. Tokens that are
// not DDMMM-shaped are returned as-is.
func FormatDate(token string) string {
	m := patterns.DatePattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return token
	}

	day := m[1]
	if n, err := strconv.Atoi(day); err == nil {
		day = strconv.Itoa(n)
	}

	month, ok := MonthName(m[2])
	if !ok {
		month = m[2]
	}
	return day + " de " + month
}

// FormatTime renders an HHMM token as "HH:MM". Anything after the four
// digits (such as a "+1" marker) is appended verbatim and carries no
// meaning here; day rollover is decided by the grammars. Tokens that do
// not start with four digits are returned as-is.
func FormatTime(token string) string {
	m := patterns.TimePattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return token
	}
	return m[1] + ":" + m[2] + m[3]
}

// IsNextDay reports whether an arrival falls on a later date than the
// departure. Dates are compared in their formatted form; an explicit day
// offset of one or more also counts.
func IsNextDay(departureDate, arrivalDate string, dayOffset int) bool {
	if dayOffset > 0 {
		return true
	}
	return arrivalDate != "" && arrivalDate != departureDate
}
