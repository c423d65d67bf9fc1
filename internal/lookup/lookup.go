// Package lookup resolves airline and airport codes to display names.
//
// A missing code is an expected condition: resolution always produces a
// renderable name and reports whether it came from the directory or from
// the fallback rule.
package lookup

import (
	"errors"
	"fmt"
	"strings"
)

// Directory maps a short code to its display name. Directories are read-only
// once handed to the resolver.
type Directory map[string]string

// Kind names one of the two directories.
type Kind string

const (
	Airlines Kind = "airlines"
	Airports Kind = "airports"
)

// ErrUnknownKind is returned when a directory kind is neither airlines nor airports.
var ErrUnknownKind = errors.New("unknown directory kind")

// ParseKind converts a caller-supplied kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Airlines, Airports:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Source tells which path produced a resolved name.
type Source int

const (
	Resolved Source = iota // found in the directory
	Fallback               // code missing; placeholder used
)

func (s Source) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "fallback"
}

// Resolution is the outcome of resolving one code.
type Resolution struct {
	Name   string
	Source Source
}

// Fallback reports whether the name is a placeholder.
func (r Resolution) Fallback() bool { return r.Source == Fallback }

// UnknownAirline is the placeholder shown for an airline code missing from the directory.
func UnknownAirline(code string) string {
	return "Código desconocido (" + code + ")"
}

// ResolveAirline returns the airline's name, or UnknownAirline(code).
func ResolveAirline(code string, airlines Directory) Resolution {
	if name, ok := airlines[code]; ok {
		return Resolution{Name: name, Source: Resolved}
	}
	return Resolution{Name: UnknownAirline(code), Source: Fallback}
}

// ResolveAirport returns the airport's name, or the code itself.
func ResolveAirport(code string, airports Directory) Resolution {
	if name, ok := airports[code]; ok {
		return Resolution{Name: name, Source: Resolved}
	}
	return Resolution{Name: code, Source: Fallback}
}

// Resolve dispatches on kind.
func Resolve(kind Kind, code string, dir Directory) (Resolution, error) {
	switch kind {
	case Airlines:
		return ResolveAirline(code, dir), nil
	case Airports:
		return ResolveAirport(code, dir), nil
	}
	return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
