// Package registry provides a grammar registry for dispatching itinerary
// lines to the parser of their GDS format.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gds_translator/internal/gds"
)

// Grammar is implemented by each line parser.
type Grammar interface {
	// Format returns the GDS this grammar parses.
	Format() gds.Format

	// QuickCheck performs a fast string check before the regex.
	// Returns true if the line MIGHT be parseable (false = definitely skip).
	QuickCheck(line string) bool

	// Parse extracts the fields of one line. It returns nil fields and a nil
	// error if the line does not satisfy the grammar; an error means the
	// grammar itself is broken.
	Parse(line string) (*gds.LineFields, error)
}

// ErrNoGrammar is returned when dispatching to a format with no registered grammar.
var ErrNoGrammar = errors.New("no grammar registered")

// Registry holds one grammar per GDS format.
type Registry struct {
	mu       sync.RWMutex
	byFormat map[gds.Format]Grammar
}

// New creates a new Registry instance.
func New() *Registry {
	return &Registry{
		byFormat: make(map[gds.Format]Grammar),
	}
}

// Global default registry.
var defaultRegistry = New()

// Default returns the global registry instance.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a grammar to the default registry.
// Called during init() in each parser package.
func Register(g Grammar) {
	defaultRegistry.Register(g)
}

// Register adds a grammar, replacing any earlier one for the same format.
func (r *Registry) Register(g Grammar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFormat[g.Format()] = g
}

// Lookup returns the grammar registered for a format.
func (r *Registry) Lookup(f gds.Format) (Grammar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.byFormat[f]
	return g, ok
}

// Dispatch parses one line with the grammar for f. It returns nil fields
// when the quick check or the grammar rejects the line, and ErrNoGrammar
// when nothing is registered for f.
func (r *Registry) Dispatch(f gds.Format, line string) (*gds.LineFields, error) {
	g, ok := r.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoGrammar, f)
	}
	if !g.QuickCheck(line) {
		return nil, nil
	}
	return g.Parse(line)
}

// Formats returns the registered formats, sorted by name.
func (r *Registry) Formats() []gds.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]gds.Format, 0, len(r.byFormat))
	for f := range r.byFormat {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Count returns the number of registered grammars.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byFormat)
}
