// Package registry provides tracing interfaces for grammar debugging.
package registry

// TraceResult contains trace information from a grammar's attempt to parse a line.
type TraceResult struct {
	Grammar    string        // Grammar name.
	QuickCheck *QuickCheck   // QuickCheck result.
	Formats    []FormatTrace // Pattern match attempts.
	Matched    bool          // Whether the grammar matched the line.
}

// QuickCheck contains the result of a grammar's quick check.
type QuickCheck struct {
	Passed bool   // Whether the quick check passed.
	Reason string // Optional reason for the result.
}

// FormatTrace contains debug information about a pattern match attempt.
type FormatTrace struct {
	Name     string            // Format or pattern name.
	Matched  bool              // Whether the pattern matched.
	Pattern  string            // The regex pattern used.
	Captures map[string]string // Captured groups (if matched).
}

// Traceable is implemented by grammars that support debug tracing.
// This allows the trace command to show which pattern was tried against
// a line and what it captured.
type Traceable interface {
	ParseWithTrace(line string) *TraceResult
}
