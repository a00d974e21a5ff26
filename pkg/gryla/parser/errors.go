package parser

import (
	"errors"
	"fmt"
)

// ErrNoTable indicates a packet section ended before any table markup.
var ErrNoTable = errors.New("no table found")

// ErrDepthExceeded indicates field nesting deeper than the configured limit.
var ErrDepthExceeded = errors.New("nesting depth limit exceeded")

// FormatError represents malformed wikitable markup. It is fatal to the
// table currently being built.
type FormatError struct {
	// Line is the offending markup line, when one can be named.
	Line string
	// Reason describes what could not be parsed.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("table format error: %s", e.Reason)
	}
	return fmt.Sprintf("table format error: %s: %q", e.Reason, e.Line)
}

// NewFormatError creates a new FormatError.
func NewFormatError(line, reason string) *FormatError {
	return &FormatError{Line: line, Reason: reason}
}

// SymmetryError represents a name/type column mismatch not covered by the
// "no fields" sentinel. It is recoverable at packet granularity: callers skip
// the offending packet and continue the batch.
type SymmetryError struct {
	Reason string
}

func (e *SymmetryError) Error() string {
	return "symmetry violation: " + e.Reason
}

// DialectError represents markup that no longer matches the assumed wiki
// dialect: a missing required header, a missing protocol key, or an
// unrecognized section name. It is fatal to the whole run and must not be
// patched around.
type DialectError struct {
	// Subject is the identifying name of the table, cell, or section.
	Subject string
	// Reason describes the mismatch.
	Reason string
}

func (e *DialectError) Error() string {
	return fmt.Sprintf("dialect error in %q: %s", e.Subject, e.Reason)
}
