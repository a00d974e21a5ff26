package gryla

import "github.com/gryla-project/gryla-go/pkg/gryla/parser"

// The parser's error kinds, re-exported so callers working at the mining
// level need not import the parser package.
type (
	// FormatError is malformed table markup, fatal to one table.
	FormatError = parser.FormatError
	// SymmetryError is a name/type column mismatch, recoverable per packet.
	SymmetryError = parser.SymmetryError
	// DialectError is markup outside the assumed dialect, fatal to the run.
	DialectError = parser.DialectError
)

var (
	// ErrNoTable indicates a packet section without table markup.
	ErrNoTable = parser.ErrNoTable
	// ErrDepthExceeded indicates nesting beyond the configured limit.
	ErrDepthExceeded = parser.ErrDepthExceeded
)
