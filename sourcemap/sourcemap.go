// SPDX-License-Identifier: MIT

// Package sourcemap defines the source-map contract consumed by the lexical
// core (see lex.Token.Lexeme and lex.Scanner.ScanAll) and ships one minimal
// in-memory implementation of it.
//
// The core treats a SourceMap as opaque: a store that resolves an integer id
// to a file's bytes and answers byte-offset → line/column queries. Designing
// a production-grade source map (streaming loads, LRU eviction, watch &
// reload, …) is explicitly out of scope; MemoryMap exists only so the core is
// independently testable without a caller-supplied implementation.
package sourcemap

// ID identifies a file registered with a SourceMap.
type ID int

// Position is a byte offset resolved to a human-facing location.
//
// Line/Column are 0-based internal coordinates; DisplayLine/DisplayColumn are
// the 1-based values a renderer should print.
type Position struct {
	Line           int
	Column         int
	DisplayLine    int
	DisplayColumn  int
}

// FileInfo is what a SourceMap returns for a registered file.
type FileInfo struct {
	Path        string
	Contents    []byte
	LineOffsets []int // byte offset of the start of each line, LineOffsets[0] == 0
}

// SourceMap is the external contract the core consumes. It is read-only from
// the core's perspective: the core never extends or mutates it.
type SourceMap interface {
	// Get returns the file registered under id, or ok=false if unknown.
	Get(id ID) (FileInfo, bool)

	// BytePosition resolves a byte offset within id to a Position. ok is
	// false if id is unknown or offset is out of range.
	BytePosition(id ID, offset int) (Position, bool)
}
