// SPDX-License-Identifier: MIT
package lex

import "fmt"

// SourceID identifies a file within a SourceMap.
type SourceID int

type (
	// Span is a half-open byte range [Start, End) within a single source file.
	//
	// End-of-file is represented by the empty span (id, n, n).
	Span struct {
		Source SourceID
		Start  int
		End    int
	}
)

// EOFSpan builds the zero-length span conventionally used for the EOF token.
func EOFSpan(source SourceID, length int) Span { return Span{Source: source, Start: length, End: length} }

// Len returns the span's byte length.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// String renders the span as "source:start..end", useful in log lines & panics.
func (s Span) String() string { return fmt.Sprintf("%d:%d..%d", s.Source, s.Start, s.End) }
