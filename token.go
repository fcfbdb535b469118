// SPDX-License-Identifier: MIT
package lex

import "github.com/hecatecr/hecate-lex/sourcemap"

const unknownLexeme = "<unknown>"

// Token is an immutable record of one scanned lexeme.
//
// K is any comparable value the caller uses to distinguish token kinds (an
// enum for a typed lexer, or dsl.DynamicKind for a dynamic one).
type Token[K comparable] struct {
	Kind K
	Span Span

	// value is a backup lexeme used by Lexeme when the originating source is
	// no longer available from the SourceMap. Excluded from Equal.
	value string
}

// NewToken constructs a Token, optionally caching its lexeme value for later
// use by Lexeme if the source becomes unavailable.
func NewToken[K comparable](kind K, span Span, value string) Token[K] {
	return Token[K]{Kind: kind, Span: span, value: value}
}

// Equal compares two tokens by Kind and Span only, per the spec: the cached
// value is a fallback, not part of a token's identity.
func (t Token[K]) Equal(other Token[K]) bool {
	return t.Kind == other.Kind && t.Span == other.Span
}

// Lexeme resolves the token's source text.
//
// It prefers the live SourceMap contents; if the file is missing it falls
// back to the cached value, and finally to the literal "<unknown>".
func (t Token[K]) Lexeme(sm sourcemap.SourceMap) string {
	if sm != nil {
		if info, ok := sm.Get(sourcemap.ID(t.Span.Source)); ok {
			if t.Span.Start >= 0 && t.Span.End <= len(info.Contents) && t.Span.Start <= t.Span.End {
				return string(info.Contents[t.Span.Start:t.Span.End])
			}
		}
	}

	if t.value != "" {
		return t.value
	}

	return unknownLexeme
}
