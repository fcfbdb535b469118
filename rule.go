// SPDX-License-Identifier: MIT
package lex

// Matcher is the regex primitive the core consumes: "does this pattern match
// a prefix starting exactly at byte offset pos, and if so, how long is it".
//
// Implementations that wrap a non-anchored regex engine must verify that the
// match begins exactly at pos and return ok=false otherwise — see RegexMatcher
// for the reference implementation over the standard library's regexp.
type Matcher interface {
	// MatchAt reports the byte length of a match starting exactly at pos, or
	// ok=false if no such match exists. pos >= len(text) always returns false.
	MatchAt(text []byte, pos int) (length int, ok bool)

	// Source returns the original pattern text, used only to break priority
	// ties deterministically (shorter pattern source sorts first).
	Source() string
}

// Rule is a declarative matcher: kind + pattern + modifiers.
type Rule[K comparable] struct {
	Kind     K
	Pattern  Matcher
	Skip     bool
	Priority int

	// ErrorHandler, if set, names a handler in the owning RuleSet's registry.
	// A matching rule with this set emits a diagnostic instead of a token.
	ErrorHandler *HandlerID
}

// WithErrorHandler returns a copy of r that emits via the named handler
// instead of producing a token.
func (r Rule[K]) WithErrorHandler(id HandlerID) Rule[K] {
	r.ErrorHandler = &id
	return r
}
