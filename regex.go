// SPDX-License-Identifier: MIT
package lex

import (
	"fmt"
	"regexp"
)

// RegexMatcher adapts the standard library's regexp package to the Matcher
// contract.
//
// RE2 (the engine behind regexp) has no backreferences and no true
// lookaround; every pattern-matching example in the retrieval pack this repo
// was built from uses it anyway, so that limitation is accepted rather than
// worked around with a third-party backtracking engine.
type RegexMatcher struct {
	source string
	re     *regexp.Regexp
}

// NewRegexMatcher compiles pattern. Because MatchAt runs the pattern against
// the slice text[pos:], a leading "^" matches at pos, not at the start of
// the whole text; ordinary patterns (no "^") are what most rules want, since
// MatchAt already rejects any match that begins after pos.
func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	return &RegexMatcher{source: pattern, re: re}, nil
}

// MatchAt implements Matcher by slicing text at pos and verifying the match
// begins at the very start of that slice, per base spec §4.1 / §6.
func (m *RegexMatcher) MatchAt(text []byte, pos int) (length int, ok bool) {
	if pos < 0 || pos >= len(text) {
		return 0, false
	}

	loc := m.re.FindIndex(text[pos:])
	if loc == nil || loc[0] != 0 {
		return 0, false
	}

	return loc[1], true
}

// Source returns the original pattern text.
func (m *RegexMatcher) Source() string { return m.source }
