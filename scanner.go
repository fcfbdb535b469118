// SPDX-License-Identifier: MIT
package lex

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/hecatecr/hecate-lex/sourcemap"
)

// minTokenCapacity is the floor for the pre-allocated token slice, per base
// spec §4.5.
const minTokenCapacity = 1000

// ErrUnknownSource is returned by ScanAll when sourceID is not registered
// with the given SourceMap.
var ErrUnknownSource = errors.New("lex: unknown source id")

// ErrScanPanicked wraps a panic recovered from inside ScanAll — typically a
// caller-supplied Matcher misbehaving (e.g. a nil *RegexMatcher).
var ErrScanPanicked = errors.New("lex: scan panicked")

// Scanner is the matching engine: longest-match-with-priority, skip rules,
// error-pattern rules, and single-character recovery. See ScanAll.
type Scanner[K comparable] struct {
	cfg *Config
}

// NewScanner constructs a Scanner. A nil cfg is replaced by DefaultConfig.
func NewScanner[K comparable](cfg *Config) *Scanner[K] {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()

	return &Scanner[K]{cfg: cfg}
}

// ScanAll runs the full scanning algorithm over the source registered under
// sourceID in sm, against rs, and returns the resulting tokens & diagnostics.
//
// ScanAll never returns a partial result alongside a non-nil err: either
// sourceID resolves and scanning runs to completion (possibly emitting
// diagnostics, never an error, for lexical problems in the input), or it
// fails outright before producing anything.
func (s *Scanner[K]) ScanAll(rs *RuleSet[K], sourceID SourceID, sm sourcemap.SourceMap) (tokens []Token[K], diags []Diagnostic, err error) {
	info, ok := sm.Get(sourcemap.ID(sourceID))
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownSource, sourceID)
	}
	text := info.Contents

	defer func() {
		if r := recover(); r != nil {
			s.cfg.Logger.Debugf("scan panic recovered; rules: %s", spew.Sdump(rs.rules))
			tokens, diags = nil, nil
			err = fmt.Errorf("%w: %v", ErrScanPanicked, r)
		}
	}()

	capacity := len(text) / 5
	if capacity < minTokenCapacity {
		capacity = minTokenCapacity
	}
	tokens = make([]Token[K], 0, capacity)

	n := len(text)
	for pos := 0; pos < n; {
		rule, length, matched := bestMatch(rs.rules, text, pos)
		if !matched {
			diag, advance := recoverAt(sourceID, text, pos)
			diags = append(diags, diag)
			pos += advance

			continue
		}

		span := Span{Source: sourceID, Start: pos, End: pos + length}

		switch {
		case rule.ErrorHandler != nil:
			if handler, ok := rs.Get(*rule.ErrorHandler); ok {
				diags = append(diags, Diagnostic{
					Severity: SeverityError,
					Message:  handler.Message,
					Labels:   []Label{{Span: span, Message: "here", Style: LabelPrimary}},
					Help:     handler.Help,
				})
			}
			// Unknown handler id: tolerated silently, consumed as if skip.
		case rule.Skip:
			// Consumed, no token.
		default:
			tokens = append(tokens, NewToken(rule.Kind, span, ""))
		}

		pos += length
	}

	tokens = append(tokens, NewToken(rs.eof, EOFSpan(sourceID, n), ""))

	s.cfg.Logger.WithFields(logrus.Fields{
		"tokens":      len(tokens),
		"diagnostics": len(diags),
	}).Debug("scan complete")

	return tokens, diags, nil
}

// bestMatch scans every rule in rs's pre-sorted order and selects the match
// under the total order from base spec §4.3: longest match wins; on equal
// length, higher priority wins; otherwise earlier-in-sort-order wins (which
// falls out naturally from only overwriting the running best on a strict
// improvement).
//
// Zero-length matches at this (non-EOF, since pos < len(text) at every call
// site) position are rejected — see base spec §4.3's zero-length policy and
// DESIGN.md's resolution of that open question.
func bestMatch[K comparable](rules []Rule[K], text []byte, pos int) (best Rule[K], length int, matched bool) {
	bestLength := -1
	bestPriority := 0

	for _, rule := range rules {
		l, ok := rule.Pattern.MatchAt(text, pos)
		if !ok || l == 0 {
			continue
		}

		if l > bestLength || (l == bestLength && rule.Priority > bestPriority) {
			best, bestLength, bestPriority, matched = rule, l, rule.Priority, true
		}
	}

	return best, bestLength, matched
}

// recoverAt implements base spec §4.4: emit one diagnostic for the
// unrecognized character at pos and advance by one decoded rune (one byte on
// invalid UTF-8, since utf8.DecodeRune reports size 1 for RuneError).
func recoverAt(sourceID SourceID, text []byte, pos int) (Diagnostic, int) {
	r, size := utf8.DecodeRune(text[pos:])
	if size == 0 {
		size = 1
	}

	span := Span{Source: sourceID, Start: pos, End: pos + size}

	return Diagnostic{
		Severity: SeverityError,
		Message:  "unexpected character",
		Labels: []Label{{
			Span:    span,
			Message: fmt.Sprintf("unexpected %q", r),
			Style:   LabelPrimary,
		}},
		Help: "remove this character or add a lexer rule to handle it",
	}, size
}
