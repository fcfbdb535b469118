// SPDX-License-Identifier: MIT
package lex

import (
	"sort"

	"github.com/hecatecr/hecate-lex/types"
)

// RuleSet holds an ordered collection of rules plus a registry of named
// error handlers, for one token kind type K.
//
// A RuleSet is built once (via AddRule / RegisterErrorHandler) and is not
// mutated after the first call to Scanner.ScanAll; at that point it is safe
// to share across goroutines, see ScannerPool.
type RuleSet[K comparable] struct {
	rules    []Rule[K]
	eof      K
	handlers map[HandlerID]ErrorHandler
}

// NewRuleSet constructs an empty RuleSet with the five built-in error
// handlers preregistered, and eof as the token kind emitted for end-of-file.
func NewRuleSet[K comparable](eof K) *RuleSet[K] {
	handlers := make(map[HandlerID]ErrorHandler, len(defaultHandlers))
	for id, h := range defaultHandlers {
		handlers[id] = h
	}

	return &RuleSet[K]{eof: eof, handlers: handlers}
}

// EOF returns the token kind this RuleSet emits for the end-of-file token.
func (rs *RuleSet[K]) EOF() K { return rs.eof }

// SetEOF overrides the EOF token kind. Intended for builders (e.g.
// dsl.DynamicBuilder) that must synthesize an EOF kind only after seeing the
// rest of the rule set; callers must not call this once scanning has begun.
func (rs *RuleSet[K]) SetEOF(eof K) { rs.eof = eof }

// Rules returns the rule set's rules in their current (pre-sorted) order.
// Callers must not mutate the returned slice.
func (rs *RuleSet[K]) Rules() []Rule[K] { return rs.rules }

// AddRule appends r and re-sorts the rule set by (-Priority,
// +len(Pattern.Source())), stable so remaining ties keep insertion order.
func (rs *RuleSet[K]) AddRule(r Rule[K]) {
	rs.rules = append(rs.rules, r)
	rs.sort()
}

func (rs *RuleSet[K]) sort() {
	sort.SliceStable(rs.rules, func(i, j int) bool {
		a, b := rs.rules[i], rs.rules[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}

		return len(a.Pattern.Source()) < len(b.Pattern.Source())
	})
}

// RegisterErrorHandler stores or overwrites the handler keyed by id.
func (rs *RuleSet[K]) RegisterErrorHandler(id HandlerID, handler ErrorHandler) {
	rs.handlers[id] = handler
}

// RegisterErrorHandlerMessage is the inline form of RegisterErrorHandler.
func (rs *RuleSet[K]) RegisterErrorHandlerMessage(id HandlerID, message, help string) {
	rs.RegisterErrorHandler(id, ErrorHandler{Message: message, Help: help})
}

// Get returns the handler registered under id. ok is false for unknown ids —
// the scanner tolerates that silently, per base spec §7.
func (rs *RuleSet[K]) Get(id HandlerID) (ErrorHandler, bool) {
	h, ok := rs.handlers[id]
	return h, ok
}

// KindNames returns a deduplicated, sorted list of this RuleSet's
// non-error-pattern kind names (skip rules included), each formatted by
// nameOf. Intended for
// diagnostics & "available kinds" style messages where K has no natural
// string form of its own.
func (rs *RuleSet[K]) KindNames(nameOf func(K) string) types.StringSlice {
	var names types.StringSlice
	for _, r := range rs.rules {
		if r.ErrorHandler != nil {
			continue
		}
		names.UniqueAppend(nameOf(r.Kind))
	}
	names.Sort()

	return names
}
