// SPDX-License-Identifier: MIT

// Package nesting provides NestingTracker, a stack-based validator for
// paired open/close token kinds (braces, brackets, parens, …) that keeps
// validating the rest of a token stream after an error instead of stopping
// at the first mismatch.
package nesting

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Constraint mirrors the teacher's v2/hierarchy.go Constraint pattern — a
// named alias for the comparable set this package's generic type needs.
// Kinds only ever need equality here, never an ordering, but the alias is
// kept in this shape (rather than a bare `comparable`) so a caller reading
// both packages recognizes the same idiom; constraints.Ordered is pulled in
// for DescribeOpenClose's sorted listing below, which does need an order.
type Constraint = comparable

// NestingTracker validates a sequence of open/close token kinds against an
// (optional) pairing map, classifying every mismatch as it goes rather than
// aborting.
//
// Grounded on the teacher's types.SafeCounter (level is exactly a counter,
// though unlike SafeCounter it is not lock-guarded: a tracker is
// single-owner) and the general append/slice-as-stack idiom used throughout
// fisherprime-hierarchy.
type NestingTracker[K Constraint] struct {
	openSet  map[K]struct{}
	closeSet map[K]struct{}
	pairs    map[K]K // close -> open, optional

	level       int
	stack       []K
	extraCloses int
}

// New constructs a NestingTracker. pairs may be nil, in which case any close
// is accepted against any open (see Process).
func New[K Constraint](open, close []K, pairs map[K]K) *NestingTracker[K] {
	t := &NestingTracker[K]{
		openSet:  make(map[K]struct{}, len(open)),
		closeSet: make(map[K]struct{}, len(close)),
		pairs:    pairs,
	}

	for _, k := range open {
		t.openSet[k] = struct{}{}
	}
	for _, k := range close {
		t.closeSet[k] = struct{}{}
	}

	return t
}

// Process feeds one token kind through the validator and returns the
// "level for display" the spec defines: the depth at which this token
// should be rendered (e.g. for indentation).
func (t *NestingTracker[K]) Process(kind K) int {
	switch {
	case t.isOpen(kind):
		display := t.level
		t.level++
		t.stack = append(t.stack, kind)

		return display

	case t.isClose(kind):
		if t.mismatched(kind) {
			t.extraCloses++
			return t.level
		}

		t.level--
		t.stack = t.stack[:len(t.stack)-1]

		return t.level

	default:
		return t.level
	}
}

func (t *NestingTracker[K]) isOpen(kind K) bool  { _, ok := t.openSet[kind]; return ok }
func (t *NestingTracker[K]) isClose(kind K) bool { _, ok := t.closeSet[kind]; return ok }

// mismatched reports whether kind, a close token, cannot legally pop the
// current stack top — an "extra close" per base spec §4.8. Keeping this
// counter separate from stack is what lets validation continue correctly
// after an error: an extra close never pops a legitimate open.
func (t *NestingTracker[K]) mismatched(kind K) bool {
	if t.level == 0 {
		return true
	}

	if t.pairs == nil {
		return false
	}

	open, ok := t.pairs[kind]

	return !ok || t.stack[len(t.stack)-1] != open
}

// Balanced reports whether every open has been closed and no extra closes
// were seen.
func (t *NestingTracker[K]) Balanced() bool {
	return len(t.stack) == 0 && t.extraCloses == 0
}

// Level returns the current nesting depth.
func (t *NestingTracker[K]) Level() int { return t.level }

// ExtraCloses returns the count of closing tokens seen with no matching
// open.
func (t *NestingTracker[K]) ExtraCloses() int { return t.extraCloses }

// ValidationError describes why the tracker is unbalanced, or ok=false if
// it is balanced.
func (t *NestingTracker[K]) ValidationError() (msg string, ok bool) {
	switch {
	case t.Balanced():
		return "", false

	case t.extraCloses > 0 && len(t.stack) == 0:
		return fmt.Sprintf("too many closing tokens (%d extra)", t.extraCloses), true

	case t.extraCloses == 0:
		return fmt.Sprintf("unclosed tokens: %s", joinKinds(t.stack)), true

	default:
		return fmt.Sprintf("mismatched tokens in stack: %s", joinKinds(t.stack)), true
	}
}

// Reset clears level, stack, and extraCloses to zero, for reuse against a
// new token sequence.
func (t *NestingTracker[K]) Reset() {
	t.level = 0
	t.stack = nil
	t.extraCloses = 0
}

func joinKinds[K Constraint](kinds []K) string {
	out := ""
	for i, k := range kinds {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(k)
	}

	return out
}

// DescribeOpenClose returns deterministic, sorted listings of the open and
// close kinds t was configured with — useful for log lines and one-time
// diagnostics summaries. It requires an orderable K (the common case: small
// enums or strings); a tracker built over a non-orderable K simply doesn't
// use this helper.
func DescribeOpenClose[K constraints.Ordered](t *NestingTracker[K]) (open, close []K) {
	openList := make([]K, 0, len(t.openSet))
	for k := range t.openSet {
		openList = append(openList, k)
	}

	closeList := make([]K, 0, len(t.closeSet))
	for k := range t.closeSet {
		closeList = append(closeList, k)
	}

	return sortedUnique(openList), sortedUnique(closeList)
}

func sortedUnique[K constraints.Ordered](in []K) []K {
	seen := make(map[K]struct{}, len(in))
	out := make([]K, 0, len(in))

	for _, k := range in {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return out
}
