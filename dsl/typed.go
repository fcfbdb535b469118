// SPDX-License-Identifier: MIT

// Package dsl builds a lex.RuleSet (and the immutable Lexer wrapping it)
// from a declarative description, in two flavors: TypedBuilder, for callers
// with their own token-kind enumeration, and DynamicBuilder, for callers
// with none.
package dsl

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	lex "github.com/hecatecr/hecate-lex"
	"github.com/hecatecr/hecate-lex/types"
)

// Build errors.
var (
	// ErrUnknownKind is returned when Token/Error reference a kind name the
	// builder's parse function does not recognize. The message case matches
	// base spec §4.6 verbatim: "Unknown token kind: <name>. Available kinds: <list>".
	ErrUnknownKind = errors.New("Unknown token kind")

	// ErrEmptyPattern rejects a Token call with an empty pattern string.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrBuildPanicked wraps a panic recovered from Build. Only Build itself
	// is guarded: a panic from the caller-supplied parse function, which runs
	// inside Token and Error, is not recovered.
	ErrBuildPanicked = errors.New("dsl: build panicked")
)

// RuleOption configures a single rule registered via TypedBuilder.Token or
// DynamicBuilder.Token.
type RuleOption func(*ruleOpts)

type ruleOpts struct {
	skip     bool
	priority int
}

// Skip marks the rule as a skip rule (matched but emits no token).
func Skip() RuleOption { return func(o *ruleOpts) { o.skip = true } }

// Priority sets the rule's tiebreak priority (default 0).
func Priority(p int) RuleOption { return func(o *ruleOpts) { o.priority = p } }

func applyOpts(opts []RuleOption) ruleOpts {
	var o ruleOpts
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// TypedBuilder constructs a lex.RuleSet[K] for a caller-supplied kind type K.
//
// Grounded on the teacher's Builder interface + BuilderList.NewHierarchy
// construction shape (builder.go): named sentinel errors, and a panic
// converted to a wrapped error at the Build() boundary rather than crashing
// the caller, since the inputs here (regex patterns) are attacker/user
// controlled in a typical language front end.
type TypedBuilder[K comparable] struct {
	parse func(name string) (K, bool)
	names []string

	logger logrus.FieldLogger

	ruleSet *lex.RuleSet[K]
}

// NewTypedBuilder starts a TypedBuilder. parse resolves a kind name to a K
// value; names lists every valid name, shown sorted in the "unknown token
// kind" error's "available kinds" list; eof is the kind emitted for
// end-of-file.
func NewTypedBuilder[K comparable](parse func(name string) (K, bool), names []string, eof K) *TypedBuilder[K] {
	return &TypedBuilder[K]{
		parse:   parse,
		names:   names,
		logger:  logrus.New(),
		ruleSet: lex.NewRuleSet(eof),
	}
}

// SetLogger overrides the builder's logger.
func (b *TypedBuilder[K]) SetLogger(l logrus.FieldLogger) { b.logger = l }

// Token registers a rule for the kind named name, matching pattern.
func (b *TypedBuilder[K]) Token(name, pattern string, opts ...RuleOption) error {
	kind, ok := b.parse(name)
	if !ok {
		return b.unknownKindErr(name)
	}
	if pattern == "" {
		return fmt.Errorf("token %q: %w", name, ErrEmptyPattern)
	}

	matcher, err := lex.NewRegexMatcher(pattern)
	if err != nil {
		return fmt.Errorf("token %q: %w", name, err)
	}

	o := applyOpts(opts)
	b.ruleSet.AddRule(lex.Rule[K]{
		Kind:     kind,
		Pattern:  matcher,
		Skip:     o.skip,
		Priority: o.priority,
	})

	return nil
}

// Error registers pattern as an error-pattern rule: on match it emits
// handler's diagnostic instead of a token.
//
// handler is also registered in the rule set's handler registry, keyed by
// lex.HandlerID(name) — see DESIGN.md's resolution of the "keyed by the
// resolved kind" ambiguity in base spec §4.6.
func (b *TypedBuilder[K]) Error(name, pattern string, handler lex.ErrorHandler, opts ...RuleOption) error {
	kind, ok := b.parse(name)
	if !ok {
		return b.unknownKindErr(name)
	}
	if pattern == "" {
		return fmt.Errorf("error pattern %q: %w", name, ErrEmptyPattern)
	}

	matcher, err := lex.NewRegexMatcher(pattern)
	if err != nil {
		return fmt.Errorf("error pattern %q: %w", name, err)
	}

	id := lex.HandlerID(name)
	b.ruleSet.RegisterErrorHandler(id, handler)

	o := applyOpts(opts)
	b.ruleSet.AddRule(lex.Rule[K]{
		Kind:         kind,
		Pattern:      matcher,
		Priority:     o.priority,
		ErrorHandler: &id,
	})

	return nil
}

// Build finalizes the RuleSet into an immutable Lexer.
func (b *TypedBuilder[K]) Build() (lexer *Lexer[K], err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Debugf("build panic recovered; rule set: %s", spew.Sdump(b.ruleSet))
			lexer, err = nil, fmt.Errorf("%w: %v", ErrBuildPanicked, r)
		}
	}()

	return &Lexer[K]{ruleSet: b.ruleSet, cfg: &lex.Config{Logger: b.logger}}, nil
}

func (b *TypedBuilder[K]) unknownKindErr(name string) error {
	var names types.StringSlice = append(types.StringSlice{}, b.names...)
	names.Sort()

	return fmt.Errorf("%w: %s. Available kinds: %s", ErrUnknownKind, name, names.String())
}
