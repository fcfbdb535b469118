// SPDX-License-Identifier: MIT
package dsl

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	lex "github.com/hecatecr/hecate-lex"
	"github.com/hecatecr/hecate-lex/sourcemap"
)

// eofName is the symbolic name synthesized for EOF when a DynamicBuilder's
// caller never declares one explicitly, per base spec §4.6.
const eofName = "EOF"

// DynamicKind is a token kind minted by a DynamicBuilder: just an interned
// id. The symbolic name lives in the side table (DynamicLexer.Names), not on
// the kind itself — see base spec §4.6/§9's "error handlers as named
// records, not closures"-style preference for small comparable values over
// self-describing ones.
type DynamicKind struct{ ID int }

// DynamicLexer is the product of a DynamicBuilder: a RuleSet[DynamicKind]
// plus the id → name side table needed to display kinds.
type DynamicLexer struct {
	ruleSet *lex.RuleSet[DynamicKind]
	cfg     *lex.Config
	names   map[int]string
}

// RuleSet exposes the underlying rule set.
func (l *DynamicLexer) RuleSet() *lex.RuleSet[DynamicKind] { return l.ruleSet }

// KindName returns the symbolic name registered for id, or "" if unknown.
func (l *DynamicLexer) KindName(id int) string { return l.names[id] }

// Scan runs the scanning algorithm over sourceID against sm.
func (l *DynamicLexer) Scan(sourceID lex.SourceID, sm sourcemap.SourceMap) ([]lex.Token[DynamicKind], []lex.Diagnostic, error) {
	return lex.NewScanner[DynamicKind](l.cfg).ScanAll(l.ruleSet, sourceID, sm)
}

// DynamicBuilder mints DynamicKind ids from symbolic names in first-seen
// order, for callers with no predefined token-kind enumeration.
type DynamicBuilder struct {
	names  []string    // insertion order, index == id
	byName map[string]int

	logger logrus.FieldLogger

	ruleSet *lex.RuleSet[DynamicKind]
}

// NewDynamicBuilder starts a DynamicBuilder. The EOF kind is synthesized at
// Build() time if the caller never calls Token("EOF", ...).
func NewDynamicBuilder() *DynamicBuilder {
	b := &DynamicBuilder{
		byName: make(map[string]int),
		logger: logrus.New(),
	}
	b.ruleSet = lex.NewRuleSet(DynamicKind{}) // placeholder EOF id, fixed in Build

	return b
}

// SetLogger overrides the builder's logger.
func (b *DynamicBuilder) SetLogger(l logrus.FieldLogger) { b.logger = l }

func (b *DynamicBuilder) intern(name string) DynamicKind {
	if id, ok := b.byName[name]; ok {
		return DynamicKind{ID: id}
	}

	id := len(b.names)
	b.names = append(b.names, name)
	b.byName[name] = id

	return DynamicKind{ID: id}
}

// Token interns name (minting a fresh id on first use) and registers a rule
// matching pattern.
func (b *DynamicBuilder) Token(name, pattern string, opts ...RuleOption) error {
	if pattern == "" {
		return fmt.Errorf("token %q: %w", name, ErrEmptyPattern)
	}

	matcher, err := lex.NewRegexMatcher(pattern)
	if err != nil {
		return fmt.Errorf("token %q: %w", name, err)
	}

	kind := b.intern(name)

	o := applyOpts(opts)
	b.ruleSet.AddRule(lex.Rule[DynamicKind]{
		Kind:     kind,
		Pattern:  matcher,
		Skip:     o.skip,
		Priority: o.priority,
	})

	return nil
}

// Error interns name and registers pattern as an error-pattern rule, keyed
// by lex.HandlerID(name) in the rule set's handler registry — mirroring
// TypedBuilder.Error's resolution of the same open question.
func (b *DynamicBuilder) Error(name, pattern string, handler lex.ErrorHandler, opts ...RuleOption) error {
	if pattern == "" {
		return fmt.Errorf("error pattern %q: %w", name, ErrEmptyPattern)
	}

	matcher, err := lex.NewRegexMatcher(pattern)
	if err != nil {
		return fmt.Errorf("error pattern %q: %w", name, err)
	}

	kind := b.intern(name)
	id := lex.HandlerID(name)
	b.ruleSet.RegisterErrorHandler(id, handler)

	o := applyOpts(opts)
	b.ruleSet.AddRule(lex.Rule[DynamicKind]{
		Kind:         kind,
		Pattern:      matcher,
		Priority:     o.priority,
		ErrorHandler: &id,
	})

	return nil
}

// Build finalizes the RuleSet into an immutable DynamicLexer, synthesizing
// an EOF kind if the caller never declared one.
func (b *DynamicBuilder) Build() (lexer *DynamicLexer, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Debugf("build panic recovered; names: %s", spew.Sdump(b.names))
			lexer, err = nil, fmt.Errorf("%w: %v", ErrBuildPanicked, r)
		}
	}()

	eof := b.intern(eofName)
	b.ruleSet.SetEOF(eof)

	names := make(map[int]string, len(b.names))
	for name, id := range b.byName {
		names[id] = name
	}

	return &DynamicLexer{
		ruleSet: b.ruleSet,
		cfg:     &lex.Config{Logger: b.logger},
		names:   names,
	}, nil
}
