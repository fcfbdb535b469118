// SPDX-License-Identifier: MIT
package dsl

import (
	lex "github.com/hecatecr/hecate-lex"
	"github.com/hecatecr/hecate-lex/sourcemap"
)

// Lexer is the immutable product of a TypedBuilder: a RuleSet wrapped with a
// Config, ready to scan any number of sources.
//
// Grounded on the teacher's lexer.New(Opts{...}, src) "construct once, scan
// many times" shape (lexer/lexer.go, lexer/v2/lexer.go).
type Lexer[K comparable] struct {
	ruleSet *lex.RuleSet[K]
	cfg     *lex.Config
}

// RuleSet exposes the underlying rule set, e.g. to feed a ScannerPool batch.
func (l *Lexer[K]) RuleSet() *lex.RuleSet[K] { return l.ruleSet }

// Scan runs the scanning algorithm over sourceID against sm.
func (l *Lexer[K]) Scan(sourceID lex.SourceID, sm sourcemap.SourceMap) ([]lex.Token[K], []lex.Diagnostic, error) {
	return lex.NewScanner[K](l.cfg).ScanAll(l.ruleSet, sourceID, sm)
}

// MustBuild panics if build returns an error; for package-init-time rule
// sets built from a literal, known-good description, matching the
// build-your-rule-table-at-init-time idiom seen across the retrieval pack's
// other hand-written lexers.
func MustBuild[K comparable](lexer *Lexer[K], err error) *Lexer[K] {
	if err != nil {
		panic(err)
	}

	return lexer
}
