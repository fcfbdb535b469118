// SPDX-License-Identifier: MIT
package lex

import (
	"errors"
	"testing"

	"github.com/hecatecr/hecate-lex/sourcemap"
)

type wordKind int

const (
	wordIdent wordKind = iota
	wordNumber
	wordKeywordIf
	wordWhitespace
	wordString
	wordEOF
)

func newWordRuleSet(t *testing.T) *RuleSet[wordKind] {
	t.Helper()

	rs := NewRuleSet(wordEOF)

	mustMatcher := func(pattern string) Matcher {
		m, err := NewRegexMatcher(pattern)
		if err != nil {
			t.Fatalf("NewRegexMatcher(%q): %v", pattern, err)
		}
		return m
	}

	rs.AddRule(Rule[wordKind]{Kind: wordWhitespace, Pattern: mustMatcher(`[ \t]+`), Skip: true})
	rs.AddRule(Rule[wordKind]{Kind: wordKeywordIf, Pattern: mustMatcher(`if`), Priority: 1})
	rs.AddRule(Rule[wordKind]{Kind: wordIdent, Pattern: mustMatcher(`[a-zA-Z_][a-zA-Z0-9_]*`)})
	rs.AddRule(Rule[wordKind]{Kind: wordNumber, Pattern: mustMatcher(`[0-9]+`)})
	rs.AddRule(Rule[wordKind]{Kind: wordString, Pattern: mustMatcher(`"[^"]*"`)})

	return rs
}

func scanString(t *testing.T, rs *RuleSet[wordKind], src string) ([]Token[wordKind], []Diagnostic) {
	t.Helper()

	sm := sourcemap.NewMemoryMap()
	id, err := sm.AddFile("t.src", []byte(src))
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}

	s := NewScanner[wordKind](nil)
	tokens, diags, err := s.ScanAll(rs, SourceID(id), sm)
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	return tokens, diags
}

func TestScanAllBasicTokenizationAndSkip(t *testing.T) {
	rs := newWordRuleSet(t)
	tokens, diags := scanString(t, rs, "foo 123")

	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}

	wantKinds := []wordKind{wordIdent, wordNumber, wordEOF}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(wantKinds), tokens)
	}
	for i, k := range wantKinds {
		if tokens[i].Kind != k {
			t.Errorf("tokens[%d].Kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}

	// Whitespace is skipped entirely, not emitted as a token.
	if tokens[0].Span.End != 3 || tokens[1].Span.Start != 4 {
		t.Errorf("unexpected spans around skipped whitespace: %+v", tokens)
	}
}

func TestScanAllPriorityBreaksLengthTie(t *testing.T) {
	rs := newWordRuleSet(t)
	tokens, diags := scanString(t, rs, "if")

	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if len(tokens) != 2 || tokens[0].Kind != wordKeywordIf {
		t.Fatalf("tokens = %+v, want [wordKeywordIf wordEOF]", tokens)
	}
}

func TestScanAllLongestMatchWins(t *testing.T) {
	rs := newWordRuleSet(t)
	// "iffy" is longer than the "if" keyword match, so the identifier rule
	// (longest match) must win even though "if" has higher priority.
	tokens, diags := scanString(t, rs, "iffy")

	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if len(tokens) != 2 || tokens[0].Kind != wordIdent {
		t.Fatalf("tokens = %+v, want [wordIdent wordEOF]", tokens)
	}
}

func TestScanAllEmitsEOFWithZeroLengthSpanAtEnd(t *testing.T) {
	rs := newWordRuleSet(t)
	tokens, _ := scanString(t, rs, "foo")

	eof := tokens[len(tokens)-1]
	if eof.Kind != wordEOF {
		t.Fatalf("last token kind = %v, want wordEOF", eof.Kind)
	}
	if !eof.Span.Empty() || eof.Span.Start != 3 {
		t.Errorf("EOF span = %+v, want empty span at offset 3", eof.Span)
	}
}

func TestScanAllEmptySourceYieldsOnlyEOF(t *testing.T) {
	rs := newWordRuleSet(t)
	tokens, diags := scanString(t, rs, "")

	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if len(tokens) != 1 || tokens[0].Kind != wordEOF {
		t.Fatalf("tokens = %+v, want exactly [wordEOF]", tokens)
	}
}

func TestScanAllRecoversFromUnrecognizedCharacterAndContinues(t *testing.T) {
	rs := newWordRuleSet(t)
	tokens, diags := scanString(t, rs, "foo @ bar")

	if len(diags) != 1 {
		t.Fatalf("len(diags) = %d, want 1: %+v", len(diags), diags)
	}
	if diags[0].Labels[0].Message != `unexpected '@'` {
		t.Errorf("diag message = %q, want %q", diags[0].Labels[0].Message, `unexpected '@'`)
	}

	wantKinds := []wordKind{wordIdent, wordIdent, wordEOF}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("tokens = %+v, want 2 idents + EOF", tokens)
	}
	for i, k := range wantKinds {
		if tokens[i].Kind != k {
			t.Errorf("tokens[%d].Kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

func TestScanAllErrorPatternRuleEmitsDiagnosticNotToken(t *testing.T) {
	rs := newWordRuleSet(t)

	unterminated, err := NewRegexMatcher(`"[^"]*$`)
	if err != nil {
		t.Fatalf("NewRegexMatcher: %v", err)
	}
	handlerID := HandlerUnterminatedString
	rs.AddRule(Rule[wordKind]{
		Kind:         wordString,
		Pattern:      unterminated,
		Priority:     -1, // lower priority than the valid string rule, only matches when that one can't
		ErrorHandler: &handlerID,
	})

	tokens, diags := scanString(t, rs, `"abc`)

	if len(tokens) != 1 || tokens[0].Kind != wordEOF {
		t.Fatalf("tokens = %+v, want only EOF (no token for the error pattern match)", tokens)
	}
	if len(diags) != 1 {
		t.Fatalf("diags = %+v, want exactly 1", diags)
	}
	if diags[0].Message != "unterminated string literal" {
		t.Errorf("diags[0].Message = %q, want the registered handler's message", diags[0].Message)
	}
}

func TestScanAllUnknownSource(t *testing.T) {
	rs := newWordRuleSet(t)
	sm := sourcemap.NewMemoryMap()

	s := NewScanner[wordKind](nil)
	_, _, err := s.ScanAll(rs, SourceID(99), sm)

	if !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("err = %v, want ErrUnknownSource", err)
	}
}

func TestScanAllRecoversFromMatcherPanic(t *testing.T) {
	rs := NewRuleSet(wordEOF)
	rs.AddRule(Rule[wordKind]{Kind: wordIdent, Pattern: nil}) // nil Matcher: MatchAt call panics

	sm := sourcemap.NewMemoryMap()
	id, _ := sm.AddFile("t.src", []byte("x"))

	s := NewScanner[wordKind](nil)
	tokens, diags, err := s.ScanAll(rs, SourceID(id), sm)

	if !errors.Is(err, ErrScanPanicked) {
		t.Fatalf("err = %v, want ErrScanPanicked", err)
	}
	if tokens != nil || diags != nil {
		t.Errorf("tokens=%v diags=%v, want both nil alongside a non-nil err", tokens, diags)
	}
}

func TestBestMatchRejectsZeroLengthMatch(t *testing.T) {
	rules := []Rule[wordKind]{
		{Kind: wordIdent, Pattern: zeroWidthMatcher{}},
	}

	_, _, matched := bestMatch(rules, []byte("x"), 0)
	if matched {
		t.Error("bestMatch should reject a zero-length match")
	}
}

func TestBestMatchLongestThenPriority(t *testing.T) {
	rules := []Rule[wordKind]{
		{Kind: wordIdent, Pattern: literalMatcher{"a"}, Priority: 0},
		{Kind: wordKeywordIf, Pattern: literalMatcher{"ab"}, Priority: 0},
		{Kind: wordNumber, Pattern: literalMatcher{"ab"}, Priority: 5},
	}

	best, length, matched := bestMatch(rules, []byte("ab"), 0)
	if !matched {
		t.Fatal("expected a match")
	}
	if length != 2 {
		t.Errorf("length = %d, want 2", length)
	}
	if best.Kind != wordNumber {
		t.Errorf("best.Kind = %v, want wordNumber (higher priority at equal length)", best.Kind)
	}
}
