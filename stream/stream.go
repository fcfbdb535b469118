// SPDX-License-Identifier: MIT

// Package stream provides TokenStream, a cursor over a scanned token slice
// with lookahead and LIFO pushback, for parsers consuming a lex.Scanner's
// output.
package stream

import (
	"errors"
	"fmt"

	lex "github.com/hecatecr/hecate-lex"
)

// Cursor errors.
var (
	// ErrEndOfStream is returned by Peek/Advance once the stream (including
	// any pushed-back tokens) is exhausted.
	ErrEndOfStream = errors.New("unexpected end of token stream")
)

// TokenStream is a single-owner cursor over tokens, mutated in place as a
// parser consumes it.
//
// Grounded on the teacher's lexer.Lexer rune-buffer machinery
// (Next/Peek/PeekNext/Backup/BackupFor in lexer/lexer.go): the same
// "look ahead without losing your place, and be able to put something back"
// shape, retargeted from a rune buffer to a token pushback stack.
type TokenStream[K comparable] struct {
	tokens     []lex.Token[K]
	position   int
	pushedBack []lex.Token[K] // LIFO: last pushed is pushedBack[len-1]
}

// New wraps tokens in a TokenStream, starting at position 0.
func New[K comparable](tokens []lex.Token[K]) *TokenStream[K] {
	return &TokenStream[K]{tokens: tokens}
}

// Position reports the underlying index into the original token slice,
// ignoring any pushed-back tokens.
func (s *TokenStream[K]) Position() int { return s.position }

// Eof reports whether the stream (pushed-back tokens included) is
// exhausted.
func (s *TokenStream[K]) Eof() bool {
	return len(s.pushedBack) == 0 && s.position >= len(s.tokens)
}

// Peek returns the current token without consuming it.
func (s *TokenStream[K]) Peek() (lex.Token[K], error) {
	if t, ok := s.peekAt(0); ok {
		return t, nil
	}

	return lex.Token[K]{}, ErrEndOfStream
}

// PeekN returns the token n positions ahead of the current one (0 ==
// current), accounting for pushed-back tokens first — the last-pushed token
// is offset 0. ok is false if n is beyond the end of the stream.
func (s *TokenStream[K]) PeekN(n int) (lex.Token[K], bool) {
	if n < 0 {
		return lex.Token[K]{}, false
	}

	return s.peekAt(n)
}

func (s *TokenStream[K]) peekAt(n int) (lex.Token[K], bool) {
	lenPushed := len(s.pushedBack)
	if n < lenPushed {
		return s.pushedBack[lenPushed-1-n], true
	}

	idx := s.position + (n - lenPushed)
	if idx >= len(s.tokens) {
		return lex.Token[K]{}, false
	}

	return s.tokens[idx], true
}

// Advance consumes and returns the current token: pops from the pushback
// stack first, otherwise advances the underlying position.
func (s *TokenStream[K]) Advance() (lex.Token[K], error) {
	if n := len(s.pushedBack); n > 0 {
		t := s.pushedBack[n-1]
		s.pushedBack = s.pushedBack[:n-1]

		return t, nil
	}

	if s.position >= len(s.tokens) {
		return lex.Token[K]{}, ErrEndOfStream
	}

	t := s.tokens[s.position]
	s.position++

	return t, nil
}

// Push returns t to the head of the stream (LIFO): the next Advance/Peek
// will see it before anything else.
func (s *TokenStream[K]) Push(t lex.Token[K]) {
	s.pushedBack = append(s.pushedBack, t)
}

// Expect advances if the current token's Kind matches kind, otherwise
// returns an error without consuming anything.
func (s *TokenStream[K]) Expect(kind K) (lex.Token[K], error) {
	cur, err := s.Peek()
	if err != nil {
		return lex.Token[K]{}, fmt.Errorf("expected %v but found EOF", kind)
	}

	if cur.Kind != kind {
		return lex.Token[K]{}, fmt.Errorf("expected %v but found %v", kind, cur.Kind)
	}

	return s.Advance()
}

// TryMatch consumes and returns the current token if its Kind matches kind;
// otherwise it returns ok=false and leaves the stream untouched.
func (s *TokenStream[K]) TryMatch(kind K) (tok lex.Token[K], ok bool) {
	cur, err := s.Peek()
	if err != nil || cur.Kind != kind {
		return lex.Token[K]{}, false
	}

	tok, _ = s.Advance()

	return tok, true
}

// ConsumeWhile repeatedly advances while pred holds for the current token
// (and the stream isn't at EOF), returning every token consumed this way.
func (s *TokenStream[K]) ConsumeWhile(pred func(lex.Token[K]) bool) []lex.Token[K] {
	var out []lex.Token[K]

	for !s.Eof() {
		cur, err := s.Peek()
		if err != nil || !pred(cur) {
			break
		}

		t, _ := s.Advance()
		out = append(out, t)
	}

	return out
}
