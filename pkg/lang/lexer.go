// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package lang is the e-graph's test-language collaborator: a small
// expression language ("(a + b) * c") and rewrite-rule language
// ("$x * 0 => 0") used only by tests and by the "egraph run" and
// "egraph serialize" CLI commands, never by the core egraph package itself. It is a hand-written lexer and
// recursive descent parser, in the teacher's own style
// (pkg/util/source/lexer.go hand-rolls its scanner rather than reaching for
// a parser-combinator or PEG library) rather than a port of this language's
// original PEG grammar.
package lang

import (
	"fmt"
	"unicode"
)

// tokenKind enumerates the lexical categories of the test language.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenVarIdent
	tokenOperator
	tokenLParen
	tokenRParen
	tokenArrow
)

// Span identifies a half-open range of rune offsets within the source text
// a token or error refers to.
type Span struct {
	Start int
	End   int
}

type token struct {
	kind tokenKind
	text string
	span Span
}

// SyntaxError reports a lexical or grammatical problem at a specific Span of
// the source text, grounded on the teacher's own
// pkg/util/source/source_file.go SyntaxError shape.
type SyntaxError struct {
	Source string
	Span   Span
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start, e.Span.End, e.Msg)
}

// lexer tokenizes source one rune at a time. It reports a SyntaxError only
// for text that forms no token at all (an unknown character, '=' without
// '>', '$' without an identifier); the parser decides what a missing or
// unexpected token means.
type lexer struct {
	source string
	runes  []rune
	index  int
}

func newLexer(source string) *lexer {
	return &lexer{source: source, runes: []rune(source)}
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *lexer) skipSpace() {
	for l.index < len(l.runes) && unicode.IsSpace(l.runes[l.index]) {
		l.index++
	}
}

// next scans and returns the next token, or a tokenEOF token once the input
// is exhausted.
func (l *lexer) next() (token, *SyntaxError) {
	l.skipSpace()
	//
	if l.index >= len(l.runes) {
		return token{kind: tokenEOF, span: Span{l.index, l.index}}, nil
	}
	//
	start := l.index
	r := l.runes[l.index]
	//
	switch {
	case r == '(':
		l.index++
		return token{tokenLParen, "(", Span{start, l.index}}, nil
	case r == ')':
		l.index++
		return token{tokenRParen, ")", Span{start, l.index}}, nil
	case r == '+' || r == '-' || r == '*' || r == '/':
		l.index++
		return token{tokenOperator, string(r), Span{start, l.index}}, nil
	case r == '=':
		if l.index+1 < len(l.runes) && l.runes[l.index+1] == '>' {
			l.index += 2
			return token{tokenArrow, "=>", Span{start, l.index}}, nil
		}
		//
		return token{}, &SyntaxError{l.source, Span{start, start + 1}, "expected '=>'"}
	case r == '$':
		l.index++
		//
		symStart := l.index
		for l.index < len(l.runes) && isSymbolRune(l.runes[l.index]) {
			l.index++
		}
		//
		if l.index == symStart {
			return token{}, &SyntaxError{l.source, Span{start, l.index}, "expected identifier after '$'"}
		}
		//
		return token{tokenVarIdent, string(l.runes[symStart:l.index]), Span{start, l.index}}, nil
	case isSymbolRune(r):
		for l.index < len(l.runes) && isSymbolRune(l.runes[l.index]) {
			l.index++
		}
		//
		return token{tokenIdent, string(l.runes[start:l.index]), Span{start, l.index}}, nil
	default:
		l.index++
		return token{}, &SyntaxError{l.source, Span{start, l.index}, fmt.Sprintf("unexpected character %q", r)}
	}
}
