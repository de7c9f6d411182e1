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
package lang

import (
	"fmt"

	"github.com/go-egraph/egraph/pkg/egraph"
)

// Grammar (spec section 6.4):
//
//	rule       := expr "=>" expr
//	expr       := value (operator value)*
//	value      := varident | ident | "(" expr ")"
//	operator   := "+" | "-" | "*" | "/"
//	ident      := alphanumeric+
//	varident   := "$" ident
//
// Expressions are left-associative, matching the original test language's
// LeftAssociative<Value, Operation> rule. Numeric-looking idents such as "0"
// or "10" are ordinary atom symbols, never evaluated - the toy language has
// no arithmetic semantics of its own (original_source/Tests.cpp uses "0" and
// "1" as plain term names for exactly this reason).

// nodeKind distinguishes the three shapes an AST node can take.
type nodeKind int

const (
	nodeAtom nodeKind = iota
	nodeVar
	nodeOp
)

type node struct {
	kind     nodeKind
	name     string
	children [2]*node
}

// parser is a straightforward recursive descent parser over the token
// stream produced by lexer; it holds one token of lookahead.
type parser struct {
	lex  *lexer
	peek token
	err  *SyntaxError
}

func newParser(source string) (*parser, *SyntaxError) {
	p := &parser{lex: newLexer(source)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	//
	return p, nil
}

func (p *parser) advance() *SyntaxError {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	//
	p.peek = tok
	//
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, *SyntaxError) {
	if p.peek.kind != kind {
		return token{}, &SyntaxError{p.lex.source, p.peek.span, fmt.Sprintf("expected %s", what)}
	}
	//
	tok := p.peek
	//
	return tok, p.advance()
}

// parseValue parses a varident, ident, or parenthesised sub-expression.
func (p *parser) parseValue() (*node, *SyntaxError) {
	switch p.peek.kind {
	case tokenVarIdent:
		name := p.peek.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		//
		return &node{kind: nodeVar, name: name}, nil
	case tokenIdent:
		name := p.peek.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		//
		return &node{kind: nodeAtom, name: name}, nil
	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		//
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		if _, err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		//
		return inner, nil
	default:
		return nil, &SyntaxError{p.lex.source, p.peek.span, "expected identifier, '$variable' or '('"}
	}
}

// parseExpr parses a left-associative chain of values joined by binary
// operators.
func (p *parser) parseExpr() (*node, *SyntaxError) {
	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	//
	for p.peek.kind == tokenOperator {
		op := p.peek.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		//
		right, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		//
		left = &node{kind: nodeOp, name: op, children: [2]*node{left, right}}
	}
	//
	return left, nil
}

func (p *parser) parseRule() (*node, *node, *SyntaxError) {
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	//
	if _, err := p.expect(tokenArrow, "'=>'"); err != nil {
		return nil, nil, err
	}
	//
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	//
	return lhs, rhs, nil
}

func (p *parser) expectEOF() *SyntaxError {
	if p.peek.kind != tokenEOF {
		return &SyntaxError{p.lex.source, p.peek.span, "unexpected trailing input"}
	}
	//
	return nil
}

// ParseExpression parses src as a concrete expression and adds it to g,
// returning the leaf id of the resulting term (mirrors the original test
// language's makeExpression). src must not contain pattern variables.
func ParseExpression(src string, g *egraph.Graph) (egraph.ClassId, error) {
	p, err := newParser(src)
	if err != nil {
		return 0, err
	}
	//
	n, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	//
	if err := p.expectEOF(); err != nil {
		return 0, err
	}
	//
	return nodeToClassId(n, g)
}

// ParsePattern parses src as a single pattern (a variable or a nested term
// using "$"-prefixed variables).
func ParsePattern(src string) (egraph.Pattern, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	//
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	//
	return nodeToPattern(n), nil
}

// ParseRule parses "lhs => rhs" into an egraph.Rule.
func ParseRule(src string) (egraph.Rule, error) {
	p, err := newParser(src)
	if err != nil {
		return egraph.Rule{}, err
	}
	//
	lhs, rhs, err := p.parseRule()
	if err != nil {
		return egraph.Rule{}, err
	}
	//
	if err := p.expectEOF(); err != nil {
		return egraph.Rule{}, err
	}
	//
	return egraph.Rule{LHS: nodeToPattern(lhs), RHS: nodeToPattern(rhs)}, nil
}

func nodeToClassId(n *node, g *egraph.Graph) (egraph.ClassId, error) {
	switch n.kind {
	case nodeAtom:
		return g.AddTerm(n.name), nil
	case nodeVar:
		return 0, fmt.Errorf("lang: pattern variable %q not permitted in a concrete expression", n.name)
	case nodeOp:
		left, err := nodeToClassId(n.children[0], g)
		if err != nil {
			return 0, err
		}
		//
		right, err := nodeToClassId(n.children[1], g)
		if err != nil {
			return 0, err
		}
		//
		return g.AddOp(n.name, []egraph.ClassId{left, right}), nil
	default:
		panic(fmt.Sprintf("lang: ast node of unrecognised kind %d", n.kind))
	}
}

func nodeToPattern(n *node) egraph.Pattern {
	switch n.kind {
	case nodeAtom:
		return egraph.PatternTerm{Name: n.name}
	case nodeVar:
		return egraph.Var(n.name)
	case nodeOp:
		return egraph.PatternTerm{
			Name: n.name,
			Args: []egraph.Pattern{nodeToPattern(n.children[0]), nodeToPattern(n.children[1])},
		}
	default:
		panic(fmt.Sprintf("lang: ast node of unrecognised kind %d", n.kind))
	}
}
