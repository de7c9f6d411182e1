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
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-egraph/egraph/pkg/egraph"
	"github.com/go-egraph/egraph/pkg/lang"
)

// script is a parsed driver file: a set of named expressions, a set of
// rewrite rules, and a set of equivalence checks to report once saturation
// finishes. This outer, line-oriented directive format is this package's
// own invention (spec section 6.4 only specifies the inner expression and
// rule grammar, which pkg/lang already parses); it exists purely to give
// the CLI something to read, in the same spirit as the corpus driving its
// compiler passes from a lisp constraints file.
type script struct {
	exprNames []string
	exprs     map[string]string
	rules     []egraph.Rule
	checks    [][2]string
}

// loadScript reads and parses a driver file at path. Recognised directives,
// one per non-blank, non-comment line:
//
//	rule NAME: LHS => RHS
//	expr NAME: EXPRESSION
//	check NAME NAME
//
// Lines beginning with "#" (after leading whitespace) are comments.
func loadScript(path string) (*script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cmd: load script: %w", err)
	}
	defer file.Close()

	s := &script{exprs: make(map[string]string)}
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := s.parseLine(line); err != nil {
			return nil, fmt.Errorf("cmd: load script: line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cmd: load script: %w", err)
	}

	return s, nil
}

func (s *script) parseLine(line string) error {
	switch {
	case strings.HasPrefix(line, "rule "):
		name, body, err := splitDirective(line, "rule ")
		if err != nil {
			return err
		}

		rule, err := lang.ParseRule(body)
		if err != nil {
			return fmt.Errorf("rule %q: %w", name, err)
		}

		s.rules = append(s.rules, rule)

		return nil
	case strings.HasPrefix(line, "expr "):
		name, body, err := splitDirective(line, "expr ")
		if err != nil {
			return err
		}

		if _, exists := s.exprs[name]; exists {
			return fmt.Errorf("expr %q declared twice", name)
		}

		s.exprNames = append(s.exprNames, name)
		s.exprs[name] = body

		return nil
	case strings.HasPrefix(line, "check "):
		fields := strings.Fields(strings.TrimPrefix(line, "check "))
		if len(fields) != 2 {
			return fmt.Errorf("check directive needs exactly two expr names, got %d", len(fields))
		}

		s.checks = append(s.checks, [2]string{fields[0], fields[1]})

		return nil
	default:
		return fmt.Errorf("unrecognised directive: %q", line)
	}
}

// splitDirective splits "NAME: BODY" (after stripping the leading keyword
// and its trailing space) into its name and body parts.
func splitDirective(line, keyword string) (name, body string, err error) {
	rest := strings.TrimPrefix(line, keyword)

	idx := strings.Index(rest, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("expected 'NAME: ...' after %q", strings.TrimSpace(keyword))
	}

	name = strings.TrimSpace(rest[:idx])
	body = strings.TrimSpace(rest[idx+1:])

	if name == "" {
		return "", "", fmt.Errorf("expected a name before ':'")
	}

	return name, body, nil
}

// build adds every declared expression to a fresh graph, returning the
// graph and each expression's leaf id keyed by name.
func (s *script) build() (*egraph.Graph, map[string]egraph.ClassId, error) {
	g := egraph.NewGraph()
	ids := make(map[string]egraph.ClassId, len(s.exprNames))

	for _, name := range s.exprNames {
		id, err := lang.ParseExpression(s.exprs[name], g)
		if err != nil {
			return nil, nil, fmt.Errorf("expr %q: %w", name, err)
		}

		ids[name] = id
	}

	return g, ids, nil
}
