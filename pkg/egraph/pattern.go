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
package egraph

import "fmt"

// Pattern is either a Var, matching any class, or a PatternTerm, matching a
// specific operator applied to sub-patterns. There are no other kinds; any
// function below which switches on Pattern treats an unrecognised kind as an
// exhaustiveness failure and panics, per spec section 7.
type Pattern interface {
	isPattern()
}

// Var is a pattern variable: a symbol standing for any class. Multiple
// occurrences of the same Var within one rule must bind to the same
// canonical class (a non-linear pattern).
type Var string

func (Var) isPattern() {}

// PatternTerm matches an e-node with the given name and, pairwise, the given
// argument patterns against its children.
type PatternTerm struct {
	Name string
	Args []Pattern
}

func (PatternTerm) isPattern() {}

// Rule pairs a left-hand and right-hand pattern. Non-linear variables are
// allowed on either side; every variable appearing in RHS must also appear
// in LHS; see ValidateRule.
type Rule struct {
	LHS Pattern
	RHS Pattern
}

// Bindings maps a pattern variable to the canonical class id it is bound to.
// Bindings are value-typed: Extend never mutates the receiver, so that two
// branches of a Cartesian-product match can diverge from a shared prefix
// without one leaking into the other.
type Bindings map[Var]ClassId

// Extend returns a new Bindings containing everything in b plus v -> id.
func (b Bindings) Extend(v Var, id ClassId) Bindings {
	next := make(Bindings, len(b)+1)
	//
	for k, id := range b {
		next[k] = id
	}
	//
	next[v] = id
	//
	return next
}

// collectVars appends every Var reachable in pattern to out.
func collectVars(pattern Pattern, out map[Var]struct{}) {
	switch p := pattern.(type) {
	case Var:
		out[p] = struct{}{}
	case PatternTerm:
		for _, arg := range p.Args {
			collectVars(arg, out)
		}
	default:
		panic(fmt.Sprintf("egraph: pattern of unrecognised kind %T", pattern))
	}
}

// ValidateRule checks that every variable appearing in rule.RHS also appears
// in rule.LHS. A rule failing this check is malformed - instantiating its
// RHS would hit an unbound variable - and this is reported eagerly, before
// any matching is attempted, rather than left to fail lazily per binding.
func ValidateRule(rule Rule) error {
	lhsVars := make(map[Var]struct{})
	rhsVars := make(map[Var]struct{})
	collectVars(rule.LHS, lhsVars)
	collectVars(rule.RHS, rhsVars)
	//
	for v := range rhsVars {
		if _, ok := lhsVars[v]; !ok {
			return fmt.Errorf("egraph: malformed rule: rhs variable %q does not appear in lhs", v)
		}
	}
	//
	return nil
}

// match runs e-matching of pattern against the class rooted at classId,
// extending bindings along every successful branch. It returns one Bindings
// per successful match; an empty (nil) result means no match.
func (g *Graph) match(pattern Pattern, classId ClassId, bindings Bindings) []Bindings {
	switch p := pattern.(type) {
	case Var:
		return g.matchVar(p, classId, bindings)
	case PatternTerm:
		return g.matchTerm(p, classId, bindings)
	default:
		panic(fmt.Sprintf("egraph: pattern of unrecognised kind %T", pattern))
	}
}

func (g *Graph) matchVar(v Var, classId ClassId, bindings Bindings) []Bindings {
	root := g.Find(classId)
	//
	if bound, ok := bindings[v]; ok {
		if g.Find(bound) == root {
			return []Bindings{bindings}
		}
		//
		return nil
	}
	//
	return []Bindings{bindings.Extend(v, root)}
}

func (g *Graph) matchTerm(p PatternTerm, classId ClassId, bindings Bindings) []Bindings {
	root := g.Find(classId)
	cls := g.classes[root]
	//
	var results []Bindings
	//
	for _, t := range cls.terms {
		if t.Name != p.Name || len(t.Children) != len(p.Args) {
			continue
		}
		//
		results = append(results, g.matchArgs(p.Args, t.Children, bindings)...)
	}
	//
	return results
}

// matchArgs matches a sequence of argument patterns against a sequence of
// child class ids pairwise, producing the Cartesian product of per-argument
// results (spec section 4.5.1).
func (g *Graph) matchArgs(args []Pattern, children []ClassId, bindings Bindings) []Bindings {
	if len(args) == 0 {
		return []Bindings{bindings}
	}
	//
	var results []Bindings
	//
	for _, b := range g.match(args[0], children[0], bindings) {
		results = append(results, g.matchArgs(args[1:], children[1:], b)...)
	}
	//
	return results
}

// instantiate materializes pattern under bindings, adding whatever e-nodes
// are not already present via the ordinary hash-consing Add path, and
// returns the resulting class id. An unbound variable is a malformed rule
// and panics - ValidateRule exists precisely so this should never trigger
// for a rule that passed validation.
func (g *Graph) instantiate(pattern Pattern, bindings Bindings) ClassId {
	switch p := pattern.(type) {
	case Var:
		id, ok := bindings[p]
		if !ok {
			panic(fmt.Sprintf("egraph: instantiate: unbound pattern variable %q", p))
		}
		//
		return id
	case PatternTerm:
		children := make([]ClassId, len(p.Args))
		for i, arg := range p.Args {
			children[i] = g.instantiate(arg, bindings)
		}
		//
		if len(children) == 0 {
			return g.AddTerm(p.Name)
		}
		//
		return g.AddOp(p.Name, children)
	default:
		panic(fmt.Sprintf("egraph: pattern of unrecognised kind %T", pattern))
	}
}
