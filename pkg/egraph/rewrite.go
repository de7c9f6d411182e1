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

// unionPair is a recorded (a, b) class-id pair awaiting Unite in the apply
// phase of Rewrite.
type unionPair struct {
	a, b ClassId
}

// Rewrite applies rule once across the whole graph: every current class is
// matched against rule.LHS, every resulting binding instantiates both sides
// of the rule, and the two resulting class ids are recorded for union. Only
// once every class has been matched are the recorded pairs actually united
// and the graph rebuilt.
//
// This two-phase collect-then-apply structure, rather than uniting as soon
// as a match is found, exists so that matching is never disturbed by
// mutation partway through: collection snapshots the set of class ids
// up front, and instantiating a pattern (which can itself add new e-nodes)
// never changes which classes the remainder of the collect phase will visit.
//
// Rewrite is one iteration of saturation. Callers wanting a fixpoint must
// call Rewrite in a loop until it stops producing new unions; Rewrite itself
// enforces no iteration budget (spec section 4.5.2).
//
// Panics if rule is malformed (an RHS variable unbound by LHS) - callers
// should validate rules once, ahead of time, with ValidateRule rather than
// relying on this panic, since the check is identical but cheaper to run
// before any matching work begins.
func (g *Graph) Rewrite(rule Rule) {
	if err := ValidateRule(rule); err != nil {
		panic(err)
	}
	// Collect phase: snapshot the live class ids before any instantiation
	// can add new ones.
	classIds := make([]ClassId, 0, len(g.classes))
	for id := range g.classes {
		classIds = append(classIds, id)
	}
	//
	var pending []unionPair
	//
	for _, classId := range classIds {
		for _, bindings := range g.match(rule.LHS, classId, Bindings{}) {
			a := g.instantiate(rule.LHS, bindings)
			b := g.instantiate(rule.RHS, bindings)
			pending = append(pending, unionPair{a, b})
		}
	}
	// Apply phase.
	for _, pair := range pending {
		g.Unite(pair.a, pair.b)
	}
	//
	g.Rebuild()
}
