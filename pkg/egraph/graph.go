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

// Package egraph implements an equality saturation engine: an e-graph
// (hash-consed e-nodes over equivalence classes) plus a rewrite driver that
// grows the represented equivalence relation by applying rules until a
// fixpoint or caller-imposed budget is reached.
//
// The package is single-threaded and mutation-exclusive (see Graph's doc
// comment); it performs no internal concurrency, I/O, or logging. Misuse -
// an unknown ClassId, an unbound pattern variable, a malformed rule - is
// treated as a programming error and reported via panic rather than a
// returned error, since a corrupted e-graph has no partial-success
// semantics worth recovering from.
package egraph

import "fmt"

// Graph is an e-graph: a hash-consed collection of terms grouped into
// equivalence classes, with a union-find forest tracking which classes have
// been merged.
//
// All mutating methods (AddTerm, AddOp, Unite, Rewrite, Rebuild) require
// exclusive access to the Graph; Find and any read-only traversal require
// only that no mutation is concurrently in flight. Graph provides no
// synchronization of its own - see the package doc comment.
//
// Between batched calls to Unite, callers must invoke Rebuild before relying
// on Find for an equivalence query: a non-rebuilt graph may report false
// inequality for classes that were merged but not yet propagated.
type Graph struct {
	uf      unionFind
	classes map[ClassId]*class
	cache   *termCache
	dirty   []termParent
}

// NewGraph constructs an empty e-graph.
func NewGraph() *Graph {
	return &Graph{
		classes: make(map[ClassId]*class),
		cache:   newTermCache(64),
	}
}

// NumClasses returns the number of live equivalence classes.
func (g *Graph) NumClasses() int {
	return len(g.classes)
}

// Find returns the canonical id of the class currently containing id. id may
// be a leaf id or an already-canonical id; either way the result is a live
// class id.
func (g *Graph) Find(id ClassId) ClassId {
	return g.uf.find(id)
}

// AddTerm hash-conses an atom and returns its leaf id. Infallible: atoms have
// no children to validate.
func (g *Graph) AddTerm(name string) ClassId {
	return g.add(NewTerm(name))
}

// AddOp hash-conses an operator term over the given ordered children and
// returns its leaf id. Every id in children must, after Find, name a
// currently live class; violating this is a programming error and panics.
func (g *Graph) AddOp(name string, children []ClassId) ClassId {
	return g.add(NewOperation(name, children))
}

// add implements the hash-consing contract of spec section 4.4.1: an
// identical term (by structural key, as given - not re-canonicalized here)
// always resolves to the same id without mutating the graph. Otherwise a
// fresh class is allocated, back-edges are installed on every child class,
// and the term is queued for the next Rebuild.
func (g *Graph) add(term *Term) ClassId {
	if id, ok := g.cache.get(term); ok {
		return id
	}
	//
	newId := g.uf.addSet()
	//
	for _, child := range term.Children {
		root := g.uf.find(child)
		//
		childClass, ok := g.classes[root]
		if !ok {
			panic(fmt.Sprintf("egraph: add %q: child class %d does not exist", term.Name, child))
		}
		//
		childClass.addParent(term, newId)
	}
	//
	g.classes[newId] = newClass(newId, term)
	g.cache.insert(term, newId)
	g.dirty = append(g.dirty, termParent{term, newId})
	//
	return newId
}

// Unite merges the classes containing a and b, if they are not already the
// same class. The keeper (root1) is the class with more parents - an
// amortization heuristic that keeps the rebuild work triggered by this
// merge small, and which also produces stable ids for heavily-referenced
// classes, since ties are broken in favour of a's class. Returns false if a
// and b were already equivalent.
func (g *Graph) Unite(a, b ClassId) bool {
	root1 := g.uf.find(a)
	root2 := g.uf.find(b)
	//
	if root1 == root2 {
		return false
	}
	//
	class1 := g.classes[root1]
	class2 := g.classes[root2]
	//
	if class1.numParents() < class2.numParents() {
		root1, root2 = root2, root1
		class1, class2 = class2, class1
	}
	//
	g.uf.unite(root1, root2)
	g.dirty = append(g.dirty, class2.parents...)
	class1.absorb(class2)
	delete(g.classes, root2)
	//
	return true
}

// Rebuild restores the congruence and canonicalization invariants after a
// batch of Unite calls.
//
// Phase A repairs the term cache and propagates newly-discovered
// congruences: each dirty term is evicted from the cache by identity (not
// by its current structural key, which is about to change), has its
// children canonicalized in place, and is then looked up again. A hit means
// two previously-distinct terms have become congruent, triggering a further
// Unite (which is why this is a worklist, not a single pass); a miss
// reinserts the term under its now-canonical key. Evicting by identity
// rather than by structural key is the policy spec section 9 calls for:
// mixing identity-based removal with structural-key-based removal would
// corrupt the cache, since a term looked up by its stale (pre-mutation) key
// after being mutated in place would simply fail to find itself.
//
// Phase B re-canonicalizes every live class's member terms and
// deduplicates its terms and parents vectors.
//
// Each congruence-induced Unite in Phase A strictly reduces the number of
// live classes, so the loop terminates in finitely many steps.
func (g *Graph) Rebuild() {
	for len(g.dirty) > 0 {
		last := len(g.dirty) - 1
		entry := g.dirty[last]
		g.dirty = g.dirty[:last]
		//
		g.cache.removeIdentity(entry.term)
		entry.term.Canonicalize(&g.uf)
		//
		if otherId, ok := g.cache.get(entry.term); ok {
			g.Unite(otherId, entry.leafId)
		} else {
			g.cache.insert(entry.term, entry.leafId)
		}
	}
	//
	for _, c := range g.classes {
		c.canonicalize(&g.uf)
	}
}
