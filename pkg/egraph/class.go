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

import (
	"cmp"

	"github.com/go-egraph/egraph/pkg/util/collection/set"
)

// termParent is a back-edge: a parent term that references some class as one
// of its children, together with that parent term's own leaf id. The same
// shape doubles as a dirty-worklist entry (spec's "term whose children may
// now be non-canonical"), since both are simply a term paired with the leaf
// id under which it was originally inserted into the term cache.
type termParent struct {
	term   *Term
	leafId ClassId
}

// Cmp gives termParent a total order for Class.canonicalize's dedup pass.
func (p termParent) Cmp(other termParent) int {
	if c := p.term.Cmp(other.term); c != 0 {
		return c
	}
	//
	return cmp.Compare(p.leafId, other.leafId)
}

// class is an equivalence class: a set of e-nodes asserted equivalent, plus
// back-edges to every term that references this class as a child. Identified
// externally by a ClassId; absorbed classes are removed from Graph.classes
// but their id remains a valid (non-root) entry in the union-find forest
// forever.
type class struct {
	id      ClassId
	terms   []*Term
	parents []termParent
}

func newClass(id ClassId, term *Term) *class {
	return &class{id: id, terms: []*Term{term}}
}

// addParent records that term (whose own leaf id is parentLeafId) references
// this class as one of its children. Duplicates are tolerated here and
// removed later by canonicalize.
func (c *class) addParent(term *Term, parentLeafId ClassId) {
	c.parents = append(c.parents, termParent{term, parentLeafId})
}

// absorb merges other's terms and parents into c. other must not be c.
func (c *class) absorb(other *class) {
	if c == other {
		panic("class cannot absorb itself")
	}
	//
	c.terms = append(c.terms, other.terms...)
	c.parents = append(c.parents, other.parents...)
}

// canonicalize rewrites every member term's children to canonical ids, then
// sorts and deduplicates both the terms and parents vectors. Terms are
// deduplicated by structural key; parent entries by the parent term's
// structural key together with its leaf id, so two structurally equal parent
// terms recorded under different leaf ids both stay. Parent deduplication is not required for correctness - matching
// enumerates class.terms, never class.parents - but left undeduplicated it
// grows proportional to rewrite activity, so spec's open question on this
// point is resolved in favour of deduplicating.
func (c *class) canonicalize(uf *unionFind) {
	for _, t := range c.terms {
		t.Canonicalize(uf)
	}
	//
	c.terms = set.SortDedup(c.terms)
	c.parents = set.SortDedup(c.parents)
}

func (c *class) numParents() int {
	return len(c.parents)
}
