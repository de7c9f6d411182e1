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
	"hash/fnv"
	"slices"
	"strings"
)

// Term is an e-node: an operator symbol plus an ordered sequence of child
// class ids. For atoms (leaves), Children is empty. Terms are immutable by
// contract, with one exception: Canonicalize rewrites Children in place to
// the current canonical ids, which is how Graph.Rebuild restores the
// canonicalization invariant after a batch of unions.
//
// Terms are shared by reference between the term cache, the class they
// belong to, and the parent lists of every class they reference as a child.
// At any point where the graph's invariants hold, the term cache and the
// class member lists hold exactly one Term object per (name, children)
// tuple; a parent list may still reference a structurally equal duplicate
// that was folded into another term by Rebuild.
type Term struct {
	// Name identifies the operator or atom symbol.
	Name string
	// Children holds the operand class ids, in order.
	Children []ClassId
}

// NewTerm constructs an atom with no children.
func NewTerm(name string) *Term {
	return &Term{Name: name}
}

// NewOperation constructs an operator term over the given ordered children.
// The children slice is cloned so the caller's copy is never aliased into the
// graph.
func NewOperation(name string, children []ClassId) *Term {
	return &Term{Name: name, Children: slices.Clone(children)}
}

// Equals implements hash.Hasher. Two terms are structurally equal iff their
// names match and their children sequences match element-wise; pointer
// identity is accepted as a fast path.
func (t *Term) Equals(other *Term) bool {
	if t == other {
		return true
	}
	//
	return t.Name == other.Name && slices.Equal(t.Children, other.Children)
}

// Hash implements hash.Hasher. It deliberately covers only Name: the term
// cache's hash must stay stable while Canonicalize mutates Children in
// place, and collisions between operators sharing a name are resolved by
// Equals rather than by widening the hash.
func (t *Term) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Name))
	//
	return h.Sum64()
}

// Cmp gives terms a total order, used by Class.canonicalize to sort and
// deduplicate its terms and parent edges deterministically.
func (t *Term) Cmp(other *Term) int {
	if t == other {
		return 0
	}
	if c := strings.Compare(t.Name, other.Name); c != 0 {
		return c
	}
	//
	return slices.Compare(t.Children, other.Children)
}

// Canonicalize rewrites every child id to its current canonical id under uf.
// Idempotent once the graph is quiescent.
func (t *Term) Canonicalize(uf *unionFind) {
	for i, c := range t.Children {
		t.Children[i] = uf.findCompress(c)
	}
}
