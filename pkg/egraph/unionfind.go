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

// ClassId identifies an equivalence class. Two flavours exist: a leaf id,
// assigned once when a term is first added and never reassigned; and a
// canonical id, the current root of that leaf's union-find tree. Clients
// hold leaf ids and must canonicalize through Find before comparing two
// ids for equivalence.
type ClassId = int32

// unionFind is a disjoint-set forest over ClassIds, with path compression
// on the mutating Find. It tracks no rank or size information of its own;
// the e-graph decides merge direction externally (see Graph.Unite).
type unionFind struct {
	parents []ClassId
}

// addSet appends a new singleton set whose parent is itself, returning its
// id.
func (uf *unionFind) addSet() ClassId {
	id := ClassId(len(uf.parents))
	uf.parents = append(uf.parents, id)
	//
	return id
}

// size returns the number of ids ever allocated, including non-root ids of
// classes absorbed by a prior Unite.
func (uf *unionFind) size() int {
	return len(uf.parents)
}

// find walks parent links to a fixed point without mutating the forest.
func (uf *unionFind) find(id ClassId) ClassId {
	for id != uf.parents[id] {
		id = uf.parents[id]
	}
	//
	return id
}

// findCompress walks parent links to a fixed point, halving the path as it
// goes: each step rewrites parents[id] to its grandparent and jumps there,
// so every other node on the path is relinked. This is
// the mutating variant used internally once we hold exclusive access.
func (uf *unionFind) findCompress(id ClassId) ClassId {
	for id != uf.parents[id] {
		grandparent := uf.parents[uf.parents[id]]
		uf.parents[id] = grandparent
		id = grandparent
	}
	//
	return id
}

// unite roots root2's tree under root1. The caller guarantees both
// arguments are already roots and are distinct; unionFind performs no
// validation of its own.
func (uf *unionFind) unite(root1, root2 ClassId) ClassId {
	uf.parents[root2] = root1
	return root1
}
