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

// ExportedTerm is a plain-data projection of a Term, identified by the leaf
// id it was assigned when first added.
type ExportedTerm struct {
	LeafId   ClassId
	Name     string
	Children []ClassId
}

// ExportedClass is a plain-data projection of a class: its canonical id, the
// leaf ids of its member terms, and the leaf ids of its parent terms (each
// as recorded in the term cache, so every parent id also appears in Terms).
type ExportedClass struct {
	ClassId   ClassId
	TermIds   []ClassId
	ParentIds []ClassId
}

// ExportedGraph is the portable, on-disk-shaped projection of a Graph
// described in spec section 6.3. It holds no behaviour of its own; it exists
// so that a serialization collaborator (see pkg/egraph/serial) can turn a
// Graph into bytes and back without reaching into Graph's unexported fields.
type ExportedGraph struct {
	UnionFind []ClassId
	Terms     []ExportedTerm
	Classes   []ExportedClass
}

// Export projects g into its portable form. g should be quiescent (freshly
// rebuilt); Export does not itself rebuild, since doing so silently on every
// call would hide a caller bug (serializing a graph they forgot to rebuild).
func (g *Graph) Export() ExportedGraph {
	out := ExportedGraph{
		UnionFind: append([]ClassId(nil), g.uf.parents...),
	}
	//
	for _, c := range g.classes {
		ec := ExportedClass{ClassId: c.id}
		//
		for _, t := range c.terms {
			leafId, ok := g.cache.get(t)
			if !ok {
				panic(fmt.Sprintf("egraph: export: term %q in class %d missing from cache", t.Name, c.id))
			}
			//
			ec.TermIds = append(ec.TermIds, leafId)
			out.Terms = append(out.Terms, ExportedTerm{leafId, t.Name, append([]ClassId(nil), t.Children...)})
		}
		//
		// A parent term that became congruent with another term during
		// Rebuild keeps its own leaf id in the parent list but no longer has
		// a cache entry or a class slot of its own, so it is exported under
		// the leaf id the cache holds for its structure - the one its
		// surviving twin is exported under in Terms.
		for _, p := range c.parents {
			leafId, ok := g.cache.get(p.term)
			if !ok {
				panic(fmt.Sprintf("egraph: export: parent term %q of class %d missing from cache", p.term.Name, c.id))
			}
			//
			ec.ParentIds = append(ec.ParentIds, leafId)
		}
		//
		out.Classes = append(out.Classes, ec)
	}
	//
	return out
}

// Import rebuilds a Graph from its portable form. The returned graph is not
// re-canonicalized: Find answers correctly immediately, because the
// union-find parent array round-trips exactly and Export only ever runs
// against a quiescent graph.
func Import(state ExportedGraph) (*Graph, error) {
	g := &Graph{
		uf:      unionFind{parents: append([]ClassId(nil), state.UnionFind...)},
		classes: make(map[ClassId]*class, len(state.Classes)),
		cache:   newTermCache(uint(len(state.Terms))),
	}
	//
	termsByLeafId := make(map[ClassId]*Term, len(state.Terms))
	//
	for _, et := range state.Terms {
		term := &Term{Name: et.Name, Children: append([]ClassId(nil), et.Children...)}
		termsByLeafId[et.LeafId] = term
		g.cache.insert(term, et.LeafId)
	}
	//
	for _, ec := range state.Classes {
		c := &class{id: ec.ClassId}
		//
		for _, leafId := range ec.TermIds {
			term, ok := termsByLeafId[leafId]
			if !ok {
				return nil, fmt.Errorf("egraph: import: class %d references unknown term leaf id %d", ec.ClassId, leafId)
			}
			//
			c.terms = append(c.terms, term)
		}
		//
		for _, leafId := range ec.ParentIds {
			term, ok := termsByLeafId[leafId]
			if !ok {
				return nil, fmt.Errorf("egraph: import: class %d references unknown parent leaf id %d", ec.ClassId, leafId)
			}
			//
			c.parents = append(c.parents, termParent{term, leafId})
		}
		//
		g.classes[ec.ClassId] = c
	}
	//
	return g, nil
}
