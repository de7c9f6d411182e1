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

// Package serial is the e-graph's serialization collaborator: a portable
// on-disk form built on encoding/gob, the binary codec the teacher codebase
// itself reaches for when a value needs to cross a byte-stream boundary (see
// e.g. schema.RegisterType.GobEncode in the wider corpus). Unlike the core
// egraph package, this collaborator surfaces ordinary I/O and format errors
// to its callers rather than panicking - a malformed byte stream is an
// environmental failure, not a broken invariant.
package serial

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/go-egraph/egraph/pkg/egraph"
)

// graphDTO is the gob-serializable shape of egraph.ExportedGraph. It exists
// separately from ExportedGraph only because gob requires exported struct
// fields with stable names across versions of the encoder/decoder; keeping
// the wire type local to this package lets the two evolve independently.
type graphDTO struct {
	UnionFind []egraph.ClassId
	Terms     []termDTO
	Classes   []classDTO
}

type termDTO struct {
	LeafId   egraph.ClassId
	Name     string
	Children []egraph.ClassId
}

type classDTO struct {
	ClassId   egraph.ClassId
	TermIds   []egraph.ClassId
	ParentIds []egraph.ClassId
}

func toDTO(state egraph.ExportedGraph) graphDTO {
	dto := graphDTO{
		UnionFind: state.UnionFind,
		Terms:     make([]termDTO, len(state.Terms)),
		Classes:   make([]classDTO, len(state.Classes)),
	}
	//
	for i, t := range state.Terms {
		dto.Terms[i] = termDTO{t.LeafId, t.Name, t.Children}
	}
	//
	for i, c := range state.Classes {
		dto.Classes[i] = classDTO{c.ClassId, c.TermIds, c.ParentIds}
	}
	//
	return dto
}

func fromDTO(dto graphDTO) egraph.ExportedGraph {
	state := egraph.ExportedGraph{
		UnionFind: dto.UnionFind,
		Terms:     make([]egraph.ExportedTerm, len(dto.Terms)),
		Classes:   make([]egraph.ExportedClass, len(dto.Classes)),
	}
	//
	for i, t := range dto.Terms {
		state.Terms[i] = egraph.ExportedTerm{LeafId: t.LeafId, Name: t.Name, Children: t.Children}
	}
	//
	for i, c := range dto.Classes {
		state.Classes[i] = egraph.ExportedClass{ClassId: c.ClassId, TermIds: c.TermIds, ParentIds: c.ParentIds}
	}
	//
	return state
}

// Encode projects graph into the portable DTO form (spec section 6.3) and
// gob-encodes it.
func Encode(graph *egraph.Graph) ([]byte, error) {
	var buffer bytes.Buffer
	//
	encoder := gob.NewEncoder(&buffer)
	if err := encoder.Encode(toDTO(graph.Export())); err != nil {
		return nil, fmt.Errorf("serial: encode: %w", err)
	}
	//
	return buffer.Bytes(), nil
}

// Decode is the inverse of Encode: it gob-decodes data and rebuilds a Graph
// from the resulting DTO. The returned graph is not re-canonicalized; Find
// answers correctly immediately because the union-find parent array
// round-trips exactly (spec section 6.3).
func Decode(data []byte) (*egraph.Graph, error) {
	var dto graphDTO
	//
	decoder := gob.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&dto); err != nil {
		return nil, fmt.Errorf("serial: decode: %w", err)
	}
	//
	graph, err := egraph.Import(fromDTO(dto))
	if err != nil {
		return nil, fmt.Errorf("serial: decode: %w", err)
	}
	//
	return graph, nil
}
