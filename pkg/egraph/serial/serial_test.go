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
package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-egraph/egraph/pkg/egraph"
)

func TestEncodeDecode_RoundTripsFind(t *testing.T) {
	g := egraph.NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	fa := g.AddOp("f", []egraph.ClassId{a})
	fb := g.AddOp("f", []egraph.ClassId{b})

	g.Unite(a, b)
	g.Rebuild()

	data, err := Encode(g)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	g2, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, g.NumClasses(), g2.NumClasses())
	assert.Equal(t, g2.Find(fa), g2.Find(fb), "congruence should survive the round trip")
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a gob stream"))
	assert.Error(t, err)
}

func TestEncodeDecode_RoundTripsUnderCommutativity(t *testing.T) {
	g := egraph.NewGraph()
	ten := g.AddTerm("10")
	twenty := g.AddTerm("20")
	thirty := g.AddTerm("30")
	forty := g.AddTerm("40")
	fifty := g.AddTerm("50")

	// (10+((20+30)+40))+50
	twentyThirty := g.AddOp("+", []egraph.ClassId{twenty, thirty})
	inner1 := g.AddOp("+", []egraph.ClassId{twentyThirty, forty})
	sum1 := g.AddOp("+", []egraph.ClassId{ten, inner1})
	exprA := g.AddOp("+", []egraph.ClassId{sum1, fifty})

	// 50+((40+(30+20))+10)
	thirtyTwenty := g.AddOp("+", []egraph.ClassId{thirty, twenty})
	fortyPlus := g.AddOp("+", []egraph.ClassId{forty, thirtyTwenty})
	inner2 := g.AddOp("+", []egraph.ClassId{fortyPlus, ten})
	exprB := g.AddOp("+", []egraph.ClassId{fifty, inner2})

	rule := egraph.Rule{
		LHS: egraph.PatternTerm{Name: "+", Args: []egraph.Pattern{egraph.Var("x"), egraph.Var("y")}},
		RHS: egraph.PatternTerm{Name: "+", Args: []egraph.Pattern{egraph.Var("y"), egraph.Var("x")}},
	}

	g.Rewrite(rule)

	require.Equal(t, g.Find(exprA), g.Find(exprB), "expressions should already be canonically equal before serialization")
	wantId := g.Find(exprA)

	data, err := Encode(g)
	require.NoError(t, err)

	g2, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, g2.Find(exprA), g2.Find(exprB), "expressions should remain canonically equal after the round trip")
	assert.Equal(t, wantId, g2.Find(exprA), "the restored canonical id should match the pre-serialization canonical id")
}

func TestEncodeDecode_PreservesClassCount(t *testing.T) {
	g := egraph.NewGraph()
	for _, name := range []string{"a", "b", "c"} {
		g.AddTerm(name)
	}

	data, err := Encode(g)
	require.NoError(t, err)

	g2, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 3, g2.NumClasses())
}
