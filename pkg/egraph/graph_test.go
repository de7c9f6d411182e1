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

import "testing"

// ===================================================================
// Basic construction
// ===================================================================

func Test_AddTerm_01(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")

	if g.NumClasses() != 1 {
		t.Fatalf("expected 1 class, got %d", g.NumClasses())
	}

	if g.Find(a) != a {
		t.Fatalf("fresh class should be its own representative")
	}
}

func Test_AddTerm_Idempotent_02(t *testing.T) {
	g := NewGraph()
	a1 := g.AddTerm("a")
	a2 := g.AddTerm("a")

	if a1 != a2 {
		t.Fatalf("adding the same leaf term twice should return the same class, got %d and %d", a1, a2)
	}

	if g.NumClasses() != 1 {
		t.Fatalf("expected 1 class, got %d", g.NumClasses())
	}
}

func Test_AddOp_Idempotent_03(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")

	t1 := g.AddOp("f", []ClassId{a, b})
	t2 := g.AddOp("f", []ClassId{a, b})

	if t1 != t2 {
		t.Fatalf("adding the same operation twice should hash-cons to the same class, got %d and %d", t1, t2)
	}
}

func Test_AddOp_MissingChild_Panics_04(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when adding a term referencing a non-existent child class")
		}
	}()

	g := NewGraph()
	g.AddOp("f", []ClassId{42})
}

// ===================================================================
// Unite / Find
// ===================================================================

func Test_Unite_MergesClasses_05(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")

	if !g.Unite(a, b) {
		t.Fatalf("uniting two distinct classes should report a change")
	}

	if g.Find(a) != g.Find(b) {
		t.Fatalf("a and b should share a representative after Unite")
	}

	if g.Unite(a, b) {
		t.Fatalf("uniting two already-equal classes should report no change")
	}
}

func Test_Unite_PreservesMoreParents_06(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	// Give a two parents and b none, so a's class should survive as the
	// representative regardless of argument order.
	g.AddOp("f", []ClassId{a})
	g.AddOp("g", []ClassId{a})

	g.Unite(b, a)

	if g.Find(a) != a {
		t.Fatalf("the class with more parents should keep its id, got representative %d", g.Find(a))
	}
}

// ===================================================================
// Congruence closure
// ===================================================================

func Test_Rebuild_PropagatesCongruence_07(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	fa := g.AddOp("f", []ClassId{a})
	fb := g.AddOp("f", []ClassId{b})

	g.Unite(a, b)
	g.Rebuild()

	if g.Find(fa) != g.Find(fb) {
		t.Fatalf("f(a) and f(b) should become congruent once a and b are united")
	}
}

func Test_Rebuild_PropagatesTransitively_08(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	c := g.AddTerm("c")
	fa := g.AddOp("f", []ClassId{a})
	ffb := g.AddOp("f", []ClassId{g.AddOp("f", []ClassId{b})})
	fc := g.AddOp("f", []ClassId{c})

	g.Unite(a, g.AddOp("f", []ClassId{b}))
	g.Unite(b, c)
	g.Rebuild()

	if g.Find(fa) != g.Find(ffb) {
		t.Fatalf("f(a) and f(f(b)) should be congruent once a = f(b)")
	}

	_ = fc
}

func Test_Rebuild_NoSpuriousMerges_09(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	fa := g.AddOp("f", []ClassId{a})
	fb := g.AddOp("f", []ClassId{b})

	g.Rebuild()

	if g.Find(fa) == g.Find(fb) {
		t.Fatalf("f(a) and f(b) should stay distinct while a and b are distinct")
	}
}

// ===================================================================
// Rewrite / saturation
// ===================================================================

func Test_Rewrite_AppliesRule_10(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	zero := g.AddTerm("0")
	plus := g.AddOp("+", []ClassId{a, zero})

	rule := Rule{
		LHS: PatternTerm{Name: "+", Args: []Pattern{Var("x"), PatternTerm{Name: "0"}}},
		RHS: Var("x"),
	}

	g.Rewrite(rule)

	if g.Find(plus) != g.Find(a) {
		t.Fatalf("expected a+0 to be rewritten to a")
	}
}

func Test_Rewrite_ToFixpoint_11(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	zero := g.AddTerm("0")
	nested := g.AddOp("+", []ClassId{g.AddOp("+", []ClassId{a, zero}), zero})

	rule := Rule{
		LHS: PatternTerm{Name: "+", Args: []Pattern{Var("x"), PatternTerm{Name: "0"}}},
		RHS: Var("x"),
	}

	for i := 0; i < 5; i++ {
		g.Rewrite(rule)
	}

	if g.Find(nested) != g.Find(a) {
		t.Fatalf("expected (a+0)+0 to reduce to a after repeated rewriting")
	}
}

func Test_Rewrite_RejectsUnboundRHSVar_12(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a rule whose RHS introduces an unbound variable")
		}
	}()

	g := NewGraph()
	g.AddTerm("a")

	rule := Rule{LHS: PatternTerm{Name: "a"}, RHS: Var("y")}
	g.Rewrite(rule)
}

// ===================================================================
// Export / Import round trip
// ===================================================================

func Test_ExportImport_PreservesFind_13(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	fa := g.AddOp("f", []ClassId{a})
	fb := g.AddOp("f", []ClassId{b})

	g.Unite(a, b)
	g.Rebuild()

	state := g.Export()

	g2, err := Import(state)
	if err != nil {
		t.Fatalf("unexpected import error: %v", err)
	}

	if g2.Find(fa) != g2.Find(fb) {
		t.Fatalf("congruence should survive an export/import round trip")
	}

	if g2.NumClasses() != g.NumClasses() {
		t.Fatalf("expected %d classes after import, got %d", g.NumClasses(), g2.NumClasses())
	}
}

func Test_Import_RejectsDanglingReference_14(t *testing.T) {
	state := ExportedGraph{
		UnionFind: []ClassId{0},
		Classes:   []ExportedClass{{ClassId: 0, TermIds: []ClassId{99}}},
	}

	if _, err := Import(state); err == nil {
		t.Fatalf("expected an error importing a class that references an unknown term")
	}
}

// ===================================================================
// Concrete acceptance scenarios
//
// Each of these reproduces one worked example to the letter: the exact
// terms built, the exact rule(s) applied, and the exact number of
// applications, rather than a paraphrase of the same shape.
// ===================================================================

func Test_CongruenceBySubstitution_15(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	x := g.AddTerm("x")
	y := g.AddTerm("y")
	ax := g.AddOp("*", []ClassId{a, x})
	ay := g.AddOp("*", []ClassId{a, y})

	g.Unite(x, y)
	g.Rebuild()

	if g.NumClasses() != 3 {
		t.Fatalf("expected exactly 3 live classes, got %d", g.NumClasses())
	}

	if g.Find(x) != g.Find(y) {
		t.Fatalf("expected find(x) == find(y)")
	}

	if g.Find(ax) != g.Find(ay) {
		t.Fatalf("expected find(a*x) == find(a*y) once x and y are unified")
	}

	if g.Find(ax) == g.Find(a) {
		t.Fatalf("expected find(a*x) != find(a)")
	}
}

func Test_IdentityRuleSaturation_ThreeWayMerge_16(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	c := g.AddTerm("c")
	one := g.AddTerm("1")

	ab := g.AddOp("*", []ClassId{a, b})
	bPlusC := g.AddOp("+", []ClassId{b, c})

	// ((a*b)*(b+c))
	expr1 := g.AddOp("*", []ClassId{ab, bPlusC})
	// ((a*b)*((b+c)*1))
	bPlusC1 := g.AddOp("*", []ClassId{bPlusC, one})
	expr2 := g.AddOp("*", []ClassId{ab, bPlusC1})
	// (((a*b)*(b+c))*1)*1
	expr1Times1 := g.AddOp("*", []ClassId{expr1, one})
	expr3 := g.AddOp("*", []ClassId{expr1Times1, one})

	rule := Rule{
		LHS: PatternTerm{Name: "*", Args: []Pattern{Var("x"), PatternTerm{Name: "1"}}},
		RHS: Var("x"),
	}

	g.Rewrite(rule)

	if g.Find(expr1) != g.Find(expr2) || g.Find(expr1) != g.Find(expr3) {
		t.Fatalf("expected all three expressions to share one canonical id after one application of $x*1 -> $x")
	}
}

func Test_AssociativityRequiresTwoIterations_17(t *testing.T) {
	g := NewGraph()
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	c := g.AddTerm("c")
	d := g.AddTerm("d")

	// ((a+b)+c)+d
	ab := g.AddOp("+", []ClassId{a, b})
	abc := g.AddOp("+", []ClassId{ab, c})
	left := g.AddOp("+", []ClassId{abc, d})

	// a+(b+(c+d))
	cd := g.AddOp("+", []ClassId{c, d})
	bcd := g.AddOp("+", []ClassId{b, cd})
	right := g.AddOp("+", []ClassId{a, bcd})

	rule := Rule{
		LHS: PatternTerm{Name: "+", Args: []Pattern{
			PatternTerm{Name: "+", Args: []Pattern{Var("x"), Var("y")}},
			Var("z"),
		}},
		RHS: PatternTerm{Name: "+", Args: []Pattern{
			Var("x"),
			PatternTerm{Name: "+", Args: []Pattern{Var("y"), Var("z")}},
		}},
	}

	g.Rewrite(rule)

	if g.Find(left) == g.Find(right) {
		t.Fatalf("((a+b)+c)+d and a+(b+(c+d)) should not yet be equal after a single application of the associativity rule")
	}

	g.Rewrite(rule)

	if g.Find(left) != g.Find(right) {
		t.Fatalf("((a+b)+c)+d and a+(b+(c+d)) should be equal after a second application of the associativity rule")
	}
}

func Test_ZeroRuleWithNestedZero_18(t *testing.T) {
	g := NewGraph()
	zero := g.AddTerm("0")
	a := g.AddTerm("a")
	b := g.AddTerm("b")
	c := g.AddTerm("c")

	aMinusB := g.AddOp("-", []ClassId{a, b})
	bPlusC := g.AddOp("+", []ClassId{b, c})
	left := g.AddOp("*", []ClassId{aMinusB, zero})
	right := g.AddOp("*", []ClassId{bPlusC, zero})
	outer := g.AddOp("*", []ClassId{left, right})

	rule := Rule{
		LHS: PatternTerm{Name: "*", Args: []Pattern{Var("x"), PatternTerm{Name: "0"}}},
		RHS: PatternTerm{Name: "0"},
	}

	g.Rewrite(rule)
	g.Rewrite(rule)

	if g.Find(outer) != g.Find(zero) {
		t.Fatalf("expected ((a-b)*0)*((b+c)*0) to reduce to 0 after two applications of $x*0 -> 0")
	}
}

func Test_DistributivityMergesThreeForms_19(t *testing.T) {
	g := NewGraph()
	ten := g.AddTerm("10")
	twenty := g.AddTerm("20")
	thirty := g.AddTerm("30")
	forty := g.AddTerm("40")

	// (10+((20+20)*30))*40
	twentyPlusTwenty := g.AddOp("+", []ClassId{twenty, twenty})
	innerA := g.AddOp("*", []ClassId{twentyPlusTwenty, thirty})
	sumA := g.AddOp("+", []ClassId{ten, innerA})
	expr1 := g.AddOp("*", []ClassId{sumA, forty})

	// (10*40)+(((20*30)+(20*30))*40)
	tenForty := g.AddOp("*", []ClassId{ten, forty})
	twentyThirty := g.AddOp("*", []ClassId{twenty, thirty})
	sumInnerB := g.AddOp("+", []ClassId{twentyThirty, twentyThirty})
	innerB := g.AddOp("*", []ClassId{sumInnerB, forty})
	expr2 := g.AddOp("+", []ClassId{tenForty, innerB})

	// (10*40)+(((20+20)*30)*40)
	innerC := g.AddOp("*", []ClassId{innerA, forty})
	expr3 := g.AddOp("+", []ClassId{tenForty, innerC})

	rule := Rule{
		LHS: PatternTerm{Name: "*", Args: []Pattern{
			PatternTerm{Name: "+", Args: []Pattern{Var("x"), Var("y")}},
			Var("z"),
		}},
		RHS: PatternTerm{Name: "+", Args: []Pattern{
			PatternTerm{Name: "*", Args: []Pattern{Var("x"), Var("z")}},
			PatternTerm{Name: "*", Args: []Pattern{Var("y"), Var("z")}},
		}},
	}

	g.Rewrite(rule)

	if g.Find(expr1) != g.Find(expr2) || g.Find(expr1) != g.Find(expr3) {
		t.Fatalf("expected all three expressions to share one canonical id after one application of the distributivity rule")
	}
}
