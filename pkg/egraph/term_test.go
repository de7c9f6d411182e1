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

func Test_Term_Equals_SameShape_01(t *testing.T) {
	a := NewOperation("f", []ClassId{1, 2})
	b := NewOperation("f", []ClassId{1, 2})

	if !a.Equals(b) {
		t.Fatalf("two terms with the same name and children should be equal")
	}
}

func Test_Term_Equals_DifferentChildren_02(t *testing.T) {
	a := NewOperation("f", []ClassId{1, 2})
	b := NewOperation("f", []ClassId{1, 3})

	if a.Equals(b) {
		t.Fatalf("terms with different children should not be equal")
	}
}

func Test_Term_Hash_IgnoresChildren_03(t *testing.T) {
	a := NewOperation("f", []ClassId{1, 2})
	b := NewOperation("f", []ClassId{9, 9})

	if a.Hash() != b.Hash() {
		t.Fatalf("Hash is defined over the name alone, so same-named terms must collide")
	}
}

func Test_Term_Canonicalize_RewritesChildren_04(t *testing.T) {
	var uf unionFind

	a := uf.addSet()
	b := uf.addSet()
	uf.unite(a, b)

	term := NewOperation("f", []ClassId{b})
	term.Canonicalize(&uf)

	if term.Children[0] != a {
		t.Fatalf("expected child to be rewritten to root %d, got %d", a, term.Children[0])
	}
}

func Test_Term_Cmp_Orders_05(t *testing.T) {
	a := NewOperation("f", []ClassId{1})
	b := NewOperation("g", []ClassId{1})

	if a.Cmp(b) >= 0 {
		t.Fatalf("\"f\" should order before \"g\"")
	}

	if b.Cmp(a) <= 0 {
		t.Fatalf("Cmp should be antisymmetric")
	}

	if a.Cmp(a) != 0 {
		t.Fatalf("a term should compare equal to itself")
	}
}
