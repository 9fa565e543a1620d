// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package affine

import "testing"

func TestGetSelfIsIdentity(t *testing.T) {
	r := NewRepo()
	rel := r.Get(5)
	if rel.Representative != 5 || rel.Coeff != 1 || rel.Offset != 0 {
		t.Errorf("expected self relation, got %+v", rel)
	}
}

func TestTryAddSimpleEquivalence(t *testing.T) {
	r := NewRepo()
	// x = y (c=1, o=0)
	if !r.TryAdd(0, 1, 1, 0, false, false) {
		t.Fatalf("expected a new merge")
	}
	rx := r.Get(0)
	ry := r.Get(1)
	if rx.Representative != ry.Representative {
		t.Errorf("0 and 1 should share a representative")
	}
	if r.TryAdd(0, 1, 1, 0, false, false) {
		t.Errorf("re-adding the same relation should report no merge")
	}
}

func TestTryAddGeneralCoefficientKeepsYAsRoot(t *testing.T) {
	r := NewRepo()
	// x = 3*y + 2
	if !r.TryAdd(0, 1, 3, 2, true, false) {
		t.Fatalf("expected merge")
	}
	rel := r.Get(0)
	if rel.Representative != 1 {
		t.Errorf("representative must be y (1) for |c|!=1, got %d", rel.Representative)
	}
	if rel.Coeff != 3 || rel.Offset != 2 {
		t.Errorf("wrong relation: %+v", rel)
	}
}

func TestTryAddHonorsPreferenceWhenInvertible(t *testing.T) {
	r := NewRepo()
	// x = -1*y + 1  (x = 1 - y), prefer x as representative
	if !r.TryAdd(0, 1, -1, 1, true, false) {
		t.Fatalf("expected merge")
	}
	rel := r.Get(1)
	if rel.Representative != 0 {
		t.Errorf("expected x (0) to remain representative, got %d", rel.Representative)
	}
}

func TestChainedRelationComposes(t *testing.T) {
	r := NewRepo()
	// a = b + 1, b = 2*c
	if !r.TryAdd(0, 1, 1, 1, false, false) { // a = b+1
		t.Fatal("expected merge a,b")
	}
	if !r.TryAdd(1, 2, 2, 0, false, false) { // b = 2c
		t.Fatal("expected merge b,c")
	}
	rel := r.Get(0) // a in terms of final representative
	// a = b+1 = 2c+1
	want := Relation{Representative: rel.Representative, Coeff: 2, Offset: 1}
	relC := r.Get(2)
	if relC.Representative != rel.Representative {
		t.Fatalf("a and c should share a representative")
	}
	if rel.Coeff != want.Coeff || rel.Offset != want.Offset {
		// depending on which side became root the sign of the composed
		// relation w.r.t. c could instead be c's own transform; verify via
		// direct value substitution instead of hard equality.
		// a = 2c+1 must hold when expressed relative to whichever repr wins.
		cRel := r.Get(2)
		// a = rel.Coeff*rep+rel.Offset, c = cRel.Coeff*rep+cRel.Offset
		// => rep = (c - cRel.Offset)/cRel.Coeff, substitute into a's formula.
		// For cRel.Coeff in {1,2} etc. just check the defining equation at rep=0,1.
		for _, rep := range []int64{0, 1} {
			aVal := rel.Coeff*rep + rel.Offset
			cVal := cRel.Coeff*rep + cRel.Offset
			if aVal != 2*cVal+1 {
				t.Errorf("composed relation inconsistent: a=%d c=%d at rep=%d", aVal, cVal, rep)
			}
		}
	}
}

func TestClassSize(t *testing.T) {
	r := NewRepo()
	r.TryAdd(0, 1, 1, 0, false, false)
	r.TryAdd(1, 2, 1, 0, false, false)
	if r.ClassSize(0) != 3 {
		t.Errorf("ClassSize = %d, want 3", r.ClassSize(0))
	}
	if r.ClassSize(9) != 1 {
		t.Errorf("ClassSize of untouched var = %d, want 1", r.ClassSize(9))
	}
}
