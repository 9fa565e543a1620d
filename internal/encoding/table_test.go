// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package encoding

import (
	"testing"

	"github.com/irifrance/presolve/ref"
)

func TestOppositeHasNegationRequiresSameValue(t *testing.T) {
	tbl := New()
	v := int32(1)
	lit := ref.FromVar(2)

	keyA := Key{Var: v, Value: 5}
	keyB := Key{Var: v, Value: 10}

	if !tbl.InsertHalf(keyA, lit, true) {
		t.Fatal("expected first half insert to succeed")
	}
	if !tbl.InsertHalf(keyB, ref.Negated(lit), false) {
		t.Fatal("expected second half insert to succeed")
	}

	// lit => (v == 5) and neg(lit) => (v != 10) are about different values:
	// neither key's opposite half-map may see the other's entry.
	if tbl.OppositeHasNegation(keyA, lit, true) {
		t.Fatal("half-encodings for different values must not promote each other")
	}
	if tbl.OppositeHasNegation(keyB, ref.Negated(lit), false) {
		t.Fatal("half-encodings for different values must not promote each other")
	}
}

func TestOppositeHasNegationPromotesSameValue(t *testing.T) {
	tbl := New()
	v := int32(1)
	lit := ref.FromVar(2)
	key := Key{Var: v, Value: 5}

	tbl.InsertHalf(key, lit, true)
	tbl.InsertHalf(key, ref.Negated(lit), false)

	if !tbl.OppositeHasNegation(key, lit, true) {
		t.Fatal("matching value half-encodings should promote")
	}
}

func TestInsertHalfRejectsDuplicate(t *testing.T) {
	tbl := New()
	key := Key{Var: 1, Value: 5}
	lit := ref.FromVar(2)

	if !tbl.InsertHalf(key, lit, true) {
		t.Fatal("expected first insert to succeed")
	}
	if tbl.InsertHalf(key, lit, true) {
		t.Fatal("expected duplicate insert to report already present")
	}
}
