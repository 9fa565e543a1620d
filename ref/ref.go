// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package ref provides the signed-reference arithmetic shared by every other
// package in the presolver: a Ref names a variable together with an optional
// negation, and every table keyed by variable (domains, affine relations,
// encodings, the usage graph) is keyed on the Positive form of a Ref.
package ref

import "fmt"

// Ref is a signed reference to a variable.  A non-negative Ref r names
// variable r directly (the "positive" literal of that variable).  A negative
// Ref names the negation of variable (-r - 1): this is the same convention
// CP-SAT's own model protos use, chosen so that NegatedRef is an involution
// without the +0/-0 ambiguity a plain sign bit on variable 0 would cause.
type Ref int32

// Null is the zero-value placeholder used by encoding tables and relation
// repositories to mean "no reference yet".  It is never a valid Ref produced
// by NewVariable, since variable 0's positive reference is Ref(0) and its
// negation is Ref(-1); Null uses a value outside that pair.
const Null Ref = 1<<31 - 1

// FromVar returns the positive reference to variable v.
func FromVar(v int32) Ref { return Ref(v) }

// IsPositive reports whether r refers to its variable without negation.
func IsPositive(r Ref) bool { return r >= 0 }

// Positive returns the positive reference of the variable named by r,
// regardless of r's own polarity.
func Positive(r Ref) Ref {
	if r >= 0 {
		return r
	}
	return Negated(r)
}

// Negated returns the logical negation of r.  Negated is an involution:
// Negated(Negated(r)) == r.
func Negated(r Ref) Ref { return -r - 1 }

// Var returns the 0-based variable index named by r.
func Var(r Ref) int32 {
	if r >= 0 {
		return int32(r)
	}
	return int32(Negated(r))
}

// Signed returns value negated iff r is itself a negative reference; used to
// move a domain value (or a small offset) across the sign boundary the same
// way the referenced variable's domain is negated.
func Signed(r Ref, value int64) int64 {
	if IsPositive(r) {
		return value
	}
	return -value
}

func (r Ref) String() string {
	if IsPositive(r) {
		return fmt.Sprintf("x%d", int32(r))
	}
	return fmt.Sprintf("~x%d", Var(r))
}
