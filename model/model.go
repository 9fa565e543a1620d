// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package model defines the external, proto-like schema the presolve
// context reads and rewrites: variables with domains, a catalog of
// constraints, and an optional linear objective. Parsing and writing this
// schema to a wire format is an external concern (see codec.go for the one
// JSON-based codec this package provides as a stand-in for a real protobuf
// schema); the context only needs the in-memory shape below.
package model

import (
	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/ref"
)

// LinearExpr is offset + sum(coeffs[i] * vars[i]).
type LinearExpr struct {
	Vars   []ref.Ref
	Coeffs []int64
	Offset int64
}

// LinearConstraint restricts a linear expression's value to Domain.
type LinearConstraint struct {
	Vars   []ref.Ref
	Coeffs []int64
	Domain domain.Domain
}

// IntervalConstraint ties a start/size/end triple together as a schedulable
// interval: End = Start + Size. It participates in the model's separate
// interval index space (see Model.Intervals) so that cumulative/no-overlap
// constraints can refer to it without repeating the triple.
type IntervalConstraint struct {
	Start, Size, End LinearExpr
}

// ConstraintKind tags which variant of the union a Constraint holds.
type ConstraintKind int

const (
	// NoOp marks a constraint that has been presolved away; it is kept in
	// place (constraints are append-only) but contributes no variables.
	NoOp ConstraintKind = iota
	KindLinear
	KindBoolAnd
	KindBoolOr
	KindBoolXor
	KindInterval
	KindCumulative
	KindNoOverlap
)

// Constraint is a tagged union over the constraint kinds the context needs
// to index; EnforcementLiteral makes the whole constraint vacuous if any
// literal in it is false.
type Constraint struct {
	Kind                ConstraintKind
	EnforcementLiteral  []ref.Ref
	Linear              LinearConstraint
	Literals            []ref.Ref // BoolAnd / BoolOr / BoolXor operands
	Interval            IntervalConstraint
	IntervalRefs        []int32 // indices into Model.Intervals, for Cumulative/NoOverlap
	Demands             []LinearExpr
	Capacity            LinearExpr
}

// Objective is the model's optional linear objective.
type Objective struct {
	Vars          []ref.Ref
	Coeffs        []int64
	Domain        domain.Domain
	Offset        float64
	ScalingFactor float64
}

// Model is the whole working model the context owns and rewrites.
type Model struct {
	Variables   []domain.Domain
	Constraints []Constraint
	Intervals   []IntervalConstraint
	Objective   Objective
}

// New returns an empty model with a scaling factor of 1, the proto default.
func New() *Model {
	return &Model{Objective: Objective{ScalingFactor: 1}}
}

// UsedVariables returns the sorted, deduplicated, positive variable indices
// referenced anywhere in ct, including its enforcement literals.
func UsedVariables(ct *Constraint) []int32 {
	seen := map[int32]bool{}
	var out []int32
	add := func(r ref.Ref) {
		v := ref.Var(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, l := range ct.EnforcementLiteral {
		add(l)
	}
	switch ct.Kind {
	case KindLinear:
		for _, v := range ct.Linear.Vars {
			add(v)
		}
	case KindBoolAnd, KindBoolOr, KindBoolXor:
		for _, l := range ct.Literals {
			add(l)
		}
	case KindInterval:
		addExpr(ct.Interval.Start, add)
		addExpr(ct.Interval.Size, add)
		addExpr(ct.Interval.End, add)
	case KindCumulative:
		for _, d := range ct.Demands {
			addExpr(d, add)
		}
		addExpr(ct.Capacity, add)
	}
	sortInt32(out)
	return out
}

func addExpr(e LinearExpr, add func(ref.Ref)) {
	for _, v := range e.Vars {
		add(v)
	}
}

// UsedIntervals returns the sorted, deduplicated interval indices ct refers
// to (non-empty only for Cumulative/NoOverlap constraints).
func UsedIntervals(ct *Constraint) []int32 {
	if len(ct.IntervalRefs) == 0 {
		return nil
	}
	out := append([]int32(nil), ct.IntervalRefs...)
	sortInt32(out)
	return dedupSorted(out)
}

func sortInt32(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func dedupSorted(s []int32) []int32 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// IsLinear1 reports whether ct is an unenforced single-variable linear
// constraint, the shape update_linear1_usage tracks for
// variable_is_only_used_in_encoding.
func IsLinear1(ct *Constraint) bool {
	return ct.Kind == KindLinear && len(ct.EnforcementLiteral) == 0 && len(ct.Linear.Vars) == 1
}
