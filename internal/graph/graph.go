// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package graph maintains the bipartite constraint<->variable usage index:
// for each constraint, the variables and intervals it touches; inversely,
// for each variable, the constraints that touch it. -1 is the sentinel
// constraint index standing for "appears in the objective".
package graph

import "sort"

// ObjectiveSentinel is the constraint index used to record that a variable
// appears in the objective rather than in any working-model constraint.
const ObjectiveSentinel int32 = -1

// Usage is the constraint<->variable bipartite index.
type Usage struct {
	constraintToVars      [][]int32
	constraintToIntervals [][]int32
	constraintToLinear1   []int32 // -1 if constraint c isn't a linear-1, else its var
	varToConstraints      []map[int32]bool
	varToNumLinear1       []int32
	intervalUsage         []int32
}

// New returns an empty usage graph.
func New() *Usage {
	return &Usage{}
}

func (u *Usage) growVarsTo(v int32) {
	for int32(len(u.varToConstraints)) <= v {
		u.varToConstraints = append(u.varToConstraints, map[int32]bool{})
		u.varToNumLinear1 = append(u.varToNumLinear1, 0)
	}
}

func (u *Usage) growIntervalsTo(i int32) {
	for int32(len(u.intervalUsage)) <= i {
		u.intervalUsage = append(u.intervalUsage, 0)
	}
}

// NumConstraints returns how many constraints the graph currently indexes.
func (u *Usage) NumConstraints() int { return len(u.constraintToVars) }

// IsUpToDate reports whether the graph has been extended to cover
// numConstraints constraints (ConstraintVariableGraphIsUpToDate in the
// original design).
func (u *Usage) IsUpToDate(numConstraints int) bool {
	return len(u.constraintToVars) == numConstraints
}

// VarToConstraints returns the set of constraint indices touching v
// (including ObjectiveSentinel if v appears in the objective).
func (u *Usage) VarToConstraints(v int32) map[int32]bool {
	u.growVarsTo(v)
	return u.varToConstraints[v]
}

// NumConstraintsOf returns len(VarToConstraints(v)) without allocating a map
// view.
func (u *Usage) NumConstraintsOf(v int32) int {
	u.growVarsTo(v)
	return len(u.varToConstraints[v])
}

// AddObjectiveUsage records that variable v appears in the objective.
func (u *Usage) AddObjectiveUsage(v int32) {
	u.growVarsTo(v)
	u.varToConstraints[v][ObjectiveSentinel] = true
}

// RemoveObjectiveUsage removes the objective-sentinel usage for v.
func (u *Usage) RemoveObjectiveUsage(v int32) {
	u.growVarsTo(v)
	delete(u.varToConstraints[v], ObjectiveSentinel)
}

// VarToNumLinear1 returns how many linear-1 (single-variable, unenforced
// linear) constraints touch v.
func (u *Usage) VarToNumLinear1(v int32) int32 {
	u.growVarsTo(v)
	return u.varToNumLinear1[v]
}

// IntervalUsage returns the reference count of interval i.
func (u *Usage) IntervalUsage(i int32) int32 {
	u.growIntervalsTo(i)
	return u.intervalUsage[i]
}

// ConstraintVars returns constraint c's current used-variables vector.
// The result must not be mutated.
func (u *Usage) ConstraintVars(c int) []int32 { return u.constraintToVars[c] }

// ConstraintIntervals returns constraint c's current used-intervals vector.
func (u *Usage) ConstraintIntervals(c int) []int32 { return u.constraintToIntervals[c] }

// Grow resizes the graph to cover numConstraints constraints without
// registering usage for the new tail; callers follow with AddVariableUsage
// for each newly covered index (UpdateNewConstraintsVariableUsage).
func (u *Usage) Grow(numConstraints int) {
	for len(u.constraintToVars) < numConstraints {
		u.constraintToVars = append(u.constraintToVars, nil)
		u.constraintToIntervals = append(u.constraintToIntervals, nil)
		u.constraintToLinear1 = append(u.constraintToLinear1, -1)
	}
}

// AddVariableUsage registers the variables usedVars and intervals
// usedIntervals as constraint c's current usage, for a constraint that has
// never been registered before.
func (u *Usage) AddVariableUsage(c int, usedVars, usedIntervals []int32, isLinear1 bool, linear1Var int32) {
	u.constraintToVars[c] = usedVars
	u.constraintToIntervals[c] = usedIntervals
	for _, v := range usedVars {
		u.growVarsTo(v)
		u.varToConstraints[v][int32(c)] = true
	}
	for _, i := range usedIntervals {
		u.growIntervalsTo(i)
		u.intervalUsage[i]++
	}
	u.updateLinear1(c, isLinear1, linear1Var)
}

// UpdateConstraintVariableUsage replaces constraint c's registered usage
// with newVars/newIntervals, doing a merge-style diff against the stored
// sorted vector so unchanged variables avoid an erase+insert round trip.
func (u *Usage) UpdateConstraintVariableUsage(c int, newVars, newIntervals []int32, isLinear1 bool, linear1Var int32) {
	for _, i := range u.constraintToIntervals[c] {
		u.intervalUsage[i]--
	}
	u.constraintToIntervals[c] = newIntervals
	for _, i := range newIntervals {
		u.growIntervalsTo(i)
		u.intervalUsage[i]++
	}

	old := u.constraintToVars[c]
	i, j := 0, 0
	for j < len(newVars) {
		v := newVars[j]
		for i < len(old) && old[i] < v {
			delete(u.varToConstraints[old[i]], int32(c))
			i++
		}
		if i < len(old) && old[i] == v {
			i++
		} else {
			u.growVarsTo(v)
			u.varToConstraints[v][int32(c)] = true
		}
		j++
	}
	for ; i < len(old); i++ {
		delete(u.varToConstraints[old[i]], int32(c))
	}
	u.constraintToVars[c] = newVars

	u.updateLinear1(c, isLinear1, linear1Var)
}

func (u *Usage) updateLinear1(c int, isLinear1 bool, v int32) {
	if old := u.constraintToLinear1[c]; old >= 0 {
		u.varToNumLinear1[old]--
	}
	if isLinear1 {
		u.growVarsTo(v)
		u.constraintToLinear1[c] = v
		u.varToNumLinear1[v]++
	} else {
		u.constraintToLinear1[c] = -1
	}
}

// IsConsistent reports whether, for every indexed constraint, recompute(c)
// (freshly computed used-variables) equals the stored vector. It is a debug
// invariant checker, not something callers run on a hot path.
func (u *Usage) IsConsistent(recompute func(c int) []int32) bool {
	for c := range u.constraintToVars {
		if !equalInt32(u.constraintToVars[c], recompute(c)) {
			return false
		}
	}
	return true
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SortUnique sorts vs in place and removes duplicates, returning the
// (possibly shorter) slice. Constraint usage vectors are always kept in this
// form so UpdateConstraintVariableUsage's merge diff is valid.
func SortUnique(vs []int32) []int32 {
	if len(vs) < 2 {
		return vs
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	out := vs[:1]
	for _, v := range vs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
