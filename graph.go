// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package presolve

import (
	"github.com/irifrance/presolve/internal/graph"
	"github.com/irifrance/presolve/model"
	"github.com/irifrance/presolve/ref"
)

// UpdateNewConstraintsVariableUsage registers usage for every constraint in
// Model.Constraints the usage graph doesn't yet cover (ConstraintVariableGraphIsUpToDate
// in the original design). It must run once after constraints are appended
// directly to Model, before any UpdateConstraintVariableUsage call.
func (c *Context) UpdateNewConstraintsVariableUsage() {
	n := len(c.Model.Constraints)
	c.usage.Grow(n)
	for idx := range c.Model.Constraints {
		if c.usage.ConstraintVars(idx) != nil || c.usage.ConstraintIntervals(idx) != nil {
			continue
		}
		c.registerConstraintUsage(idx)
	}
}

// ConstraintVariableGraphIsUpToDate reports whether the usage graph has been
// extended to cover every constraint currently in Model.Constraints.
func (c *Context) ConstraintVariableGraphIsUpToDate() bool {
	return c.usage.IsUpToDate(len(c.Model.Constraints))
}

func (c *Context) registerConstraintUsage(idx int) {
	ct := &c.Model.Constraints[idx]
	vars := graph.SortUnique(model.UsedVariables(ct))
	intervals := graph.SortUnique(model.UsedIntervals(ct))
	isLinear1, linear1Var := linear1Of(ct)
	c.usage.AddVariableUsage(idx, vars, intervals, isLinear1, linear1Var)
}

// UpdateConstraintVariableUsage recomputes and re-registers constraint idx's
// usage, diffing against whatever was previously stored. Call this after
// mutating Model.Constraints[idx] in place.
func (c *Context) UpdateConstraintVariableUsage(idx int) {
	ct := &c.Model.Constraints[idx]
	vars := graph.SortUnique(model.UsedVariables(ct))
	intervals := graph.SortUnique(model.UsedIntervals(ct))
	isLinear1, linear1Var := linear1Of(ct)
	c.usage.UpdateConstraintVariableUsage(idx, vars, intervals, isLinear1, linear1Var)
}

// linear1Of reports whether ct is an unenforced single-variable linear
// constraint, and if so which variable it constrains.
func linear1Of(ct *model.Constraint) (bool, int32) {
	if len(ct.EnforcementLiteral) != 0 || !model.IsLinear1(ct) {
		return false, 0
	}
	return true, ref.Var(ct.Linear.Vars[0])
}

// ConstraintVariableUsageIsConsistent recomputes every constraint's used
// variables from Model.Constraints and compares against the stored usage; a
// debug invariant, not something a hot rewrite loop should call.
func (c *Context) ConstraintVariableUsageIsConsistent() bool {
	return c.usage.IsConsistent(func(idx int) []int32 {
		return graph.SortUnique(model.UsedVariables(&c.Model.Constraints[idx]))
	})
}

// AddVariableUsage marks v as appearing in the objective.
func (c *Context) AddVariableUsage(v int32) { c.usage.AddObjectiveUsage(v) }

// VariableIsNotUsedAnymore reports whether v appears in no constraint, no
// interval, and not in the objective. It is only meaningful once the usage
// graph has caught up with every constraint in Model.Constraints.
func (c *Context) VariableIsNotUsedAnymore(v int32) bool {
	if !c.ConstraintVariableGraphIsUpToDate() {
		return false
	}
	return c.usage.NumConstraintsOf(v) == 0
}

// VariableIsOnlyUsedInEncoding reports whether every constraint touching v is
// an unenforced single-variable linear constraint (the shape the encoding
// table itself produces via GetOrCreateLiteralForEquality/AddRelation), and v
// does not appear in the objective. Such a variable carries no information a
// rewrite rule couldn't recover from the encoding table directly.
func (c *Context) VariableIsOnlyUsedInEncoding(v int32) bool {
	cs := c.usage.VarToConstraints(v)
	if len(cs) == 0 {
		return true
	}
	if _, inObjective := cs[graph.ObjectiveSentinel]; inObjective {
		return false
	}
	return int(c.usage.VarToNumLinear1(v)) == len(cs)
}

// VariableIsUniqueAndRemovable reports whether v appears in exactly one
// constraint (and not in the objective), making it a candidate for that
// constraint to absorb and remove entirely.
func (c *Context) VariableIsUniqueAndRemovable(v int32) bool {
	if !c.canRemoveVariable(v) {
		return false
	}
	cs := c.usage.VarToConstraints(v)
	if len(cs) != 1 {
		return false
	}
	_, inObjective := cs[graph.ObjectiveSentinel]
	return !inObjective
}

// VariableWithCostIsUniqueAndRemovable reports whether v appears in exactly
// one constraint plus the objective, and nowhere else.
func (c *Context) VariableWithCostIsUniqueAndRemovable(v int32) bool {
	if !c.canRemoveVariable(v) {
		return false
	}
	cs := c.usage.VarToConstraints(v)
	if len(cs) != 2 {
		return false
	}
	_, inObjective := cs[graph.ObjectiveSentinel]
	return inObjective
}

// canRemoveVariable gates both "unique and removable" predicates with the
// three conditions a driver must satisfy before any variable can be dropped
// from the model: the usage graph must have caught up with every constraint,
// the driver must not have asked to preserve every feasible solution (a
// removed variable collapses distinct solutions that only differed in its
// value), and v must not be the representative of a non-trivial affine
// equivalence class (removing it would drop the whole class's shared
// identity, not just one variable).
func (c *Context) canRemoveVariable(v int32) bool {
	if !c.ConstraintVariableGraphIsUpToDate() {
		return false
	}
	if c.KeepAllFeasibleSolutions {
		return false
	}
	if c.affineRelations.ClassSize(v) > 1 {
		if rep, _, _ := c.GetAffineRelation(ref.FromVar(v)); ref.Var(rep) == v {
			return false
		}
	}
	return true
}
