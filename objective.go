// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package presolve

import (
	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/model"
	"github.com/irifrance/presolve/ref"
)

// ReadObjectiveFromProto loads Model.Objective into the working Objective
// state and registers every objective variable's usage in the graph.
func (c *Context) ReadObjectiveFromProto() {
	o := c.Model.Objective
	c.Objective.Coeffs = map[int32]int64{}
	c.Objective.Offset = o.Offset
	c.Objective.ScalingFactor = o.ScalingFactor
	if c.Objective.ScalingFactor == 0 {
		c.Objective.ScalingFactor = 1
	}
	c.Objective.Domain = o.Domain
	for i, r := range o.Vars {
		v := ref.Var(r)
		coeff := o.Coeffs[i] * ref.Signed(r, 1)
		cur, _ := c.Objective.Get(v)
		c.Objective.Set(v, cur+coeff)
		c.usage.AddObjectiveUsage(v)
	}
}

// WriteObjectiveToProto writes the canonical objective state back into
// Model.Objective, in sorted variable order for determinism.
func (c *Context) WriteObjectiveToProto() {
	entries := c.Objective.SortedEntries()
	o := &c.Model.Objective
	o.Vars = o.Vars[:0]
	o.Coeffs = o.Coeffs[:0]
	for _, e := range entries {
		o.Vars = append(o.Vars, ref.FromVar(e.Var))
		o.Coeffs = append(o.Coeffs, e.Coeff)
	}
	o.Domain = c.Objective.Domain
	o.Offset = c.Objective.Offset
	o.ScalingFactor = c.Objective.ScalingFactor
}

// CanonicalizeObjective brings the objective to canonical form: every
// variable is replaced by its affine representative, fixed variables are
// folded into the offset, the implied domain is intersected and simplified
// against the declared one, and the whole coefficient vector (plus domain)
// is divided by its GCD. It returns false (and sets IsUnsat) if the implied
// domain and the declared one are disjoint.
func (c *Context) CanonicalizeObjective() bool {
	for _, e := range c.Objective.SortedEntries() {
		c.canonicalizeObjectiveVariable(e.Var, e.Coeff)
	}

	var impliedMin, impliedMax int64
	var gcd int64
	for _, e := range c.Objective.SortedEntries() {
		r := ref.FromVar(e.Var)
		lo, hi := e.Coeff*c.MinOf(r), e.Coeff*c.MaxOf(r)
		if lo > hi {
			lo, hi = hi, lo
		}
		impliedMin += lo
		impliedMax += hi
		gcd = domain.GCD64(gcd, e.Coeff)
	}
	implied := domain.Range(impliedMin, impliedMax)

	declared := c.Objective.Domain
	if declared.IsEmpty() {
		declared = domain.All()
	}
	c.Objective.DomainIsConstraining = !implied.IsIncludedIn(declared)
	newDomain := declared.SimplifyUsingImpliedDomain(implied)
	if newDomain.IsEmpty() {
		c.IsUnsat = true
		return false
	}
	c.Objective.Domain = newDomain

	if gcd > 1 {
		for _, e := range c.Objective.SortedEntries() {
			c.Objective.Set(e.Var, e.Coeff/gcd)
		}
		c.Objective.Domain = c.Objective.Domain.InverseMultiplicationBy(gcd)
		c.Objective.ScalingFactor *= float64(gcd)
		if c.Stats != nil {
			c.Stats.Update("CanonicalizeObjectiveGcd")
		}
	}
	if c.Stats != nil {
		c.Stats.Update("CanonicalizeObjective")
	}
	return true
}

// canonicalizeObjectiveVariable replaces var's objective entry with its
// affine representative's, folding in the affine offset, or erases it
// entirely (folding its contribution into Offset) if var is fixed or its
// representative carries a zero net coefficient.
func (c *Context) canonicalizeObjectiveVariable(v int32, coeff int64) {
	if c.IsFixed(v32ToRef(v)) {
		c.Objective.Offset += float64(coeff) * float64(c.MinOf(v32ToRef(v)))
		c.Objective.Erase(v)
		c.usage.RemoveObjectiveUsage(v)
		return
	}
	rep, cc, oo := c.GetAffineRelation(v32ToRef(v))
	repVar := ref.Var(rep)
	if repVar == v {
		return
	}
	c.Objective.Offset += float64(coeff) * float64(oo)
	c.Objective.Erase(v)
	c.usage.RemoveObjectiveUsage(v)
	newCoeff, existed := c.Objective.Add(repVar, coeff*cc)
	if newCoeff == 0 && existed {
		c.usage.RemoveObjectiveUsage(repVar)
	} else {
		c.usage.AddObjectiveUsage(repVar)
	}
}

func v32ToRef(v int32) ref.Ref { return ref.FromVar(v) }

// SubstituteVariableInObjective eliminates v from the objective using an
// equality constraint eq whose fixed domain {k} states
// sum(eq.Coeffs[i]*eq.Vars[i]) == k, with v appearing in eq at coefficient
// coeffInEq. Precondition: v's current objective coefficient is an exact
// multiple of coeffInEq (violating this is a programmer error and panics,
// like the other documented preconditions in this package).
//
// multiplier = coeff_in_objective[v] / coeffInEq. For every other (vi, ci) in
// eq, objective_map[vi] is decremented by ci*multiplier, growing the sparse
// entry (and reporting it via the returned outNewVars) if it was previously
// absent, or dropping it if it becomes zero. v is erased from both the
// objective map and the usage graph's -1 set. The equality's constant k
// contributes k*multiplier to the floating offset, and the objective domain
// shifts by -k*multiplier to stay consistent with the now-smaller raw sum.
//
// It returns false (with no effect) if v had no objective entry to
// substitute.
func (c *Context) SubstituteVariableInObjective(v int32, coeffInEq int64, eq model.LinearConstraint) (ok bool, outNewVars []int32) {
	old, existed := c.Objective.Get(v)
	if !existed {
		return false, nil
	}
	if old%coeffInEq != 0 {
		panic("presolve: objective coefficient is not an exact multiple of coeff_in_eq")
	}
	multiplier := old / coeffInEq
	k := eq.Domain.Min()

	for i, r := range eq.Vars {
		vi := ref.Var(r)
		if vi == v {
			continue
		}
		ci := eq.Coeffs[i] * ref.Signed(r, 1)
		newCoeff, existedBefore := c.Objective.Add(vi, -ci*multiplier)
		if newCoeff == 0 {
			if existedBefore {
				c.usage.RemoveObjectiveUsage(vi)
			}
			continue
		}
		c.usage.AddObjectiveUsage(vi)
		if !existedBefore {
			outNewVars = append(outNewVars, vi)
		}
	}

	c.Objective.Offset += float64(k) * float64(multiplier)
	c.Objective.Domain = c.Objective.Domain.AdditionWith(domain.Single(-k * multiplier))
	c.Objective.Erase(v)
	c.usage.RemoveObjectiveUsage(v)

	if c.Stats != nil {
		c.Stats.Update("SubstituteVariableInObjective")
	}
	return true, outNewVars
}
