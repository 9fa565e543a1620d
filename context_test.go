// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package presolve

import (
	"testing"

	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/model"
	"github.com/irifrance/presolve/ref"
)

func TestIntersectDomainShrinksAndMarksModified(t *testing.T) {
	c := NewContext()
	x := c.NewVariable(domain.Range(0, 4))
	if !c.IntersectDomainWith(x, domain.Range(2, 1<<30)) {
		t.Fatal("expected success")
	}
	if got := c.DomainOf(x); !got.Equal(domain.Range(2, 4)) {
		t.Fatalf("domain = %s, want {2,3,4}", got)
	}
	mod := c.DrainModifiedDomains()
	if len(mod) != 1 || mod[0] != ref.Var(x) {
		t.Fatalf("modified = %v, want [%d]", mod, ref.Var(x))
	}
	if c.MinOf(x) != 2 {
		t.Fatalf("MinOf = %d, want 2", c.MinOf(x))
	}
}

func TestStoreBooleanEqualityPropagatesLiteralTrue(t *testing.T) {
	c := NewContext()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.StoreBooleanEqualityRelation(a, b)
	c.SetLiteralTrue(a)
	if !c.LiteralIsTrue(b) {
		t.Fatal("expected b to be true")
	}
}

func TestAffineRelationPropagatesFixedValue(t *testing.T) {
	c := NewContext()
	x := c.NewVariable(domain.Range(0, 2))
	y := c.NewVariable(domain.Range(0, 2))
	c.AddRelation(ref.Var(x), ref.Var(y), 1, 0)
	c.IntersectDomainWith(x, domain.Single(1))
	if c.MinOf(y) != 1 || c.MaxOf(y) != 1 {
		t.Fatalf("y domain = %s, want {1}", c.DomainOf(y))
	}
}

func TestGetOrCreateLiteralForEqualityTwoValueDomain(t *testing.T) {
	c := NewContext()
	x := c.NewVariable(domain.FromIntervals([][2]int64{{5, 5}, {10, 10}}))
	l0 := c.GetOrCreateLiteralForEquality(x, 5)
	l1 := c.GetOrCreateLiteralForEquality(x, 10)
	if l1 != ref.Negated(l0) {
		t.Fatalf("l1 = %s, want negation of l0 = %s", l1, l0)
	}
	rep, coeff, offset := c.GetAffineRelation(x)
	t.Logf("x = %d*%s + %d", coeff, rep, offset)
	if c.MinOf(ref.Positive(l1)) < 0 {
		t.Fatal("unexpected")
	}
}

func TestCanonicalizeObjectiveDividesByGcd(t *testing.T) {
	c := NewContext()
	x := c.NewVariable(domain.All())
	y := c.NewVariable(domain.All())
	z := c.NewVariable(domain.All())
	c.Objective.Set(ref.Var(x), 3)
	c.Objective.Set(ref.Var(y), 6)
	c.Objective.Set(ref.Var(z), -9)
	if !c.CanonicalizeObjective() {
		t.Fatal("expected success")
	}
	cx, _ := c.Objective.Get(ref.Var(x))
	cy, _ := c.Objective.Get(ref.Var(y))
	cz, _ := c.Objective.Get(ref.Var(z))
	if cx != 1 || cy != 2 || cz != -3 {
		t.Fatalf("coeffs = %d,%d,%d, want 1,2,-3", cx, cy, cz)
	}
	if c.Objective.ScalingFactor != 3 {
		t.Fatalf("scaling factor = %v, want 3", c.Objective.ScalingFactor)
	}
}

func TestSubstituteVariableInObjective(t *testing.T) {
	// Spec scenario: objective contains x (coeff_in_objective[x] = 5),
	// equality constraint x + 2y - z = 4 with coeff_in_eq(x) = 1.
	// Expect: y -= 10, z += 5 relative to their prior values, x absent,
	// offset increases by 20, and y/z are reported as newly touched.
	c := NewContext()
	x := c.NewVariable(domain.Range(-1000, 1000))
	y := c.NewVariable(domain.Range(-1000, 1000))
	z := c.NewVariable(domain.Range(-1000, 1000))
	c.Objective.Set(ref.Var(x), 5)

	eq := model.LinearConstraint{
		Vars:   []ref.Ref{ref.FromVar(ref.Var(x)), ref.FromVar(ref.Var(y)), ref.FromVar(ref.Var(z))},
		Coeffs: []int64{1, 2, -1},
		Domain: domain.Single(4),
	}
	ok, newVars := c.SubstituteVariableInObjective(ref.Var(x), 1, eq)
	if !ok {
		t.Fatal("expected substitution to apply")
	}
	if _, present := c.Objective.Get(ref.Var(x)); present {
		t.Fatal("x should no longer be in the objective")
	}
	yCoeff, _ := c.Objective.Get(ref.Var(y))
	zCoeff, _ := c.Objective.Get(ref.Var(z))
	if yCoeff != -10 {
		t.Fatalf("y coeff = %d, want -10", yCoeff)
	}
	if zCoeff != 5 {
		t.Fatalf("z coeff = %d, want 5", zCoeff)
	}
	if c.Objective.Offset != 20 {
		t.Fatalf("offset = %v, want 20", c.Objective.Offset)
	}
	wantNew := map[int32]bool{ref.Var(y): true, ref.Var(z): true}
	if len(newVars) != 2 || !wantNew[newVars[0]] || !wantNew[newVars[1]] {
		t.Fatalf("newVars = %v, want y and z", newVars)
	}
}

func TestGetVariableRepresentativeUsesEquivalenceRepo(t *testing.T) {
	c := NewContext()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.StoreBooleanEqualityRelation(a, b)

	repA := c.GetVariableRepresentative(ref.Var(a))
	repB := c.GetVariableRepresentative(ref.Var(b))
	if repA != repB {
		t.Fatalf("a and b should share a Boolean-equivalence representative: %d vs %d", repA, repB)
	}
}

func TestGetAffineRelationAgreesWithEquivalenceRepo(t *testing.T) {
	c := NewContext()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.StoreBooleanEqualityRelation(a, b)

	// A relation recorded only in the general repo (|coeff| != 1, so
	// StoreAffineRelation never touches var_equiv_relations) must not cause
	// GetAffineRelation to report a representative that disagrees with
	// GetVariableRepresentative's equivalence-repo answer for either a or b.
	other := c.NewVariable(domain.Range(0, 100))
	c.AddRelation(ref.Var(other), ref.Var(a), 2, 1)

	for _, v := range []ref.Ref{a, b} {
		equivRep := c.GetVariableRepresentative(ref.Var(v))
		rep, _, _ := c.GetAffineRelation(v)
		if ref.Var(rep) != equivRep {
			t.Fatalf("GetAffineRelation(%s) representative %d disagrees with GetVariableRepresentative %d", v, ref.Var(rep), equivRep)
		}
	}
}

func TestCanRemoveVariableRequiresUsageGraphUpToDate(t *testing.T) {
	m := model.New()
	m.Variables = []domain.Domain{domain.Range(0, 5)}
	m.Constraints = []model.Constraint{{
		Kind: model.KindLinear,
		Linear: model.LinearConstraint{
			Vars:   []ref.Ref{ref.FromVar(0)},
			Coeffs: []int64{1},
			Domain: domain.Range(0, 5),
		},
	}}
	c := NewContextFromModel(m)
	if c.VariableIsUniqueAndRemovable(0) {
		t.Fatal("expected false while the usage graph has not caught up with Model.Constraints")
	}
}

func TestCanRemoveVariableRespectsKeepAllFeasibleSolutions(t *testing.T) {
	m := model.New()
	m.Variables = []domain.Domain{domain.Range(0, 5)}
	m.Constraints = []model.Constraint{{
		Kind: model.KindLinear,
		Linear: model.LinearConstraint{
			Vars:   []ref.Ref{ref.FromVar(0)},
			Coeffs: []int64{1},
			Domain: domain.Range(0, 5),
		},
	}}
	c := NewContextFromModel(m)
	c.UpdateNewConstraintsVariableUsage()
	if !c.VariableIsUniqueAndRemovable(0) {
		t.Fatal("expected removable by default")
	}
	c.KeepAllFeasibleSolutions = true
	if c.VariableIsUniqueAndRemovable(0) {
		t.Fatal("expected not removable once KeepAllFeasibleSolutions is set")
	}
}

func TestCanRemoveVariableRejectsEquivalenceClassRepresentative(t *testing.T) {
	c := NewContext()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.Model.Constraints = append(c.Model.Constraints, model.Constraint{
		Kind: model.KindLinear,
		Linear: model.LinearConstraint{
			Vars:   []ref.Ref{a, b},
			Coeffs: []int64{1, 1},
			Domain: domain.Range(0, 1),
		},
	})
	c.UpdateNewConstraintsVariableUsage()
	c.StoreBooleanEqualityRelation(a, b)

	rep := c.GetVariableRepresentative(ref.Var(a))
	if c.affineRelations.ClassSize(rep) <= 1 {
		t.Fatal("test setup: expected a and b to share a non-trivial equivalence class")
	}
	if c.VariableIsUniqueAndRemovable(rep) {
		t.Fatal("expected the equivalence-class representative to be reported non-removable")
	}
}

func TestConstraintVariableUsageIsConsistentAfterUpdate(t *testing.T) {
	m := model.New()
	m.Variables = []domain.Domain{domain.Range(0, 5), domain.Range(0, 5)}
	m.Constraints = []model.Constraint{{
		Kind: model.KindLinear,
		Linear: model.LinearConstraint{
			Vars:   []ref.Ref{ref.FromVar(0), ref.FromVar(1)},
			Coeffs: []int64{1, 1},
			Domain: domain.Range(0, 10),
		},
	}}
	c := NewContextFromModel(m)
	c.UpdateNewConstraintsVariableUsage()
	if !c.ConstraintVariableGraphIsUpToDate() {
		t.Fatal("expected graph to be up to date")
	}
	if !c.ConstraintVariableUsageIsConsistent() {
		t.Fatal("expected usage graph to be consistent")
	}
	if !c.VariableIsNotUsedAnymore(2) {
		t.Fatal("non-existent higher index should report unused")
	}
}

func TestVariableIsOnlyUsedInEncoding(t *testing.T) {
	m := model.New()
	m.Variables = []domain.Domain{domain.Range(0, 5), domain.Range(0, 5)}
	m.Constraints = []model.Constraint{
		{
			Kind: model.KindLinear,
			Linear: model.LinearConstraint{
				Vars:   []ref.Ref{ref.FromVar(0)},
				Coeffs: []int64{1},
				Domain: domain.Range(0, 3),
			},
		},
		{
			Kind: model.KindLinear,
			Linear: model.LinearConstraint{
				Vars:   []ref.Ref{ref.FromVar(1), ref.FromVar(0)},
				Coeffs: []int64{1, 1},
				Domain: domain.Range(0, 10),
			},
		},
	}
	m.Variables = append(m.Variables, domain.Range(0, 5))
	m.Constraints[1].Linear.Vars = []ref.Ref{ref.FromVar(1), ref.FromVar(2)}
	c := NewContextFromModel(m)
	c.UpdateNewConstraintsVariableUsage()

	if !c.VariableIsOnlyUsedInEncoding(0) {
		t.Fatalf("variable touching only linear-1 constraints should report true")
	}
	if c.VariableIsOnlyUsedInEncoding(1) {
		t.Fatal("variable touching a multi-variable constraint should report false")
	}
}
