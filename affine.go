// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package presolve

import (
	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/internal/affine"
	"github.com/irifrance/presolve/ref"
)

// AddRelation records x = coeff*y + offset in the general affine-relation
// repository, propagating the implied domain restriction onto whichever
// variable survives as representative. It returns false (and leaves the
// repositories untouched) if x and y were already related.
func (c *Context) AddRelation(x, y int32, coeff, offset int64) bool {
	return c.addRelation(x, y, coeff, offset, c.affineRelations, false, false)
}

// StoreAffineRelation is AddRelation plus bookkeeping: it marks constraint
// idx as the one defining the relation (so a later pass can drop the now
// redundant constraint) and records the rule-stats update. When the relation
// between the underlying variables has |coeff| = 1 and offset 0, it is also
// recorded in the Boolean-equivalence repository. preferX/preferY
// mirror AffineRelation::TryAdd: present only as a hint, honored only when
// the two sides' current representatives are related by a +-1 coefficient.
func (c *Context) StoreAffineRelation(idx int, x, y ref.Ref, coeff, offset int64, preferX, preferY bool) bool {
	vx, vy := ref.Var(x), ref.Var(y)
	// x_ref = coeff*y_ref + offset in terms of the *references*; convert to the
	// underlying variables, which is what the repository is keyed on.
	cc := coeff * ref.Signed(x, 1) * ref.Signed(y, 1)
	oo := ref.Signed(x, offset)
	if !c.addRelation(vx, vy, cc, oo, c.affineRelations, preferX, preferY) {
		return false
	}
	if (cc == 1 || cc == -1) && oo == 0 {
		c.addRelation(vx, vy, cc, 0, c.varEquivRelations, preferX, preferY)
	}
	c.affineConstraints[idx] = true
	if c.Stats != nil {
		c.Stats.Update("AddAffineRelation")
	}
	return true
}

// StoreBooleanEqualityRelation records that literal a and literal b always
// take the same value. When a and b have the same polarity this is
// var(a) = var(b), stored in both the general and the Boolean-restricted
// equivalence repository; otherwise it is var(a) = 1 - var(b), stored in the
// general repository only. It is a no-op if a and b are already the same
// literal, and marks IsUnsat if a and b are opposite literals of the same
// variable -- a straight contradiction regardless of any domain.
func (c *Context) StoreBooleanEqualityRelation(a, b ref.Ref) bool {
	if a == b {
		return false
	}
	if a == ref.Negated(b) {
		c.IsUnsat = true
		return false
	}
	va, vb := ref.Var(a), ref.Var(b)
	if ref.IsPositive(a) == ref.IsPositive(b) {
		c.addRelation(va, vb, 1, 0, c.varEquivRelations, false, false)
		return c.addRelation(va, vb, 1, 0, c.affineRelations, false, false)
	}
	return c.addRelation(va, vb, -1, 1, c.affineRelations, false, false)
}

// addRelation is the shared implementation behind AddRelation,
// StoreAffineRelation and StoreBooleanEqualityRelation: merge x and y in
// repo, and if the merge actually happened, intersect both variables'
// domains with what the relation implies about the other.
func (c *Context) addRelation(x, y int32, coeff, offset int64, repo *affine.Repo, preferX, preferY bool) bool {
	if x == y {
		if coeff == 1 && offset == 0 {
			return false
		}
		// x = coeff*x + offset with coeff != 1 fixes x; coeff == 1, offset != 0
		// is UNSAT. Either way this is a domain restriction, not a merge.
		if coeff == 1 {
			c.IsUnsat = true
			return false
		}
		k := offset / (1 - coeff)
		if offset%(1-coeff) != 0 {
			c.IsUnsat = true
			return false
		}
		c.IntersectDomainWith(ref.FromVar(x), domain.Single(k))
		return false
	}
	if !repo.TryAdd(x, y, coeff, offset, preferX, preferY) {
		return false
	}
	// Each side v = rel.Coeff*rep + rel.Offset: propagate domain(x) and
	// domain(y) onto rep, then rep's narrowed domain back onto both.
	sides := []struct {
		v   int32
		rel affine.Relation
	}{{x, repo.Get(x)}, {y, repo.Get(y)}}
	repRef := ref.FromVar(sides[0].rel.Representative)
	for _, s := range sides {
		// v in vDomain  <=>  rep in (vDomain - offset) / coeff
		vDomain := c.DomainOf(ref.FromVar(s.v))
		c.IntersectDomainWith(repRef, vDomain.AdditionWith(domain.Single(-s.rel.Offset)).InverseMultiplicationBy(s.rel.Coeff))
	}
	for _, s := range sides {
		// rep in repDomain(after intersection) => v in coeff*rep + offset
		var exact bool
		implied := c.DomainOf(repRef).MultiplicationBy(s.rel.Coeff, &exact).AdditionWith(domain.Single(s.rel.Offset))
		c.IntersectDomainWith(ref.FromVar(s.v), implied)
	}
	return true
}

// StoreAbsRelation records that target's value always equals |value(r)|.
// It returns false if target was already recorded with a different source.
func (c *Context) StoreAbsRelation(target int32, r ref.Ref) bool {
	if existing, ok := c.absRelations[target]; ok {
		return existing == r
	}
	c.absRelations[target] = r
	d := c.DomainOf(r)
	nonNeg := d.IntersectionWith(domain.Range(0, domain.Max))
	negPart := d.IntersectionWith(domain.Range(domain.Min, -1)).Negation()
	abs := domain.FromIntervals(append(nonNeg.Intervals(), negPart.Intervals()...))
	c.IntersectDomainWith(ref.FromVar(target), abs)
	return true
}

// GetAbsRelation returns the reference whose absolute value target always
// equals, if target was recorded via StoreAbsRelation.
func (c *Context) GetAbsRelation(target int32) (ref.Ref, bool) {
	r, ok := c.absRelations[target]
	return r, ok
}

// GetAffineRelation returns r's relation to its class representative:
// value(r) == Coeff*value(Representative) + Offset, with the representative
// reported as a positive Ref. A variable that takes part in no relation is
// its own representative with Coeff 1 and Offset 0.
//
// The general repo's representative is then rewritten through the restricted
// Boolean-equivalence repo (var_equiv_relations): the two union-finds are
// coupled so that whichever variable the equivalence repo has chosen as
// canonical for a Boolean-equivalence class is always the one reported here,
// not whatever representative the general repo's independent rank bookkeeping
// happens to have picked.
func (c *Context) GetAffineRelation(r ref.Ref) (representative ref.Ref, coeff, offset int64) {
	rel := c.affineRelations.Get(ref.Var(r))
	equiv := c.varEquivRelations.Get(rel.Representative)
	// var(r) = rel.Coeff*rel.Representative + rel.Offset
	// rel.Representative = equiv.Coeff*equiv.Representative + equiv.Offset
	composedCoeff := rel.Coeff * equiv.Coeff
	composedOffset := rel.Coeff*equiv.Offset + rel.Offset
	cc := composedCoeff * ref.Signed(r, 1)
	oo := ref.Signed(r, composedOffset)
	return ref.FromVar(equiv.Representative), cc, oo
}

// GetVariableRepresentative returns the representative variable of v's
// Boolean-equivalence class, queried against var_equiv_relations exclusively
// (never the general affine repo): spec 4.3 reserves this operation for the
// restricted |coeff|=1, offset=0 relation set.
func (c *Context) GetVariableRepresentative(v int32) int32 {
	rel := c.varEquivRelations.Get(v)
	if (rel.Coeff != 1 && rel.Coeff != -1) || rel.Offset != 0 {
		panic("presolve: var_equiv_relations invariant violated: expected |coeff|=1, offset=0")
	}
	return rel.Representative
}

// GetLiteralRepresentative returns the Boolean-equivalence representative of
// literal l: a literal that always has l's truth value. ok is false if l
// cannot be used as a literal.
//
// The general affine relation for positive(l), (rep, c, o), relates the
// underlying variables' values: var(positive(l)) = c*var(rep) + o. Exactly
// one sign polarity of rep keeps that relation consistent with rep also
// being usable as a {0,1} literal: positive_possible when o == 0 or
// c+o == 1, negative_possible when o == 1 or c+o == 0.
func (c *Context) GetLiteralRepresentative(l ref.Ref) (rep ref.Ref, ok bool) {
	if !c.CanBeUsedAsLiteral(l) {
		return ref.Null, false
	}
	repRef, coeff, offset := c.GetAffineRelation(ref.Positive(l))
	if !c.CanBeUsedAsLiteral(repRef) {
		return l, true
	}
	positivePossible := offset == 0 || coeff+offset == 1
	negativePossible := offset == 1 || coeff+offset == 0
	var base ref.Ref
	switch {
	case positivePossible:
		base = repRef
	case negativePossible:
		base = ref.Negated(repRef)
	default:
		return l, true
	}
	if ref.IsPositive(l) {
		return base, true
	}
	return ref.Negated(base), true
}
