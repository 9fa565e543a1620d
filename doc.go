// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package presolve implements the mutable context a CP-SAT style presolver
// rewrites against: variable domains, the affine-equivalence union-finds,
// the literal<->(variable=value) encoding table, the constraint<->variable
// usage graph, and the objective in canonical form.
//
// Concrete rewrite rules, the search engine, model serialization, and CLI
// plumbing are all external collaborators; this package only owns the
// invariants every rule depends on. Context is not safe for concurrent use:
// every public method takes an implicit exclusive borrow of the whole
// struct, and no method may be called while a previous one is still
// executing on the same Context.
package presolve

import (
	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/internal/affine"
	"github.com/irifrance/presolve/internal/encoding"
	"github.com/irifrance/presolve/internal/graph"
	"github.com/irifrance/presolve/internal/objective"
	"github.com/irifrance/presolve/internal/stats"
	"github.com/irifrance/presolve/model"
	"github.com/irifrance/presolve/ref"
)

// Context is the presolver's shared mutable state.
type Context struct {
	// Model is the working model: constraints and the objective. Variable
	// domains live in domains below, not in Model.Variables, which is only
	// synced on demand (see SyncVariableDomains) -- every other query and
	// mutation goes through the Context methods in this package.
	Model *model.Model

	domains       []domain.Domain
	constantToRef map[int64]int32

	affineRelations   *affine.Repo
	varEquivRelations *affine.Repo
	affineConstraints map[int]bool
	absRelations      map[int32]ref.Ref

	enc   *encoding.Table
	usage *graph.Usage

	Objective *objective.State

	Modified stats.Modified
	Stats    *stats.Rules

	IsUnsat                  bool
	KeepAllFeasibleSolutions bool
}

// NewContext returns an empty context with an empty working model.
func NewContext() *Context {
	return &Context{
		Model:             model.New(),
		constantToRef:     map[int64]int32{},
		affineRelations:   affine.NewRepo(),
		varEquivRelations: affine.NewRepo(),
		affineConstraints: map[int]bool{},
		absRelations:      map[int32]ref.Ref{},
		enc:               encoding.New(),
		usage:             graph.New(),
		Objective:         objective.New(),
	}
}

// NewContextFromModel returns a context whose variables and domains are
// seeded from m (InitializeNewDomains in the original design), and whose
// objective is read from m.Objective.
func NewContextFromModel(m *model.Model) *Context {
	c := NewContext()
	c.Model = m
	c.initializeNewDomains()
	c.ReadObjectiveFromProto()
	return c
}

// initializeNewDomains creates internal state for every variable in Model
// that the context hasn't indexed yet; called at construction and whenever
// the driver appends new variables to Model directly.
func (c *Context) initializeNewDomains() {
	for i := len(c.domains); i < len(c.Model.Variables); i++ {
		d := c.Model.Variables[i]
		c.domains = append(c.domains, d)
		if d.IsEmpty() {
			c.IsUnsat = true
			return
		}
		if d.IsFixed() {
			c.exploitFixedDomain(int32(i))
		}
	}
}

// exploitFixedDomain registers var (known fixed) as the representative for
// its constant value, or ties it to a previously-seen variable with the same
// constant value.
func (c *Context) exploitFixedDomain(v int32) {
	min := c.domains[v].Min()
	if rep, ok := c.constantToRef[min]; ok {
		if rep != v {
			c.addRelation(v, rep, 1, 0, c.affineRelations, false, false)
			c.addRelation(v, rep, 1, 0, c.varEquivRelations, false, false)
		}
	} else {
		c.constantToRef[min] = v
	}
}

// NewVariable appends a variable with domain d and returns its positive
// reference. If d is empty, IsUnsat is set.
func (c *Context) NewVariable(d domain.Domain) ref.Ref {
	v := int32(len(c.domains))
	c.Model.Variables = append(c.Model.Variables, d)
	c.domains = append(c.domains, d)
	c.usage.Grow(c.usage.NumConstraints()) // no-op, keeps usage sized by constraints not vars
	if d.IsEmpty() {
		c.IsUnsat = true
		return ref.FromVar(v)
	}
	if d.IsFixed() {
		c.exploitFixedDomain(v)
	}
	return ref.FromVar(v)
}

// NewBoolVar appends a fresh Boolean variable (domain {0,1}).
func (c *Context) NewBoolVar() ref.Ref {
	return c.NewVariable(domain.Range(0, 1))
}

// GetOrCreateConstantVar returns the canonical variable whose domain is
// {k}, allocating it on first use.
func (c *Context) GetOrCreateConstantVar(k int64) ref.Ref {
	if v, ok := c.constantToRef[k]; ok {
		return ref.FromVar(v)
	}
	r := c.NewVariable(domain.Single(k))
	c.constantToRef[k] = ref.Var(r)
	return r
}

// NumVariables returns how many variables the context has created.
func (c *Context) NumVariables() int { return len(c.domains) }

// DomainIsEmpty reports whether ref's underlying variable has an empty
// domain.
func (c *Context) DomainIsEmpty(r ref.Ref) bool {
	return c.domains[ref.Var(r)].IsEmpty()
}

// IsFixed reports whether r's underlying variable has a singleton domain.
func (c *Context) IsFixed(r ref.Ref) bool {
	return c.domains[ref.Var(r)].IsFixed()
}

// CanBeUsedAsLiteral reports whether r's underlying variable's domain is
// included in {0, 1}.
func (c *Context) CanBeUsedAsLiteral(r ref.Ref) bool {
	d := c.domains[ref.Var(r)]
	return d.Min() >= 0 && d.Max() <= 1
}

// LiteralIsTrue reports whether literal l is proven true. l must satisfy
// CanBeUsedAsLiteral.
func (c *Context) LiteralIsTrue(l ref.Ref) bool {
	d := c.domains[ref.Var(l)]
	if ref.IsPositive(l) {
		return d.Min() == 1
	}
	return d.Max() == 0
}

// LiteralIsFalse reports whether literal l is proven false. l must satisfy
// CanBeUsedAsLiteral.
func (c *Context) LiteralIsFalse(l ref.Ref) bool {
	d := c.domains[ref.Var(l)]
	if ref.IsPositive(l) {
		return d.Max() == 0
	}
	return d.Min() == 1
}

// MinOf returns the minimum value r can take.
func (c *Context) MinOf(r ref.Ref) int64 {
	d := c.domains[ref.Var(r)]
	if ref.IsPositive(r) {
		return d.Min()
	}
	return -d.Max()
}

// MaxOf returns the maximum value r can take.
func (c *Context) MaxOf(r ref.Ref) int64 {
	d := c.domains[ref.Var(r)]
	if ref.IsPositive(r) {
		return d.Max()
	}
	return -d.Min()
}

// DomainOf returns the signed view of r's domain.
func (c *Context) DomainOf(r ref.Ref) domain.Domain {
	d := c.domains[ref.Var(r)]
	if ref.IsPositive(r) {
		return d
	}
	return d.Negation()
}

// DomainContains reports whether r's signed domain contains value.
func (c *Context) DomainContains(r ref.Ref, value int64) bool {
	if ref.IsPositive(r) {
		return c.domains[ref.Var(r)].Contains(value)
	}
	return c.domains[ref.Var(r)].Contains(-value)
}

// IntersectDomainWith replaces r's domain with its intersection with d
// (negating d first if r is a negative reference). It returns false and
// sets IsUnsat if the result is empty. When the domain shrinks and r's
// variable shares an affine-relation class with other variables, each of
// them is narrowed to what the relations imply.
func (c *Context) IntersectDomainWith(r ref.Ref, d domain.Domain) bool {
	v := ref.Var(r)
	target := d
	if !ref.IsPositive(r) {
		target = d.Negation()
	}
	if c.domains[v].IsIncludedIn(target) {
		return true
	}
	c.domains[v] = c.domains[v].IntersectionWith(target)
	c.Modified.Set(v)
	if c.domains[v].IsEmpty() {
		c.IsUnsat = true
		return false
	}
	if c.affineRelations.ClassSize(v) > 1 {
		// v = rel.Coeff*rep + rel.Offset: carry the new domain through rep to
		// every other member w = wRel.Coeff*rep + wRel.Offset of the class.
		rel := c.affineRelations.Get(v)
		repDomain := c.domains[v].AdditionWith(domain.Single(-rel.Offset)).InverseMultiplicationBy(rel.Coeff)
		for w := int32(0); w < int32(len(c.domains)); w++ {
			wRel := c.affineRelations.Get(w)
			if w == v || wRel.Representative != rel.Representative {
				continue
			}
			var exact bool
			if !c.IntersectDomainWith(ref.FromVar(w), repDomain.MultiplicationBy(wRel.Coeff, &exact).AdditionWith(domain.Single(wRel.Offset))) {
				return false
			}
		}
	}
	return true
}

// SetLiteralFalse intersects l's variable with {0} (or {1} for a negated
// literal) so that l is false.
func (c *Context) SetLiteralFalse(l ref.Ref) bool {
	if ref.IsPositive(l) {
		return c.IntersectDomainWith(l, domain.Single(0))
	}
	return c.IntersectDomainWith(ref.Positive(l), domain.Single(1))
}

// SetLiteralTrue intersects l's domain so that l is true.
func (c *Context) SetLiteralTrue(l ref.Ref) bool {
	return c.SetLiteralFalse(ref.Negated(l))
}

// MinOfExpr returns the minimum value of offset + sum(coeffs[i]*vars[i]).
func (c *Context) MinOfExpr(e model.LinearExpr) int64 {
	result := e.Offset
	for i, v := range e.Vars {
		coeff := e.Coeffs[i]
		if coeff > 0 {
			result += coeff * c.MinOf(v)
		} else {
			result += coeff * c.MaxOf(v)
		}
	}
	return result
}

// MaxOfExpr returns the maximum value of offset + sum(coeffs[i]*vars[i]).
func (c *Context) MaxOfExpr(e model.LinearExpr) int64 {
	result := e.Offset
	for i, v := range e.Vars {
		coeff := e.Coeffs[i]
		if coeff > 0 {
			result += coeff * c.MaxOf(v)
		} else {
			result += coeff * c.MinOf(v)
		}
	}
	return result
}

// SyncVariableDomains writes the live domains back into Model.Variables
// (elsewhere that field is only read when seeding domains and appended to by
// NewVariable); a driver calls this immediately before handing the model to
// serialization.
func (c *Context) SyncVariableDomains() {
	for i, d := range c.domains {
		c.Model.Variables[i] = d
	}
}
