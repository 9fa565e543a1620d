// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package presolve

import (
	"github.com/irifrance/presolve/internal/encoding"
	"github.com/irifrance/presolve/ref"
)

// HasVarValueEncoding reports whether (r == value) already has a literal,
// and returns its literal representative.
func (c *Context) HasVarValueEncoding(r ref.Ref, value int64) (ref.Ref, bool) {
	k := c.encodingKey(r, value)
	l, ok := c.enc.Lookup(k)
	if !ok {
		return ref.Null, false
	}
	if rep, ok := c.GetLiteralRepresentative(l); ok {
		return rep, true
	}
	return l, true
}

// encodingKey normalizes (r, value) to the (variable, value) pair the table
// is keyed on, folding r's sign into the target value.
func (c *Context) encodingKey(r ref.Ref, value int64) encoding.Key {
	return encoding.Key{Var: ref.Var(r), Value: ref.Signed(r, value)}
}

// trueLiteral returns a literal permanently fixed to true, allocating the
// backing constant variable on first use.
func (c *Context) trueLiteral() ref.Ref { return c.GetOrCreateConstantVar(1) }

// falseLiteral returns a literal permanently fixed to false.
func (c *Context) falseLiteral() ref.Ref { return ref.Negated(c.trueLiteral()) }

// GetOrCreateLiteralForEquality returns a literal equivalent to the
// predicate r == value, creating the encoding if it doesn't exist yet.
func (c *Context) GetOrCreateLiteralForEquality(r ref.Ref, value int64) ref.Ref {
	if !c.DomainContains(r, value) {
		return c.falseLiteral()
	}
	if l, ok := c.HasVarValueEncoding(r, value); ok {
		return l
	}
	d := c.DomainOf(r)
	if d.IsFixed() {
		l := c.trueLiteral()
		c.InsertVarValueEncoding(l, r, value)
		return l
	}
	if d.Size() == 2 {
		a, b := d.Min(), d.Max()
		other := a
		if value == a {
			other = b
		}
		if l, ok := c.HasVarValueEncoding(r, other); ok {
			neg := ref.Negated(l)
			c.InsertVarValueEncoding(neg, r, value)
			return neg
		}
		if a == 0 && b == 1 && ref.IsPositive(r) {
			// r is itself a Boolean variable: use it as its own literal.
			lit := r
			if value == 0 {
				lit = ref.Negated(r)
			}
			c.InsertVarValueEncoding(lit, r, value)
			return lit
		}
		lit := c.NewBoolVar()
		c.InsertVarValueEncoding(lit, r, other)
		if value == other {
			return lit
		}
		return ref.Negated(lit)
	}
	lit := c.NewBoolVar()
	c.InsertVarValueEncoding(lit, r, value)
	return lit
}

// InsertVarValueEncoding records that literal is equivalent to (r == value).
// If the key was already present with a different literal, the two are
// merged via a Boolean equality instead of overwriting. On a two-value
// domain it also derives the "other value" encoding and the arithmetic
// identity tying literal to r directly, as a fresh affine relation; on
// larger domains it installs the two half-reifications instead.
func (c *Context) InsertVarValueEncoding(literal, r ref.Ref, value int64) ref.Ref {
	k := c.encodingKey(r, value)
	existing, inserted := c.enc.Insert(k, literal)
	if !inserted {
		if existing != literal {
			c.StoreBooleanEqualityRelation(literal, existing)
		}
		return existing
	}
	if c.Stats != nil {
		c.Stats.Update("InsertVarValueEncoding")
	}

	d := c.DomainOf(r)
	if d.Size() == 2 {
		a, b := d.Min(), d.Max()
		other := a
		if value == a {
			other = b
		}
		if _, ok := c.HasVarValueEncoding(r, other); !ok {
			c.enc.Overwrite(c.encodingKey(r, other), ref.Negated(literal))
		}
		// r == other + (value-other)*literal, where a negated literal equals
		// 1 - positive(literal); stored on the underlying variables, so r's
		// sign is folded into the coefficient and offset.
		coeff, offset := value-other, other
		if !ref.IsPositive(literal) {
			coeff, offset = other-value, value
		}
		c.AddRelation(ref.Var(r), ref.Var(literal), ref.Signed(r, coeff), ref.Signed(r, offset))
		return literal
	}

	c.StoreLiteralImpliesVarEqValue(literal, r, value)
	c.StoreLiteralImpliesVarNEqValue(ref.Negated(literal), r, value)
	return literal
}

// StoreLiteralImpliesVarEqValue records literal => (r == value) as a
// half-encoding. When the opposite half (literal => r != value, recorded via
// StoreLiteralImpliesVarNEqValue) already holds the negated literal for the
// same key, the two halves are promoted to a full encoding, merging with any
// literal already encoded there.
func (c *Context) StoreLiteralImpliesVarEqValue(literal, r ref.Ref, value int64) {
	k := c.encodingKey(r, value)
	if !c.enc.InsertHalf(k, literal, true) {
		return
	}
	if c.enc.OppositeHasNegation(k, literal, true) {
		c.promoteHalfEncoding(k, literal)
	}
}

// StoreLiteralImpliesVarNEqValue records literal => (r != value) as a
// half-encoding, with the same promotion behavior as
// StoreLiteralImpliesVarEqValue.
func (c *Context) StoreLiteralImpliesVarNEqValue(literal, r ref.Ref, value int64) {
	k := c.encodingKey(r, value)
	if !c.enc.InsertHalf(k, literal, false) {
		return
	}
	if c.enc.OppositeHasNegation(k, literal, false) {
		c.promoteHalfEncoding(k, ref.Negated(literal))
	}
}

func (c *Context) promoteHalfEncoding(k encoding.Key, literal ref.Ref) {
	if existing, ok := c.enc.Lookup(k); ok && existing != literal {
		c.StoreBooleanEqualityRelation(literal, existing)
		return
	}
	c.enc.Overwrite(k, literal)
	if c.Stats != nil {
		c.Stats.Update("PromoteHalfVarValueEncoding")
	}
}
