// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package encoding holds the raw (variable, value) -> literal maps behind
// the context's Boolean encoding table: a full map for proven equalities,
// and two half-maps for one-way implications still waiting to be proven
// symmetric. The promotion logic that decides when two half-encodings prove
// a full one lives in the context, which is the only place with enough
// context (affine relations, new-variable creation) to act on that decision.
package encoding

import "github.com/irifrance/presolve/ref"

// Key identifies a (variable, value) pair in any of the three maps.
type Key struct {
	Var   int32
	Value int64
}

// Table is the append-only (variable, value) -> literal encoding store, plus
// its two half-encoding companions.
type Table struct {
	full map[Key]ref.Ref
	eq   map[Key]map[ref.Ref]bool // literal implies var == value
	neq  map[Key]map[ref.Ref]bool // literal implies var != value
}

// New returns an empty encoding table.
func New() *Table {
	return &Table{
		full: map[Key]ref.Ref{},
		eq:   map[Key]map[ref.Ref]bool{},
		neq:  map[Key]map[ref.Ref]bool{},
	}
}

// Lookup returns the literal encoding (variable == value), if any.
func (t *Table) Lookup(k Key) (ref.Ref, bool) {
	l, ok := t.full[k]
	return l, ok
}

// Insert records (variable == value) <=> literal, returning false if the key
// was already present (the caller must then reconcile the two literals).
func (t *Table) Insert(k Key, literal ref.Ref) (ref.Ref, bool) {
	if existing, ok := t.full[k]; ok {
		return existing, false
	}
	t.full[k] = literal
	return literal, true
}

// Overwrite forcibly sets the full encoding of k, used when a half-encoding
// promotion or a two-value-domain derivation computes the literal directly.
func (t *Table) Overwrite(k Key, literal ref.Ref) {
	t.full[k] = literal
}

// InsertHalf records literal in the eq (imply_eq=true) or neq (imply_eq=false)
// half-map for k. It returns false if literal was already present there.
func (t *Table) InsertHalf(k Key, literal ref.Ref, impliesEq bool) bool {
	m := t.halfMap(impliesEq)
	set, ok := m[k]
	if !ok {
		set = map[ref.Ref]bool{}
		m[k] = set
	}
	if set[literal] {
		return false
	}
	set[literal] = true
	return true
}

// OppositeHasNegation reports whether the opposite half-map (neq if
// impliesEq, eq otherwise) already contains ref.Negated(literal) for key k --
// the condition under which the two halves together prove a full encoding.
func (t *Table) OppositeHasNegation(k Key, literal ref.Ref, impliesEq bool) bool {
	m := t.halfMap(!impliesEq)
	set, ok := m[k]
	if !ok {
		return false
	}
	return set[ref.Negated(literal)]
}

func (t *Table) halfMap(impliesEq bool) map[Key]map[ref.Ref]bool {
	if impliesEq {
		return t.eq
	}
	return t.neq
}
