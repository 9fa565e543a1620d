// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package objective holds the sparse objective map and its accompanying
// domain/offset/scaling-factor state. Canonicalization and substitution are
// implemented on the context (they need affine relations, the usage graph,
// and domain queries); this package only provides the map itself plus the
// bookkeeping (sorted iteration, zero-entry pruning) that determinism and
// sparsity require everywhere else.
package objective

import (
	"sort"

	"github.com/irifrance/presolve/domain"
)

// State is the objective in canonical form: a sparse coefficient map, an
// integer domain on the raw objective value, and the floating
// offset/scaling-factor that map the raw value to the user-visible one.
type State struct {
	Coeffs               map[int32]int64
	Domain               domain.Domain
	Offset               float64
	ScalingFactor        float64
	DomainIsConstraining bool
}

// New returns an empty objective with scaling factor 1 (the proto default)
// and an unconstrained domain.
func New() *State {
	return &State{
		Coeffs:        map[int32]int64{},
		Domain:        domain.All(),
		ScalingFactor: 1,
	}
}

// Add adds delta to var's coefficient, erasing the entry if it becomes zero.
// It returns the new coefficient and whether the entry existed before the
// call (so callers can report newly-introduced variables).
func (s *State) Add(v int32, delta int64) (newCoeff int64, existed bool) {
	old, existed := s.Coeffs[v]
	newCoeff = old + delta
	if newCoeff == 0 {
		delete(s.Coeffs, v)
	} else {
		s.Coeffs[v] = newCoeff
	}
	return newCoeff, existed
}

// Set assigns var's coefficient directly, erasing the entry if coeff is zero.
func (s *State) Set(v int32, coeff int64) {
	if coeff == 0 {
		delete(s.Coeffs, v)
		return
	}
	s.Coeffs[v] = coeff
}

// Get returns var's coefficient (0 if absent) and whether it was present.
func (s *State) Get(v int32) (int64, bool) {
	c, ok := s.Coeffs[v]
	return c, ok
}

// Erase removes var's entry entirely.
func (s *State) Erase(v int32) { delete(s.Coeffs, v) }

// Entry is one (variable, coefficient) pair, used for deterministic
// iteration.
type Entry struct {
	Var   int32
	Coeff int64
}

// SortedEntries returns the map's entries ordered by variable index, the
// determinism CanonicalizeObjective and WriteObjectiveToProto both need.
func (s *State) SortedEntries() []Entry {
	out := make([]Entry, 0, len(s.Coeffs))
	for v, c := range s.Coeffs {
		out = append(out, Entry{Var: v, Coeff: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}
