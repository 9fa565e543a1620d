// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package stats implements the bookkeeping a presolve driver uses to decide
// what to re-run: per-rule-name counters, a monotonic operation counter, and
// a modified-variables bit-set the driver drains each sweep.
package stats

import "log"

// Rules counts how many times each named rewrite rule fired, and how many
// presolve operations have run in total. Logging is opt-in via Enabled,
// matching a presolve driver that only wants per-rule traces under -v.
type Rules struct {
	Enabled   bool
	byName    map[string]int64
	NumOps    int64
	Logger    *log.Logger
}

// NewRules returns a fresh, disabled stats collector.
func NewRules() *Rules {
	return &Rules{byName: map[string]int64{}}
}

// Update records one application of the named rule: it always increments the
// global operation count, and when Enabled is set it also logs the event and
// increments the rule's own counter.
func (r *Rules) Update(name string) {
	if r.Enabled {
		if r.Logger != nil {
			r.Logger.Printf("%d: %s", r.NumOps, name)
		} else {
			log.Printf("%d: %s", r.NumOps, name)
		}
		r.byName[name]++
	}
	r.NumOps++
}

// ByName returns a snapshot of the per-rule counters.
func (r *Rules) ByName() map[string]int64 {
	out := make(map[string]int64, len(r.byName))
	for k, v := range r.byName {
		out[k] = v
	}
	return out
}

// Clear resets all per-rule counters (but not NumOps).
func (r *Rules) Clear() {
	r.byName = map[string]int64{}
}

// Modified is a growable bit-set over variable indices, used to track which
// domains changed since the driver last drained it.
type Modified struct {
	bits []bool
}

// Set marks variable v as modified.
func (m *Modified) Set(v int32) {
	for int32(len(m.bits)) <= v {
		m.bits = append(m.bits, false)
	}
	m.bits[v] = true
}

// Get reports whether v has been marked modified since the last Drain.
func (m *Modified) Get(v int32) bool {
	if v < 0 || int32(len(m.bits)) <= v {
		return false
	}
	return m.bits[v]
}

// Drain returns the sorted indices of every modified variable and clears the
// set, the operation a presolve driver performs once per sweep.
func (m *Modified) Drain() []int32 {
	var out []int32
	for i, b := range m.bits {
		if b {
			out = append(out, int32(i))
			m.bits[i] = false
		}
	}
	return out
}
