// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package domain implements the domain store: each variable's value set is
// an ordered union of disjoint closed integer intervals.  All arithmetic is
// exact over int64 with saturation at the boundary, matching the presolver's
// convention that a domain never needs more precision than a variable's
// feasible range.
package domain

import (
	"fmt"
	"sort"
)

// Min and Max bound the representable domain space.  Interval endpoints
// saturate to these rather than overflow int64 during arithmetic.
const (
	Min = int64(-(1 << 62))
	Max = int64(1 << 62)
)

// maxIntervals bounds how many disjoint intervals a Domain carries before
// operations fall back to widening the result to its bounding hull.  Real
// presolve domains rarely need more than a handful of intervals; without a
// cap, repeated scaling/addition could blow up the interval count.
const maxIntervals = 128

// interval is a closed range [lo, hi], lo <= hi.
type interval struct {
	lo, hi int64
}

// Domain is an ordered, non-overlapping, non-adjacent union of closed
// intervals. The zero value is the empty domain.
type Domain struct {
	ivs []interval
}

// Empty returns the empty domain.
func Empty() Domain { return Domain{} }

// Single returns the domain containing exactly v.
func Single(v int64) Domain { return Domain{ivs: []interval{{v, v}}} }

// Range returns the domain [lo, hi]. If lo > hi the result is Empty.
func Range(lo, hi int64) Domain {
	if lo > hi {
		return Empty()
	}
	return Domain{ivs: []interval{{clamp(lo), clamp(hi)}}}
}

// All returns the domain containing every representable value.
func All() Domain { return Range(Min, Max) }

// FromIntervals builds a Domain from a flat sequence of (lo, hi) pairs that
// need not be sorted or disjoint; it normalizes them the way FillDomainInProto
// / ReadDomainFromProto pairs do in the external model schema.
func FromIntervals(pairs [][2]int64) Domain {
	if len(pairs) == 0 {
		return Empty()
	}
	ivs := make([]interval, 0, len(pairs))
	for _, p := range pairs {
		if p[0] > p[1] {
			continue
		}
		ivs = append(ivs, interval{clamp(p[0]), clamp(p[1])})
	}
	return normalize(ivs)
}

func clamp(v int64) int64 {
	if v < Min {
		return Min
	}
	if v > Max {
		return Max
	}
	return v
}

// normalize sorts and merges overlapping/adjacent intervals.
func normalize(ivs []interval) Domain {
	if len(ivs) == 0 {
		return Empty()
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.lo <= last.hi+1 {
			if iv.hi > last.hi {
				last.hi = iv.hi
			}
			continue
		}
		out = append(out, iv)
	}
	return Domain{ivs: out}
}

// IsEmpty reports whether d contains no values.
func (d Domain) IsEmpty() bool { return len(d.ivs) == 0 }

// IsFixed reports whether d contains exactly one value.
func (d Domain) IsFixed() bool { return len(d.ivs) == 1 && d.ivs[0].lo == d.ivs[0].hi }

// Size returns the number of distinct values in d, saturating rather than
// overflowing for unbounded or huge domains.
func (d Domain) Size() int64 {
	var n int64
	for _, iv := range d.ivs {
		width := iv.hi - iv.lo + 1
		if n > Max-width {
			return Max
		}
		n += width
	}
	return n
}

// NumIntervals returns the number of disjoint intervals in d.
func (d Domain) NumIntervals() int { return len(d.ivs) }

// Min returns the smallest value in d. Behavior is undefined if d is empty.
func (d Domain) Min() int64 {
	if len(d.ivs) == 0 {
		return 0
	}
	return d.ivs[0].lo
}

// Max returns the largest value in d. Behavior is undefined if d is empty.
func (d Domain) Max() int64 {
	if len(d.ivs) == 0 {
		return 0
	}
	return d.ivs[len(d.ivs)-1].hi
}

// Contains reports whether v is in d.
func (d Domain) Contains(v int64) bool {
	i := sort.Search(len(d.ivs), func(i int) bool { return d.ivs[i].hi >= v })
	return i < len(d.ivs) && d.ivs[i].lo <= v
}

// IsIncludedIn reports whether d is a subset of other.
func (d Domain) IsIncludedIn(other Domain) bool {
	for _, iv := range d.ivs {
		lo := iv.lo
		for lo <= iv.hi {
			j := sort.Search(len(other.ivs), func(j int) bool { return other.ivs[j].hi >= lo })
			if j >= len(other.ivs) || other.ivs[j].lo > lo {
				return false
			}
			lo = other.ivs[j].hi + 1
		}
	}
	return true
}

// Equal reports whether d and other contain exactly the same values.
func (d Domain) Equal(other Domain) bool {
	if len(d.ivs) != len(other.ivs) {
		return false
	}
	for i := range d.ivs {
		if d.ivs[i] != other.ivs[i] {
			return false
		}
	}
	return true
}

// IntersectionWith returns the intersection of d and other.
func (d Domain) IntersectionWith(other Domain) Domain {
	var out []interval
	i, j := 0, 0
	for i < len(d.ivs) && j < len(other.ivs) {
		a, b := d.ivs[i], other.ivs[j]
		lo := maxI(a.lo, b.lo)
		hi := minI(a.hi, b.hi)
		if lo <= hi {
			out = append(out, interval{lo, hi})
		}
		if a.hi < b.hi {
			i++
		} else {
			j++
		}
	}
	return Domain{ivs: out}
}

// Negation returns {-v : v in d}.
func (d Domain) Negation() Domain {
	out := make([]interval, len(d.ivs))
	for i, iv := range d.ivs {
		out[len(d.ivs)-1-i] = interval{negClamp(iv.hi), negClamp(iv.lo)}
	}
	return Domain{ivs: out}
}

func negClamp(v int64) int64 {
	if v == Min {
		return Max
	}
	if v == Max {
		return Min
	}
	return -v
}

// Complement returns All() minus d.
func (d Domain) Complement() Domain {
	if d.IsEmpty() {
		return All()
	}
	var out []interval
	lo := Min
	for _, iv := range d.ivs {
		if iv.lo > lo {
			out = append(out, interval{lo, iv.lo - 1})
		}
		lo = iv.hi + 1
	}
	if lo <= Max {
		out = append(out, interval{lo, Max})
	}
	return Domain{ivs: out}
}

// AdditionWith returns the Minkowski sum {a + b : a in d, b in other}, widened
// to the bounding hull if the exact union would need more than maxIntervals
// intervals (the "too complex" fallback the presolver relies on).
func (d Domain) AdditionWith(other Domain) Domain {
	if d.IsEmpty() || other.IsEmpty() {
		return Empty()
	}
	if len(d.ivs)*len(other.ivs) > maxIntervals {
		return Range(addClamp(d.Min(), other.Min()), addClamp(d.Max(), other.Max()))
	}
	var out []interval
	for _, a := range d.ivs {
		for _, b := range other.ivs {
			out = append(out, interval{addClamp(a.lo, b.lo), addClamp(a.hi, b.hi)})
		}
	}
	return normalize(out).RelaxIfTooComplex()
}

func addClamp(a, b int64) int64 {
	s := a + b
	if a > 0 && b > 0 && s < a {
		return Max
	}
	if a < 0 && b < 0 && s > a {
		return Min
	}
	return clamp(s)
}

// MultiplicationBy maps each interval [lo, hi] of d to [lo*c, hi*c] (ends
// swapped for c < 0), so the result contains {v*c : v in d} and, for |c| > 1
// on a multi-value interval, also the non-multiples of c in between. If an
// endpoint saturates at Min or Max, exact is set to false.
func (d Domain) MultiplicationBy(c int64, exact *bool) Domain {
	if exact != nil {
		*exact = true
	}
	if c == 0 {
		if d.IsEmpty() {
			return Empty()
		}
		return Single(0)
	}
	out := make([]interval, 0, len(d.ivs))
	for _, iv := range d.ivs {
		lo, hi := mulClamp(iv.lo, c), mulClamp(iv.hi, c)
		if exact != nil && (lo/c != iv.lo || hi/c != iv.hi) {
			*exact = false
		}
		if c < 0 {
			lo, hi = hi, lo
		}
		out = append(out, interval{lo, hi})
	}
	return normalize(out).RelaxIfTooComplex()
}

func mulClamp(a, c int64) int64 {
	if a == 0 || c == 0 {
		return 0
	}
	p := a * c
	if p/c != a {
		if (a > 0) == (c > 0) {
			return Max
		}
		return Min
	}
	return clamp(p)
}

// InverseMultiplicationBy returns {v : v*c in d}, the domain that scales up to
// d under multiplication by c (used to undo a GCD factoring). c must be
// non-zero.
func (d Domain) InverseMultiplicationBy(c int64) Domain {
	var out []interval
	for _, iv := range d.ivs {
		lo, hi := divCeil(iv.lo, c), divFloor(iv.hi, c)
		if c < 0 {
			lo, hi = divCeil(iv.hi, c), divFloor(iv.lo, c)
		}
		if lo <= hi {
			out = append(out, interval{clamp(lo), clamp(hi)})
		}
	}
	return normalize(out)
}

func divFloor(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func divCeil(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

// RelaxIfTooComplex widens d to its bounding hull [Min(d), Max(d)] if it has
// more intervals than the implementation is willing to carry precisely.
func (d Domain) RelaxIfTooComplex() Domain {
	if len(d.ivs) <= maxIntervals {
		return d
	}
	return Range(d.Min(), d.Max())
}

// SimplifyUsingImpliedDomain returns a domain that holds exactly the same
// values as d among those also reachable under implied (a domain computed
// purely from arithmetic over other domains), with fewer intervals where
// possible. Gaps in d that implied also excludes are pointless to keep
// explicit, so they collapse into the neighboring interval;
// this mirrors objective-domain simplification in CanonicalizeObjective.
func (d Domain) SimplifyUsingImpliedDomain(implied Domain) Domain {
	inter := d.IntersectionWith(implied)
	if inter.IsEmpty() {
		return inter
	}
	// Close any gap in d that implied never visits: such a gap can never be
	// observed by downstream arithmetic, so we may as well round it away.
	var out []interval
	for _, iv := range d.ivs {
		piece := Domain{ivs: []interval{iv}}.IntersectionWith(implied)
		if piece.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && Range(out[n-1].hi+1, piece.Min()-1).IntersectionWith(implied).IsEmpty() {
			out[n-1].hi = piece.Max()
			continue
		}
		out = append(out, interval{piece.Min(), piece.Max()})
	}
	return normalize(out)
}

// A single GCD of "a domain" isn't a meaningful operation; callers instead
// fold GCD64 across a set of coefficients (e.g. CanonicalizeObjective).

// GCD64 returns the non-negative GCD of a and b (GCD64(0, x) == |x|).
func GCD64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func maxI(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Intervals returns the domain's intervals as (lo, hi) pairs, for proto
// serialization. The result must not be mutated.
func (d Domain) Intervals() [][2]int64 {
	out := make([][2]int64, len(d.ivs))
	for i, iv := range d.ivs {
		out[i] = [2]int64{iv.lo, iv.hi}
	}
	return out
}

func (d Domain) String() string {
	if d.IsEmpty() {
		return "{}"
	}
	s := "{"
	for i, iv := range d.ivs {
		if i > 0 {
			s += ","
		}
		if iv.lo == iv.hi {
			s += fmt.Sprintf("%d", iv.lo)
		} else {
			s += fmt.Sprintf("[%d,%d]", iv.lo, iv.hi)
		}
	}
	return s + "}"
}
