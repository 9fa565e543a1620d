// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package domain

import "testing"

func TestRangeEmpty(t *testing.T) {
	d := Range(5, 2)
	if !d.IsEmpty() {
		t.Errorf("expected empty domain for lo > hi")
	}
}

func TestIntersectionWith(t *testing.T) {
	d := Range(0, 4)
	got := d.IntersectionWith(Range(2, 100))
	want := Range(2, 4)
	if !got.Equal(want) {
		t.Errorf("IntersectionWith: got %s want %s", got, want)
	}
	if got.Min() != 2 {
		t.Errorf("Min: got %d want 2", got.Min())
	}
}

func TestIntersectionIdempotentOnSuperset(t *testing.T) {
	d := Range(0, 4)
	got := d.IntersectionWith(Range(-10, 10))
	if !got.Equal(d) {
		t.Errorf("intersection with superset changed domain: %s", got)
	}
}

func TestNegation(t *testing.T) {
	d := FromIntervals([][2]int64{{1, 3}, {7, 7}})
	got := d.Negation()
	want := FromIntervals([][2]int64{{-7, -7}, {-3, -1}})
	if !got.Equal(want) {
		t.Errorf("Negation: got %s want %s", got, want)
	}
	if !got.Negation().Equal(d) {
		t.Errorf("Negation not involutive")
	}
}

func TestAdditionWith(t *testing.T) {
	d := Range(0, 2)
	got := d.AdditionWith(Single(10))
	want := Range(10, 12)
	if !got.Equal(want) {
		t.Errorf("AdditionWith: got %s want %s", got, want)
	}
}

func TestMultiplicationBy(t *testing.T) {
	d := Range(1, 3)
	got := d.MultiplicationBy(-2, nil)
	want := FromIntervals([][2]int64{{-6, -2}})
	if !got.Equal(want) {
		t.Errorf("MultiplicationBy(-2): got %s want %s", got, want)
	}
}

func TestInverseMultiplicationBy(t *testing.T) {
	d := Range(2, 8).MultiplicationBy(3, nil)
	got := d.InverseMultiplicationBy(3)
	if !got.Equal(Range(2, 8)) {
		t.Errorf("InverseMultiplicationBy: got %s want [2,8]", got)
	}
}

func TestComplement(t *testing.T) {
	d := Range(0, 1)
	c := d.Complement()
	if c.Contains(0) || c.Contains(1) {
		t.Errorf("complement contains original values: %s", c)
	}
	if !c.Contains(-1) || !c.Contains(2) {
		t.Errorf("complement missing neighboring values: %s", c)
	}
}

func TestIsIncludedIn(t *testing.T) {
	small := FromIntervals([][2]int64{{1, 2}, {5, 5}})
	big := Range(0, 10)
	if !small.IsIncludedIn(big) {
		t.Errorf("expected small included in big")
	}
	if big.IsIncludedIn(small) {
		t.Errorf("did not expect big included in small")
	}
}

func TestSimplifyUsingImpliedDomain(t *testing.T) {
	d := FromIntervals([][2]int64{{0, 0}, {10, 10}})
	implied := Range(0, 10)
	got := d.SimplifyUsingImpliedDomain(implied)
	if !got.Equal(d) {
		t.Errorf("SimplifyUsingImpliedDomain changed a domain with no slack: got %s", got)
	}
}

func TestGCD64(t *testing.T) {
	if g := GCD64(6, 9); g != 3 {
		t.Errorf("GCD64(6,9) = %d, want 3", g)
	}
	if g := GCD64(0, 5); g != 5 {
		t.Errorf("GCD64(0,5) = %d, want 5", g)
	}
}

func TestNormalizeMergesAdjacent(t *testing.T) {
	d := FromIntervals([][2]int64{{1, 2}, {3, 4}, {6, 7}})
	if d.NumIntervals() != 2 {
		t.Errorf("expected adjacent intervals [1,2],[3,4] to merge, got %s", d)
	}
}
