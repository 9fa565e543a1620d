// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/ref"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := New()
	m.Variables = []domain.Domain{domain.Range(0, 5), domain.Range(-3, 3)}
	m.Constraints = []Constraint{{
		Kind: KindLinear,
		Linear: LinearConstraint{
			Vars:   []ref.Ref{ref.FromVar(0), ref.FromVar(1)},
			Coeffs: []int64{1, -1},
			Domain: domain.Range(0, 2),
		},
	}, {
		Kind:               KindBoolOr,
		EnforcementLiteral: []ref.Ref{ref.FromVar(0)},
		Literals:           []ref.Ref{ref.FromVar(1), ref.Negated(ref.FromVar(0))},
	}}
	m.Objective = Objective{
		Vars:          []ref.Ref{ref.FromVar(0), ref.FromVar(1)},
		Coeffs:        []int64{2, 3},
		Domain:        domain.All(),
		ScalingFactor: 1,
	}

	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	domainEqual := cmp.Comparer(func(a, b domain.Domain) bool { return a.Equal(b) })
	if diff := cmp.Diff(m, got, domainEqual); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
