// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"encoding/json"
	"io"

	"github.com/irifrance/presolve/domain"
	"github.com/irifrance/presolve/ref"
)

// wireModel mirrors Model in a shape encoding/json can round-trip, since
// domain.Domain and ref.Ref carry no exported fields of their own. A real
// deployment would swap this for the system's actual protobuf schema; this
// codec exists only so the context has something concrete to read from and
// write back to in tests and the presolvectl command.
type wireModel struct {
	Variables   [][][2]int64     `json:"variables"`
	Constraints []wireConstraint `json:"constraints"`
	Intervals   []wireInterval   `json:"intervals,omitempty"`
	Objective   wireObjective    `json:"objective"`
}

type wireLinearExpr struct {
	Vars   []int32 `json:"vars,omitempty"`
	Coeffs []int64 `json:"coeffs,omitempty"`
	Offset int64   `json:"offset,omitempty"`
}

type wireInterval struct {
	Start wireLinearExpr `json:"start"`
	Size  wireLinearExpr `json:"size"`
	End   wireLinearExpr `json:"end"`
}

type wireConstraint struct {
	Kind               string         `json:"kind"`
	EnforcementLiteral []int32        `json:"enforcement_literal,omitempty"`
	Vars               []int32        `json:"vars,omitempty"`
	Coeffs             []int64        `json:"coeffs,omitempty"`
	Domain             [][2]int64     `json:"domain,omitempty"`
	Literals           []int32        `json:"literals,omitempty"`
	Interval           wireInterval   `json:"interval,omitempty"`
	IntervalRefs       []int32        `json:"interval_refs,omitempty"`
	Demands            []wireLinearExpr `json:"demands,omitempty"`
	Capacity           wireLinearExpr `json:"capacity,omitempty"`
}

type wireObjective struct {
	Vars          []int32    `json:"vars,omitempty"`
	Coeffs        []int64    `json:"coeffs,omitempty"`
	Domain        [][2]int64 `json:"domain,omitempty"`
	Offset        float64    `json:"offset"`
	ScalingFactor float64    `json:"scaling_factor"`
}

var kindNames = map[ConstraintKind]string{
	NoOp:           "no_op",
	KindLinear:     "linear",
	KindBoolAnd:    "bool_and",
	KindBoolOr:     "bool_or",
	KindBoolXor:    "bool_xor",
	KindInterval:   "interval",
	KindCumulative: "cumulative",
	KindNoOverlap:  "no_overlap",
}

var namesToKind = func() map[string]ConstraintKind {
	m := map[string]ConstraintKind{}
	for k, v := range kindNames {
		m[v] = k
	}
	return m
}()

func refsToInts(rs []ref.Ref) []int32 {
	if len(rs) == 0 {
		return nil
	}
	out := make([]int32, len(rs))
	for i, r := range rs {
		out[i] = int32(r)
	}
	return out
}

func intsToRefs(is []int32) []ref.Ref {
	if len(is) == 0 {
		return nil
	}
	out := make([]ref.Ref, len(is))
	for i, v := range is {
		out[i] = ref.Ref(v)
	}
	return out
}

func exprToWire(e LinearExpr) wireLinearExpr {
	return wireLinearExpr{Vars: refsToInts(e.Vars), Coeffs: e.Coeffs, Offset: e.Offset}
}

func wireToExpr(w wireLinearExpr) LinearExpr {
	return LinearExpr{Vars: intsToRefs(w.Vars), Coeffs: w.Coeffs, Offset: w.Offset}
}

func intervalToWire(iv IntervalConstraint) wireInterval {
	return wireInterval{Start: exprToWire(iv.Start), Size: exprToWire(iv.Size), End: exprToWire(iv.End)}
}

func wireToInterval(w wireInterval) IntervalConstraint {
	return IntervalConstraint{Start: wireToExpr(w.Start), Size: wireToExpr(w.Size), End: wireToExpr(w.End)}
}

// Encode writes m to w in this package's JSON wire format.
func Encode(w io.Writer, m *Model) error {
	wm := wireModel{
		Variables: make([][][2]int64, len(m.Variables)),
		Objective: wireObjective{
			Vars:          refsToInts(m.Objective.Vars),
			Coeffs:        m.Objective.Coeffs,
			Domain:        m.Objective.Domain.Intervals(),
			Offset:        m.Objective.Offset,
			ScalingFactor: m.Objective.ScalingFactor,
		},
	}
	for i, d := range m.Variables {
		wm.Variables[i] = d.Intervals()
	}
	for _, iv := range m.Intervals {
		wm.Intervals = append(wm.Intervals, intervalToWire(iv))
	}
	for _, ct := range m.Constraints {
		wc := wireConstraint{
			Kind:               kindNames[ct.Kind],
			EnforcementLiteral: refsToInts(ct.EnforcementLiteral),
			Domain:             ct.Linear.Domain.Intervals(),
			Vars:               refsToInts(ct.Linear.Vars),
			Coeffs:             ct.Linear.Coeffs,
			Literals:           refsToInts(ct.Literals),
			Interval:           intervalToWire(ct.Interval),
			IntervalRefs:       ct.IntervalRefs,
			Capacity:           exprToWire(ct.Capacity),
		}
		for _, d := range ct.Demands {
			wc.Demands = append(wc.Demands, exprToWire(d))
		}
		wm.Constraints = append(wm.Constraints, wc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wm)
}

// Decode reads a Model from r in this package's JSON wire format.
func Decode(r io.Reader) (*Model, error) {
	var wm wireModel
	if err := json.NewDecoder(r).Decode(&wm); err != nil {
		return nil, err
	}
	m := New()
	for _, pairs := range wm.Variables {
		m.Variables = append(m.Variables, domain.FromIntervals(pairs))
	}
	for _, wi := range wm.Intervals {
		m.Intervals = append(m.Intervals, wireToInterval(wi))
	}
	for _, wc := range wm.Constraints {
		ct := Constraint{
			Kind:               namesToKind[wc.Kind],
			EnforcementLiteral: intsToRefs(wc.EnforcementLiteral),
			Linear: LinearConstraint{
				Vars:   intsToRefs(wc.Vars),
				Coeffs: wc.Coeffs,
				Domain: domain.FromIntervals(wc.Domain),
			},
			Literals:     intsToRefs(wc.Literals),
			Interval:     wireToInterval(wc.Interval),
			IntervalRefs: wc.IntervalRefs,
			Capacity:     wireToExpr(wc.Capacity),
		}
		for _, d := range wc.Demands {
			ct.Demands = append(ct.Demands, wireToExpr(d))
		}
		m.Constraints = append(m.Constraints, ct)
	}
	m.Objective = Objective{
		Vars:          intsToRefs(wm.Objective.Vars),
		Coeffs:        wm.Objective.Coeffs,
		Domain:        domain.FromIntervals(wm.Objective.Domain),
		Offset:        wm.Objective.Offset,
		ScalingFactor: wm.Objective.ScalingFactor,
	}
	if m.Objective.ScalingFactor == 0 {
		m.Objective.ScalingFactor = 1
	}
	return m, nil
}
