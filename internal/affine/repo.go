// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package affine implements the union-find used to track affine relations
// x = c*y + o between variables. Two independent Repo values back the
// context's two coupled relation sets: one unrestricted (any c != 0), one
// restricted to the Boolean-preserving case (|c| = 1, o = 0).
package affine

// Relation describes a variable's affine relation to its class
// representative: v = Coeff*Representative + Offset, with Coeff == 1 and
// Offset == 0 whenever v is itself the representative.
type Relation struct {
	Representative int32
	Coeff          int64
	Offset         int64
}

// node holds, for a non-root variable, its affine transform to its parent:
// self = coeffToParent*parent + offsetToParent. Root nodes have parent == -1.
type node struct {
	parent         int32
	rank           int32
	classSize      int32
	coeffToParent  int64
	offsetToParent int64
}

// Repo is a union-find over variables, keyed by 0-based positive variable
// index, recording affine relations between equivalence classes.
type Repo struct {
	nodes []node
}

// NewRepo creates an empty repository.
func NewRepo() *Repo {
	return &Repo{}
}

func (r *Repo) growTo(v int32) {
	for int32(len(r.nodes)) <= v {
		r.nodes = append(r.nodes, node{parent: -1, rank: 0, classSize: 1})
	}
}

// Get returns v's relation to its class representative: v = Coeff*rep +
// Offset. Get performs path compression, flattening v's stored transform
// directly to the root it finds.
func (r *Repo) Get(v int32) Relation {
	r.growTo(v)
	return r.find(v)
}

// find returns v's relation to the root of its tree, compressing the path.
func (r *Repo) find(v int32) Relation {
	n := &r.nodes[v]
	if n.parent == -1 {
		return Relation{Representative: v, Coeff: 1, Offset: 0}
	}
	parentRel := r.find(n.parent)
	// v = n.coeff*parent + n.offset, parent = parentRel.Coeff*rep + parentRel.Offset
	// => v = (n.coeff*parentRel.Coeff)*rep + (n.coeff*parentRel.Offset + n.offset)
	coeff := n.coeffToParent * parentRel.Coeff
	offset := n.coeffToParent*parentRel.Offset + n.offsetToParent
	n.parent = parentRel.Representative
	n.coeffToParent = coeff
	n.offsetToParent = offset
	return Relation{Representative: parentRel.Representative, Coeff: coeff, Offset: offset}
}

// ClassSize returns the number of variables in v's equivalence class.
func (r *Repo) ClassSize(v int32) int32 {
	r.growTo(v)
	rel := r.find(v)
	return r.nodes[rel.Representative].classSize
}

// TryAdd records the fact x = c*y + o (c != 0), merging x's and y's classes.
// It returns true if a new relation was actually merged (false if x and y
// were already in the same class). preferX and preferY bias the choice of
// surviving representative toward x's or y's current representative; the
// bias can only be honored when the relation between the two current
// representatives has |coefficient| = 1; a representative linked by a larger
// coefficient is, structurally, always expressed as a function of the other,
// so the other must remain the root.
func (r *Repo) TryAdd(x, y int32, c, o int64, preferX, preferY bool) bool {
	if c == 0 {
		panic("affine: zero coefficient")
	}
	r.growTo(x)
	r.growTo(y)
	rx := r.find(x)
	ry := r.find(y)
	if rx.Representative == ry.Representative {
		return false
	}

	// x = c*y + o, and x = rx.Coeff*RX + rx.Offset, y = ry.Coeff*RY + ry.Offset.
	// Solve for RX in terms of RY:
	//   RX = (c*ry.Coeff/rx.Coeff)*RY + (c*ry.Offset + o - rx.Offset)/rx.Coeff
	num := c * ry.Coeff
	den := rx.Coeff
	constNum := c*ry.Offset + o - rx.Offset
	if !divides(den, num) || !divides(den, constNum) {
		panic("affine: relation is not integral between current representatives")
	}
	relCoeff := num / den
	relOffset := constNum / den
	repX, repY := rx.Representative, ry.Representative

	if relCoeff == 1 || relCoeff == -1 {
		keepX := preferX && !preferY
		if !keepX && !preferY && !preferX {
			keepX = r.nodes[repX].rank >= r.nodes[repY].rank
		}
		if keepX {
			// RY = relCoeff*(RX - relOffset) = relCoeff*RX - relCoeff*relOffset
			r.attach(repY, repX, relCoeff, -relCoeff*relOffset)
		} else {
			r.attach(repX, repY, relCoeff, relOffset)
		}
		return true
	}

	// |relCoeff| != 1: RX can only be expressed as a function of RY, so RY
	// must remain the representative regardless of caller preference.
	r.attach(repX, repY, relCoeff, relOffset)
	return true
}

func divides(den, num int64) bool {
	if den == 0 {
		return num == 0
	}
	return num%den == 0
}

// attach makes child a child of root, recording child = coeff*root + offset.
// Both child and root must currently be roots of their own trees.
func (r *Repo) attach(child, root int32, coeff, offset int64) {
	r.nodes[child].parent = root
	r.nodes[child].coeffToParent = coeff
	r.nodes[child].offsetToParent = offset
	r.nodes[root].classSize += r.nodes[child].classSize
	if r.nodes[root].rank <= r.nodes[child].rank {
		r.nodes[root].rank = r.nodes[child].rank + 1
	}
}
