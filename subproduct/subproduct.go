// Copyright 2020 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package subproduct builds the binary product tree of n linear factors
// (x - a_i) over Z or Z/pZ and uses it to evaluate an arbitrary
// polynomial at all n points in O(M(n) log n) time: descend the tree,
// remaindering by each pair of children's products, until the leaves
// hold the degree-zero evaluations.
//
// This package sits below zpoly in the dependency order (zpoly calls
// into it from Interpolate), so it cannot import zpoly
// without creating a cycle. It therefore carries its own minimal
// classical polynomial multiply and monic-divisor remainder, operating
// directly on coefficient slices rather than on a zpoly.ZPoly — a
// deliberate, narrower subset of the multiply/division ladder zpoly
// implements in full generality.
package subproduct

import (
	"github.com/nume-crypto/flintgo/modular"
	"github.com/nume-crypto/flintgo/soib"
)

// node is one level of the product tree: the monic polynomial
// (ascending-degree coefficients, top coefficient always 1) covering
// the leaves in its subtree range.
type node struct {
	poly        []soib.SmallOrBig
	left, right *node
	leafIdx     int // valid only at a leaf
}

// Tree is a subproduct tree built over the integers.
type Tree struct {
	points []soib.SmallOrBig
	root   *node
}

// Build constructs the tree over points a_0..a_{n-1}. n = 0 yields an
// empty, usable tree.
func Build(points []soib.SmallOrBig) *Tree {
	if len(points) == 0 {
		return &Tree{}
	}
	return &Tree{points: points, root: buildNode(points, 0, len(points))}
}

func buildNode(points []soib.SmallOrBig, lo, hi int) *node {
	if hi-lo == 1 {
		var negA soib.SmallOrBig
		negA.Neg(&points[lo])
		return &node{poly: []soib.SmallOrBig{negA, *soib.New(1)}, leafIdx: lo}
	}
	mid := lo + (hi-lo)/2
	left := buildNode(points, lo, mid)
	right := buildNode(points, mid, hi)
	return &node{poly: polyMul(left.poly, right.poly), left: left, right: right}
}

// Points returns the points the tree was built over.
func (t *Tree) Points() []soib.SmallOrBig { return t.points }

// Root returns the product of all (x - a_i), i.e. the full modulus
// polynomial. Useful for Interpolate's denominator derivative trick.
func (t *Tree) Root() []soib.SmallOrBig {
	if t.root == nil {
		return []soib.SmallOrBig{*soib.New(1)}
	}
	return t.root.poly
}

// Evaluate returns f(a_0), ..., f(a_{n-1}) by descending the tree. f is
// given as ascending-degree coefficients (length 0 is the zero
// polynomial). Degenerate cases: n=0 returns nil; n=1 evaluates by
// Horner directly; deg f = 0 broadcasts the constant term without
// descending.
func (t *Tree) Evaluate(f []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(t.points)
	if n == 0 {
		return nil
	}
	if isConstant(f) {
		out := make([]soib.SmallOrBig, n)
		c := constantOf(f)
		for i := range out {
			out[i].Set(&c)
		}
		return out
	}
	if n == 1 {
		return []soib.SmallOrBig{hornerEval(f, &t.points[0])}
	}

	out := make([]soib.SmallOrBig, n)
	descendEval(t.root, f, out)
	return out
}

func descendEval(nd *node, f []soib.SmallOrBig, out []soib.SmallOrBig) {
	rem := polyRemMonic(f, nd.poly)
	if nd.left == nil && nd.right == nil {
		out[nd.leafIdx] = constantOf(rem)
		return
	}
	descendEval(nd.left, rem, out)
	descendEval(nd.right, rem, out)
}

func isConstant(f []soib.SmallOrBig) bool {
	return len(trim(f)) <= 1
}

func constantOf(f []soib.SmallOrBig) soib.SmallOrBig {
	f = trim(f)
	if len(f) == 0 {
		return *soib.New(0)
	}
	return f[0]
}

func hornerEval(f []soib.SmallOrBig, a *soib.SmallOrBig) soib.SmallOrBig {
	var acc soib.SmallOrBig
	for i := len(f) - 1; i >= 0; i-- {
		acc.Mul(&acc, a)
		acc.Add(&acc, &f[i])
	}
	return acc
}

func trim(f []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(f)
	for n > 0 && f[n-1].IsZero() {
		n--
	}
	return f[:n]
}

// polyMul computes the convolution of two coefficient slices.
func polyMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]soib.SmallOrBig, len(a)+len(b)-1)
	for i := range a {
		if a[i].IsZero() {
			continue
		}
		for j := range b {
			out[i+j].AddMul(&a[i], &b[j])
		}
	}
	return out
}

// polyRemMonic computes f mod divisor for a monic divisor (top
// coefficient exactly 1), by repeated schoolbook reduction from the top
// down. The result is trimmed to the canonical length-0-or-nonzero-top
// form.
func polyRemMonic(f, divisor []soib.SmallOrBig) []soib.SmallOrBig {
	d := len(divisor) - 1
	rem := make([]soib.SmallOrBig, len(f))
	for i := range f {
		rem[i].Set(&f[i])
	}
	rem = trim(rem)

	for len(rem) > d {
		lead := rem[len(rem)-1]
		shift := len(rem) - 1 - d
		if !lead.IsZero() {
			for i := 0; i <= d; i++ {
				var t soib.SmallOrBig
				t.Mul(&lead, &divisor[i])
				rem[shift+i].Sub(&rem[shift+i], &t)
			}
		}
		rem = trim(rem[:len(rem)-1])
	}
	return rem
}

// ---- modular variant ----

// ModTree is a subproduct tree over Z/pZ, used to evaluate a polynomial
// reduced mod p at many points at once.
type ModTree struct {
	points []uint64
	ctx    *modular.NmodCtx
	root   *modNode
}

type modNode struct {
	poly        []uint64
	left, right *modNode
	leafIdx     int
}

// BuildMod constructs the modular tree over points reduced mod ctx.P.
func BuildMod(points []uint64, ctx *modular.NmodCtx) *ModTree {
	if len(points) == 0 {
		return &ModTree{ctx: ctx}
	}
	return &ModTree{points: points, ctx: ctx, root: buildModNode(points, ctx, 0, len(points))}
}

func buildModNode(points []uint64, ctx *modular.NmodCtx, lo, hi int) *modNode {
	if hi-lo == 1 {
		return &modNode{poly: []uint64{ctx.Neg(points[lo]), 1}, leafIdx: lo}
	}
	mid := lo + (hi-lo)/2
	left := buildModNode(points, ctx, lo, mid)
	right := buildModNode(points, ctx, mid, hi)
	return &modNode{poly: polyMulMod(left.poly, right.poly, ctx), left: left, right: right}
}

// Evaluate returns f(a_0), ..., f(a_{n-1}) mod ctx.P.
func (t *ModTree) Evaluate(f []uint64) []uint64 {
	n := len(t.points)
	if n == 0 {
		return nil
	}
	if isConstantMod(f) {
		out := make([]uint64, n)
		c := constantOfMod(f)
		for i := range out {
			out[i] = c
		}
		return out
	}
	if n == 1 {
		return []uint64{hornerEvalMod(f, t.points[0], t.ctx)}
	}
	out := make([]uint64, n)
	descendEvalMod(t.root, f, t.ctx, out)
	return out
}

func descendEvalMod(nd *modNode, f []uint64, ctx *modular.NmodCtx, out []uint64) {
	rem := polyRemMonicMod(f, nd.poly, ctx)
	if nd.left == nil && nd.right == nil {
		out[nd.leafIdx] = constantOfMod(rem)
		return
	}
	descendEvalMod(nd.left, rem, ctx, out)
	descendEvalMod(nd.right, rem, ctx, out)
}

func isConstantMod(f []uint64) bool { return len(trimMod(f)) <= 1 }

func constantOfMod(f []uint64) uint64 {
	f = trimMod(f)
	if len(f) == 0 {
		return 0
	}
	return f[0]
}

func hornerEvalMod(f []uint64, a uint64, ctx *modular.NmodCtx) uint64 {
	var acc uint64
	for i := len(f) - 1; i >= 0; i-- {
		acc = ctx.Add(ctx.Mul(acc, a), f[i])
	}
	return acc
}

func trimMod(f []uint64) []uint64 {
	n := len(f)
	for n > 0 && f[n-1] == 0 {
		n--
	}
	return f[:n]
}

func polyMulMod(a, b []uint64, ctx *modular.NmodCtx) []uint64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]uint64, len(a)+len(b)-1)
	for i := range a {
		if a[i] == 0 {
			continue
		}
		for j := range b {
			out[i+j] = ctx.Add(out[i+j], ctx.Mul(a[i], b[j]))
		}
	}
	return out
}

func polyRemMonicMod(f, divisor []uint64, ctx *modular.NmodCtx) []uint64 {
	d := len(divisor) - 1
	rem := make([]uint64, len(f))
	copy(rem, f)
	rem = trimMod(rem)

	for len(rem) > d {
		lead := rem[len(rem)-1]
		shift := len(rem) - 1 - d
		if lead != 0 {
			for i := 0; i <= d; i++ {
				rem[shift+i] = ctx.Sub(rem[shift+i], ctx.Mul(lead, divisor[i]))
			}
		}
		rem = trimMod(rem[:len(rem)-1])
	}
	return rem
}
