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

package zpoly

import (
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/subproduct"
	"github.com/nume-crypto/flintgo/xerr"
)

// Derivative sets p = a'.
func (p *ZPoly) Derivative(a *ZPoly) *ZPoly {
	if a.Len() <= 1 {
		return p.Zero()
	}
	src := a.Coeffs()
	out := make([]soib.SmallOrBig, len(src)-1)
	for i := 1; i < len(src); i++ {
		out[i-1].Mul(&src[i], soib.New(int64(i)))
	}
	setCoeffsFrom(p, out)
	return p
}

// Integral sets p to the antiderivative of a with zero constant term,
// requiring every division by i+1 to be exact (returns
// ErrInexactDivision otherwise, e.g. integrating 1 over Z would need a
// 1/2 coefficient).
func (p *ZPoly) Integral(a *ZPoly) error {
	if a.IsZero() {
		p.Zero()
		return nil
	}
	src := a.Coeffs()
	out := make([]soib.SmallOrBig, len(src)+1)
	for i := range src {
		if err := out[i+1].DivExact(&src[i], soib.New(int64(i+1))); err != nil {
			return err
		}
	}
	setCoeffsFrom(p, out)
	return nil
}

// Shift sets p = a * x^k for k >= 0 (a left shift / multiply by a
// monomial).
func (p *ZPoly) Shift(a *ZPoly, k int) *ZPoly {
	if k < 0 {
		panic("zpoly: Shift requires a nonnegative exponent")
	}
	if a.IsZero() || k == 0 {
		return p.Set(a)
	}
	src := a.Coeffs()
	out := make([]soib.SmallOrBig, len(src)+k)
	for i := range src {
		out[k+i].Set(&src[i])
	}
	setCoeffsFrom(p, out)
	return p
}

// Reverse sets p to a's coefficients read in reverse order, padded (or
// truncated) to exactly n terms: reverse(a)_i = a_{n-1-i}. Used to
// convert a division problem into a power-series problem and back.
func (p *ZPoly) Reverse(a *ZPoly, n int) *ZPoly {
	out := make([]soib.SmallOrBig, n)
	src := a.Coeffs()
	for i := 0; i < n; i++ {
		j := n - 1 - i
		if j < len(src) {
			out[i].Set(&src[j])
		}
	}
	setCoeffsFrom(p, out)
	return p
}

// Signature returns (realRoots, complexPairs): the number of distinct
// real roots, via Sturm's theorem, and the number of complex-conjugate
// root pairs implied by it. realRoots is computed by building the
// Sturm sequence (f, f', and successive negated pseudo-remainders) and
// counting sign changes of the sequence evaluated at -infinity and
// +infinity (approximated by a sufficiently large bound derived from
// the coefficients); complexPairs is the remaining (degree-realRoots)/2
// roots, paired off by conjugation. p is assumed squarefree, as Sturm's
// theorem counts distinct roots, not roots with multiplicity.
func (p *ZPoly) Signature() (realRoots, complexPairs int) {
	if p.Degree() <= 0 {
		return 0, 0
	}
	seq := sturmSequence(p)

	bound := new(soib.SmallOrBig)
	for _, s := range seq {
		for _, c := range s.Coeffs() {
			if c.CmpAbs(bound) > 0 {
				bound.Abs(&c)
			}
		}
	}
	bound.Add(bound, soib.New(2))

	var negBound soib.SmallOrBig
	negBound.Neg(bound)

	signsAtNeg := make([]int, len(seq))
	signsAtPos := make([]int, len(seq))
	for i, s := range seq {
		signsAtNeg[i] = s.Evaluate(&negBound).Sign()
		signsAtPos[i] = s.Evaluate(bound).Sign()
	}

	realRoots = signChanges(signsAtNeg) - signChanges(signsAtPos)
	complexPairs = (p.Degree() - realRoots) / 2
	return realRoots, complexPairs
}

func sturmSequence(p *ZPoly) []*ZPoly {
	seq := []*ZPoly{p.Clone()}
	der := New().Derivative(p)
	seq = append(seq, der)
	for i := 1; !seq[i].IsZero(); i++ {
		r := New()
		if _, err := PseudoDivRem(New(), r, seq[i-1], seq[i]); err != nil {
			break
		}
		r.Neg(r)
		seq = append(seq, r)
	}
	return seq
}

func signChanges(signs []int) int {
	count := 0
	prev := 0
	for _, s := range signs {
		if s == 0 {
			continue
		}
		if prev != 0 && s != prev {
			count++
		}
		prev = s
	}
	return count
}

// Interpolate builds the unique polynomial of degree < n through
// (xs[i], ys[i]) via Newton divided differences when n is small enough
// for the O(n^2) basecase to be cheap, and via integer Lagrange
// interpolation with subproduct-tree weights otherwise (see
// interpolateMultiModulus).
func Interpolate(out *ZPoly, xs, ys []soib.SmallOrBig) error {
	n := len(xs)
	if n != len(ys) {
		return xerr.ErrInvalidArgument
	}
	if n == 0 {
		out.Zero()
		return nil
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if xs[i].Equal(&xs[j]) {
				return xerr.ErrInvalidArgument
			}
		}
	}

	if n <= newtonInterpolateThreshold {
		return interpolateNewton(out, xs, ys)
	}
	return interpolateMultiModulus(out, xs, ys)
}

const newtonInterpolateThreshold = 64

// interpolateNewton builds divided differences over Q conceptually, but
// since the result is only guaranteed integral when the inputs admit an
// integer-coefficient interpolant, every division is checked exact.
func interpolateNewton(out *ZPoly, xs, ys []soib.SmallOrBig) error {
	n := len(xs)
	table := make([]soib.SmallOrBig, n)
	for i := range ys {
		table[i].Set(&ys[i])
	}
	coeffs := make([]soib.SmallOrBig, n)
	coeffs[0].Set(&table[0])

	for j := 1; j < n; j++ {
		for i := n - 1; i >= j; i-- {
			var num soib.SmallOrBig
			num.Sub(&table[i], &table[i-1])
			var den soib.SmallOrBig
			den.Sub(&xs[i], &xs[i-j])
			if err := table[i].DivExact(&num, &den); err != nil {
				return err
			}
		}
		coeffs[j].Set(&table[j])
	}

	// Expand the Newton basis sum_j coeffs[j] * prod_{k<j}(x - xs[k])
	// into the monomial basis.
	result := New()
	basis := FromCoeffs([]soib.SmallOrBig{*soib.New(1)})
	for j := 0; j < n; j++ {
		term := New().ScalarMul(basis, &coeffs[j])
		result.Add(result, term)
		if j+1 < n {
			factor := FromCoeffs([]soib.SmallOrBig{*negOf(&xs[j]), *soib.New(1)})
			basis = New().Mul(basis, factor)
		}
	}
	out.Set(result)
	return nil
}

func negOf(x *soib.SmallOrBig) *soib.SmallOrBig {
	out := new(soib.SmallOrBig)
	out.Neg(x)
	return out
}

// interpolateMultiModulus performs Lagrange interpolation over Z using
// the subproduct tree: the weights are the derivative of the root
// product evaluated at every xs[i] in one multipoint evaluation, each
// ys[i] is divided exactly by its weight, and the scaled complementary
// products are summed. No prime or CRT step is involved; when some
// ys[i] is not divisible by its weight it falls back to
// interpolateNewton.
func interpolateMultiModulus(out *ZPoly, xs, ys []soib.SmallOrBig) error {
	tree := subproduct.Build(xs)
	root := tree.Root()

	der := FromCoeffs(append([]soib.SmallOrBig(nil), root...))
	derivative := New().Derivative(der)
	weights := tree.Evaluate(derivative.Coeffs())

	n := len(xs)
	numerCoeffs := make([]soib.SmallOrBig, n)
	for i := 0; i < n; i++ {
		if weights[i].IsZero() {
			return xerr.ErrInvalidArgument
		}
		var c soib.SmallOrBig
		if err := c.DivExact(&ys[i], &weights[i]); err != nil {
			return interpolateNewton(out, xs, ys) // fall back to the exact-division basecase
		}
		numerCoeffs[i] = c
	}

	result := New()
	for i := 0; i < n; i++ {
		// term_i = numerCoeffs[i] * prod_{k != i}(x - xs[k])
		quotient, rem := New(), New()
		linear := FromCoeffs([]soib.SmallOrBig{*negOf(&xs[i]), *soib.New(1)})
		if err := DivRemBasecase(quotient, rem, FromCoeffs(append([]soib.SmallOrBig(nil), root...)), linear, true); err != nil {
			return err
		}
		term := New().ScalarMul(quotient, &numerCoeffs[i])
		result.Add(result, term)
	}
	out.Set(result)
	return nil
}
