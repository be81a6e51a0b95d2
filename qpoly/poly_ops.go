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

package qpoly

import (
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// constQPoly returns the constant rational polynomial v/1.
func constQPoly(v int64) *QPoly {
	p, err := FromParts(zpoly.FromCoeffs([]soib.SmallOrBig{*soib.New(v)}), soib.New(1))
	if err != nil {
		panic(err) // den = 1, never zero
	}
	return p
}

// qTruncate returns a independently-owned copy of p's low n terms.
func qTruncate(p *QPoly, n int) *QPoly {
	coeffs := p.coeffs.Coeffs()
	if len(coeffs) > n {
		coeffs = coeffs[:n]
	}
	out, err := FromParts(zpoly.FromCoeffs(append([]soib.SmallOrBig(nil), coeffs...)), new(soib.SmallOrBig).Set(&p.den))
	if err != nil {
		panic(err) // p.den already positive and nonzero
	}
	return out
}

// mulLowQ computes the low n terms of a*b without relying on a
// dedicated truncated multiply: correctness over the rationals is
// cheap to get from the full product plus a truncation, since QPoly's
// Mul already keeps numerator growth in check via its pre-division
// gcd optimisation.
func mulLowQ(a, b *QPoly, n int) *QPoly {
	return qTruncate(New().Mul(a, b), n)
}

// constantTerm returns p's constant term as a rational num/den pair
// (0/1 for the zero polynomial).
func constantTerm(p *QPoly) (num *soib.SmallOrBig, den *soib.SmallOrBig) {
	if p.Len() == 0 {
		return new(soib.SmallOrBig), soib.New(1)
	}
	return p.coeffs.Coeff(0), &p.den
}

// isZeroConstantTerm reports whether p(0) = 0.
func isZeroConstantTerm(p *QPoly) bool {
	num, _ := constantTerm(p)
	return num.IsZero()
}

// isUnitConstantTerm reports whether p(0) = 1 (coeff0/den == 1, i.e.
// coeff0 == den, valid regardless of internal reduction since the two
// values are compared directly as the rational they represent).
func isUnitConstantTerm(p *QPoly) bool {
	num, den := constantTerm(p)
	return num.Equal(den)
}

// Derivative sets q = a'. Since differentiating term c_k x^k / den
// just scales c_k by k and keeps the same denominator, this reuses
// ZPoly's derivative directly on the numerator.
func (q *QPoly) Derivative(a *QPoly) *QPoly {
	der := zpoly.New().Derivative(a.coeffs)
	q.coeffs, q.den = der, *new(soib.SmallOrBig).Set(&a.den)
	q.canonicalise()
	return q
}

// Integral sets q to the antiderivative of a with zero constant term.
// Rather than dividing each term's coefficient by (k+1) individually
// (which would need a fresh gcd reduction per term), it computes
// L = lcm(1..len(a)) once and rescales every term by L/(k+1), folding
// L into the shared denominator — the "denominator-aware gcd batching"
// that keeps Integral to a single canonicalisation pass.
func (q *QPoly) Integral(a *QPoly) error {
	if a.IsZero() {
		q.Zero()
		return nil
	}
	src := a.coeffs.Coeffs()
	n := len(src)

	l := soib.New(1)
	for k := 1; k <= n; k++ {
		l = lcmInt(l, soib.New(int64(k)))
	}

	out := make([]soib.SmallOrBig, n+1)
	for k := 0; k < n; k++ {
		mult := mustDivExact(l, soib.New(int64(k+1)))
		out[k+1].Mul(&src[k], mult)
	}

	var den soib.SmallOrBig
	den.Mul(&a.den, l)
	q.coeffs, q.den = zpoly.FromCoeffs(out), den
	q.canonicalise()
	return nil
}

func lcmInt(a, b *soib.SmallOrBig) *soib.SmallOrBig {
	g := new(soib.SmallOrBig).GCD(a, b)
	quot := mustDivExact(a, g)
	out := new(soib.SmallOrBig)
	out.Mul(quot, b)
	return out
}

// InvSeriesNewton computes the power-series inverse of a modulo x^n,
// requiring a nonzero (hence invertible, since Q is a field) constant
// term, via Newton doubling g <- g*(2 - a*g).
func InvSeriesNewton(out *QPoly, a *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	c0num, c0den := constantTerm(a)
	if c0num.IsZero() {
		return xerr.ErrConstantTermNotInvertible
	}

	g, err := FromParts(zpoly.FromCoeffs([]soib.SmallOrBig{*new(soib.SmallOrBig).Set(c0den)}), new(soib.SmallOrBig).Set(c0num))
	if err != nil {
		return err
	}
	two := constQPoly(2)

	for prec := 1; prec < n; prec *= 2 {
		next := min(prec*2, n)
		prod := mulLowQ(a, g, next)
		diff := New().Sub(two, prod)
		g = qTruncate(mulLowQ(g, diff, next), next)
	}
	out.Set(g)
	return nil
}

// DivSeries computes a/b mod x^n by reducing to a mul against b's
// power-series inverse.
func DivSeries(out *QPoly, a, b *QPoly, n int) error {
	inv := New()
	if err := InvSeriesNewton(inv, b, n); err != nil {
		return err
	}
	out.Set(mulLowQ(a, inv, n))
	return nil
}

// ComposeSeries sets out = f(g(x)) mod x^n via Horner, requiring
// g(0) = 0 so the series composition is well defined.
func ComposeSeries(out *QPoly, f, g *QPoly, n int) error {
	if !isZeroConstantTerm(g) {
		return xerr.ErrInvalidArgument
	}
	acc := New()
	coeffsF := f.coeffs.Coeffs()
	for i := len(coeffsF) - 1; i >= 0; i-- {
		acc = qTruncate(mulLowQ(acc, g, n), n)
		term, err := FromParts(zpoly.FromCoeffs([]soib.SmallOrBig{coeffsF[i]}), new(soib.SmallOrBig).Set(&f.den))
		if err != nil {
			return err
		}
		acc = New().Add(acc, term)
	}
	out.Set(qTruncate(acc, n))
	return nil
}

// RevertSeriesNewton computes the compositional inverse g of f modulo
// x^n (f(g(x)) = x mod x^n), requiring f(0) = 0 and f'(0) != 0, via
// Newton doubling on g <- g - (f(g)-x) / f'(g).
func RevertSeriesNewton(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	if f.Len() < 2 || f.coeffs.Coeff(1).IsZero() {
		return xerr.ErrNotRevertible
	}

	f1 := f.coeffs.Coeff(1)
	g1, err := FromParts(zpoly.FromCoeffs([]soib.SmallOrBig{*new(soib.SmallOrBig).Set(&f.den)}), new(soib.SmallOrBig).Set(f1))
	if err != nil {
		return err
	}
	g := New()
	g.coeffs = zpoly.New().Shift(g1.coeffs, 1)
	g.den = *g1.Denominator()
	g.canonicalise()

	xPoly := New()
	xPoly.coeffs = zpoly.FromCoeffs([]soib.SmallOrBig{*new(soib.SmallOrBig), *soib.New(1)})
	xPoly.den.SetSmall(1)

	fder := New().Derivative(f)

	for prec := 1; prec < n; prec *= 2 {
		next := min(2*prec, n)
		fg := New()
		if err := ComposeSeries(fg, f, g, next); err != nil {
			return err
		}
		diff := New().Sub(fg, qTruncate(xPoly, next))

		fderg := New()
		if err := ComposeSeries(fderg, fder, g, next); err != nil {
			return err
		}
		invfderg := New()
		if err := InvSeriesNewton(invfderg, fderg, next); err != nil {
			return err
		}
		corr := mulLowQ(diff, invfderg, next)
		g = qTruncate(New().Sub(g, corr), next)
	}
	out.Set(g)
	return nil
}
