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
	"github.com/nume-crypto/flintgo/xerr"
)

const divConquerThreshold = 16

// PseudoDivRem computes Q, R with lead(B)^d * A = Q*B + R and
// deg(R) < deg(B), d = max(0, deg(A)-deg(B)+1) in the worst case (fewer
// multiplications are applied if the remainder's degree drops faster
// than one per step). Returns d. Fails with ErrDivisionByZero if b is
// zero.
func PseudoDivRem(q, r *ZPoly, a, b *ZPoly) (int, error) {
	if b.IsZero() {
		return 0, xerr.ErrDivisionByZero
	}
	bLen := b.Len()
	if a.Len() < bLen {
		q.Zero()
		r.Set(a)
		return 0, nil
	}

	lead := b.LeadingCoeff()
	R := a.Clone()
	Q := New()
	d := 0
	for R.Len() >= bLen && !R.IsZero() {
		shift := R.Len() - bLen
		c := new(soib.SmallOrBig).Set(R.LeadingCoeff())

		Q.ScalarMul(Q, lead)
		addMonomial(Q, c, shift)

		R.ScalarMul(R, lead)
		term := mulMonomial(b, c, shift)
		R.Sub(R, term)
		d++
	}
	q.Set(Q)
	r.Set(R)
	return d, nil
}

// addMonomial adds c*x^shift to p in place, growing p if necessary.
func addMonomial(p *ZPoly, c *soib.SmallOrBig, shift int) {
	if p.Len() <= shift {
		p.fitLength(shift + 1)
	}
	p.Coeff(shift).Add(p.Coeff(shift), c)
	p.Normalise()
}

// mulMonomial returns c*x^shift*b as a fresh polynomial.
func mulMonomial(b *ZPoly, c *soib.SmallOrBig, shift int) *ZPoly {
	src := b.Coeffs()
	out := make([]soib.SmallOrBig, len(src)+shift)
	for i := range src {
		out[shift+i].Mul(&src[i], c)
	}
	return FromCoeffs(out)
}

// DivRemBasecase computes the plain integer quotient and remainder of
// a by b (deg(R) < deg(B)), derived from PseudoDivRem by dividing out
// the common power of lead(b) exactly. If exact is true, a nonzero
// remainder is reported as ErrInexactDivision (used by Divides); if the
// common factor does not divide evenly, ErrInexactDivision is returned
// regardless of exact, since no integer quotient/remainder pair exists
// in that case.
func DivRemBasecase(q, r *ZPoly, a, b *ZPoly, exact bool) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	pq, pr := New(), New()
	d, err := PseudoDivRem(pq, pr, a, b)
	if err != nil {
		return err
	}
	if d > 0 {
		factor := new(soib.SmallOrBig).PowUnsigned(b.LeadingCoeff(), uint64(d))
		if err := scalarDivExactPoly(q, pq, factor); err != nil {
			return xerr.ErrInexactDivision
		}
		if err := scalarDivExactPoly(r, pr, factor); err != nil {
			return xerr.ErrInexactDivision
		}
	} else {
		q.Set(pq)
		r.Set(pr)
	}
	if exact && !r.IsZero() {
		return xerr.ErrInexactDivision
	}
	return nil
}

// DivBasecase sets q to the quotient only, equivalent to discarding R
// from DivRemBasecase.
func DivBasecase(q *ZPoly, a, b *ZPoly, exact bool) error {
	r := New()
	return DivRemBasecase(q, r, a, b, exact)
}

func scalarDivExactPoly(dst, src *ZPoly, c *soib.SmallOrBig) error {
	coeffs := src.Coeffs()
	out := make([]soib.SmallOrBig, len(coeffs))
	for i := range coeffs {
		if err := out[i].DivExact(&coeffs[i], c); err != nil {
			return err
		}
	}
	setCoeffsFrom(dst, out)
	return nil
}

// DivRemDivConquer computes quotient and remainder via recursive
// halving of the dividend once its length crosses divConquerThreshold,
// falling back to DivRemBasecase below it. Requires exact division
// (same semantics as DivRemBasecase with exact=true).
func DivRemDivConquer(q, r *ZPoly, a, b *ZPoly) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	if a.Len() < divConquerThreshold || b.Len() < divConquerThreshold {
		return DivRemBasecase(q, r, a, b, true)
	}

	n := b.Len() - 1
	// Split a into a high half (degree >= n) and low half.
	coeffs := a.Coeffs()
	mid := a.Len() / 2
	if mid < n {
		mid = n
	}
	aLo := FromCoeffs(append([]soib.SmallOrBig(nil), coeffs[:min(mid, len(coeffs))]...))
	var aHiCoeffs []soib.SmallOrBig
	if mid < len(coeffs) {
		aHiCoeffs = append([]soib.SmallOrBig(nil), coeffs[mid:]...)
	}
	aHi := FromCoeffs(aHiCoeffs)

	qHi, rHi := New(), New()
	if err := DivRemDivConquer(qHi, rHi, aHi, b); err != nil {
		return err
	}

	// combined remainder-so-far = rHi shifted back up, plus aLo
	combined := mulMonomialPoly(rHi, mid)
	combined.Add(combined, aLo)

	qLo, rLo := New(), New()
	if err := DivRemDivConquer(qLo, rLo, combined, b); err != nil {
		return err
	}

	qOut := mulMonomialPoly(qHi, mid)
	qOut.Add(qOut, qLo)

	q.Set(qOut)
	r.Set(rLo)
	return nil
}

func mulMonomialPoly(p *ZPoly, shift int) *ZPoly {
	if p.IsZero() {
		return New()
	}
	src := p.Coeffs()
	out := make([]soib.SmallOrBig, len(src)+shift)
	for i := range src {
		out[shift+i].Set(&src[i])
	}
	return FromCoeffs(out)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Divides tests whether b divides a exactly; on success q holds a/b.
// Short-circuits via (1) constant-term divisibility, (2) A(1) divisible
// by B(1), before (3) running a full exact division.
func Divides(q *ZPoly, a, b *ZPoly) (bool, error) {
	if b.IsZero() {
		return false, xerr.ErrDivisionByZero
	}
	if a.IsZero() {
		q.Zero()
		return true, nil
	}
	if b.Len() > a.Len() {
		return false, nil
	}

	a0, b0 := a.Coeff(0), b.Coeff(0)
	if b0.IsZero() && !a0.IsZero() {
		return false, nil
	}
	if !b0.IsZero() {
		var t soib.SmallOrBig
		if err := t.Mod(a0, b0); err == nil && !t.IsZero() {
			return false, nil
		}
	}

	one := soib.New(1)
	aAt1 := a.Evaluate(one)
	bAt1 := b.Evaluate(one)
	if !bAt1.IsZero() {
		var t soib.SmallOrBig
		if err := t.Mod(aAt1, bAt1); err == nil && !t.IsZero() {
			return false, nil
		}
	}

	r := New()
	if err := DivRemBasecase(q, r, a, b, true); err != nil {
		if err == xerr.ErrInexactDivision {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InvSeriesNewton computes the power-series inverse of a modulo x^n. a's
// constant term must be +1 or -1 so that the inverse has integer
// coefficients: a zero constant term gives ErrConstantTermNotInvertible
// and any other value gives ErrNonUnitConstantTerm.
// Starts from a degree-0 basecase reciprocal then doubles precision via
// Qinv <- Qinv - Qinv*(A*Qinv - 1) mod x^n.
func InvSeriesNewton(out *ZPoly, a *ZPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	c0 := a.Coeff(0)
	if c0.IsZero() {
		return xerr.ErrConstantTermNotInvertible
	}
	if !c0.IsOne() {
		var negOne soib.SmallOrBig
		negOne.SetSmall(-1)
		if !c0.Equal(&negOne) {
			return xerr.ErrNonUnitConstantTerm
		}
	}

	inv := FromCoeffs([]soib.SmallOrBig{*c0}) // c0 is its own inverse (+-1)
	one := New()
	one.fitLength(1)
	one.Coeff(0).SetSmall(1)

	for prec := 1; prec < n; prec *= 2 {
		next := prec * 2
		if next > n {
			next = n
		}
		prod := New()
		prod.MulLow(a, inv, next)
		diff := New()
		diff.Sub(prod, truncated(one, next))
		corr := New()
		corr.MulLow(inv, diff, next)
		newInv := New()
		newInv.Sub(truncated(inv, next), corr)
		inv = newInv
		if next == n {
			break
		}
	}
	out.Set(truncated(inv, n))
	return nil
}

func truncated(p *ZPoly, n int) *ZPoly {
	coeffs := p.Coeffs()
	if len(coeffs) > n {
		coeffs = coeffs[:n]
	}
	return FromCoeffs(append([]soib.SmallOrBig(nil), coeffs...))
}

// DivSeries computes a/b mod x^n by reducing to mul_low against the
// power-series inverse of b.
func DivSeries(out *ZPoly, a, b *ZPoly, n int) error {
	inv := New()
	if err := InvSeriesNewton(inv, b, n); err != nil {
		return err
	}
	out.MulLow(a, inv, n)
	return nil
}
