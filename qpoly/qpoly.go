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

// Package qpoly implements QPoly, a dense univariate polynomial over Q
// represented as coeffs(x)/den with a single shared denominator. The
// canonical form enforced after every mutating operation is: den > 0,
// length 0 or coeffs' top term nonzero, and gcd(content(coeffs), den) = 1.
package qpoly

import (
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

// QPoly is coeffs(x) / den, den always positive.
type QPoly struct {
	coeffs *zpoly.ZPoly
	den    soib.SmallOrBig
}

// New returns the zero polynomial 0/1.
func New() *QPoly {
	return &QPoly{coeffs: zpoly.New(), den: *soib.New(1)}
}

// FromParts builds coeffs/den and canonicalises, taking ownership of
// coeffs.
func FromParts(coeffs *zpoly.ZPoly, den *soib.SmallOrBig) (*QPoly, error) {
	if den.IsZero() {
		return nil, xerr.ErrDivisionByZero
	}
	q := &QPoly{coeffs: coeffs, den: *den}
	q.canonicalise()
	return q, nil
}

// Numerator exposes the backing numerator polynomial.
func (q *QPoly) Numerator() *zpoly.ZPoly { return q.coeffs }

// Denominator returns the (always positive) shared denominator.
func (q *QPoly) Denominator() *soib.SmallOrBig { return &q.den }

// Len returns the numerator's length.
func (q *QPoly) Len() int { return q.coeffs.Len() }

// Degree returns deg(q), -1 for the zero polynomial.
func (q *QPoly) Degree() int { return q.coeffs.Degree() }

// IsZero reports whether q is the zero polynomial.
func (q *QPoly) IsZero() bool { return q.coeffs.IsZero() }

// Set copies src into q.
func (q *QPoly) Set(src *QPoly) *QPoly {
	if q == src {
		return q
	}
	q.coeffs.Set(src.coeffs)
	q.den.Set(&src.den)
	return q
}

// Clone returns an independently owned deep copy.
func (q *QPoly) Clone() *QPoly {
	return &QPoly{coeffs: q.coeffs.Clone(), den: *new(soib.SmallOrBig).Set(&q.den)}
}

// Equal reports value equality (both already canonical, so a direct
// structural comparison suffices).
func (q *QPoly) Equal(r *QPoly) bool {
	return q.den.Equal(&r.den) && q.coeffs.Equal(r.coeffs)
}

// Zero sets q to 0/1.
func (q *QPoly) Zero() *QPoly {
	q.coeffs.Zero()
	q.den.SetSmall(1)
	return q
}

// canonicalise restores the three invariants: den > 0, numerator
// normalised (handled by ZPoly itself), and gcd(content, den) = 1. The
// zero polynomial is canonicalised to den = 1.
func (q *QPoly) canonicalise() {
	if q.coeffs.IsZero() {
		q.den.SetSmall(1)
		return
	}
	if q.den.Sign() < 0 {
		q.den.Neg(&q.den)
		q.coeffs.Neg(q.coeffs)
	}
	g := new(soib.SmallOrBig).GCD(q.coeffs.Content(), &q.den)
	if g.IsOne() {
		return
	}
	coeffs := q.coeffs.Coeffs()
	for i := range coeffs {
		if err := coeffs[i].DivExact(&coeffs[i], g); err != nil {
			panic(err) // g = gcd(content, den), divides every coefficient by construction
		}
	}
	var newDen soib.SmallOrBig
	if err := newDen.DivExact(&q.den, g); err != nil {
		panic(err)
	}
	q.den = newDen
}

// Add sets q = a + b. When den(a) == den(b) the shared denominator is
// kept directly (no LCM needed); otherwise the general cross-multiply
// path is used.
func (q *QPoly) Add(a, b *QPoly) *QPoly {
	if a.den.Equal(&b.den) {
		numer := zpoly.New().Add(a.coeffs, b.coeffs)
		q.coeffs, q.den = numer, *new(soib.SmallOrBig).Set(&a.den)
		q.canonicalise()
		return q
	}
	lhs := zpoly.New().ScalarMul(a.coeffs, &b.den)
	rhs := zpoly.New().ScalarMul(b.coeffs, &a.den)
	numer := zpoly.New().Add(lhs, rhs)
	var den soib.SmallOrBig
	den.Mul(&a.den, &b.den)
	q.coeffs, q.den = numer, den
	q.canonicalise()
	return q
}

// Sub sets q = a - b, mirroring Add's equal-denominator fast path.
func (q *QPoly) Sub(a, b *QPoly) *QPoly {
	if a.den.Equal(&b.den) {
		numer := zpoly.New().Sub(a.coeffs, b.coeffs)
		q.coeffs, q.den = numer, *new(soib.SmallOrBig).Set(&a.den)
		q.canonicalise()
		return q
	}
	lhs := zpoly.New().ScalarMul(a.coeffs, &b.den)
	rhs := zpoly.New().ScalarMul(b.coeffs, &a.den)
	numer := zpoly.New().Sub(lhs, rhs)
	var den soib.SmallOrBig
	den.Mul(&a.den, &b.den)
	q.coeffs, q.den = numer, den
	q.canonicalise()
	return q
}

// Neg sets q = -a.
func (q *QPoly) Neg(a *QPoly) *QPoly {
	q.coeffs = zpoly.New().Neg(a.coeffs)
	q.den = *new(soib.SmallOrBig).Set(&a.den)
	return q
}

// Mul sets q = a * b, dividing out gcd(content(A), den(B)) and
// gcd(content(B), den(A)) before the numerator multiply to keep the
// intermediate numerator small.
func (q *QPoly) Mul(a, b *QPoly) *QPoly {
	if a.IsZero() || b.IsZero() {
		return q.Zero()
	}
	g1 := new(soib.SmallOrBig).GCD(a.coeffs.Content(), &b.den)
	g2 := new(soib.SmallOrBig).GCD(b.coeffs.Content(), &a.den)

	aNum := divOutContent(a.coeffs, g1)
	bDen := mustDivExact(&b.den, g1)
	bNum := divOutContent(b.coeffs, g2)
	aDen := mustDivExact(&a.den, g2)

	numer := zpoly.New().Mul(aNum, bNum)
	var den soib.SmallOrBig
	den.Mul(aDen, bDen)

	q.coeffs, q.den = numer, den
	q.canonicalise()
	return q
}

func divOutContent(p *zpoly.ZPoly, g *soib.SmallOrBig) *zpoly.ZPoly {
	if g.IsOne() {
		return p.Clone()
	}
	src := p.Coeffs()
	out := make([]soib.SmallOrBig, len(src))
	for i := range src {
		if err := out[i].DivExact(&src[i], g); err != nil {
			panic(err) // g = gcd(content(p), _), divides every coefficient
		}
	}
	return zpoly.FromCoeffs(out)
}

func mustDivExact(a, b *soib.SmallOrBig) *soib.SmallOrBig {
	out := new(soib.SmallOrBig)
	if err := out.DivExact(a, b); err != nil {
		panic(err)
	}
	return out
}

// ScalarMulZ sets q = a * c for an integer scalar c.
func (q *QPoly) ScalarMulZ(a *QPoly, c *soib.SmallOrBig) *QPoly {
	if c.IsZero() {
		return q.Zero()
	}
	g := new(soib.SmallOrBig).GCD(c, &a.den)
	cReduced := mustDivExact(c, g)
	denReduced := mustDivExact(&a.den, g)
	q.coeffs = zpoly.New().ScalarMul(a.coeffs, cReduced)
	q.den = *denReduced
	q.canonicalise()
	return q
}

// ScalarMulQ sets q = a * (num/den).
func (q *QPoly) ScalarMulQ(a *QPoly, num, den *soib.SmallOrBig) (*QPoly, error) {
	if den.IsZero() {
		return nil, xerr.ErrDivisionByZero
	}
	other := &QPoly{coeffs: zpoly.FromCoeffs([]soib.SmallOrBig{*num}), den: *new(soib.SmallOrBig).Set(den)}
	other.canonicalise()
	return q.Mul(a, other), nil
}

// ScalarDivZ sets q = a / c for a nonzero integer scalar c.
func (q *QPoly) ScalarDivZ(a *QPoly, c *soib.SmallOrBig) (*QPoly, error) {
	if c.IsZero() {
		return nil, xerr.ErrDivisionByZero
	}
	g := new(soib.SmallOrBig).GCD(a.coeffs.Content(), c)
	numReduced := divOutContent(a.coeffs, g)
	cReduced := mustDivExact(c, g)
	var newDen soib.SmallOrBig
	newDen.Mul(&a.den, cReduced)
	q.coeffs, q.den = numReduced, newDen
	q.canonicalise()
	return q, nil
}
