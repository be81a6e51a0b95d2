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

// Package zpoly implements ZPoly, a dense univariate polynomial over Z
// stored as an ascending-degree IntVec. The length invariant is
// enforced after every mutating operation: length 0, or the top
// coefficient is nonzero.
package zpoly

import (
	"github.com/nume-crypto/flintgo/intvec"
	"github.com/nume-crypto/flintgo/soib"
)

// ZPoly is a polynomial a_0 + a_1 x + ... + a_{n-1} x^{n-1} over Z.
type ZPoly struct {
	c *intvec.IntVec
}

// New returns the zero polynomial.
func New() *ZPoly {
	return &ZPoly{c: intvec.New(0)}
}

// FromCoeffs builds a polynomial from ascending-degree coefficients,
// taking ownership of the slice.
func FromCoeffs(coeffs []soib.SmallOrBig) *ZPoly {
	p := &ZPoly{c: intvec.FromRaw(coeffs)}
	p.Normalise()
	return p
}

// Len returns the current length (degree + 1, 0 for the zero poly).
func (p *ZPoly) Len() int { return p.c.Len() }

// Degree returns deg(p), or -1 for the zero polynomial.
func (p *ZPoly) Degree() int { return p.Len() - 1 }

// Coeff returns a pointer to coefficient i; i must be < Len(). Use
// Coeffs() for the full backing slice.
func (p *ZPoly) Coeff(i int) *soib.SmallOrBig { return p.c.At(i) }

// Coeffs exposes the ascending-degree backing slice directly.
func (p *ZPoly) Coeffs() []soib.SmallOrBig { return p.c.Raw() }

// fitLength grows/shrinks the backing store to exactly n entries,
// zero-filling any newly exposed tail (the IntVec's power-of-two growth
// policy covers the allocation side).
func (p *ZPoly) fitLength(n int) { p.c.SetLen(n) }

// Normalise drops trailing zero coefficients, restoring the length
// invariant. Returns the new length.
func (p *ZPoly) Normalise() int { return p.c.Normalise() }

// IsZero reports whether p is the zero polynomial.
func (p *ZPoly) IsZero() bool { return p.Len() == 0 }

// Set copies src into p. Aliasing p == src is a no-op.
func (p *ZPoly) Set(src *ZPoly) *ZPoly {
	if p == src {
		return p
	}
	p.c.Set(src.c)
	return p
}

// Clone returns an independently owned deep copy.
func (p *ZPoly) Clone() *ZPoly {
	return &ZPoly{c: p.c.Clone()}
}

// Equal reports value equality (zero-padded comparison).
func (p *ZPoly) Equal(q *ZPoly) bool { return p.c.Equal(q.c) }

// Zero sets p to the zero polynomial.
func (p *ZPoly) Zero() *ZPoly {
	p.fitLength(0)
	return p
}

// LeadingCoeff returns the top coefficient, or 0 for the zero
// polynomial.
func (p *ZPoly) LeadingCoeff() *soib.SmallOrBig {
	if p.IsZero() {
		return new(soib.SmallOrBig)
	}
	return p.Coeff(p.Degree())
}

// Add sets p = a + b. p may alias a or b.
func (p *ZPoly) Add(a, b *ZPoly) *ZPoly {
	p.c.Add(a.c, b.c)
	p.Normalise()
	return p
}

// Sub sets p = a - b. p may alias a or b.
func (p *ZPoly) Sub(a, b *ZPoly) *ZPoly {
	p.c.Sub(a.c, b.c)
	p.Normalise()
	return p
}

// Neg sets p = -a. p may alias a.
func (p *ZPoly) Neg(a *ZPoly) *ZPoly {
	p.c.Neg(a.c)
	return p
}

// ScalarMul sets p = a * c (an IntVec scalar multiply, renormalised to
// drop a top coefficient if c is zero).
func (p *ZPoly) ScalarMul(a *ZPoly, c *soib.SmallOrBig) *ZPoly {
	p.c.ScalarMul(a.c, c)
	p.Normalise()
	return p
}

// Evaluate returns p(x) by Horner's method.
func (p *ZPoly) Evaluate(x *soib.SmallOrBig) *soib.SmallOrBig {
	acc := new(soib.SmallOrBig)
	coeffs := p.Coeffs()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, &coeffs[i])
	}
	return acc
}

func setCoeffsFrom(p *ZPoly, data []soib.SmallOrBig) {
	p.c = intvec.FromRaw(data)
	p.Normalise()
}

func trimTrailingZero(c []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}
