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

const composeDivConquerThreshold = 32

// Compose sets p = f(g(x)) via Horner's method: p = (...((f_{n-1}*g +
// f_{n-2})*g + f_{n-3})*g + ... ) + f_0.
func (p *ZPoly) Compose(f, g *ZPoly) *ZPoly {
	acc := New()
	coeffs := f.Coeffs()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, g)
		constTerm := FromCoeffs([]soib.SmallOrBig{coeffs[i]})
		acc.Add(acc, constTerm)
	}
	p.Set(acc)
	return p
}

// ComposeDivConquer computes f(g(x)) by splitting f into two halves
// (by degree) and combining via g^mid: f(g) = fHi(g)*g^mid + fLo(g),
// falling back to Horner composition below composeDivConquerThreshold.
func (p *ZPoly) ComposeDivConquer(f, g *ZPoly) *ZPoly {
	if f.Len() < composeDivConquerThreshold {
		return p.Compose(f, g)
	}
	mid := f.Len() / 2
	coeffs := f.Coeffs()
	fLo := FromCoeffs(append([]soib.SmallOrBig(nil), coeffs[:mid]...))
	fHi := FromCoeffs(append([]soib.SmallOrBig(nil), coeffs[mid:]...))

	gPowMid := New()
	gPowMid.powUnsignedPoly(g, mid)

	hi := New().ComposeDivConquer(fHi, g)
	lo := New().ComposeDivConquer(fLo, g)

	hi.Mul(hi, gPowMid)
	p.Add(hi, lo)
	return p
}

func (p *ZPoly) powUnsignedPoly(base *ZPoly, e int) *ZPoly {
	result := FromCoeffs([]soib.SmallOrBig{*onePoly()})
	cur := base.Clone()
	for e > 0 {
		if e&1 == 1 {
			result.Mul(result, cur)
		}
		cur.Mul(cur, cur)
		e >>= 1
	}
	p.Set(result)
	return p
}

func onePoly() *soib.SmallOrBig {
	v := new(soib.SmallOrBig)
	v.SetSmall(1)
	return v
}

// ComposeSeriesBrentKung composes f(g(x)) mod x^n, restricted to g with
// zero constant term (so the series is well defined), via the Brent-Kung
// block algorithm: split f into blocks of size ~sqrt(n), precompute
// powers of g up to the block size, and combine blocks with a matrix-like
// accumulation of g-powers.
func (p *ZPoly) ComposeSeriesBrentKung(f, g *ZPoly, n int) error {
	if n <= 0 {
		p.Zero()
		return nil
	}
	if !g.IsZero() && !g.Coeff(0).IsZero() {
		return xerr.ErrInvalidArgument
	}

	block := 1
	for block*block < n {
		block++
	}

	// Precompute g^0 .. g^block mod x^n.
	powers := make([]*ZPoly, block+1)
	powers[0] = FromCoeffs([]soib.SmallOrBig{*onePoly()})
	for i := 1; i <= block; i++ {
		next := New()
		next.MulLow(powers[i-1], g, n)
		powers[i] = next
	}
	gBlock := powers[block]

	fCoeffs := f.Coeffs()
	numBlocks := (len(fCoeffs) + block - 1) / block
	if numBlocks == 0 {
		p.Zero()
		return nil
	}

	acc := New()
	gBlockPow := FromCoeffs([]soib.SmallOrBig{*onePoly()})
	for bIdx := 0; bIdx < numBlocks; bIdx++ {
		lo := bIdx * block
		hi := lo + block
		if hi > len(fCoeffs) {
			hi = len(fCoeffs)
		}
		inner := New()
		for i := lo; i < hi; i++ {
			term := New()
			term.ScalarMul(powers[i-lo], &fCoeffs[i])
			inner.Add(inner, term)
		}
		scaled := New()
		scaled.MulLow(inner, gBlockPow, n)
		acc.Add(acc, scaled)

		if bIdx+1 < numBlocks {
			next := New()
			next.MulLow(gBlockPow, gBlock, n)
			gBlockPow = next
		}
	}

	if acc.Len() > n {
		acc = truncated(acc, n)
	}
	p.Set(acc)
	return nil
}
