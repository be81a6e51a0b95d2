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
	"math/big"

	"github.com/nume-crypto/flintgo/internal/glog"
	"github.com/nume-crypto/flintgo/intvec"
	"github.com/nume-crypto/flintgo/modular"
	"github.com/nume-crypto/flintgo/soib"
)

const (
	gcdClassicalLenThreshold = 8
	gcdHeuristicBitBudget    = 4096
	gcdModularStabilityRuns  = 2
)

// GCDSubresultant computes gcd(a, b) via the classical primitive
// pseudo-remainder (Euclidean) sequence: repeatedly pseudo-divide,
// taking the primitive part of each remainder, until a zero remainder
// is reached; the gcd is the primitive part of the last nonzero
// remainder, scaled by gcd(content(a), content(b)).
func GCDSubresultant(out *ZPoly, a, b *ZPoly) *ZPoly {
	if a.IsZero() {
		return out.Set(primitivePartOrZero(b))
	}
	if b.IsZero() {
		return out.Set(primitivePartOrZero(a))
	}

	ca, cb := a.Content(), b.Content()
	contentGCD := new(soib.SmallOrBig).GCD(ca, cb)

	pa, pb := New(), New()
	pa.Set(a).primitivePartInPlace()
	pb.Set(b).primitivePartInPlace()
	if pa.Degree() < pb.Degree() {
		pa, pb = pb, pa
	}

	for !pb.IsZero() {
		r := New()
		if _, err := PseudoDivRem(New(), r, pa, pb); err != nil {
			panic(err) // pb is nonzero by loop condition
		}
		r.primitivePartInPlace()
		pa, pb = pb, r
	}

	if pa.IsZero() {
		out.Zero()
		return out
	}
	out.ScalarMul(pa, contentGCD)
	if out.LeadingCoeff().Sign() < 0 {
		out.Neg(out)
	}
	return out
}

func primitivePartOrZero(p *ZPoly) *ZPoly {
	if p.IsZero() {
		return New()
	}
	q := p.Clone()
	q.primitivePartInPlace()
	return q
}

// primitivePartInPlace divides p by its content (sign-adjusted so the
// leading coefficient is positive), in place.
func (p *ZPoly) primitivePartInPlace() *ZPoly {
	if p.IsZero() {
		return p
	}
	c := p.Content()
	if p.LeadingCoeff().Sign() < 0 {
		c.Neg(c)
	}
	if c.IsOne() {
		return p
	}
	coeffs := p.Coeffs()
	for i := range coeffs {
		if err := coeffs[i].DivExact(&coeffs[i], c); err != nil {
			panic(err) // c = content(p), divides every coefficient by construction
		}
	}
	return p
}

// Content returns the content of p (gcd of its coefficients, 0 for the
// zero polynomial).
func (p *ZPoly) Content() *soib.SmallOrBig {
	return p.c.Content()
}

// PrimitivePart returns p / content(p), sign-normalised so the leading
// coefficient is positive; the zero polynomial maps to itself.
func (p *ZPoly) PrimitivePart(a *ZPoly) *ZPoly {
	p.Set(a)
	p.primitivePartInPlace()
	return p
}

// GCDHeuristic evaluates a and b at a power of two large enough to
// dominate any cancellation, takes the integer gcd, and unpacks a
// candidate polynomial gcd via Kronecker-style base-2^k digit
// extraction, verified by trial division. Fast when coefficients are
// small; falls back to reporting failure (caller should retry with
// GCDSubresultant or GCDModular) via a boolean.
func GCDHeuristic(out *ZPoly, a, b *ZPoly) bool {
	if a.IsZero() || b.IsZero() {
		GCDSubresultant(out, a, b)
		return true
	}

	boundBits := maxAbsBits(a.Coeffs())
	if bb := maxAbsBits(b.Coeffs()); bb > boundBits {
		boundBits = bb
	}
	boundBits = 2*boundBits + degreeBits(a, b) + 8

	k := uint(boundBits)
	av := a.Evaluate(shiftedPower(k))
	bv := b.Evaluate(shiftedPower(k))

	var gi big.Int
	gi.GCD(nil, nil, av.BigInt(), bv.BigInt())
	g := new(soib.SmallOrBig).SetBigInt(&gi)
	if g.IsZero() {
		return false
	}

	candidate := unpackKronecker(g.BigInt(), k, a.Len()+b.Len())
	cand := FromCoeffs(candidate)
	cand.primitivePartInPlace()
	if cand.IsZero() {
		return false
	}

	q1, r1 := New(), New()
	if err := DivRemBasecase(q1, r1, a, cand, true); err != nil || !r1.IsZero() {
		return false
	}
	q2, r2 := New(), New()
	if err := DivRemBasecase(q2, r2, b, cand, true); err != nil || !r2.IsZero() {
		return false
	}

	out.Set(cand)
	return true
}

func degreeBits(a, b *ZPoly) int {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	if n <= 1 {
		return 1
	}
	bl := 0
	for (1 << bl) < n {
		bl++
	}
	return bl
}

func shiftedPower(k uint) *soib.SmallOrBig {
	out := new(soib.SmallOrBig)
	out.Mul2Exp(soib.New(1), k)
	return out
}

// GCDModular reduces a and b modulo the fixed list of word-size primes
// from gcdModularPrimeStream, computes the gcd mod each prime via the
// classical Euclidean algorithm over Z/pZ, and CRT-reconstructs the
// integer coefficients until the reconstructed candidate is stable
// across gcdModularStabilityRuns consecutive primes or the list is used
// up. No coefficient bound is checked: the candidate is accepted only if
// it divides both primitive parts exactly, and GCDSubresultant is used
// otherwise. The result is scaled by gcd(content(a), content(b)) to fix
// normalisation.
func GCDModular(out *ZPoly, a, b *ZPoly) *ZPoly {
	if a.IsZero() || b.IsZero() {
		return GCDSubresultant(out, a, b)
	}
	ca, cb := a.Content(), b.Content()
	contentGCD := new(soib.SmallOrBig).GCD(ca, cb)

	pa, pb := primitivePartOrZero(a), primitivePartOrZero(b)

	primes := gcdModularPrimeStream()
	var mod = new(soib.SmallOrBig).One()
	var accPoly []soib.SmallOrBig
	stable := 0

	for _, p := range primes {
		ctx, err := modular.NewNmodCtx(p)
		if err != nil {
			continue
		}
		la := modular.ZVecToNmod(intvec.FromRaw(append([]soib.SmallOrBig(nil), pa.Coeffs()...)), ctx)
		lb := modular.ZVecToNmod(intvec.FromRaw(append([]soib.SmallOrBig(nil), pb.Coeffs()...)), ctx)
		gmod := gcdModClassical(la, lb, ctx)
		if len(gmod) == 0 {
			continue // unlucky prime (leading coefficients vanished)
		}
		normaliseModMonic(gmod, ctx)

		next := make([]soib.SmallOrBig, len(gmod))
		for i := range gmod {
			var prev soib.SmallOrBig
			if i < len(accPoly) {
				prev = accPoly[i]
			}
			next[i] = *modular.CRT(&prev, mod, gmod[i], p)
		}
		if accPoly != nil && len(accPoly) == len(next) {
			same := true
			for i := range next {
				if !next[i].Equal(&accPoly[i]) {
					same = false
					break
				}
			}
			if same {
				stable++
			} else {
				stable = 0
			}
		} else {
			stable = 0
		}
		accPoly = next
		mod.Mul(mod, soib.New(int64(p)))

		if stable >= gcdModularStabilityRuns {
			break
		}
	}

	if accPoly == nil {
		glog.Logger().Debug().Msg("gcd_modular: no usable prime found, falling back to subresultant")
		return GCDSubresultant(out, a, b)
	}

	cand := FromCoeffs(accPoly)
	cand.primitivePartInPlace()
	if cand.IsZero() {
		return GCDSubresultant(out, a, b)
	}
	q1, r1 := New(), New()
	if err := DivRemBasecase(q1, r1, pa, cand, true); err != nil || !r1.IsZero() {
		return GCDSubresultant(out, a, b)
	}
	q2, r2 := New(), New()
	if err := DivRemBasecase(q2, r2, pb, cand, true); err != nil || !r2.IsZero() {
		return GCDSubresultant(out, a, b)
	}

	out.ScalarMul(cand, contentGCD)
	return out
}

// gcdModClassical computes gcd(a, b) over Z/pZ via the classical
// Euclidean algorithm on dense coefficient slices, returned monic.
func gcdModClassical(a, b []uint64, ctx *modular.NmodCtx) []uint64 {
	a = trimModWord(a)
	b = trimModWord(b)
	for len(b) > 0 {
		r := polyRemMonicLeadInv(a, b, ctx)
		a, b = b, r
	}
	return a
}

func trimModWord(p []uint64) []uint64 {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// polyRemMonicLeadInv computes a mod b over Z/pZ for an arbitrary
// (non-necessarily-monic) nonzero divisor b, via the leading
// coefficient's modular inverse.
func polyRemMonicLeadInv(a, b []uint64, ctx *modular.NmodCtx) []uint64 {
	if len(b) == 0 {
		panic("division by zero polynomial mod p")
	}
	leadInv, err := ctx.Inv(b[len(b)-1])
	if err != nil {
		// leading coefficient not invertible mod p (not reachable for a
		// prime modulus and a trimmed b): return a unchanged.
		return a
	}
	rem := make([]uint64, len(a))
	copy(rem, a)
	rem = trimModWord(rem)
	d := len(b) - 1
	for len(rem) > d {
		lead := rem[len(rem)-1]
		if lead != 0 {
			c := ctx.Mul(lead, leadInv)
			shift := len(rem) - 1 - d
			for i := 0; i <= d; i++ {
				rem[shift+i] = ctx.Sub(rem[shift+i], ctx.Mul(c, b[i]))
			}
		}
		rem = trimModWord(rem[:len(rem)-1])
	}
	return rem
}

func normaliseModMonic(g []uint64, ctx *modular.NmodCtx) {
	if len(g) == 0 {
		return
	}
	lead := g[len(g)-1]
	if lead == 1 {
		return
	}
	inv, err := ctx.Inv(lead)
	if err != nil {
		return
	}
	for i := range g {
		g[i] = ctx.Mul(g[i], inv)
	}
}

// gcdModularPrimeStream returns the fixed list of ten word-size primes
// used incrementally by GCDModular (ordinary primes, not required to be
// NTT-friendly for this use).
func gcdModularPrimeStream() []uint64 {
	return []uint64{
		1000000007, 1000000009, 998244353, 1000000021, 1000000033,
		1000000087, 1000000093, 1000000097, 1000000103, 1000000123,
	}
}

// GCD dispatches between the classical, heuristic, and modular gcd
// algorithms: classical for very short inputs, heuristic when
// coefficient bits are small, modular otherwise.
func GCD(out *ZPoly, a, b *ZPoly) *ZPoly {
	if a.Len() < gcdClassicalLenThreshold && b.Len() < gcdClassicalLenThreshold {
		return GCDSubresultant(out, a, b)
	}
	boundBits := maxAbsBits(a.Coeffs())
	if bb := maxAbsBits(b.Coeffs()); bb > boundBits {
		boundBits = bb
	}
	if boundBits < gcdHeuristicBitBudget {
		if GCDHeuristic(out, a, b) {
			return out
		}
	}
	return GCDModular(out, a, b)
}
