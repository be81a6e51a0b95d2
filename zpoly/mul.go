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
	"math/bits"

	"github.com/nume-crypto/flintgo/internal/glog"
	"github.com/nume-crypto/flintgo/modular"
	"github.com/nume-crypto/flintgo/soib"
)

const (
	karatsubaLenThreshold   = 16
	karatsubaLimbThreshold  = 12
	kroneckerLimbSumBudget  = 8
	classicalLenThreshold   = 7
	tinyAccumulatorMaxWidth = 62 // leave 2 bits of headroom in a 64-bit word
)

// Mul sets p = a * b, selecting an algorithm from the crossover ladder:
// scalar multiply for a length-1 operand, sqr for a squaring, a
// native-word tiny accumulator when operands are small enough to prove
// no overflow, classical schoolbook for short second operands, Karatsuba
// for many small-length/large-coefficient operands, Kronecker
// substitution when total coefficient width is small, and otherwise a
// multi-modulus CRT multiplication. p may alias a or b.
func (p *ZPoly) Mul(a, b *ZPoly) *ZPoly {
	if a.IsZero() || b.IsZero() {
		return p.Zero()
	}
	if b.Len() == 1 {
		return p.ScalarMul(a, b.Coeff(0))
	}
	if a.Len() == 1 {
		return p.ScalarMul(b, a.Coeff(0))
	}
	if a == b {
		return p.Sqr(a)
	}

	la, lb := a.Coeffs(), b.Coeffs()
	out := dispatchMul(la, lb)
	setCoeffsFrom(p, out)
	return p
}

// Sqr sets p = a*a, restricted to the single-operand algorithms of the
// ladder.
func (p *ZPoly) Sqr(a *ZPoly) *ZPoly {
	if a.IsZero() {
		return p.Zero()
	}
	la := a.Coeffs()
	out := dispatchMul(la, la)
	setCoeffsFrom(p, out)
	return p
}

func dispatchMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	la, lb := len(a), len(b)
	if la < lb {
		a, b = b, a
		la, lb = lb, la
	}

	maxBits1, maxBits2 := maxAbsBits(a), maxAbsBits(b)
	switch {
	case lb < 50 && maxBits1+maxBits2+bits.Len(uint(lb)) <= tinyAccumulatorMaxWidth:
		glog.Logger().Trace().Msg("zpoly.Mul: tiny-accumulator rung")
		return tinyAccumulatorMul(a, b)
	case lb < classicalLenThreshold:
		glog.Logger().Trace().Msg("zpoly.Mul: classical rung")
		return classicalMul(a, b)
	case la < karatsubaLenThreshold && maxLimbs(a, b) > karatsubaLimbThreshold:
		glog.Logger().Trace().Msg("zpoly.Mul: karatsuba rung")
		return karatsubaMul(a, b)
	case (maxBits1+63)/64+(maxBits2+63)/64 <= kroneckerLimbSumBudget:
		glog.Logger().Trace().Msg("zpoly.Mul: kronecker rung")
		return kroneckerMul(a, b)
	default:
		glog.Logger().Trace().Msg("zpoly.Mul: modular CRT rung")
		return modularCRTMul(a, b)
	}
}

func maxAbsBits(p []soib.SmallOrBig) int {
	m := 0
	for i := range p {
		if b := p[i].BitLen(); b > m {
			m = b
		}
	}
	return m
}

func maxLimbs(a, b []soib.SmallOrBig) int {
	m := (maxAbsBits(a) + 63) / 64
	if n := (maxAbsBits(b) + 63) / 64; n > m {
		m = n
	}
	return m
}

// classicalMul is the O(len(a)*len(b)) schoolbook convolution.
func classicalMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
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
	return trimTrailingZero(out)
}

// tinyAccumulatorMul is the same convolution as classicalMul, but
// accumulates each output coefficient in a native int64 (proven safe by
// the caller's bit-budget check) and stores it into a SmallOrBig once,
// instead of repeated big-arithmetic AddMul calls.
func tinyAccumulatorMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(a) + len(b) - 1
	acc := make([]int64, n)
	for i := range a {
		av := a[i].BigInt().Int64()
		if av == 0 {
			continue
		}
		for j := range b {
			bv := b[j].BigInt().Int64()
			acc[i+j] += av * bv
		}
	}
	out := make([]soib.SmallOrBig, n)
	for i, v := range acc {
		out[i].SetSmall(v)
	}
	return trimTrailingZero(out)
}

// karatsubaMul recursively splits a and b and combines three half-size
// products, switching to the classical path below the threshold.
func karatsubaMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	if len(a) < karatsubaLenThreshold || len(b) < karatsubaLenThreshold {
		return classicalMul(a, b)
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	mid := n / 2

	aLo, aHi := splitAt(a, mid)
	bLo, bHi := splitAt(b, mid)

	z0 := karatsubaMul(aLo, bLo)
	z2 := karatsubaMul(aHi, bHi)

	aSum := polyAddSigned(aLo, aHi)
	bSum := polyAddSigned(bLo, bHi)
	z1 := karatsubaMul(aSum, bSum)
	z1 = polySubSigned(z1, z0)
	z1 = polySubSigned(z1, z2)

	out := make([]soib.SmallOrBig, len(a)+len(b)-1)
	addAt(out, z0, 0)
	addAt(out, z1, mid)
	addAt(out, z2, 2*mid)
	return trimTrailingZero(out)
}

func splitAt(p []soib.SmallOrBig, mid int) (lo, hi []soib.SmallOrBig) {
	if mid > len(p) {
		mid = len(p)
	}
	return p[:mid], p[mid:]
}

func polyAddSigned(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]soib.SmallOrBig, n)
	for i := 0; i < n; i++ {
		var av, bv soib.SmallOrBig
		if i < len(a) {
			av.Set(&a[i])
		}
		if i < len(b) {
			bv.Set(&b[i])
		}
		out[i].Add(&av, &bv)
	}
	return trimTrailingZero(out)
}

func polySubSigned(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]soib.SmallOrBig, n)
	for i := 0; i < n; i++ {
		var av, bv soib.SmallOrBig
		if i < len(a) {
			av.Set(&a[i])
		}
		if i < len(b) {
			bv.Set(&b[i])
		}
		out[i].Sub(&av, &bv)
	}
	return trimTrailingZero(out)
}

func addAt(out []soib.SmallOrBig, src []soib.SmallOrBig, offset int) {
	for i := range src {
		out[offset+i].Add(&out[offset+i], &src[i])
	}
}

// kroneckerMul evaluates each polynomial at x = 2^width (a signed
// Horner packing into a single big.Int), lets math/big's multiplication
// compute the convolution implicitly, and unpacks the product back into
// balanced base-2^width digits. width is chosen large enough that no
// output coefficient's magnitude can reach 2^(width-1), so each digit
// recovered from the product is exactly one output coefficient.
func kroneckerMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(a) + len(b) - 1
	maxBits1, maxBits2 := maxAbsBits(a), maxAbsBits(b)
	width := uint(maxBits1 + maxBits2 + bits.Len(uint(minInt(len(a), len(b)))) + 2)

	packedA := packKronecker(a, width)
	packedB := packKronecker(b, width)

	var prod big.Int
	prod.Mul(packedA, packedB)

	return trimTrailingZero(unpackKronecker(&prod, width, n))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// packKronecker evaluates p at 2^width via Horner, directly as a signed
// big.Int (no explicit bias needed: math/big handles negative
// coefficients natively).
func packKronecker(p []soib.SmallOrBig, width uint) *big.Int {
	out := new(big.Int)
	for i := len(p) - 1; i >= 0; i-- {
		out.Lsh(out, width)
		out.Add(out, p[i].BigInt())
	}
	return out
}

// unpackKronecker extracts n balanced base-2^width digits from packed,
// least significant first, via exact division.
func unpackKronecker(packed *big.Int, width uint, n int) []soib.SmallOrBig {
	base := new(big.Int).Lsh(big.NewInt(1), width)
	half := new(big.Int).Lsh(big.NewInt(1), width-1)

	out := make([]soib.SmallOrBig, n)
	cur := new(big.Int).Set(packed)
	for i := 0; i < n; i++ {
		r := new(big.Int).Mod(cur, base) // Euclidean mod: 0 <= r < base
		if r.Cmp(half) >= 0 {
			r.Sub(r, base)
		}
		out[i].SetBigInt(r)
		cur.Sub(cur, r)
		cur.Div(cur, base) // exact
	}
	return out
}

// modularCRTMul computes the convolution modulo each of several
// pairwise-coprime word-size primes (chosen large enough that their
// product provably exceeds twice the coefficient bound) and
// reconstructs each output coefficient via CRT. This realises the
// "FFT" rung of the ladder in terms of the modular bridge this package
// already depends on, rather than a bespoke negacyclic transform.
// Before returning, the reconstruction is checked against one further
// prime outside the chosen set (mirroring the trial-division safety
// net GCDModular applies to its own CRT reconstruction); on mismatch
// it falls back to kroneckerMul, which is exact regardless of width.
func modularCRTMul(a, b []soib.SmallOrBig) []soib.SmallOrBig {
	n := len(a) + len(b) - 1
	boundBits := maxAbsBits(a) + maxAbsBits(b) + bits.Len(uint(minInt(len(a), len(b)))) + 2

	primes := crtPrimes(uint(boundBits))
	partials := make([][]uint64, len(primes))
	for i, pr := range primes {
		ctx, err := modular.NewNmodCtx(pr)
		if err != nil {
			panic(err) // crtPrimes never returns 0 or a duplicate
		}
		va := toNmod(a, ctx)
		vb := toNmod(b, ctx)
		partials[i] = convolveMod(va, vb, ctx)
	}

	out := make([]soib.SmallOrBig, n)
	for i := 0; i < n; i++ {
		acc := new(soib.SmallOrBig)
		mod := new(soib.SmallOrBig).One()
		for k, pr := range primes {
			acc = modular.CRT(acc, mod, partials[k][i], pr)
			mod.Mul(mod, soib.New(int64(pr)))
		}
		out[i] = *acc
	}
	out = trimTrailingZero(out)

	if !verifyModularCRTMul(a, b, out, primes[len(primes)-1]) {
		glog.Logger().Debug().Msg("zpoly.Mul: modular CRT reconstruction failed verification, falling back to kronecker rung")
		return kroneckerMul(a, b)
	}
	return out
}

// verifyModularCRTMul checks out against the convolution reduced modulo
// one prime strictly below every prime crtPrimes chose for it, which
// guarantees independence from the reconstruction (CRT over the chosen
// primes cannot silently agree with a wrong answer on an unrelated
// modulus by construction of the reduction).
func verifyModularCRTMul(a, b, out []soib.SmallOrBig, lowestUsed uint64) bool {
	check := prevProbablePrime(lowestUsed - 2)
	ctx, err := modular.NewNmodCtx(check)
	if err != nil {
		return false
	}
	want := convolveMod(toNmod(a, ctx), toNmod(b, ctx), ctx)
	for i := range want {
		var got uint64
		if i < len(out) {
			got = ctx.ReduceSigned(&out[i])
		}
		if got != want[i] {
			return false
		}
	}
	return true
}

func toNmod(p []soib.SmallOrBig, ctx *modular.NmodCtx) []uint64 {
	out := make([]uint64, len(p))
	for i := range p {
		out[i] = ctx.ReduceSigned(&p[i])
	}
	return out
}

func convolveMod(a, b []uint64, ctx *modular.NmodCtx) []uint64 {
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

// crtPrimesStart is the first candidate probed when searching downward
// for word-size primes: just below 2^62, leaving headroom so products
// of a handful of them stay representable without wraparound concerns
// in the uint64 modulus arithmetic above.
const crtPrimesStart = uint64(1)<<62 - 1

// crtPrimes returns enough pairwise-coprime (here: pairwise distinct
// prime, which implies coprime) word-size primes, found by probing
// downward from crtPrimesStart with math/big's Miller-Rabin primality
// test, that their product exceeds 2^(boundBits+1) — growing the set
// as far as a given multiplication's coefficient width demands rather
// than relying on any fixed-size table.
func crtPrimes(boundBits uint) []uint64 {
	needed := new(big.Int).Lsh(big.NewInt(1), boundBits+1)
	product := big.NewInt(1)
	var chosen []uint64
	next := crtPrimesStart
	for product.Cmp(needed) < 0 {
		p := prevProbablePrime(next)
		chosen = append(chosen, p)
		product.Mul(product, new(big.Int).SetUint64(p))
		next = p - 2
	}
	return chosen
}

// prevProbablePrime returns the largest prime <= start (start must be
// odd and >= 3), via math/big's Miller-Rabin/Baillie-PSW test.
func prevProbablePrime(start uint64) uint64 {
	for c := start; c > 2; c -= 2 {
		if new(big.Int).SetUint64(c).ProbablyPrime(20) {
			return c
		}
	}
	panic("zpoly: ran out of candidate primes") // unreachable for any realistic boundBits
}

// MulLow sets p to the low n coefficients of a*b (used heavily by
// series operations), without materialising the full product.
func (p *ZPoly) MulLow(a, b *ZPoly, n int) *ZPoly {
	if n <= 0 || a.IsZero() || b.IsZero() {
		return p.Zero()
	}
	la, lb := a.Coeffs(), b.Coeffs()
	if len(la) > n {
		la = la[:n]
	}
	if len(lb) > n {
		lb = lb[:n]
	}
	out := classicalMul(la, lb)
	if len(out) > n {
		out = out[:n]
	}
	setCoeffsFrom(p, append([]soib.SmallOrBig(nil), out...))
	return p
}
