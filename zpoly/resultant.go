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

	"github.com/nume-crypto/flintgo/soib"
)

// Resultant computes Res(a, b) with ResultantEuclidean for every input.
// QPoly's Resultant and ResultantModularDiv call it on the integer
// numerators and fold the denominators in afterwards.
func Resultant(a, b *ZPoly) *soib.SmallOrBig {
	return ResultantEuclidean(a, b)
}

// ResultantEuclidean computes Res(a, b) via the classical remainder-
// sequence recursion
//
//	Res(A,B) = (-1)^(deg A * deg B) * lead(B)^(deg A - deg R) * Res(B, R)
//
// where R = A mod B is the *true* (not pseudo) polynomial remainder.
// True division over Q is done with big.Rat coefficients internally
// (self-contained here, to avoid a zpoly -> qpoly import cycle); the
// final result is exact and always reduces to an integer.
func ResultantEuclidean(a, b *ZPoly) *soib.SmallOrBig {
	if a.IsZero() || b.IsZero() {
		return soib.New(0)
	}

	A, B := toRatPoly(a), toRatPoly(b)
	dA, dB := ratDegree(A), ratDegree(B)
	sign := 1
	if dA < dB {
		A, B = B, A
		dA, dB = dB, dA
		if dA%2 == 1 && dB%2 == 1 {
			sign = -sign
		}
	}

	acc := big.NewRat(1, 1)
	for dB > 0 {
		_, r := ratDivMod(A, B)
		dR := ratDegree(r)
		if dR < 0 {
			return soib.New(0)
		}
		leadB := B[dB]
		acc.Mul(acc, ratPow(leadB, dA-dR))
		if dA%2 == 1 && dB%2 == 1 {
			sign = -sign
		}
		A, B = B, r
		dA, dB = dB, dR
	}
	// dB == 0: B is a nonzero constant; fold in Res(A,B) = B[0]^dA.
	acc.Mul(acc, ratPow(B[0], dA))

	if sign < 0 {
		acc.Neg(acc)
	}
	if !acc.IsInt() {
		panic("zpoly: resultant of integer polynomials was not an integer")
	}
	return new(soib.SmallOrBig).SetBigInt(acc.Num())
}

func toRatPoly(p *ZPoly) []*big.Rat {
	coeffs := p.Coeffs()
	out := make([]*big.Rat, len(coeffs))
	for i := range coeffs {
		out[i] = new(big.Rat).SetInt(coeffs[i].BigInt())
	}
	return out
}

// ratDegree returns the degree of p (trailing zero entries ignored),
// or -1 for the zero polynomial.
func ratDegree(p []*big.Rat) int {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return n - 1
}

// ratDivMod performs true polynomial division over Q, returning
// quotient and remainder (both possibly shorter than their nominal
// length; callers use ratDegree to find the true degree).
func ratDivMod(a, b []*big.Rat) (q, r []*big.Rat) {
	dB := ratDegree(b)
	rem := make([]*big.Rat, len(a))
	for i := range a {
		rem[i] = new(big.Rat).Set(a[i])
	}
	dRem := ratDegree(rem)
	if dRem < dB {
		return nil, rem
	}
	quot := make([]*big.Rat, dRem-dB+1)
	for i := range quot {
		quot[i] = new(big.Rat)
	}
	leadBInv := new(big.Rat).Inv(b[dB])

	for dRem >= dB {
		c := new(big.Rat).Mul(rem[dRem], leadBInv)
		shift := dRem - dB
		quot[shift].Set(c)
		for i := 0; i <= dB; i++ {
			term := new(big.Rat).Mul(c, b[i])
			rem[shift+i].Sub(rem[shift+i], term)
		}
		dRem = ratDegree(rem)
	}
	return quot, rem
}

func ratPow(base *big.Rat, e int) *big.Rat {
	out := big.NewRat(1, 1)
	if e < 0 {
		panic("zpoly: negative resultant exponent")
	}
	b := new(big.Rat).Set(base)
	for e > 0 {
		if e&1 == 1 {
			out.Mul(out, b)
		}
		b.Mul(b, b)
		e >>= 1
	}
	return out
}
