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

// Package modular implements the modular bridge: reduction of an integer
// or IntVec mod a word-size prime, Chinese-remainder reconstruction, and
// a multi-modulus remainder tree (MultiModTree). It implements only the
// thin nmod surface this bridge needs (reduce/add/sub/mul/inv, computed
// exactly with math/bits' 128-bit arithmetic) and not the fuller
// nmod/nmod_poly kernel the spec treats as out of scope.
package modular

import (
	"math/big"
	"math/bits"

	"github.com/nume-crypto/flintgo/intvec"
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
)

// NmodCtx caches a word-size modulus p together with its bit length and
// a Barrett-style approximate reciprocal, matching the modular-integer
// value described in spec Section 3. Exact reduction itself is performed
// with math/bits' 128-bit division, which is always exact for the
// products this context is used to reduce.
type NmodCtx struct {
	P      uint64
	bitLen int
	ninv   uint64 // floor(2^(64+bitLen)/P), retained for documentation/inspection
}

// NewNmodCtx builds a context for modulus p. p must be nonzero.
func NewNmodCtx(p uint64) (*NmodCtx, error) {
	if p == 0 {
		return nil, xerr.ErrInvalidArgument
	}
	bl := bits.Len64(p)
	approx := new(big.Int).Lsh(big.NewInt(1), uint(64+bl))
	approx.Div(approx, new(big.Int).SetUint64(p))
	var ninv uint64
	if approx.IsUint64() {
		ninv = approx.Uint64()
	} else {
		ninv = ^uint64(0)
	}
	return &NmodCtx{P: p, bitLen: bl, ninv: ninv}, nil
}

// BitLen returns the bit length of the modulus.
func (ctx *NmodCtx) BitLen() int { return ctx.bitLen }

// Reduce maps an arbitrary uint64 into [0, P).
func (ctx *NmodCtx) Reduce(x uint64) uint64 {
	return x % ctx.P
}

// ReduceSigned maps a (possibly negative) integer into [0, P) by
// Euclidean reduction, as required of zvec_to_nmod.
func (ctx *NmodCtx) ReduceSigned(x *soib.SmallOrBig) uint64 {
	m := new(soib.SmallOrBig)
	if err := m.Mod(x, new(soib.SmallOrBig).SetBigInt(new(big.Int).SetUint64(ctx.P))); err != nil {
		panic(err) // P == 0 is excluded by NewNmodCtx
	}
	return m.BigInt().Uint64()
}

// Add returns a+b mod P, for a, b already in [0, P).
func (ctx *NmodCtx) Add(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry == 0 {
		if s >= ctx.P {
			s -= ctx.P
		}
		return s
	}
	// a+b overflowed 64 bits: only possible when P itself sits near 2^64.
	// Fall back to exact wide reduction.
	_, rem := bits.Div64(carry, s, ctx.P)
	return rem
}

// Sub returns a-b mod P, for a, b already in [0, P).
func (ctx *NmodCtx) Sub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return ctx.P - (b - a)
}

// Neg returns -a mod P, for a already in [0, P).
func (ctx *NmodCtx) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return ctx.P - a
}

// Mul returns a*b mod P, for a, b already in [0, P). Exact via a 128-bit
// product and math/bits.Div64 (always safe here: the product's high word
// is provably < P whenever a, b < P <= 2^64-1).
func (ctx *NmodCtx) Mul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return lo % ctx.P
	}
	_, rem := bits.Div64(hi, lo, ctx.P)
	return rem
}

// Inv returns the modular inverse of a mod P, or ErrInvalidArgument if
// gcd(a, P) != 1.
func (ctx *NmodCtx) Inv(a uint64) (uint64, error) {
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, new(big.Int).SetUint64(a), new(big.Int).SetUint64(ctx.P))
	if g.Cmp(big.NewInt(1)) != 0 {
		return 0, xerr.ErrInvalidArgument
	}
	x.Mod(x, new(big.Int).SetUint64(ctx.P))
	return x.Uint64(), nil
}

// ZVecToNmod reduces every entry of vec modulo ctx.P, mapping signed
// values into [0, P) by Euclidean reduction.
func ZVecToNmod(vec *intvec.IntVec, ctx *NmodCtx) []uint64 {
	out := make([]uint64, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		out[i] = ctx.ReduceSigned(vec.At(i))
	}
	return out
}

// CRT computes the unique representative in (-m1*m2/2, m1*m2/2] congruent
// to r1 mod m1 and r2 mod m2, for m1, m2 coprime. It is the single-prime
// CRT update step used incrementally by ZPoly.GCDModular and by ZPoly's
// multi-modulus multiplication rung.
func CRT(r1 *soib.SmallOrBig, m1 *soib.SmallOrBig, r2 uint64, m2 uint64) *soib.SmallOrBig {
	return new(soib.SmallOrBig).CRT(r1, m1, int64(r2), m2)
}
