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

// Package soib implements SmallOrBig, the tagged integer element the
// rest of the module is built on: one value that either inlines a
// signed integer in a restricted range or owns a heap-allocated
// arbitrary-precision integer, promoting and demoting transparently so
// that "representable as small" always implies "stored as small".
package soib

import (
	"math/big"
	"math/bits"

	"github.com/nume-crypto/flintgo/xerr"
)

// MinSmall and MaxSmall bound the inline representation: 62 usable bits,
// comfortably over the spec's |MAX_SMALL| >= 2^(wordbits-2)-1 floor for a
// 64-bit word.
const (
	smallBits = 62
	MaxSmall  = int64(1)<<smallBits - 1
	MinSmall  = -(int64(1) << smallBits)
)

// SmallOrBig is the zero-value-ready tagged integer. The zero value is
// the integer 0 in small form, ready to use without a separate Init call.
type SmallOrBig struct {
	small int64
	big   *big.Int // nil iff the value is in small form
}

// New returns a SmallOrBig set to v.
func New(v int64) *SmallOrBig {
	return new(SmallOrBig).SetSmall(v)
}

func (z *SmallOrBig) isSmall() bool { return z.big == nil }

// fitsSmall reports whether v fits the inline range.
func fitsSmall(v *big.Int) bool {
	return v.IsInt64() && v.Int64() >= MinSmall && v.Int64() <= MaxSmall
}

// setBig normalises v into z: demotes to small form when possible,
// otherwise keeps (or allocates) an owned big buffer. z exclusively owns
// whatever buffer results; the caller's v is not retained.
func (z *SmallOrBig) setBig(v *big.Int) *SmallOrBig {
	if fitsSmall(v) {
		z.small = v.Int64()
		z.big = nil
		return z
	}
	if z.big == nil {
		z.big = new(big.Int)
	}
	z.big.Set(v)
	return z
}

// asBig returns a *big.Int view of z's value. The returned value must not
// be mutated in place by the caller (it may alias z's owned buffer when
// z is already in big form); callers that need to mutate call .Set first.
func (z *SmallOrBig) asBig() *big.Int {
	if z.isSmall() {
		return big.NewInt(z.small)
	}
	return z.big
}

// Zero sets z to 0.
func (z *SmallOrBig) Zero() *SmallOrBig {
	z.small = 0
	z.big = nil
	return z
}

// One sets z to 1.
func (z *SmallOrBig) One() *SmallOrBig {
	return z.SetSmall(1)
}

// SetSmall sets z to the native integer v.
func (z *SmallOrBig) SetSmall(v int64) *SmallOrBig {
	z.small = v
	z.big = nil
	return z
}

// Set sets z to x.
func (z *SmallOrBig) Set(x *SmallOrBig) *SmallOrBig {
	if z == x {
		return z
	}
	if x.isSmall() {
		return z.SetSmall(x.small)
	}
	return z.setBig(x.big)
}

// SetBigInt sets z to v, normalising to small form if v fits.
func (z *SmallOrBig) SetBigInt(v *big.Int) *SmallOrBig {
	return z.setBig(v)
}

// BigInt returns a freshly allocated *big.Int holding z's value.
func (z *SmallOrBig) BigInt() *big.Int {
	if z.isSmall() {
		return big.NewInt(z.small)
	}
	return new(big.Int).Set(z.big)
}

// IsZero reports whether z is the unique representation of 0 (always
// small form, per the normal-form rule).
func (z *SmallOrBig) IsZero() bool {
	return z.isSmall() && z.small == 0
}

// IsOne reports whether z == 1.
func (z *SmallOrBig) IsOne() bool {
	return z.isSmall() && z.small == 1
}

// Sign returns -1, 0 or +1.
func (z *SmallOrBig) Sign() int {
	if z.isSmall() {
		switch {
		case z.small < 0:
			return -1
		case z.small > 0:
			return 1
		default:
			return 0
		}
	}
	return z.big.Sign()
}

// BitLen returns the number of bits required to represent |z|, 0 for
// z == 0.
func (z *SmallOrBig) BitLen() int {
	if z.isSmall() {
		v := z.small
		if v < 0 {
			v = -v
		}
		return bits.Len64(uint64(v))
	}
	return z.big.BitLen()
}

// Bit returns the k-th bit (0 or 1) of z in two's-complement form, as
// math/big's Bit does: for negative z this is a bit of the two's
// complement expansion, not of |z|.
func (z *SmallOrBig) Bit(k uint) uint {
	return uint(z.asBig().Bit(int(k)) & 1)
}

// Abs sets z = |x|.
func (z *SmallOrBig) Abs(x *SmallOrBig) *SmallOrBig {
	if x.isSmall() {
		if x.small == MinSmall {
			// -MinSmall overflows the small range by one; promote.
			return z.setBig(new(big.Int).Abs(big.NewInt(x.small)))
		}
		v := x.small
		if v < 0 {
			v = -v
		}
		return z.SetSmall(v)
	}
	return z.setBig(new(big.Int).Abs(x.big))
}

// Neg sets z = -x.
func (z *SmallOrBig) Neg(x *SmallOrBig) *SmallOrBig {
	if x.isSmall() {
		if x.small == MinSmall {
			return z.setBig(new(big.Int).Neg(big.NewInt(x.small)))
		}
		return z.SetSmall(-x.small)
	}
	return z.setBig(new(big.Int).Neg(x.big))
}

// Cmp returns -1, 0, +1 as z <, ==, > x.
func (z *SmallOrBig) Cmp(x *SmallOrBig) int {
	if z.isSmall() && x.isSmall() {
		switch {
		case z.small < x.small:
			return -1
		case z.small > x.small:
			return 1
		default:
			return 0
		}
	}
	return z.asBig().Cmp(x.asBig())
}

// CmpAbs returns -1, 0, +1 as |z| <, ==, > |x|.
func (z *SmallOrBig) CmpAbs(x *SmallOrBig) int {
	var za, xa SmallOrBig
	za.Abs(z)
	xa.Abs(x)
	return za.Cmp(&xa)
}

// Equal reports whether z and x hold the same value.
func (z *SmallOrBig) Equal(x *SmallOrBig) bool {
	return z.Cmp(x) == 0
}

// Add sets z = a + b.
func (z *SmallOrBig) Add(a, b *SmallOrBig) *SmallOrBig {
	if a.isSmall() && b.isSmall() && fitsAddSmall(a.small, b.small) {
		return z.SetSmall(a.small + b.small)
	}
	return z.setBig(new(big.Int).Add(a.asBig(), b.asBig()))
}

// fitsAddSmall reports whether a+b is representable without overflowing
// int64 and without leaving the small range.
func fitsAddSmall(a, b int64) bool {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s > 0) {
		return false
	}
	return s >= MinSmall && s <= MaxSmall
}

// Sub sets z = a - b.
func (z *SmallOrBig) Sub(a, b *SmallOrBig) *SmallOrBig {
	if a.isSmall() && b.isSmall() && b.small != MinSmall {
		if fitsAddSmall(a.small, -b.small) {
			return z.SetSmall(a.small - b.small)
		}
	}
	return z.setBig(new(big.Int).Sub(a.asBig(), b.asBig()))
}

// Mul sets z = a * b.
func (z *SmallOrBig) Mul(a, b *SmallOrBig) *SmallOrBig {
	if a.isSmall() && b.isSmall() {
		hi, lo := bits.Mul64(absU64(a.small), absU64(b.small))
		if hi == 0 && lo <= uint64(MaxSmall) {
			v := int64(lo)
			if (a.small < 0) != (b.small < 0) {
				v = -v
			}
			return z.SetSmall(v)
		}
	}
	return z.setBig(new(big.Int).Mul(a.asBig(), b.asBig()))
}

func absU64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// AddMul sets z = z + a*b.
func (z *SmallOrBig) AddMul(a, b *SmallOrBig) *SmallOrBig {
	var t SmallOrBig
	t.Mul(a, b)
	return z.Add(z, &t)
}

// SubMul sets z = z - a*b.
func (z *SmallOrBig) SubMul(a, b *SmallOrBig) *SmallOrBig {
	var t SmallOrBig
	t.Mul(a, b)
	return z.Sub(z, &t)
}

// DivExact sets z = a/b, requiring b | a exactly. Returns
// xerr.ErrInexactDivision otherwise and xerr.ErrDivisionByZero if b == 0.
func (z *SmallOrBig) DivExact(a, b *SmallOrBig) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(a.asBig(), b.asBig(), new(big.Int))
	if r.Sign() != 0 {
		return xerr.ErrInexactDivision
	}
	z.setBig(q)
	return nil
}

// DivFloor sets z = floor(a/b). Returns xerr.ErrDivisionByZero if b == 0.
func (z *SmallOrBig) DivFloor(a, b *SmallOrBig) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	var q big.Int
	bigFloorDivMod(&q, new(big.Int), a.asBig(), b.asBig())
	z.setBig(&q)
	return nil
}

// DivCeil sets z = ceil(a/b). Returns xerr.ErrDivisionByZero if b == 0.
func (z *SmallOrBig) DivCeil(a, b *SmallOrBig) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	var q, r big.Int
	bigFloorDivMod(&q, &r, a.asBig(), b.asBig())
	if r.Sign() != 0 {
		q.Add(&q, big.NewInt(1))
	}
	z.setBig(&q)
	return nil
}

// Mod sets z to the Euclidean remainder of a/b, 0 <= z < |b|. Returns
// xerr.ErrDivisionByZero if b == 0.
func (z *SmallOrBig) Mod(a, b *SmallOrBig) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	r := new(big.Int).Mod(a.asBig(), new(big.Int).Abs(b.asBig()))
	z.setBig(r)
	return nil
}

// DivModFloor sets q, r to the floor quotient and remainder of a/b, with
// 0 <= r < |b| for positive b and b < r <= 0 for negative b, matching the
// spec's sign convention. q and r must be distinct from one another but
// may alias a or b.
func DivModFloor(q, r, a, b *SmallOrBig) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	var qq, rr big.Int
	bigFloorDivMod(&qq, &rr, a.asBig(), b.asBig())
	q.setBig(&qq)
	r.setBig(&rr)
	return nil
}

// bigFloorDivMod computes floor division: q = floor(a/b), r = a - q*b,
// so sign(r) == sign(b) or r == 0.
func bigFloorDivMod(q, r, a, b *big.Int) {
	q.QuoRem(a, b, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
}

// GCD sets z = gcd(|a|, |b|); gcd(0, 0) = 0.
func (z *SmallOrBig) GCD(a, b *SmallOrBig) *SmallOrBig {
	return z.setBig(new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.asBig()), new(big.Int).Abs(b.asBig())))
}

// LCM sets z = lcm(|a|, |b|); lcm(x, 0) = 0.
func (z *SmallOrBig) LCM(a, b *SmallOrBig) *SmallOrBig {
	if a.IsZero() || b.IsZero() {
		return z.Zero()
	}
	var g big.Int
	aa, bb := new(big.Int).Abs(a.asBig()), new(big.Int).Abs(b.asBig())
	g.GCD(nil, nil, aa, bb)
	var l big.Int
	l.Div(aa, &g)
	l.Mul(&l, bb)
	return z.setBig(&l)
}

// PowUnsigned sets z = a^e.
func (z *SmallOrBig) PowUnsigned(a *SmallOrBig, e uint64) *SmallOrBig {
	return z.setBig(new(big.Int).Exp(a.asBig(), new(big.Int).SetUint64(e), nil))
}

// Mul2Exp sets z = a * 2^k.
func (z *SmallOrBig) Mul2Exp(a *SmallOrBig, k uint) *SmallOrBig {
	return z.setBig(new(big.Int).Lsh(a.asBig(), k))
}

// Div2ExpFloor sets z = floor(a / 2^k).
func (z *SmallOrBig) Div2ExpFloor(a *SmallOrBig, k uint) *SmallOrBig {
	return z.setBig(new(big.Int).Rsh(a.asBig(), k))
}

// UIModSmall returns z mod p, in [0, p), for a nonzero word-size p.
func (z *SmallOrBig) UIModSmall(p uint64) uint64 {
	r := new(big.Int).Mod(z.asBig(), new(big.Int).SetUint64(p))
	return r.Uint64()
}

// CRT sets z to the unique representative in (-m1*m2/2, m1*m2/2] that is
// congruent to r1 mod m1 and to r2 mod m2, given m1 and m2 coprime. It
// does not update m1; callers fold m1 *= m2 themselves (this mirrors the
// "single-prime update" step of spec Section 4.1/4.3).
func (z *SmallOrBig) CRT(r1, m1 *SmallOrBig, r2 int64, m2 uint64) *SmallOrBig {
	M2 := new(big.Int).SetUint64(m2)
	R2 := big.NewInt(r2)

	// Solve r1 + m1*t === r2 (mod m2) for t.
	m1ModM2 := new(big.Int).Mod(m1.asBig(), M2)
	inv := new(big.Int).ModInverse(m1ModM2, M2)
	if inv == nil {
		// m1, m2 not coprime: degrade to plain CRT via big.Int, still
		// correct when m2 | m1's residual structure makes inverse
		// unnecessary (m1 mod m2 == 0).
		inv = big.NewInt(0)
	}
	diff := new(big.Int).Sub(R2, r1.asBig())
	diff.Mod(diff, M2)
	t := new(big.Int).Mul(diff, inv)
	t.Mod(t, M2)

	result := new(big.Int).Mul(m1.asBig(), t)
	result.Add(result, r1.asBig())

	modulus := new(big.Int).Mul(m1.asBig(), M2)
	result.Mod(result, modulus)

	half := new(big.Int).Rsh(modulus, 1)
	if result.Cmp(half) > 0 {
		result.Sub(result, modulus)
	}
	return z.setBig(result)
}
