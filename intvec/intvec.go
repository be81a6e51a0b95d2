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

// Package intvec implements IntVec, a contiguous buffer of soib.SmallOrBig
// with pointwise arithmetic, scalar operations, content/gcd/lcm and
// normalisation. It is the layer ZPoly's coefficient storage sits on.
package intvec

import (
	"golang.org/x/exp/slices"

	"github.com/nume-crypto/flintgo/soib"
)

// IntVec is an ordered, owned sequence of soib.SmallOrBig. Its logical
// Len may be less than cap(data); normalisation drops trailing zeros
// without reallocating.
type IntVec struct {
	data []soib.SmallOrBig
}

// New returns an IntVec of length n, all entries zero.
func New(n int) *IntVec {
	return &IntVec{data: make([]soib.SmallOrBig, n)}
}

// Len returns the current logical length.
func (v *IntVec) Len() int { return len(v.data) }

// At returns a pointer to the i-th element, usable both for reads and
// in-place mutation.
func (v *IntVec) At(i int) *soib.SmallOrBig { return &v.data[i] }

// Fit grows the backing buffer to at least n elements (power-of-two
// growth policy), preserving existing entries and zero-filling new ones.
// It never shrinks.
func (v *IntVec) Fit(n int) {
	if n <= len(v.data) {
		return
	}
	cap2 := nextPow2(n)
	grown := make([]soib.SmallOrBig, cap2)
	copy(grown, v.data)
	v.data = grown[:n]
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// SetLen truncates or (zero-)extends the logical length to n without
// reallocating if capacity allows; callers needing more capacity call
// Fit first.
func (v *IntVec) SetLen(n int) {
	if n <= cap(v.data) {
		old := len(v.data)
		v.data = v.data[:n]
		for i := old; i < n; i++ {
			v.data[i].Zero()
		}
		return
	}
	v.Fit(n)
}

// Clone returns a deep, independently owned copy.
func (v *IntVec) Clone() *IntVec {
	out := &IntVec{data: make([]soib.SmallOrBig, len(v.data))}
	for i := range v.data {
		out.data[i].Set(&v.data[i])
	}
	return out
}

// Set copies src's contents into v (v is resized as needed). Aliasing
// v == src is a no-op.
func (v *IntVec) Set(src *IntVec) {
	if v == src {
		return
	}
	v.SetLen(src.Len())
	for i := range src.data {
		v.data[i].Set(&src.data[i])
	}
}

// SetRange copies n entries from src starting at srcOff into v starting
// at dstOff. v must already be long enough.
func (v *IntVec) SetRange(dstOff int, src *IntVec, srcOff, n int) {
	for i := 0; i < n; i++ {
		v.data[dstOff+i].Set(&src.data[srcOff+i])
	}
}

// ZeroRange zeroes n entries of v starting at off.
func (v *IntVec) ZeroRange(off, n int) {
	for i := 0; i < n; i++ {
		v.data[off+i].Zero()
	}
}

// Swap exchanges the contents of v and w in O(1).
func (v *IntVec) Swap(w *IntVec) {
	v.data, w.data = w.data, v.data
}

// IsZero reports whether every entry of v (over its logical length) is 0.
func (v *IntVec) IsZero() bool {
	for i := range v.data {
		if !v.data[i].IsZero() {
			return false
		}
	}
	return true
}

// Equal reports value equality over the common, zero-padded length.
func (v *IntVec) Equal(w *IntVec) bool {
	n := v.Len()
	if w.Len() > n {
		n = w.Len()
	}
	for i := 0; i < n; i++ {
		a, b := zeroOrAt(v, i), zeroOrAt(w, i)
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

func zeroOrAt(v *IntVec, i int) *soib.SmallOrBig {
	if i < v.Len() {
		return v.At(i)
	}
	return &soib.SmallOrBig{}
}

// Neg sets v[i] = -src[i] for i < src.Len(); v is resized to src's length.
// Aliasing v == src is supported.
func (v *IntVec) Neg(src *IntVec) {
	v.SetLen(src.Len())
	for i := range src.data {
		v.data[i].Neg(&src.data[i])
	}
}

// Add sets v = a + b, treating the shorter operand as zero-padded. v may
// alias a or b.
func (v *IntVec) Add(a, b *IntVec) {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	out := make([]soib.SmallOrBig, n)
	for i := 0; i < n; i++ {
		out[i].Add(zeroOrAt(a, i), zeroOrAt(b, i))
	}
	v.data = out
}

// Sub sets v = a - b, treating the shorter operand as zero-padded. v may
// alias a or b.
func (v *IntVec) Sub(a, b *IntVec) {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	out := make([]soib.SmallOrBig, n)
	for i := 0; i < n; i++ {
		out[i].Sub(zeroOrAt(a, i), zeroOrAt(b, i))
	}
	v.data = out
}

// MaxBits returns the signed bit-length: the maximum bit length among
// entries, negated if any entry is negative. 0 for an all-zero or empty
// vector.
func (v *IntVec) MaxBits() int {
	maxBits := 0
	negative := false
	for i := range v.data {
		b := v.data[i].BitLen()
		if b > maxBits {
			maxBits = b
		}
		if v.data[i].Sign() < 0 {
			negative = true
		}
	}
	if negative {
		return -maxBits
	}
	return maxBits
}

// MaxLimbs returns the number of 64-bit limbs needed to store the
// largest-magnitude entry.
func (v *IntVec) MaxLimbs() int {
	maxBits := v.MaxBits()
	if maxBits < 0 {
		maxBits = -maxBits
	}
	if maxBits == 0 {
		return 0
	}
	return (maxBits + 63) / 64
}

// HeightIndex returns the index of the entry of largest absolute value
// (the first such index on ties), or -1 for an empty vector.
func (v *IntVec) HeightIndex() int {
	if len(v.data) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(v.data); i++ {
		if v.data[i].CmpAbs(&v.data[best]) > 0 {
			best = i
		}
	}
	return best
}

// Content returns gcd(|v[0]|, ..., |v[n-1]|); the empty vector's content
// is 0.
func (v *IntVec) Content() *soib.SmallOrBig {
	return v.ContentChained(new(soib.SmallOrBig).Zero())
}

// ContentChained folds gcd(seed, |v[0]|, ..., |v[n-1]|), short-circuiting
// as soon as the running gcd reaches 1.
func (v *IntVec) ContentChained(seed *soib.SmallOrBig) *soib.SmallOrBig {
	g := new(soib.SmallOrBig).Set(seed)
	for i := range v.data {
		if g.IsOne() {
			break
		}
		g.GCD(g, &v.data[i])
	}
	return g
}

// LCM returns lcm(|v[0]|, ..., |v[n-1]|); lcm(empty) = 1.
func (v *IntVec) LCM() *soib.SmallOrBig {
	l := new(soib.SmallOrBig).One()
	for i := range v.data {
		l.LCM(l, &v.data[i])
	}
	return l
}

// Sum returns the sum of all entries.
func (v *IntVec) Sum() *soib.SmallOrBig {
	s := new(soib.SmallOrBig).Zero()
	for i := range v.data {
		s.Add(s, &v.data[i])
	}
	return s
}

// Prod returns the product of all entries; the empty product is 1.
func (v *IntVec) Prod() *soib.SmallOrBig {
	p := new(soib.SmallOrBig).One()
	for i := range v.data {
		p.Mul(p, &v.data[i])
	}
	return p
}

// Dot returns sum(v[i]*w[i]) over the common length.
func (v *IntVec) Dot(w *IntVec) *soib.SmallOrBig {
	n := v.Len()
	if w.Len() < n {
		n = w.Len()
	}
	s := new(soib.SmallOrBig).Zero()
	for i := 0; i < n; i++ {
		s.AddMul(&v.data[i], &w.data[i])
	}
	return s
}

// DotGeneral returns sum(signs[i]*v[i]*w[i]) over the common length,
// where signs[i] is +1 or -1.
func (v *IntVec) DotGeneral(w *IntVec, signs []int) *soib.SmallOrBig {
	n := v.Len()
	if w.Len() < n {
		n = w.Len()
	}
	s := new(soib.SmallOrBig).Zero()
	var term soib.SmallOrBig
	for i := 0; i < n; i++ {
		term.Mul(&v.data[i], &w.data[i])
		if signs[i] < 0 {
			s.Sub(s, &term)
		} else {
			s.Add(s, &term)
		}
	}
	return s
}

// ScalarMul sets v[i] = src[i]*c.
func (v *IntVec) ScalarMul(src *IntVec, c *soib.SmallOrBig) {
	v.SetLen(src.Len())
	for i := range src.data {
		v.data[i].Mul(&src.data[i], c)
	}
}

// ScalarAddMul sets v[i] += src[i]*c.
func (v *IntVec) ScalarAddMul(src *IntVec, c *soib.SmallOrBig) {
	n := src.Len()
	if v.Len() < n {
		v.SetLen(n)
	}
	for i := 0; i < n; i++ {
		v.data[i].AddMul(&src.data[i], c)
	}
}

// ScalarSubMul sets v[i] -= src[i]*c.
func (v *IntVec) ScalarSubMul(src *IntVec, c *soib.SmallOrBig) {
	n := src.Len()
	if v.Len() < n {
		v.SetLen(n)
	}
	for i := 0; i < n; i++ {
		v.data[i].SubMul(&src.data[i], c)
	}
}

// ScalarDivExact sets v[i] = src[i]/c exactly; returns an error (from the
// first failing entry) if c does not divide every entry.
func (v *IntVec) ScalarDivExact(src *IntVec, c *soib.SmallOrBig) error {
	v.SetLen(src.Len())
	for i := range src.data {
		if err := v.data[i].DivExact(&src.data[i], c); err != nil {
			return err
		}
	}
	return nil
}

// ScalarMul2Exp sets v[i] = src[i] * 2^k.
func (v *IntVec) ScalarMul2Exp(src *IntVec, k uint) {
	v.SetLen(src.Len())
	for i := range src.data {
		v.data[i].Mul2Exp(&src.data[i], k)
	}
}

// ScalarDiv2ExpFloor sets v[i] = floor(src[i] / 2^k).
func (v *IntVec) ScalarDiv2ExpFloor(src *IntVec, k uint) {
	v.SetLen(src.Len())
	for i := range src.data {
		v.data[i].Div2ExpFloor(&src.data[i], k)
	}
}

// ScalarMod sets v[i] = src[i] mod m, 0 <= v[i] < |m|.
func (v *IntVec) ScalarMod(src *IntVec, m *soib.SmallOrBig) error {
	v.SetLen(src.Len())
	for i := range src.data {
		if err := v.data[i].Mod(&src.data[i], m); err != nil {
			return err
		}
	}
	return nil
}

// ScalarSMod sets v[i] to the symmetric residue of src[i] mod p, in
// [-floor(p/2), floor((p-1)/2)]. For even p the top of that interval,
// p/2, is excluded (floor((p-1)/2) = p/2 - 1), so a residue exactly at
// p/2 must remap to -p/2 rather than staying positive.
func (v *IntVec) ScalarSMod(src *IntVec, p *soib.SmallOrBig) error {
	v.SetLen(src.Len())
	half := new(soib.SmallOrBig)
	half.Div2ExpFloor(p, 1)
	pEven := p.Bit(0) == 0
	for i := range src.data {
		var r soib.SmallOrBig
		if err := r.Mod(&src.data[i], p); err != nil {
			return err
		}
		cmp := r.Cmp(half)
		if cmp > 0 || (pEven && cmp == 0) {
			r.Sub(&r, p)
		}
		v.data[i].Set(&r)
	}
	return nil
}

// normalise drops trailing zero entries, decrementing the logical length
// without reallocating. Used by ZPoly/QPoly after any mutation that may
// have produced or removed a leading zero coefficient.
func normalise(length int, at func(int) *soib.SmallOrBig) int {
	for length > 0 && at(length-1).IsZero() {
		length--
	}
	return length
}

// Normalise applies the trailing-zero trim directly to v and returns the
// new length (v itself is truncated to it).
func (v *IntVec) Normalise() int {
	n := normalise(v.Len(), v.At)
	v.data = v.data[:n]
	return n
}

// Raw exposes the backing slice for package-internal callers (zpoly,
// qpoly) that need direct slice semantics (e.g. slices.Clone for a
// disjoint scratch buffer).
func (v *IntVec) Raw() []soib.SmallOrBig { return v.data }

// FromRaw wraps an existing slice without copying; the returned IntVec
// owns it.
func FromRaw(data []soib.SmallOrBig) *IntVec { return &IntVec{data: data} }

// CloneRaw returns a disjoint copy of the backing slice, via
// golang.org/x/exp/slices, used where a routine needs scratch storage
// that must not alias v.
func (v *IntVec) CloneRaw() []soib.SmallOrBig {
	return slices.Clone(v.data)
}
