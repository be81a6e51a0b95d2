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

// IsSquarefree reports whether f has no repeated root, i.e.
// gcd(f, f') is a nonzero constant.
func IsSquarefree(f *ZPoly) bool {
	if f.Degree() <= 0 {
		return !f.IsZero()
	}
	der := New().Derivative(f)
	if der.IsZero() {
		return false
	}
	g := New()
	GCD(g, f, der)
	return g.Degree() == 0
}

// Remove divides out the maximal power of factor from f (factor must
// be non-constant), returning the resulting polynomial and the
// multiplicity removed.
func Remove(f, factor *ZPoly) (*ZPoly, int, error) {
	if factor.Degree() <= 0 {
		return nil, 0, xerr.ErrInvalidArgument
	}
	cur := f.Clone()
	count := 0
	for {
		q := New()
		ok, err := Divides(q, cur, factor)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}
		cur = q
		count++
	}
	return cur, count, nil
}

// PowersSumsToPoly converts the sequence of power sums p_1, ..., p_n of
// a polynomial's roots (p_k = sum of the k-th powers of the roots) into
// the monic degree-n polynomial having those roots, via the inverse of
// Newton's identities: k*e_k = sum_{i=1}^{k} (-1)^(i-1) e_{k-i} p_i,
// e_0 = 1, f(x) = x^n - e_1 x^{n-1} + e_2 x^{n-2} - ... + (-1)^n e_n.
// Fails with ErrInexactDivision if some e_k is not an integer (i.e. the
// input power sums do not come from an integer monic polynomial).
func PowersSumsToPoly(powerSums []soib.SmallOrBig) (*ZPoly, error) {
	n := len(powerSums)
	e := make([]soib.SmallOrBig, n+1)
	e[0].SetSmall(1)

	for k := 1; k <= n; k++ {
		var sum soib.SmallOrBig
		sign := 1
		for i := 1; i <= k; i++ {
			var term soib.SmallOrBig
			term.Mul(&e[k-i], &powerSums[i-1])
			if sign > 0 {
				sum.Add(&sum, &term)
			} else {
				sum.Sub(&sum, &term)
			}
			sign = -sign
		}
		if err := e[k].DivExact(&sum, soib.New(int64(k))); err != nil {
			return nil, xerr.ErrInexactDivision
		}
	}

	coeffs := make([]soib.SmallOrBig, n+1)
	coeffs[n].SetSmall(1)
	for k := 1; k <= n; k++ {
		v := new(soib.SmallOrBig).Set(&e[k])
		if k%2 == 1 {
			v.Neg(v)
		}
		coeffs[n-k] = *v
	}
	return FromCoeffs(coeffs), nil
}
