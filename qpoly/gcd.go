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

package qpoly

import (
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/zpoly"
)

// GCD sets out to the monic (over Q, every nonzero constant is a unit,
// so "gcd" is only defined up to that unit, and the convention here —
// matching fmpq_poly_gcd — is to return the monic representative) gcd
// of a and b. gcd(0,0) = 0, gcd(a,0) = monic(a), gcd(0,b) = monic(b).
func GCD(out *QPoly, a, b *QPoly) *QPoly {
	if a.IsZero() && b.IsZero() {
		return out.Zero()
	}
	if a.IsZero() {
		return out.Set(monicOf(b))
	}
	if b.IsZero() {
		return out.Set(monicOf(a))
	}
	g := zpoly.GCD(zpoly.New(), a.coeffs, b.coeffs)
	gq, err := FromParts(g, soib.New(1))
	if err != nil {
		panic(err)
	}
	return out.Set(monicOf(gq))
}

// monicOf returns q scaled so its leading coefficient is 1, via the
// value identity q / lead(q) — independent of how q happens to be
// represented, since the division is carried out on the rational value
// rather than on q's numerator in isolation.
func monicOf(q *QPoly) *QPoly {
	if q.IsZero() {
		return q.Clone()
	}
	lead := q.coeffs.LeadingCoeff()
	leadPoly, err := FromParts(zpoly.FromCoeffs([]soib.SmallOrBig{*new(soib.SmallOrBig).Set(&q.den)}), new(soib.SmallOrBig).Set(lead))
	if err != nil {
		panic(err) // lead is nonzero since q is nonzero and numerators are kept normalised
	}
	return New().Mul(q, leadPoly)
}
