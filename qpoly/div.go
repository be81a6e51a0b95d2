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
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

// DivRem sets q, r such that a = q*b + r with deg(r) < deg(b), for a
// nonzero divisor b. It is built on ZPoly's pseudo-division, which
// only holds up to a power of lead(b): pseudo-division gives
// lead(bNum)^d * aNum = PQ*bNum + PR, so dividing through by
// lead(bNum)^d * aDen (always exact once the shared numerator
// denominators are folded in) recovers the exact rational quotient and
// remainder.
func DivRem(q, r *QPoly, a, b *QPoly) error {
	if b.IsZero() {
		return xerr.ErrDivisionByZero
	}
	if a.IsZero() {
		q.Zero()
		r.Zero()
		return nil
	}

	pq := zpoly.New()
	pr := zpoly.New()
	d, err := zpoly.PseudoDivRem(pq, pr, a.coeffs, b.coeffs)
	if err != nil {
		return err
	}

	lead := new(soib.SmallOrBig).Set(b.coeffs.LeadingCoeff())
	scale := lead.PowUnsigned(lead, uint64(d))
	var scaleTimesADen soib.SmallOrBig
	scaleTimesADen.Mul(scale, &a.den)

	qNumer := zpoly.New().ScalarMul(pq, &b.den)
	var qDen soib.SmallOrBig
	qDen.Set(&scaleTimesADen)

	rNumer := pr.Clone()
	var rDen soib.SmallOrBig
	rDen.Set(&scaleTimesADen)

	qOut, err := FromParts(qNumer, &qDen)
	if err != nil {
		return err
	}
	rOut, err := FromParts(rNumer, &rDen)
	if err != nil {
		return err
	}
	q.Set(qOut)
	r.Set(rOut)
	return nil
}

// Div sets q = a/b, discarding the remainder. Returns an error only
// when b is zero.
func Div(q *QPoly, a, b *QPoly) error {
	r := New()
	return DivRem(q, r, a, b)
}

// Divides reports whether b divides a exactly (the remainder of DivRem
// is zero) and, if so, leaves the quotient in q. A zero b reports false
// with a nil error.
func Divides(q *QPoly, a, b *QPoly) (bool, error) {
	if b.IsZero() {
		return false, nil
	}
	r := New()
	if err := DivRem(q, r, a, b); err != nil {
		return false, err
	}
	return r.IsZero(), nil
}
