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

// Resultant returns Res(a,b) as a reduced num/den pair. Resultants
// are homogeneous of degree deg(b) in the coefficients of a (and
// symmetrically of degree deg(a) in b), so scaling a by aDen and b by
// bDen before calling the integer resultant scales the integer result
// by aDen^deg(bNum) * bDen^deg(aNum) — dividing that factor back out
// gives the exact rational resultant.
func Resultant(a, b *QPoly) (num, den *soib.SmallOrBig) {
	if a.IsZero() || b.IsZero() {
		return new(soib.SmallOrBig), soib.New(1)
	}
	intRes := zpoly.Resultant(a.coeffs, b.coeffs)

	degB := b.coeffs.Degree()
	degA := a.coeffs.Degree()
	den = new(soib.SmallOrBig).PowUnsigned(new(soib.SmallOrBig).Set(&a.den), uint64(degB))
	bDenPow := new(soib.SmallOrBig).PowUnsigned(new(soib.SmallOrBig).Set(&b.den), uint64(degA))
	den.Mul(den, bDenPow)

	g := new(soib.SmallOrBig).GCD(intRes, den)
	num = mustDivExact(intRes, g)
	den = mustDivExact(den, g)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return num, den
}

// ResultantModularDiv returns Res(a,b) / divisor as a reduced
// num/den pair, given that divisor is known in advance to divide the
// resultant exactly (the caller-supplied nbits budget, as in
// fmpq_poly_resultant_modular_div, exists to let a modular/CRT
// reconstruction stop once it has recovered enough bits to determine
// the quotient uniquely; the implementation here instead computes the
// exact resultant via Resultant and folds divisor into the
// denominator algebraically, which is simpler and always exact but
// does not get the modular algorithm's performance benefit — nbits is
// accepted for signature compatibility and otherwise unused).
func ResultantModularDiv(a, b *QPoly, divisor *soib.SmallOrBig, nbits uint64) (num, den *soib.SmallOrBig) {
	_ = nbits
	rNum, rDen := Resultant(a, b)
	var scaledDen soib.SmallOrBig
	scaledDen.Mul(rDen, divisor)
	g := new(soib.SmallOrBig).GCD(rNum, &scaledDen)
	num = mustDivExact(rNum, g)
	den = mustDivExact(&scaledDen, g)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return num, den
}
