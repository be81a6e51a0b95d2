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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/nume-crypto/flintgo/soib"
)

func smallRatioGen() gopter.Gen {
	return gen.Int64Range(1, 9)
}

func numsGen(n int) gopter.Gen {
	return gen.SliceOfN(n, gen.Int64Range(-50, 50))
}

func TestQPolyArithmeticLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	a4, b4, c4 := numsGen(4), numsGen(4), numsGen(4)
	dA, dB, dC := smallRatioGen(), smallRatioGen(), smallRatioGen()

	properties.Property("add is commutative", prop.ForAll(
		func(as, bs []int64, da, db int64) bool {
			a, b := fromRatios(da, as...), fromRatios(db, bs...)
			return New().Add(a, b).Equal(New().Add(b, a))
		}, a4, b4, dA, dB,
	))

	properties.Property("add is associative", prop.ForAll(
		func(as, bs, cs []int64, da, db, dc int64) bool {
			a, b, c := fromRatios(da, as...), fromRatios(db, bs...), fromRatios(dc, cs...)
			lhs := New().Add(New().Add(a, b), c)
			rhs := New().Add(a, New().Add(b, c))
			return lhs.Equal(rhs)
		}, a4, b4, c4, dA, dB, dC,
	))

	properties.Property("mul distributes over add", prop.ForAll(
		func(as, bs, cs []int64, da, db, dc int64) bool {
			a, b, c := fromRatios(da, as...), fromRatios(db, bs...), fromRatios(dc, cs...)
			lhs := New().Mul(a, New().Add(b, c))
			rhs := New().Add(New().Mul(a, b), New().Mul(a, c))
			return lhs.Equal(rhs)
		}, a4, b4, c4, dA, dB, dC,
	))

	properties.Property("canonical denominator always stays positive", prop.ForAll(
		func(as []int64, da int64) bool {
			a := fromRatios(da, as...)
			return a.Denominator().Sign() > 0
		}, a4, gen.Int64Range(-9, 9).SuchThat(func(v int64) bool { return v != 0 }),
	))

	properties.TestingRun(t)
}

func TestQPolyDivRemIdentityProp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	a6, dA := numsGen(6), smallRatioGen()
	b3, dB := numsGen(3), smallRatioGen()

	properties.Property("DivRem identity a = q*b + r holds for nonzero divisors", prop.ForAll(
		func(as []int64, da int64, bs []int64, db int64) bool {
			a := fromRatios(da, as...)
			b := fromRatios(db, bs...)
			if b.IsZero() {
				b = fromRatios(db, 1)
			}
			q, r := New(), New()
			if err := DivRem(q, r, a, b); err != nil {
				return false
			}
			check := New().Add(New().Mul(q, b), r)
			return check.Equal(a)
		}, a6, dA, b3, dB,
	))

	properties.TestingRun(t)
}

func TestQPolyResultantScalarRoundTripProp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	a3, b3 := numsGen(3), numsGen(3)

	properties.Property("resultant is unchanged by re-canonicalising an operand through an equal scalar mul/div round trip", prop.ForAll(
		func(as, bs []int64, scale int64) bool {
			if scale == 0 {
				scale = 1
			}
			a := fromRatios(1, as...)
			b := fromRatios(1, bs...)
			if a.IsZero() || b.IsZero() {
				return true
			}
			scaledUp := New().ScalarMulZ(a, soib.New(scale))
			scaledBack, err := New().ScalarDivZ(scaledUp, soib.New(scale))
			if err != nil {
				return false
			}

			n1, d1 := Resultant(a, b)
			n2, d2 := Resultant(scaledBack, b)
			return n1.Equal(n2) && d1.Equal(d2)
		}, a3, b3, gen.Int64Range(-5, 5),
	))

	properties.TestingRun(t)
}
