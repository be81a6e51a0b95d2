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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/nume-crypto/flintgo/soib"
)

func polyGen(n int) gopter.Gen {
	return gen.SliceOfN(n, gen.Int64Range(-500, 500))
}

func TestArithmeticLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	a5, b5, c5 := polyGen(5), polyGen(5), polyGen(5)

	properties.Property("add is commutative", prop.ForAll(
		func(as, bs []int64) bool {
			a, b := fromInts(as...), fromInts(bs...)
			x := New().Add(a, b)
			y := New().Add(b, a)
			return x.Equal(y)
		}, a5, b5,
	))

	properties.Property("add is associative", prop.ForAll(
		func(as, bs, cs []int64) bool {
			a, b, c := fromInts(as...), fromInts(bs...), fromInts(cs...)
			lhs := New().Add(New().Add(a, b), c)
			rhs := New().Add(a, New().Add(b, c))
			return lhs.Equal(rhs)
		}, a5, b5, c5,
	))

	properties.Property("mul is commutative", prop.ForAll(
		func(as, bs []int64) bool {
			a, b := fromInts(as...), fromInts(bs...)
			x := New().Mul(a, b)
			y := New().Mul(b, a)
			return x.Equal(y)
		}, a5, b5,
	))

	properties.Property("mul distributes over add", prop.ForAll(
		func(as, bs, cs []int64) bool {
			a, b, c := fromInts(as...), fromInts(bs...), fromInts(cs...)
			lhs := New().Mul(a, New().Add(b, c))
			rhs := New().Add(New().Mul(a, b), New().Mul(a, c))
			return lhs.Equal(rhs)
		}, a5, b5, c5,
	))

	properties.Property("evaluate is a ring homomorphism at a point", prop.ForAll(
		func(as, bs []int64, x int64) bool {
			a, b := fromInts(as...), fromInts(bs...)
			xv := soib.New(x)

			sumEval := New().Add(a, b).Evaluate(xv)
			var wantSum soib.SmallOrBig
			wantSum.Add(a.Evaluate(xv), b.Evaluate(xv))
			if !sumEval.Equal(&wantSum) {
				return false
			}

			mulEval := New().Mul(a, b).Evaluate(xv)
			var wantMul soib.SmallOrBig
			wantMul.Mul(a.Evaluate(xv), b.Evaluate(xv))
			return mulEval.Equal(&wantMul)
		}, a5, b5, gen.Int64Range(-20, 20),
	))

	properties.Property("derivative of a product follows the product rule at a point", prop.ForAll(
		func(as, bs []int64, x int64) bool {
			a, b := fromInts(as...), fromInts(bs...)
			xv := soib.New(x)

			prod := New().Mul(a, b)
			der := New().Derivative(prod)

			da := New().Derivative(a)
			db := New().Derivative(b)
			want := New().Add(New().Mul(da, b), New().Mul(a, db))

			return der.Evaluate(xv).Equal(want.Evaluate(xv))
		}, a5, b5, gen.Int64Range(-10, 10),
	))

	properties.TestingRun(t)
}

func TestMulCrossoverAgreesWithClassicalProp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	a9, b9 := polyGen(20), polyGen(20)

	properties.Property("karatsuba agrees with classical on random inputs", prop.ForAll(
		func(as, bs []int64) bool {
			a, b := fromInts(as...), fromInts(bs...)
			want := classicalMul(a.Coeffs(), b.Coeffs())
			got := karatsubaMul(a.Coeffs(), b.Coeffs())
			if len(want) != len(got) {
				return false
			}
			for i := range want {
				if !want[i].Equal(&got[i]) {
					return false
				}
			}
			return true
		}, a9, b9,
	))

	properties.Property("kronecker substitution agrees with classical on random inputs", prop.ForAll(
		func(as, bs []int64) bool {
			a, b := fromInts(as...), fromInts(bs...)
			want := classicalMul(a.Coeffs(), b.Coeffs())
			got := kroneckerMul(a.Coeffs(), b.Coeffs())
			if len(want) != len(got) {
				return false
			}
			for i := range want {
				if !want[i].Equal(&got[i]) {
					return false
				}
			}
			return true
		}, a9, b9,
	))

	properties.TestingRun(t)
}
