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

package soib

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAlgebraicLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	smallGen := gen.Int64Range(-1<<40, 1<<40)

	properties.Property("add is commutative", prop.ForAll(
		func(a, b int64) bool {
			var x, y SmallOrBig
			x.Add(New(a), New(b))
			y.Add(New(b), New(a))
			return x.Equal(&y)
		}, smallGen, smallGen,
	))

	properties.Property("add is associative", prop.ForAll(
		func(a, b, c int64) bool {
			var lhs, rhs, tmp SmallOrBig
			tmp.Add(New(a), New(b))
			lhs.Add(&tmp, New(c))
			tmp.Add(New(b), New(c))
			rhs.Add(New(a), &tmp)
			return lhs.Equal(&rhs)
		}, smallGen, smallGen, smallGen,
	))

	properties.Property("zero is the additive identity", prop.ForAll(
		func(a int64) bool {
			var z SmallOrBig
			z.Add(New(a), New(0))
			return z.Equal(New(a))
		}, smallGen,
	))

	properties.Property("mul is commutative", prop.ForAll(
		func(a, b int64) bool {
			var x, y SmallOrBig
			x.Mul(New(a), New(b))
			y.Mul(New(b), New(a))
			return x.Equal(&y)
		}, smallGen, smallGen,
	))

	properties.Property("neg is involutive", prop.ForAll(
		func(a int64) bool {
			var once, twice SmallOrBig
			once.Neg(New(a))
			twice.Neg(&once)
			return twice.Equal(New(a))
		}, smallGen,
	))

	properties.Property("sub(x,y) == add(x, neg(y))", prop.ForAll(
		func(a, b int64) bool {
			var lhs, negB, rhs SmallOrBig
			lhs.Sub(New(a), New(b))
			negB.Neg(New(b))
			rhs.Add(New(a), &negB)
			return lhs.Equal(&rhs)
		}, smallGen, smallGen,
	))

	properties.TestingRun(t)
}
