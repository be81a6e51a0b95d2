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

package intvec

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/nume-crypto/flintgo/soib"
)

func TestContentScalarLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	entries := gen.SliceOfN(5, gen.Int64Range(-1000, 1000))
	scalar := gen.Int64Range(-50, 50)

	properties.Property("content(k*v) == |k|*content(v)", prop.ForAll(
		func(vs []int64, k int64) bool {
			v := fromInts(vs...)
			scaled := New(0)
			scaled.ScalarMul(v, soib.New(k))

			var want soib.SmallOrBig
			want.Abs(soib.New(k))
			want.Mul(&want, v.Content())

			return scaled.Content().Equal(&want)
		}, entries, scalar,
	))

	properties.TestingRun(t)
}
