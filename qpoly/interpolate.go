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

// Interpolate sets out to the unique polynomial of degree < len(xs)
// with out(xs[i]) = ys[i], via the same barycentric-Lagrange
// construction zpoly.Interpolate uses over Z: build the root
// polynomial R(x) = prod (x - xs[i]), take its derivative, whose value
// at xs[i] is the complementary product prod_{j!=i} (xs[i]-xs[j]) —
// the barycentric weight w_i — then accumulate
// sum_i ys[i]/w_i * R(x)/(x-xs[i]).
func Interpolate(out *QPoly, xs []soib.SmallOrBig, ys []*QPoly) error {
	n := len(xs)
	if n != len(ys) {
		return xerr.ErrInvalidArgument
	}
	if n == 0 {
		out.Zero()
		return nil
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if xs[i].Equal(&xs[j]) {
				return xerr.ErrInvalidArgument
			}
		}
	}

	root := zpoly.New()
	root.Set(zpoly.FromCoeffs([]soib.SmallOrBig{*soib.New(1)}))
	linear := make([]*zpoly.ZPoly, n)
	for i := range xs {
		var negXi soib.SmallOrBig
		negXi.Neg(&xs[i])
		linear[i] = zpoly.FromCoeffs([]soib.SmallOrBig{negXi, *soib.New(1)})
		root = zpoly.New().Mul(root, linear[i])
	}
	rootDer := zpoly.New().Derivative(root)

	acc := New()
	for i := range xs {
		weight := rootDer.Evaluate(&xs[i])
		if weight.IsZero() {
			return xerr.ErrInvalidArgument
		}
		quotient := zpoly.New()
		remainder := zpoly.New()
		if err := zpoly.DivRemBasecase(quotient, remainder, root, linear[i], false); err != nil {
			return err
		}

		termQuotient, err := FromParts(quotient.Clone(), soib.New(1))
		if err != nil {
			return err
		}
		yNum, yDen := constantTerm(ys[i])
		scaled, err := termQuotient.ScalarMulQ(termQuotient, new(soib.SmallOrBig).Set(yNum), yDen)
		if err != nil {
			return err
		}
		scaled, err = scaled.ScalarDivZ(scaled, weight)
		if err != nil {
			return err
		}
		acc = New().Add(acc, scaled)
	}
	out.Set(acc)
	return nil
}
