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

package subproduct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/flintgo/modular"
	"github.com/nume-crypto/flintgo/soib"
)

func smallSlice(vs ...int64) []soib.SmallOrBig {
	out := make([]soib.SmallOrBig, len(vs))
	for i, v := range vs {
		out[i].SetSmall(v)
	}
	return out
}

func toInt64s(vs []soib.SmallOrBig) []int64 {
	out := make([]int64, len(vs))
	for i := range vs {
		out[i] = vs[i].BigInt().Int64()
	}
	return out
}

func TestEvaluateMatchesHorner(t *testing.T) {
	// f(x) = 1 + 2x + 3x^2 + 4x^3
	f := smallSlice(1, 2, 3, 4)
	points := smallSlice(-2, -1, 0, 1, 2, 5)

	tree := Build(points)
	got := toInt64s(tree.Evaluate(f))

	want := make([]int64, len(points))
	for i := range points {
		want[i] = toInt64s([]soib.SmallOrBig{hornerEval(f, &points[i])})[0]
	}
	require.Equal(t, want, got)

	// sanity check a couple of values by hand
	require.Equal(t, int64(1-4+12-32), got[0]) // x=-2
	require.Equal(t, int64(1), got[2])        // x=0
	require.Equal(t, int64(1+2+3+4), got[3])  // x=1
}

func TestEvaluateDegenerateCases(t *testing.T) {
	require.Nil(t, Build(nil).Evaluate(smallSlice(1, 2, 3)))

	single := Build(smallSlice(3))
	got := single.Evaluate(smallSlice(1, 1, 1)) // 1+x+x^2 at x=3 -> 13
	require.Equal(t, []int64{13}, toInt64s(got))

	points := smallSlice(-3, 0, 7, 11)
	constPoly := smallSlice(9)
	got = Build(points).Evaluate(constPoly)
	for _, v := range toInt64s(got) {
		require.Equal(t, int64(9), v)
	}
}

func TestEvaluateOddCount(t *testing.T) {
	f := smallSlice(1, 0, -1, 2) // 1 - x^2 + 2x^3
	points := smallSlice(-2, -1, 0, 1, 2)
	got := toInt64s(Build(points).Evaluate(f))
	for i, p := range toInt64s(points) {
		require.Equal(t, toInt64s([]soib.SmallOrBig{hornerEval(f, &points[i])})[0], got[i], "x=%d", p)
	}
}

func TestModTreeEvaluate(t *testing.T) {
	ctx, err := modular.NewNmodCtx(13)
	require.NoError(t, err)

	f := []uint64{1, 2, 3, 4} // 1 + 2x + 3x^2 + 4x^3 mod 13
	points := []uint64{0, 1, 2, 3, 4, 5, 6}

	tree := BuildMod(points, ctx)
	got := tree.Evaluate(f)

	for i, a := range points {
		want := hornerEvalMod(f, a, ctx)
		require.Equal(t, want, got[i])
	}
}
