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
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/flintgo/soib"
)

func fromInts(vs ...int64) *IntVec {
	v := New(len(vs))
	for i, x := range vs {
		v.At(i).SetSmall(x)
	}
	return v
}

func toBigInts(v *IntVec) []*big.Int {
	out := make([]*big.Int, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = v.At(i).BigInt()
	}
	return out
}

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	return a.Cmp(b) == 0
})

func TestContentAndLCM(t *testing.T) {
	v := fromInts(4, 6, -10)
	require.Equal(t, int64(2), v.Content().BigInt().Int64())

	require.True(t, New(0).Content().IsZero())
	require.True(t, New(0).LCM().IsOne())

	l := fromInts(4, 6)
	require.Equal(t, int64(12), l.LCM().BigInt().Int64())
}

func TestContentChainedScalarK(t *testing.T) {
	// content(k*v) == |k| * content(v)
	v := fromInts(4, 6, -10)
	k := soib.New(-3)
	scaled := New(0)
	scaled.ScalarMul(v, k)

	var expected soib.SmallOrBig
	expected.Abs(k)
	expected.Mul(&expected, v.Content())

	require.True(t, scaled.Content().Equal(&expected))
}

func TestAliasedAddSub(t *testing.T) {
	a := fromInts(1, 2, 3)
	b := fromInts(10, 20)

	fresh := New(0)
	fresh.Add(a, b)

	a.Add(a, b) // alias result with left operand
	if diff := cmp.Diff(toBigInts(fresh), toBigInts(a), bigIntComparer); diff != "" {
		t.Errorf("Add aliasing its left operand diverged from a fresh destination (-fresh +aliased):\n%s", diff)
	}
}

func TestNormalise(t *testing.T) {
	v := fromInts(1, 2, 0, 0)
	n := v.Normalise()
	require.Equal(t, 2, n)
	require.Equal(t, 2, v.Len())
}

func TestHeightIndex(t *testing.T) {
	v := fromInts(1, -100, 5)
	require.Equal(t, 1, v.HeightIndex())
	require.Equal(t, -1, New(0).HeightIndex())
}

func TestScalarSMod(t *testing.T) {
	v := fromInts(0, 1, 2, 3, 4)
	out := New(0)
	p := soib.New(5)
	require.NoError(t, out.ScalarSMod(v, p))
	// symmetric residues in [-2, 2]
	require.Equal(t, []int64{0, 1, 2, -2, -1}, toInts(out))
}

func TestScalarSModEvenModulusBoundary(t *testing.T) {
	// p=6: documented range is [-3, 2], so a residue of exactly 3 (p/2)
	// must remap to -3, not stay at +3.
	v := fromInts(0, 1, 2, 3, 4, 5)
	out := New(0)
	p := soib.New(6)
	require.NoError(t, out.ScalarSMod(v, p))
	require.Equal(t, []int64{0, 1, 2, -3, -2, -1}, toInts(out))
}

func toInts(v *IntVec) []int64 {
	out := make([]int64, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = v.At(i).BigInt().Int64()
	}
	return out
}
