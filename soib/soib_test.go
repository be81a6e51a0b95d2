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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalFormRule(t *testing.T) {
	small := New(MaxSmall)
	require.True(t, small.isSmall())

	var big1 SmallOrBig
	big1.SetBigInt(new(big.Int).Add(big.NewInt(MaxSmall), big.NewInt(1)))
	require.False(t, big1.isSmall())

	// demotes back once subtracted down into small range
	var z SmallOrBig
	z.Sub(&big1, New(1))
	require.True(t, z.isSmall())
	require.Equal(t, MaxSmall, z.small)
}

func TestAddOverflowPromotes(t *testing.T) {
	a := New(MaxSmall)
	b := New(1)
	var z SmallOrBig
	z.Add(a, b)
	require.False(t, z.isSmall())
	require.Equal(t, big.NewInt(MaxSmall+1), z.BigInt())
}

func TestDivExact(t *testing.T) {
	var q SmallOrBig
	require.NoError(t, q.DivExact(New(12), New(4)))
	require.Equal(t, int64(3), q.small)

	var q2 SmallOrBig
	require.ErrorContains(t, q2.DivExact(New(13), New(4)), "inexact")

	var q3 SmallOrBig
	require.ErrorContains(t, q3.DivExact(New(1), New(0)), "division by zero")
}

func TestDivModFloorSignConvention(t *testing.T) {
	var q, r SmallOrBig
	require.NoError(t, DivModFloor(&q, &r, New(7), New(3)))
	require.Equal(t, int64(2), q.small)
	require.Equal(t, int64(1), r.small)

	require.NoError(t, DivModFloor(&q, &r, New(-7), New(3)))
	require.Equal(t, int64(-3), q.small)
	require.Equal(t, int64(2), r.small)

	require.NoError(t, DivModFloor(&q, &r, New(7), New(-3)))
	require.Equal(t, int64(-3), q.small)
	require.Equal(t, int64(-2), r.small)
}

func TestGCDLCM(t *testing.T) {
	var g, l SmallOrBig
	g.GCD(New(12), New(18))
	require.Equal(t, int64(6), g.small)
	l.LCM(New(4), New(6))
	require.Equal(t, int64(12), l.small)

	var zg SmallOrBig
	zg.GCD(New(0), New(0))
	require.True(t, zg.IsZero())

	var zl SmallOrBig
	zl.LCM(New(5), New(0))
	require.True(t, zl.IsZero())
}

func TestCRT(t *testing.T) {
	// x = 2 mod 3, x = 3 mod 5 -> x = 8 mod 15 -> canonical rep -7
	var z SmallOrBig
	z.CRT(New(2), New(3), 3, 5)
	require.Equal(t, int64(-7), z.small)
}

func TestPowUnsigned(t *testing.T) {
	var z SmallOrBig
	z.PowUnsigned(New(3), 40)
	require.Equal(t, new(big.Int).Exp(big.NewInt(3), big.NewInt(40), nil), z.BigInt())
}
