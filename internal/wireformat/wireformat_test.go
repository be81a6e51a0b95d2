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

package wireformat

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/flintgo/intvec"
	"github.com/nume-crypto/flintgo/qpoly"
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

func mkVec(vs ...int64) *intvec.IntVec {
	out := make([]soib.SmallOrBig, len(vs))
	for i, v := range vs {
		out[i].SetSmall(v)
	}
	return intvec.FromRaw(out)
}

func mkZPoly(vs ...int64) *zpoly.ZPoly {
	out := make([]soib.SmallOrBig, len(vs))
	for i, v := range vs {
		out[i].SetSmall(v)
	}
	return zpoly.FromCoeffs(out)
}

func mkQPoly(den int64, vs ...int64) *qpoly.QPoly {
	out := make([]soib.SmallOrBig, len(vs))
	for i, v := range vs {
		out[i].SetSmall(v)
	}
	q, err := qpoly.FromParts(zpoly.FromCoeffs(out), soib.New(den))
	if err != nil {
		panic(err)
	}
	return q
}

func vecToInts(v *intvec.IntVec) []int64 {
	raw := v.Raw()
	out := make([]int64, len(raw))
	for i := range raw {
		out[i] = raw[i].BigInt().Int64()
	}
	return out
}

func TestTextVecRoundTrip(t *testing.T) {
	v := mkVec(1, -2, 3)
	s := MarshalTextVec(v)
	require.Equal(t, "3  1  -2  3", s)
	got, err := ParseTextVec(s)
	require.NoError(t, err)
	require.Equal(t, vecToInts(v), vecToInts(got))
}

func TestTextVecRejectsMalformed(t *testing.T) {
	_, err := ParseTextVec("3  1  2")
	require.ErrorIs(t, err, xerr.ErrParse)

	_, err = ParseTextVec("2  1  abc")
	require.ErrorIs(t, err, xerr.ErrParse)
}

func TestTextZPolyRoundTrip(t *testing.T) {
	p := mkZPoly(4, 5, 6)
	s := MarshalTextZPoly(p)
	got, err := ParseTextZPoly(s)
	require.NoError(t, err)
	require.True(t, got.Equal(p))
}

func TestTextQPolyRoundTrip(t *testing.T) {
	p := mkQPoly(6, 2, 4)
	s := MarshalTextQPoly(p)
	got, err := ParseTextQPoly(s)
	require.NoError(t, err)
	require.True(t, got.Equal(p))
}

func TestTextQPolyRejectsMalformed(t *testing.T) {
	_, err := ParseTextQPoly("2  1")
	require.ErrorIs(t, err, xerr.ErrParse)

	_, err = ParseTextQPoly("2  0  1  2")
	require.ErrorIs(t, err, xerr.ErrParse)
}

func TestBinaryVecRoundTrip(t *testing.T) {
	v := mkVec(10, -20, 30)
	data, err := MarshalBinaryVec(v)
	require.NoError(t, err)
	got, err := UnmarshalBinaryVec(data)
	require.NoError(t, err)
	require.Equal(t, vecToInts(v), vecToInts(got))
}

func TestBinaryZPolyRoundTrip(t *testing.T) {
	p := mkZPoly(1, 2, 3, 4)
	data, err := MarshalBinaryZPoly(p)
	require.NoError(t, err)
	got, err := UnmarshalBinaryZPoly(data)
	require.NoError(t, err)
	require.True(t, got.Equal(p))
}

func TestBinaryQPolyRoundTrip(t *testing.T) {
	p := mkQPoly(10, 2, 4, 6)
	data, err := MarshalBinaryQPoly(p)
	require.NoError(t, err)
	got, err := UnmarshalBinaryQPoly(data)
	require.NoError(t, err)
	require.True(t, got.Equal(p))
}

func TestBinaryRejectsIncompatibleMajorVersion(t *testing.T) {
	data, err := cbor.Marshal(envelope{Version: "2.0.0", Elems: []string{"1", "2"}})
	require.NoError(t, err)
	_, err = UnmarshalBinaryVec(data)
	require.ErrorIs(t, err, xerr.ErrParse)
}
