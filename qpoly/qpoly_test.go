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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

// fromRatios builds coeffs(x)/den from a slice of plain integer
// numerators sharing the single den.
func fromRatios(den int64, nums ...int64) *QPoly {
	coeffs := make([]soib.SmallOrBig, len(nums))
	for i, v := range nums {
		coeffs[i].SetSmall(v)
	}
	out, err := FromParts(zpoly.FromCoeffs(coeffs), soib.New(den))
	if err != nil {
		panic(err)
	}
	return out
}

func toRats(t *testing.T, p *QPoly, n int) []*big.Rat {
	t.Helper()
	return ratFromQPoly(p, n)
}

func requireRatEqual(t *testing.T, want, got *big.Rat) {
	t.Helper()
	require.Equal(t, 0, want.Cmp(got), "want %s got %s", want, got)
}

func TestCanonicaliseInvariant(t *testing.T) {
	p := fromRatios(4, 2, 4, 6)
	require.Equal(t, int64(2), p.Denominator().BigInt().Int64())
	require.Equal(t, []int64{1, 2, 3}, func() []int64 {
		c := p.Numerator().Coeffs()
		out := make([]int64, len(c))
		for i := range c {
			out[i] = c[i].BigInt().Int64()
		}
		return out
	}())
}

func TestCanonicaliseNegativeDenominator(t *testing.T) {
	coeffs := []soib.SmallOrBig{*soib.New(1), *soib.New(2)}
	q, err := FromParts(zpoly.FromCoeffs(coeffs), soib.New(-3))
	require.NoError(t, err)
	require.True(t, q.Denominator().Sign() > 0)
}

func TestAddEqualDenominatorFastPath(t *testing.T) {
	a := fromRatios(3, 1, 2)
	b := fromRatios(3, 4, 5)
	sum := New().Add(a, b)
	require.Equal(t, int64(3), sum.Denominator().BigInt().Int64())
	require.Equal(t, []int64{5, 7}, toInt64s(t, sum.Numerator()))
}

func TestAddCrossDenominator(t *testing.T) {
	a := fromRatios(2, 1) // 1/2
	b := fromRatios(3, 1) // 1/3
	sum := New().Add(a, b)
	got := toRats(t, sum, 1)[0]
	requireRatEqual(t, big.NewRat(5, 6), got)
}

func TestSubNeg(t *testing.T) {
	a := fromRatios(2, 3) // 3/2
	b := fromRatios(4, 1) // 1/4
	diff := New().Sub(a, b)
	requireRatEqual(t, big.NewRat(5, 4), toRats(t, diff, 1)[0])

	neg := New().Neg(a)
	requireRatEqual(t, big.NewRat(-3, 2), toRats(t, neg, 1)[0])
}

func TestMulReducesSharedFactors(t *testing.T) {
	a := fromRatios(4, 2) // 1/2
	b := fromRatios(2, 1) // 1/2
	prod := New().Mul(a, b)
	requireRatEqual(t, big.NewRat(1, 4), toRats(t, prod, 1)[0])
}

func TestScalarOps(t *testing.T) {
	a := fromRatios(3, 2, 4) // (2+4x)/3
	scaled := New().ScalarMulZ(a, soib.New(6))
	require.Equal(t, []int64{4, 8}, toInt64s(t, scaled.Numerator()))
	require.Equal(t, int64(1), scaled.Denominator().BigInt().Int64())

	divved, err := New().ScalarDivZ(a, soib.New(2))
	require.NoError(t, err)
	requireRatEqual(t, big.NewRat(1, 3), toRats(t, divved, 1)[0])

	_, err = New().ScalarDivZ(a, soib.New(0))
	require.ErrorIs(t, err, xerr.ErrDivisionByZero)
}

func toInt64s(t *testing.T, p *zpoly.ZPoly) []int64 {
	t.Helper()
	coeffs := p.Coeffs()
	out := make([]int64, len(coeffs))
	for i := range coeffs {
		out[i] = coeffs[i].BigInt().Int64()
	}
	return out
}

func TestDivRemIdentity(t *testing.T) {
	a := fromRatios(1, 1, 0, 1) // x^2 + 1
	b := fromRatios(1, -1, 1)   // x - 1
	q, r := New(), New()
	require.NoError(t, DivRem(q, r, a, b))

	check := New().Add(New().Mul(q, b), r)
	require.True(t, check.Equal(a))
}

func TestDivRemRejectsZeroDivisor(t *testing.T) {
	q, r := New(), New()
	err := DivRem(q, r, fromRatios(1, 1), New())
	require.ErrorIs(t, err, xerr.ErrDivisionByZero)
}

func TestDivides(t *testing.T) {
	a := fromRatios(1, -2, 1) // x - 2
	b := fromRatios(1, 1, 1)  // x + 1
	prod := New().Mul(a, b)
	q := New()
	ok, err := Divides(q, prod, b)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, q.Equal(a))
}

func TestGCDKnownFactor(t *testing.T) {
	shared := fromRatios(1, -1, 1) // x - 1
	a := New().Mul(shared, fromRatios(1, 2, 1))
	b := New().Mul(shared, fromRatios(1, -3, 1))
	g := New()
	GCD(g, a, b)
	require.Equal(t, int64(1), g.Numerator().LeadingCoeff().BigInt().Int64())
	q := New()
	ok, err := Divides(q, a, g)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGCDZeroEdgeCases(t *testing.T) {
	a := fromRatios(2, 4, 2) // (4+2x)/2
	g := New()
	GCD(g, a, New())
	require.Equal(t, int64(1), g.Numerator().LeadingCoeff().BigInt().Int64())

	z := New()
	GCD(z, New(), New())
	require.True(t, z.IsZero())
}

func TestDerivativeAndIntegral(t *testing.T) {
	a := fromRatios(1, 1, 2, 3) // 1 + 2x + 3x^2
	der := New().Derivative(a)
	requireRatEqual(t, big.NewRat(2, 1), toRats(t, der, 1)[0])
	requireRatEqual(t, big.NewRat(6, 1), toRats(t, der, 2)[1])

	integ := New()
	require.NoError(t, integ.Integral(der))
	require.True(t, integ.Equal(New().Sub(a, fromRatios(1, 1))))
}

func TestResultantKnownValue(t *testing.T) {
	a := fromRatios(1, -1, 1) // x - 1
	b := fromRatios(1, -2, 1) // x - 2
	num, den := Resultant(a, b)
	requireRatEqual(t, big.NewRat(-1, 1), new(big.Rat).SetFrac(num.BigInt(), den.BigInt()))
}

func TestResultantSharedRootVanishes(t *testing.T) {
	shared := fromRatios(1, -1, 1)
	a := New().Mul(shared, fromRatios(1, 2, 1))
	num, _ := Resultant(a, shared)
	require.True(t, num.IsZero())
}

func TestInterpolateRoundTrip(t *testing.T) {
	xs := []soib.SmallOrBig{*soib.New(0), *soib.New(1), *soib.New(2)}
	ys := []*QPoly{fromRatios(1, 1), fromRatios(2, 3), fromRatios(1, 5)}
	out := New()
	require.NoError(t, Interpolate(out, xs, ys))
	for i := range xs {
		got := out.Numerator().Evaluate(&xs[i])
		var gotRat big.Rat
		gotRat.SetFrac(got.BigInt(), out.Denominator().BigInt())
		wantNum, wantDen := constantTerm(ys[i])
		var wantRat big.Rat
		wantRat.SetFrac(wantNum.BigInt(), wantDen.BigInt())
		requireRatEqual(t, &wantRat, &gotRat)
	}
}

func TestInterpolateRejectsDuplicateXs(t *testing.T) {
	xs := []soib.SmallOrBig{*soib.New(1), *soib.New(1)}
	ys := []*QPoly{fromRatios(1, 1), fromRatios(1, 2)}
	err := Interpolate(New(), xs, ys)
	require.ErrorIs(t, err, xerr.ErrInvalidArgument)
}

func TestInvSeriesNewton(t *testing.T) {
	f := fromRatios(1, 1, 1) // 1 + x
	inv := New()
	require.NoError(t, InvSeriesNewton(inv, f, 5))
	prod := mulLowQ(f, inv, 5)
	require.True(t, prod.Equal(fromRatios(1, 1)))

	_, err := func() (*QPoly, error) {
		o := New()
		return o, InvSeriesNewton(o, New(), 3)
	}()
	require.ErrorIs(t, err, xerr.ErrConstantTermNotInvertible)
}

func TestExpLogSeriesRoundTrip(t *testing.T) {
	f := fromRatios(1, 0, 1) // x
	exp := New()
	require.NoError(t, ExpSeries(exp, f, 6))

	logged := New()
	require.NoError(t, LogSeries(logged, exp, 6))
	require.True(t, logged.Equal(qTruncate(f, 6)))
}

func TestExpSeriesRejectsNonZeroConstant(t *testing.T) {
	err := ExpSeries(New(), fromRatios(1, 1, 1), 4)
	require.ErrorIs(t, err, xerr.ErrNonZeroConstantTerm)
}

func TestLogSeriesRejectsNonUnitConstant(t *testing.T) {
	err := LogSeries(New(), fromRatios(1, 2, 1), 4)
	require.ErrorIs(t, err, xerr.ErrNonUnitConstantTerm)
}

func TestSinCosPythagoreanIdentity(t *testing.T) {
	f := fromRatios(1, 0, 1) // x
	sin, cos := New(), New()
	require.NoError(t, SinSeries(sin, f, 8))
	require.NoError(t, CosSeries(cos, f, 8))

	sq := New().Add(New().Mul(sin, sin), New().Mul(cos, cos))
	require.True(t, qTruncate(sq, 8).Equal(constQPoly(1)))
}

func TestSinhCoshIdentity(t *testing.T) {
	f := fromRatios(1, 0, 1) // x
	sinh, cosh := New(), New()
	require.NoError(t, SinhSeries(sinh, f, 8))
	require.NoError(t, CoshSeries(cosh, f, 8))

	diff := New().Sub(New().Mul(cosh, cosh), New().Mul(sinh, sinh))
	require.True(t, qTruncate(diff, 8).Equal(constQPoly(1)))
}

func TestTanSeriesMatchesSinOverCos(t *testing.T) {
	f := fromRatios(1, 0, 1)
	tan := New()
	require.NoError(t, TanSeries(tan, f, 6))

	sin, cos := New(), New()
	require.NoError(t, SinSeries(sin, f, 6))
	require.NoError(t, CosSeries(cos, f, 6))
	want := New()
	require.NoError(t, DivSeries(want, sin, cos, 6))
	require.True(t, tan.Equal(want))
}

func TestSqrtInvSqrtSeries(t *testing.T) {
	f := fromRatios(1, 1, 4) // 1 + 4x
	sq := New()
	require.NoError(t, SqrtSeries(sq, f, 6))
	sqSquared := New().Mul(sq, sq)
	require.True(t, qTruncate(sqSquared, 6).Equal(qTruncate(f, 6)))
}

func TestSqrtSeriesRejectsNonUnitConstant(t *testing.T) {
	err := SqrtSeries(New(), fromRatios(1, 4), 4)
	require.ErrorIs(t, err, xerr.ErrNonUnitConstantTerm)
}

func TestAtanhAtanAsinRequireZeroConstant(t *testing.T) {
	nonZero := fromRatios(1, 1, 1)
	require.ErrorIs(t, AtanhSeries(New(), nonZero, 4), xerr.ErrNonZeroConstantTerm)
	require.ErrorIs(t, AtanSeries(New(), nonZero, 4), xerr.ErrNonZeroConstantTerm)
	require.ErrorIs(t, AsinSeries(New(), nonZero, 4), xerr.ErrNonZeroConstantTerm)
}

func TestAtanhSeriesMatchesKnownCoefficients(t *testing.T) {
	f := fromRatios(1, 0, 1) // x
	out := New()
	require.NoError(t, AtanhSeries(out, f, 6))
	// atanh(x) = x + x^3/3 + x^5/5 + ...
	requireRatEqual(t, big.NewRat(1, 1), toRats(t, out, 2)[1])
	requireRatEqual(t, big.NewRat(1, 3), toRats(t, out, 4)[3])
	requireRatEqual(t, big.NewRat(1, 5), toRats(t, out, 6)[5])
}

func TestAtanSeriesMatchesKnownCoefficients(t *testing.T) {
	f := fromRatios(1, 0, 1) // x
	out := New()
	require.NoError(t, AtanSeries(out, f, 6))
	// atan(x) = x - x^3/3 + x^5/5 - ...
	requireRatEqual(t, big.NewRat(1, 1), toRats(t, out, 2)[1])
	requireRatEqual(t, big.NewRat(-1, 3), toRats(t, out, 4)[3])
	requireRatEqual(t, big.NewRat(1, 5), toRats(t, out, 6)[5])
}

func TestAcosSeriesUnsupported(t *testing.T) {
	err := AcosSeries(New(), fromRatios(1, 0, 1), 4)
	require.ErrorIs(t, err, xerr.ErrUnsupported)
}

func TestRevertSeriesNewtonRoundTrip(t *testing.T) {
	f := fromRatios(1, 0, 1, 1) // x + x^2
	g := New()
	require.NoError(t, RevertSeriesNewton(g, f, 6))

	composed := New()
	require.NoError(t, ComposeSeries(composed, f, g, 6))
	xPoly := fromRatios(1, 0, 1)
	require.True(t, qTruncate(composed, 6).Equal(qTruncate(xPoly, 6)))
}

func TestRevertSeriesNewtonRejectsNonZeroConstant(t *testing.T) {
	err := RevertSeriesNewton(New(), fromRatios(1, 1, 1), 4)
	require.ErrorIs(t, err, xerr.ErrNonZeroConstantTerm)
}

func TestRevertSeriesNewtonRejectsNonInvertibleLinearTerm(t *testing.T) {
	err := RevertSeriesNewton(New(), fromRatios(1, 0, 0, 1), 4)
	require.ErrorIs(t, err, xerr.ErrNotRevertible)
}

func TestResultantModularDivFoldsDivisor(t *testing.T) {
	a := fromRatios(1, -1, 1) // x - 1
	b := fromRatios(1, -2, 1) // x - 2
	num, den := Resultant(a, b)
	divNum, divDen := ResultantModularDiv(a, b, soib.New(1), 64)
	requireRatEqual(t,
		new(big.Rat).SetFrac(num.BigInt(), den.BigInt()),
		new(big.Rat).SetFrac(divNum.BigInt(), divDen.BigInt()),
	)
}
