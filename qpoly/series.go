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

	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

// ratFromQPoly reads p's first n coefficients as big.Rat values
// (0 past the end), used by the series identities below that are
// easiest to get right as a direct coefficient recurrence rather than
// as a chain of QPoly ring operations.
func ratFromQPoly(p *QPoly, n int) []*big.Rat {
	out := make([]*big.Rat, n)
	coeffs := p.coeffs.Coeffs()
	denBig := p.den.BigInt()
	for i := 0; i < n; i++ {
		r := new(big.Rat)
		if i < len(coeffs) {
			r.SetFrac(coeffs[i].BigInt(), denBig)
		}
		out[i] = r
	}
	return out
}

// qpolyFromRats builds the QPoly with the given coefficients,
// reduced to a single shared denominator (their lcm).
func qpolyFromRats(rats []*big.Rat) *QPoly {
	n := len(rats)
	for n > 0 && rats[n-1].Sign() == 0 {
		n--
	}
	if n == 0 {
		return New()
	}
	den := big.NewInt(1)
	for _, r := range rats[:n] {
		den = lcmBig(den, r.Denom())
	}
	coeffs := make([]soib.SmallOrBig, n)
	for i, r := range rats[:n] {
		var num big.Int
		num.Mul(r.Num(), new(big.Int).Div(den, r.Denom()))
		coeffs[i].SetBigInt(&num)
	}
	var denSib soib.SmallOrBig
	denSib.SetBigInt(den)
	out, err := FromParts(zpoly.FromCoeffs(coeffs), &denSib)
	if err != nil {
		panic(err) // den built from lcm of nonzero denominators, never zero
	}
	return out
}

func lcmBig(a, b *big.Int) *big.Int {
	var g big.Int
	g.GCD(nil, nil, a, b)
	var l big.Int
	l.Div(a, &g)
	l.Mul(&l, b)
	return &l
}

// derivativeRats returns the first n-1 coefficients of f', as rats,
// i.e. hd[i] = (i+1)*f[i+1].
func derivativeRats(fr []*big.Rat) []*big.Rat {
	n := len(fr)
	if n == 0 {
		return nil
	}
	out := make([]*big.Rat, n-1)
	for i := 0; i < n-1; i++ {
		out[i] = new(big.Rat).Mul(fr[i+1], big.NewRat(int64(i+1), 1))
	}
	return out
}

// ExpSeries computes exp(f) mod x^n, requiring f(0) = 0, via the
// basecase recurrence k*g_k = sum_{j=1}^{k} j*f_j*g_{k-j}, g_0 = 1.
func ExpSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	fr := ratFromQPoly(f, n)
	g := make([]*big.Rat, n)
	g[0] = big.NewRat(1, 1)
	for k := 1; k < n; k++ {
		sum := new(big.Rat)
		for j := 1; j <= k; j++ {
			term := new(big.Rat).Mul(fr[j], g[k-j])
			term.Mul(term, big.NewRat(int64(j), 1))
			sum.Add(sum, term)
		}
		g[k] = sum.Quo(sum, big.NewRat(int64(k), 1))
	}
	out.Set(qpolyFromRats(g))
	return nil
}

// LogSeries computes log(f) mod x^n, requiring f(0) = 1, as
// integral(f' * inv(f)).
func LogSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isUnitConstantTerm(f) {
		return xerr.ErrNonUnitConstantTerm
	}
	der := New().Derivative(f)
	invF := New()
	if err := InvSeriesNewton(invF, f, n-1); err != nil {
		return err
	}
	prod := mulLowQ(der, invF, n-1)
	return out.Integral(prod)
}

// AtanhSeries computes atanh(f) mod x^n, requiring f(0) = 0, as
// integral(f' / (1 - f^2)).
func AtanhSeries(out *QPoly, f *QPoly, n int) error {
	return integralRationalFunction(out, f, n, false)
}

// AtanSeries computes atan(f) mod x^n, requiring f(0) = 0, as
// integral(f' / (1 + f^2)). atan is the odd function whose Taylor
// series is rational (atan(0) = 0, unlike acos(0) = pi/2), so unlike
// acos it has a well-defined rational power series and is implemented
// here via the same integral-identity family as atanh_series.c.
func AtanSeries(out *QPoly, f *QPoly, n int) error {
	return integralRationalFunction(out, f, n, true)
}

func integralRationalFunction(out *QPoly, f *QPoly, n int, plus bool) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	hsq := New().Mul(f, f)
	one := constQPoly(1)
	var denom *QPoly
	if plus {
		denom = New().Add(one, hsq)
	} else {
		denom = New().Sub(one, hsq)
	}
	der := New().Derivative(f)
	quotient := New()
	if err := DivSeries(quotient, der, denom, n-1); err != nil {
		return err
	}
	return out.Integral(quotient)
}

// AsinSeries computes asin(f) mod x^n, requiring f(0) = 0, as
// integral(f' / sqrt(1 - f^2)).
func AsinSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	hsq := New().Mul(f, f)
	one := constQPoly(1)
	oneMinusHsq := New().Sub(one, hsq)
	sq := New()
	if err := SqrtSeries(sq, oneMinusHsq, n-1); err != nil {
		return err
	}
	der := New().Derivative(f)
	quotient := New()
	if err := DivSeries(quotient, der, sq, n-1); err != nil {
		return err
	}
	return out.Integral(quotient)
}

// AcosSeries would compute acos(f) mod x^n. acos(0) = pi/2 is
// irrational, and there is no other constant term at which acos is
// both analytic and rational-valued, so no formal power series with
// QPoly's rational coefficients can represent acos(f(x)) for any f.
// FLINT itself has no acos_series for the same reason. The operation
// is kept in the API surface and always reports ErrUnsupported rather
// than silently producing a truncated or incorrect result.
func AcosSeries(out *QPoly, f *QPoly, n int) error {
	return xerr.ErrUnsupported
}

// InvSqrtSeries computes 1/sqrt(f) mod x^n, requiring f(0) = 1, via
// Newton doubling g <- g/2 * (3 - f*g^2).
func InvSqrtSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isUnitConstantTerm(f) {
		return xerr.ErrNonUnitConstantTerm
	}
	g := constQPoly(1)
	three := constQPoly(3)
	two := soib.New(2)
	for prec := 1; prec < n; prec *= 2 {
		next := min(prec*2, n)
		gsq := mulLowQ(g, g, next)
		fgsq := mulLowQ(f, gsq, next)
		diff := New().Sub(three, fgsq)
		prodg := mulLowQ(g, diff, next)
		halved, err := New().ScalarDivZ(prodg, two)
		if err != nil {
			return err
		}
		g = qTruncate(halved, next)
	}
	out.Set(g)
	return nil
}

// SqrtSeries computes sqrt(f) mod x^n, requiring f(0) = 1, as
// f * invsqrt(f).
func SqrtSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isUnitConstantTerm(f) {
		return xerr.ErrNonUnitConstantTerm
	}
	invsq := New()
	if err := InvSqrtSeries(invsq, f, n); err != nil {
		return err
	}
	out.Set(mulLowQ(f, invsq, n))
	return nil
}

// sinCosBasecase computes (sin(h), cos(h)) mod x^n together, requiring
// h(0) = 0, via the differential-equation recurrence implied by
// sin' = h'*cos, cos' = -h'*sin: m*s_m = sum hd_i*c_{m-1-i},
// m*c_m = -sum hd_i*s_{m-1-i}, s_0 = 0, c_0 = 1.
func sinCosBasecase(h *QPoly, n int) (sin, cos []*big.Rat) {
	hr := ratFromQPoly(h, n)
	hd := derivativeRats(hr)
	s := make([]*big.Rat, n)
	c := make([]*big.Rat, n)
	s[0] = big.NewRat(0, 1)
	c[0] = big.NewRat(1, 1)
	for m := 1; m < n; m++ {
		sSum := new(big.Rat)
		cSum := new(big.Rat)
		for i := 0; i <= m-1 && i < len(hd); i++ {
			sSum.Add(sSum, new(big.Rat).Mul(hd[i], c[m-1-i]))
			cSum.Add(cSum, new(big.Rat).Mul(hd[i], s[m-1-i]))
		}
		s[m] = sSum.Quo(sSum, big.NewRat(int64(m), 1))
		c[m] = cSum.Quo(cSum, big.NewRat(int64(m), 1))
		c[m].Neg(c[m])
	}
	return s, c
}

// SinSeries computes sin(f) mod x^n, requiring f(0) = 0.
func SinSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	s, _ := sinCosBasecase(f, n)
	out.Set(qpolyFromRats(s))
	return nil
}

// CosSeries computes cos(f) mod x^n, requiring f(0) = 0.
func CosSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	_, c := sinCosBasecase(f, n)
	out.Set(qpolyFromRats(c))
	return nil
}

// TanSeries computes tan(f) mod x^n, requiring f(0) = 0, as
// sin(f)/cos(f).
func TanSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	s, c := sinCosBasecase(f, n)
	return DivSeries(out, qpolyFromRats(s), qpolyFromRats(c), n)
}

// sinhCoshBasecase mirrors sinCosBasecase with the hyperbolic
// identities sinh' = h'*cosh, cosh' = h'*sinh (no sign flip).
func sinhCoshBasecase(h *QPoly, n int) (sinh, cosh []*big.Rat) {
	hr := ratFromQPoly(h, n)
	hd := derivativeRats(hr)
	s := make([]*big.Rat, n)
	c := make([]*big.Rat, n)
	s[0] = big.NewRat(0, 1)
	c[0] = big.NewRat(1, 1)
	for m := 1; m < n; m++ {
		sSum := new(big.Rat)
		cSum := new(big.Rat)
		for i := 0; i <= m-1 && i < len(hd); i++ {
			sSum.Add(sSum, new(big.Rat).Mul(hd[i], c[m-1-i]))
			cSum.Add(cSum, new(big.Rat).Mul(hd[i], s[m-1-i]))
		}
		s[m] = sSum.Quo(sSum, big.NewRat(int64(m), 1))
		c[m] = cSum.Quo(cSum, big.NewRat(int64(m), 1))
	}
	return s, c
}

// SinhSeries computes sinh(f) mod x^n, requiring f(0) = 0.
func SinhSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	s, _ := sinhCoshBasecase(f, n)
	out.Set(qpolyFromRats(s))
	return nil
}

// CoshSeries computes cosh(f) mod x^n, requiring f(0) = 0. Unlike
// acos_series, cosh(0) = 1 is rational, so this has a well-defined
// series even though no dedicated original_source file names it
// separately from sinh_series.c — it is derived here from the same
// differential-equation pair as sinh.
func CoshSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	_, c := sinhCoshBasecase(f, n)
	out.Set(qpolyFromRats(c))
	return nil
}

// TanhSeries computes tanh(f) mod x^n, requiring f(0) = 0, as
// sinh(f)/cosh(f).
func TanhSeries(out *QPoly, f *QPoly, n int) error {
	if n <= 0 {
		out.Zero()
		return nil
	}
	if !isZeroConstantTerm(f) {
		return xerr.ErrNonZeroConstantTerm
	}
	s, c := sinhCoshBasecase(f, n)
	return DivSeries(out, qpolyFromRats(s), qpolyFromRats(c), n)
}
