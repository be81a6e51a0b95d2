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

// Package xerr collects the sentinel errors shared by soib, modular,
// zpoly, qpoly and internal/wireformat. Every recoverable failure mode
// of the core is one of these; broken invariants and forbidden aliasing
// are programming errors and panic instead (see each package's doc
// comment for which is which).
package xerr

import "errors"

var (
	// ErrDivisionByZero is any arithmetic division by zero, including
	// polynomial divrem with a zero divisor.
	ErrDivisionByZero = errors.New("flintgo: division by zero")

	// ErrInexactDivision is returned by exact-division primitives when
	// the remainder is nonzero.
	ErrInexactDivision = errors.New("flintgo: inexact division")

	// ErrNonZeroConstantTerm is returned by series identities requiring
	// f(0) = 0 (exp, atan, sin, cos, tan, sinh, cosh, tanh and the like,
	// and RevertSeries). Log, sqrt and invsqrt need f(0) = 1 and return
	// ErrNonUnitConstantTerm instead.
	ErrNonZeroConstantTerm = errors.New("flintgo: series requires zero constant term")

	// ErrNonUnitConstantTerm is returned by series identities requiring
	// f(0) = 1.
	ErrNonUnitConstantTerm = errors.New("flintgo: series requires unit constant term")

	// ErrConstantTermNotInvertible is returned by InvSeries when f(0) = 0.
	ErrConstantTermNotInvertible = errors.New("flintgo: constant term not invertible")

	// ErrNotRevertible is returned by RevertSeries when f'(0) = 0.
	ErrNotRevertible = errors.New("flintgo: series not revertible")

	// ErrParse is returned by the textual and binary parsers on
	// malformed input.
	ErrParse = errors.New("flintgo: parse error")

	// ErrInvalidArgument covers negative lengths, mismatched shapes, and
	// a zero modulus passed where a nonzero one is required.
	ErrInvalidArgument = errors.New("flintgo: invalid argument")

	// ErrUnsupported covers operations that exist in the API but are not
	// computed, documented at their call sites (qpoly.AcosSeries).
	ErrUnsupported = errors.New("flintgo: unsupported")

	// ErrNonCoprimeOrZeroModuli is returned by MultiModTree construction
	// when the supplied moduli are not pairwise coprime, or any is zero.
	ErrNonCoprimeOrZeroModuli = errors.New("flintgo: moduli not pairwise coprime or zero")
)
