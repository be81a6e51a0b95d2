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

// Package wireformat is the only serialisation surface of the core: a
// printable text form "length<space><space>elem_0<space><space>elem_1…"
// for vectors and polynomials, and a CBOR binary form carrying the same
// fields plus an explicit semver format tag so a future incompatible
// layout is rejected with ErrParse instead of silently misread.
package wireformat

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/nume-crypto/flintgo/intvec"
	"github.com/nume-crypto/flintgo/qpoly"
	"github.com/nume-crypto/flintgo/soib"
	"github.com/nume-crypto/flintgo/xerr"
	"github.com/nume-crypto/flintgo/zpoly"
)

// FormatVersion is embedded in every binary envelope. A change to the
// on-wire layout (field order, added/removed field, encoding change)
// must bump it so UnmarshalBinary can refuse to silently misread an
// older or newer producer's output.
var FormatVersion = semver.MustParse("1.0.0")

const sep = "  "

func marshalText(length int, elems []big.Int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", length)
	for _, e := range elems {
		b.WriteString(sep)
		b.WriteString(e.String())
	}
	return b.String()
}

func parseText(s string) (length int, elems []big.Int, err error) {
	fields := strings.Split(strings.TrimSpace(s), sep)
	if len(fields) == 0 {
		return 0, nil, xerr.ErrParse
	}
	if _, scanErr := fmt.Sscanf(fields[0], "%d", &length); scanErr != nil || length < 0 {
		return 0, nil, xerr.ErrParse
	}
	rest := fields[1:]
	if len(rest) != length {
		return 0, nil, xerr.ErrParse
	}
	elems = make([]big.Int, length)
	for i, f := range rest {
		if _, ok := elems[i].SetString(f, 10); !ok {
			return 0, nil, xerr.ErrParse
		}
	}
	return length, elems, nil
}

// MarshalTextVec renders v as "length  e0  e1  ...".
func MarshalTextVec(v *intvec.IntVec) string {
	raw := v.Raw()
	elems := make([]big.Int, len(raw))
	for i := range raw {
		elems[i] = *raw[i].BigInt()
	}
	return marshalText(len(raw), elems)
}

// ParseTextVec parses the format produced by MarshalTextVec.
func ParseTextVec(s string) (*intvec.IntVec, error) {
	n, elems, err := parseText(s)
	if err != nil {
		return nil, err
	}
	out := make([]soib.SmallOrBig, n)
	for i := range elems {
		out[i].SetBigInt(&elems[i])
	}
	return intvec.FromRaw(out), nil
}

// MarshalTextZPoly renders p the same way as MarshalTextVec, the
// coefficient list being a ZPoly's entire state.
func MarshalTextZPoly(p *zpoly.ZPoly) string {
	raw := p.Coeffs()
	elems := make([]big.Int, len(raw))
	for i := range raw {
		elems[i] = *raw[i].BigInt()
	}
	return marshalText(len(raw), elems)
}

// ParseTextZPoly parses the format produced by MarshalTextZPoly.
func ParseTextZPoly(s string) (*zpoly.ZPoly, error) {
	n, elems, err := parseText(s)
	if err != nil {
		return nil, err
	}
	out := make([]soib.SmallOrBig, n)
	for i := range elems {
		out[i].SetBigInt(&elems[i])
	}
	return zpoly.FromCoeffs(out), nil
}

// MarshalTextQPoly renders a QPoly as "length  den  e0  e1  ...": the
// shared denominator is carried as one extra leading element after the
// length, ahead of the numerator's coefficient list.
func MarshalTextQPoly(p *qpoly.QPoly) string {
	raw := p.Numerator().Coeffs()
	var b strings.Builder
	fmt.Fprintf(&b, "%d", len(raw))
	b.WriteString(sep)
	b.WriteString(p.Denominator().BigInt().String())
	for i := range raw {
		b.WriteString(sep)
		b.WriteString(raw[i].BigInt().String())
	}
	return b.String()
}

// ParseTextQPoly parses the format produced by MarshalTextQPoly.
func ParseTextQPoly(s string) (*qpoly.QPoly, error) {
	fields := strings.Split(strings.TrimSpace(s), sep)
	if len(fields) < 2 {
		return nil, xerr.ErrParse
	}
	var length int
	if _, scanErr := fmt.Sscanf(fields[0], "%d", &length); scanErr != nil || length < 0 {
		return nil, xerr.ErrParse
	}
	rest := fields[1:]
	if len(rest) != length+1 {
		return nil, xerr.ErrParse
	}
	var den big.Int
	if _, ok := den.SetString(rest[0], 10); !ok {
		return nil, xerr.ErrParse
	}
	coeffs := make([]soib.SmallOrBig, length)
	for i, f := range rest[1:] {
		var v big.Int
		if _, ok := v.SetString(f, 10); !ok {
			return nil, xerr.ErrParse
		}
		coeffs[i].SetBigInt(&v)
	}
	var denSib soib.SmallOrBig
	denSib.SetBigInt(&den)
	q, err := qpoly.FromParts(zpoly.FromCoeffs(coeffs), &denSib)
	if err != nil {
		return nil, xerr.ErrParse
	}
	return q, nil
}

// envelope is the CBOR-encoded shape shared by all binary forms: a
// semver format tag plus the decimal-string coefficient list (decimal
// strings, not raw CBOR bignums, so the wire format doesn't depend on
// cbor/v2's bignum tag support matching across producer/consumer
// versions). Den is omitted (cbor:",omitempty") for IntVec/ZPoly.
type envelope struct {
	Version string   `cbor:"version"`
	Den     string   `cbor:"den,omitempty"`
	Elems   []string `cbor:"elems"`
}

func checkVersion(v string) error {
	got, err := semver.Parse(v)
	if err != nil {
		return xerr.ErrParse
	}
	if got.Major != FormatVersion.Major {
		return xerr.ErrParse
	}
	return nil
}

func bigIntStrings(elems []big.Int) []string {
	out := make([]string, len(elems))
	for i := range elems {
		out[i] = elems[i].String()
	}
	return out
}

// MarshalBinaryVec encodes v as a versioned CBOR envelope.
func MarshalBinaryVec(v *intvec.IntVec) ([]byte, error) {
	raw := v.Raw()
	elems := make([]big.Int, len(raw))
	for i := range raw {
		elems[i] = *raw[i].BigInt()
	}
	return cbor.Marshal(envelope{Version: FormatVersion.String(), Elems: bigIntStrings(elems)})
}

// UnmarshalBinaryVec decodes the form produced by MarshalBinaryVec.
func UnmarshalBinaryVec(data []byte) (*intvec.IntVec, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, xerr.ErrParse
	}
	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	out := make([]soib.SmallOrBig, len(env.Elems))
	for i, s := range env.Elems {
		var v big.Int
		if _, ok := v.SetString(s, 10); !ok {
			return nil, xerr.ErrParse
		}
		out[i].SetBigInt(&v)
	}
	return intvec.FromRaw(out), nil
}

// MarshalBinaryZPoly encodes p as a versioned CBOR envelope.
func MarshalBinaryZPoly(p *zpoly.ZPoly) ([]byte, error) {
	raw := p.Coeffs()
	elems := make([]big.Int, len(raw))
	for i := range raw {
		elems[i] = *raw[i].BigInt()
	}
	return cbor.Marshal(envelope{Version: FormatVersion.String(), Elems: bigIntStrings(elems)})
}

// UnmarshalBinaryZPoly decodes the form produced by MarshalBinaryZPoly.
func UnmarshalBinaryZPoly(data []byte) (*zpoly.ZPoly, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, xerr.ErrParse
	}
	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	out := make([]soib.SmallOrBig, len(env.Elems))
	for i, s := range env.Elems {
		var v big.Int
		if _, ok := v.SetString(s, 10); !ok {
			return nil, xerr.ErrParse
		}
		out[i].SetBigInt(&v)
	}
	return zpoly.FromCoeffs(out), nil
}

// MarshalBinaryQPoly encodes p as a versioned CBOR envelope, including
// the shared denominator.
func MarshalBinaryQPoly(p *qpoly.QPoly) ([]byte, error) {
	raw := p.Numerator().Coeffs()
	elems := make([]big.Int, len(raw))
	for i := range raw {
		elems[i] = *raw[i].BigInt()
	}
	return cbor.Marshal(envelope{
		Version: FormatVersion.String(),
		Den:     p.Denominator().BigInt().String(),
		Elems:   bigIntStrings(elems),
	})
}

// UnmarshalBinaryQPoly decodes the form produced by MarshalBinaryQPoly.
func UnmarshalBinaryQPoly(data []byte) (*qpoly.QPoly, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, xerr.ErrParse
	}
	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	var den big.Int
	if _, ok := den.SetString(env.Den, 10); !ok {
		return nil, xerr.ErrParse
	}
	coeffs := make([]soib.SmallOrBig, len(env.Elems))
	for i, s := range env.Elems {
		var v big.Int
		if _, ok := v.SetString(s, 10); !ok {
			return nil, xerr.ErrParse
		}
		coeffs[i].SetBigInt(&v)
	}
	var denSib soib.SmallOrBig
	denSib.SetBigInt(&den)
	q, err := qpoly.FromParts(zpoly.FromCoeffs(coeffs), &denSib)
	if err != nil {
		return nil, xerr.ErrParse
	}
	return q, nil
}
