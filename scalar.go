// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/nlpodyssey/tensorjson/dtype"
)

// errInvalidLeaf reports a JSON value found where a numeric scalar was
// expected.
var errInvalidLeaf = errors.New("expected a JSON number")

// appendScalar encodes one JSON leaf value as the little-endian,
// fixed-width representation of the requested kind, appending it to buf.
//
// Both integer and floating literals are accepted for every target
// kind. A floating literal bound for an integer kind is truncated
// toward zero, and a magnitude exceeding the destination range wraps
// modulo 2^width, following standard numeric narrowing.
func appendScalar(buf []byte, value any, dt dtype.DType) ([]byte, error) {
	num, ok := value.(json.Number)
	if !ok {
		return nil, errors.Wrapf(errInvalidLeaf, "found %s", jsonTypeName(value))
	}
	leaf, err := parseNumericLeaf(num)
	if err != nil {
		return nil, err
	}

	switch dt {
	case dtype.U8, dtype.I8:
		return append(buf, byte(leaf.intBits())), nil
	case dtype.U16, dtype.I16:
		return binary.LittleEndian.AppendUint16(buf, uint16(leaf.intBits())), nil
	case dtype.U32, dtype.I32:
		return binary.LittleEndian.AppendUint32(buf, uint32(leaf.intBits())), nil
	case dtype.U64, dtype.I64:
		return binary.LittleEndian.AppendUint64(buf, leaf.intBits()), nil
	case dtype.F16:
		return binary.LittleEndian.AppendUint16(buf, float16.Fromfloat32(float32(leaf.float())).Bits()), nil
	case dtype.F32:
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(leaf.float()))), nil
	case dtype.F64:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(leaf.float())), nil
	}
	return nil, errors.Errorf("invalid or unsupported DType %s", dt)
}

type leafKind uint8

const (
	leafInt leafKind = iota
	leafUint
	leafFloat
)

// numericLeaf is the parsed form of one JSON numeric literal. Integer
// literals keep their exact 64-bit representation, so values like
// 18446744073709551615 survive the trip into unsigned kinds without an
// intermediate float64.
type numericLeaf struct {
	kind leafKind
	i    int64
	u    uint64
	f    float64
}

func parseNumericLeaf(num json.Number) (numericLeaf, error) {
	s := num.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return numericLeaf{kind: leafInt, i: i}, nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return numericLeaf{kind: leafUint, u: u}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return numericLeaf{}, errors.Wrapf(errInvalidLeaf, "invalid numeric literal %q", s)
	}
	return numericLeaf{kind: leafFloat, f: f}, nil
}

// intBits returns the leaf value as a 64-bit two's complement pattern,
// to be narrowed to the destination width by plain truncation.
func (l numericLeaf) intBits() uint64 {
	switch l.kind {
	case leafInt:
		return uint64(l.i)
	case leafUint:
		return l.u
	}
	return float64ToIntBits(l.f)
}

func (l numericLeaf) float() float64 {
	switch l.kind {
	case leafInt:
		return float64(l.i)
	case leafUint:
		return float64(l.u)
	}
	return l.f
}

// two64 is 2^64, exactly representable as a float64.
const two64 = 1 << 64

// float64ToIntBits truncates f toward zero and reduces it to a 64-bit
// two's complement pattern. NaN and infinities map to zero.
func float64ToIntBits(f float64) uint64 {
	t := math.Trunc(f)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	neg := t < 0
	if neg {
		t = -t
	}
	t = math.Mod(t, two64)

	var u uint64
	if t >= 1<<63 {
		u = uint64(t-(1<<63)) | 1<<63
	} else {
		u = uint64(t)
	}
	if neg {
		u = ^u + 1
	}
	return u
}
