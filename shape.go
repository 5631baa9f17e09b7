// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"

	"github.com/nlpodyssey/tensorjson/dtype"
)

// The Shape of a tensor: the ordered sequence of its dimension lengths,
// outermost first.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Equal reports whether two shapes have the same rank and the same
// length at every dimension.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, v := range s {
		if v != other[i] {
			return false
		}
	}
	return true
}

// Elems returns the number of elements a tensor of this Shape holds
// (an empty shape counts as 1 scalar value). It fails if any dimension
// is negative, or if the product overflows the int type.
func (s Shape) Elems() (int, error) {
	size := uint(1)
	for _, v := range s {
		if v < 0 {
			return 0, fmt.Errorf("shape contains negative value %d", v)
		}
		var hi uint
		if hi, size = bits.Mul(size, uint(v)); hi != 0 {
			return 0, fmt.Errorf("int overflow computing tensor elements size from shape")
		}
	}
	if size > math.MaxInt {
		return 0, fmt.Errorf("tensor elements size computed from shape is too large for int type: %d", size)
	}
	return int(size), nil
}

// ByteSize returns the size in bytes of a tensor of this Shape whose
// elements are of the given data type.
func (s Shape) ByteSize(dt dtype.DType) (int, error) {
	if err := dt.Validate(); err != nil {
		return 0, err
	}
	elems, err := s.Elems()
	if err != nil {
		return 0, err
	}
	hi, byteSize := bits.Mul(uint(elems), uint(dt.Size()))
	if hi != 0 {
		return 0, fmt.Errorf("int overflow computing tensor byte size from shape")
	}
	if byteSize > math.MaxInt {
		return 0, fmt.Errorf("tensor byte size computed from shape is too large for int type: %d", byteSize)
	}
	return int(byteSize), nil
}

// MarshalJSON prevents a nil Shape to be serialized as "null",
// preferring an empty array "[]" instead.
func (s Shape) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(s))
}
