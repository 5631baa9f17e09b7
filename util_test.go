// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nlpodyssey/tensorjson/dtype"
)

func makeDescriptors(shapes map[string]Shape, dt dtype.DType) DescriptorMap {
	dm := make(DescriptorMap, len(shapes))
	for name, shape := range shapes {
		dm[name] = InputDescriptor{Name: name, Shape: shape, DType: dt}
	}
	return dm
}

func mustParser(t *testing.T, shapes map[string]Shape, dt dtype.DType) *RequestParser {
	t.Helper()
	p, err := NewRequestParser(makeDescriptors(shapes, dt))
	require.NoError(t, err)
	return p
}

func asInt8(t *testing.T, data []byte) []int8 {
	t.Helper()
	out := make([]int8, len(data))
	for i, b := range data {
		out[i] = int8(b)
	}
	return out
}

func asUint16(t *testing.T, data []byte) []uint16 {
	t.Helper()
	require.Zero(t, len(data)%2)
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return out
}

func asInt16(t *testing.T, data []byte) []int16 {
	t.Helper()
	u := asUint16(t, data)
	out := make([]int16, len(u))
	for i, v := range u {
		out[i] = int16(v)
	}
	return out
}

func asUint32(t *testing.T, data []byte) []uint32 {
	t.Helper()
	require.Zero(t, len(data)%4)
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out
}

func asInt32(t *testing.T, data []byte) []int32 {
	t.Helper()
	u := asUint32(t, data)
	out := make([]int32, len(u))
	for i, v := range u {
		out[i] = int32(v)
	}
	return out
}

func asUint64(t *testing.T, data []byte) []uint64 {
	t.Helper()
	require.Zero(t, len(data)%8)
	out := make([]uint64, len(data)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return out
}

func asInt64(t *testing.T, data []byte) []int64 {
	t.Helper()
	u := asUint64(t, data)
	out := make([]int64, len(u))
	for i, v := range u {
		out[i] = int64(v)
	}
	return out
}

func asFloat32(t *testing.T, data []byte) []float32 {
	t.Helper()
	u := asUint32(t, data)
	out := make([]float32, len(u))
	for i, v := range u {
		out[i] = math.Float32frombits(v)
	}
	return out
}

func asFloat64(t *testing.T, data []byte) []float64 {
	t.Helper()
	u := asUint64(t, data)
	out := make([]float64, len(u))
	for i, v := range u {
		out[i] = math.Float64frombits(v)
	}
	return out
}
