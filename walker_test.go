// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpodyssey/tensorjson/dtype"
)

func TestShapeTracker(t *testing.T) {
	st := newShapeTracker(3)

	assert.True(t, st.record(0, 2))
	assert.True(t, st.record(1, 3))
	assert.True(t, st.record(1, 3))
	assert.False(t, st.record(1, 4))

	_, ok := st.realized()
	assert.False(t, ok)

	assert.True(t, st.record(2, 5))
	shape, ok := st.realized()
	require.True(t, ok)
	assert.Equal(t, Shape{2, 3, 5}, shape)
}

func testWalker(t *testing.T, shape Shape, dt dtype.DType) *arrayWalker {
	t.Helper()
	w, err := newArrayWalker(InputDescriptor{Name: "i", Shape: shape, DType: dt})
	require.NoError(t, err)
	return w
}

func TestArrayWalker_FlattensRowMajor(t *testing.T) {
	w := testWalker(t, Shape{2, 3}, dtype.F32)

	err := w.walk([]any{
		[]any{json.Number("1"), json.Number("2"), json.Number("3")},
		[]any{json.Number("4"), json.Number("5"), json.Number("6")},
	}, 0)
	require.NoError(t, err)

	tensor, err := w.finish()
	require.NoError(t, err)
	assert.Equal(t, "i", tensor.Name())
	assert.Equal(t, Shape{2, 3}, tensor.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, asFloat32(t, tensor.Data()))
}

func TestArrayWalker_RejectsRaggedSiblings(t *testing.T) {
	w := testWalker(t, Shape{2, 2}, dtype.F32)

	err := w.walk([]any{
		[]any{json.Number("1"), json.Number("2")},
		[]any{json.Number("3")},
	}, 0)
	assert.ErrorContains(t, err, "ragged")
}

func TestArrayWalker_RejectsScalarAboveRankDepth(t *testing.T) {
	w := testWalker(t, Shape{2, 2}, dtype.F32)

	err := w.walk([]any{json.Number("1"), json.Number("2")}, 0)
	assert.ErrorContains(t, err, "expected array")
}

func TestArrayWalker_RejectsArrayAtRankDepth(t *testing.T) {
	w := testWalker(t, Shape{2}, dtype.F32)

	err := w.walk([]any{
		[]any{json.Number("1")},
		[]any{json.Number("2")},
	}, 0)
	assert.Error(t, err)
}

func TestArrayWalker_FinishRejectsShallowNesting(t *testing.T) {
	w := testWalker(t, Shape{2, 2}, dtype.F32)

	// Only depth 0 gets recorded before the scalar check fails, so a
	// fresh walker that never walked reports the shallow nesting.
	_, err := w.finish()
	assert.ErrorContains(t, err, "rank")
}

func TestArrayWalker_FinishRejectsShapeMismatch(t *testing.T) {
	w := testWalker(t, Shape{2, 2}, dtype.F32)

	err := w.walk([]any{
		[]any{json.Number("1"), json.Number("2")},
	}, 0)
	require.NoError(t, err)

	_, err = w.finish()
	assert.ErrorContains(t, err, "does not match declared shape")
}

func TestArrayWalker_DeepNesting(t *testing.T) {
	// A rank high enough to blow a recursive walk on a goroutine stack
	// still parses with the explicit frame stack.
	const rank = 20000
	shape := make(Shape, rank)
	for i := range shape {
		shape[i] = 1
	}
	w := testWalker(t, shape, dtype.U8)

	value := any(json.Number("7"))
	for i := 0; i < rank; i++ {
		value = []any{value}
	}
	require.NoError(t, w.walk(value, 0))

	tensor, err := w.finish()
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, tensor.Data())
}
