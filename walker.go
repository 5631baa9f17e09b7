// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// shapeTracker records the dimension length discovered at each nesting
// depth of one input, and checks that every later sibling at the same
// depth agrees with the first encounter.
type shapeTracker struct {
	dims []int
	seen []bool
}

func newShapeTracker(rank int) *shapeTracker {
	return &shapeTracker{
		dims: make([]int, rank),
		seen: make([]bool, rank),
	}
}

// record stores length as the tracked dimension for depth on first
// encounter, and reports whether later siblings match it exactly.
func (st *shapeTracker) record(depth, length int) bool {
	if !st.seen[depth] {
		st.dims[depth] = length
		st.seen[depth] = true
		return true
	}
	return st.dims[depth] == length
}

// realized returns the discovered shape, outermost to innermost.
// The boolean flag is false if any depth was never reached, meaning the
// payload's nesting is shallower than the declared rank.
func (st *shapeTracker) realized() (Shape, bool) {
	for _, seen := range st.seen {
		if !seen {
			return nil, false
		}
	}
	return Shape(st.dims), true
}

// arrayWalker flattens one input's nested JSON value into a binary
// buffer, validating strict rectangularity along the way. The output
// buffer is preallocated to the declared byte size, so a well-formed
// input never reallocates.
type arrayWalker struct {
	desc    InputDescriptor
	tracker *shapeTracker
	buf     []byte
}

func newArrayWalker(desc InputDescriptor) (*arrayWalker, error) {
	byteSize, err := desc.Shape.ByteSize(desc.DType)
	if err != nil {
		return nil, err
	}
	return &arrayWalker{
		desc:    desc,
		tracker: newShapeTracker(desc.Shape.Rank()),
		buf:     make([]byte, 0, byteSize),
	}, nil
}

// walkFrame pairs a pending JSON value with the nesting depth it was
// found at.
type walkFrame struct {
	value any
	depth int
}

// walk traverses value depth-first, decoding leaves in encounter order.
// A value at a depth lower than the declared rank must be an array; a
// value at the rank depth must be a numeric scalar. The walk uses an
// explicit frame stack, so arbitrarily high ranks cannot exhaust the
// goroutine stack.
func (w *arrayWalker) walk(value any, depth int) error {
	rank := w.desc.Shape.Rank()
	stack := []walkFrame{{value: value, depth: depth}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth == rank {
			var err error
			if w.buf, err = appendScalar(w.buf, f.value, w.desc.DType); err != nil {
				return err
			}
			continue
		}

		switch v := f.value.(type) {
		case []any:
			if !w.tracker.record(f.depth, len(v)) {
				return errors.Errorf("ragged array: expected %d siblings at depth %d, found %d",
					w.tracker.dims[f.depth], f.depth, len(v))
			}
			// Push in reverse so leaves are decoded in encounter order.
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, walkFrame{value: v[i], depth: f.depth + 1})
			}
		case nil, bool, json.Number, string, map[string]any:
			return errors.Errorf("expected array at depth %d, found %s", f.depth, jsonTypeName(v))
		default:
			return errors.Errorf("unexpected JSON value of type %T at depth %d", v, f.depth)
		}
	}
	return nil
}

// finish compares the realized shape against the declaration and
// assembles the tensor. The walked value must have covered every
// declared dimension.
func (w *arrayWalker) finish() (Tensor, error) {
	realized, ok := w.tracker.realized()
	if !ok {
		return Tensor{}, errors.Errorf("realized rank is lower than declared rank %d", w.desc.Shape.Rank())
	}
	if !realized.Equal(w.desc.Shape) {
		return Tensor{}, errors.Errorf("realized shape %v does not match declared shape %v", realized, w.desc.Shape)
	}
	return Tensor{
		name:  w.desc.Name,
		dType: w.desc.DType,
		shape: realized,
		data:  w.buf,
	}, nil
}
