// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"github.com/nlpodyssey/tensorjson/dtype"
)

// Tensor is one parsed input, with its content fully decoded in memory.
//
// Data holds the raw binary content, little-endian and row-major
// ("C") ordered: the last dimension of Shape varies fastest. There is
// no striding. Its length always equals the product of Shape times the
// byte width of DType.
type Tensor struct {
	name  string
	dType dtype.DType
	shape Shape
	data  []byte
}

// The Name of the tensor.
func (t Tensor) Name() string {
	return t.name
}

// DType returns the data type of the tensor.
func (t Tensor) DType() dtype.DType {
	return t.dType
}

// The Shape of the tensor, as realized while walking the input's
// payload. It always equals the declared shape of the input.
func (t Tensor) Shape() Shape {
	return t.shape
}

// Data returns the raw binary content of the tensor.
func (t Tensor) Data() []byte {
	return t.data
}
