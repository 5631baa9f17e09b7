// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nlpodyssey/tensorjson/dtype"
)

// InputDescriptor declares the shape and numeric kind expected for one
// named input of a request. Descriptors are supplied before parsing
// and are immutable for the lifetime of a RequestParser.
type InputDescriptor struct {
	Name  string
	Shape Shape
	DType dtype.DType
}

// DescriptorMap is a set of InputDescriptor objects mapped by their name.
type DescriptorMap map[string]InputDescriptor

// Validate checks whether the content of a DescriptorMap is usable as
// a parsing registry, returning an error if a problem is encountered,
// otherwise nil.
//
// The DescriptorMap is checked against the following rules:
//
//   - the map must not be empty
//   - each key must match the mapped InputDescriptor.Name
//   - each descriptor's DType must be valid
//   - each descriptor's Shape must have rank >= 1 and only positive
//     dimension lengths
//   - each descriptor's byte size, computed from Shape and DType, must
//     fit within the "int" type
func (dm DescriptorMap) Validate() error {
	if len(dm) == 0 {
		return errors.New("descriptor map contains no inputs")
	}
	for k, d := range dm {
		if k != d.Name {
			return fmt.Errorf("input names mismatch: DescriptorMap key %q, InputDescriptor.Name %q", k, d.Name)
		}
		if err := d.validate(); err != nil {
			return fmt.Errorf("invalid input %q: %w", d.Name, err)
		}
	}
	return nil
}

// Names returns all descriptor names in lexicographic order.
func (dm DescriptorMap) Names() []string {
	names := make([]string, 0, len(dm))
	for name := range dm {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d InputDescriptor) validate() error {
	if err := d.DType.Validate(); err != nil {
		return err
	}
	if len(d.Shape) == 0 {
		return errors.New("shape must have rank >= 1")
	}
	for _, v := range d.Shape {
		if v <= 0 {
			return fmt.Errorf("shape contains non-positive value %d", v)
		}
	}
	_, err := d.Shape.ByteSize(d.DType)
	return err
}
