// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"github.com/pkg/errors"
)

// parseRowFormat handles the "instances" convention: an array where
// each instance supplies one element of every input's leading
// dimension. An instance is either an object mapping input names to
// values (Format NAMED), or, when exactly one input is declared, the
// value itself (Format NONAMED).
//
// Each per-instance value is walked against the declared shape minus
// the leading dimension. One shape tracker per input is shared across
// all instances, so raggedness between instances is rejected like
// raggedness within one. The instance count is the realized leading
// dimension and must equal the declared one.
func (p *RequestParser) parseRowFormat(req Request, instances any) (Request, error) {
	list, ok := instances.([]any)
	if !ok {
		return Request{}, errors.Wrapf(ErrInstancesNotAnArray, "found %s", jsonTypeName(instances))
	}
	if len(list) == 0 {
		return Request{}, ErrNoInstancesFound
	}

	format := FormatNamed
	if _, ok = list[0].(map[string]any); !ok {
		if len(p.descriptors) != 1 {
			return Request{}, errors.Wrap(ErrCouldNotParseInstance,
				"no-named instances require exactly one declared input")
		}
		format = FormatNoNamed
	}

	names := p.descriptors.Names()
	walkers := make(map[string]*arrayWalker, len(names))
	for _, name := range names {
		w, err := newArrayWalker(p.descriptors[name])
		if err != nil {
			return Request{}, errors.Wrapf(ErrCouldNotParseInstance, "input %q: %s", name, err)
		}
		w.tracker.record(0, len(list))
		walkers[name] = w
	}

	for i, instance := range list {
		if format == FormatNoNamed {
			name := names[0]
			if err := walkers[name].walk(instance, 1); err != nil {
				return Request{}, errors.Wrapf(ErrCouldNotParseInstance, "instance %d: %s", i, err)
			}
			continue
		}

		obj, ok := instance.(map[string]any)
		if !ok {
			return Request{}, errors.Wrapf(ErrCouldNotParseInstance,
				"instance %d: expected object, found %s", i, jsonTypeName(instance))
		}
		for _, name := range names {
			value, ok := obj[name]
			if !ok {
				return Request{}, errors.Wrapf(ErrCouldNotParseInstance,
					"instance %d: input %q is missing", i, name)
			}
			if err := walkers[name].walk(value, 1); err != nil {
				return Request{}, errors.Wrapf(ErrCouldNotParseInstance,
					"instance %d: input %q: %s", i, name, err)
			}
		}
	}

	tensors := make(map[string]Tensor, len(names))
	for _, name := range names {
		tensor, err := walkers[name].finish()
		if err != nil {
			return Request{}, errors.Wrapf(ErrCouldNotParseInstance, "input %q: %s", name, err)
		}
		tensors[name] = tensor
	}

	req.Order = OrderRow
	req.Format = format
	req.Tensors = tensors
	return req, nil
}
