// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensorjson converts model-serving REST payloads, JSON
// documents of nested numeric arrays, into precisely shaped and
// precisely typed binary tensors, ready for a downstream numerical
// engine.
package tensorjson

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// jsonAPI keeps numeric literals as json.Number, so integer literals
// are not damaged by an intermediate float64.
var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

// RequestParser converts one request payload at a time into a Request,
// validating every declared input against its descriptor.
//
// A RequestParser is constructed once per descriptor registry and
// reused across many independent parse invocations. It keeps no
// per-call state: all mutable state is allocated fresh per call, so a
// single instance may be invoked concurrently from parallel callers
// without locking.
type RequestParser struct {
	descriptors DescriptorMap
}

// NewRequestParser validates the descriptor registry and builds a
// parser bound to it.
func NewRequestParser(descriptors DescriptorMap) (*RequestParser, error) {
	if err := descriptors.Validate(); err != nil {
		return nil, err
	}
	return &RequestParser{descriptors: descriptors}, nil
}

// Parse runs the ordered sequence of checks over one payload, first
// failure wins:
//
//  1. the payload must be well-formed JSON (ErrJSONInvalid);
//  2. the top-level value must be an object (ErrBodyNotAnObject);
//  3. the object must carry "inputs" (column convention) or, failing
//     that, "instances" (row convention); neither is ErrUnknownOrder;
//  4. every declared input must parse against its descriptor.
//
// The parse is all-or-nothing: on any failure no partial Request is
// returned. Extra, undeclared keys in the payload are ignored. An
// optional "signature_name" string is passed through uninterpreted.
func (p *RequestParser) Parse(data []byte) (Request, error) {
	var doc any
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return Request{}, errors.Wrap(ErrJSONInvalid, err.Error())
	}
	body, ok := doc.(map[string]any)
	if !ok {
		return Request{}, errors.Wrapf(ErrBodyNotAnObject, "found %s", jsonTypeName(doc))
	}

	req := Request{ID: newRequestID()}
	if sig, ok := body["signature_name"].(string); ok {
		req.SignatureName = sig
	}

	if inputs, ok := body["inputs"]; ok {
		return p.parseColumnFormat(req, inputs)
	}
	if instances, ok := body["instances"]; ok {
		return p.parseRowFormat(req, instances)
	}
	return Request{}, ErrUnknownOrder
}

// ParseLimited is like Parse, but rejects payloads larger than
// sizeLimit bytes before any decoding takes place. This can be useful
// to guard against giant allocations from bad or hostile payloads.
// A value of zero, or a negative number, has no limiting effect.
func (p *RequestParser) ParseLimited(data []byte, sizeLimit int) (Request, error) {
	if sizeLimit > 0 && len(data) > sizeLimit {
		return Request{}, errors.Wrapf(ErrPayloadTooLarge, "payload size %d exceeds limit %d", len(data), sizeLimit)
	}
	return p.Parse(data)
}

// parseColumnFormat handles the "inputs" convention: an object mapping
// declared input names to nested arrays, each array's rank equal to
// its input's declared rank.
func (p *RequestParser) parseColumnFormat(req Request, inputs any) (Request, error) {
	obj, ok := inputs.(map[string]any)
	if !ok {
		return Request{}, errors.Wrapf(ErrInputsNotAnObject, "found %s", jsonTypeName(inputs))
	}
	if len(obj) == 0 {
		return Request{}, ErrNoInputsFound
	}

	tensors := make(map[string]Tensor, len(p.descriptors))
	for _, name := range p.descriptors.Names() {
		value, ok := obj[name]
		if !ok {
			return Request{}, errors.Wrapf(ErrCouldNotParseInput, "input %q is missing from the payload", name)
		}
		tensor, err := parseInput(p.descriptors[name], value)
		if err != nil {
			return Request{}, errors.Wrapf(ErrCouldNotParseInput, "input %q: %s", name, err)
		}
		tensors[name] = tensor
	}

	req.Order = OrderColumn
	req.Format = FormatNamed
	req.Tensors = tensors
	return req, nil
}

// parseInput walks one input's nested JSON value against its
// declaration, independently of every other input.
func parseInput(desc InputDescriptor, value any) (Tensor, error) {
	w, err := newArrayWalker(desc)
	if err != nil {
		return Tensor{}, err
	}
	if err = w.walk(value, 0); err != nil {
		return Tensor{}, err
	}
	return w.finish()
}

// jsonTypeName names the JSON form of a decoded value, covering every
// variant the decoder can produce.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
