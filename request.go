// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"github.com/gofrs/uuid/v5"
)

// Order tells which JSON convention arranged the payload data:
// row-major "instances" or column-wise "inputs".
type Order uint8

const (
	// OrderUnknown is the zero value, before any convention is detected.
	OrderUnknown Order = iota
	// OrderRow marks the "instances" convention.
	OrderRow
	// OrderColumn marks the "inputs" convention.
	OrderColumn
)

var orderToString = [...]string{
	OrderUnknown: "UNKNOWN",
	OrderRow:     "ROW",
	OrderColumn:  "COLUMN",
}

// String returns a string representation of an Order.
func (o Order) String() string {
	if int(o) >= len(orderToString) {
		return "UNKNOWN"
	}
	return orderToString[o]
}

// Format tells whether the payload addressed inputs by name.
type Format uint8

const (
	// FormatUnknown is the zero value, before any convention is detected.
	FormatUnknown Format = iota
	// FormatNamed marks payloads mapping input names to values.
	FormatNamed
	// FormatNoNamed marks row payloads carrying the single declared
	// input's values directly, without a name map.
	FormatNoNamed
)

var formatToString = [...]string{
	FormatUnknown: "UNKNOWN",
	FormatNamed:   "NAMED",
	FormatNoNamed: "NONAMED",
}

// String returns a string representation of a Format.
func (f Format) String() string {
	if int(f) >= len(formatToString) {
		return "UNKNOWN"
	}
	return formatToString[f]
}

// Request is the all-or-nothing result of parsing one request payload:
// every declared input parsed successfully, or no Request exists at all.
type Request struct {
	// ID tags the parsed request for downstream correlation.
	ID string
	// SignatureName is the optional pass-through signature label from
	// the payload, uninterpreted.
	SignatureName string
	// Order of the JSON convention the payload used.
	Order Order
	// Format of the JSON convention the payload used.
	Format Format
	// Tensors maps each declared input name to its parsed tensor.
	Tensors map[string]Tensor
}

// newRequestID generates the correlation tag of one parsed request.
func newRequestID() string {
	return uuid.Must(uuid.NewV4()).String()
}
