// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorjson

import (
	"github.com/pkg/errors"
)

// Status classifies the outcome of parsing a request into the small,
// stable surface a transport layer maps to client-visible responses.
type Status uint8

const (
	// StatusOK reports a fully parsed request.
	StatusOK Status = iota
	// StatusJSONInvalid reports a JSON syntax error.
	StatusJSONInvalid
	// StatusBodyNotAnObject reports a top-level value other than an object.
	StatusBodyNotAnObject
	// StatusUnknownOrder reports a body carrying neither "inputs" nor
	// "instances".
	StatusUnknownOrder
	// StatusPayloadTooLarge reports a payload rejected by a size limit.
	StatusPayloadTooLarge
	// StatusInputsNotAnObject reports an "inputs" value that is not an object.
	StatusInputsNotAnObject
	// StatusNoInputsFound reports an empty "inputs" object.
	StatusNoInputsFound
	// StatusCouldNotParseInput reports any per-input failure of the
	// column convention: wrong nesting depth, ragged siblings,
	// non-numeric leaf, shape mismatch, or a missing declared input.
	StatusCouldNotParseInput
	// StatusInstancesNotAnArray reports an "instances" value that is not
	// an array.
	StatusInstancesNotAnArray
	// StatusNoInstancesFound reports an empty "instances" array.
	StatusNoInstancesFound
	// StatusCouldNotParseInstance reports any per-instance failure of
	// the row convention.
	StatusCouldNotParseInstance
)

var statusToString = [...]string{
	StatusOK:                    "OK",
	StatusJSONInvalid:           "JSON_INVALID",
	StatusBodyNotAnObject:       "BODY_NOT_AN_OBJECT",
	StatusUnknownOrder:          "UNKNOWN_ORDER",
	StatusPayloadTooLarge:       "PAYLOAD_TOO_LARGE",
	StatusInputsNotAnObject:     "INPUTS_NOT_AN_OBJECT",
	StatusNoInputsFound:         "NO_INPUTS_FOUND",
	StatusCouldNotParseInput:    "COULD_NOT_PARSE_INPUT",
	StatusInstancesNotAnArray:   "INSTANCES_NOT_AN_ARRAY",
	StatusNoInstancesFound:      "NO_INSTANCES_FOUND",
	StatusCouldNotParseInstance: "COULD_NOT_PARSE_INSTANCE",
}

// String returns the wire name of a Status.
func (s Status) String() string {
	if int(s) >= len(statusToString) {
		return "UNKNOWN"
	}
	return statusToString[s]
}

// Sentinel errors returned (possibly wrapped with details) by
// RequestParser. Callers match them with errors.Is; StatusOf converts
// them to Status values.
var (
	ErrJSONInvalid           = errors.New("malformed JSON document")
	ErrBodyNotAnObject       = errors.New("request body is not a JSON object")
	ErrUnknownOrder          = errors.New(`request carries neither "inputs" nor "instances"`)
	ErrPayloadTooLarge       = errors.New("request payload exceeds the size limit")
	ErrInputsNotAnObject     = errors.New(`"inputs" is not a JSON object`)
	ErrNoInputsFound         = errors.New(`"inputs" contains no inputs`)
	ErrCouldNotParseInput    = errors.New("could not parse input")
	ErrInstancesNotAnArray   = errors.New(`"instances" is not a JSON array`)
	ErrNoInstancesFound      = errors.New(`"instances" contains no instances`)
	ErrCouldNotParseInstance = errors.New("could not parse instance")
)

// StatusOf maps an error returned by RequestParser to its Status.
// A nil error maps to StatusOK. Errors foreign to this package
// classify as StatusJSONInvalid, the broadest envelope failure.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrBodyNotAnObject):
		return StatusBodyNotAnObject
	case errors.Is(err, ErrUnknownOrder):
		return StatusUnknownOrder
	case errors.Is(err, ErrPayloadTooLarge):
		return StatusPayloadTooLarge
	case errors.Is(err, ErrInputsNotAnObject):
		return StatusInputsNotAnObject
	case errors.Is(err, ErrNoInputsFound):
		return StatusNoInputsFound
	case errors.Is(err, ErrCouldNotParseInput):
		return StatusCouldNotParseInput
	case errors.Is(err, ErrInstancesNotAnArray):
		return StatusInstancesNotAnArray
	case errors.Is(err, ErrNoInstancesFound):
		return StatusNoInstancesFound
	case errors.Is(err, ErrCouldNotParseInstance):
		return StatusCouldNotParseInstance
	default:
		return StatusJSONInvalid
	}
}
