// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sequence provides a keyed registry of per-client
// continuation state for stateful models: opaque sequence identifiers,
// a terminated flag, and timeout-based eviction.
package sequence

import "time"

// Control values a stateful request may carry to drive the lifecycle
// of its sequence.
type Control uint32

const (
	// NoControl marks a mid-sequence request.
	NoControl Control = 0
	// Start opens a new sequence.
	Start Control = 1
	// End closes an existing sequence.
	End Control = 2
)

// Sequence tracks the continuation state of one stateful client.
// It is always accessed under its Manager's lock.
type Sequence struct {
	id           uint64
	terminated   bool
	lastActivity time.Time
}

// ID returns the sequence identifier.
func (s *Sequence) ID() uint64 {
	return s.id
}

// Terminated reports whether the sequence received its end control.
func (s *Sequence) Terminated() bool {
	return s.terminated
}

// LastActivity returns the time of the last touch.
func (s *Sequence) LastActivity() time.Time {
	return s.lastActivity
}
