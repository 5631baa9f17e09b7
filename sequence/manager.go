// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Registry errors, matched by callers with errors.Is.
var (
	ErrMissing       = errors.New("sequence missing")
	ErrTerminated    = errors.New("sequence terminated")
	ErrAlreadyExists = errors.New("sequence already exists")
	ErrLimitReached  = errors.New("max sequence number reached")
)

// Manager is a mutex-guarded registry of live sequences for one
// stateful model. Identifier generation starts from a counter seeded
// by an explicitly passed random source, keeping id allocation
// per-instance instead of process-wide.
type Manager struct {
	mu           sync.Mutex
	sequences    map[uint64]*Sequence
	timeout      time.Duration
	maxSequences int
	idCounter    uint64
	log          *zap.SugaredLogger
}

// NewManager builds a registry evicting sequences idle longer than
// timeout, holding at most maxSequences live entries (zero or negative
// means unbounded).
func NewManager(timeout time.Duration, maxSequences int, rng *rand.Rand, log *zap.SugaredLogger) *Manager {
	return &Manager{
		sequences:    make(map[uint64]*Sequence),
		timeout:      timeout,
		maxSequences: maxSequences,
		idCounter:    rng.Uint64(),
		log:          log,
	}
}

// Count returns the number of live sequences.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sequences)
}

// Timeout returns the idle eviction timeout.
func (m *Manager) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// SetTimeout replaces the idle eviction timeout.
func (m *Manager) SetTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
}

// MaxSequences returns the live-sequence capacity.
func (m *Manager) MaxSequences() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxSequences
}

// SetMaxSequences replaces the live-sequence capacity.
func (m *Manager) SetMaxSequences(maxSequences int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxSequences = maxSequences
}

// Exists reports whether a sequence is registered for id, terminated
// or not.
func (m *Manager) Exists(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sequences[id]
	return ok
}

// Create registers a new sequence. An id of 0 requests a generated
// unique identifier; the effective id is returned either way.
func (m *Manager) Create(id uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSequences > 0 && len(m.sequences) >= m.maxSequences {
		return 0, ErrLimitReached
	}
	if id == 0 {
		id = m.uniqueID()
	} else if _, ok := m.sequences[id]; ok {
		m.log.Debugf("sequence with id %d already exists", id)
		return 0, ErrAlreadyExists
	}

	m.log.Debugf("adding new sequence with id %d", id)
	m.sequences[id] = &Sequence{id: id, lastActivity: time.Now()}
	return id, nil
}

// uniqueID advances the seeded counter past zero and any live ids.
func (m *Manager) uniqueID() uint64 {
	for {
		if m.idCounter == 0 {
			m.idCounter++
			continue
		}
		if _, ok := m.sequences[m.idCounter]; ok {
			m.idCounter++
			continue
		}
		return m.idCounter
	}
}

// Has checks that a live, non-terminated sequence exists for id.
func (m *Manager) Has(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.has(id)
}

func (m *Manager) has(id uint64) error {
	seq, ok := m.sequences[id]
	if !ok {
		return ErrMissing
	}
	if seq.terminated {
		return ErrTerminated
	}
	return nil
}

// Touch refreshes the last-activity time of a live sequence, shielding
// it from the next timeout sweep.
func (m *Manager) Touch(id uint64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.has(id); err != nil {
		return err
	}
	m.sequences[id].lastActivity = now
	return nil
}

// Terminate marks a live sequence as closed. Further mid-sequence
// requests for it report ErrTerminated until it is removed.
func (m *Manager) Terminate(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.has(id); err != nil {
		return err
	}
	m.sequences[id].terminated = true
	return nil
}

// Remove deletes the sequence registered for id.
func (m *Manager) Remove(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sequences[id]; !ok {
		m.log.Debugf("sequence with id %d does not exist", id)
		return ErrMissing
	}
	m.log.Debugf("removing sequence with id %d", id)
	delete(m.sequences, id)
	return nil
}

// RemoveTimedOut evicts every sequence idle longer than the timeout,
// relative to the given current time.
func (m *Manager) RemoveTimedOut(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, seq := range m.sequences {
		if now.Sub(seq.lastActivity) > m.timeout {
			m.log.Debugf("removing timed out sequence with id %d", id)
			delete(m.sequences, id)
		}
	}
}

// ProcessControl applies one request's control value: Start creates
// the sequence (id 0 requests a generated identifier), NoControl
// checks liveness, End terminates. It returns the effective sequence
// id.
func (m *Manager) ProcessControl(control Control, id uint64) (uint64, error) {
	switch control {
	case Start:
		return m.Create(id)
	case NoControl:
		return id, m.Has(id)
	case End:
		return id, m.Terminate(id)
	}
	return id, errors.Errorf("invalid sequence control value %d", control)
}

// RunSweeper periodically evicts timed-out sequences until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.RemoveTimedOut(now)
		}
	}
}
