//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package filter implements the String-Filter Set (spec §4.A): a
// thread-safe, per-kind registry of operator-supplied patterns matched
// against event subject paths.
package filter

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

const maxIDRetries = 16

// kindSet holds the entries for a single FilterKind.
type kindSet struct {
	sync.RWMutex
	entries    []domain.FilterEntry
	tearingDown atomic.Bool
}

// Set is the String-Filter Set, indexed by FilterKind.
type Set struct {
	kinds   map[domain.FilterKind]*kindSet
	persist domain.PersistenceServiceIface
	rng     *rand.Rand
	rngMu   sync.Mutex
}

// New constructs an empty Set backed by the given persistence service.
// persist may be nil, in which case Save/Restore are no-ops -- useful in
// tests that only exercise matching semantics.
func New(persist domain.PersistenceServiceIface) *Set {
	return &Set{
		kinds: map[domain.FilterKind]*kindSet{
			domain.FilesystemFilter: {},
			domain.RegistryFilter:   {},
		},
		persist: persist,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Set) kind(k domain.FilterKind) *kindSet {
	ks, ok := s.kinds[k]
	if !ok {
		// Unknown kinds behave as an always-empty, always-tearing-down set.
		ks = &kindSet{}
		ks.tearingDown.Store(true)
	}
	return ks
}

func (s *Set) nextID() uint32 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Uint32()
}

// Add registers a new pattern under kind, returning its id. The id is
// pseudo-random, non-zero, and unique within the kind for its lifetime.
func (s *Set) Add(kind domain.FilterKind, pattern string, ops domain.FilterOp) (uint32, error) {
	if pattern == "" {
		return 0, errors.New("filter: empty pattern")
	}

	lowered := strings.ToLower(pattern)
	if len(lowered) > domain.MaxPatternLen {
		lowered = lowered[:domain.MaxPatternLen]
	}

	ks := s.kind(kind)
	ks.Lock()
	if ks.tearingDown.Load() {
		ks.Unlock()
		return 0, nil
	}

	var id uint32
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		candidate := s.nextID()
		if candidate == 0 {
			continue
		}
		if !ks.hasID(candidate) {
			id = candidate
			break
		}
	}
	if id == 0 {
		ks.Unlock()
		logrus.Warnf("filter: unable to allocate unique id for kind=%s after %d attempts", kind, maxIDRetries)
		return 0, nil
	}

	ks.entries = append(ks.entries, domain.FilterEntry{
		ID:      id,
		Kind:    kind,
		Pattern: lowered,
		Ops:     ops,
	})
	snapshot := append([]domain.FilterEntry(nil), ks.entries...)
	ks.Unlock()

	if err := s.save(kind, snapshot); err != nil {
		logrus.Errorf("filter: persistence write failed for kind=%s: %v", kind, err)
	}

	logrus.Debugf("filter: added id=%d kind=%s pattern=%q ops=%d", id, kind, lowered, ops)
	return id, nil
}

func (ks *kindSet) hasID(id uint32) bool {
	for _, e := range ks.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given id from kind. O(n) linear scan.
func (s *Set) Remove(kind domain.FilterKind, id uint32) bool {
	ks := s.kind(kind)
	ks.Lock()
	if ks.tearingDown.Load() {
		ks.Unlock()
		return false
	}

	removed := false
	out := ks.entries[:0:0]
	for _, e := range ks.entries {
		if e.ID == id {
			removed = true
			continue
		}
		out = append(out, e)
	}
	ks.entries = out
	snapshot := append([]domain.FilterEntry(nil), ks.entries...)
	ks.Unlock()

	if !removed {
		return false
	}

	if err := s.save(kind, snapshot); err != nil {
		logrus.Errorf("filter: persistence write failed for kind=%s: %v", kind, err)
	}
	logrus.Debugf("filter: removed id=%d kind=%s", id, kind)
	return true
}

// List returns up to max entries starting at skip, in insertion order.
func (s *Set) List(kind domain.FilterKind, skip, max int) []domain.FilterEntry {
	ks := s.kind(kind)
	ks.RLock()
	defer ks.RUnlock()

	if ks.tearingDown.Load() || skip >= len(ks.entries) || max <= 0 {
		return nil
	}

	end := skip + max
	if end > len(ks.entries) {
		end = len(ks.entries)
	}

	out := make([]domain.FilterEntry, end-skip)
	copy(out, ks.entries[skip:end])
	return out
}

// Matches reports whether any entry of kind whose Ops intersect requested
// has Pattern as a case-insensitive substring of subject.
func (s *Set) Matches(kind domain.FilterKind, subject string, ops domain.FilterOp) bool {
	_, ok := s.MatchingEntry(kind, subject, ops)
	return ok
}

// MatchingEntry is Matches, but also returns the entry that matched -- used
// by adapters to log which filter fired.
func (s *Set) MatchingEntry(kind domain.FilterKind, subject string, ops domain.FilterOp) (domain.FilterEntry, bool) {
	ks := s.kind(kind)
	ks.RLock()
	defer ks.RUnlock()

	if ks.tearingDown.Load() {
		return domain.FilterEntry{}, false
	}

	lowered := strings.ToLower(subject)
	if len(lowered) > domain.MaxPatternLen {
		lowered = lowered[:domain.MaxPatternLen]
	}

	for _, e := range ks.entries {
		if e.Ops&ops == 0 {
			continue
		}
		if strings.Contains(lowered, e.Pattern) {
			return e, true
		}
	}
	return domain.FilterEntry{}, false
}

// Count returns the number of entries currently registered for kind.
func (s *Set) Count(kind domain.FilterKind) int {
	ks := s.kind(kind)
	ks.RLock()
	defer ks.RUnlock()
	return len(ks.entries)
}

// Save rewrites the persistence blob for kind from the in-memory set.
func (s *Set) Save(kind domain.FilterKind) error {
	ks := s.kind(kind)
	ks.RLock()
	snapshot := append([]domain.FilterEntry(nil), ks.entries...)
	ks.RUnlock()
	return s.save(kind, snapshot)
}

func (s *Set) save(kind domain.FilterKind, entries []domain.FilterEntry) error {
	if s.persist == nil {
		return nil
	}
	return s.persist.Save(kind, entries)
}

// Restore replaces kind's in-memory entries with those read from the
// persistence store.
func (s *Set) Restore(kind domain.FilterKind) error {
	if s.persist == nil {
		return nil
	}

	entries, err := s.persist.Restore(kind)
	if err != nil {
		return err
	}

	ks := s.kind(kind)
	ks.Lock()
	defer ks.Unlock()
	if ks.tearingDown.Load() {
		return nil
	}
	ks.entries = entries
	return nil
}

// Teardown marks every kind as tearing down. Once set, every mutator and
// reader short-circuits; outstanding readers complete before this call
// returns because it acquires each kind's writer lock to drain them.
func (s *Set) Teardown() {
	for kind, ks := range s.kinds {
		ks.tearingDown.Store(true)
		ks.Lock()
		ks.entries = nil
		ks.Unlock()
		logrus.Debugf("filter: torn down kind=%s", kind)
	}
}
