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

// Package history implements the Process/Image History store (spec §4.E):
// linked per-process records with child image-load sub-lists, under a
// two-level lock hierarchy (global history_lock, per-process images_lock).
//
// Records are indexed by their lifetime key (pid, epoch_seconds) in an
// *iradix.Tree, the same structure the teacher's handler/handlerDB.go uses
// to index FS-path handlers: RegisterHandler/UnregisterHandler swap in a
// new tree root under a write lock while LookupHandler/HandlersResourcesList
// walk a captured root without blocking writers. That shape is exactly
// what spec §5 demands of history enumeration ("a consistent snapshot of
// the set of records as of lock acquisition; appended records that become
// visible during iteration MAY be observed").
//
// The index key is (inverted epoch || pid), inverted so that the tree's
// natural ascending byte-order walk produces the newest-first iteration
// order HistorySummary requires, without a separate sort pass.
package history

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// record is the mutable process record owned by the store.
type record struct {
	key domain.ProcessKey

	parentPID  uint32
	callerPID  uint32
	callerPath string
	parentPath string
	imagePath  string

	terminated atomic.Bool

	creationStack []domain.StackFrame

	imagesMu sync.RWMutex
	images   []domain.ImageRecord

	trailMu sync.Mutex
	trail   []domain.AuditEvent
}

// Store implements domain.HistoryServiceIface.
type Store struct {
	mu          sync.RWMutex
	tree        *iradix.Tree
	byPID       map[uint32]*record // most-recent non-terminated record per pid
	tearingDown atomic.Bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		tree:  iradix.New(),
		byPID: make(map[uint32]*record),
	}
}

func indexKey(pid uint32, epoch int64) []byte {
	key := make([]byte, 12)
	binary.BigEndian.PutUint64(key[0:8], ^uint64(epoch))
	binary.BigEndian.PutUint32(key[8:12], pid)
	return key
}

// OnProcessCreate inserts a new record for pid, capturing its lifetime key.
// imagePath resolution is the caller's responsibility (required,
// best-effort resolution of callerPath/parentPath may be empty strings on
// failure) -- per spec §4.E, image-path resolution failure means the
// caller should not invoke this at all (no partial insertions).
func (s *Store) OnProcessCreate(pid, parentPID, callerPID uint32, imagePath string, callerPath, parentPath string, stack []domain.StackFrame) (domain.ProcessKey, error) {
	if s.tearingDown.Load() {
		return domain.ProcessKey{}, nil
	}

	now := epochNow()
	key := domain.ProcessKey{PID: pid, Epoch: now}

	rec := &record{
		key:           key,
		parentPID:     parentPID,
		callerPID:     callerPID,
		callerPath:    callerPath,
		parentPath:    parentPath,
		imagePath:     imagePath,
		creationStack: stack,
	}

	s.mu.Lock()
	if s.tearingDown.Load() {
		s.mu.Unlock()
		return domain.ProcessKey{}, nil
	}
	tree, _, _ := s.tree.Insert(indexKey(pid, now), rec)
	s.tree = tree
	s.byPID[pid] = rec
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"pid":   pid,
		"epoch": now,
		"image": imagePath,
	}).Debug("history: process created")

	return key, nil
}

// OnProcessExit marks the most recent non-terminated record for pid as
// terminated. The record is never deleted.
func (s *Store) OnProcessExit(pid uint32) bool {
	if s.tearingDown.Load() {
		return false
	}

	s.mu.RLock()
	rec, ok := s.byPID[pid]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	rec.terminated.Store(true)

	s.mu.Lock()
	if s.byPID[pid] == rec {
		delete(s.byPID, pid)
	}
	s.mu.Unlock()

	logrus.WithField("pid", pid).Debug("history: process exited")
	return true
}

// OnProcessTerminateObserved appends an additive, alert-free audit-trail
// entry to pid's current record recording that its termination was
// observed. It does not flip the terminated flag -- OnProcessExit does
// that as a second, independent side effect of the same notification,
// mirroring the original's ProcessTerminateNotifyRoutine, which logs
// termination to the user-mode event log independent of the forwarded
// callback's own bookkeeping. Callers should invoke this before
// OnProcessExit, while pid is still findable as the current record.
func (s *Store) OnProcessTerminateObserved(pid uint32) bool {
	if s.tearingDown.Load() {
		return false
	}

	s.mu.RLock()
	rec, ok := s.byPID[pid]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	rec.trailMu.Lock()
	rec.trail = append(rec.trail, domain.AuditEvent{Source: domain.SourceProcessTerminate, Epoch: epochNow()})
	rec.trailMu.Unlock()

	logrus.WithField("pid", pid).Debug("history: process termination observed")
	return true
}

// OnImageLoad appends an ImageRecord to the most recent non-terminated
// record for pid. A missing record (e.g. the create event raced, or was
// dropped) leaves no trace -- spec §4.E only requires recording when found.
func (s *Store) OnImageLoad(pid uint32, imagePath string, stack []domain.StackFrame) error {
	if s.tearingDown.Load() {
		return nil
	}

	s.mu.RLock()
	rec, ok := s.byPID[pid]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	rec.imagesMu.Lock()
	rec.images = append(rec.images, domain.ImageRecord{
		ImagePath: imagePath,
		LoadStack: stack,
	})
	rec.imagesMu.Unlock()

	logrus.WithFields(logrus.Fields{
		"pid":   pid,
		"image": imagePath,
	}).Debug("history: image loaded")
	return nil
}

// HistorySummary returns up to max summaries, newest-first, starting at skip.
func (s *Store) HistorySummary(skip, max int) []domain.ProcessSummary {
	if s.tearingDown.Load() || max <= 0 {
		return nil
	}

	s.mu.RLock()
	root := s.tree.Root()
	s.mu.RUnlock()

	var out []domain.ProcessSummary
	idx := 0
	root.Walk(func(_ []byte, val interface{}) bool {
		if idx < skip {
			idx++
			return false
		}
		if len(out) >= max {
			return true
		}
		rec := val.(*record)
		out = append(out, domain.ProcessSummary{
			PID:        rec.key.PID,
			ImagePath:  rec.imagePath,
			Epoch:      rec.key.Epoch,
			Terminated: rec.terminated.Load(),
		})
		idx++
		return false
	})
	return out
}

func (s *Store) lookup(key domain.ProcessKey) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.tree.Get(indexKey(key.PID, key.Epoch))
	if !ok {
		return nil, false
	}
	return val.(*record), true
}

// Detailed returns the full record for the exact lifetime key.
func (s *Store) Detailed(key domain.ProcessKey) (domain.ProcessDetailed, bool) {
	if s.tearingDown.Load() {
		return domain.ProcessDetailed{}, false
	}

	rec, ok := s.lookup(key)
	if !ok {
		return domain.ProcessDetailed{}, false
	}

	rec.imagesMu.RLock()
	images := make([]domain.ImageDetailed, len(rec.images))
	for i, img := range rec.images {
		images[i] = domain.ImageDetailed{ImagePath: img.ImagePath, LoadStack: img.LoadStack}
	}
	rec.imagesMu.RUnlock()

	rec.trailMu.Lock()
	trail := make([]domain.AuditEvent, len(rec.trail))
	copy(trail, rec.trail)
	rec.trailMu.Unlock()

	return domain.ProcessDetailed{
		PID:           rec.key.PID,
		ParentPID:     rec.parentPID,
		CallerPID:     rec.callerPID,
		CallerPath:    rec.callerPath,
		ParentPath:    rec.parentPath,
		ImagePath:     rec.imagePath,
		Epoch:         rec.key.Epoch,
		Terminated:    rec.terminated.Load(),
		CreationStack: rec.creationStack,
		Images:        images,
		AuditTrail:    trail,
	}, true
}

// ImageDetailed returns the index-th image of the record named by key.
func (s *Store) ImageDetailed(key domain.ProcessKey, index int) (domain.ImageDetailed, bool) {
	if s.tearingDown.Load() {
		return domain.ImageDetailed{}, false
	}

	rec, ok := s.lookup(key)
	if !ok {
		return domain.ImageDetailed{}, false
	}

	rec.imagesMu.RLock()
	defer rec.imagesMu.RUnlock()
	if index < 0 || index >= len(rec.images) {
		return domain.ImageDetailed{}, false
	}
	img := rec.images[index]
	return domain.ImageDetailed{ImagePath: img.ImagePath, LoadStack: img.LoadStack}, true
}

// Sizes returns pre-allocation sizes for the record named by key.
func (s *Store) Sizes(key domain.ProcessKey) (domain.ProcessSizes, bool) {
	if s.tearingDown.Load() {
		return domain.ProcessSizes{}, false
	}

	rec, ok := s.lookup(key)
	if !ok {
		return domain.ProcessSizes{}, false
	}

	rec.imagesMu.RLock()
	defer rec.imagesMu.RUnlock()
	return domain.ProcessSizes{
		ImageCount: len(rec.images),
		StackCount: len(rec.creationStack),
	}, true
}

// Count returns the number of process records currently stored.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Teardown marks the store as torn down; every operation thereafter
// returns a null/empty result. The underlying tree is released.
func (s *Store) Teardown() {
	s.tearingDown.Store(true)
	s.mu.Lock()
	s.tree = iradix.New()
	s.byPID = make(map[uint32]*record)
	s.mu.Unlock()
	logrus.Debug("history: torn down")
}
