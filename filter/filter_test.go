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

package filter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestybox/peacemaker/domain"
)

func TestAddAssignsNonZeroUniqueID(t *testing.T) {
	s := New(nil)

	id1, err := s.Add(domain.FilesystemFilter, "C:\\malware.exe", domain.OpExecute)
	require.NoError(t, err)
	assert.NotZero(t, id1)

	id2, err := s.Add(domain.FilesystemFilter, "C:\\other.exe", domain.OpExecute)
	require.NoError(t, err)
	assert.NotZero(t, id2)
	assert.NotEqual(t, id1, id2)
}

func TestAddRejectsEmptyPattern(t *testing.T) {
	s := New(nil)
	_, err := s.Add(domain.FilesystemFilter, "", domain.OpWrite)
	assert.Error(t, err)
}

func TestMatchesIsCaseInsensitiveSubstring(t *testing.T) {
	s := New(nil)
	_, err := s.Add(domain.FilesystemFilter, "C:\\Windows\\System32\\evil.dll", domain.OpWrite)
	require.NoError(t, err)

	assert.True(t, s.Matches(domain.FilesystemFilter, "c:\\windows\\system32\\EVIL.dll", domain.OpWrite))
	assert.False(t, s.Matches(domain.FilesystemFilter, "c:\\windows\\system32\\evil.dll", domain.OpDelete))
	assert.False(t, s.Matches(domain.FilesystemFilter, "c:\\other\\path.dll", domain.OpWrite))
}

func TestRemoveDeletesOnlyMatchingID(t *testing.T) {
	s := New(nil)
	id, err := s.Add(domain.FilesystemFilter, "pattern", domain.OpWrite)
	require.NoError(t, err)

	assert.False(t, s.Remove(domain.FilesystemFilter, id+1))
	assert.True(t, s.Remove(domain.FilesystemFilter, id))
	assert.Equal(t, 0, s.Count(domain.FilesystemFilter))
}

func TestListPaginatesInInsertionOrder(t *testing.T) {
	s := New(nil)
	var ids []uint32
	for i := 0; i < 5; i++ {
		id, err := s.Add(domain.FilesystemFilter, "pattern", domain.OpWrite)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	page := s.List(domain.FilesystemFilter, 1, 2)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)

	assert.Nil(t, s.List(domain.FilesystemFilter, 10, 2))
}

func TestKindsAreIndependent(t *testing.T) {
	s := New(nil)
	_, err := s.Add(domain.FilesystemFilter, "fs-pattern", domain.OpWrite)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Count(domain.FilesystemFilter))
	assert.Equal(t, 0, s.Count(domain.RegistryFilter))
}

// fakePersist is a minimal in-memory PersistenceServiceIface, exercising
// the Save/Restore wiring without depending on the persist package (kept
// separate so filter's tests don't need a filesystem).
type fakePersist struct {
	mu      sync.Mutex
	entries map[domain.FilterKind][]domain.FilterEntry
}

func newFakePersist() *fakePersist {
	return &fakePersist{entries: map[domain.FilterKind][]domain.FilterEntry{}}
}

func (f *fakePersist) Save(kind domain.FilterKind, entries []domain.FilterEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[kind] = append([]domain.FilterEntry(nil), entries...)
	return nil
}

func (f *fakePersist) Restore(kind domain.FilterKind) ([]domain.FilterEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[kind], nil
}

func TestAddPersistsSnapshot(t *testing.T) {
	p := newFakePersist()
	s := New(p)

	id, err := s.Add(domain.RegistryFilter, "HKLM\\Software\\Evil", domain.OpDelete)
	require.NoError(t, err)

	s2 := New(p)
	require.NoError(t, s2.Restore(domain.RegistryFilter))
	assert.Equal(t, 1, s2.Count(domain.RegistryFilter))
	entries := s2.List(domain.RegistryFilter, 0, 10)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
}

func TestTeardownBlocksFurtherMutation(t *testing.T) {
	s := New(nil)
	_, err := s.Add(domain.FilesystemFilter, "pattern", domain.OpWrite)
	require.NoError(t, err)

	s.Teardown()

	id, err := s.Add(domain.FilesystemFilter, "other", domain.OpWrite)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.Equal(t, 0, s.Count(domain.FilesystemFilter))
}

func TestConcurrentAddsProduceUniqueIDs(t *testing.T) {
	s := New(nil)

	const n = 100
	ids := make(chan uint32, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Add(domain.FilesystemFilter, "pattern", domain.OpWrite)
			require.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uint32]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
