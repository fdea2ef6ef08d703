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

package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestybox/peacemaker/domain"
	"github.com/nestybox/peacemaker/mocks"
)

func TestAlertsQueuedReflectsEmptiness(t *testing.T) {
	queue := new(mocks.AlertQueueIface)
	queue.On("IsEmpty").Return(true)

	s := New(nil, nil, queue)
	assert.False(t, s.AlertsQueued())
}

func TestPopAlertNotFoundWhenEmpty(t *testing.T) {
	queue := new(mocks.AlertQueueIface)
	queue.On("Pop").Return(domain.Alert{}, false)

	s := New(nil, nil, queue)
	_, code := s.PopAlert()
	assert.Equal(t, NotFound, code)
}

func TestGetProcessesRejectsNegativeSkip(t *testing.T) {
	s := New(nil, nil, nil)
	_, code := s.GetProcesses(-1, 10)
	assert.Equal(t, InsufficientResources, code)
}

func TestGetProcessDetailedNotFound(t *testing.T) {
	history := new(mocks.HistoryServiceIface)
	history.On("Detailed", domain.ProcessKey{PID: 1, Epoch: 2}).Return(domain.ProcessDetailed{}, false)

	s := New(nil, history, nil)
	_, _, code := s.GetProcessDetailed(1, 2)
	assert.Equal(t, NotFound, code)
}

func TestAddFilterRejectsOversizedPattern(t *testing.T) {
	s := New(nil, nil, nil)
	big := make([]byte, domain.MaxPatternLen+1)
	_, code := s.AddFilter(domain.FilesystemFilter, domain.OpWrite, string(big))
	assert.Equal(t, InsufficientResources, code)
}

func TestAddFilterDelegatesToFilterService(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	filters.On("Add", domain.FilesystemFilter, "pattern", domain.OpWrite).Return(uint32(5), nil)

	s := New(filters, nil, nil)
	id, code := s.AddFilter(domain.FilesystemFilter, domain.OpWrite, "pattern")
	require.Equal(t, OK, code)
	assert.Equal(t, uint32(5), id)
}

func TestListFiltersCapsAtTen(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	filters.On("List", domain.FilesystemFilter, 0, maxListFilters).Return([]domain.FilterEntry{})

	s := New(filters, nil, nil)
	_, code := s.ListFilters(domain.FilesystemFilter, 0)
	assert.Equal(t, OK, code)
	filters.AssertExpectations(t)
}

func TestDeleteFilterRejectsZeroID(t *testing.T) {
	s := New(nil, nil, nil)
	_, code := s.DeleteFilter(domain.FilesystemFilter, 0)
	assert.Equal(t, BadData, code)
}

func TestGetGlobalSizesAggregatesAllThreeCounts(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	history := new(mocks.HistoryServiceIface)

	filters.On("Count", domain.FilesystemFilter).Return(3)
	filters.On("Count", domain.RegistryFilter).Return(4)
	history.On("Count").Return(7)

	s := New(filters, history, nil)
	sizes, code := s.GetGlobalSizes()
	require.Equal(t, OK, code)
	assert.Equal(t, GlobalSizes{ProcessCount: 7, FSFilterCount: 3, RegFilterCount: 4}, sizes)
}

func TestCodeStringVocabulary(t *testing.T) {
	for _, c := range []Code{OK, InsufficientResources, BadData, NotFound, NoMemory} {
		assert.NotEqual(t, "UNKNOWN", c.String())
	}
	assert.Equal(t, "UNKNOWN", Code(99).String())
}

func TestDispatchUnknownRequestCodeReturnsBadData(t *testing.T) {
	transport := &Transport{server: New(nil, nil, nil)}
	resp := transport.dispatch(Request{Code: RequestCode(999)})
	assert.Equal(t, BadData, resp.Result)
}

