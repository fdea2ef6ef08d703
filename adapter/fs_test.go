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

package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nestybox/peacemaker/domain"
	"github.com/nestybox/peacemaker/mocks"
)

func TestPreWriteFromKernelAlwaysAllows(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	fs := NewFS(Deps{Filters: filters})

	decision := fs.PreWrite(context.Background(), true, 1, `C:\evil.exe`)
	assert.False(t, decision.Denied)
	filters.AssertNotCalled(t, "MatchingEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreWriteDeniesOnFilterMatch(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	history := new(mocks.HistoryServiceIface)
	detect := new(mocks.DetectionLogicIface)

	subject := NormalizeFilePath(`C:\evil.exe`)
	filters.On("MatchingEntry", domain.FilesystemFilter, subject, domain.OpWrite).
		Return(domain.FilterEntry{ID: 1, Pattern: "evil"}, true)
	history.On("HistorySummary", 0, 1<<20).Return([]domain.ProcessSummary{})
	detect.On("ReportFilterViolation", domain.SourceFileMatch, uint32(7), "", subject, mock.Anything).Return()

	fsAdapter := NewFS(Deps{Filters: filters, History: history, Detect: detect})

	decision := fsAdapter.PreWrite(context.Background(), false, 7, `C:\evil.exe`)
	assert.True(t, decision.Denied)
	filters.AssertExpectations(t)
	detect.AssertExpectations(t)
}

func TestPreWriteAllowsOnNoMatch(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	filters.On("MatchingEntry", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FilterEntry{}, false)

	fsAdapter := NewFS(Deps{Filters: filters})
	decision := fsAdapter.PreWrite(context.Background(), false, 7, `C:\clean.exe`)
	assert.False(t, decision.Denied)
}
